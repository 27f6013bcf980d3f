package explain

import (
	"fmt"
	"strings"

	"github.com/dbisina/verdescore/internal/model"
)

// Narrative renders the verdict as plain language. Template sentences
// are selected by score band and boolean flags; nothing is emitted for
// a condition that does not hold.
func Narrative(res *model.EvaluationResult) string {
	var sentences []string

	switch {
	case res.GreenScore >= 70:
		sentences = append(sentences, fmt.Sprintf(
			"The application scores %.0f/100, indicating strong alignment with green financing criteria.", res.GreenScore))
	case res.GreenScore >= 50:
		sentences = append(sentences, fmt.Sprintf(
			"The application scores %.0f/100, indicating moderate alignment with green financing criteria.", res.GreenScore))
	default:
		sentences = append(sentences, fmt.Sprintf(
			"The application scores %.0f/100, falling short of green financing criteria.", res.GreenScore))
	}

	if len(res.Matches) > 0 && res.Matches[0].Similarity > 0.3 {
		sentences = append(sentences, fmt.Sprintf(
			"The described activity most closely matches the %s category.", res.Matches[0].Category.Name))
	}

	if res.Principles.Compliant {
		sentences = append(sentences, "The project satisfies the green-project principles.")
	} else if res.Principles.Gaps.PrimaryBlocker != "" {
		sentences = append(sentences, fmt.Sprintf(
			"Principles compliance is blocked by: %s.", strings.ReplaceAll(res.Principles.Gaps.PrimaryBlocker, "_", " ")))
	}

	if res.Taxonomy.Compliant {
		sentences = append(sentences, fmt.Sprintf(
			"The activity is taxonomy-eligible under classification %s.", res.Taxonomy.ActivityCode))
	} else if res.Taxonomy.Gaps.PrimaryBlocker != "" {
		sentences = append(sentences, fmt.Sprintf(
			"Taxonomy eligibility is blocked by: %s.", strings.ReplaceAll(res.Taxonomy.Gaps.PrimaryBlocker, "-", " ")))
	}

	switch res.Risk.Level {
	case model.RiskHigh:
		sentences = append(sentences, fmt.Sprintf(
			"Greenwashing risk is HIGH with %d flagged indicators; claims require independent verification.", len(res.Risk.Flags)))
	case model.RiskMedium:
		sentences = append(sentences, "Greenwashing risk is moderate; some claims lack verification.")
	}

	sentences = append(sentences, fmt.Sprintf("Recommendation: %s.", res.Recommendation))

	return strings.Join(sentences, " ")
}
