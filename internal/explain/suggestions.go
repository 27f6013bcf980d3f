package explain

import (
	"fmt"
	"sort"

	"github.com/dbisina/verdescore/internal/model"
)

// suggestionGapThreshold is the minimum shortfall (in points) before a
// category earns a suggestion.
const suggestionGapThreshold = 5.0

// suggestionTemplates maps attribution categories to fixed remediation
// templates; %0.f is the potential point gain.
var suggestionTemplates = map[string]string{
	"semantic_alignment":    "Describe the project using recognized green category terms to recover up to %.0f points of category alignment.",
	"quantified_impact":     "Add concrete figures (capacity, tonnes CO2 avoided, percentages) to recover up to %.0f points of quantified impact.",
	"regulatory_compliance": "Address the compliance gaps listed in the gap analysis to recover up to %.0f points of regulatory alignment.",
	"risk":                  "Substantiate or remove unverified claims to recover up to %.0f points currently lost to risk.",
}

// Suggestions scans the attribution for categories trailing their
// maximum by more than the gap threshold, one fixed-template suggestion
// per shortfall, sorted by potential gain descending.
func Suggestions(attr model.Attribution) []model.Suggestion {
	var out []model.Suggestion

	for _, e := range attr.Entries {
		var gain float64
		if e.MaxPossible >= 0 {
			gain = e.MaxPossible - e.Contribution
		} else {
			// Negative-only category: the recoverable points are the
			// magnitude currently being subtracted.
			gain = -e.Contribution
		}
		if gain <= suggestionGapThreshold {
			continue
		}

		tmpl, ok := suggestionTemplates[e.Category]
		if !ok {
			continue
		}
		out = append(out, model.Suggestion{
			Category:      e.Category,
			Text:          fmt.Sprintf(tmpl, gain),
			PotentialGain: gain,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PotentialGain > out[j].PotentialGain
	})
	return out
}
