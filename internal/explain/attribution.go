// Package explain re-expresses an evaluation as an auditable per-factor
// breakdown, a plain-language narrative and improvement suggestions.
package explain

import (
	"fmt"

	"github.com/dbisina/verdescore/internal/model"
)

// Maximum contribution per attribution category. Positives sum to 90;
// with the base offset of 10 a perfect application attributes to 100.
// Risk is the only negative-only category.
const (
	maxSemantic   = 30.0
	maxQuantified = 25.0
	maxCompliance = 35.0
	maxRisk       = 25.0 // Subtracted

	// baseOffset anchors the attribution identity:
	//   attributed = clamp(positives - negatives + baseOffset, 0, 100)
	// The attribution formula and the aggregator's blend run over
	// overlapping inputs and are allowed to diverge by at most
	// consistencyTolerance points (soft consistency, checked in tests,
	// never patched at runtime).
	baseOffset           = 10.0
	consistencyTolerance = 15.0
)

// BuildAttribution decomposes the result into signed per-factor
// contributions. The entries sum exactly: sum(contributions) equals
// TotalPositive - TotalNegative.
func BuildAttribution(res *model.EvaluationResult) model.Attribution {
	semantic := res.SemanticScore / 100 * maxSemantic
	quantified := quantificationScore(res.Principles) / 100 * maxQuantified
	compliance := (res.Principles.OverallScore + res.Taxonomy.OverallScore) / 2 / 100 * maxCompliance
	riskCut := res.RiskScore / 100 * maxRisk

	entries := []model.AttributionEntry{
		{
			Category:     "semantic_alignment",
			Name:         "Category alignment",
			Contribution: semantic,
			MaxPossible:  maxSemantic,
			Details:      primaryMatchDetail(res.Matches),
		},
		{
			Category:     "quantified_impact",
			Name:         "Quantified impact",
			Contribution: quantified,
			MaxPossible:  maxQuantified,
			Details:      fmt.Sprintf("%d quantified metrics extracted", len(res.Metrics)),
		},
		{
			Category:     "regulatory_compliance",
			Name:         "Regulatory compliance",
			Contribution: compliance,
			MaxPossible:  maxCompliance,
			Details: fmt.Sprintf("principles %.0f/100, taxonomy %.0f/100",
				res.Principles.OverallScore, res.Taxonomy.OverallScore),
		},
		{
			Category:     "risk",
			Name:         "Greenwashing & execution risk",
			Contribution: -riskCut,
			MaxPossible:  -maxRisk,
			Details:      fmt.Sprintf("adjusted risk score %.0f/100 (%s)", res.RiskScore, res.Risk.Level),
		},
	}

	totalPositive := semantic + quantified + compliance
	totalNegative := riskCut

	return model.Attribution{
		Entries:         entries,
		TotalPositive:   totalPositive,
		TotalNegative:   totalNegative,
		BaseOffset:      baseOffset,
		AttributedScore: model.Clamp(totalPositive - totalNegative + baseOffset),
	}
}

// quantificationScore reads the objective-quantification pillar from
// the principles verdict; zero when the pillar is absent.
func quantificationScore(v model.ComplianceVerdict) float64 {
	for _, p := range v.Pillars {
		if p.Pillar == "objective_quantification" {
			return p.Score
		}
	}
	return 0
}

func primaryMatchDetail(matches []model.SimilarityResult) string {
	if len(matches) == 0 {
		return "no category matches"
	}
	return fmt.Sprintf("primary match %s (similarity %.2f)",
		matches[0].Category.Name, matches[0].Similarity)
}
