package compliance

import (
	"fmt"
	"math"

	"github.com/dbisina/verdescore/internal/model"
)

// Pillar score bands for the gap analysis. A pillar at or above the
// strength floor is a strength; below the partial floor it is a hard
// failure.
const (
	strengthFloor = 70.0
	partialFloor  = 40.0
)

// buildGapAnalysis partitions every pillar into exactly one of
// strengths or gaps. The remediation text is drawn from the static
// per-signal suggestion table keyed by the first missing signal.
func buildGapAnalysis(pillars []model.ComplianceComponentScore, suggestions map[string]string) model.GapAnalysis {
	var ga model.GapAnalysis

	for _, p := range pillars {
		if p.Score >= strengthFloor {
			ga.Strengths = append(ga.Strengths, model.GapEntry{
				Criterion: p.Pillar,
				Status:    model.GapPass,
				Detail:    p.Reasoning,
			})
			continue
		}

		status := model.GapPartial
		if p.Score < partialFloor {
			status = model.GapFail
		}

		entry := model.GapEntry{
			Criterion: p.Pillar,
			Status:    status,
			Issue:     fmt.Sprintf("Scored %.0f/100 with %d expected signals missing", p.Score, len(p.Missing)),
			Detail:    p.Reasoning,
		}
		if len(p.Missing) > 0 {
			if fix, ok := suggestions[p.Missing[0]]; ok {
				entry.Fix = fix
			}
		}
		ga.Gaps = append(ga.Gaps, entry)
	}

	return ga
}

// evidenceStrength is the fraction of expected signals actually found
// across all pillars. It multiplies the overall score so that two
// applications with identical pillar averages but different evidentiary
// depth do not score identically.
func evidenceStrength(pillars []model.ComplianceComponentScore) float64 {
	found, possible := 0, 0
	for _, p := range pillars {
		found += len(p.Evidence)
		possible += len(p.Evidence) + len(p.Missing)
	}
	if possible == 0 {
		return 0
	}
	return float64(found) / float64(possible)
}

// overallScore applies the evidence-strength multiplier to the
// weighted pillar average: round(avg * (0.7 + 0.3*strength)).
func overallScore(pillars []model.ComplianceComponentScore, strength float64) float64 {
	var weighted, totalWeight float64
	for _, p := range pillars {
		weighted += p.Score * p.Weight
		totalWeight += p.Weight
	}
	if totalWeight == 0 {
		return 0
	}
	avg := weighted / totalWeight
	return model.Clamp(math.Round(avg * (0.7 + 0.3*strength)))
}
