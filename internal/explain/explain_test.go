package explain

import (
	"math"
	"strings"
	"testing"

	"github.com/dbisina/verdescore/internal/model"
)

func sampleResult() *model.EvaluationResult {
	return &model.EvaluationResult{
		SemanticScore: 90,
		GreenScore:    82,
		RiskScore:     10,
		Metrics: model.Metrics{
			model.MetricEnergyCapacity: {Value: 50, Unit: "MW"},
		},
		Matches: []model.SimilarityResult{
			{Category: model.CategoryReference{ID: "solar", Name: "Solar Energy"}, Similarity: 0.9, WeightedScore: 90},
		},
		Principles: model.ComplianceVerdict{
			OverallScore: 75,
			Compliant:    true,
			Pillars: []model.ComplianceComponentScore{
				{Pillar: "objective_quantification", Score: 80},
			},
		},
		Taxonomy: model.ComplianceVerdict{
			OverallScore: 70,
			Compliant:    true,
			ActivityCode: "CCM-4.1",
		},
		Risk:           model.GreenwashingAssessment{Score: 5, Level: model.RiskLow},
		Recommendation: model.RecommendApprove,
	}
}

func TestBuildAttribution_SumIdentity(t *testing.T) {
	attr := BuildAttribution(sampleResult())

	var sum float64
	for _, e := range attr.Entries {
		sum += e.Contribution
	}
	if math.Abs(sum-(attr.TotalPositive-attr.TotalNegative)) > 1e-9 {
		t.Errorf("sum(contributions) = %v, want %v", sum, attr.TotalPositive-attr.TotalNegative)
	}

	want := model.Clamp(attr.TotalPositive - attr.TotalNegative + attr.BaseOffset)
	if attr.AttributedScore != want {
		t.Errorf("attributed score = %v, want clamp identity %v", attr.AttributedScore, want)
	}
	if attr.AttributedScore < 0 || attr.AttributedScore > 100 {
		t.Errorf("attributed score out of range: %v", attr.AttributedScore)
	}
}

func TestBuildAttribution_SoftConsistencyWithGreenScore(t *testing.T) {
	res := sampleResult()
	attr := BuildAttribution(res)

	if diff := math.Abs(attr.AttributedScore - res.GreenScore); diff > consistencyTolerance {
		t.Errorf("attribution diverges from green score by %v, tolerance %v", diff, consistencyTolerance)
	}
}

func TestBuildAttribution_RiskIsOnlyNegative(t *testing.T) {
	attr := BuildAttribution(sampleResult())

	for _, e := range attr.Entries {
		if e.Category == "risk" {
			if e.Contribution > 0 || e.MaxPossible > 0 {
				t.Errorf("risk must be negative-only: %+v", e)
			}
		} else if e.Contribution < 0 {
			t.Errorf("category %s must not be negative: %v", e.Category, e.Contribution)
		}
	}
}

func TestNarrative_OnlyApplicableSentences(t *testing.T) {
	res := sampleResult()
	text := Narrative(res)

	if !strings.Contains(text, "strong alignment") {
		t.Error("expected strong-alignment sentence for green score >= 70")
	}
	if !strings.Contains(text, "Solar Energy") {
		t.Error("expected primary category sentence")
	}
	if !strings.Contains(text, "taxonomy-eligible") {
		t.Error("expected taxonomy eligibility sentence")
	}
	if strings.Contains(text, "HIGH") {
		t.Error("no high-risk sentence should appear for LOW risk")
	}

	weak := sampleResult()
	weak.GreenScore = 30
	weak.Principles.Compliant = false
	weak.Principles.Gaps.PrimaryBlocker = "use_of_proceeds"
	weak.Taxonomy.Compliant = false
	weak.Taxonomy.Gaps.PrimaryBlocker = "harm-violation"
	weak.Risk = model.GreenwashingAssessment{Score: 60, Level: model.RiskHigh, Flags: []model.GreenwashFlag{{}}}
	weak.Recommendation = model.RecommendReject

	weakText := Narrative(weak)
	if !strings.Contains(weakText, "falling short") {
		t.Error("expected falling-short sentence")
	}
	if !strings.Contains(weakText, "use of proceeds") {
		t.Error("expected principles blocker sentence")
	}
	if !strings.Contains(weakText, "HIGH") {
		t.Error("expected high-risk sentence")
	}
	if strings.Contains(weakText, "satisfies the green-project principles") {
		t.Error("compliance sentence must not appear for a non-compliant verdict")
	}
}

func TestSuggestions_SortedByGain(t *testing.T) {
	res := sampleResult()
	res.SemanticScore = 20 // Large semantic shortfall
	res.RiskScore = 60     // Large risk cut
	attr := BuildAttribution(res)

	sugs := Suggestions(attr)
	if len(sugs) == 0 {
		t.Fatal("expected suggestions for shortfall categories")
	}
	for i := 1; i < len(sugs); i++ {
		if sugs[i].PotentialGain > sugs[i-1].PotentialGain {
			t.Errorf("suggestions not sorted at %d", i)
		}
	}
}

func TestSuggestions_NoneWhenNearMax(t *testing.T) {
	res := sampleResult()
	res.SemanticScore = 100
	res.RiskScore = 0
	res.Principles.OverallScore = 100
	res.Taxonomy.OverallScore = 100
	res.Principles.Pillars[0].Score = 100

	sugs := Suggestions(BuildAttribution(res))
	if len(sugs) != 0 {
		t.Errorf("expected no suggestions near maximum, got %+v", sugs)
	}
}
