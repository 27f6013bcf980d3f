package score

import (
	"testing"

	"github.com/dbisina/verdescore/internal/model"
)

func strongInputs() Inputs {
	return Inputs{
		SemanticScore: 90,
		Matches: []model.SimilarityResult{
			{Similarity: 0.9, WeightedScore: 90},
		},
		Principles: model.ComplianceVerdict{OverallScore: 80, Compliant: true},
		Taxonomy:   model.ComplianceVerdict{OverallScore: 75, Compliant: true},
		Risk:       model.GreenwashingAssessment{Score: 5, Level: model.RiskLow},
		Metrics: model.Metrics{
			model.MetricEnergyCapacity:  {Value: 50, Unit: "MW"},
			model.MetricCarbonReduction: {Value: 43800, Unit: "tonnes CO2"},
		},
		Amount: 5_000_000,
	}
}

func TestAggregate_StrongProjectApproved(t *testing.T) {
	out := NewAggregator().Aggregate(strongInputs())

	if out.Recommendation != model.RecommendApprove {
		t.Errorf("expected APPROVE, got %s (green %v, risk %v)", out.Recommendation, out.GreenScore, out.RiskScore)
	}
	if out.GreenScore < 70 {
		t.Errorf("expected green >= 70, got %v", out.GreenScore)
	}
	if out.RiskScore >= 30 {
		t.Errorf("expected low adjusted risk, got %v", out.RiskScore)
	}
	if out.ROIProjection <= 0 {
		t.Errorf("expected positive ROI projection, got %v", out.ROIProjection)
	}
}

func TestAggregate_ScoresAlwaysInRange(t *testing.T) {
	cases := []Inputs{
		{},
		strongInputs(),
		{
			SemanticScore: 100,
			Principles:    model.ComplianceVerdict{OverallScore: 100, Compliant: true},
			Taxonomy:      model.ComplianceVerdict{OverallScore: 100, Compliant: true},
			Risk:          model.GreenwashingAssessment{Score: 100, Level: model.RiskHigh},
			Amount:        100_000_000,
		},
	}
	for i, in := range cases {
		out := NewAggregator().Aggregate(in)
		if out.GreenScore < 0 || out.GreenScore > 100 {
			t.Errorf("case %d: green out of range: %v", i, out.GreenScore)
		}
		if out.RiskScore < 0 || out.RiskScore > 100 {
			t.Errorf("case %d: risk out of range: %v", i, out.RiskScore)
		}
	}
}

func TestAggregate_HighGreenwashingOverridesGoodScore(t *testing.T) {
	in := strongInputs()
	in.Risk = model.GreenwashingAssessment{Score: 55, Level: model.RiskHigh}

	out := NewAggregator().Aggregate(in)
	if out.Recommendation != model.RecommendReject {
		t.Errorf("HIGH greenwashing must reject regardless of green score, got %s", out.Recommendation)
	}
}

func TestAggregate_MissingMetricsRaisesRisk(t *testing.T) {
	agg := NewAggregator()

	withMetrics := strongInputs()
	noMetrics := strongInputs()
	noMetrics.Metrics = model.Metrics{}

	a := agg.Aggregate(withMetrics)
	b := agg.Aggregate(noMetrics)
	if b.RiskScore <= a.RiskScore {
		t.Errorf("absent metrics should raise risk: %v vs %v", b.RiskScore, a.RiskScore)
	}
}

func TestAggregate_LoanSizePenalties(t *testing.T) {
	agg := NewAggregator()

	small := strongInputs()
	small.Risk.Score = 20
	large := strongInputs()
	large.Risk.Score = 20
	large.Amount = 20_000_000
	huge := strongInputs()
	huge.Risk.Score = 20
	huge.Amount = 80_000_000

	s := agg.Aggregate(small).RiskScore
	l := agg.Aggregate(large).RiskScore
	h := agg.Aggregate(huge).RiskScore

	if !(s <= l && l <= h) {
		t.Errorf("risk should not decrease with loan size: %v, %v, %v", s, l, h)
	}
	if h-s != 10 {
		t.Errorf("expected 10-point penalty at the top breakpoint, got %v", h-s)
	}
}

func TestAggregate_AdjustThenClamp(t *testing.T) {
	// Detector already at 100: reliefs must still apply before the clamp,
	// pulling the final risk below 100.
	in := strongInputs()
	in.Risk = model.GreenwashingAssessment{Score: 100, Level: model.RiskHigh}

	out := NewAggregator().Aggregate(in)
	if out.RiskScore >= 100 {
		t.Errorf("expected taxonomy and similarity reliefs to apply before clamping, got %v", out.RiskScore)
	}
}

func TestRecommend_Ladder(t *testing.T) {
	cases := []struct {
		green, risk float64
		pass        bool
		level       model.RiskLevel
		want        model.Recommendation
	}{
		{85, 10, true, model.RiskLow, model.RecommendApprove},
		{85, 10, false, model.RiskLow, model.RecommendConditional},
		{55, 40, false, model.RiskMedium, model.RecommendConditional},
		{40, 70, false, model.RiskHigh, model.RecommendReject},
		{90, 65, true, model.RiskMedium, model.RecommendReject},
		{40, 40, false, model.RiskLow, model.RecommendReview},
	}
	for _, c := range cases {
		if got := recommend(c.green, c.risk, c.pass, c.level); got != c.want {
			t.Errorf("recommend(%v,%v,%v,%s) = %s, want %s", c.green, c.risk, c.pass, c.level, got, c.want)
		}
	}
}
