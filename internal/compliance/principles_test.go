package compliance

import (
	"testing"

	"github.com/dbisina/verdescore/internal/extract"
	"github.com/dbisina/verdescore/internal/model"
)

const solarPurpose = "Installation of 50 MW solar photovoltaic power plant with battery storage. " +
	"The project will reduce emissions by 43,800 tonnes CO2 per year over 18 months, " +
	"with proceeds earmarked in a separate account, annual impact reports and third-party verified metrics."

func TestPrinciples_WellDocumentedProjectCompliant(t *testing.T) {
	e := NewPrinciplesEvaluator()
	metrics := extract.NewMetricExtractor().Extract(solarPurpose)

	v := e.Evaluate(solarPurpose, metrics, model.RiskLow)

	if !v.Compliant {
		t.Errorf("expected compliance, got score %v, blocker %q", v.OverallScore, v.Gaps.PrimaryBlocker)
	}
	if v.OverallScore < principlesThreshold {
		t.Errorf("expected overall >= %v, got %v", principlesThreshold, v.OverallScore)
	}
	if v.EvidenceStrength <= 0 || v.EvidenceStrength > 1 {
		t.Errorf("evidence strength out of range: %v", v.EvidenceStrength)
	}
}

func TestPrinciples_GenericTextNonCompliant(t *testing.T) {
	e := NewPrinciplesEvaluator()

	v := e.Evaluate("Business expansion and general capital expenditure for warehouse operations.",
		model.Metrics{}, model.RiskLow)

	if v.Compliant {
		t.Error("generic capex should not be compliant")
	}
	if v.Gaps.PrimaryBlocker == "" {
		t.Error("non-compliant verdict should name a primary blocker")
	}
}

func TestPrinciples_GreenwashingVeto(t *testing.T) {
	e := NewPrinciplesEvaluator()
	metrics := extract.NewMetricExtractor().Extract(solarPurpose)

	v := e.Evaluate(solarPurpose, metrics, model.RiskHigh)

	if v.Compliant {
		t.Error("HIGH greenwashing risk must veto compliance regardless of score")
	}
	if v.Gaps.PrimaryBlocker != "greenwashing-risk" {
		t.Errorf("expected greenwashing-risk blocker, got %q", v.Gaps.PrimaryBlocker)
	}
}

func TestPrinciples_EveryPillarInExactlyOneList(t *testing.T) {
	e := NewPrinciplesEvaluator()

	for _, text := range []string{solarPurpose, "Generic warehouse expansion.", ""} {
		v := e.Evaluate(text, model.Metrics{}, model.RiskLow)

		if got := len(v.Gaps.Strengths) + len(v.Gaps.Gaps); got != len(v.Pillars) {
			t.Errorf("strengths+gaps = %d, want pillar count %d for %q", got, len(v.Pillars), text)
		}

		seen := map[string]int{}
		for _, s := range v.Gaps.Strengths {
			seen[s.Criterion]++
		}
		for _, g := range v.Gaps.Gaps {
			seen[g.Criterion]++
		}
		for _, p := range v.Pillars {
			if seen[p.Pillar] != 1 {
				t.Errorf("pillar %s appears %d times across gap lists", p.Pillar, seen[p.Pillar])
			}
		}
	}
}

func TestPrinciples_PillarScoresInRange(t *testing.T) {
	e := NewPrinciplesEvaluator()
	metrics := extract.NewMetricExtractor().Extract(solarPurpose)

	v := e.Evaluate(solarPurpose, metrics, model.RiskLow)
	for _, p := range v.Pillars {
		if p.Score < 0 || p.Score > 100 {
			t.Errorf("pillar %s score out of range: %v", p.Pillar, p.Score)
		}
	}
	if v.OverallScore < 0 || v.OverallScore > 100 {
		t.Errorf("overall score out of range: %v", v.OverallScore)
	}
}

func TestPrinciples_EvidenceDepthChangesScore(t *testing.T) {
	e := NewPrinciplesEvaluator()
	x := extract.NewMetricExtractor()

	thin := "Installation of solar panels."
	deep := "Installation of 10 MW solar panels reducing 5,000 tonnes CO2 per year, measured against the " +
		"current baseline, with proceeds earmarked, audited allocation reports and annual impact reports, third-party verified."

	vThin := e.Evaluate(thin, x.Extract(thin), model.RiskLow)
	vDeep := e.Evaluate(deep, x.Extract(deep), model.RiskLow)

	if vDeep.OverallScore <= vThin.OverallScore {
		t.Errorf("deeper evidence should score higher: %v vs %v", vDeep.OverallScore, vThin.OverallScore)
	}
	if vDeep.EvidenceStrength <= vThin.EvidenceStrength {
		t.Errorf("deeper evidence should have higher strength: %v vs %v", vDeep.EvidenceStrength, vThin.EvidenceStrength)
	}
}
