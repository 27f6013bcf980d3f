package risk

import (
	"strings"
	"testing"

	"github.com/dbisina/verdescore/internal/model"
)

func TestDetect_VagueCommitments(t *testing.T) {
	d := NewDetector()

	text := "We plan to implement sustainable green eco-friendly solutions across our operations. " +
		"We are committed to carbon neutrality and will offset emissions through future initiatives."

	got := d.Detect(text)

	if got.Level != model.RiskHigh && got.Level != model.RiskMedium {
		t.Errorf("expected MEDIUM or HIGH risk for vague text, got %s (score %v)", got.Level, got.Score)
	}
	if len(got.Flags) == 0 {
		t.Error("expected greenwashing flags")
	}

	// Digit-free text always carries the no-quantified-claims flag
	found := false
	for _, f := range got.Flags {
		if strings.Contains(f.Description, "No quantified claims") {
			found = true
		}
	}
	if !found {
		t.Error("expected the no-quantified-claims flag for digit-free text")
	}
}

func TestDetect_MitigatorSuppressesIndicator(t *testing.T) {
	d := NewDetector()

	unmitigated := d.Detect("Our operations are carbon neutral.")
	mitigated := d.Detect("Our operations are carbon neutral, third-party verified against science-based targets set in 2023.")

	if unmitigated.Score <= mitigated.Score {
		t.Errorf("verified claim should score lower: %v vs %v", mitigated.Score, unmitigated.Score)
	}
	for _, f := range mitigated.Flags {
		if strings.Contains(f.Description, "carbon-neutrality") {
			t.Error("mitigated carbon-neutral claim should not be flagged")
		}
	}
}

func TestDetect_QuantifiedProjectLowRisk(t *testing.T) {
	d := NewDetector()

	got := d.Detect("Installation of 50 MW solar photovoltaic power plant reducing emissions by " +
		"43,800 tonnes CO2 per year. LEED Gold certification targeted. Third-party verified.")

	if got.Level != model.RiskLow {
		t.Errorf("expected LOW risk for quantified verified project, got %s (score %v)", got.Level, got.Score)
	}
}

func TestDetect_ScoreCappedAt100(t *testing.T) {
	d := NewDetector()

	text := strings.Repeat("We are carbon neutral. We will offset through future initiatives. "+
		"100% green. Eco-friendly. Committed to sustainability. We plan to explore green solutions. ", 3)

	got := d.Detect(text)
	if got.Score > 100 {
		t.Errorf("score must be capped at 100, got %v", got.Score)
	}
	if got.Level != model.RiskHigh {
		t.Errorf("expected HIGH, got %s", got.Level)
	}
}

func TestDetect_LevelThresholds(t *testing.T) {
	cases := []struct {
		score float64
		want  model.RiskLevel
	}{
		{0, model.RiskLow},
		{24, model.RiskLow},
		{25, model.RiskMedium},
		{49, model.RiskMedium},
		{50, model.RiskHigh},
		{100, model.RiskHigh},
	}
	for _, c := range cases {
		if got := model.RiskLevelFor(c.score); got != c.want {
			t.Errorf("RiskLevelFor(%v) = %s, want %s", c.score, got, c.want)
		}
	}
}
