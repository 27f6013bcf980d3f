// Package risk detects greenwashing signals: vague, unverifiable or
// contradictory environmental claims. The detector is independent of
// the compliance evaluators and holds no mutable state, so the
// aggregator can treat it as one more standalone signal.
package risk

import (
	"fmt"
	"regexp"

	"github.com/dbisina/verdescore/internal/model"
)

// indicator is one greenwashing pattern with an optional mitigator: a
// hit only counts when the mitigator does NOT also match. Each pair is
// evaluated independently; there is no cross-indicator precedence.
type indicator struct {
	pattern     *regexp.Regexp
	mitigator   *regexp.Regexp
	severity    model.FlagSeverity
	description string
}

var severityPoints = map[model.FlagSeverity]float64{
	model.FlagHigh:   30,
	model.FlagMedium: 15,
	model.FlagLow:    5,
}

// Detector scans purpose text against the fixed indicator catalogue
type Detector struct {
	indicators []indicator
	digit      *regexp.Regexp
	vagueTerm  *regexp.Regexp
	specific   *regexp.Regexp
}

// NewDetector compiles the indicator catalogue
func NewDetector() *Detector {
	return &Detector{
		indicators: []indicator{
			{
				pattern:     regexp.MustCompile(`(?i)carbon[\s-]neutral`),
				mitigator:   regexp.MustCompile(`(?i)verified|science[\s-]based|certified|third[\s-]party`),
				severity:    model.FlagHigh,
				description: "Unverified carbon-neutrality claim",
			},
			{
				pattern:     regexp.MustCompile(`(?i)offset.{0,40}(future|planned|upcoming)|future.{0,40}offset`),
				severity:    model.FlagHigh,
				description: "Emissions offset deferred to unspecified future initiatives",
			},
			{
				pattern:     regexp.MustCompile(`(?i)100%\s+(green|sustainable|eco)`),
				mitigator:   regexp.MustCompile(`(?i)certified|audited|verified`),
				severity:    model.FlagMedium,
				description: "Absolute environmental claim without certification",
			},
			{
				pattern:     regexp.MustCompile(`(?i)eco[\s-]friendly|environmentally\s+friendly`),
				mitigator:   regexp.MustCompile(`(?i)certified|standard|label`),
				severity:    model.FlagLow,
				description: "Generic eco-friendly language",
			},
			{
				pattern:     regexp.MustCompile(`(?i)committed\s+to\s+(sustainability|carbon|the\s+environment|net[\s-]zero)`),
				mitigator:   regexp.MustCompile(`(?i)target|deadline|by\s+20\d\d|science[\s-]based`),
				severity:    model.FlagMedium,
				description: "Commitment language without a dated target",
			},
			{
				pattern:     regexp.MustCompile(`(?i)(will|plan\s+to|intend\s+to|aim\s+to)\s+(implement|explore|consider|adopt)`),
				severity:    model.FlagLow,
				description: "Future-tense intentions rather than funded activities",
			},
			{
				pattern:     regexp.MustCompile(`(?i)green\s+(solutions|initiatives|practices)\b`),
				mitigator:   regexp.MustCompile(`(?i)\d`),
				severity:    model.FlagLow,
				description: "Unquantified green buzzwords",
			},
		},
		digit:     regexp.MustCompile(`\d`),
		vagueTerm: regexp.MustCompile(`(?i)\b(sustainable|green|eco-friendly|eco-conscious|environmentally|clean|natural|responsible)\b`),
		specific:  regexp.MustCompile(`(?i)\d[\d,.]*\s*(mw|gw|kw|mwh|kwh|gwh|tonnes?|tons?|kg|%|percent|hectares?|liters?|litres?|jobs?|months?|years?)`),
	}
}

// Detect runs the indicator catalogue plus the two always-on
// heuristics. Score is capped at 100; Level is derived from Score.
func (d *Detector) Detect(text string) model.GreenwashingAssessment {
	var flags []model.GreenwashFlag
	var score float64

	for _, ind := range d.indicators {
		if !ind.pattern.MatchString(text) {
			continue
		}
		if ind.mitigator != nil && ind.mitigator.MatchString(text) {
			continue
		}
		flags = append(flags, model.GreenwashFlag{Description: ind.description, Severity: ind.severity})
		score += severityPoints[ind.severity]
	}

	// Heuristic: no quantified claims anywhere in the text
	if !d.digit.MatchString(text) {
		flags = append(flags, model.GreenwashFlag{
			Description: "No quantified claims: text contains no numbers at all",
			Severity:    model.FlagMedium,
		})
		score += severityPoints[model.FlagMedium]
	}

	// Heuristic: vague buzzwords vastly outnumber specific figures
	vague := len(d.vagueTerm.FindAllString(text, -1))
	specific := len(d.specific.FindAllString(text, -1))
	if vague > 3 && specific < 2 {
		flags = append(flags, model.GreenwashFlag{
			Description: fmt.Sprintf("High vagueness ratio: %d vague terms against %d specific figures", vague, specific),
			Severity:    model.FlagMedium,
		})
		score += severityPoints[model.FlagMedium]
	}

	if score > 100 {
		score = 100
	}

	return model.GreenwashingAssessment{
		Score: score,
		Level: model.RiskLevelFor(score),
		Flags: flags,
	}
}
