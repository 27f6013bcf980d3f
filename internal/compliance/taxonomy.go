package compliance

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dbisina/verdescore/internal/model"
)

// taxonomyThreshold is the score gate for taxonomy eligibility
const taxonomyThreshold = 50.0

// activityHitPoints is the fixed score per keyword hit and also the
// minimum score an activity must reach to be selected.
const activityHitPoints = 20.0

// Threshold sub-score adjustments: fixed bonus per validated pass,
// fixed penalty per failure; missing data has zero impact.
const (
	thresholdBase    = 50.0
	thresholdBonus   = 15.0
	thresholdPenalty = 20.0
)

var taxonomySuggestions = map[string]string{
	"activity_match":       "Describe the activity using recognized taxonomy terms so it can be classified",
	"objective_language":   "State the environmental objective the activity contributes to (e.g. climate change mitigation)",
	"carbon_metric":        "Quantify avoided emissions in tonnes of CO2 per year",
	"output_metric":        "Quantify the activity output (capacity, generation, tonnes diverted, hectares restored)",
	"substantial_scale":    "Demonstrate the contribution is substantial relative to the investment size",
	"threshold_data":       "Provide the figures needed to verify the technical screening criteria",
	"safeguards_policy":    "Reference minimum social safeguards: labor standards, human rights, anti-corruption",
	"permits_compliance":   "Confirm required permits and regulatory compliance are in place",
	"community_engagement": "Describe stakeholder or community engagement for the project",
}

// harmRule is one do-no-significant-harm pattern. A match counts as a
// violation only when the mitigation pattern does not also match.
type harmRule struct {
	objective   string
	pattern     *regexp.Regexp
	mitigation  *regexp.Regexp
	severity    model.HarmSeverity
	description string
}

// TaxonomyEvaluator classifies the activity, verifies its technical
// screening criteria, runs the DNSH screen and scores the five
// taxonomy pillars.
type TaxonomyEvaluator struct {
	catalog      []model.CategoryReference
	harms        []harmRule
	contribution []signal
	safeguards   []signal
	keywordRes   map[string]*regexp.Regexp
}

// NewTaxonomyEvaluator compiles the rule catalogues over the shared
// category catalogue. Catalogue order is the tie-break order for
// activity matching.
func NewTaxonomyEvaluator(catalog []model.CategoryReference) *TaxonomyEvaluator {
	e := &TaxonomyEvaluator{
		catalog:    catalog,
		keywordRes: make(map[string]*regexp.Regexp),
		harms: []harmRule{
			{
				objective:   "climate_change_mitigation",
				pattern:     regexp.MustCompile(`(?i)\bcoal\b`),
				mitigation:  regexp.MustCompile(`(?i)phase[\s-]?out|closure|decommission|transition\s+away|replac`),
				severity:    model.HarmCritical,
				description: "Coal-related activity",
			},
			{
				objective:   "climate_change_mitigation",
				pattern:     regexp.MustCompile(`(?i)(oil|gas)\s+(extraction|drilling|exploration|field)|petroleum\s+(production|refining)`),
				mitigation:  regexp.MustCompile(`(?i)phase[\s-]?out|decommission|transition\s+away`),
				severity:    model.HarmCritical,
				description: "Fossil fuel extraction or refining",
			},
			{
				objective:   "biodiversity",
				pattern:     regexp.MustCompile(`(?i)deforest|clear[\s-]cutting|\blogging\b`),
				mitigation:  regexp.MustCompile(`(?i)fsc|certified\s+sustainable|replant|reforestation`),
				severity:    model.HarmSerious,
				description: "Forest degradation without certified management",
			},
			{
				objective:   "climate_change_mitigation",
				pattern:     regexp.MustCompile(`(?i)peat(land)?\s+(drainage|extraction|conversion)`),
				severity:    model.HarmCritical,
				description: "Peatland drainage or extraction",
			},
			{
				objective:   "circular_economy",
				pattern:     regexp.MustCompile(`(?i)\blandfill\b`),
				mitigation:  regexp.MustCompile(`(?i)gas\s+capture|methane\s+capture|divert(ed|ing)?\s+from\s+landfill`),
				severity:    model.HarmModerate,
				description: "Landfill disposal without gas capture or diversion",
			},
			{
				objective:   "water",
				pattern:     regexp.MustCompile(`(?i)river\s+diversion|groundwater\s+depletion|aquifer\s+drawdown`),
				mitigation:  regexp.MustCompile(`(?i)impact\s+assessment|mitigation\s+plan`),
				severity:    model.HarmSerious,
				description: "Water resource harm without assessment",
			},
			{
				objective:   "pollution_prevention",
				pattern:     regexp.MustCompile(`(?i)\b(cement|steel)\s+(plant|production|works)|smelter`),
				mitigation:  regexp.MustCompile(`(?i)low[\s-]carbon|carbon\s+capture|electric\s+arc|green\s+hydrogen`),
				severity:    model.HarmModerate,
				description: "High-emission industrial process without abatement",
			},
		},
		contribution: []signal{
			{name: "objective_language", pattern: regexp.MustCompile(`(?i)climate\s+change\s+mitigation|renewable\s+energy|emission\s+reduction|reduc\w*\s+(co2|carbon|emissions)|decarboni`), boost: 25, reasoning: "states the environmental objective advanced"},
			{name: "carbon_metric", metric: model.MetricCarbonReduction, boost: 25, reasoning: "avoided emissions quantified"},
			{name: "output_metric", metric: "*", boost: 15, reasoning: "activity output quantified"},
			{name: "substantial_scale", pattern: regexp.MustCompile(`(?i)\d[\d,]*\s*(mw|gwh|mwh)|\d{4,}\s*(tonnes?|tons?)|\d{2,}\s*hectares?`), boost: 15, reasoning: "contribution is at substantial scale"},
		},
		safeguards: []signal{
			{name: "safeguards_policy", pattern: regexp.MustCompile(`(?i)human\s+rights|labor\s+standards|labour\s+standards|ilo|oecd|anti-?corruption|governance\s+policy`), boost: 25, reasoning: "social safeguards referenced"},
			{name: "permits_compliance", pattern: regexp.MustCompile(`(?i)permit|licens|regulatory\s+compliance|environmental\s+(approval|clearance|impact\s+assessment)`), boost: 20, reasoning: "permits and regulatory compliance addressed"},
			{name: "community_engagement", pattern: regexp.MustCompile(`(?i)community|stakeholder|consultation|local\s+employment`), boost: 15, reasoning: "community engagement described"},
		},
	}

	for _, cat := range catalog {
		for _, kw := range cat.Keywords {
			if _, ok := e.keywordRes[kw]; !ok {
				e.keywordRes[kw] = keywordPattern(kw)
			}
		}
	}
	return e
}

// keywordPattern matches a keyword as whole words. A trailing "*"
// marks a stem keyword ("recycl*") that matches any completion;
// everything else requires a closing word boundary so "bus" never
// matches "business".
func keywordPattern(kw string) *regexp.Regexp {
	if stem, ok := strings.CutSuffix(kw, "*"); ok {
		return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(stem) + `\w*`)
	}
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(kw) + `\b`)
}

// ActivityMatch is the outcome of the activity classification step
type ActivityMatch struct {
	Category model.CategoryReference
	Score    float64
}

// MatchActivity scores every catalogue activity by keyword hits (fixed
// points per hit) and selects the best candidate if it reaches the
// minimum. The first candidate reaching the maximum wins ties, in
// catalogue iteration order.
func (e *TaxonomyEvaluator) MatchActivity(text string) *ActivityMatch {
	var best *ActivityMatch
	for _, cat := range e.catalog {
		score := 0.0
		for _, kw := range cat.Keywords {
			if e.keywordRes[kw].MatchString(text) {
				score += activityHitPoints
			}
		}
		if score < activityHitPoints {
			continue
		}
		if best == nil || score > best.Score {
			best = &ActivityMatch{Category: cat, Score: score}
		}
	}
	return best
}

// validateThresholds applies each technical screening criterion against
// the extracted metrics. Units are part of a value's identity: an
// extracted figure in a different unit counts as missing, never as a
// pass or failure.
func validateThresholds(rules []model.ThresholdRule, metrics model.Metrics) []model.ThresholdResult {
	results := make([]model.ThresholdResult, 0, len(rules))
	for _, rule := range rules {
		if rule.Comparator == model.CompareCompliant {
			results = append(results, model.ThresholdResult{Rule: rule, Status: model.ThresholdPass})
			continue
		}

		extracted, found := metrics[rule.Metric]
		if !found || (rule.Unit != "" && extracted.Unit != rule.Unit) {
			results = append(results, model.ThresholdResult{Rule: rule, Status: model.ThresholdMissing})
			continue
		}

		status := model.ThresholdFail
		if compare(extracted.Value, rule.Comparator, rule.Value) {
			status = model.ThresholdPass
		}
		m := extracted
		results = append(results, model.ThresholdResult{Rule: rule, Status: status, Extracted: &m})
	}
	return results
}

func compare(value float64, op model.Comparator, limit float64) bool {
	switch op {
	case model.CompareLT:
		return value < limit
	case model.CompareLTE:
		return value <= limit
	case model.CompareGT:
		return value > limit
	case model.CompareGTE:
		return value >= limit
	case model.CompareEQ:
		return value == limit
	default:
		return false
	}
}

// screenHarms runs the DNSH catalogue. A match neutralized by its
// mitigation pattern is not a violation.
func (e *TaxonomyEvaluator) screenHarms(text string) []model.HarmViolation {
	var violations []model.HarmViolation
	for _, h := range e.harms {
		if !h.pattern.MatchString(text) {
			continue
		}
		if h.mitigation != nil && h.mitigation.MatchString(text) {
			continue
		}
		violations = append(violations, model.HarmViolation{
			Objective:   h.objective,
			Severity:    h.severity,
			Description: h.description,
		})
	}
	return violations
}

// Evaluate runs activity matching, threshold verification, the DNSH
// screen and the five taxonomy pillars. Any critical harm violation
// vetoes eligibility regardless of the scores.
func (e *TaxonomyEvaluator) Evaluate(text string, metrics model.Metrics) model.ComplianceVerdict {
	activity := e.MatchActivity(text)
	violations := e.screenHarms(text)

	var thresholds []model.ThresholdResult
	if activity != nil {
		thresholds = validateThresholds(activity.Category.Thresholds, metrics)
	}

	pillars := []model.ComplianceComponentScore{
		e.classificationPillar(activity),
		scorePillar("substantial_contribution", 0.30, 20, e.contribution, text, metrics),
		harmPillar(violations),
		thresholdPillar(thresholds, activity != nil),
		scorePillar("minimum_safeguards", 0.10, 50, e.safeguards, text, metrics),
	}

	strength := evidenceStrength(pillars)
	overall := overallScore(pillars, strength)
	critical := hasCritical(violations)

	gaps := buildGapAnalysis(pillars, taxonomySuggestions)
	if overall < taxonomyThreshold || critical {
		gaps.PrimaryBlocker = taxonomyBlocker(pillars, violations, thresholds)
	}

	verdict := model.ComplianceVerdict{
		Framework:        "environmental-taxonomy",
		OverallScore:     overall,
		Compliant:        overall >= taxonomyThreshold && !critical,
		EvidenceStrength: strength,
		Pillars:          pillars,
		Gaps:             gaps,
		Thresholds:       thresholds,
		HarmViolations:   violations,
	}
	if activity != nil {
		verdict.ActivityCode = activity.Category.ActivityCode
	}
	return verdict
}

// classificationPillar converts the activity match into a pillar score
func (e *TaxonomyEvaluator) classificationPillar(activity *ActivityMatch) model.ComplianceComponentScore {
	if activity == nil {
		return model.ComplianceComponentScore{
			Pillar:    "activity_classification",
			Score:     0,
			Weight:    0.20,
			Reasoning: "no taxonomy activity matched the description",
			Missing:   []string{"activity_match"},
		}
	}
	return model.ComplianceComponentScore{
		Pillar: "activity_classification",
		Score:  model.Clamp(activity.Score + 40),
		Weight: 0.20,
		Reasoning: fmt.Sprintf("classified as %s (%s) with keyword score %.0f",
			activity.Category.Name, activity.Category.ActivityCode, activity.Score),
		Evidence: []string{"activity_match"},
	}
}

// harmPillar scores the DNSH screen: full marks with no violations,
// fixed deductions per severity, zero on any critical finding.
func harmPillar(violations []model.HarmViolation) model.ComplianceComponentScore {
	score := 100.0
	var fragments []string
	for _, v := range violations {
		switch v.Severity {
		case model.HarmCritical:
			score = 0
		case model.HarmSerious:
			score -= 40
		case model.HarmModerate:
			score -= 20
		}
		fragments = append(fragments, fmt.Sprintf("%s (%s)", v.Description, v.Severity))
	}

	p := model.ComplianceComponentScore{
		Pillar: "do_no_significant_harm",
		Score:  model.Clamp(score),
		Weight: 0.20,
	}
	if len(violations) == 0 {
		p.Reasoning = "no harm indicators detected"
		p.Evidence = []string{"harm_screen_clear"}
	} else {
		p.Reasoning = strings.Join(fragments, "; ")
		p.Missing = []string{"harm_screen_clear"}
	}
	return p
}

// thresholdPillar folds threshold outcomes into a pillar score
func thresholdPillar(results []model.ThresholdResult, activityMatched bool) model.ComplianceComponentScore {
	p := model.ComplianceComponentScore{
		Pillar: "technical_screening",
		Weight: 0.20,
	}

	if !activityMatched {
		p.Score = 0
		p.Reasoning = "no activity matched, screening criteria not applicable"
		p.Missing = []string{"threshold_data"}
		return p
	}

	score := thresholdBase
	passed, failed, missing := 0, 0, 0
	for _, r := range results {
		switch r.Status {
		case model.ThresholdPass:
			score += thresholdBonus
			passed++
		case model.ThresholdFail:
			score -= thresholdPenalty
			failed++
		case model.ThresholdMissing:
			missing++
		}
	}

	p.Score = model.Clamp(score)
	p.Reasoning = fmt.Sprintf("%d criteria passed, %d failed, %d missing data", passed, failed, missing)
	if passed > 0 {
		p.Evidence = append(p.Evidence, "threshold_data")
	}
	if failed > 0 || missing > 0 {
		p.Missing = append(p.Missing, "threshold_data")
	}
	return p
}

func hasCritical(violations []model.HarmViolation) bool {
	for _, v := range violations {
		if v.Severity == model.HarmCritical {
			return true
		}
	}
	return false
}

// taxonomyBlocker picks the first failing criterion in fixed priority
// order: no substantial contribution, then harm violations, then failed
// thresholds, then missing threshold data.
func taxonomyBlocker(pillars []model.ComplianceComponentScore, violations []model.HarmViolation, thresholds []model.ThresholdResult) string {
	for _, p := range pillars {
		if p.Pillar == "substantial_contribution" && p.Score < partialFloor {
			return "no-substantial-contribution"
		}
	}
	if len(violations) > 0 {
		return "harm-violation"
	}
	for _, r := range thresholds {
		if r.Status == model.ThresholdFail {
			return "failed-threshold"
		}
	}
	for _, r := range thresholds {
		if r.Status == model.ThresholdMissing {
			return "missing-threshold-data"
		}
	}
	return ""
}
