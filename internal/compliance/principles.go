// Package compliance implements the two rule engines: the green-project
// principles evaluator and the environmental-taxonomy evaluator. Both
// share the same pillar shape: base score plus a fixed signal checklist,
// an evidence-strength multiplier, a gap analysis, and a two-part
// verdict (score gate AND hard veto). All rule catalogues are
// declarative tables compiled once at construction.
package compliance

import (
	"regexp"
	"strings"

	"github.com/dbisina/verdescore/internal/model"
)

// signal is one checklist item of a pillar: a textual pattern or a
// metric-presence test, a fixed point boost, and a reasoning fragment.
type signal struct {
	name      string
	pattern   *regexp.Regexp  // Nil when metric is set
	metric    model.MetricKey // Checked against the extractor output
	boost     float64
	reasoning string
}

// principlesThreshold is the score gate for the principles verdict
const principlesThreshold = 60.0

// principlesSuggestions maps missing signal names to remediation text
var principlesSuggestions = map[string]string{
	"eligible_category":     "Name the specific green project category the proceeds fund (e.g. solar generation, building retrofit)",
	"dedicated_proceeds":    "State that proceeds are used exclusively for the named project",
	"concrete_activity":     "Describe the concrete activity funded: installation, construction, purchase or retrofit",
	"quantified_metric":     "Add at least one quantified impact figure (capacity, tonnes CO2, percentage saved)",
	"carbon_quantified":     "Quantify the expected emissions reduction in tonnes of CO2 per year",
	"measurement_baseline":  "State the baseline the improvement is measured against",
	"target_date":           "Commit to a dated target (e.g. completion by a named year)",
	"segregated_account":    "Track proceeds in a separate account, sub-account or escrow",
	"external_audit":        "Engage an external auditor to attest the allocation of proceeds",
	"allocation_reporting":  "Commit to periodic reporting on the allocation of proceeds",
	"impact_reporting":      "Commit to annual reporting of impact metrics",
	"third_party_assurance": "Obtain third-party verification or recognized certification of claims",
	"defined_kpis":          "Define the key performance indicators that will be reported",
}

// PrinciplesEvaluator scores an application against the four
// green-project principles pillars.
type PrinciplesEvaluator struct {
	proceeds     []signal
	quantify     []signal
	traceability []signal
	reporting    []signal
}

// NewPrinciplesEvaluator compiles the signal checklists
func NewPrinciplesEvaluator() *PrinciplesEvaluator {
	return &PrinciplesEvaluator{
		proceeds: []signal{
			{name: "eligible_category", pattern: regexp.MustCompile(`(?i)solar|wind|hydro|geothermal|renewable|retrofit|recycl|reforestation|electric\s+(vehicle|bus)|wastewater|insulation|heat\s+pump`), boost: 25, reasoning: "names an eligible green project category"},
			{name: "dedicated_proceeds", pattern: regexp.MustCompile(`(?i)exclusively|dedicated|solely|entirely\s+for|100%\s+of\s+(the\s+)?proceeds`), boost: 15, reasoning: "proceeds dedicated to the stated project"},
			{name: "concrete_activity", pattern: regexp.MustCompile(`(?i)install|construct|build|deploy|purchase|acquire|retrofit|upgrade|replace|restore`), boost: 20, reasoning: "describes a concrete funded activity"},
		},
		quantify: []signal{
			{name: "quantified_metric", metric: "*", boost: 30, reasoning: "impact is quantified with extracted figures"},
			{name: "carbon_quantified", metric: model.MetricCarbonReduction, boost: 20, reasoning: "emissions reduction is quantified"},
			{name: "measurement_baseline", pattern: regexp.MustCompile(`(?i)baseline|compared\s+to|relative\s+to|against\s+current|versus\s+existing`), boost: 15, reasoning: "improvement is measured against a baseline"},
			{name: "target_date", pattern: regexp.MustCompile(`(?i)by\s+20\d\d|within\s+\d+\s+(months|years)|over\s+\d+\s+(months|years)`), boost: 15, reasoning: "commits to a dated target"},
		},
		traceability: []signal{
			{name: "segregated_account", pattern: regexp.MustCompile(`(?i)separate\s+account|sub-?account|escrow|earmarked|ring-?fenced`), boost: 30, reasoning: "proceeds tracked in a segregated account"},
			{name: "external_audit", pattern: regexp.MustCompile(`(?i)audit|auditor|attestation`), boost: 20, reasoning: "allocation subject to external audit"},
			{name: "allocation_reporting", pattern: regexp.MustCompile(`(?i)(allocation|use\s+of\s+proceeds).{0,40}report|report.{0,40}(allocation|proceeds)`), boost: 20, reasoning: "allocation reporting committed"},
		},
		reporting: []signal{
			{name: "impact_reporting", pattern: regexp.MustCompile(`(?i)annual(ly)?\s+report|quarterly\s+report|impact\s+report|progress\s+report`), boost: 25, reasoning: "periodic impact reporting committed"},
			{name: "third_party_assurance", pattern: regexp.MustCompile(`(?i)third[\s-]party|verified|assurance|certif|leed|breeam|iso\s*14001|energy\s+star`), boost: 25, reasoning: "claims carry third-party assurance"},
			{name: "defined_kpis", pattern: regexp.MustCompile(`(?i)kpi|indicator|metric|measured|monitoring`), boost: 15, reasoning: "reporting indicators are defined"},
		},
	}
}

// Evaluate scores the four pillars and issues the verdict. The hard
// veto is a HIGH greenwashing level from the independent detector.
func (e *PrinciplesEvaluator) Evaluate(text string, metrics model.Metrics, greenwashLevel model.RiskLevel) model.ComplianceVerdict {
	pillars := []model.ComplianceComponentScore{
		scorePillar("use_of_proceeds", 0.35, 30, e.proceeds, text, metrics),
		scorePillar("objective_quantification", 0.25, 20, e.quantify, text, metrics),
		scorePillar("proceeds_traceability", 0.20, 30, e.traceability, text, metrics),
		scorePillar("reporting_capability", 0.20, 30, e.reporting, text, metrics),
	}

	strength := evidenceStrength(pillars)
	overall := overallScore(pillars, strength)

	gaps := buildGapAnalysis(pillars, principlesSuggestions)
	gaps.PrimaryBlocker = principlesBlocker(gaps, overall, greenwashLevel)

	return model.ComplianceVerdict{
		Framework:        "green-project-principles",
		OverallScore:     overall,
		Compliant:        overall >= principlesThreshold && greenwashLevel != model.RiskHigh,
		EvidenceStrength: strength,
		Pillars:          pillars,
		Gaps:             gaps,
	}
}

// scorePillar runs one checklist: base score, fixed boost per hit,
// reasoning fragments on hit, missing-evidence names on miss, clamp.
func scorePillar(name string, weight, base float64, checklist []signal, text string, metrics model.Metrics) model.ComplianceComponentScore {
	score := base
	var evidence, missing, fragments []string

	for _, s := range checklist {
		if signalHit(s, text, metrics) {
			score += s.boost
			evidence = append(evidence, s.name)
			fragments = append(fragments, s.reasoning)
		} else {
			missing = append(missing, s.name)
		}
	}

	reasoning := "no supporting signals found"
	if len(fragments) > 0 {
		reasoning = strings.Join(fragments, "; ")
	}

	return model.ComplianceComponentScore{
		Pillar:    name,
		Score:     model.Clamp(score),
		Weight:    weight,
		Reasoning: reasoning,
		Evidence:  evidence,
		Missing:   missing,
	}
}

// signalHit tests one checklist item. The metric key "*" means "any
// extracted metric at all".
func signalHit(s signal, text string, metrics model.Metrics) bool {
	if s.pattern != nil {
		return s.pattern.MatchString(text)
	}
	if s.metric == "*" {
		return len(metrics) > 0
	}
	_, found := metrics[s.metric]
	return found
}

// principlesBlocker names the single criterion summarized as blocking
// compliance: the greenwashing veto first, then the worst gap.
func principlesBlocker(gaps model.GapAnalysis, overall float64, greenwashLevel model.RiskLevel) string {
	if greenwashLevel == model.RiskHigh {
		return "greenwashing-risk"
	}
	if overall >= principlesThreshold {
		return ""
	}
	for _, g := range gaps.Gaps {
		if g.Status == model.GapFail {
			return g.Criterion
		}
	}
	if len(gaps.Gaps) > 0 {
		return gaps.Gaps[0].Criterion
	}
	return ""
}
