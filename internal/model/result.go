package model

import "time"

// EvaluationResult is the complete output of one evaluation run.
// Every nested sub-result is exposed so the presentation layer can
// render each independently.
type EvaluationResult struct {
	Application Application `json:"application"`
	EvaluatedAt time.Time   `json:"evaluated_at"`

	Metrics    Metrics                `json:"metrics"`    // Extracted quantified values
	Matches    []SimilarityResult     `json:"matches"`    // Ranked category matches
	Principles ComplianceVerdict      `json:"principles"` // Green-project principles verdict
	Taxonomy   ComplianceVerdict      `json:"taxonomy"`   // Environmental-taxonomy verdict
	Risk       GreenwashingAssessment `json:"risk"`

	SemanticScore  float64        `json:"semantic_score"` // 0-100, from category matching
	GreenScore     float64        `json:"green_score"`    // 0-100 composite
	RiskScore      float64        `json:"risk_score"`     // 0-100 adjusted risk
	Recommendation Recommendation `json:"recommendation"`
	ROIProjection  float64        `json:"roi_projection"` // Indicative annual return, percent

	Attribution Attribution  `json:"attribution"`
	Narrative   string       `json:"narrative"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`

	Certifications []Certification `json:"certifications,omitempty"` // Assurance schemes mentioned in the text

	Advice *Advice `json:"advice,omitempty"` // Optional LLM advisory, never affects scores
}

// AssuranceTier grades how independently a certification claim can be checked
type AssuranceTier string

const (
	TierAccredited AssuranceTier = "accredited" // Named scheme with external accreditation
	TierVerified   AssuranceTier = "verified"   // Third-party verification without a named scheme
	TierDeclared   AssuranceTier = "declared"   // Self-declared certification language
)

// Certification is one assurance scheme mentioned in the purpose text.
// Informational only: certifications are listed in reports but the
// scores are computed from the rule engines alone.
type Certification struct {
	Scheme  string        `json:"scheme"`
	Tier    AssuranceTier `json:"tier"`
	Mention string        `json:"mention"` // Text fragment that matched
}

// Recommendation is the categorical lending decision
type Recommendation string

const (
	RecommendApprove     Recommendation = "APPROVE"
	RecommendConditional Recommendation = "CONDITIONAL_APPROVE"
	RecommendReject      Recommendation = "REJECT"
	RecommendReview      Recommendation = "MANUAL_REVIEW"
)

// ComplianceComponentScore is the result for one pillar of a rule engine
type ComplianceComponentScore struct {
	Pillar    string   `json:"pillar"`
	Score     float64  `json:"score"`  // 0-100
	Weight    float64  `json:"weight"` // Pillar weight within the engine
	Reasoning string   `json:"reasoning"`
	Evidence  []string `json:"evidence,omitempty"` // Signals found in the text
	Missing   []string `json:"missing,omitempty"`  // Signals checked but not found
}

// ComplianceVerdict aggregates pillar scores into an overall verdict
type ComplianceVerdict struct {
	Framework        string                     `json:"framework"`
	OverallScore     float64                    `json:"overall_score"` // 0-100
	Compliant        bool                       `json:"compliant"`
	EvidenceStrength float64                    `json:"evidence_strength"` // Found/possible signals in [0,1]
	Pillars          []ComplianceComponentScore `json:"pillars"`
	Gaps             GapAnalysis                `json:"gap_analysis"`

	ActivityCode   string            `json:"activity_code,omitempty"`   // Matched taxonomy activity
	Thresholds     []ThresholdResult `json:"thresholds,omitempty"`      // Technical screening outcomes
	HarmViolations []HarmViolation   `json:"harm_violations,omitempty"` // Do-no-harm findings
}

// GapStatus classifies one criterion of the gap analysis
type GapStatus string

const (
	GapPass    GapStatus = "PASS"
	GapPartial GapStatus = "PARTIAL"
	GapFail    GapStatus = "FAIL"
)

// GapEntry is one criterion of the gap analysis
type GapEntry struct {
	Criterion string    `json:"criterion"`
	Status    GapStatus `json:"status"`
	Issue     string    `json:"issue,omitempty"`
	Fix       string    `json:"fix,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// GapAnalysis partitions every pillar into exactly one of the two lists
// and names the single criterion blocking compliance, if any.
type GapAnalysis struct {
	Strengths      []GapEntry `json:"strengths"`
	Gaps           []GapEntry `json:"gaps"`
	PrimaryBlocker string     `json:"primary_blocker,omitempty"`
}

// ThresholdStatus is the outcome of validating one screening criterion
type ThresholdStatus string

const (
	ThresholdPass    ThresholdStatus = "pass"
	ThresholdFail    ThresholdStatus = "fail"
	ThresholdMissing ThresholdStatus = "missing" // Metric not extractable from text
)

// ThresholdResult is the outcome of one technical screening criterion
type ThresholdResult struct {
	Rule      ThresholdRule    `json:"rule"`
	Status    ThresholdStatus  `json:"status"`
	Extracted *ExtractedMetric `json:"extracted,omitempty"`
}

// HarmSeverity grades a do-no-harm violation
type HarmSeverity string

const (
	HarmModerate HarmSeverity = "moderate"
	HarmSerious  HarmSeverity = "serious"
	HarmCritical HarmSeverity = "critical" // Forces taxonomy ineligibility
)

// HarmViolation is one unmitigated do-no-harm finding
type HarmViolation struct {
	Objective   string       `json:"objective"` // Environmental objective harmed
	Severity    HarmSeverity `json:"severity"`
	Description string       `json:"description"`
}

// RiskLevel buckets the greenwashing risk score
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// RiskLevelFor maps a risk score to its level
func RiskLevelFor(score float64) RiskLevel {
	switch {
	case score >= 50:
		return RiskHigh
	case score >= 25:
		return RiskMedium
	default:
		return RiskLow
	}
}

// FlagSeverity grades one greenwashing indicator
type FlagSeverity string

const (
	FlagLow    FlagSeverity = "low"
	FlagMedium FlagSeverity = "medium"
	FlagHigh   FlagSeverity = "high"
)

// GreenwashFlag is one triggered greenwashing indicator
type GreenwashFlag struct {
	Description string       `json:"description"`
	Severity    FlagSeverity `json:"severity"`
}

// GreenwashingAssessment is the detector's complete output.
// Level is a pure function of Score (>=50 HIGH, >=25 MEDIUM, else LOW).
type GreenwashingAssessment struct {
	Score float64         `json:"risk_score"` // 0-100
	Level RiskLevel       `json:"risk_level"`
	Flags []GreenwashFlag `json:"flags,omitempty"`
}

// AttributionEntry decomposes one factor's contribution to the final score
type AttributionEntry struct {
	Category     string  `json:"category"`
	Name         string  `json:"name"`
	Contribution float64 `json:"score_contribution"` // Signed
	MaxPossible  float64 `json:"max_possible"`       // Signed
	Details      string  `json:"details,omitempty"`
}

// Attribution re-expresses the green score as per-factor contributions.
// AttributedScore = clamp(TotalPositive - TotalNegative + base offset, 0, 100).
type Attribution struct {
	Entries         []AttributionEntry `json:"entries"`
	TotalPositive   float64            `json:"total_positive"`
	TotalNegative   float64            `json:"total_negative"`
	BaseOffset      float64            `json:"base_offset"`
	AttributedScore float64            `json:"attributed_score"`
}

// Suggestion is one generated improvement recommendation
type Suggestion struct {
	Category      string  `json:"category"`
	Text          string  `json:"text"`
	PotentialGain float64 `json:"potential_gain"` // Points recoverable
}

// Advice is the optional LLM advisory attached to a result.
// CRITICAL: advisory output never alters the computed scores; it is
// rendered separately so audit trails stay deterministic.
type Advice struct {
	Provider          string            `json:"provider,omitempty"`
	Model             string            `json:"model,omitempty"`
	GreenScore        float64           `json:"green_score"`
	RiskScore         float64           `json:"risk_score"`
	Recommendation    string            `json:"recommendation"`
	ROIProjection     float64           `json:"roi_projection"`
	KeyStrengths      []string          `json:"key_strengths,omitempty"`
	KeyRisks          []string          `json:"key_risks,omitempty"`
	ReasoningSummary  string            `json:"reasoning_summary,omitempty"`
	DetailedReasoning map[string]string `json:"detailed_reasoning,omitempty"`
	TokensUsed        int               `json:"tokens_used,omitempty"`
}

// Clamp bounds a score to [0,100]. Applied at every aggregation boundary
// so intermediate over/underflow can never escape into a result.
func Clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
