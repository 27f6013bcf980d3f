package model

// CategoryReference is one entry of the static green-project catalogue.
// Loaded once at process start and never mutated, so it is safe for any
// number of concurrent readers.
type CategoryReference struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`   // Reference text used to build the category vector
	Weight       float64 `json:"weight"`        // Policy weight in [0,1]
	ActivityCode string  `json:"activity_code"` // Regulatory classification code (taxonomy evaluator)

	Keywords   []string        `json:"keywords"`             // Activity-matching keywords (taxonomy evaluator)
	Thresholds []ThresholdRule `json:"thresholds,omitempty"` // Technical screening criteria
}

// Comparator is the operator of a threshold rule
type Comparator string

const (
	CompareLT        Comparator = "<"
	CompareLTE       Comparator = "<="
	CompareGT        Comparator = ">"
	CompareGTE       Comparator = ">="
	CompareEQ        Comparator = "="
	CompareCompliant Comparator = "compliant" // Non-numeric marker, always passes
)

// ThresholdRule is one technical screening criterion attached to an
// activity: a metric key, a comparator, and the limit value.
type ThresholdRule struct {
	Metric      MetricKey  `json:"metric"`
	Comparator  Comparator `json:"comparator"`
	Value       float64    `json:"value"`
	Unit        string     `json:"unit,omitempty"`
	Description string     `json:"description"`
}

// SimilarityResult is one ranked category match for an application
type SimilarityResult struct {
	Category      CategoryReference `json:"category"`
	Similarity    float64           `json:"similarity"`     // Cosine similarity in [-1,1]
	WeightedScore float64           `json:"weighted_score"` // similarity * weight * 100
}
