// Package score combines the independent evaluation signals into the
// final green score, adjusted risk score and recommendation.
package score

import (
	"math"

	"github.com/dbisina/verdescore/internal/model"
)

// Green-score blend weights; they sum to 1.0
const (
	weightSemantic   = 0.30
	weightPrinciples = 0.40
	weightTaxonomy   = 0.30
)

// Specificity bonus: fixed points per extracted metric key, capped
const (
	specificityPerMetric = 2.0
	specificityCap       = 10.0
)

// Risk adjustments applied on top of the detector's score
const (
	penaltyNoMetrics  = 15.0
	penaltyFewMetrics = 5.0
	penaltyLargeLoan  = 5.0  // Amount >= largeLoan
	penaltyHugeLoan   = 10.0 // Amount >= hugeLoan, replaces the large-loan penalty
	largeLoan         = 10_000_000.0
	hugeLoan          = 50_000_000.0
	reliefTaxonomy    = 10.0
	reliefStrongMatch = 5.0
	strongSimilarity  = 0.7
)

// Inputs carries the independent signals the aggregator combines
type Inputs struct {
	SemanticScore float64
	Matches       []model.SimilarityResult
	Principles    model.ComplianceVerdict
	Taxonomy      model.ComplianceVerdict
	Risk          model.GreenwashingAssessment
	Metrics       model.Metrics
	Amount        float64
}

// Outputs is the aggregate result
type Outputs struct {
	GreenScore     float64
	RiskScore      float64
	Recommendation model.Recommendation
	ROIProjection  float64
}

// Aggregator implements the fixed-weight blend and decision table
type Aggregator struct{}

// NewAggregator creates an aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate computes the composite scores. Every adjustment is applied
// before the single clamp at the end (adjust-then-clamp), so an
// intermediate overflow never silently swallows a later adjustment.
func (a *Aggregator) Aggregate(in Inputs) Outputs {
	green := weightSemantic*in.SemanticScore +
		weightPrinciples*in.Principles.OverallScore +
		weightTaxonomy*in.Taxonomy.OverallScore
	green += specificityBonus(in.Metrics)

	risk := in.Risk.Score
	switch {
	case len(in.Metrics) == 0:
		risk += penaltyNoMetrics
	case len(in.Metrics) < 2:
		risk += penaltyFewMetrics
	}
	switch {
	case in.Amount >= hugeLoan:
		risk += penaltyHugeLoan
	case in.Amount >= largeLoan:
		risk += penaltyLargeLoan
	}
	if in.Taxonomy.Compliant {
		risk -= reliefTaxonomy
	}
	if len(in.Matches) > 0 && in.Matches[0].Similarity > strongSimilarity {
		risk -= reliefStrongMatch
	}

	green = model.Clamp(green)
	risk = model.Clamp(risk)

	return Outputs{
		GreenScore:     green,
		RiskScore:      risk,
		Recommendation: recommend(green, risk, in.Principles.Compliant, in.Risk.Level),
		ROIProjection:  roiProjection(green, in.Amount),
	}
}

func specificityBonus(metrics model.Metrics) float64 {
	bonus := specificityPerMetric * float64(len(metrics))
	if bonus > specificityCap {
		bonus = specificityCap
	}
	return bonus
}

// recommend walks the fixed decision table top to bottom; the first
// matching rule wins. The rejection rule sits above conditional
// approval so a single severe risk signal overrides an otherwise
// passable score.
func recommend(green, risk float64, principlesPass bool, greenwashLevel model.RiskLevel) model.Recommendation {
	switch {
	case green >= 70 && risk < 30 && principlesPass:
		return model.RecommendApprove
	case risk >= 60 || greenwashLevel == model.RiskHigh:
		return model.RecommendReject
	case green >= 50 && risk < 50:
		return model.RecommendConditional
	default:
		return model.RecommendReview
	}
}

// roiProjection is an indicative annual return estimate: stronger green
// scores sit nearer the top of the 3-9% band typical for green lending,
// with a small haircut for very large tickets.
func roiProjection(green, amount float64) float64 {
	base := 3.0 + 6.0*(green/100.0)
	if amount >= hugeLoan {
		base -= 0.5
	}
	return math.Round(base*100) / 100
}
