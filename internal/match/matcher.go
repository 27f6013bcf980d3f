// Package match ranks an application against the category catalogue by
// vector similarity.
package match

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/dbisina/verdescore/internal/embed"
	"github.com/dbisina/verdescore/internal/model"
)

// Reference is one catalogue entry with its precomputed vector
type Reference struct {
	Category model.CategoryReference
	Vector   []float64
}

// Matcher compares query vectors against the reference catalogue. The
// references are built once at construction and never mutated, so one
// Matcher serves any number of concurrent evaluations.
type Matcher struct {
	refs []Reference
}

// NewMatcher vectorizes every catalogue description with the given
// provider. Reference and query vectors must come from the same
// provider or the comparison is meaningless.
func NewMatcher(ctx context.Context, provider embed.Provider, catalog []model.CategoryReference) (*Matcher, error) {
	refs := make([]Reference, 0, len(catalog))
	for _, cat := range catalog {
		vec, err := provider.Vectorize(ctx, cat.Description)
		if err != nil {
			return nil, fmt.Errorf("vectorize category %s: %w", cat.ID, err)
		}
		refs = append(refs, Reference{Category: cat, Vector: vec})
	}
	return &Matcher{refs: refs}, nil
}

// References exposes the prepared catalogue (read-only)
func (m *Matcher) References() []Reference {
	return m.refs
}

// Match ranks every reference against the query vector, descending by
// weighted score. Rank 0 is the primary match, rank 1 the secondary.
func (m *Matcher) Match(query []float64) []model.SimilarityResult {
	results := make([]model.SimilarityResult, 0, len(m.refs))
	for _, ref := range m.refs {
		sim := Cosine(query, ref.Vector)
		results = append(results, model.SimilarityResult{
			Category:      ref.Category,
			Similarity:    sim,
			WeightedScore: sim * ref.Category.Weight * 100,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].WeightedScore > results[j].WeightedScore
	})
	return results
}

// SemanticScore folds the ranked matches into a 0-100 score. The
// secondary category only ever provides a minor boost: a single strong
// match dominates while genuinely multi-objective projects get a small
// reward.
func SemanticScore(results []model.SimilarityResult) float64 {
	if len(results) == 0 {
		return 0
	}
	score := results[0].WeightedScore
	if len(results) > 1 {
		score += 0.2 * results[1].WeightedScore
	}
	return model.Clamp(math.Min(score, 100))
}

// Cosine computes cosine similarity, returning 0 when either norm is
// zero. Vectors of unequal length are treated as zero-padded: the
// shorter vector simply contributes nothing on the missing dimensions.
func Cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
	}
	for _, x := range a {
		normA += x * x
	}
	for _, x := range b {
		normB += x * x
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
