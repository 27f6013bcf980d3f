// Package embed turns purpose text into numeric vectors for category
// matching. The lexical vectorizer is the always-available deterministic
// path; a real embedding service can replace it behind the same
// interface without touching the matcher.
package embed

import "context"

// Provider is the single capability the matcher is written against:
// text in, fixed-length vector out. Both vectors of a comparison must
// come from the same provider.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Vectorize converts text into a numeric feature vector
	Vectorize(ctx context.Context, text string) ([]float64, error)
}
