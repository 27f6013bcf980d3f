// Package llm provides the optional advisory layer: an external model
// reviews the deterministic evaluation and returns a structured second
// opinion. Advisory output NEVER changes the computed scores; on any
// failure the pipeline simply proceeds without it.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/dbisina/verdescore/internal/model"
)

// Provider defines the interface for advisory LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Advise requests a structured advisory for an evaluation
	Advise(ctx context.Context, req AdviceRequest) (*model.Advice, error)

	// IsAvailable checks whether the provider is configured and reachable
	IsAvailable(ctx context.Context) bool
}

// AdviceRequest carries the deterministic results the advisor reviews
type AdviceRequest struct {
	Application model.Application
	Metrics     model.Metrics
	Matches     []model.SimilarityResult
	Principles  model.ComplianceVerdict
	Taxonomy    model.ComplianceVerdict
	Risk        model.GreenwashingAssessment
	GreenScore  float64
	RiskScore   float64

	// Prompt overrides the default prompt when non-empty
	Prompt string

	// Model is the provider-specific model name
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// Config holds advisory provider configuration
type Config struct {
	Provider  string // "openai", "anthropic", "ollama", ""
	Model     string
	APIKey    string
	BaseURL   string
	Timeout   int // seconds
	MaxTokens int

	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults: disabled, 15s timeout
func DefaultConfig() Config {
	return Config{
		Provider:  "",
		Timeout:   15,
		MaxTokens: 1200,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:   mc.Provider,
		Model:      mc.Model,
		APIKey:     mc.APIKey,
		BaseURL:    mc.BaseURL,
		Timeout:    mc.Timeout,
		MaxTokens:  mc.MaxTokens,
		HTTPProxy:  mc.HTTPProxy,
		HTTPSProxy: mc.HTTPSProxy,
		NoProxy:    mc.NoProxy,
	}
}

// adviceSchema is the fixed JSON shape the advisor must return
const adviceSchema = `{
  "green_score": <number 0-100>,
  "risk_score": <number 0-100>,
  "recommendation": "<APPROVE|CONDITIONAL_APPROVE|REJECT|MANUAL_REVIEW>",
  "roi_projection": <number, percent>,
  "key_strengths": ["<string>", ...],
  "key_risks": ["<string>", ...],
  "reasoning_summary": "<string>",
  "detailed_reasoning": {"<topic>": "<string>", ...}
}`

// BuildPrompt constructs the default advisory prompt from the
// deterministic results.
func BuildPrompt(req AdviceRequest) string {
	var b strings.Builder

	b.WriteString("You are reviewing a green-loan evaluation produced by a deterministic rule engine.\n")
	b.WriteString("Respond with ONLY a JSON object matching this schema, no prose around it:\n")
	b.WriteString(adviceSchema)
	b.WriteString("\n\nLoan purpose:\n")
	b.WriteString(req.Application.Purpose)
	fmt.Fprintf(&b, "\n\nRequested amount: %.0f\n", req.Application.Amount)

	fmt.Fprintf(&b, "\nComputed scores: green %.0f/100, risk %.0f/100 (%s greenwashing risk)\n",
		req.GreenScore, req.RiskScore, req.Risk.Level)
	fmt.Fprintf(&b, "Principles verdict: %.0f/100, compliant=%v\n",
		req.Principles.OverallScore, req.Principles.Compliant)
	fmt.Fprintf(&b, "Taxonomy verdict: %.0f/100, eligible=%v\n",
		req.Taxonomy.OverallScore, req.Taxonomy.Compliant)

	if len(req.Matches) > 0 {
		fmt.Fprintf(&b, "Primary category: %s (similarity %.2f)\n",
			req.Matches[0].Category.Name, req.Matches[0].Similarity)
	}

	if len(req.Metrics) > 0 {
		b.WriteString("Extracted metrics:\n")
		for key, m := range req.Metrics {
			fmt.Fprintf(&b, "- %s: %v %s\n", key, m.Value, m.Unit)
		}
	}

	b.WriteString("\nYour scores may refine but should stay broadly consistent with the computed ones.")
	return b.String()
}
