package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dbisina/verdescore/internal/model"
)

// Advisor wraps a Provider with a hard timeout and silent fallback.
// A nil or failing provider never surfaces an error to callers: the
// deterministic evaluation stands on its own and the advisory is a
// strictly optional attachment.
type Advisor struct {
	provider Provider
	config   Config
}

// NewAdvisor builds an Advisor from configuration. An empty provider
// name yields a disabled advisor; a misconfigured one is reported on
// stderr and disabled rather than failing the evaluation.
func NewAdvisor(config Config) *Advisor {
	provider, err := NewProvider(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: LLM advisory disabled: %v\n", err)
		provider = nil
	}
	return &Advisor{provider: provider, config: config}
}

// NewAdvisorWithProvider builds an Advisor around an existing provider
func NewAdvisorWithProvider(provider Provider, config Config) *Advisor {
	return &Advisor{provider: provider, config: config}
}

// Enabled reports whether a provider is configured
func (a *Advisor) Enabled() bool {
	return a != nil && a.provider != nil
}

// Advise requests an advisory for the evaluation. It returns nil on
// any failure (disabled, timeout, API error, malformed response) so
// the caller can attach the result unconditionally.
func (a *Advisor) Advise(ctx context.Context, req AdviceRequest) *model.Advice {
	if !a.Enabled() {
		return nil
	}

	timeout := time.Duration(a.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	advice, err := a.provider.Advise(ctx, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: LLM advisory failed (%s): %v\n", a.provider.Name(), err)
		return nil
	}
	return advice
}

// adviceEnvelope mirrors the JSON shape requested in the prompt
type adviceEnvelope struct {
	GreenScore        float64           `json:"green_score"`
	RiskScore         float64           `json:"risk_score"`
	Recommendation    string            `json:"recommendation"`
	ROIProjection     float64           `json:"roi_projection"`
	KeyStrengths      []string          `json:"key_strengths"`
	KeyRisks          []string          `json:"key_risks"`
	ReasoningSummary  string            `json:"reasoning_summary"`
	DetailedReasoning map[string]string `json:"detailed_reasoning"`
}

var validRecommendations = map[string]bool{
	string(model.RecommendApprove):     true,
	string(model.RecommendConditional): true,
	string(model.RecommendReject):      true,
	string(model.RecommendReview):      true,
}

// decodeAdvice parses a model response into an Advice. Models wrap
// JSON in code fences or prose often enough that we extract the
// outermost object before unmarshalling.
func decodeAdvice(text string) (*model.Advice, error) {
	raw := extractJSONObject(text)
	if raw == "" {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var env adviceEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return nil, fmt.Errorf("malformed advisory JSON: %w", err)
	}

	rec := strings.ToUpper(strings.TrimSpace(env.Recommendation))
	if !validRecommendations[rec] {
		return nil, fmt.Errorf("invalid recommendation %q in advisory", env.Recommendation)
	}

	return &model.Advice{
		GreenScore:        model.Clamp(env.GreenScore),
		RiskScore:         model.Clamp(env.RiskScore),
		Recommendation:    rec,
		ROIProjection:     env.ROIProjection,
		KeyStrengths:      env.KeyStrengths,
		KeyRisks:          env.KeyRisks,
		ReasoningSummary:  strings.TrimSpace(env.ReasoningSummary),
		DetailedReasoning: env.DetailedReasoning,
	}, nil
}

// extractJSONObject returns the outermost {...} span in text, or ""
func extractJSONObject(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return ""
	}
	return text[start : end+1]
}
