package llm

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/dbisina/verdescore/internal/model"
)

func TestNewProvider_Disabled(t *testing.T) {
	provider, err := NewProvider(Config{Provider: ""})
	if err != nil {
		t.Fatalf("empty provider should not error: %v", err)
	}
	if provider != nil {
		t.Error("empty provider should return nil (disabled)")
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	_, err := NewProvider(Config{Provider: "gemini"})
	if err == nil {
		t.Error("unknown provider should error")
	}
}

func TestNewProvider_OpenAIRequiresKey(t *testing.T) {
	_, err := NewProvider(Config{Provider: "openai"})
	if err == nil {
		t.Error("openai without API key should error")
	}
}

func TestNewProvider_ClaudeAlias(t *testing.T) {
	provider, err := NewProvider(Config{Provider: "claude", APIKey: "test-key"})
	if err != nil {
		t.Fatalf("claude alias failed: %v", err)
	}
	if provider.Name() != "anthropic" {
		t.Errorf("expected anthropic, got %s", provider.Name())
	}
}

func TestDecodeAdvice_Plain(t *testing.T) {
	advice, err := decodeAdvice(`{
		"green_score": 82,
		"risk_score": 12,
		"recommendation": "APPROVE",
		"roi_projection": 7.5,
		"key_strengths": ["quantified capacity"],
		"key_risks": [],
		"reasoning_summary": "Strong solar project."
	}`)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if advice.GreenScore != 82 || advice.RiskScore != 12 {
		t.Errorf("scores = %v/%v", advice.GreenScore, advice.RiskScore)
	}
	if advice.Recommendation != "APPROVE" {
		t.Errorf("recommendation = %s", advice.Recommendation)
	}
	if len(advice.KeyStrengths) != 1 {
		t.Errorf("strengths = %v", advice.KeyStrengths)
	}
}

func TestDecodeAdvice_CodeFences(t *testing.T) {
	text := "Here is the assessment:\n```json\n" +
		`{"green_score": 60, "risk_score": 30, "recommendation": "CONDITIONAL_APPROVE"}` +
		"\n```\nLet me know if you need more."
	advice, err := decodeAdvice(text)
	if err != nil {
		t.Fatalf("fenced JSON should decode: %v", err)
	}
	if advice.Recommendation != "CONDITIONAL_APPROVE" {
		t.Errorf("recommendation = %s", advice.Recommendation)
	}
}

func TestDecodeAdvice_ClampsScores(t *testing.T) {
	advice, err := decodeAdvice(`{"green_score": 140, "risk_score": -20, "recommendation": "REJECT"}`)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if advice.GreenScore != 100 {
		t.Errorf("green score should clamp to 100, got %v", advice.GreenScore)
	}
	if advice.RiskScore != 0 {
		t.Errorf("risk score should clamp to 0, got %v", advice.RiskScore)
	}
}

func TestDecodeAdvice_Rejects(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"no JSON", "I cannot evaluate this loan."},
		{"malformed", `{"green_score": "high",}`},
		{"invalid recommendation", `{"green_score": 50, "risk_score": 50, "recommendation": "MAYBE"}`},
		{"empty", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := decodeAdvice(tc.text); err == nil {
				t.Errorf("expected error for %q", tc.text)
			}
		})
	}
}

func TestDecodeAdvice_NormalizesCase(t *testing.T) {
	advice, err := decodeAdvice(`{"green_score": 40, "risk_score": 55, "recommendation": " manual_review "}`)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if advice.Recommendation != "MANUAL_REVIEW" {
		t.Errorf("recommendation = %s", advice.Recommendation)
	}
}

func TestBuildPrompt(t *testing.T) {
	req := AdviceRequest{
		Application: model.Application{
			Purpose: "Install 50 MW solar farm",
			Amount:  25000000,
		},
		Metrics: model.Metrics{
			model.MetricEnergyCapacity: {Value: 50, Unit: "MW"},
		},
		Matches: []model.SimilarityResult{
			{Category: model.CategoryReference{Name: "Solar Energy Generation"}, Similarity: 0.91},
		},
		Principles: model.ComplianceVerdict{OverallScore: 72, Compliant: true},
		Taxonomy:   model.ComplianceVerdict{OverallScore: 79, Compliant: true},
		Risk:       model.GreenwashingAssessment{Level: model.RiskLow},
		GreenScore: 87,
		RiskScore:  5,
	}

	prompt := BuildPrompt(req)

	for _, want := range []string{
		"Install 50 MW solar farm",
		"green 87",
		"risk 5",
		"Solar Energy Generation",
		"energy_capacity",
		"green_score",
		"recommendation",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

// stubProvider fails or succeeds on demand for advisor fallback tests
type stubProvider struct {
	advice *model.Advice
	err    error
}

func (s *stubProvider) Name() string                         { return "stub" }
func (s *stubProvider) IsAvailable(ctx context.Context) bool { return s.err == nil }
func (s *stubProvider) Advise(ctx context.Context, req AdviceRequest) (*model.Advice, error) {
	return s.advice, s.err
}

func TestAdvisor_DisabledReturnsNil(t *testing.T) {
	advisor := NewAdvisor(Config{Provider: ""})
	if advisor.Enabled() {
		t.Error("advisor with no provider should be disabled")
	}
	if advice := advisor.Advise(context.Background(), AdviceRequest{}); advice != nil {
		t.Error("disabled advisor should return nil advice")
	}
}

func TestAdvisor_BadConfigDisablesSilently(t *testing.T) {
	advisor := NewAdvisor(Config{Provider: "nonexistent"})
	if advisor.Enabled() {
		t.Error("unknown provider should disable the advisor")
	}
}

func TestAdvisor_ProviderErrorFallsBack(t *testing.T) {
	advisor := NewAdvisorWithProvider(&stubProvider{err: fmt.Errorf("connection refused")}, Config{Timeout: 1})
	if advice := advisor.Advise(context.Background(), AdviceRequest{}); advice != nil {
		t.Error("failed provider should yield nil advice, not an error")
	}
}

func TestAdvisor_Success(t *testing.T) {
	want := &model.Advice{GreenScore: 70, Recommendation: "APPROVE"}
	advisor := NewAdvisorWithProvider(&stubProvider{advice: want}, Config{Timeout: 1})
	advice := advisor.Advise(context.Background(), AdviceRequest{})
	if advice == nil {
		t.Fatal("expected advice")
	}
	if advice.GreenScore != 70 || advice.Recommendation != "APPROVE" {
		t.Errorf("advice = %+v", advice)
	}
}
