package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dbisina/verdescore/internal/model"
	"github.com/dbisina/verdescore/internal/validate"
)

// Renderer writes evaluation results as JSON, Markdown and a terminal summary
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the complete result as indented JSON
func (r *Renderer) RenderJSON(result *model.EvaluationResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write JSON: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable report
func (r *Renderer) RenderMarkdown(result *model.EvaluationResult, path string) error {
	var b strings.Builder

	b.WriteString("# Green Loan Evaluation\n\n")
	fmt.Fprintf(&b, "**Purpose:** %s\n\n", result.Application.Purpose)
	if result.Application.Amount > 0 {
		fmt.Fprintf(&b, "**Requested amount:** %.2f\n\n", result.Application.Amount)
	}
	fmt.Fprintf(&b, "**Evaluated:** %s\n\n", result.EvaluatedAt.Format("2006-01-02 15:04:05 UTC"))

	fmt.Fprintf(&b, "## Decision: %s\n\n", result.Recommendation)
	fmt.Fprintf(&b, "| Score | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Green score | %.1f / 100 |\n", result.GreenScore)
	fmt.Fprintf(&b, "| Risk score | %.1f / 100 (%s) |\n", result.RiskScore, result.Risk.Level)
	fmt.Fprintf(&b, "| Semantic match | %.1f / 100 |\n", result.SemanticScore)
	fmt.Fprintf(&b, "| Indicative ROI | %.2f%% |\n\n", result.ROIProjection)

	if result.Narrative != "" {
		b.WriteString("## Summary\n\n")
		b.WriteString(result.Narrative)
		b.WriteString("\n\n")
	}

	if len(result.Matches) > 0 {
		b.WriteString("## Category Matches\n\n")
		b.WriteString("| Category | Similarity | Weighted |\n|---|---|---|\n")
		for _, m := range result.Matches {
			if m.Similarity <= 0 {
				continue
			}
			fmt.Fprintf(&b, "| %s | %.2f | %.1f |\n", m.Category.Name, m.Similarity, m.WeightedScore)
		}
		b.WriteString("\n")
	}

	if len(result.Metrics) > 0 {
		b.WriteString("## Extracted Metrics\n\n")
		keys := make([]string, 0, len(result.Metrics))
		for k := range result.Metrics {
			keys = append(keys, string(k))
		}
		sort.Strings(keys)
		b.WriteString("| Metric | Value | Unit |\n|---|---|---|\n")
		for _, k := range keys {
			m := result.Metrics[model.MetricKey(k)]
			fmt.Fprintf(&b, "| %s | %v | %s |\n", k, m.Value, m.Unit)
		}
		b.WriteString("\n")
	}

	if len(result.Certifications) > 0 {
		b.WriteString("## Certifications Mentioned\n\n")
		for _, c := range result.Certifications {
			fmt.Fprintf(&b, "- %s (%s): %q\n", c.Scheme, c.Tier, c.Mention)
		}
		fmt.Fprintf(&b, "\nStrongest assurance: **%s**\n\n", validate.Strongest(result.Certifications))
	}

	renderVerdict(&b, "Green Project Principles", result.Principles)
	renderVerdict(&b, "Environmental Taxonomy", result.Taxonomy)

	if len(result.Risk.Flags) > 0 {
		b.WriteString("## Greenwashing Flags\n\n")
		for _, f := range result.Risk.Flags {
			fmt.Fprintf(&b, "- **%s**: %s\n", strings.ToUpper(string(f.Severity)), f.Description)
		}
		b.WriteString("\n")
	}

	if len(result.Attribution.Entries) > 0 {
		b.WriteString("## Score Attribution\n\n")
		b.WriteString("| Factor | Contribution | Max |\n|---|---|---|\n")
		for _, e := range result.Attribution.Entries {
			fmt.Fprintf(&b, "| %s | %+.1f | %+.1f |\n", e.Name, e.Contribution, e.MaxPossible)
		}
		fmt.Fprintf(&b, "\nAttributed score: %.1f (base offset %.0f)\n\n",
			result.Attribution.AttributedScore, result.Attribution.BaseOffset)
	}

	if len(result.Suggestions) > 0 {
		b.WriteString("## Improvement Suggestions\n\n")
		for _, s := range result.Suggestions {
			fmt.Fprintf(&b, "- %s (up to %.1f points)\n", s.Text, s.PotentialGain)
		}
		b.WriteString("\n")
	}

	if result.Advice != nil {
		b.WriteString("## Advisory Opinion\n\n")
		fmt.Fprintf(&b, "_Second opinion from %s (%s); does not affect the scores above._\n\n",
			result.Advice.Provider, result.Advice.Model)
		fmt.Fprintf(&b, "Suggested: green %.0f, risk %.0f, %s\n\n",
			result.Advice.GreenScore, result.Advice.RiskScore, result.Advice.Recommendation)
		if result.Advice.ReasoningSummary != "" {
			b.WriteString(result.Advice.ReasoningSummary)
			b.WriteString("\n\n")
		}
	}

	if r.includeFooter {
		b.WriteString("---\n\nGenerated by verdescore\n")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

func renderVerdict(b *strings.Builder, title string, v model.ComplianceVerdict) {
	fmt.Fprintf(b, "## %s\n\n", title)
	status := "NOT COMPLIANT"
	if v.Compliant {
		status = "COMPLIANT"
	}
	fmt.Fprintf(b, "**%s** — %.1f / 100 (evidence strength %.0f%%)\n\n", status, v.OverallScore, v.EvidenceStrength*100)
	if v.ActivityCode != "" {
		fmt.Fprintf(b, "Matched activity: `%s`\n\n", v.ActivityCode)
	}

	b.WriteString("| Pillar | Score | Weight |\n|---|---|---|\n")
	for _, p := range v.Pillars {
		fmt.Fprintf(b, "| %s | %.1f | %.2f |\n", p.Pillar, p.Score, p.Weight)
	}
	b.WriteString("\n")

	if v.Gaps.PrimaryBlocker != "" {
		fmt.Fprintf(b, "Primary blocker: **%s**\n\n", v.Gaps.PrimaryBlocker)
	}
	for _, g := range v.Gaps.Gaps {
		if g.Fix != "" {
			fmt.Fprintf(b, "- %s: %s\n", g.Criterion, g.Fix)
		}
	}
	if len(v.Gaps.Gaps) > 0 {
		b.WriteString("\n")
	}

	for _, h := range v.HarmViolations {
		fmt.Fprintf(b, "- Harm (%s, %s): %s\n", h.Objective, h.Severity, h.Description)
	}
	if len(v.HarmViolations) > 0 {
		b.WriteString("\n")
	}
}

// RenderSummary prints a short decision summary
func (r *Renderer) RenderSummary(w io.Writer, result *model.EvaluationResult) {
	fmt.Fprintf(w, "\nDecision: %s\n", result.Recommendation)
	fmt.Fprintf(w, "Green score: %.1f/100   Risk: %.1f/100 (%s)\n",
		result.GreenScore, result.RiskScore, result.Risk.Level)
	if len(result.Matches) > 0 && result.Matches[0].Similarity > 0 {
		fmt.Fprintf(w, "Category: %s (similarity %.2f)\n",
			result.Matches[0].Category.Name, result.Matches[0].Similarity)
	}
	fmt.Fprintf(w, "Metrics extracted: %d   Greenwashing flags: %d\n",
		len(result.Metrics), len(result.Risk.Flags))
	if result.Attribution.AttributedScore > 0 || len(result.Attribution.Entries) > 0 {
		fmt.Fprintf(w, "Attributed score: %.1f\n", result.Attribution.AttributedScore)
	}
	if result.Risk.Level == model.RiskHigh {
		fmt.Fprintf(w, "WARNING: high greenwashing risk\n")
	}
}
