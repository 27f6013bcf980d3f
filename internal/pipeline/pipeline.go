// Package pipeline orchestrates the complete evaluation: metric
// extraction, category matching, the two rule engines, greenwashing
// detection, aggregation and explanation.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dbisina/verdescore/internal/cache"
	"github.com/dbisina/verdescore/internal/compliance"
	"github.com/dbisina/verdescore/internal/embed"
	"github.com/dbisina/verdescore/internal/explain"
	"github.com/dbisina/verdescore/internal/extract"
	"github.com/dbisina/verdescore/internal/llm"
	"github.com/dbisina/verdescore/internal/match"
	"github.com/dbisina/verdescore/internal/model"
	"github.com/dbisina/verdescore/internal/risk"
	"github.com/dbisina/verdescore/internal/score"
	"github.com/dbisina/verdescore/internal/validate"
	"github.com/dbisina/verdescore/internal/worker"
)

// Pipeline orchestrates the evaluation stages. All stages except the
// optional advisor are deterministic: the same purpose text and amount
// always produce the same result.
type Pipeline struct {
	extractor  *extract.MetricExtractor
	provider   embed.Provider
	matcher    *match.Matcher
	detector   *risk.Detector
	principles *compliance.PrinciplesEvaluator
	taxonomy   *compliance.TaxonomyEvaluator
	aggregator *score.Aggregator
	certifier  *validate.CertificationClassifier
	renderer   *Renderer
	advisor    *llm.Advisor // Optional, nil-safe; never affects scores
	config     *model.Config
}

// NewPipeline creates a pipeline from configuration. The category
// catalogue is vectorized once up front so repeated evaluations only
// vectorize the application text.
func NewPipeline(ctx context.Context, cfg *model.Config) (*Pipeline, error) {
	provider, err := buildProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("embedding provider: %w", err)
	}

	catalog := match.Catalog()
	matcher, err := match.NewMatcher(ctx, provider, catalog)
	if err != nil {
		return nil, fmt.Errorf("vectorize catalog: %w", err)
	}

	var advisor *llm.Advisor
	if cfg.LLM.Provider != "" {
		advisor = llm.NewAdvisor(llm.ConfigFromModel(cfg.LLM))
	}

	return &Pipeline{
		extractor:  extract.NewMetricExtractor(),
		provider:   provider,
		matcher:    matcher,
		detector:   risk.NewDetector(),
		principles: compliance.NewPrinciplesEvaluator(),
		taxonomy:   compliance.NewTaxonomyEvaluator(catalog),
		aggregator: score.NewAggregator(),
		certifier:  validate.NewCertificationClassifier(),
		renderer:   NewRenderer(cfg.Output.IncludeFooter),
		advisor:    advisor,
		config:     cfg,
	}, nil
}

// buildProvider assembles the vector provider, wrapping it in the
// layered cache when caching is enabled.
func buildProvider(cfg *model.Config) (embed.Provider, error) {
	var provider embed.Provider
	switch cfg.Embedding.Provider {
	case "", "lexical":
		provider = embed.NewLexicalVectorizer()
	case "openai":
		limiter := worker.NewLimiter(cfg.Embedding.RequestsPerSecond, 1)
		p, err := embed.NewOpenAIEmbedder(cfg.Embedding, limiter)
		if err != nil {
			return nil, err
		}
		provider = p
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s (supported: lexical, openai)", cfg.Embedding.Provider)
	}

	if cfg.Cache.Enabled {
		store := cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.MaxItems, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		provider = embed.NewCachingProvider(provider, store, cfg.Cache.MemoryTTL)
	}

	return provider, nil
}

// Evaluate runs the full evaluation for one application
func (p *Pipeline) Evaluate(ctx context.Context, app model.Application) (*model.EvaluationResult, error) {
	app = app.Normalize()

	// 1. Extract quantified metrics
	metrics := p.extractor.Extract(app.Purpose)

	// 2. Vectorize and rank against the category catalogue
	vec, err := p.provider.Vectorize(ctx, app.Purpose)
	if err != nil {
		return nil, fmt.Errorf("vectorize purpose: %w", err)
	}
	matches := p.matcher.Match(vec)
	semantic := match.SemanticScore(matches)

	// 3. Greenwashing detection runs before the rule engines so the
	// principles evaluator can veto on HIGH risk
	riskAssessment := p.detector.Detect(app.Purpose)

	// 4. Rule engines
	principles := p.principles.Evaluate(app.Purpose, metrics, riskAssessment.Level)
	taxonomy := p.taxonomy.Evaluate(app.Purpose, metrics)

	// 5. Aggregate into the composite scores and recommendation
	out := p.aggregator.Aggregate(score.Inputs{
		SemanticScore: semantic,
		Matches:       matches,
		Principles:    principles,
		Taxonomy:      taxonomy,
		Risk:          riskAssessment,
		Metrics:       metrics,
		Amount:        app.Amount,
	})

	result := &model.EvaluationResult{
		Application:    app,
		EvaluatedAt:    time.Now().UTC(),
		Metrics:        metrics,
		Matches:        matches,
		Principles:     principles,
		Taxonomy:       taxonomy,
		Risk:           riskAssessment,
		SemanticScore:  semantic,
		GreenScore:     out.GreenScore,
		RiskScore:      out.RiskScore,
		Recommendation: out.Recommendation,
		ROIProjection:  out.ROIProjection,
		Certifications: p.certifier.Classify(app.Purpose),
	}

	// 6. Explanation layer, derived entirely from the scores above
	result.Attribution = explain.BuildAttribution(result)
	result.Narrative = explain.Narrative(result)
	result.Suggestions = explain.Suggestions(result.Attribution)

	// 7. Optional advisory, strictly last: it can annotate the result
	// but never alter any computed field
	if p.advisor.Enabled() {
		result.Advice = p.advisor.Advise(ctx, llm.AdviceRequest{
			Application: app,
			Metrics:     metrics,
			Matches:     matches,
			Principles:  principles,
			Taxonomy:    taxonomy,
			Risk:        riskAssessment,
			GreenScore:  out.GreenScore,
			RiskScore:   out.RiskScore,
		})
	}

	return result, nil
}

// RenderResult renders the result to the configured outputs
func (p *Pipeline) RenderResult(result *model.EvaluationResult, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(result, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stdout, "Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(result, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stdout, "Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(os.Stdout, result)
	return nil
}
