package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dbisina/verdescore/internal/input"
	"github.com/dbisina/verdescore/internal/model"
	"github.com/dbisina/verdescore/internal/pipeline"
)

var (
	inFile      string
	amount      float64
	applicantID string
	location    string
	outJSON     string
	outMD       string
	evalTimeout time.Duration
	embProvider string
	noCache     bool
	noFooter    bool
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// evaluateCmd represents the evaluate command
var evaluateCmd = &cobra.Command{
	Use:   "evaluate [purpose text]",
	Short: "Evaluate a single loan purpose",
	Long: `Evaluate analyzes one loan purpose description:
- Extract quantified environmental metrics
- Match against the green project category catalogue
- Run the principles and taxonomy rule engines
- Screen for greenwashing language
- Produce a composite green score, risk score and recommendation

The purpose is given as an argument, or read from a file with --file
(.txt or .html; HTML is reduced to its visible text).

Example:
  verdescore evaluate "Install 50 MW solar farm reducing 43,800 tonnes CO2 annually"
  verdescore evaluate --file application.html --amount 25000000 --json result.json
  verdescore evaluate "Retrofit 40 buses to electric" --llm openai`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEvaluate,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringVarP(&inFile, "file", "f", "", "read purpose text from file (.txt or .html)")
	evaluateCmd.Flags().Float64Var(&amount, "amount", 0, "requested loan amount")
	evaluateCmd.Flags().StringVar(&applicantID, "applicant", "", "applicant identifier carried into the report")
	evaluateCmd.Flags().StringVar(&location, "location", "", "project location carried into the report")

	// Output flags
	evaluateCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path")
	evaluateCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path")
	evaluateCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	evaluateCmd.Flags().DurationVar(&evalTimeout, "timeout", time.Minute, "overall evaluation timeout")
	evaluateCmd.Flags().StringVar(&embProvider, "embedding", "", "embedding provider (lexical, openai; default from config)")
	evaluateCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the embedding cache")

	// LLM flags
	evaluateCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM advisory opinion")
	evaluateCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	evaluateCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	purpose, err := resolvePurpose(args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), evalTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize pipeline: %w", err)
	}

	app := model.Application{
		Purpose:     purpose,
		Amount:      amount,
		ApplicantID: applicantID,
		Location:    location,
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Evaluating %d characters of purpose text\n", len(purpose))
	}

	result, err := p.Evaluate(ctx, app)
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Extracted %d metrics, %d greenwashing flags\n",
			len(result.Metrics), len(result.Risk.Flags))
		if result.Advice != nil {
			fmt.Fprintf(os.Stderr, "Advisory from %s/%s (%d tokens)\n",
				result.Advice.Provider, result.Advice.Model, result.Advice.TokensUsed)
		}
	}

	if err := p.RenderResult(result, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	return nil
}

// resolvePurpose takes the purpose from the argument or --file
func resolvePurpose(args []string) (string, error) {
	if inFile != "" {
		if len(args) > 0 {
			return "", fmt.Errorf("give the purpose as an argument or with --file, not both")
		}
		text, err := input.Load(inFile)
		if err != nil {
			return "", fmt.Errorf("load %s: %w", inFile, err)
		}
		return text, nil
	}

	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return "", fmt.Errorf("no purpose text given (pass it as an argument or use --file)")
	}
	return args[0], nil
}

// buildConfig merges defaults, the config file and flags
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	if embProvider != "" {
		cfg.Embedding.Provider = embProvider
	}
	if cfg.Embedding.Provider == "openai" && cfg.Embedding.APIKey == "" {
		cfg.Embedding.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		if llmModel != "" {
			cfg.LLM.Model = llmModel
		}

		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "anthropic", "claude":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
			}
		case "ollama":
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	return cfg, nil
}
