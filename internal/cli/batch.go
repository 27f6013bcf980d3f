package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/dbisina/verdescore/internal/pipeline"
	"github.com/dbisina/verdescore/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Evaluate multiple applications from a file in parallel",
	Long: `Batch evaluates applications concurrently:
- Read applications from the input file, one per line
- A line is either a purpose text, or "amount<TAB>purpose"
- Evaluate in parallel with a configurable worker count
- Write one JSON and one Markdown report per application

Example:
  verdescore batch applications.txt
  verdescore batch applications.txt --concurrency 8 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./verdescore-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	batchCmd.Flags().StringVar(&embProvider, "embedding", "", "embedding provider (lexical, openai; default from config)")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the embedding cache")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// LLM flags
	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM advisory opinion")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.BatchWorkers = concurrency

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p, err := pipeline.NewPipeline(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize pipeline: %w", err)
	}

	processor := worker.NewBatchProcessor(p, concurrency)

	fmt.Fprintf(os.Stderr, "Reading applications from %s\n", file)
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Evaluated %d applications with %d workers\n\n", len(results), concurrency)

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	successCount := 0
	failureCount := 0

	for _, result := range results {
		label := truncate(result.Application.Purpose, 60)

		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", label, result.Error)
			continue
		}
		successCount++

		base := filepath.Join(outputDir, fmt.Sprintf("application-%03d", result.Index+1))
		if err := renderer.RenderJSON(result.Result, base+".json"); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: write JSON: %v\n", label, err)
			continue
		}
		if err := renderer.RenderMarkdown(result.Result, base+".md"); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: write Markdown: %v\n", label, err)
			continue
		}

		fmt.Fprintf(os.Stderr, "%-20s green %5.1f  risk %5.1f  %s\n",
			result.Result.Recommendation, result.Result.GreenScore, result.Result.RiskScore, label)
	}

	fmt.Fprintf(os.Stderr, "\nTotal: %d   Success: %d   Failures: %d   Output: %s\n",
		len(results), successCount, failureCount, outputDir)

	return nil
}

// truncate shortens s to at most n runes, never splitting a multi-byte
// character.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
