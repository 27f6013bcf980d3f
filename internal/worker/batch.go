package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/dbisina/verdescore/internal/model"
)

// Evaluator defines the interface for evaluating a single application
type Evaluator interface {
	Evaluate(ctx context.Context, app model.Application) (*model.EvaluationResult, error)
}

// EvaluateJob represents a single application evaluation job
type EvaluateJob struct {
	Index       int // Position in the input file, used to restore order
	Application model.Application
	Evaluator   Evaluator
}

// Execute executes the evaluation job
func (j *EvaluateJob) Execute(ctx context.Context) Result {
	result, err := j.Evaluator.Evaluate(ctx, j.Application)
	return &EvaluateResult{
		Index:       j.Index,
		Application: j.Application,
		Result:      result,
		Error:       err,
	}
}

// EvaluateResult represents the result of an evaluation job
type EvaluateResult struct {
	Index       int
	Application model.Application
	Result      *model.EvaluationResult
	Error       error
}

// GetError returns the error from the evaluation result
func (r *EvaluateResult) GetError() error {
	return r.Error
}

// BatchProcessor evaluates multiple applications concurrently
type BatchProcessor struct {
	evaluator   Evaluator
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(evaluator Evaluator, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		evaluator:   evaluator,
		concurrency: concurrency,
	}
}

// ProcessApplications evaluates applications concurrently, returning
// results in input order regardless of completion order.
func (b *BatchProcessor) ProcessApplications(ctx context.Context, apps []model.Application) []*EvaluateResult {
	if len(apps) == 0 {
		return []*EvaluateResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()
	defer pool.Shutdown()

	// Submission and draining must overlap: the queue buffer is bounded,
	// so submitting everything up front would block once the buffer fills.
	go func() {
		for i, app := range apps {
			pool.Submit(&EvaluateJob{
				Index:       i,
				Application: app,
				Evaluator:   b.evaluator,
			})
		}
		pool.Close()
	}()

	results := pool.Wait()

	evalResults := make([]*EvaluateResult, len(results))
	for i, result := range results {
		evalResults[i] = result.(*EvaluateResult)
	}
	sort.Slice(evalResults, func(i, j int) bool {
		return evalResults[i].Index < evalResults[j].Index
	})

	return evalResults
}

// ProcessFile reads applications from a file and evaluates them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*EvaluateResult, error) {
	apps, err := ReadApplicationsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read applications: %w", err)
	}

	return b.ProcessApplications(ctx, apps), nil
}

// ReadApplicationsFromFile reads applications from a file, one per line.
// Each line is either just a loan purpose, or "amount<TAB>purpose".
// Empty lines and lines starting with # are skipped.
func ReadApplicationsFromFile(filePath string) ([]model.Application, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var apps []model.Application

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		app := model.Application{Purpose: line}
		if amountStr, purpose, found := strings.Cut(line, "\t"); found {
			amount, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(amountStr), ",", ""), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid amount %q: %w", lineNo, amountStr, err)
			}
			app = model.Application{
				Amount:  amount,
				Purpose: strings.TrimSpace(purpose),
			}
		}
		apps = append(apps, app.Normalize())
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return apps, nil
}
