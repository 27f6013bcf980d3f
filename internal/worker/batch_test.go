package worker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dbisina/verdescore/internal/model"
)

// stubEvaluator returns a canned result keyed by the purpose text
type stubEvaluator struct {
	failFor string
}

func (s *stubEvaluator) Evaluate(ctx context.Context, app model.Application) (*model.EvaluationResult, error) {
	if s.failFor != "" && strings.Contains(app.Purpose, s.failFor) {
		return nil, errors.New("evaluation failed")
	}
	return &model.EvaluationResult{
		Application: app,
		GreenScore:  float64(len(app.Purpose) % 100),
	}, nil
}

func TestBatchProcessor_OrderPreserved(t *testing.T) {
	apps := make([]model.Application, 20)
	for i := range apps {
		apps[i] = model.Application{Purpose: fmt.Sprintf("project number %d with solar panels", i)}
	}

	bp := NewBatchProcessor(&stubEvaluator{}, 4)
	results := bp.ProcessApplications(context.Background(), apps)

	if len(results) != len(apps) {
		t.Fatalf("expected %d results, got %d", len(apps), len(results))
	}
	for i, r := range results {
		if r.Index != i {
			t.Errorf("result %d has index %d; order not preserved", i, r.Index)
		}
		if r.Application.Purpose != apps[i].Purpose {
			t.Errorf("result %d carries wrong application", i)
		}
	}
}

func TestBatchProcessor_LargeInputCompletes(t *testing.T) {
	// Far more applications than the pool buffers; submission must
	// overlap with result draining or processing stalls partway through.
	apps := make([]model.Application, 200)
	for i := range apps {
		apps[i] = model.Application{
			Purpose: fmt.Sprintf("Install %d MW solar capacity at site %d", i+1, i),
			Amount:  float64(i) * 10_000,
		}
	}

	bp := NewBatchProcessor(&stubEvaluator{}, 4)

	done := make(chan []*EvaluateResult, 1)
	go func() {
		done <- bp.ProcessApplications(context.Background(), apps)
	}()

	select {
	case results := <-done:
		if len(results) != len(apps) {
			t.Fatalf("expected %d results, got %d", len(apps), len(results))
		}
		for i, r := range results {
			if r.Index != i {
				t.Fatalf("result %d has index %d; order not preserved", i, r.Index)
			}
		}
	case <-time.After(10 * time.Second):
		t.Fatal("batch processing stalled on a large input")
	}
}

func TestBatchProcessor_PartialFailure(t *testing.T) {
	apps := []model.Application{
		{Purpose: "solar farm construction"},
		{Purpose: "broken application"},
		{Purpose: "wind turbine installation"},
	}

	bp := NewBatchProcessor(&stubEvaluator{failFor: "broken"}, 2)
	results := bp.ProcessApplications(context.Background(), apps)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[1].GetError() == nil {
		t.Error("expected error for broken application")
	}
	if results[0].GetError() != nil || results[2].GetError() != nil {
		t.Error("healthy applications should not fail")
	}
	if results[0].Result == nil || results[2].Result == nil {
		t.Error("healthy applications should carry results")
	}
}

func TestBatchProcessor_Empty(t *testing.T) {
	bp := NewBatchProcessor(&stubEvaluator{}, 2)
	results := bp.ProcessApplications(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestReadApplicationsFromFile(t *testing.T) {
	content := strings.Join([]string{
		"# batch of loan applications",
		"",
		"Install 50 MW solar farm",
		"25000000\tRetrofit office building with LED lighting",
		"  ",
		"1,500,000\tPurchase electric delivery vans",
	}, "\n")

	path := filepath.Join(t.TempDir(), "apps.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	apps, err := ReadApplicationsFromFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	if len(apps) != 3 {
		t.Fatalf("expected 3 applications, got %d", len(apps))
	}
	if apps[0].Purpose != "Install 50 MW solar farm" || apps[0].Amount != 0 {
		t.Errorf("app 0 = %+v", apps[0])
	}
	if apps[1].Amount != 25000000 || !strings.HasPrefix(apps[1].Purpose, "Retrofit") {
		t.Errorf("app 1 = %+v", apps[1])
	}
	if apps[2].Amount != 1500000 {
		t.Errorf("app 2 amount = %v, comma grouping should parse", apps[2].Amount)
	}
}

func TestReadApplicationsFromFile_BadAmount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apps.txt")
	if err := os.WriteFile(path, []byte("abc\tsolar project\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadApplicationsFromFile(path); err == nil {
		t.Error("expected error for non-numeric amount")
	}
}

func TestReadApplicationsFromFile_Missing(t *testing.T) {
	if _, err := ReadApplicationsFromFile("/nonexistent/apps.txt"); err == nil {
		t.Error("expected error for missing file")
	}
}
