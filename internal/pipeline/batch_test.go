package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/hemodyn/starling/internal/model"
)

func TestBatchProcessor_ProcessBatch(t *testing.T) {
	t.Parallel()

	load := func(source string) (model.Dataset, error) {
		return typicalDataset(), nil
	}

	bp := NewBatchProcessor(
		NewAnalyzer(WithLogger(quietLogger())),
		load,
		WithBatchLogger(quietLogger()),
		WithConcurrency(2),
	)

	sources := []string{"a.csv", "b.csv", "c.csv"}

	var mu sync.Mutex
	seen := make(map[int]bool)

	reports, err := bp.ProcessBatch(context.Background(), sources, func(index int, report *model.AnalysisReport, err error) {
		mu.Lock()
		defer mu.Unlock()
		seen[index] = true
		if err != nil {
			t.Errorf("callback for index %d received error: %v", index, err)
		}
	})
	if err != nil {
		t.Fatalf("ProcessBatch returned error: %v", err)
	}

	if len(reports) != len(sources) {
		t.Fatalf("got %d reports, want %d", len(reports), len(sources))
	}
	// Results come back in input order regardless of completion order.
	for i, source := range sources {
		if reports[i] == nil {
			t.Fatalf("report %d is nil", i)
		}
		if reports[i].Source != source {
			t.Errorf("report %d source = %q, want %q", i, reports[i].Source, source)
		}
		if !reports[i].Fitted() {
			t.Errorf("report %d not fitted: %s", i, reports[i].FailureDetail)
		}
	}
	if len(seen) != len(sources) {
		t.Errorf("callback invoked for %d items, want %d", len(seen), len(sources))
	}
}

func TestBatchProcessor_ProcessBatch_loadFailuresDoNotCancel(t *testing.T) {
	t.Parallel()

	loadErr := errors.New("file corrupted")
	load := func(source string) (model.Dataset, error) {
		if source == "bad.csv" {
			return nil, loadErr
		}
		return typicalDataset(), nil
	}

	bp := NewBatchProcessor(
		NewAnalyzer(WithLogger(quietLogger())),
		load,
		WithBatchLogger(quietLogger()),
	)

	var mu sync.Mutex
	callbackErrs := make(map[int]error)

	reports, err := bp.ProcessBatch(context.Background(), []string{"good.csv", "bad.csv", "also-good.csv"},
		func(index int, report *model.AnalysisReport, err error) {
			mu.Lock()
			defer mu.Unlock()
			callbackErrs[index] = err
		})
	if err != nil {
		t.Fatalf("ProcessBatch returned error: %v", err)
	}

	if reports[0] == nil || reports[2] == nil {
		t.Error("loadable datasets were not analyzed")
	}
	if reports[1] != nil {
		t.Error("unloadable dataset produced a report")
	}
	if !errors.Is(callbackErrs[1], loadErr) {
		t.Errorf("callback error for bad.csv = %v, want %v", callbackErrs[1], loadErr)
	}
	if callbackErrs[0] != nil || callbackErrs[2] != nil {
		t.Error("callback received errors for loadable datasets")
	}
}

func TestBatchProcessor_ProcessBatch_nilCallback(t *testing.T) {
	t.Parallel()

	load := func(string) (model.Dataset, error) { return typicalDataset(), nil }
	bp := NewBatchProcessor(
		NewAnalyzer(WithLogger(quietLogger())),
		load,
		WithBatchLogger(quietLogger()),
	)

	reports, err := bp.ProcessBatch(context.Background(), []string{"a.csv"}, nil)
	if err != nil {
		t.Fatalf("ProcessBatch returned error: %v", err)
	}
	if len(reports) != 1 || reports[0] == nil {
		t.Fatalf("got %v, want one report", reports)
	}
}

func TestBatchProcessor_ProcessBatch_cancelledContext(t *testing.T) {
	t.Parallel()

	load := func(string) (model.Dataset, error) { return typicalDataset(), nil }
	bp := NewBatchProcessor(
		NewAnalyzer(WithLogger(quietLogger())),
		load,
		WithBatchLogger(quietLogger()),
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sources := make([]string, 8)
	for i := range sources {
		sources[i] = fmt.Sprintf("ds-%d.csv", i)
	}

	if _, err := bp.ProcessBatch(ctx, sources, nil); err == nil {
		t.Error("ProcessBatch succeeded with a cancelled context")
	}
}

func TestBatchProcessor_ProcessBatch_respectsMixedOutcomes(t *testing.T) {
	t.Parallel()

	sparse := model.Dataset{
		{Volume: 75, Response: 2, HasResponse: true},
		{Volume: 150, Response: 5, HasResponse: true},
	}
	load := func(source string) (model.Dataset, error) {
		if source == "sparse.csv" {
			return sparse, nil
		}
		return typicalDataset(), nil
	}

	bp := NewBatchProcessor(
		NewAnalyzer(WithLogger(quietLogger())),
		load,
		WithBatchLogger(quietLogger()),
	)

	reports, err := bp.ProcessBatch(context.Background(), []string{"full.csv", "sparse.csv"}, nil)
	if err != nil {
		t.Fatalf("ProcessBatch returned error: %v", err)
	}

	if !reports[0].Fitted() {
		t.Errorf("full dataset not fitted: %s", reports[0].FailureDetail)
	}
	if reports[1].Fitted() {
		t.Error("sparse dataset unexpectedly fitted")
	}
	if reports[1].Failure != model.FailureInsufficientData {
		t.Errorf("sparse dataset failure = %v, want FailureInsufficientData", reports[1].Failure)
	}
}
