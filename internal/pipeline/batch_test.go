package pipeline

import (
	"context"
	"sync"
	"testing"

	"github.com/razberi-py/phone-number-lookup/internal/model"
)

// testPipelineFactory returns a factory producing fully configured
// pipelines with a fixed reference instant.
func testPipelineFactory() func(string) *Pipeline {
	return func(string) *Pipeline {
		return DefaultPipeline(nil, WithPipelineReferenceTime(fixedRef))
	}
}

// TestBatchProcessor tests concurrent batch analysis.
func TestBatchProcessor(t *testing.T) {
	t.Parallel()

	t.Run("returns reports in input order", func(t *testing.T) {
		t.Parallel()

		numbers := []string{"+442079460958", "+14155552671", "+818012345678"}
		bp := NewBatchProcessor(testPipelineFactory(), WithConcurrency(2))

		reports, err := bp.ProcessBatch(context.Background(), numbers)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(reports) != 3 {
			t.Fatalf("expected 3 reports, got %d", len(reports))
		}
		for i, number := range numbers {
			if reports[i].Input != number {
				t.Errorf("report %d: expected input %q, got %q", i, number, reports[i].Input)
			}
		}
	})

	t.Run("carries per-number errors without failing the batch", func(t *testing.T) {
		t.Parallel()

		numbers := []string{"+442079460958", "notanumber"}
		bp := NewBatchProcessor(testPipelineFactory())

		reports, err := bp.ProcessBatch(context.Background(), numbers)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if reports[0].Error != nil {
			t.Errorf("expected no error for the valid number, got %v", reports[0].Error)
		}
		if reports[1].Error == nil {
			t.Error("expected an error on the unparsable number's report")
		}
	})

	t.Run("invokes callback for every number", func(t *testing.T) {
		t.Parallel()

		numbers := []string{"+442079460958", "+14155552671"}
		bp := NewBatchProcessor(testPipelineFactory(), WithConcurrency(2))

		var mu sync.Mutex
		seen := make(map[int]string)

		_, err := bp.ProcessBatchWithCallback(context.Background(), numbers,
			func(report *model.Report, index int) {
				mu.Lock()
				seen[index] = report.Input
				mu.Unlock()
			})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(seen) != 2 {
			t.Fatalf("expected 2 callbacks, got %d", len(seen))
		}
		if seen[0] != "+442079460958" || seen[1] != "+14155552671" {
			t.Errorf("unexpected callback inputs: %v", seen)
		}
	})

	t.Run("passes each number to the pipeline factory", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		seen := make(map[string]bool)
		factory := func(number string) *Pipeline {
			mu.Lock()
			seen[number] = true
			mu.Unlock()
			return DefaultPipeline(nil, WithPipelineReferenceTime(fixedRef))
		}

		numbers := []string{"+442079460958", "+14155552671"}
		bp := NewBatchProcessor(factory, WithConcurrency(2))

		if _, err := bp.ProcessBatch(context.Background(), numbers); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for _, number := range numbers {
			if !seen[number] {
				t.Errorf("expected factory to receive %q", number)
			}
		}
	})

	t.Run("returns error on cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		bp := NewBatchProcessor(testPipelineFactory())
		_, err := bp.ProcessBatch(ctx, []string{"+442079460958"})
		if err == nil {
			t.Error("expected error for cancelled context")
		}
	})
}

// TestWithConcurrency tests the concurrency option.
func TestWithConcurrency(t *testing.T) {
	t.Parallel()

	t.Run("sets a positive limit", func(t *testing.T) {
		t.Parallel()
		bp := NewBatchProcessor(testPipelineFactory(), WithConcurrency(8))
		if bp.concurrency != 8 {
			t.Errorf("expected concurrency 8, got %d", bp.concurrency)
		}
	})

	t.Run("ignores a non-positive limit", func(t *testing.T) {
		t.Parallel()
		bp := NewBatchProcessor(testPipelineFactory(), WithConcurrency(0))
		if bp.concurrency != 4 {
			t.Errorf("expected default concurrency 4, got %d", bp.concurrency)
		}
	})
}
