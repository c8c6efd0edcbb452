package results

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestSummaryAdd(t *testing.T) {
	t.Parallel()

	s := NewSummary(2)
	s.Add(NewFileResultBuilder("ok.yaml").WithStepCount(3).WithDuration(time.Millisecond))
	s.Add(NewFileResultBuilder("bad.yaml").WithStepCount(1).WithError(errors.New("boom")))
	s.SetTotalDuration(2 * time.Second)

	want := &Summary{
		FileResults: []FileResult{
			{Filename: "ok.yaml", StepCount: 3, Duration: time.Millisecond},
			{Filename: "bad.yaml", StepCount: 1, Error: errors.New("boom")},
		},
		ExecutedFiles:  2,
		ExecutedSteps:  4,
		SucceededFiles: 1,
		FailedFiles:    1,
		TotalDuration:  2 * time.Second,
	}
	if diff := cmp.Diff(want, s, cmp.Comparer(sameMessage)); diff != "" {
		t.Fatalf("Summary mismatch (-want +got):\n%s", diff)
	}

	if got := s.StepsPerSecond(); got != 2 {
		t.Errorf("StepsPerSecond() = %f, want 2", got)
	}
	if got := s.FailurePercentage(); got != 50 {
		t.Errorf("FailurePercentage() = %f, want 50", got)
	}
}

func sameMessage(a, b error) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Error() == b.Error()
}

func TestCalculateAggregatedStats(t *testing.T) {
	t.Parallel()

	runs := []*Summary{
		{ExecutedFiles: 1, ExecutedSteps: 4, SucceededFiles: 1, TotalDuration: time.Second},
		{ExecutedFiles: 1, ExecutedSteps: 4, FailedFiles: 1, TotalDuration: time.Second},
	}

	stats := CalculateAggregatedStats(runs)
	want := AggregatedStats{
		TotalExecutedFiles:   2,
		TotalExecutedSteps:   8,
		TotalSucceededFiles:  1,
		TotalFailedFiles:     1,
		TotalDuration:        2 * time.Second,
		SuccessfulIterations: 1,
		IterationCount:       2,
	}
	if diff := cmp.Diff(want, stats); diff != "" {
		t.Fatalf("AggregatedStats mismatch (-want +got):\n%s", diff)
	}
	if got := stats.SuccessRate(); got != 50 {
		t.Errorf("SuccessRate() = %f, want 50", got)
	}
	if got := stats.AverageDuration(); got != time.Second {
		t.Errorf("AverageDuration() = %v, want 1s", got)
	}
}

func TestEmptySummary(t *testing.T) {
	t.Parallel()

	s := NewSummary(0)
	if s.StepsPerSecond() != 0 || s.SuccessPercentage() != 0 {
		t.Fatalf("empty summary rates = %f, %f; want 0, 0", s.StepsPerSecond(), s.SuccessPercentage())
	}
	if got := CalculateAggregatedStats(nil).SuccessRate(); got != 0 {
		t.Fatalf("SuccessRate() of no iterations = %f, want 0", got)
	}
}
