// Package report builds user-facing run summaries: per-file and per-group
// counts plus simple distribution statistics over group sizes.
package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
)

// Run identifies a single invocation and accumulates its counters.
type Run struct {
	ID        string
	Operation string
	StartedAt time.Time

	FilesProcessed int
	RowsIn         int
	RowsOut        int
	Failures       []string
}

// NewRun starts a run record for the named operation.
func NewRun(operation string) *Run {
	return &Run{
		ID:        uuid.NewString(),
		Operation: operation,
		StartedAt: time.Now(),
	}
}

// Fail records a per-item failure without aborting the run.
func (r *Run) Fail(context string, err error) {
	r.Failures = append(r.Failures, fmt.Sprintf("%s: %v", context, err))
}

// Summary renders a short completion line.
func (r *Run) Summary() string {
	return fmt.Sprintf("run %s (%s): %d file(s), %d row(s) in, %d row(s) out, %d failure(s) in %s",
		r.ID, r.Operation, r.FilesProcessed, r.RowsIn, r.RowsOut, len(r.Failures),
		time.Since(r.StartedAt).Round(time.Millisecond))
}

// GroupSummary describes the size distribution of a group partition.
type GroupSummary struct {
	Groups int
	Rows   int
	Min    float64
	Max    float64
	Mean   float64
	Median float64
}

// SummarizeGroups computes size statistics over a partition. Returns a
// zero summary for an empty partition.
func SummarizeGroups(sizes []int) (GroupSummary, error) {
	summary := GroupSummary{Groups: len(sizes)}
	if len(sizes) == 0 {
		return summary, nil
	}

	data := make(stats.Float64Data, len(sizes))
	for i, n := range sizes {
		summary.Rows += n
		data[i] = float64(n)
	}

	var err error
	if summary.Min, err = stats.Min(data); err != nil {
		return summary, err
	}
	if summary.Max, err = stats.Max(data); err != nil {
		return summary, err
	}
	if summary.Mean, err = stats.Mean(data); err != nil {
		return summary, err
	}
	if summary.Median, err = stats.Median(data); err != nil {
		return summary, err
	}
	return summary, nil
}

// String renders the summary for logs.
func (s GroupSummary) String() string {
	return fmt.Sprintf("%d group(s) over %d row(s), sizes min=%.0f max=%.0f mean=%.1f median=%.1f",
		s.Groups, s.Rows, s.Min, s.Max, s.Mean, s.Median)
}
