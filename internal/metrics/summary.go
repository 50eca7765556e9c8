package metrics

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// Summary describes one series, typically a joint angle or torque over a
// run.
type Summary struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	P95    float64 `json:"p95"`
}

// Summarize fails on an empty series.
func Summarize(series []float64) (Summary, error) {
	var s Summary
	var err error
	if s.Mean, err = stats.Mean(series); err != nil {
		return Summary{}, fmt.Errorf("summarize mean: %w", err)
	}
	if s.StdDev, err = stats.StandardDeviation(series); err != nil {
		return Summary{}, fmt.Errorf("summarize stddev: %w", err)
	}
	if s.Min, err = stats.Min(series); err != nil {
		return Summary{}, fmt.Errorf("summarize min: %w", err)
	}
	if s.Max, err = stats.Max(series); err != nil {
		return Summary{}, fmt.Errorf("summarize max: %w", err)
	}
	if s.P95, err = stats.Percentile(series, 95); err != nil {
		return Summary{}, fmt.Errorf("summarize p95: %w", err)
	}
	return s, nil
}

// Column extracts component i from each row. Rows too short for i are
// skipped.
func Column[T ~[]float64](rows []T, i int) []float64 {
	out := make([]float64, 0, len(rows))
	for _, row := range rows {
		if i < len(row) {
			out = append(out, row[i])
		}
	}
	return out
}
