package metrics

import (
	"math"

	"github.com/san-kum/linksim/internal/dynamo"
)

// TrackingError is the mean over samples of Σ|θ_i − target_i|, taken over
// the final settle fraction of the run. Samples before the window opens are
// ignored so a tuner scores where the chain ends up, not how it got there.
type TrackingError struct {
	targets  []float64
	settle   float64
	duration float64
	sum      float64
	samples  int
}

// NewTrackingError scores the last settle fraction (0,1] of a run lasting
// duration seconds. A settle outside that range scores the whole run.
func NewTrackingError(targets []float64, duration, settle float64) *TrackingError {
	if settle <= 0 || settle > 1 {
		settle = 1
	}
	return &TrackingError{
		targets:  append([]float64(nil), targets...),
		settle:   settle,
		duration: duration,
	}
}

func (e *TrackingError) Name() string { return "tracking_error" }

func (e *TrackingError) Observe(x dynamo.State, u dynamo.Control, t float64) {
	if t < e.duration*(1-e.settle) {
		return
	}
	n := len(e.targets)
	if len(x) < n {
		return
	}
	for i, target := range e.targets {
		e.sum += math.Abs(x[i] - target)
	}
	e.samples++
}

func (e *TrackingError) Value() float64 {
	if e.samples == 0 {
		return math.Inf(1)
	}
	return e.sum / float64(e.samples)
}

func (e *TrackingError) Reset() {
	e.sum = 0
	e.samples = 0
}
