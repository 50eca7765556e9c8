// Package optim searches config parameters for the run that minimizes a
// metric, typically controller gains against tracking error.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/linksim/internal/config"
	"github.com/san-kum/linksim/internal/dynamo"
	"github.com/san-kum/linksim/internal/experiment"
)

var ErrUnknownParam = errors.New("unknown search parameter")

// setters maps a search parameter onto the config field it overrides.
var setters = map[string]func(*config.Config, float64){
	"kp":      func(c *config.Config, v float64) { c.PID.Kp = v },
	"ki":      func(c *config.Config, v float64) { c.PID.Ki = v },
	"kd":      func(c *config.Config, v float64) { c.PID.Kd = v },
	"gravity": func(c *config.Config, v float64) { c.Gravity = v },
	"dt":      func(c *config.Config, v float64) { c.Dt = v },
}

// Params lists the names a GridSearch accepts.
func Params() []string {
	names := make([]string, 0, len(setters))
	for name := range setters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("%d params but %d ranges", len(params), len(ranges))
	}
	for i, name := range params {
		if _, ok := setters[name]; !ok {
			return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownParam, name, Params())
		}
		if len(ranges[i]) == 0 {
			return nil, fmt.Errorf("%s: empty range", name)
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// Best is the winning grid point.
type Best struct {
	Params    map[string]float64
	Value     float64
	Evaluated int
	Diverged  int
}

// Search runs base once per grid point and keeps the lowest metricName.
// Runs that diverge score +Inf rather than aborting the search.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, reg *experiment.Registry, metricName string) (Best, error) {
	best := Best{Value: math.Inf(1)}
	err := g.searchRecursive(ctx, 0, make(map[string]float64), base, reg, metricName, &best)
	return best, err
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	base *config.Config,
	reg *experiment.Registry,
	metricName string,
	best *Best,
) error {
	if depth == len(g.paramNames) {
		val, err := g.evaluate(ctx, current, base, reg, metricName)
		if err != nil {
			return err
		}
		best.Evaluated++
		if math.IsInf(val, 1) {
			best.Diverged++
		}
		if val < best.Value || best.Params == nil {
			best.Value = val
			best.Params = make(map[string]float64, len(current))
			for k, v := range current {
				best.Params[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		if err := ctx.Err(); err != nil {
			return err
		}
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, base, reg, metricName, best); err != nil {
			return err
		}
	}
	return nil
}

func (g *GridSearch) evaluate(ctx context.Context, params map[string]float64, base *config.Config, reg *experiment.Registry, metricName string) (float64, error) {
	cfg := base.Clone()
	for name, v := range params {
		setters[name](cfg, v)
	}

	exp, err := experiment.New(cfg, reg, nil)
	if err != nil {
		return 0, fmt.Errorf("%v: %w", params, err)
	}

	result, err := exp.Run(ctx)
	var simErr *dynamo.SimulationError
	if errors.As(err, &simErr) {
		return math.Inf(1), nil
	}
	if err != nil {
		return 0, err
	}

	val, ok := result.Metrics[metricName]
	if !ok {
		return 0, fmt.Errorf("metric %q not recorded", metricName)
	}
	if math.IsNaN(val) {
		return math.Inf(1), nil
	}
	return val, nil
}
