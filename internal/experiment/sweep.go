package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/linksim/internal/config"
	"github.com/san-kum/linksim/internal/dynamo"
)

// Variant is one point of a parameter sweep.
type Variant struct {
	Name   string
	Config *config.Config
}

// SweepResult pairs a variant with its run.
type SweepResult struct {
	Variant
	Result *dynamo.Result
}

// Sweep runs every variant concurrently, at most limit at a time. All
// variants share dt and duration with the first one.
func Sweep(ctx context.Context, reg *Registry, limit int, variants ...Variant) ([]SweepResult, error) {
	if len(variants) == 0 {
		return nil, nil
	}

	members := make([]dynamo.Member, len(variants))
	for i, v := range variants {
		if err := v.Config.Validate(); err != nil {
			return nil, fmt.Errorf("%s: invalid config: %w", v.Name, err)
		}
		m, _, err := reg.Member(v.Name, v.Config)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", v.Name, err)
		}
		members[i] = m
	}

	first := variants[0].Config
	results, err := dynamo.NewEnsemble(limit, members...).Run(ctx, dynamo.Config{
		Dt:            first.Dt,
		Duration:      first.Duration,
		ValidateState: true,
	})
	if err != nil {
		return nil, err
	}

	out := make([]SweepResult, len(variants))
	for i, v := range variants {
		out[i] = SweepResult{Variant: v, Result: results[i]}
	}
	return out, nil
}

// GravityVariants copies base once per gravity value.
func GravityVariants(base *config.Config, gravities ...float64) []Variant {
	out := make([]Variant, len(gravities))
	for i, g := range gravities {
		cfg := base.Clone()
		cfg.Gravity = g
		out[i] = Variant{Name: fmt.Sprintf("g=%g", g), Config: cfg}
	}
	return out
}
