package dynamo

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Member is one independent run of an Ensemble. Its System, Integrator,
// Controller and Metrics must not be shared with another member.
type Member struct {
	Name       string
	System     System
	Integrator Integrator
	Controller Controller
	Metrics    []Metric
	X0         State
}

type Ensemble struct {
	members []Member
	limit   int
}

// NewEnsemble runs at most limit members at once; limit <= 0 means no limit.
func NewEnsemble(limit int, members ...Member) *Ensemble {
	return &Ensemble{members: members, limit: limit}
}

// Run returns one result per member in member order. The first failure
// cancels the remaining members.
func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	g, ctx := errgroup.WithContext(ctx)
	if e.limit > 0 {
		g.SetLimit(e.limit)
	}

	results := make([]*Result, len(e.members))
	for i, m := range e.members {
		g.Go(func() error {
			s := New(m.System, m.Integrator, m.Controller)
			for _, metric := range m.Metrics {
				s.AddMetric(metric)
			}
			res, err := s.Run(ctx, m.X0, cfg)
			if err != nil {
				return fmt.Errorf("%s: %w", m.Name, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
