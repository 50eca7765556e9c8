package experiment

import (
	"context"
	"errors"
	"fmt"

	"github.com/san-kum/linksim/internal/config"
	"github.com/san-kum/linksim/internal/dynamo"
	"github.com/san-kum/linksim/internal/logging"
	"github.com/san-kum/linksim/internal/models"
)

// Experiment is one configured run of the triple-link model.
type Experiment struct {
	cfg       *config.Config
	log       logging.Logger
	model     *models.TripleLink
	simulator *dynamo.Simulator
}

// New validates cfg and wires the model, integrator, controller and
// default metrics named in it. A nil log discards output.
func New(cfg *config.Config, reg *Registry, log logging.Logger) (*Experiment, error) {
	if log == nil {
		log = logging.Nop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	member, model, err := reg.Member("run", cfg)
	if err != nil {
		return nil, err
	}

	s := dynamo.New(member.System, member.Integrator, member.Controller)
	for _, m := range member.Metrics {
		s.AddMetric(m)
	}

	return &Experiment{
		cfg:       cfg,
		log:       log,
		model:     model,
		simulator: s,
	}, nil
}

func (e *Experiment) simConfig() dynamo.Config {
	return dynamo.Config{
		Dt:            e.cfg.Dt,
		Duration:      e.cfg.Duration,
		ValidateState: true,
	}
}

// Run integrates the configured duration. A run that diverges returns the
// states up to the failure along with the error.
func (e *Experiment) Run(ctx context.Context) (*dynamo.Result, error) {
	e.log.Infof("running %s/%s for %gs at dt=%g", e.cfg.Integrator, e.cfg.Controller, e.cfg.Duration, e.cfg.Dt)

	res, err := e.simulator.Run(ctx, e.model.InitialState(), e.simConfig())
	if err != nil {
		var simErr *dynamo.SimulationError
		if errors.As(err, &simErr) {
			e.log.Warnf("stopped at step %d (t=%g): %v", simErr.Step, simErr.Time, simErr.Wrapped)
		}
		return res, err
	}

	e.log.WithField("steps", res.StepsTaken).Debugf("run complete")
	return res, nil
}

// RunWithCallback streams states without storing them.
func (e *Experiment) RunWithCallback(ctx context.Context, fn func(dynamo.State, dynamo.Control, float64) bool) error {
	return e.simulator.RunWithCallback(ctx, e.model.InitialState(), e.simConfig(), fn)
}

// Model exposes the system for rendering states back into a chain.
func (e *Experiment) Model() *models.TripleLink {
	return e.model
}

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *dynamo.Simulator {
	return e.simulator
}
