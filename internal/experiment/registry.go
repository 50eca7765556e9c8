package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/linksim/internal/config"
	"github.com/san-kum/linksim/internal/control"
	"github.com/san-kum/linksim/internal/dynamo"
	"github.com/san-kum/linksim/internal/integrators"
	"github.com/san-kum/linksim/internal/linkage"
	"github.com/san-kum/linksim/internal/metrics"
	"github.com/san-kum/linksim/internal/models"
)

// DefaultStabilityThreshold is the joint rate, rad/s, above which a sample
// counts against the stability metric.
const DefaultStabilityThreshold = 10.0

// DefaultSettleFraction is the trailing share of a run scored by the
// tracking error metric.
const DefaultSettleFraction = 0.25

type Registry struct {
	integrators map[string]func() dynamo.Integrator
	controllers map[string]func(*config.Config) dynamo.Controller
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func() dynamo.Integrator),
		controllers: make(map[string]func(*config.Config) dynamo.Controller),
	}

	r.integrators["euler"] = func() dynamo.Integrator { return integrators.NewEuler() }
	r.integrators["semi_implicit"] = func() dynamo.Integrator { return integrators.NewSemiImplicitEuler() }
	r.integrators["rk4"] = func() dynamo.Integrator { return integrators.NewRK4() }
	r.integrators["verlet"] = func() dynamo.Integrator { return integrators.NewVerlet() }

	r.controllers["none"] = func(*config.Config) dynamo.Controller {
		return control.NewNone(linkage.NumLinks)
	}
	r.controllers["constant"] = func(cfg *config.Config) dynamo.Controller {
		return control.NewConstant(cfg.TorqueVector())
	}
	r.controllers["pid"] = func(cfg *config.Config) dynamo.Controller {
		return control.NewPID(cfg.PID.Targets, cfg.PID.Kp, cfg.PID.Ki, cfg.PID.Kd)
	}
	r.controllers["pd"] = func(cfg *config.Config) dynamo.Controller {
		return control.NewJointPD(cfg.PID.Targets, cfg.PID.Kp, cfg.PID.Kd)
	}

	return r
}

// GetIntegrator returns a fresh instance; integrators hold scratch space
// and must not be shared between runs.
func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s (available: %v)", name, r.ListIntegrators())
	}
	return fn(), nil
}

func (r *Registry) GetController(cfg *config.Config) (dynamo.Controller, error) {
	fn, ok := r.controllers[cfg.Controller]
	if !ok {
		return nil, fmt.Errorf("unknown controller: %s (available: %v)", cfg.Controller, r.ListControllers())
	}
	return fn(cfg), nil
}

func (r *Registry) ListIntegrators() []string {
	return sortedKeys(r.integrators)
}

func (r *Registry) ListControllers() []string {
	return sortedKeys(r.controllers)
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns new metric instances for one run of cfg. Configs
// with a full set of joint targets also get a tracking error.
func (r *Registry) DefaultMetrics(cfg *config.Config) []dynamo.Metric {
	ms := []dynamo.Metric{
		metrics.NewEnergyDrift(cfg.Linkage()),
		metrics.NewStability(DefaultStabilityThreshold),
		metrics.NewControlEffort(),
		metrics.NewPeakTorque(),
	}
	if len(cfg.PID.Targets) == linkage.NumLinks {
		ms = append(ms, metrics.NewTrackingError(cfg.PID.Targets, cfg.Duration, DefaultSettleFraction))
	}
	return ms
}

// Member builds an independent ensemble member for cfg.
func (r *Registry) Member(name string, cfg *config.Config) (dynamo.Member, *models.TripleLink, error) {
	chain := cfg.Linkage()
	model, err := models.NewTripleLink(chain)
	if err != nil {
		return dynamo.Member{}, nil, err
	}
	integ, err := r.GetIntegrator(cfg.Integrator)
	if err != nil {
		return dynamo.Member{}, nil, err
	}
	ctrl, err := r.GetController(cfg)
	if err != nil {
		return dynamo.Member{}, nil, err
	}
	return dynamo.Member{
		Name:       name,
		System:     model,
		Integrator: integ,
		Controller: ctrl,
		Metrics:    r.DefaultMetrics(cfg),
		X0:         model.InitialState(),
	}, model, nil
}
