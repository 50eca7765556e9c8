// Package dynamo provides the simulation primitives that drive a linkage
// through time.
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, u, t))
//   - [Integrator]: numerical stepper
//   - [Controller]: computes the joint torques each step
//   - [Simulator]: orchestrates a fixed-step run
//   - [Ensemble]: runs independent simulators concurrently
//
// # Example
//
//	dyn, _ := models.NewTripleLink(linkage.Default())
//	sim := dynamo.New(dyn, integrators.NewSemiImplicitEuler(), control.NewNone(3))
//	result, err := sim.Run(ctx, dyn.InitialState(), dynamo.DefaultConfig())
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. For parallel runs use
// [Ensemble], which builds a fresh simulator per member.
package dynamo
