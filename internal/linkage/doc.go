// Package linkage implements the rigid-body dynamics of a planar three-link
// chain pinned to the ground at its first joint and free at its last.
//
// A [Linkage] holds three [Link] segments ordered from the ground pivot to
// the free tip. The solver operations are:
//
//   - [Linkage.InverseDynamics]: joint reactions and torques from θ, ω, α
//   - [Linkage.ForwardDynamicsFull]: α from each link's stored loads
//   - [Linkage.ForwardDynamicsTorques]: α from a joint torque triple
//   - [Linkage.StepForwardTorques]: one semi-implicit Euler step
//
// # Example
//
//	l := linkage.Default()
//	sol, err := l.InverseDynamics()
//	if err != nil {
//		return err
//	}
//	loaded, _ := l.WithLoads(sol)
//	alphas, _ := loaded.ForwardDynamicsFull()
//
// # Thread Safety
//
// A Linkage is plain data. Solvers read it and StepForwardTorques writes it,
// so a Linkage must be confined to one goroutine; use [Linkage.Clone] to hand
// copies to others.
package linkage
