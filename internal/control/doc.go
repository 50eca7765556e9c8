// Package control provides joint torque controllers for the linkage model.
//
// Controllers implement [dynamo.Controller] and read the second-order state
// layout [θ1, θ2, θ3, ω1, ω2, ω3], returning one torque per joint:
//
//   - [None]: zero torques
//   - [Constant]: a fixed torque vector
//   - [PID]: per-joint PID tracking target angles
//   - [LQR]: linear state feedback u = -K(x - target)
//
// # Usage
//
//	pid := control.NewPID([]float64{math.Pi / 2, 0, 0}, 40, 20, 12)
//	sim := dynamo.New(model, integrators.NewSemiImplicitEuler(), pid)
//
// Controllers implementing [dynamo.Configurable] support live tuning.
package control
