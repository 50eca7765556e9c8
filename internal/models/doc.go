// Package models adapts the linkage solvers to the [dynamo.System] interface
// so the generic simulator and integrators can drive them.
package models
