// Package viz renders linkage runs in the terminal.
//
//   - [Canvas]: Braille pixel canvas, 2x4 dots per cell
//   - [Viewport]: maps chain coordinates onto a canvas
//   - [Model]: Bubble Tea viewer that steps a triple-link run live
//   - [Table]: lipgloss table for command output
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset to initial state
//	Tab   - Cycle tunable parameters
//	↑/↓   - Adjust the selected parameter by ±5%
//	[ ]   - Step back/forward through recent history
//	?     - Show help overlay
package viz
