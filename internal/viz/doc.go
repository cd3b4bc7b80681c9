// Package viz provides the terminal renderer for live gas simulations.
//
// The package implements a Bubble Tea view over a running simulation:
//
//   - [Canvas]: Braille-based pixel buffer for body rendering
//   - [Model]: frame-driven view that drains wall-clock time into fixed
//     ticks and draws bodies at lag-interpolated positions
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset (same seed, deterministic replay)
//	S     - Toggle stats sidebar
//	Q     - Quit
//
// The renderer only reads simulation state; all mutation happens inside
// the accumulator loop it drives.
package viz
