// Package viz provides a terminal live view of the muscle simulation.
//
// The package implements a watch-only TUI using the Bubble Tea framework:
//
//   - [Model]: Bubble Tea model stepping the muscle in real time
//   - [Canvas]: Braille-based pixel canvas for the muscle profile
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset to initial state
//	Q     - Quit
//
// The view shows the contracting tube to scale along its axis, a strain
// history chart, and live readouts of pressure, length, strain, radius
// and energy. Parameters are fixed at launch; editing them means
// restarting with a different configuration.
package viz
