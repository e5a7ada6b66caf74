// Package viz renders a gravity system in the terminal.
//
// The package implements a live view using the Bubble Tea framework:
//
//   - [Model]: steps the system once per tick and draws trails and bodies
//   - [Canvas]: Braille-based pixel canvas with per-cell color
//   - [Projection]: world to sub-pixel mapping centered on the origin
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	.     - Single step while paused
//	R     - Reset to initial state
//	+/-   - Zoom in/out
//	Q     - Quit
package viz
