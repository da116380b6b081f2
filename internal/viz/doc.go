// Package viz provides the terminal front end for sortviz.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: bar chart of the current frame plus a status panel
//   - [RenderBars]: pure projection of values and a highlight onto coloured bars
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	S/Enter - Start the selected algorithm
//	Space   - Pause/Resume
//	R       - Reset (cancels the run, new array)
//	G       - Generate a new array
//	Tab     - Cycle algorithm
//	+/-     - Array size
//	←/→     - Slower/faster
//	W       - Toggle saving finished runs
//	T       - Cycle color themes
//	?       - Show help overlay
//
// Size, algorithm and generate are ignored while a run is in flight.
package viz
