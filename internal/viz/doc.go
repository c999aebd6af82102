// Package viz provides terminal visualization for recorded trajectories.
//
//   - [Plot]: asciigraph line chart of one or more state components
//   - [Canvas]: Braille-based pixel canvas for phase portraits
//   - [Viewer]: Bubble Tea model for browsing a trajectory interactively
//   - Theme selection with 3 built-in color schemes
//
// # Key Bindings
//
//	←/→   - Move the cursor one point
//	[/]   - Move the cursor one page
//	Tab   - Cycle the plotted component
//	P     - Toggle phase portrait
//	T     - Cycle color themes
//	Q     - Quit
package viz
