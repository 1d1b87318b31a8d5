// Package viz renders trajectories in the terminal.
//
//   - [Canvas]: braille pixel canvas, 2×4 dots per cell
//   - [PlotGroup]: asciigraph charts of the recorded time series
//   - [Replay]: Bubble Tea model animating a finished flight
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Restart
//	+/-   - Playback speed
//	[]    - Step through frames
//	V     - Cycle views
//	T     - Cycle themes
package viz
