// Package viz renders the walker in the terminal.
//
//   - [LiveModel]: Bubble Tea program that steps the sampler on a timer
//   - [Canvas]: Braille sub-pixel canvas the landscape is drawn on
//
// # Key Bindings
//
//	Space - Pause/Resume the walk
//	R     - Reset to the initial position and beta
//	+/-   - Raise/lower beta
//	Q     - Quit
package viz
