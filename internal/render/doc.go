// Package render draws the figures produced by the tools with gonum/plot:
//
//   - [BarrierFrame] / [Animation]: the walker on the free-energy curve,
//     one PNG per frame, assembled into an animated GIF
//   - [Convergence]: RMSD of the free energy against simulation time
//   - [Contour]: a filled 2D PMF with contour lines and a colorbar
//
// Rendering only consumes data; it never drives the sampler.
package render
