// Package filter implements the pixel-level building blocks behind layer
// styling: 1D Gaussian kernels, separable blur, and 4x5 color matrices.
//
// Color matrices operate on straight (non-premultiplied) 8-bit RGBA, the
// same representation the surface stores, so a matrix can be applied as a
// per-pixel stage during a draw without conversion passes.
package filter
