// Package vframe is the per-frame compositing core of a timeline-based
// video editor.
//
// The package turns evaluated timeline state into pixels: an ordered list of
// layers is drawn bottom-to-top onto an opaque raster Surface, with per-layer
// opacity, CSS-style color filters, picture-in-picture borders with drop
// shadows, and subtitle burn-in. Color grading is expressed as editable
// curve control points compiled into 256-entry lookup tables using monotone
// cubic (Fritsch-Carlson) interpolation, applied as a post-process over the
// composited frame.
//
// Companion packages:
//
//   - reverb synthesizes stereo impulse responses for the editor's
//     convolution reverb, memoized on rounded decay/pre-delay parameters.
//   - track converts motion-tracking worker results into keyframe tracks
//     that drive layer transforms.
//   - cache provides the sharded LRU store shared by the above.
//
// All drawing entry points are synchronous and run to completion; Composite
// and RenderSubtitle are designed for the presentation thread's per-frame
// budget and perform no I/O.
//
// Basic usage:
//
//	surface, err := vframe.NewSurface(1920, 1080)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	comp, err := vframe.NewCompositor(surface)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	comp.Composite(layers)
//	comp.RenderSubtitle(vframe.SubtitleOverlay{Text: "hello"})
package vframe
