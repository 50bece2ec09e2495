// Package text renders subtitle lines onto raster destinations.
//
// Shaping (advance widths, kerning, complex scripts) goes through
// go-text/typesetting's HarfBuzz implementation; rasterization uses
// golang.org/x/image font faces. Base text direction is resolved with
// the Unicode bidi algorithm, so right-to-left subtitles measure and
// order correctly.
package text
