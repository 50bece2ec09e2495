package vframe

// Layer is one drawable entry of a composite. Layers are supplied
// bottom to top; slice index is z-order.
type Layer struct {
	// Frame is the pixel source. A frame with zero intrinsic size is
	// silently skipped for the frame (media still warming up).
	Frame Frame

	// Opacity is the layer alpha in [0, 1]. Values outside the range
	// are clamped at draw time.
	Opacity float64

	// Filter is a CSS-style filter string such as
	// "brightness(1.2) saturate(0.8)". Empty or "none" disables the
	// filter stage. Unknown functions are logged and ignored.
	Filter string

	// Transform places the layer explicitly. Nil means aspect-fit the
	// frame into the full destination surface.
	Transform *Transform
}

// Transform places a layer at an explicit rectangle on the surface,
// optionally rotated about the rectangle's own center.
type Transform struct {
	X           float64
	Y           float64
	Width       float64
	Height      float64
	RotationDeg float64

	// Border styles the layer as a picture-in-picture inset.
	Border *Border
}

// Border is the picture-in-picture frame style: a stroked rectangle
// around the layer, optionally casting a drop shadow.
type Border struct {
	// WidthPx is the stroke width. Zero disables the border entirely,
	// shadow included.
	WidthPx float64

	// Color is the stroke color.
	Color RGBA

	// ShadowBlurPx is the drop shadow blur radius. Zero draws a border
	// without a shadow. The shadow offset and color are fixed house
	// style: (0, 2) and half-transparent black.
	ShadowBlurPx float64
}
