package panelbg

import "github.com/gogpu/panelbg/pixbuf"

// Background is the configured background of a panel. It is one of
// NoneBackground, ColorBackground or ImageBackground.
type Background interface {
	// Type returns the arm of the union.
	Type() Type

	isBackground()
}

// NoneBackground shows the host's default style.
type NoneBackground struct{}

// ColorBackground is a solid color. Alpha 255 is opaque; anything less is
// blended over the desktop.
type ColorBackground struct {
	Color RGB
	Alpha uint8
}

// ImageBackground is an image file.
//
// Fit scales the image to the panel thickness keeping its aspect ratio.
// Stretch scales it to the full panel region. With neither set the image
// keeps its own size and is tiled. Rotate turns the image a quarter turn on
// vertical panels.
type ImageBackground struct {
	Path    string
	Fit     bool
	Stretch bool
	Rotate  bool
}

func (NoneBackground) Type() Type  { return TypeNone }
func (ColorBackground) Type() Type { return TypeColor }
func (ImageBackground) Type() Type { return TypeImage }

func (NoneBackground) isBackground()  {}
func (ColorBackground) isBackground() {}
func (ImageBackground) isBackground() {}

// DefaultStyle is what a window shows for a None background: a pattern
// pixmap if one is set, otherwise a color. The zero value leaves the
// window's own default in place.
type DefaultStyle struct {
	Color   RGB
	Pattern *pixbuf.Buf

	// HasColor marks Color as set; a zero RGB is a valid black.
	HasColor bool
}

// IsZero reports whether the style sets neither a pattern nor a color.
func (d DefaultStyle) IsZero() bool {
	return d.Pattern == nil && !d.HasColor
}

func (d DefaultStyle) equal(o DefaultStyle) bool {
	return d.Pattern == o.Pattern && d.HasColor == o.HasColor && d.Color == o.Color
}
