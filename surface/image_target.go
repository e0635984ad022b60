// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"image/color"

	"github.com/gogpu/panelbg/pixbuf"
)

// BindKind describes what an ImageTarget currently shows.
type BindKind uint8

const (
	// BindNone means the host default background is shown.
	BindNone BindKind = iota
	// BindPixmap means a drawable is bound.
	BindPixmap
	// BindColor means a solid color is bound.
	BindColor
)

// String returns the bind kind name.
func (k BindKind) String() string {
	switch k {
	case BindPixmap:
		return "pixmap"
	case BindColor:
		return "color"
	default:
		return "none"
	}
}

// ImageTarget is an in-memory Target.
//
// It keeps a copy of the bound drawable or color and counts every call, which
// lets tests assert how often the pipeline touched the window. Render draws
// the bound background the way a window of the given size would show it.
type ImageTarget struct {
	screen int
	width  int
	height int

	kind   BindKind
	pixmap *pixbuf.Buf
	color  color.RGBA
	nextID PixmapID
	id     PixmapID

	// Fallback is the host default background shown after Reset.
	Fallback color.RGBA

	// Parent, when non-nil, is what lies behind the window, cropped to
	// the window. After Reset it is shown instead of Fallback, the way an
	// X window with a parent-relative background shows the desktop.
	Parent *pixbuf.Buf

	// FailBind, when non-nil, is returned by BindPixmap and BindColor.
	FailBind error

	Binds  int
	Resets int
	Syncs  int
}

// NewImageTarget creates an in-memory target of the given window size.
// Dimensions are clamped to a minimum of 1x1.
func NewImageTarget(screen, width, height int) *ImageTarget {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &ImageTarget{screen: screen, width: width, height: height}
}

// Screen implements Target.
func (t *ImageTarget) Screen() int { return t.screen }

// Width returns the window width.
func (t *ImageTarget) Width() int { return t.width }

// Height returns the window height.
func (t *ImageTarget) Height() int { return t.height }

// Resize changes the window size used by Render.
func (t *ImageTarget) Resize(width, height int) {
	if width > 0 {
		t.width = width
	}
	if height > 0 {
		t.height = height
	}
}

// BindPixmap implements Target. The buffer is copied.
func (t *ImageTarget) BindPixmap(buf *pixbuf.Buf) (PixmapID, error) {
	if t.FailBind != nil {
		return 0, t.FailBind
	}
	if buf == nil {
		return 0, pixbuf.ErrInvalidDimensions
	}
	t.Binds++
	t.nextID++
	t.kind = BindPixmap
	t.pixmap = buf.Clone()
	t.id = t.nextID
	return t.id, nil
}

// BindColor implements Target.
func (t *ImageTarget) BindColor(c color.RGBA) error {
	if t.FailBind != nil {
		return t.FailBind
	}
	t.Binds++
	t.kind = BindColor
	t.color = c
	t.pixmap = nil
	t.id = 0
	return nil
}

// Reset implements Target.
func (t *ImageTarget) Reset() error {
	t.Resets++
	t.kind = BindNone
	t.pixmap = nil
	t.id = 0
	return nil
}

// Sync implements Target.
func (t *ImageTarget) Sync() error {
	t.Syncs++
	return nil
}

// Kind returns what is currently bound.
func (t *ImageTarget) Kind() BindKind { return t.kind }

// Pixmap returns the bound drawable, or nil.
func (t *ImageTarget) Pixmap() *pixbuf.Buf { return t.pixmap }

// PixmapID returns the id of the bound drawable, or zero.
func (t *ImageTarget) PixmapID() PixmapID { return t.id }

// Color returns the bound solid color.
func (t *ImageTarget) Color() color.RGBA { return t.color }

// Render draws the current background into a new RGBA buffer of the window
// size. Bound drawables tile from the window origin like an X background
// pixmap does.
func (t *ImageTarget) Render() *pixbuf.Buf {
	switch t.kind {
	case BindPixmap:
		out, err := pixbuf.Tile(t.pixmap, t.width, t.height)
		if err != nil {
			return solid(t.width, t.height, t.Fallback)
		}
		if out.Format() != pixbuf.FormatRGBA8 {
			out, _ = out.Convert(pixbuf.FormatRGBA8)
		}
		return out
	case BindColor:
		return solid(t.width, t.height, t.color)
	default:
		if t.Parent != nil {
			if out, err := pixbuf.Tile(t.Parent, t.width, t.height); err == nil {
				if out, err = out.Convert(pixbuf.FormatRGBA8); err == nil {
					return out
				}
			}
		}
		return solid(t.width, t.height, t.Fallback)
	}
}

func solid(width, height int, c color.RGBA) *pixbuf.Buf {
	out, _ := pixbuf.New(width, height, pixbuf.FormatRGBA8)
	out.Fill(c.R, c.G, c.B, c.A)
	return out
}
