// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"image/color"

	"github.com/gogpu/panelbg/pixbuf"
)

// PixmapID identifies a drawable bound as a window background.
// Zero means no drawable.
type PixmapID uint32

// Target is a window whose background can be set.
//
// Targets are NOT thread-safe. They are driven from the event loop that owns
// the panel window.
type Target interface {
	// Screen returns the screen number the window lives on.
	Screen() int

	// BindPixmap uploads buf and makes it the window background.
	// The previous drawable, if any, is released.
	BindPixmap(buf *pixbuf.Buf) (PixmapID, error)

	// BindColor makes a solid color the window background.
	BindColor(c color.RGBA) error

	// Reset falls back to the host's default background and releases any
	// bound drawable.
	Reset() error

	// Sync blocks until previously issued binds are visible, so a child
	// sampling the window background sees the finished result.
	Sync() error
}

// Options configures target creation through the registry.
type Options struct {
	// Screen is the screen number. Negative selects the default screen.
	Screen int

	// Window is an existing native window to adopt. Zero creates a new one.
	Window uint32

	// Width and Height size a newly created window (or image target).
	Width  int
	Height int

	// Display names the display connection, such as ":0". Empty uses the
	// environment.
	Display string
}

// DefaultOptions returns options for a new window on the default screen.
func DefaultOptions(width, height int) Options {
	return Options{Screen: -1, Width: width, Height: height}
}
