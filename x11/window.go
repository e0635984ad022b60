// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package x11

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xgraphics"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/gogpu/panelbg"
	"github.com/gogpu/panelbg/pixbuf"
	"github.com/gogpu/panelbg/surface"
)

// ErrClosed is returned by a Window after Destroy.
var ErrClosed = errors.New("x11: window destroyed")

// Window is a surface.Target backed by an X window.
//
// Window is not safe for concurrent use; it is driven from the event loop.
type Window struct {
	X   *xgbutil.XUtil
	Win *xwindow.Window

	owned  bool
	ximg   *xgraphics.Image
	closed bool

	redMask, greenMask, blueMask uint32
}

// NewWindow creates and maps a top-level window of the given size.
func NewWindow(X *xgbutil.XUtil, width, height int) (*Window, error) {
	win, err := xwindow.Generate(X)
	if err != nil {
		return nil, fmt.Errorf("x11: generate window id: %w", err)
	}
	win.Create(X.RootWin(), 0, 0, max(width, 1), max(height, 1),
		xproto.CwBackPixel|xproto.CwEventMask,
		0, xproto.EventMaskStructureNotify|xproto.EventMaskExposure)
	win.Map()

	w := adopt(X, win)
	w.owned = true
	return w, nil
}

// AdoptWindow wraps an existing window, such as one created by the host.
func AdoptWindow(X *xgbutil.XUtil, id xproto.Window) *Window {
	return adopt(X, xwindow.New(X, id))
}

func adopt(X *xgbutil.XUtil, win *xwindow.Window) *Window {
	w := &Window{X: X, Win: win}
	visual := X.Screen().RootVisual
	for _, depth := range X.Screen().AllowedDepths {
		for _, v := range depth.Visuals {
			if v.VisualId == visual {
				w.redMask, w.greenMask, w.blueMask = v.RedMask, v.GreenMask, v.BlueMask
			}
		}
	}
	if w.redMask == 0 {
		w.redMask, w.greenMask, w.blueMask = 0xff0000, 0x00ff00, 0x0000ff
	}
	return w
}

// Screen implements surface.Target.
func (w *Window) Screen() int {
	return w.X.Conn().DefaultScreen
}

// BindPixmap implements surface.Target. buf is uploaded into a new server
// pixmap which becomes the window background; the previous one is freed.
func (w *Window) BindPixmap(buf *pixbuf.Buf) (surface.PixmapID, error) {
	if w.closed {
		return 0, ErrClosed
	}
	if buf == nil {
		return 0, pixbuf.ErrInvalidDimensions
	}

	ximg := xgraphics.New(w.X, image.Rect(0, 0, buf.Width(), buf.Height()))
	toBGRA(buf, ximg.Pix, ximg.Stride)
	if err := ximg.XSurfaceSet(w.Win.Id); err != nil {
		ximg.Destroy()
		return 0, fmt.Errorf("x11: create background pixmap: %w", err)
	}
	ximg.XDraw()
	ximg.XPaint(w.Win.Id)

	w.release()
	w.ximg = ximg
	return surface.PixmapID(ximg.Pixmap), nil
}

// BindColor implements surface.Target.
func (w *Window) BindColor(c color.RGBA) error {
	if w.closed {
		return ErrClosed
	}
	pixel := pixelValue(c, w.redMask, w.greenMask, w.blueMask)
	err := xproto.ChangeWindowAttributesChecked(w.X.Conn(), w.Win.Id,
		xproto.CwBackPixel, []uint32{pixel}).Check()
	if err != nil {
		return fmt.Errorf("x11: set background pixel: %w", err)
	}
	w.release()
	w.clear()
	return nil
}

// Reset implements surface.Target. The window shows its parent's
// background again.
func (w *Window) Reset() error {
	if w.closed {
		return nil
	}
	err := xproto.ChangeWindowAttributesChecked(w.X.Conn(), w.Win.Id,
		xproto.CwBackPixmap, []uint32{xproto.BackPixmapParentRelative}).Check()
	w.release()
	w.clear()
	if err != nil {
		return fmt.Errorf("x11: reset background: %w", err)
	}
	return nil
}

// Sync implements surface.Target with a round trip to the server.
func (w *Window) Sync() error {
	if w.closed {
		return ErrClosed
	}
	w.X.Sync()
	return nil
}

// Geometry returns the window position relative to the root window and
// its size.
func (w *Window) Geometry() (x, y, width, height int, err error) {
	c := w.X.Conn()
	geom, err := xproto.GetGeometry(c, xproto.Drawable(w.Win.Id)).Reply()
	if err != nil {
		return 0, 0, 0, 0, err
	}
	tr, err := xproto.TranslateCoordinates(c, w.Win.Id, w.X.RootWin(), 0, 0).Reply()
	if err != nil {
		return 0, 0, 0, 0, err
	}
	return int(tr.DstX), int(tr.DstY), int(geom.Width), int(geom.Height), nil
}

// OnConfigure calls fn with the new root-relative geometry whenever the
// window is moved or resized.
func (w *Window) OnConfigure(fn func(x, y, width, height int)) {
	xevent.ConfigureNotifyFun(func(_ *xgbutil.XUtil, _ xevent.ConfigureNotifyEvent) {
		x, y, width, height, err := w.Geometry()
		if err != nil {
			panelbg.Logger().Warn("x11: window geometry", "err", err)
			return
		}
		fn(x, y, width, height)
	}).Connect(w.X, w.Win.Id)
}

// Destroy frees the background pixmap and, for windows created by
// NewWindow, the window itself.
func (w *Window) Destroy() {
	if w.closed {
		return
	}
	w.closed = true
	w.release()
	xevent.Detach(w.X, w.Win.Id)
	if w.owned {
		w.Win.Destroy()
	}
}

func (w *Window) release() {
	if w.ximg != nil {
		w.ximg.Destroy()
		w.ximg = nil
	}
}

func (w *Window) clear() {
	xproto.ClearArea(w.X.Conn(), false, w.Win.Id, 0, 0, 0, 0)
}

func displayAvailable() bool {
	return os.Getenv("DISPLAY") != ""
}

// openWindow adopts opts.Window or creates a new window of the requested
// size on the shared connection to opts.Display.
func openWindow(opts surface.Options) (surface.Target, error) {
	X, err := Connect(opts.Display)
	if err != nil {
		return nil, err
	}
	if opts.Screen >= 0 && opts.Screen != X.Conn().DefaultScreen {
		return nil, fmt.Errorf("%w: screen %d", ErrUnsupportedScreen, opts.Screen)
	}
	if opts.Window != 0 {
		return AdoptWindow(X, xproto.Window(opts.Window)), nil
	}
	return NewWindow(X, opts.Width, opts.Height)
}

func init() {
	surface.Register(surface.Backend{
		Name:      "x11",
		Priority:  100,
		Open:      openWindow,
		Available: displayAvailable,
	})
}

var _ surface.Target = (*Window)(nil)
