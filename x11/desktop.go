// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package x11

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xgraphics"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/gogpu/panelbg"
	"github.com/gogpu/panelbg/pixbuf"
)

// RootPixmapAtom names the root window property holding the wallpaper
// pixmap.
const RootPixmapAtom = "_XROOTPMAP_ID"

// Errors.
var (
	// ErrNoRootPixmap is returned when the root window has no wallpaper
	// pixmap. It matches panelbg.ErrNoBackground.
	ErrNoRootPixmap = fmt.Errorf("x11: no root pixmap: %w", panelbg.ErrNoBackground)

	// ErrUnsupportedScreen is returned for screens other than the default one.
	ErrUnsupportedScreen = errors.New("x11: only the default screen is supported")
)

// Desktop reads the wallpaper of an X display.
//
// Desktop is safe for concurrent use, but watch callbacks run on the
// goroutine running the xevent loop.
type Desktop struct {
	X *xgbutil.XUtil

	mu        sync.Mutex
	watchers  map[int]func()
	order     []int
	nextWatch int
	events    *rootEvents
}

var (
	connMu sync.Mutex
	conns  = make(map[string]*xgbutil.XUtil)
)

// Connect returns the process-wide connection to the named display, or to
// $DISPLAY when display is empty, dialing it on first use. Windows and
// desktops sharing a connection share one event loop.
func Connect(display string) (*xgbutil.XUtil, error) {
	connMu.Lock()
	defer connMu.Unlock()
	if X, ok := conns[display]; ok {
		return X, nil
	}

	var X *xgbutil.XUtil
	var err error
	if display == "" {
		X, err = xgbutil.NewConn()
	} else {
		X, err = xgbutil.NewConnDisplay(display)
	}
	if err != nil {
		return nil, fmt.Errorf("x11: connect %q: %w", display, err)
	}
	conns[display] = X
	return X, nil
}

// NewDesktop wraps an existing connection.
func NewDesktop(X *xgbutil.XUtil) *Desktop {
	return &Desktop{X: X, watchers: make(map[int]func())}
}

func (d *Desktop) checkScreen(screen panelbg.ScreenID) error {
	if int(screen) != d.X.Conn().DefaultScreen {
		return fmt.Errorf("%w: screen %d", ErrUnsupportedScreen, screen)
	}
	return nil
}

// ScreenSize implements panelbg.DesktopSource. The size is queried from the
// root window so that it follows RandR changes.
func (d *Desktop) ScreenSize(screen panelbg.ScreenID) (int, int, error) {
	if err := d.checkScreen(screen); err != nil {
		return 0, 0, err
	}
	geom, err := xproto.GetGeometry(d.X.Conn(), xproto.Drawable(d.X.RootWin())).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("x11: root geometry: %w", err)
	}
	return int(geom.Width), int(geom.Height), nil
}

// Grab implements panelbg.DesktopSource.
func (d *Desktop) Grab() error {
	return xproto.GrabServerChecked(d.X.Conn()).Check()
}

// Ungrab implements panelbg.DesktopSource.
func (d *Desktop) Ungrab() {
	if err := xproto.UngrabServerChecked(d.X.Conn()).Check(); err != nil {
		panelbg.Logger().Warn("x11: ungrab server", "err", err)
	}
}

// RootPixmap returns the wallpaper pixmap id from the root window.
func (d *Desktop) RootPixmap() (xproto.Pixmap, error) {
	id, err := xprop.PropValId(xprop.GetProperty(d.X, d.X.RootWin(), RootPixmapAtom))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrNoRootPixmap, err)
	}
	if id == 0 {
		return 0, ErrNoRootPixmap
	}
	return xproto.Pixmap(id), nil
}

// ReadBackground implements panelbg.DesktopSource. The wallpaper pixmap is
// copied once and converted to RGB.
func (d *Desktop) ReadBackground(screen panelbg.ScreenID) (*pixbuf.Buf, error) {
	if err := d.checkScreen(screen); err != nil {
		return nil, err
	}
	pid, err := d.RootPixmap()
	if err != nil {
		return nil, err
	}

	ximg, err := xgraphics.NewDrawable(d.X, xproto.Drawable(pid))
	if err != nil {
		return nil, fmt.Errorf("x11: read root pixmap 0x%x: %w", pid, err)
	}
	defer ximg.Destroy()

	b := ximg.Bounds()
	buf, err := fromBGRA(ximg.Pix, ximg.Stride, b.Dx(), b.Dy())
	if err != nil {
		return nil, fmt.Errorf("x11: convert root pixmap: %w", err)
	}
	panelbg.Logger().Debug("x11: read root pixmap", "pixmap", pid, "width", b.Dx(), "height", b.Dy())
	return buf, nil
}

// Watch implements panelbg.DesktopSource. fn runs on the event loop when
// the wallpaper property changes or the root window is reconfigured.
func (d *Desktop) Watch(screen panelbg.ScreenID, fn func()) func() {
	if err := d.checkScreen(screen); err != nil {
		panelbg.Logger().Warn("x11: watch", "err", err)
		return func() {}
	}
	if err := d.attach(); err != nil {
		panelbg.Logger().Warn("x11: listen on root window", "err", err)
	}

	d.mu.Lock()
	id := d.nextWatch
	d.nextWatch++
	d.watchers[id] = fn
	d.order = append(d.order, id)
	d.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { d.unwatch(id) })
	}
}

func (d *Desktop) unwatch(id int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.watchers, id)
	for i, x := range d.order {
		if x == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	if len(d.order) == 0 && d.events != nil {
		d.events.remove(d)
		d.events = nil
	}
}

// attach routes the connection's root window events to d.
func (d *Desktop) attach() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.events != nil {
		return nil
	}
	h, err := rootEventsFor(d.X)
	if err != nil {
		return err
	}
	h.add(d)
	d.events = h
	return nil
}

// rootEvents fans the root window events of one connection out to every
// Desktop using it. Handlers are connected once per connection and never
// detached, so other callbacks on the root window are left alone.
type rootEvents struct {
	mu       sync.Mutex
	desktops []*Desktop
}

var (
	rootMu sync.Mutex
	roots  = make(map[*xgbutil.XUtil]*rootEvents)
)

func rootEventsFor(X *xgbutil.XUtil) (*rootEvents, error) {
	rootMu.Lock()
	defer rootMu.Unlock()
	if h, ok := roots[X]; ok {
		return h, nil
	}

	atom, err := xprop.Atm(X, RootPixmapAtom)
	if err != nil {
		return nil, err
	}
	root := xwindow.New(X, X.RootWin())
	if err := root.Listen(xproto.EventMaskPropertyChange, xproto.EventMaskStructureNotify); err != nil {
		return nil, err
	}

	h := &rootEvents{}
	xevent.PropertyNotifyFun(func(_ *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
		if ev.Atom == atom {
			h.dispatch("property")
		}
	}).Connect(X, root.Id)
	xevent.ConfigureNotifyFun(func(_ *xgbutil.XUtil, _ xevent.ConfigureNotifyEvent) {
		h.dispatch("geometry")
	}).Connect(X, root.Id)

	roots[X] = h
	return h, nil
}

func (h *rootEvents) add(d *Desktop) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !slices.Contains(h.desktops, d) {
		h.desktops = append(h.desktops, d)
	}
}

func (h *rootEvents) remove(d *Desktop) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if i := slices.Index(h.desktops, d); i >= 0 {
		h.desktops = slices.Delete(h.desktops, i, i+1)
	}
}

func (h *rootEvents) dispatch(reason string) {
	h.mu.Lock()
	desktops := slices.Clone(h.desktops)
	h.mu.Unlock()

	for _, d := range desktops {
		d.notify(reason)
	}
}

// notify runs watchers in subscription order without holding the lock.
func (d *Desktop) notify(reason string) {
	d.mu.Lock()
	fns := make([]func(), 0, len(d.order))
	for _, id := range d.order {
		fns = append(fns, d.watchers[id])
	}
	d.mu.Unlock()

	panelbg.Logger().Debug("x11: desktop changed", "reason", reason, "watchers", len(fns))
	for _, fn := range fns {
		fn()
	}
}

// Watchers returns the number of active subscriptions.
func (d *Desktop) Watchers() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.order)
}

var _ panelbg.DesktopSource = (*Desktop)(nil)
