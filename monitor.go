package panelbg

import (
	"errors"
	"fmt"

	"github.com/gogpu/panelbg/pixbuf"
)

// Monitor caches the wallpaper of one screen.
//
// The first Region call after creation or invalidation copies the whole
// wallpaper under a display grab, tiles it to the screen size and keeps it.
// Later calls crop from the cached copy.
//
// Monitor is not safe for concurrent use; it belongs to the event loop.
type Monitor struct {
	registry *Registry
	screen   ScreenID

	// refs is guarded by registry.mu.
	refs []*MonitorRef

	stop   func()
	cache  *pixbuf.Buf
	warned bool

	requests int
	reads    int
}

func newMonitor(r *Registry, screen ScreenID) *Monitor {
	return &Monitor{registry: r, screen: screen}
}

func (m *Monitor) startWatch() {
	m.stop = m.registry.source.Watch(m.screen, m.Invalidate)
}

// Screen returns the screen this monitor watches.
func (m *Monitor) Screen() ScreenID {
	return m.screen
}

// Refs returns the number of live references.
func (m *Monitor) Refs() int {
	return len(m.registry.subscribers(m))
}

// Requests returns how many regions have been requested.
func (m *Monitor) Requests() int {
	return m.requests
}

// Reads returns how many times the wallpaper was copied from the source.
func (m *Monitor) Reads() int {
	return m.reads
}

// Cached reports whether a wallpaper copy is held.
func (m *Monitor) Cached() bool {
	return m.cache != nil
}

// Invalidate drops the cached wallpaper, then notifies every subscriber in
// subscription order.
func (m *Monitor) Invalidate() {
	m.cache = nil
	Logger().Debug("panelbg: desktop changed", "screen", m.screen)

	for _, ref := range m.registry.subscribers(m) {
		if ref.onChange != nil && !ref.released {
			ref.onChange()
		}
	}
}

// Region returns a copy of the width×height rectangle of the wallpaper at
// (x, y), or nil if no wallpaper can be read. Pixels outside the screen are
// blank.
func (m *Monitor) Region(x, y, width, height int) *pixbuf.Buf {
	m.requests++
	if width <= 0 || height <= 0 {
		return nil
	}

	full := m.snapshot()
	if full == nil {
		return nil
	}
	region, err := pixbuf.Crop(full, x, y, width, height)
	if err != nil {
		return nil
	}
	return region
}

func (m *Monitor) snapshot() *pixbuf.Buf {
	if m.cache != nil {
		return m.cache
	}

	buf, err := m.read()
	if err != nil {
		if !m.warned {
			Logger().Warn("panelbg: desktop background unavailable", "screen", m.screen, "err", err)
			m.warned = true
		}
		return nil
	}
	m.warned = false
	m.cache = buf
	return buf
}

// read copies the wallpaper under a display grab and tiles it to the
// screen size.
func (m *Monitor) read() (*pixbuf.Buf, error) {
	src := m.registry.source
	width, height, err := src.ScreenSize(m.screen)
	if err != nil {
		return nil, err
	}

	if err := src.Grab(); err != nil {
		return nil, fmt.Errorf("panelbg: grab display: %w", err)
	}
	wall, err := func() (*pixbuf.Buf, error) {
		defer src.Ungrab()
		return src.ReadBackground(m.screen)
	}()
	if err != nil {
		return nil, err
	}
	if wall == nil {
		return nil, ErrNoBackground
	}
	m.reads++

	if wall.Width() >= width && wall.Height() >= height {
		return wall, nil
	}
	tiled, err := pixbuf.Tile(wall, width, height)
	if err != nil {
		return nil, errors.Join(ErrNoBackground, err)
	}
	Logger().Debug("panelbg: tiled wallpaper",
		"screen", m.screen, "tile", fmt.Sprintf("%dx%d", wall.Width(), wall.Height()))
	return tiled, nil
}

// MonitorRef is one counted reference to a Monitor and its change
// subscription.
type MonitorRef struct {
	monitor  *Monitor
	onChange func()
	released bool
}

// Monitor returns the referenced monitor.
func (r *MonitorRef) Monitor() *Monitor {
	return r.monitor
}

// Region is Monitor.Region on the referenced monitor.
func (r *MonitorRef) Region(x, y, width, height int) *pixbuf.Buf {
	return r.monitor.Region(x, y, width, height)
}

// Release drops the reference. Releasing the last reference stops the
// monitor's event subscription and removes it from the registry before
// returning. Release is idempotent.
func (r *MonitorRef) Release() {
	if r.released {
		return
	}
	r.released = true

	m := r.monitor
	if !m.registry.release(r) {
		return
	}
	if m.stop != nil {
		m.stop()
		m.stop = nil
	}
	m.cache = nil
	Logger().Debug("panelbg: monitor destroyed", "screen", m.screen)
}
