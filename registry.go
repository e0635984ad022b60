package panelbg

import "sync"

// Registry maps screens to their Monitor.
//
// Entries are non-owning: each MonitorRef counts as one reference and the
// entry is removed, and the Monitor's event subscription stopped, when the
// last reference is released. A later Acquire builds a fresh Monitor.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu       sync.Mutex
	source   DesktopSource
	monitors map[ScreenID]*Monitor
}

// NewRegistry creates a registry reading wallpapers from source.
func NewRegistry(source DesktopSource) *Registry {
	return &Registry{
		source:   source,
		monitors: make(map[ScreenID]*Monitor),
	}
}

// Source returns the desktop source monitors read from.
func (r *Registry) Source() DesktopSource {
	return r.source
}

// Acquire returns a reference to the monitor for screen, creating the monitor
// and subscribing it to wallpaper and geometry changes on first use.
// onChange, if non-nil, is called after the monitor drops its cache.
func (r *Registry) Acquire(screen ScreenID, onChange func()) *MonitorRef {
	r.mu.Lock()
	m, ok := r.monitors[screen]
	if !ok {
		m = newMonitor(r, screen)
		r.monitors[screen] = m
	}
	ref := &MonitorRef{monitor: m, onChange: onChange}
	m.refs = append(m.refs, ref)
	r.mu.Unlock()

	if !ok {
		// Subscribe outside the lock; a source may deliver events from
		// its own goroutine.
		m.startWatch()
		Logger().Debug("panelbg: monitor created", "screen", screen)
	}
	return ref
}

// Lookup returns the live monitor for screen, or nil if no reference to it
// is held.
func (r *Registry) Lookup(screen ScreenID) *Monitor {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.monitors[screen]
}

// Len returns the number of live monitors.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.monitors)
}

// release drops ref and reports whether it was the monitor's last reference,
// in which case the entry is already removed.
func (r *Registry) release(ref *MonitorRef) (last bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := ref.monitor
	for i, x := range m.refs {
		if x == ref {
			m.refs = append(m.refs[:i], m.refs[i+1:]...)
			break
		}
	}
	if len(m.refs) > 0 {
		return false
	}
	if r.monitors[m.screen] == m {
		delete(r.monitors, m.screen)
	}
	return true
}

// subscribers returns a snapshot of the monitor's references in
// subscription order.
func (r *Registry) subscribers(m *Monitor) []*MonitorRef {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*MonitorRef(nil), m.refs...)
}
