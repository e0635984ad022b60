package panelbg

import (
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/panelbg/pixbuf"
)

// DesktopSource gives access to the desktop wallpaper of a display.
//
// x11.Desktop reads the root window background of a live X server;
// StaticDesktop serves an in-memory wallpaper.
type DesktopSource interface {
	// ScreenSize returns the size of the screen in pixels.
	ScreenSize(screen ScreenID) (width, height int, err error)

	// Grab takes exclusive access to the display so that the wallpaper
	// cannot change while it is copied.
	Grab() error

	// Ungrab releases a successful Grab.
	Ungrab()

	// ReadBackground copies the current wallpaper bitmap. The result may be
	// smaller than the screen, in which case it is meant to be tiled.
	// It returns ErrNoBackground when no wallpaper is set.
	ReadBackground(screen ScreenID) (*pixbuf.Buf, error)

	// Watch calls fn whenever the wallpaper or the screen geometry changes.
	// The returned function stops the subscription.
	Watch(screen ScreenID, fn func()) (stop func())
}

// StaticDesktop is a DesktopSource holding its wallpaper in memory.
//
// It backs the offline renderer and tests. SetWallpaper and Resize fire
// watchers the way a property change or a RandR event would.
type StaticDesktop struct {
	mu        sync.Mutex
	width     int
	height    int
	wallpaper *pixbuf.Buf
	watchers  map[int]watcher
	nextWatch int
	grabbed   bool

	// ReadErr, when non-nil, is returned by ReadBackground.
	ReadErr error

	Reads   int
	Grabs   int
	Ungrabs int
}

type watcher struct {
	screen ScreenID
	fn     func()
}

// NewStaticDesktop returns a desktop whose screens all have the given size.
// wallpaper may be nil for a desktop without a background.
func NewStaticDesktop(width, height int, wallpaper *pixbuf.Buf) *StaticDesktop {
	return &StaticDesktop{
		width:     width,
		height:    height,
		wallpaper: wallpaper,
		watchers:  make(map[int]watcher),
	}
}

// ScreenSize implements DesktopSource.
func (d *StaticDesktop) ScreenSize(ScreenID) (int, int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.width <= 0 || d.height <= 0 {
		return 0, 0, fmt.Errorf("panelbg: screen size %dx%d: %w", d.width, d.height, pixbuf.ErrInvalidDimensions)
	}
	return d.width, d.height, nil
}

// Grab implements DesktopSource.
func (d *StaticDesktop) Grab() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Grabs++
	d.grabbed = true
	return nil
}

// Ungrab implements DesktopSource.
func (d *StaticDesktop) Ungrab() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Ungrabs++
	d.grabbed = false
}

// Grabbed reports whether a Grab is outstanding.
func (d *StaticDesktop) Grabbed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.grabbed
}

// ReadBackground implements DesktopSource. The wallpaper is copied.
func (d *StaticDesktop) ReadBackground(ScreenID) (*pixbuf.Buf, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Reads++
	if d.ReadErr != nil {
		return nil, d.ReadErr
	}
	if d.wallpaper == nil {
		return nil, ErrNoBackground
	}
	return d.wallpaper.Clone(), nil
}

// Watch implements DesktopSource.
func (d *StaticDesktop) Watch(screen ScreenID, fn func()) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.nextWatch
	d.nextWatch++
	d.watchers[id] = watcher{screen: screen, fn: fn}

	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			delete(d.watchers, id)
			d.mu.Unlock()
		})
	}
}

// Watchers returns the number of active subscriptions.
func (d *StaticDesktop) Watchers() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.watchers)
}

// SetWallpaper replaces the wallpaper and notifies watchers.
func (d *StaticDesktop) SetWallpaper(wallpaper *pixbuf.Buf) {
	d.mu.Lock()
	d.wallpaper = wallpaper
	d.mu.Unlock()
	d.notify()
}

// Resize changes the screen size and notifies watchers.
func (d *StaticDesktop) Resize(width, height int) {
	d.mu.Lock()
	d.width, d.height = width, height
	d.mu.Unlock()
	d.notify()
}

// notify calls watchers in subscription order without holding the lock,
// since a callback may stop its own subscription.
func (d *StaticDesktop) notify() {
	d.mu.Lock()
	ids := make([]int, 0, len(d.watchers))
	for id := range d.watchers {
		ids = append(ids, id)
	}
	d.mu.Unlock()

	slices.Sort(ids)
	for _, id := range ids {
		d.mu.Lock()
		w, ok := d.watchers[id]
		d.mu.Unlock()
		if ok {
			w.fn()
		}
	}
}
