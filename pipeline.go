package panelbg

import (
	"fmt"
	"os"

	"github.com/gogpu/panelbg/pixbuf"
)

// Stage invalidation. Freeing a stage frees every later stage.

func (s *State) freeTransform() {
	s.transformed = nil
	s.isTransformed = false
	s.freeComposite()
}

func (s *State) freeComposite() {
	s.composited = nil
	s.isComposited = false
	s.freePrepare()
}

func (s *State) freePrepare() {
	s.isPrepared = false
}

func (s *State) forgetSource() {
	s.source = nil
	s.sourceKey = ""
	s.loaded = false
}

// imageKey identifies a file version in the decode cache. Files that cannot
// be stat'ed are keyed by path alone.
func imageKey(path string) string {
	fi, err := os.Stat(path)
	if err != nil {
		return path
	}
	return fmt.Sprintf("%s\x00%d\x00%d", path, fi.Size(), fi.ModTime().UnixNano())
}

// loadSource decodes the configured image once per path.
func (s *State) loadSource() *pixbuf.Buf {
	if s.loaded {
		return s.source
	}
	s.loaded = true
	path := s.image.Path
	if path == "" {
		return nil
	}

	key := imageKey(path)
	s.sourceKey = key
	buf, err := s.images.GetOrLoad(key, func() (*pixbuf.Buf, error) {
		s.stats.Decodes++
		return s.load(path)
	})
	if err != nil {
		Logger().Warn("panelbg: cannot load background image", "path", path, "err", err)
		return nil
	}
	s.source = buf
	return buf
}

func (s *State) updateHasAlpha() {
	switch s.typ {
	case TypeColor:
		s.hasAlpha = s.color.Alpha != 255
	case TypeImage:
		src := s.loadSource()
		s.hasAlpha = src != nil && src.HasAlpha()
	default:
		s.hasAlpha = false
	}
	if !s.hasAlpha {
		s.releaseMonitor()
	}
}

func (s *State) releaseMonitor() {
	if s.monitor != nil {
		s.monitor.Release()
		s.monitor = nil
	}
	s.desktop = nil
}

// desktopChanged runs when the monitor drops its wallpaper copy.
func (s *State) desktopChanged() {
	s.desktop = nil
	s.composite()
}

// desktopRegion returns the wallpaper under the panel, fetched through the
// monitor on first use and kept until invalidated.
func (s *State) desktopRegion() *pixbuf.Buf {
	if s.desktop != nil {
		return s.desktop
	}
	if s.registry == nil || s.target == nil {
		return nil
	}
	if s.monitor == nil {
		s.monitor = s.registry.Acquire(ScreenID(s.target.Screen()), s.desktopChanged)
	}
	r := s.region
	s.desktop = s.monitor.Region(r.X, r.Y, r.Width, r.Height)
	return s.desktop
}

// transform reruns the whole pipeline. It is deferred until the State is
// realized and has a region.
func (s *State) transform() {
	s.freeTransform()
	if s.target == nil || !s.hasRegion {
		return
	}
	s.stats.Transforms++

	if s.typ == TypeImage {
		if src := s.loadSource(); src != nil {
			s.transformed = s.transformImage(src)
		}
	}
	s.updateHasAlpha()
	s.isTransformed = true
	Logger().Debug("panelbg: transform",
		"type", s.typ, "orientation", s.orientation,
		"width", s.region.Width, "height", s.region.Height)

	s.composite()
}

// transformImage scales src for the current region and turns it on
// vertical panels when rotation is enabled.
func (s *State) transformImage(src *pixbuf.Buf) *pixbuf.Buf {
	img := s.image
	vertical := s.orientation.IsVertical()
	rotate := img.Rotate && vertical

	w, h := src.Width(), src.Height()
	if rotate {
		w, h = h, w
	}
	switch {
	case img.Fit && vertical:
		w, h = pixbuf.FitToWidth(w, h, s.region.Width)
	case img.Fit:
		w, h = pixbuf.FitToHeight(w, h, s.region.Height)
	case img.Stretch:
		w, h = s.region.Width, s.region.Height
	}
	if rotate {
		w, h = h, w
	}

	out := src
	if w != src.Width() || h != src.Height() {
		scaled, err := pixbuf.Scale(src, w, h)
		if err != nil {
			Logger().Warn("panelbg: cannot scale background image", "path", img.Path, "err", err)
			return nil
		}
		out = scaled
	}
	if rotate {
		if s.orientation == OrientationLeft {
			out = pixbuf.Rotate90(out)
		} else {
			out = pixbuf.Rotate270(out)
		}
	}
	return out
}

// composite reruns Composite and Prepare. It is deferred until Transform
// is valid.
func (s *State) composite() {
	s.freeComposite()
	if !s.isTransformed {
		return
	}
	s.stats.Composites++

	var desktop *pixbuf.Buf
	if s.hasAlpha {
		desktop = s.desktopRegion()
	}

	switch s.typ {
	case TypeColor:
		if desktop != nil {
			out := desktop.Clone()
			c := s.color
			pixbuf.FillOver(out, c.Color.R, c.Color.G, c.Color.B, c.Alpha)
			s.composited = out
		}
	case TypeImage:
		switch {
		case s.transformed == nil:
		case desktop != nil:
			out := desktop.Clone()
			pixbuf.DrawTiledOver(out, s.transformed)
			s.composited = out
		default:
			s.composited = s.transformed
		}
	}
	s.isComposited = true
	Logger().Debug("panelbg: composite", "type", s.typ, "blended", desktop != nil)

	s.prepare()
}

// prepare binds the result to the window, syncs and notifies the host.
func (s *State) prepare() {
	s.freePrepare()
	if !s.isComposited || s.target == nil {
		return
	}
	s.stats.Prepares++

	var err error
	s.bound = 0
	switch s.EffectiveType() {
	case TypeColor:
		if s.composited != nil {
			s.bound, err = s.target.BindPixmap(s.composited)
		} else {
			err = s.target.BindColor(s.color.Color.RGBA(255))
		}
	case TypeImage:
		if s.composited != nil {
			s.bound, err = s.target.BindPixmap(s.composited)
		} else {
			err = s.bindDefault()
		}
	default:
		err = s.bindDefault()
	}
	if err != nil {
		Logger().Warn("panelbg: cannot bind window background", "type", s.typ, "err", err)
	}
	s.isPrepared = true

	if err := s.target.Sync(); err != nil {
		Logger().Warn("panelbg: sync window background", "err", err)
	}
	Logger().Debug("panelbg: prepare", "type", s.EffectiveType(), "pixmap", s.bound)

	if s.onChange != nil {
		s.onChange(s)
	}
}

func (s *State) bindDefault() error {
	d := s.defaultStyle
	switch {
	case d.Pattern != nil:
		id, err := s.target.BindPixmap(d.Pattern)
		s.bound = id
		return err
	case d.HasColor:
		return s.target.BindColor(d.Color.RGBA(255))
	default:
		return s.target.Reset()
	}
}
