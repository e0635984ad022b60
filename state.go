package panelbg

import (
	"github.com/gogpu/panelbg/cache"
	"github.com/gogpu/panelbg/pixbuf"
	"github.com/gogpu/panelbg/surface"
)

// DefaultImageCacheSize is the capacity of the process-wide decode cache.
const DefaultImageCacheSize = 8

// ImageCache holds decoded background images keyed by file path and
// version.
type ImageCache = cache.Cache[string, *pixbuf.Buf]

// sharedImages is used by every State created without WithImageCache, so
// panels showing the same file decode it once.
var sharedImages = cache.New[string, *pixbuf.Buf](DefaultImageCacheSize)

// SharedImageCache returns the process-wide decode cache.
func SharedImageCache() *ImageCache {
	return sharedImages
}

// Option configures a State during creation.
type Option func(*State)

// WithOnChange sets the callback run after every Prepare, once the new
// background is bound and synced.
func WithOnChange(fn func(*State)) Option {
	return func(s *State) {
		s.onChange = fn
	}
}

// WithImageCache replaces the shared decode cache.
func WithImageCache(c *ImageCache) Option {
	return func(s *State) {
		if c != nil {
			s.images = c
		}
	}
}

// WithLoader replaces the image decoder. The default is pixbuf.Load.
func WithLoader(load func(path string) (*pixbuf.Buf, error)) Option {
	return func(s *State) {
		if load != nil {
			s.load = load
		}
	}
}

// PipelineStats counts pipeline work done by a State.
type PipelineStats struct {
	Transforms int
	Composites int
	Prepares   int
	Decodes    int
}

// State is the background of one panel window.
//
// Configuration changes and geometry updates drive a Transform, Composite,
// Prepare pipeline synchronously. Nothing is rendered until the State is
// realized on a Target and given a region.
//
// State is not safe for concurrent use.
type State struct {
	registry *Registry
	images   *ImageCache
	load     func(string) (*pixbuf.Buf, error)
	onChange func(*State)

	target surface.Target

	// Configuration. Inactive arms keep their payload.
	typ          Type
	color        ColorBackground
	image        ImageBackground
	defaultStyle DefaultStyle

	// Decoded image for image.Path; loaded is set once a decode was tried.
	source    *pixbuf.Buf
	sourceKey string
	loaded    bool

	orientation Orientation
	region      Rect
	hasRegion   bool

	hasAlpha bool
	monitor  *MonitorRef
	desktop  *pixbuf.Buf

	transformed *pixbuf.Buf
	composited  *pixbuf.Buf
	bound       surface.PixmapID

	isTransformed bool
	isComposited  bool
	isPrepared    bool

	stats PipelineStats
}

// NewState creates the background of a panel. registry provides desktop
// snapshots for translucent backgrounds; with a nil registry translucent
// backgrounds fall back to their opaque rendering.
func NewState(registry *Registry, opts ...Option) *State {
	s := &State{
		registry: registry,
		images:   sharedImages,
		load:     pixbuf.Load,
		color:    ColorBackground{Alpha: 255},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Realize attaches the State to a window and renders into it once a region
// is known.
func (s *State) Realize(target surface.Target) {
	if target == nil || s.target == target {
		return
	}
	if s.target != nil {
		s.Unrealize()
	}
	s.target = target
	s.transform()
}

// Unrealize detaches the State from its window, releases its monitor
// reference and frees every cached buffer. The State may be realized again.
func (s *State) Unrealize() {
	if s.target == nil {
		return
	}
	s.releaseMonitor()
	s.freeTransform()
	if err := s.target.Reset(); err != nil {
		Logger().Warn("panelbg: reset window background", "err", err)
	}
	s.bound = 0
	s.target = nil
}

// Realized reports whether the State is attached to a window.
func (s *State) Realized() bool {
	return s.target != nil
}

// Target returns the window the State renders into, or nil.
func (s *State) Target() surface.Target {
	return s.target
}

// SetType selects the active background arm.
func (s *State) SetType(t Type) {
	if t == s.typ {
		return
	}
	s.typ = t
	s.updateHasAlpha()
	s.transform()
}

// SetColor sets the color of the color arm.
func (s *State) SetColor(c RGB) {
	if c == s.color.Color {
		return
	}
	s.color.Color = c
	if s.typ == TypeColor {
		s.composite()
	}
}

// SetOpacity sets the alpha of the color arm. 255 is opaque.
func (s *State) SetOpacity(alpha uint8) {
	if alpha == s.color.Alpha {
		return
	}
	s.color.Alpha = alpha
	if s.typ == TypeColor {
		s.updateHasAlpha()
		s.composite()
	}
}

// SetImage sets the image file of the image arm. An empty path clears it.
func (s *State) SetImage(path string) {
	if path == s.image.Path {
		return
	}
	s.image.Path = path
	s.forgetSource()
	if s.typ == TypeImage {
		s.updateHasAlpha()
		s.transform()
	}
}

// SetFit sets whether the image is scaled to the panel thickness.
func (s *State) SetFit(fit bool) {
	if fit == s.image.Fit {
		return
	}
	s.image.Fit = fit
	s.imageChanged()
}

// SetStretch sets whether the image is scaled to the panel region.
func (s *State) SetStretch(stretch bool) {
	if stretch == s.image.Stretch {
		return
	}
	s.image.Stretch = stretch
	s.imageChanged()
}

// SetRotate sets whether the image is turned on vertical panels.
func (s *State) SetRotate(rotate bool) {
	if rotate == s.image.Rotate {
		return
	}
	s.image.Rotate = rotate
	s.imageChanged()
}

func (s *State) imageChanged() {
	if s.typ == TypeImage {
		s.transform()
	}
}

// SetDefaultStyle sets what a None background shows.
func (s *State) SetDefaultStyle(style DefaultStyle) {
	if style.equal(s.defaultStyle) {
		return
	}
	s.defaultStyle = style
	if s.EffectiveType() == TypeNone {
		s.prepare()
	}
}

// Set applies every field of a Background at once and selects its arm.
// Fields of the other arms are left alone.
func (s *State) Set(bg Background) {
	switch b := bg.(type) {
	case ColorBackground:
		s.SetColor(b.Color)
		s.SetOpacity(b.Alpha)
	case ImageBackground:
		s.SetImage(b.Path)
		s.SetFit(b.Fit)
		s.SetStretch(b.Stretch)
		s.SetRotate(b.Rotate)
	}
	if bg != nil {
		s.SetType(bg.Type())
	}
}

// ReloadImage forgets the decoded image, including its shared cache entry,
// and decodes the file again. It is used when the file changes on disk.
//
// The decode cache is keyed by file size and modification time, so other
// States sharing the cache pick up a changed file on their next decode;
// until they reload they keep showing the image they already decoded.
func (s *State) ReloadImage() {
	if s.image.Path == "" {
		return
	}
	if s.sourceKey != "" {
		s.images.Delete(s.sourceKey)
	}
	s.images.Delete(imageKey(s.image.Path))
	s.forgetSource()
	if s.typ == TypeImage {
		s.updateHasAlpha()
		s.transform()
	}
}

// Background returns the active configuration.
func (s *State) Background() Background {
	switch s.typ {
	case TypeColor:
		return s.color
	case TypeImage:
		return s.image
	default:
		return NoneBackground{}
	}
}

// Type returns the configured background type.
func (s *State) Type() Type { return s.typ }

// Color returns the color arm, active or not.
func (s *State) Color() ColorBackground { return s.color }

// Image returns the image arm, active or not.
func (s *State) Image() ImageBackground { return s.image }

// DefaultStyle returns the style shown for None backgrounds.
func (s *State) DefaultStyle() DefaultStyle { return s.defaultStyle }

// Orientation returns the last orientation passed to ChangeRegion.
func (s *State) Orientation() Orientation { return s.orientation }

// Region returns the last region passed to ChangeRegion.
func (s *State) Region() Rect { return s.region }

// HasAlpha reports whether the background is blended with the desktop.
func (s *State) HasAlpha() bool { return s.hasAlpha }

// Stats returns counters of pipeline work done so far.
func (s *State) Stats() PipelineStats { return s.stats }

// Stages reports which pipeline stages hold valid results.
func (s *State) Stages() (transformed, composited, prepared bool) {
	return s.isTransformed, s.isComposited, s.isPrepared
}

// Transformed returns the scaled and rotated image, or nil.
func (s *State) Transformed() *pixbuf.Buf { return s.transformed }

// Composited returns the buffer bound as the window background, or nil when
// a solid color or the default style is bound instead.
func (s *State) Composited() *pixbuf.Buf { return s.composited }

// EffectiveType returns the type actually rendered. An image background
// whose file cannot be decoded renders as None.
func (s *State) EffectiveType() Type {
	if s.typ == TypeImage && s.loadSource() == nil {
		return TypeNone
	}
	return s.typ
}

// ChangeRegion updates the panel geometry. Only the pipeline stages the
// change affects are rerun:
//
//   - Transform, if nothing is transformed yet, or the image must be turned
//     for the new orientation, or resized for the new size
//   - otherwise Composite, if the background is blended with the desktop or
//     nothing is composited yet
//   - otherwise Prepare, if the size changed or nothing is bound yet
func (s *State) ChangeRegion(o Orientation, x, y, width, height int) {
	r := Rect{X: x, Y: y, Width: width, Height: height}
	if s.hasRegion && o == s.orientation && r == s.region {
		return
	}

	orientationChanged := o != s.orientation
	sizeChanged := !s.hasRegion || !r.SameSize(s.region)

	s.orientation = o
	s.region = r
	s.hasRegion = true
	s.desktop = nil

	img := s.image
	switch {
	case !s.isTransformed ||
		(s.typ == TypeImage && ((orientationChanged && img.Rotate) || (sizeChanged && (img.Fit || img.Stretch)))):
		s.transform()
	case s.hasAlpha || !s.isComposited:
		s.composite()
	case sizeChanged || !s.isPrepared:
		s.freePrepare()
		s.prepare()
	}
}
