// Package config loads panel background settings from TOML or YAML files.
//
// A settings file looks like:
//
//	type = "image"
//	image = "stripes.png"
//	fit = true
//	orientation = "left"
//	rotate = true
//	watch_image = true
//
// Relative image paths are resolved against the directory of the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/panelbg"
	"github.com/gogpu/panelbg/pixbuf"
)

// Errors.
var (
	ErrUnknownFormat      = errors.New("config: unknown file format")
	ErrUnknownType        = errors.New("config: unknown background type")
	ErrInvalidColor       = errors.New("config: invalid color")
	ErrInvalidOpacity     = errors.New("config: opacity out of range")
	ErrInvalidOrientation = errors.New("config: invalid orientation")
)

// Format is a settings file syntax.
type Format string

// Supported formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Config is the background configuration of one panel.
type Config struct {
	Type        string `toml:"type" yaml:"type"`
	Color       string `toml:"color" yaml:"color"`
	Opacity     int    `toml:"opacity" yaml:"opacity"`
	Image       string `toml:"image" yaml:"image"`
	Fit         bool   `toml:"fit" yaml:"fit"`
	Stretch     bool   `toml:"stretch" yaml:"stretch"`
	Rotate      bool   `toml:"rotate" yaml:"rotate"`
	Orientation string `toml:"orientation" yaml:"orientation"`
	WatchImage  bool   `toml:"watch_image" yaml:"watch_image"`

	// DefaultColor and DefaultPattern make up the style shown for type none.
	DefaultColor   string `toml:"default_color" yaml:"default_color"`
	DefaultPattern string `toml:"default_pattern" yaml:"default_pattern"`
}

// Default returns the configuration used for missing keys.
func Default() Config {
	return Config{
		Type:        panelbg.TypeNone.String(),
		Color:       "#000000",
		Opacity:     255,
		Orientation: panelbg.OrientationTop.String(),
	}
}

// Load reads a settings file. The syntax is chosen by extension.
func Load(path string) (Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	cfg.resolve(filepath.Dir(path))
	return cfg, nil
}

// Parse decodes settings over the defaults and validates them.
func Parse(data []byte, format Format) (Config, error) {
	cfg := Default()
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &cfg)
	case FormatYAML:
		err = yaml.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal encodes the configuration.
func (c Config) Marshal(format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		return toml.Marshal(c)
	case FormatYAML:
		return yaml.Marshal(c)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

func (c *Config) resolve(dir string) {
	if c.Image != "" && !filepath.IsAbs(c.Image) {
		c.Image = filepath.Join(dir, c.Image)
	}
	if c.DefaultPattern != "" && !filepath.IsAbs(c.DefaultPattern) {
		c.DefaultPattern = filepath.Join(dir, c.DefaultPattern)
	}
}

// Validate checks every field without touching the file system.
func (c Config) Validate() error {
	if _, err := panelbg.ParseType(c.Type); err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownType, c.Type)
	}
	if _, err := ParseColor(c.Color); err != nil {
		return err
	}
	if c.DefaultColor != "" {
		if _, err := ParseColor(c.DefaultColor); err != nil {
			return err
		}
	}
	if c.Opacity < 0 || c.Opacity > 255 {
		return fmt.Errorf("%w: %d", ErrInvalidOpacity, c.Opacity)
	}
	if _, err := panelbg.ParseOrientation(c.Orientation); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, c.Orientation)
	}
	return nil
}

// ParseColor parses "#rgb", "#rrggbb" or an SVG color name such as "navy".
// The '#' is optional.
func ParseColor(s string) (panelbg.RGB, error) {
	s = strings.TrimSpace(s)
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return panelbg.RGB{R: c.R, G: c.G, B: c.B}, nil
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return panelbg.RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	r, g, b := c.RGB255()
	return panelbg.RGB{R: r, G: g, B: b}, nil
}

// TypeValue returns the parsed background type.
func (c Config) TypeValue() panelbg.Type {
	t, _ := panelbg.ParseType(c.Type)
	return t
}

// OrientationValue returns the parsed orientation.
func (c Config) OrientationValue() panelbg.Orientation {
	o, _ := panelbg.ParseOrientation(c.Orientation)
	return o
}

// Background returns the configured active arm.
func (c Config) Background() panelbg.Background {
	switch c.TypeValue() {
	case panelbg.TypeColor:
		rgb, _ := ParseColor(c.Color)
		return panelbg.ColorBackground{Color: rgb, Alpha: uint8(c.Opacity)}
	case panelbg.TypeImage:
		return panelbg.ImageBackground{Path: c.Image, Fit: c.Fit, Stretch: c.Stretch, Rotate: c.Rotate}
	default:
		return panelbg.NoneBackground{}
	}
}

// DefaultStyle builds the style for type none. A pattern that cannot be
// loaded is reported and left out.
func (c Config) DefaultStyle() (panelbg.DefaultStyle, error) {
	var style panelbg.DefaultStyle
	if c.DefaultColor != "" {
		rgb, err := ParseColor(c.DefaultColor)
		if err != nil {
			return style, err
		}
		style.Color, style.HasColor = rgb, true
	}
	if c.DefaultPattern != "" {
		buf, err := pixbuf.Load(c.DefaultPattern)
		if err != nil {
			return style, fmt.Errorf("config: default pattern: %w", err)
		}
		style.Pattern = buf
	}
	return style, nil
}

// Apply drives the setters of s. Both color and image arms are applied so
// that switching the type later restores them; the type is set last.
func (c Config) Apply(s *panelbg.State) error {
	if err := c.Validate(); err != nil {
		return err
	}
	style, styleErr := c.DefaultStyle()
	s.SetDefaultStyle(style)

	rgb, _ := ParseColor(c.Color)
	s.SetColor(rgb)
	s.SetOpacity(uint8(c.Opacity))
	s.SetImage(c.Image)
	s.SetFit(c.Fit)
	s.SetStretch(c.Stretch)
	s.SetRotate(c.Rotate)
	s.SetType(c.TypeValue())
	return styleErr
}
