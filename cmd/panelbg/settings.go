package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gogpu/panelbg"
	"github.com/gogpu/panelbg/config"
)

var errInvalidRegion = errors.New("invalid region")

// backgroundFlags mirror the settings file. Flags given on the command line
// override the file.
type backgroundFlags struct {
	typ         string
	color       string
	opacity     int
	image       string
	fit         bool
	stretch     bool
	rotate      bool
	orientation string
	watch       bool
}

func (b *backgroundFlags) register(fs *pflag.FlagSet) {
	def := config.Default()
	fs.StringVarP(&b.typ, "type", "t", def.Type, "background type: none, color or image")
	fs.StringVar(&b.color, "color", def.Color, "background color as #rrggbb")
	fs.IntVar(&b.opacity, "opacity", def.Opacity, "color opacity, 0 (clear) to 255 (opaque)")
	fs.StringVarP(&b.image, "image", "i", "", "background image file")
	fs.BoolVar(&b.fit, "fit", false, "scale the image to the panel thickness")
	fs.BoolVar(&b.stretch, "stretch", false, "scale the image to the panel size")
	fs.BoolVar(&b.rotate, "rotate", false, "rotate the image on vertical panels")
	fs.StringVar(&b.orientation, "orientation", def.Orientation, "panel edge: top, bottom, left or right")
	fs.BoolVar(&b.watch, "watch", false, "reload the image when its file changes")
}

// settings loads the settings file, if any, and applies changed flags.
func (b *backgroundFlags) settings(cmd *cobra.Command, path string) (config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return config.Config{}, err
		}
	}

	fs := cmd.Flags()
	if fs.Changed("type") {
		cfg.Type = b.typ
	}
	if fs.Changed("color") {
		cfg.Color = b.color
	}
	if fs.Changed("opacity") {
		cfg.Opacity = b.opacity
	}
	if fs.Changed("image") {
		cfg.Image = b.image
	}
	if fs.Changed("fit") {
		cfg.Fit = b.fit
	}
	if fs.Changed("stretch") {
		cfg.Stretch = b.stretch
	}
	if fs.Changed("rotate") {
		cfg.Rotate = b.rotate
	}
	if fs.Changed("orientation") {
		cfg.Orientation = b.orientation
	}
	if fs.Changed("watch") {
		cfg.WatchImage = b.watch
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// parseRegion parses "x,y,width,height".
func parseRegion(s string) (panelbg.Rect, error) {
	var r panelbg.Rect
	n, err := fmt.Sscanf(s, "%d,%d,%d,%d", &r.X, &r.Y, &r.Width, &r.Height)
	if err != nil || n != 4 || r.Width <= 0 || r.Height <= 0 {
		return panelbg.Rect{}, fmt.Errorf("%w: %q", errInvalidRegion, s)
	}
	return r, nil
}

// parseSize parses "widthxheight".
func parseSize(s string) (int, int, error) {
	var w, h int
	n, err := fmt.Sscanf(s, "%dx%d", &w, &h)
	if err != nil || n != 2 || w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q", s)
	}
	return w, h, nil
}

// edgeRegion places a panel of the given thickness along one screen edge.
func edgeRegion(o panelbg.Orientation, screenW, screenH, thickness int) panelbg.Rect {
	switch o {
	case panelbg.OrientationBottom:
		return panelbg.Rect{Y: screenH - thickness, Width: screenW, Height: thickness}
	case panelbg.OrientationLeft:
		return panelbg.Rect{Width: thickness, Height: screenH}
	case panelbg.OrientationRight:
		return panelbg.Rect{X: screenW - thickness, Width: thickness, Height: screenH}
	default:
		return panelbg.Rect{Width: screenW, Height: thickness}
	}
}
