package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/panelbg"
	"github.com/gogpu/panelbg/pixbuf"
	"github.com/gogpu/panelbg/surface"
)

const (
	defaultScreenWidth  = 1920
	defaultScreenHeight = 1080
	defaultThickness    = 24
)

type renderFlags struct {
	backgroundFlags
	wallpaper string
	screen    string
	region    string
	thickness int
	output    string
}

func newRenderCmd(g *globalFlags) *cobra.Command {
	f := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a panel background to a PNG file",
		Long: `Render paints one panel over a wallpaper file without a display server
and writes what the panel window would show.

The panel runs along the edge given by --orientation with the given
--thickness, unless --region places it explicitly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return f.run(cmd, g)
		},
	}

	f.register(cmd.Flags())
	cmd.Flags().StringVarP(&f.wallpaper, "wallpaper", "w", "", "desktop wallpaper image; none when empty")
	cmd.Flags().StringVar(&f.screen, "screen", "", "screen size as WIDTHxHEIGHT; defaults to the wallpaper size")
	cmd.Flags().StringVar(&f.region, "region", "", "panel region as X,Y,WIDTH,HEIGHT")
	cmd.Flags().IntVar(&f.thickness, "thickness", defaultThickness, "panel thickness when no region is given")
	cmd.Flags().StringVarP(&f.output, "output", "O", "panel.png", "output PNG file")

	return cmd
}

func (f *renderFlags) run(cmd *cobra.Command, g *globalFlags) error {
	cfg, err := f.settings(cmd, g.config)
	if err != nil {
		return err
	}

	var wallpaper *pixbuf.Buf
	screenW, screenH := defaultScreenWidth, defaultScreenHeight
	if f.wallpaper != "" {
		if wallpaper, err = pixbuf.Load(f.wallpaper); err != nil {
			return err
		}
		screenW, screenH = wallpaper.Width(), wallpaper.Height()
	}
	if f.screen != "" {
		if screenW, screenH, err = parseSize(f.screen); err != nil {
			return err
		}
	}

	orientation := cfg.OrientationValue()
	region := edgeRegion(orientation, screenW, screenH, f.thickness)
	if f.region != "" {
		if region, err = parseRegion(f.region); err != nil {
			return err
		}
	}
	if region.Empty() {
		return fmt.Errorf("%w: %dx%d", errInvalidRegion, region.Width, region.Height)
	}

	tgt, err := surface.Open("image", surface.Options{
		Width:  region.Width,
		Height: region.Height,
	})
	if err != nil {
		return err
	}
	window := tgt.(*surface.ImageTarget)

	desktop := panelbg.NewStaticDesktop(screenW, screenH, wallpaper)
	state := panelbg.NewState(panelbg.NewRegistry(desktop))
	if err := cfg.Apply(state); err != nil {
		return err
	}
	state.Realize(window)
	state.ChangeRegion(orientation, region.X, region.Y, region.Width, region.Height)
	defer state.Unrealize()

	if err := window.Render().SavePNG(f.output); err != nil {
		return err
	}

	stats := state.Stats()
	panelbg.Logger().Debug("rendered panel",
		"output", f.output,
		"region", fmt.Sprintf("%d,%d %dx%d", region.X, region.Y, region.Width, region.Height),
		"transforms", stats.Transforms,
		"composites", stats.Composites,
		"prepares", stats.Prepares)

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", f.output, state.MakeString(region.X, region.Y))
	return nil
}
