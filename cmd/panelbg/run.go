package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gogpu/panelbg"
	"github.com/gogpu/panelbg/surface"
	"github.com/gogpu/panelbg/watch"
	"github.com/gogpu/panelbg/x11"
)

type runFlags struct {
	backgroundFlags
	display   string
	window    uint32
	thickness int
}

func newRunCmd(g *globalFlags) *cobra.Command {
	f := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Paint a live panel window on an X display",
		Long: `Run keeps a panel window painted until interrupted. It follows
wallpaper changes, window moves and resizes and, with --watch, edits of the
background image.

Without --window a new window is created along the configured edge.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return f.run(cmd, g)
		},
	}

	f.register(cmd.Flags())
	cmd.Flags().StringVar(&f.display, "display", "", "X display; defaults to $DISPLAY")
	cmd.Flags().Uint32Var(&f.window, "window", 0, "existing window id to paint")
	cmd.Flags().IntVar(&f.thickness, "thickness", defaultThickness, "panel thickness of a new window")

	return cmd
}

func (f *runFlags) run(cmd *cobra.Command, g *globalFlags) error {
	cfg, err := f.settings(cmd, g.config)
	if err != nil {
		return err
	}
	log := panelbg.Logger()

	X, err := x11.Connect(f.display)
	if err != nil {
		return err
	}
	desktop := x11.NewDesktop(X)
	screen := X.Conn().DefaultScreen
	screenW, screenH, err := desktop.ScreenSize(panelbg.ScreenID(screen))
	if err != nil {
		return err
	}

	orientation := cfg.OrientationValue()
	region := edgeRegion(orientation, screenW, screenH, f.thickness)
	tgt, err := surface.Open("x11", surface.Options{
		Screen:  screen,
		Window:  f.window,
		Width:   region.Width,
		Height:  region.Height,
		Display: f.display,
	})
	if err != nil {
		return err
	}
	window := tgt.(*x11.Window)
	defer window.Destroy()
	if f.window == 0 {
		window.Win.Move(region.X, region.Y)
	}

	state := panelbg.NewState(panelbg.NewRegistry(desktop),
		panelbg.WithOnChange(func(s *panelbg.State) {
			log.Info("background changed", "identity", s.MakeString(0, 0))
		}))
	if err := cfg.Apply(state); err != nil {
		log.Warn("settings applied partially", "error", err)
	}
	state.Realize(window)
	defer state.Unrealize()

	if x, y, w, h, err := window.Geometry(); err == nil {
		state.ChangeRegion(orientation, x, y, w, h)
	} else {
		log.Warn("window geometry unavailable", "error", err)
		state.ChangeRegion(orientation, region.X, region.Y, region.Width, region.Height)
	}
	window.OnConfigure(func(x, y, w, h int) {
		state.ChangeRegion(orientation, x, y, w, h)
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	do := make(chan func(), 8)
	if cfg.WatchImage && cfg.Image != "" {
		w, err := watch.New(cfg.Image, func() {
			select {
			case do <- state.ReloadImage:
			case <-ctx.Done():
			}
		})
		if err != nil {
			return err
		}
		defer w.Close()
		go func() {
			if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Warn("image watch stopped", "path", cfg.Image, "error", err)
			}
		}()
	}

	err = x11.Run(ctx, X, do)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
