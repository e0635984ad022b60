package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/panelbg"
	"github.com/gogpu/panelbg/pixbuf"
	"github.com/gogpu/panelbg/x11"
)

type inspectFlags struct {
	display string
	region  string
	output  string
}

func newInspectCmd(g *globalFlags) *cobra.Command {
	f := &inspectFlags{}

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the desktop wallpaper of an X display",
		Long: `Inspect prints the root window pixmap and screen size and, with
--output, saves the wallpaper as seen behind a panel at --region.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return f.run(cmd)
		},
	}

	cmd.Flags().StringVar(&f.display, "display", "", "X display; defaults to $DISPLAY")
	cmd.Flags().StringVar(&f.region, "region", "", "crop to X,Y,WIDTH,HEIGHT; the whole screen when empty")
	cmd.Flags().StringVarP(&f.output, "output", "O", "", "write the wallpaper to this PNG file")

	return cmd
}

func (f *inspectFlags) run(cmd *cobra.Command) error {
	X, err := x11.Connect(f.display)
	if err != nil {
		return err
	}
	desktop := x11.NewDesktop(X)
	screen := panelbg.ScreenID(X.Conn().DefaultScreen)

	screenW, screenH, err := desktop.ScreenSize(screen)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "screen %d: %dx%d\n", screen, screenW, screenH)

	pid, err := desktop.RootPixmap()
	if err != nil {
		fmt.Fprintf(out, "%s: none\n", x11.RootPixmapAtom)
		return err
	}
	fmt.Fprintf(out, "%s: 0x%x\n", x11.RootPixmapAtom, uint32(pid))

	if f.output == "" {
		return nil
	}

	region := panelbg.Rect{Width: screenW, Height: screenH}
	if f.region != "" {
		if region, err = parseRegion(f.region); err != nil {
			return err
		}
	}

	wall, err := readWallpaper(desktop, screen, region)
	if err != nil {
		return err
	}
	return wall.SavePNG(f.output)
}

// readWallpaper copies the wallpaper under region through a short-lived
// monitor, which grabs the display and tiles small wallpapers.
func readWallpaper(source panelbg.DesktopSource, screen panelbg.ScreenID, region panelbg.Rect) (*pixbuf.Buf, error) {
	ref := panelbg.NewRegistry(source).Acquire(screen, nil)
	defer ref.Release()

	wall := ref.Region(region.X, region.Y, region.Width, region.Height)
	if wall == nil {
		return nil, fmt.Errorf("%w: screen %d", panelbg.ErrNoBackground, screen)
	}
	return wall, nil
}
