// Command panelbg paints panel backgrounds.
//
// Usage:
//
//	panelbg render --wallpaper wall.png --type color --color "#336699" --opacity 128 -O panel.png
//	panelbg run --config ~/.config/panelbg.toml
//	panelbg inspect -O desktop.png
//	panelbg backends
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/panelbg"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "panelbg:", err)
		os.Exit(1)
	}
}

type globalFlags struct {
	verbose bool
	config  string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "panelbg",
		Short:   "panelbg - panel background painter",
		Long:    `panelbg paints the background of a desktop panel: nothing, a solid color blended over the wallpaper, or a scaled and rotated image.`,
		Version: version,

		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if g.verbose {
				panelbg.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "log pipeline activity to stderr")
	rootCmd.PersistentFlags().StringVarP(&g.config, "config", "c", "", "settings file (.toml or .yaml)")

	rootCmd.AddCommand(newRenderCmd(g))
	rootCmd.AddCommand(newRunCmd(g))
	rootCmd.AddCommand(newInspectCmd(g))
	rootCmd.AddCommand(newBackendsCmd())

	return rootCmd
}
