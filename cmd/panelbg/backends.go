package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gogpu/panelbg/surface"
)

func newBackendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List the window backends panelbg can paint into",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPRIORITY\tAVAILABLE")
			for _, b := range surface.Backends() {
				fmt.Fprintf(w, "%s\t%d\t%t\n", b.Name, b.Priority, b.Available)
			}
			return w.Flush()
		},
	}
}
