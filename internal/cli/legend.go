package cli

import (
	"fmt"
	"strings"
	"trucklogix-service/internal/render"
	"trucklogix-service/internal/timeline"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

func newLegendCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "legend",
		Short: "Print the status legend and hour ticks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			legend := timeline.DefaultPalette().Legend()

			nameWidth := 0
			for _, e := range legend {
				nameWidth = max(nameWidth, runewidth.StringWidth(e.Status.String()))
			}

			for _, e := range legend {
				fmt.Fprintf(out, "%s  %s  %s\n",
					strings.Repeat(render.Glyph(e.Status), 3),
					runewidth.FillRight(e.Status.String(), nameWidth),
					e.Color,
				)
			}
			fmt.Fprintf(out, "\nTicks: %s\n", strings.Join(timeline.HourTicks(), ", "))
			return nil
		},
	}
}
