package cli

import (
	"io"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the eldtool command tree writing to out and errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "eldtool",
		Short: "Inspect driver duty status timelines",
		Long: `eldtool reconstructs a driver's 24-hour duty status timeline from a
generated daily log or a JSON list of duty status changes.

Examples:
  eldtool timeline log.txt                   # Draw the day as a bar
  eldtool timeline log.txt --format table    # Segment table
  cat changes.json | eldtool timeline - -f csv
  eldtool timeline log.txt --watch           # Redraw whenever the file changes
  eldtool legend`,
		SilenceUsage: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.AddCommand(newTimelineCommand(), newLegendCommand())
	return root
}
