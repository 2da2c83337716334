package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"trucklogix-service/internal/domain"
	"trucklogix-service/internal/render"
	"trucklogix-service/internal/timeline"

	"github.com/bytedance/sonic"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

const (
	clearScreen    = "\033[2J"
	moveCursorHome = "\033[H"
)

type timelineOptions struct {
	format string
	width  int
	watch  bool
}

func newTimelineCommand() *cobra.Command {
	opts := &timelineOptions{}

	cmd := &cobra.Command{
		Use:   "timeline [file|-]",
		Short: "Reconstruct and draw one day's duty status timeline",
		Long: `Reads a generated log sheet (lines like
"- Time: 7:30 a.m., Location: Dallas, TX, Status: Driving") or a JSON array of
{"time","location","status"} objects, and renders the reconstructed day.
Input defaults to stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			return runTimeline(cmd.Context(), cmd, path, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", string(render.FormatBar),
		"Output format (bar, table, csv, json)")
	cmd.Flags().IntVarP(&opts.width, "width", "w", 0,
		"Bar width in columns (0 = terminal width)")
	cmd.Flags().BoolVar(&opts.watch, "watch", false,
		"Redraw whenever the input file is written")

	return cmd
}

func runTimeline(ctx context.Context, cmd *cobra.Command, path string, opts *timelineOptions) error {
	format, err := render.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	width := opts.width
	if width <= 0 {
		width = render.StdoutWidth()
	}

	draw := func() error {
		data, err := readInput(cmd.InOrStdin(), path)
		if err != nil {
			return err
		}
		return renderInput(cmd.OutOrStdout(), cmd.ErrOrStderr(), data, format, width)
	}

	if !opts.watch {
		return draw()
	}
	if path == "-" {
		return fmt.Errorf("--watch needs a file argument")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	return watchFile(ctx, path, func() {
		if format == render.FormatBar || format == render.FormatTable {
			fmt.Fprint(cmd.OutOrStdout(), clearScreen+moveCursorHome)
		}
		if err := draw(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
		}
	})
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return b, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return b, nil
}

type changeJSON struct {
	Time     string `json:"time"`
	Location string `json:"location"`
	Status   string `json:"status"`
}

// parseChanges accepts a JSON array of changes or log sheet text.
func parseChanges(data []byte) (timeline.Extraction, error) {
	trimmed := bytes.TrimSpace(data)
	if !bytes.HasPrefix(trimmed, []byte("[")) {
		return timeline.ExtractChanges(string(data)), nil
	}

	var raw []changeJSON
	if err := sonic.Unmarshal(trimmed, &raw); err != nil {
		return timeline.Extraction{}, fmt.Errorf("decode changes: %w", err)
	}

	out := timeline.Extraction{Changes: make([]domain.DutyStatusChange, 0, len(raw))}
	for i, c := range raw {
		status, err := domain.ParseDutyStatus(c.Status)
		if err != nil {
			return timeline.Extraction{}, fmt.Errorf("change #%d: %w", i+1, err)
		}
		out.Changes = append(out.Changes, domain.DutyStatusChange{
			Time:     c.Time,
			Location: c.Location,
			Status:   status,
			Order:    i,
		})
	}
	return out, nil
}

func renderInput(out, errOut io.Writer, data []byte, format render.Format, width int) error {
	ex, err := parseChanges(data)
	if err != nil {
		return err
	}

	for _, r := range ex.Rejected {
		fmt.Fprintf(errOut, "warning: line %d skipped: %s\n", r.Line, r.Reason)
	}

	segments, err := timeline.Reconstruct(ex.Changes)
	if err != nil {
		return err
	}
	if len(segments) == 0 && format != render.FormatJSON && format != render.FormatCSV {
		fmt.Fprintln(errOut, "no duty status changes found")
		return nil
	}

	view := timeline.BuildView(segments, timeline.DefaultPalette())
	view.Warnings = ex.Rejected
	if format == render.FormatJSON {
		return render.JSON(out, view)
	}

	return render.Render(out, format, segments, timeline.DefaultPalette(), width)
}

// watchFile calls onChange once, then again after every write to path until
// ctx is done. The parent directory is watched so editors that replace the
// file are followed.
func watchFile(ctx context.Context, path string, onChange func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	onChange()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				onChange()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			if !errors.Is(err, fsnotify.ErrEventOverflow) {
				return fmt.Errorf("watch %s: %w", path, err)
			}
		}
	}
}
