package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"trucklogix-service/internal/domain"
	"trucklogix-service/internal/timeline"

	"github.com/bytedance/sonic"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

type Format string

const (
	FormatBar   Format = "bar"
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
)

const fallbackWidth = 80

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatBar, FormatTable, FormatCSV, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (bar, table, csv, json)", s)
}

// TerminalWidth returns the width of the terminal on fd, or 80 when fd is
// not a terminal.
func TerminalWidth(fd int) int {
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return fallbackWidth
	}
	return w
}

func StdoutWidth() int { return TerminalWidth(int(os.Stdout.Fd())) }

// Glyph is the fill character for a status in the bar.
func Glyph(s domain.DutyStatus) string {
	switch s {
	case domain.Driving:
		return "█"
	case domain.OnDutyNotDriving:
		return "▓"
	case domain.SleeperBerth:
		return "▒"
	case domain.OffDuty:
		return "░"
	}
	return "?"
}

// Render writes segments in format f. width only applies to bar output.
func Render(w io.Writer, f Format, segments []timeline.Segment, p timeline.Palette, width int) error {
	switch f {
	case FormatBar:
		return Bar(w, segments, width)
	case FormatTable:
		return Table(w, segments)
	case FormatCSV:
		return CSV(w, segments)
	case FormatJSON:
		return JSON(w, timeline.BuildView(segments, p))
	}
	return fmt.Errorf("unknown format %q", f)
}

// Allocate splits width columns across segments in proportion to their
// durations using largest remainders. Every positive segment gets at least
// one column when there are enough columns to go around.
func Allocate(segments []timeline.Segment, width int) []int {
	cols := make([]int, len(segments))
	if width <= 0 || len(segments) == 0 {
		return cols
	}

	total := 0
	positive := 0
	for _, s := range segments {
		if s.Duration > 0 {
			total += s.Duration
			positive++
		}
	}
	if total == 0 {
		return cols
	}

	type share struct {
		idx int
		rem int
	}
	shares := make([]share, 0, len(segments))
	used := 0
	for i, s := range segments {
		if s.Duration <= 0 {
			continue
		}
		exact := s.Duration * width
		cols[i] = exact / total
		used += cols[i]
		shares = append(shares, share{idx: i, rem: exact % total})
	}

	slices.SortStableFunc(shares, func(a, b share) int { return b.rem - a.rem })
	for i := 0; used < width; i = (i + 1) % len(shares) {
		cols[shares[i].idx]++
		used++
	}

	if positive > width {
		return cols
	}

	// Give empty positive segments a column, taken from the widest.
	for i, s := range segments {
		if s.Duration <= 0 || cols[i] > 0 {
			continue
		}
		widest := 0
		for j := range cols {
			if cols[j] > cols[widest] {
				widest = j
			}
		}
		cols[widest]--
		cols[i]++
	}

	return cols
}

// Bar draws the day as one line of status glyphs with hour ticks and a legend.
func Bar(w io.Writer, segments []timeline.Segment, width int) error {
	if width <= 0 {
		width = fallbackWidth
	}

	var b strings.Builder
	for i, n := range Allocate(segments, width) {
		b.WriteString(strings.Repeat(Glyph(segments[i].Status), n))
	}
	b.WriteByte('\n')
	b.WriteString(tickLine(width))
	b.WriteString("\n\n")
	b.WriteString(LegendLine())
	b.WriteByte('\n')

	_, err := io.WriteString(w, b.String())
	return err
}

// tickLine places the hour labels under the bar at their proportional
// columns, skipping labels that would overlap.
func tickLine(width int) string {
	ticks := timeline.HourTicks()
	line := []rune(strings.Repeat(" ", width))
	next := 0
	for i, t := range ticks {
		col := i * width / len(ticks)
		label := []rune(t)
		if col < next || col+len(label) > width {
			continue
		}
		copy(line[col:], label)
		next = col + len(label) + 1
	}
	return strings.TrimRight(string(line), " ")
}

func LegendLine() string {
	parts := make([]string, 0, 4)
	for _, e := range timeline.DefaultPalette().Legend() {
		parts = append(parts, Glyph(e.Status)+" "+e.Status.String())
	}
	return strings.Join(parts, "   ")
}

// Table writes an aligned Status/Start/End/Duration table.
func Table(w io.Writer, segments []timeline.Segment) error {
	header := []string{"Status", "Start", "End", "Duration"}
	rows := make([][]string, 0, len(segments))
	for _, s := range segments {
		rows = append(rows, []string{s.Status.String(), s.StartTime, s.EndTime, FormatDuration(s.Duration)})
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, r := range rows {
		for i, c := range r {
			widths[i] = max(widths[i], runewidth.StringWidth(c))
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		for i, c := range cells {
			if i > 0 {
				b.WriteString("  ")
			}
			if i == len(cells)-1 {
				b.WriteString(c)
				continue
			}
			b.WriteString(runewidth.FillRight(c, widths[i]))
		}
		b.WriteByte('\n')
	}

	writeRow(header)
	sep := make([]string, len(header))
	for i := range header {
		sep[i] = strings.Repeat("-", widths[i])
	}
	writeRow(sep)
	for _, r := range rows {
		writeRow(r)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// CSV writes status,start_minutes,duration,start_time,end_time rows.
func CSV(w io.Writer, segments []timeline.Segment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"status", "start_minutes", "duration", "start_time", "end_time"}); err != nil {
		return err
	}
	for _, s := range segments {
		rec := []string{
			s.Status.String(),
			strconv.Itoa(s.StartMinutes),
			strconv.Itoa(s.Duration),
			s.StartTime,
			s.EndTime,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func JSON(w io.Writer, v timeline.View) error {
	b, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode timeline: %w", err)
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

// FormatDuration renders minutes as "7h 05m".
func FormatDuration(minutes int) string {
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}
