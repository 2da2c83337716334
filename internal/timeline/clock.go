package timeline

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// MinutesPerDay is the length of the axis a day's segments tile.
	MinutesPerDay = 24 * 60

	startOfDayText = "12:00 a.m."
	endOfDayText   = "11:59 p.m."
)

// ParseError reports a time-of-day string that could not be decoded.
type ParseError struct {
	Value  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse time %q: %s", e.Value, e.Reason)
}

// ParseClock converts a 12-hour clock string such as "7:30 a.m." into minutes
// since midnight. 12:00 a.m. is minute 0 and 12:00 p.m. is minute 720.
// The meridiem may be written "a.m."/"p.m." or "am"/"pm" in any case.
func ParseClock(s string) (int, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return 0, &ParseError{Value: s, Reason: "want <H:MM> <a.m.|p.m.>"}
	}

	hs, ms, ok := strings.Cut(fields[0], ":")
	if !ok || strings.Contains(ms, ":") {
		return 0, &ParseError{Value: s, Reason: "want H:MM"}
	}
	if len(hs) < 1 || len(hs) > 2 || !allDigits(hs) {
		return 0, &ParseError{Value: s, Reason: "hour must be 1 or 2 digits"}
	}
	if len(ms) != 2 || !allDigits(ms) {
		return 0, &ParseError{Value: s, Reason: "minute must be 2 digits"}
	}

	h, _ := strconv.Atoi(hs)
	m, _ := strconv.Atoi(ms)
	if h < 1 || h > 12 {
		return 0, &ParseError{Value: s, Reason: "hour out of range [1,12]"}
	}
	if m > 59 {
		return 0, &ParseError{Value: s, Reason: "minute out of range [0,59]"}
	}

	var pm bool
	switch strings.ToLower(fields[1]) {
	case "a.m.", "am":
	case "p.m.", "pm":
		pm = true
	default:
		return 0, &ParseError{Value: s, Reason: fmt.Sprintf("unknown meridiem %q", fields[1])}
	}

	if h == 12 {
		h = 0
	}
	if pm {
		h += 12
	}

	return h*60 + m, nil
}

// FormatClock renders minutes since midnight as "h:mm a.m." / "h:mm p.m.".
// Values outside a day wrap around.
func FormatClock(minute int) string {
	minute = ((minute % MinutesPerDay) + MinutesPerDay) % MinutesPerDay

	h, m := minute/60, minute%60
	mer := "a.m."
	if h >= 12 {
		mer = "p.m."
	}

	h %= 12
	if h == 0 {
		h = 12
	}

	return fmt.Sprintf("%d:%02d %s", h, m, mer)
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
