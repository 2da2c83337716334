package timeline

import (
	"bufio"
	"regexp"
	"strings"
	"trucklogix-service/internal/domain"
)

// changeLine matches "- Time: 7:30 a.m., Location: Dallas, TX, Status: Driving".
// Location is greedy so that it may itself contain commas; the last
// ", Status:" on the line ends it.
var changeLine = regexp.MustCompile(`(?i)^\s*(?:[-*]\s*)?Time:\s*(.*?),\s*Location:\s*(.*),\s*Status:\s*(.*?)\s*$`)

// RejectedLine is a line that looked like a change record but could not be used.
type RejectedLine struct {
	Line   int    `json:"line"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

// Extraction is the result of scanning log text for change records.
type Extraction struct {
	Changes  []domain.DutyStatusChange
	Rejected []RejectedLine
}

// ExtractChanges scans generated log text for duty status change lines.
// Lines of any other shape are ignored. Lines of the right shape with an
// unknown status or an unreadable time are reported in Rejected and skipped.
// Text without any change lines yields an empty, non-nil Changes.
func ExtractChanges(text string) Extraction {
	out := Extraction{Changes: []domain.DutyStatusChange{}}

	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()

		m := changeLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		tm := strings.TrimSpace(m[1])
		loc := strings.TrimSpace(m[2])
		statusText := strings.TrimRight(m[3], ". ")

		status, err := domain.ParseDutyStatus(statusText)
		if err != nil {
			out.Rejected = append(out.Rejected, RejectedLine{Line: lineNo, Text: line, Reason: err.Error()})
			continue
		}
		if _, err := ParseClock(tm); err != nil {
			out.Rejected = append(out.Rejected, RejectedLine{Line: lineNo, Text: line, Reason: err.Error()})
			continue
		}

		out.Changes = append(out.Changes, domain.DutyStatusChange{
			Time:     tm,
			Location: loc,
			Status:   status,
			Order:    len(out.Changes),
		})
	}

	return out
}
