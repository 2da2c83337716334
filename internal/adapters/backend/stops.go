package backend

import (
	"encoding/json"
	"errors"
	"strings"
	"trucklogix-service/internal/domain"
)

// StopDetail is a fuel or rest stop place record.
type StopDetail struct {
	Name           string
	Coordinates    domain.Coordinates
	HasCoordinates bool
	DistanceMeters float64
}

// DecodeStopLocation reads a stop's location text. The routing backend
// stores place records as Python dict literals, e.g.
//
//	{'name': "Love's Travel Stop", 'coordinates': [-101.8, 35.2], 'distance_meters': 412.7}
//
// Text that is not such a record is returned as the stop name.
func DecodeStopLocation(s string) StopDetail {
	raw := strings.TrimSpace(s)
	inner := raw
	if len(inner) >= 2 {
		first, last := inner[0], inner[len(inner)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			inner = strings.TrimSpace(inner[1 : len(inner)-1])
		}
	}

	if !strings.HasPrefix(inner, "{") {
		return StopDetail{Name: raw}
	}

	js, err := pyLiteralToJSON(inner)
	if err != nil {
		return StopDetail{Name: raw}
	}

	var rec struct {
		Name           string    `json:"name"`
		Coordinates    []float64 `json:"coordinates"`
		DistanceMeters *float64  `json:"distance_meters"`
	}
	if err := json.Unmarshal([]byte(js), &rec); err != nil {
		return StopDetail{Name: raw}
	}

	out := StopDetail{Name: rec.Name}
	if len(rec.Coordinates) == 2 {
		out.Coordinates = domain.CoordsFromList(rec.Coordinates)
		out.HasCoordinates = true
	}
	if rec.DistanceMeters != nil {
		out.DistanceMeters = *rec.DistanceMeters
	}
	return out
}

// pyLiteralToJSON rewrites a Python literal (dicts, lists, numbers, strings
// in either quote style, None/True/False) as JSON.
func pyLiteralToJSON(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		ch := s[i]
		switch {
		case ch == '\'' || ch == '"':
			str, n, err := readPyString(s[i:])
			if err != nil {
				return "", err
			}
			enc, _ := json.Marshal(str)
			b.Write(enc)
			i += n
		case isIdentByte(ch):
			j := i
			for j < len(s) && isIdentByte(s[j]) {
				j++
			}
			switch word := s[i:j]; word {
			case "None":
				b.WriteString("null")
			case "True":
				b.WriteString("true")
			case "False":
				b.WriteString("false")
			default:
				b.WriteString(word)
			}
			i = j
		default:
			b.WriteByte(ch)
			i++
		}
	}

	return b.String(), nil
}

// readPyString decodes the quoted string at the start of s and returns it
// with the number of bytes consumed.
func readPyString(s string) (string, int, error) {
	quote := s[0]
	var b strings.Builder

	for i := 1; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch == '\\' && i+1 < len(s):
			i++
			switch s[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '\\', '\'', '"':
				b.WriteByte(s[i])
			default:
				b.WriteByte('\\')
				b.WriteByte(s[i])
			}
		case ch == quote:
			return b.String(), i + 1, nil
		default:
			b.WriteByte(ch)
		}
	}

	return "", 0, errors.New("unterminated string literal")
}

func isIdentByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
