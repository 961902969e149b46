package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFormat is the sentinel wrapped by every FormatError.
var ErrFormat = errors.New("malformed csv input")

// FormatError describes input the codec cannot turn into a dataset.
type FormatError struct {
	Line    int // 1-based, 0 when not tied to a line
	Message string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("csv line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("csv: %s", e.Message)
}

func (e *FormatError) Unwrap() error { return ErrFormat }

// Parse splits text into rows on newlines and into fields on commas.
//
// The first line is the header; header fields are trimmed. Blank lines are
// skipped. A row with fewer fields than the header gets null for the missing
// trailing columns and extra fields are ignored. Quoting is not interpreted
// and data values are kept verbatim apart from a trailing carriage return on
// the line.
func Parse(text string) (*Dataset, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &FormatError{Message: "input is empty"}
	}

	lines := strings.Split(text, "\n")

	rawHeader := strings.Split(strings.TrimSuffix(lines[0], "\r"), ",")
	columns := make([]string, len(rawHeader))
	named := 0
	for i, h := range rawHeader {
		columns[i] = strings.TrimSpace(h)
		if columns[i] != "" {
			named++
		}
	}
	if named == 0 {
		return nil, &FormatError{Line: 1, Message: "header has no columns"}
	}

	d := New(columns)
	for _, line := range lines[1:] {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, ",")
		r := NewRecord(columns)
		for i, c := range columns {
			if i < len(fields) {
				r.Set(c, fields[i])
			}
		}
		d.Append(r)
	}

	return d, nil
}

// Serialize renders d as a header line followed by one line per record with
// every value wrapped in double quotes. Values are not escaped and null
// renders as an empty quoted field. The header comes from d.Columns, falling
// back to the first record's key set.
func Serialize(d *Dataset) string {
	if d == nil {
		return ""
	}

	columns := d.Columns
	if len(columns) == 0 && len(d.Records) > 0 {
		columns = d.Records[0].Columns()
	}
	if len(columns) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(columns, ","))

	quoted := make([]string, len(columns))
	for _, r := range d.Records {
		for i, c := range columns {
			v, _ := r.Get(c)
			quoted[i] = `"` + v + `"`
		}
		sb.WriteByte('\n')
		sb.WriteString(strings.Join(quoted, ","))
	}

	return sb.String()
}
