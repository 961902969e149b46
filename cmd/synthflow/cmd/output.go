package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"

	"github.com/dbsmedya/synthflow/internal/dataset"
	"github.com/dbsmedya/synthflow/internal/spreadsheet"
)

// outputWriter is used for printing output, can be overridden in tests
var outputWriter io.Writer = os.Stdout

// setOutputWriter sets the output writer (used for testing)
func setOutputWriter(w io.Writer) {
	outputWriter = w
}

// resetOutputWriter resets output to stdout (used for testing)
func resetOutputWriter() {
	outputWriter = os.Stdout
}

// maxCellWidth caps the display width of a table cell.
const maxCellWidth = 24

const nullCell = "NULL"

// printHeader prints a formatted header
func printHeader(format string, args ...interface{}) {
	title := fmt.Sprintf(format, args...)
	width := runewidth.StringWidth(title) + 4
	fmt.Fprintln(outputWriter, strings.Repeat("=", width))
	fmt.Fprintf(outputWriter, "  %s\n", color.Bold.Sprint(title))
	fmt.Fprintln(outputWriter, strings.Repeat("=", width))
}

// printSection prints a section header
func printSection(title string) {
	fmt.Fprintf(outputWriter, "[%s]\n", title)
	fmt.Fprintln(outputWriter, strings.Repeat("-", runewidth.StringWidth(title)+2))
}

// printField prints an aligned "label: value" line
func printField(label string, value interface{}) {
	fmt.Fprintf(outputWriter, "  %s %v\n", runewidth.FillRight(label+":", 22), value)
}

func printSuccess(format string, args ...interface{}) {
	fmt.Fprintln(outputWriter, color.Green.Sprintf("✔ "+format, args...))
}

func printWarning(format string, args ...interface{}) {
	fmt.Fprintln(outputWriter, color.Yellow.Sprintf("! "+format, args...))
}

// progressBar renders percent as a fixed-width bar.
func progressBar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	return fmt.Sprintf("[%s%s] %3d%%", strings.Repeat("#", filled), strings.Repeat(".", width-filled), percent)
}

// renderTable lays out rows under columns with display-width-aware padding.
// Cells wider than maxCellWidth are truncated.
func renderTable(columns []string, rows [][]string) []string {
	widths := make([]int, len(columns))
	clip := func(s string) string {
		return runewidth.Truncate(s, maxCellWidth, "…")
	}
	for i, c := range columns {
		widths[i] = runewidth.StringWidth(clip(c))
	}
	for _, row := range rows {
		for i := range columns {
			if i < len(row) {
				if w := runewidth.StringWidth(clip(row[i])); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}

	line := func(cells []string) string {
		parts := make([]string, len(columns))
		for i := range columns {
			cell := ""
			if i < len(cells) {
				cell = clip(cells[i])
			}
			parts[i] = runewidth.FillRight(cell, widths[i])
		}
		return strings.TrimRight(strings.Join(parts, " | "), " ")
	}

	seps := make([]string, len(columns))
	for i, w := range widths {
		seps[i] = strings.Repeat("-", w)
	}

	out := make([]string, 0, len(rows)+2)
	out = append(out, line(columns), strings.Join(seps, "-+-"))
	for _, row := range rows {
		out = append(out, line(row))
	}
	return out
}

// printDataset prints up to limit records of d as a table.
func printDataset(d *dataset.Dataset, limit int) {
	head := d.Head(limit)
	rows := make([][]string, 0, head.Len())
	for _, r := range head.Records {
		row := make([]string, len(head.Columns))
		for i, c := range head.Columns {
			if v, ok := r.Get(c); ok {
				row[i] = v
			} else {
				row[i] = nullCell
			}
		}
		rows = append(rows, row)
	}

	for _, l := range renderTable(head.Columns, rows) {
		fmt.Fprintf(outputWriter, "  %s\n", l)
	}
	if d.Len() > head.Len() {
		fmt.Fprintf(outputWriter, "  ... %d more rows\n", d.Len()-head.Len())
	}
}

// readInput returns the text of a CSV file, the first sheet of an Excel
// workbook converted to CSV text, or stdin when path is "-".
func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	if spreadsheet.IsWorkbook(path) {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		return spreadsheet.ReadText(f)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(data), nil
}
