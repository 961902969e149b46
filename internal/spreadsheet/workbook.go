// Package spreadsheet converts between Excel workbooks and the engine's
// comma-separated text and datasets.
package spreadsheet

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/dbsmedya/synthflow/internal/dataset"
	"github.com/dbsmedya/synthflow/internal/types"
	"github.com/dbsmedya/synthflow/internal/workflow"
)

const (
	// SyntheticFileName is the workbook counterpart of workflow.SyntheticFileName.
	SyntheticFileName = "synthetic_data.xlsx"
	MIMETypeXLSX      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	// SheetName is the sheet written by Workbook.
	SheetName = "Synthetic Data"
)

// IsWorkbook reports whether path names an Excel workbook.
func IsWorkbook(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return true
	}
	return false
}

// ReadText converts the first sheet of a workbook into comma-separated text
// that dataset.Parse accepts. Blank header cells become Column_N. Cell text
// is joined as-is, so a cell containing a comma splits into two fields.
func ReadText(r io.Reader) (string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return "", fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return "", fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return "", fmt.Errorf("sheet %q is empty", sheet)
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Column_%d", i+1)
		}
		headers[i] = h
	}

	lines := make([]string, 0, len(rows))
	lines = append(lines, strings.Join(headers, ","))
	for _, row := range rows[1:] {
		line := strings.Join(row, ",")
		if strings.TrimSpace(strings.ReplaceAll(line, ",", "")) == "" {
			continue
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n"), nil
}

// Workbook renders d as a single-sheet xlsx artifact. Values that parse as
// numbers are stored as numeric cells; nulls are left empty.
func Workbook(d *dataset.Dataset) (workflow.Artifact, error) {
	if d == nil || len(d.Columns) == 0 {
		return workflow.Artifact{}, fmt.Errorf("dataset has no columns")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return workflow.Artifact{}, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(d.Columns))
	for i, c := range d.Columns {
		header[i] = c
	}
	if err := setRow(f, 1, header); err != nil {
		return workflow.Artifact{}, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return workflow.Artifact{}, fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetRowStyle(SheetName, 1, 1, bold); err != nil {
		return workflow.Artifact{}, fmt.Errorf("failed to style header: %w", err)
	}

	for i, r := range d.Records {
		cells := make([]interface{}, len(d.Columns))
		for j, c := range d.Columns {
			v, ok := r.Get(c)
			if !ok {
				continue
			}
			if n, isNum := types.ParseNumber(v); isNum {
				cells[j] = n
			} else {
				cells[j] = v
			}
		}
		if err := setRow(f, i+2, cells); err != nil {
			return workflow.Artifact{}, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return workflow.Artifact{}, fmt.Errorf("failed to encode workbook: %w", err)
	}

	return workflow.Artifact{Name: SyntheticFileName, MIMEType: MIMETypeXLSX, Data: buf.Bytes()}, nil
}

func setRow(f *excelize.File, row int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("invalid row %d: %w", row, err)
	}
	if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}
