package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/dbsmedya/synthflow/internal/config"
	"github.com/dbsmedya/synthflow/internal/dataset"
	"github.com/dbsmedya/synthflow/internal/export"
	"github.com/dbsmedya/synthflow/internal/logger"
	"github.com/dbsmedya/synthflow/internal/spreadsheet"
	"github.com/dbsmedya/synthflow/internal/workflow"
)

func testRunConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Simulation = cfg.Simulation.Instant()
	cfg.Simulation.Seed = 5
	cfg.Export.Dir = t.TempDir()
	cfg.Preview.Rows = 3
	return cfg
}

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	setOutputWriter(&buf)
	t.Cleanup(resetOutputWriter)
	return &buf
}

func writtenNames(written []export.Written) []string {
	names := make([]string, len(written))
	for i, w := range written {
		names[i] = w.Name
	}
	return names
}

func TestRunCommandStructure(t *testing.T) {
	assert.Equal(t, "run", runCmd.Use)
	assert.NotEmpty(t, runCmd.Short)
	assert.Contains(t, runCmd.Long, "Example:")

	for _, name := range []string{"input", "name", "type"} {
		f := runCmd.Flags().Lookup(name)
		require.NotNil(t, f, name)
		assert.Contains(t, f.Annotations, "cobra_annotation_bash_completion_one_required_flag", name)
	}
	for _, name := range []string{"source", "rows", "out", "xlsx", "skip-synthesize", "skip-denoise"} {
		assert.NotNil(t, runCmd.Flags().Lookup(name), name)
	}
	for _, dt := range workflow.DataTypes() {
		assert.Contains(t, runCmd.Flags().Lookup("type").Usage, string(dt))
	}
}

func TestExecuteRun(t *testing.T) {
	cfg := testRunConfig(t)
	out := captureOutput(t)
	input := writeInput(t, "revenue.csv", "month,revenue\nJan,100\nFeb,120\nMar,90")

	written, err := executeRun(context.Background(), cfg, logger.NewNop(), runOptions{
		Input: input,
		Meta:  workflow.ProjectMeta{Name: "Q1 revenue", DataType: workflow.DataTypeFinancial},
		Rows:  12,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{workflow.SyntheticFileName, workflow.SummaryFileName}, writtenNames(written))

	for _, w := range written {
		assert.Equal(t, filepath.Join(cfg.Export.Dir, w.Name), w.Path)
		assert.NoError(t, export.Verify(w))
	}

	csvData, err := os.ReadFile(written[0].Path)
	require.NoError(t, err)
	synthetic, err := dataset.Parse(string(csvData))
	require.NoError(t, err)
	assert.Equal(t, 12, synthetic.Len())
	assert.Equal(t, []string{"month", "revenue"}, synthetic.Columns)

	summaryData, err := os.ReadFile(written[1].Path)
	require.NoError(t, err)
	var doc workflow.SummaryDocument
	require.NoError(t, json.Unmarshal(summaryData, &doc))
	assert.Equal(t, "Q1 revenue", doc.ProjectInfo.Name)
	assert.Equal(t, "financial", doc.ProjectInfo.Type)
	assert.Equal(t, 3, doc.Processing.OriginalCount)
	assert.Equal(t, 12, doc.Processing.SyntheticCount)
	assert.GreaterOrEqual(t, doc.Processing.CleanedCount, 3)
	assert.NotEqual(t, "0%", doc.DataQuality.Completeness)

	text := out.String()
	assert.Contains(t, text, "Project: Q1 revenue")
	assert.Contains(t, text, "[Data Quality]")
	assert.Contains(t, text, "100%")
	assert.Contains(t, text, "... 9 more rows")
	assert.Contains(t, text, "Denoising complete")
	assert.Contains(t, text, "Workflow complete (phase: exported)")
}

func TestExecuteRunSkipSteps(t *testing.T) {
	cfg := testRunConfig(t)
	captureOutput(t)
	input := writeInput(t, "c.csv", "id,segment\n1,retail\n2,wholesale")

	written, err := executeRun(context.Background(), cfg, logger.NewNop(), runOptions{
		Input:          input,
		Meta:           workflow.ProjectMeta{Name: "Customers", DataType: workflow.DataTypeCustomer},
		SkipSynthesize: true,
		SkipDenoise:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{workflow.SummaryFileName}, writtenNames(written))

	var doc workflow.SummaryDocument
	data, err := os.ReadFile(written[0].Path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, workflow.ProcessingSummary{OriginalCount: 2}, doc.Processing)
}

func TestExecuteRunHeaderOnlyInput(t *testing.T) {
	cfg := testRunConfig(t)
	out := captureOutput(t)
	input := writeInput(t, "empty.csv", "a,b")

	written, err := executeRun(context.Background(), cfg, logger.NewNop(), runOptions{
		Input: input,
		Meta:  workflow.ProjectMeta{Name: "Empty", DataType: workflow.DataTypeSales},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{workflow.SummaryFileName}, writtenNames(written))
	assert.Contains(t, out.String(), "Skipping synthesis")
}

func TestExecuteRunXLSX(t *testing.T) {
	cfg := testRunConfig(t)
	cfg.Export.XLSX = true
	captureOutput(t)
	input := writeInput(t, "ops.csv", "site,load\nA,1.5\nB,2.5")

	written, err := executeRun(context.Background(), cfg, logger.NewNop(), runOptions{
		Input: input,
		Meta:  workflow.ProjectMeta{Name: "Ops", DataType: workflow.DataTypeOperational},
		Rows:  5,
	})
	require.NoError(t, err)
	require.Equal(t, []string{workflow.SyntheticFileName, spreadsheet.SyntheticFileName, workflow.SummaryFileName}, writtenNames(written))

	f, err := excelize.OpenFile(written[1].Path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(spreadsheet.SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 6)
	assert.Equal(t, []string{"site", "load"}, rows[0])
}

func TestExecuteRunWorkbookInput(t *testing.T) {
	cfg := testRunConfig(t)
	captureOutput(t)

	src, err := dataset.Parse("region,units\nnorth,4\nsouth,6")
	require.NoError(t, err)
	wb, err := spreadsheet.Workbook(src)
	require.NoError(t, err)
	input := filepath.Join(t.TempDir(), "input.xlsx")
	require.NoError(t, os.WriteFile(input, wb.Data, 0o644))

	written, err := executeRun(context.Background(), cfg, logger.NewNop(), runOptions{
		Input:       input,
		Meta:        workflow.ProjectMeta{Name: "Units", DataType: workflow.DataTypeSales},
		Rows:        4,
		SkipDenoise: true,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(written[0].Path)
	require.NoError(t, err)
	synthetic, err := dataset.Parse(string(data))
	require.NoError(t, err)
	assert.Equal(t, []string{"region", "units"}, synthetic.Columns)
	assert.Equal(t, 4, synthetic.Len())
}

func TestExecuteRunErrors(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		cfg := testRunConfig(t)
		captureOutput(t)
		input := writeInput(t, "in.csv", "x\n1")

		_, err := executeRun(context.Background(), cfg, logger.NewNop(), runOptions{
			Input: input,
			Meta:  workflow.ProjectMeta{Name: "", DataType: "weather"},
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, workflow.ErrValidation))

		entries, err := os.ReadDir(cfg.Export.Dir)
		require.NoError(t, err)
		assert.Empty(t, entries, "nothing is exported after a rejected submission")
	})

	t.Run("missing input", func(t *testing.T) {
		cfg := testRunConfig(t)
		captureOutput(t)

		_, err := executeRun(context.Background(), cfg, logger.NewNop(), runOptions{
			Input: filepath.Join(t.TempDir(), "nope.csv"),
			Meta:  workflow.ProjectMeta{Name: "p", DataType: workflow.DataTypeSales},
		})
		assert.Error(t, err)
	})

	t.Run("cancelled", func(t *testing.T) {
		cfg := testRunConfig(t)
		captureOutput(t)
		input := writeInput(t, "in.csv", "x\n1\n2")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := executeRun(ctx, cfg, logger.NewNop(), runOptions{
			Input: input,
			Meta:  workflow.ProjectMeta{Name: "p", DataType: workflow.DataTypeSales},
		})
		assert.True(t, errors.Is(err, context.Canceled))
	})
}
