package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/synthflow/internal/config"
	"github.com/dbsmedya/synthflow/internal/dataset"
	"github.com/dbsmedya/synthflow/internal/synth"
)

func TestPreviewCommandStructure(t *testing.T) {
	assert.Equal(t, "preview", previewCmd.Use)
	assert.NotEmpty(t, previewCmd.Short)
	assert.Contains(t, previewCmd.Long, "Example:")

	input := previewCmd.Flags().Lookup("input")
	require.NotNil(t, input)
	assert.Equal(t, "i", input.Shorthand)
	assert.NotNil(t, previewCmd.Flags().Lookup("rows"))
}

func TestRenderTable(t *testing.T) {
	lines := renderTable([]string{"id", "city"}, [][]string{
		{"1", "東京"},
		{"22", "Oslo"},
		{"3"},
	})
	require.Len(t, lines, 5)

	assert.Equal(t, "id | city", lines[0])
	assert.Equal(t, "---+-----", lines[1])
	assert.Equal(t, "1  | 東京", lines[2])
	assert.Equal(t, "22 | Oslo", lines[3])
	assert.Equal(t, "3  |", lines[4], "trailing padding is trimmed")

	for _, l := range lines[:4] {
		assert.Equal(t, runewidth.StringWidth(lines[0]), runewidth.StringWidth(l), "line %q", l)
	}
}

func TestRenderTableTruncates(t *testing.T) {
	long := strings.Repeat("x", 40)
	lines := renderTable([]string{"v"}, [][]string{{long}})
	assert.Equal(t, maxCellWidth, runewidth.StringWidth(lines[2]))
	assert.True(t, strings.HasSuffix(lines[2], "…"))
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		percent int
		want    string
	}{
		{0, "[..........]   0%"},
		{50, "[#####.....]  50%"},
		{100, "[##########] 100%"},
		{130, "[##########] 100%"},
		{-5, "[..........]   0%"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, progressBar(tt.percent, 10))
	}
}

func TestColumnStatsRow(t *testing.T) {
	d, err := dataset.Parse("x,team,blank\n10,red\n20,blue\n30,red")
	require.NoError(t, err)
	stats := synth.Stats(d)

	assert.Equal(t, []string{"x", "numeric", "3", "20.00", "8.16"}, columnStatsRow(stats[0]))
	assert.Equal(t, []string{"team", "text", "3 (2 distinct)", "-", "-"}, columnStatsRow(stats[1]))
	assert.Equal(t, []string{"blank", "empty", "0 (0 distinct)", "-", "-"}, columnStatsRow(stats[2]))
}

func TestPrintPreview(t *testing.T) {
	d, err := dataset.Parse("a,b,c\n1,2,3\n4,5\n6,7,8")
	require.NoError(t, err)

	var buf bytes.Buffer
	setOutputWriter(&buf)
	defer resetOutputWriter()

	printPreview("data.csv", d, 2)

	out := buf.String()
	assert.Contains(t, out, "Preview: data.csv")
	assert.Contains(t, out, "4 | 5 | NULL")
	assert.Contains(t, out, "... 1 more rows")
	assert.Contains(t, out, "[Column Statistics]")
	assert.NotContains(t, out, "6 | 7 | 8")
}

func TestRunPreview(t *testing.T) {
	withFlags(t, filepath.Join(t.TempDir(), "absent.yaml"), config.Overrides{})
	input := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(input, []byte("name,score\nAlice,9\nBob,7"), 0o644))

	origInput, origRows := previewInput, previewRows
	defer func() { previewInput, previewRows = origInput, origRows }()
	previewInput = input
	previewRows = 0

	var buf bytes.Buffer
	setOutputWriter(&buf)
	defer resetOutputWriter()

	require.NoError(t, runPreview(previewCmd, nil))
	assert.Contains(t, buf.String(), "Alice | 9")

	previewInput = filepath.Join(t.TempDir(), "missing.csv")
	assert.Error(t, runPreview(previewCmd, nil))
}
