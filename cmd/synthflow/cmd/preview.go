package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/synthflow/internal/config"
	"github.com/dbsmedya/synthflow/internal/dataset"
	"github.com/dbsmedya/synthflow/internal/synth"
	"github.com/dbsmedya/synthflow/internal/types"
)

var (
	previewInput string
	previewRows  int
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show how an input file will be parsed",
	Long: `Preview parses an input file the same way run does and shows the first
rows together with the per-column statistics used for synthesis.

The preview shows:
  - Detected columns and row count
  - The first rows as a table (missing trailing fields appear as NULL)
  - Column statistics (numeric mean and standard deviation, or distinct text values)

Example:
  synthflow preview --input sales.csv --rows 5`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringVarP(&previewInput, "input", "i", "",
		"CSV or Excel file to preview, or - for stdin (required)")
	previewCmd.MarkFlagRequired("input")
	previewCmd.Flags().IntVar(&previewRows, "rows", 0,
		"Number of rows to show (0 uses the configured preview rows)")

	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(config.Overrides{})
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	rows := previewRows
	if rows <= 0 {
		rows = cfg.Preview.Rows
	}

	text, err := readInput(previewInput)
	if err != nil {
		return err
	}
	d, err := dataset.Parse(text)
	if err != nil {
		return err
	}

	printPreview(previewInput, d, rows)
	return nil
}

func printPreview(name string, d *dataset.Dataset, rows int) {
	printHeader("Preview: %s", name)
	printField("Columns", len(d.Columns))
	printField("Rows", d.Len())

	if rows > 0 && !d.IsEmpty() {
		fmt.Fprintln(outputWriter)
		printSection("Data")
		printDataset(d, rows)
	}

	fmt.Fprintln(outputWriter)
	printSection("Column Statistics")
	statRows := make([][]string, 0, len(d.Columns))
	for _, cs := range synth.Stats(d) {
		statRows = append(statRows, columnStatsRow(cs))
	}
	for _, l := range renderTable([]string{"column", "kind", "values", "mean", "std dev"}, statRows) {
		fmt.Fprintf(outputWriter, "  %s\n", l)
	}
}

func columnStatsRow(cs synth.ColumnStats) []string {
	if cs.Numeric {
		return []string{cs.Name, "numeric", fmt.Sprint(cs.Count), types.FormatFixed2(cs.Mean), types.FormatFixed2(cs.StdDev)}
	}
	distinct := make(map[string]struct{}, len(cs.Values))
	for _, v := range cs.Values {
		distinct[v] = struct{}{}
	}
	kind := "text"
	if len(cs.Values) == 0 {
		kind = "empty"
	}
	return []string{cs.Name, kind, fmt.Sprintf("%d (%d distinct)", len(cs.Values), len(distinct)), "-", "-"}
}
