package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/synthflow/internal/config"
	"github.com/dbsmedya/synthflow/internal/export"
	"github.com/dbsmedya/synthflow/internal/logger"
	"github.com/dbsmedya/synthflow/internal/shutdown"
	"github.com/dbsmedya/synthflow/internal/spreadsheet"
	"github.com/dbsmedya/synthflow/internal/workflow"
)

var (
	runInput          string
	runName           string
	runType           string
	runSource         string
	runRows           int
	runOut            string
	runXLSX           bool
	runSkipSynthesize bool
	runSkipDenoise    bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full workflow for one project",
	Long: `Run submits a project, analyzes it, optionally synthesizes extra rows and
runs the denoising pass, then writes the artifacts to the export directory.

The run follows these steps:
  1. Submit the project and parse the input data
  2. Simulate data quality metrics
  3. Generate synthetic rows from per-column statistics
  4. Run the simulated denoising pass
  5. Export synthetic_data.csv and analysis_summary.json

Example:
  synthflow run --input sales.csv --name "Q1 sales" --type sales --out ./out`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runInput, "input", "i", "",
		"CSV or Excel file to submit, or - for stdin (required)")
	runCmd.MarkFlagRequired("input")
	runCmd.Flags().StringVarP(&runName, "name", "n", "",
		"Project name (required)")
	runCmd.MarkFlagRequired("name")
	runCmd.Flags().StringVarP(&runType, "type", "t", "",
		"Data type: "+workflow.DataTypeList()+" (required)")
	runCmd.MarkFlagRequired("type")
	runCmd.Flags().StringVar(&runSource, "source", "",
		"Free-form description of where the data came from")

	runCmd.Flags().IntVar(&runRows, "rows", 0,
		"Number of synthetic rows (0 picks a random count)")
	runCmd.Flags().StringVarP(&runOut, "out", "o", "",
		"Override export directory")
	runCmd.Flags().BoolVar(&runXLSX, "xlsx", false,
		"Also export the synthetic data as an Excel workbook")
	runCmd.Flags().BoolVar(&runSkipSynthesize, "skip-synthesize", false,
		"Do not generate synthetic rows")
	runCmd.Flags().BoolVar(&runSkipDenoise, "skip-denoise", false,
		"Do not run the denoising pass")

	rootCmd.AddCommand(runCmd)
}

// runOptions is the flag state of a run, separated from cobra for testing.
type runOptions struct {
	Input          string
	Meta           workflow.ProjectMeta
	Rows           int
	SkipSynthesize bool
	SkipDenoise    bool
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(config.Overrides{OutputDir: runOut, XLSX: runXLSX})
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := shutdown.WithCallback(parent, func(sig os.Signal) {
		log.Warnw("Received shutdown signal - cancelling workflow", "signal", sig.String())
	})
	defer stop()

	opts := runOptions{
		Input: runInput,
		Meta: workflow.ProjectMeta{
			Name:     runName,
			DataType: workflow.DataType(runType),
			Source:   runSource,
		},
		Rows:           runRows,
		SkipSynthesize: runSkipSynthesize,
		SkipDenoise:    runSkipDenoise,
	}

	_, err = executeRun(ctx, cfg, log, opts)
	if errors.Is(err, context.Canceled) {
		log.Warn("Workflow cancelled by user")
		return nil
	}
	return err
}

// executeRun drives the engine through one project and writes its artifacts.
func executeRun(ctx context.Context, cfg *config.Config, log *logger.Logger, opts runOptions) ([]export.Written, error) {
	engine, err := workflow.NewEngine(cfg, workflow.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("failed to create workflow engine: %w", err)
	}
	defer engine.Wait()

	if opts.Meta.Source == "" && opts.Input != "-" {
		opts.Meta.Source = filepath.Base(opts.Input)
	}

	text, err := readInput(opts.Input)
	if err != nil {
		return nil, err
	}
	if err := engine.Submit(opts.Meta, text); err != nil {
		return nil, fmt.Errorf("submission rejected: %w", err)
	}

	snap := engine.Snapshot()
	printHeader("Project: %s", snap.Project.Name)
	printField("Project ID", snap.Project.ID)
	printField("Data type", snap.Project.DataType)
	printField("Rows submitted", snap.Results.OriginalCount)
	printField("Columns", len(snap.Original.Columns))

	// Analysis
	fmt.Fprintln(outputWriter)
	printSection("Data Quality")
	analysis, err := engine.Analyze(ctx)
	if err != nil {
		return nil, err
	}
	metrics, err := analysis.Wait(ctx)
	if err != nil {
		return nil, err
	}
	f := metrics.Format()
	printField("Completeness", f.Completeness)
	printField("Accuracy", f.Accuracy)
	printField("Missing values", f.MissingValues)
	printField("Outliers", f.Outliers)
	printField("Duplicates", f.Duplicates)

	// Synthesis
	if !opts.SkipSynthesize {
		fmt.Fprintln(outputWriter)
		printSection("Synthetic Data")
		if err := synthesize(ctx, engine, cfg, opts.Rows); err != nil {
			return nil, err
		}
	}

	// Denoising
	if !opts.SkipDenoise {
		fmt.Fprintln(outputWriter)
		printSection("Denoising")
		denoising, err := engine.Denoise(ctx)
		if err != nil {
			return nil, err
		}
		report, err := denoising.Wait(ctx)
		if err != nil {
			return nil, err
		}
		printField("Noise removed", fmt.Sprintf("%d%%", report.NoiseRemoved))
		printField("Accuracy improved", fmt.Sprintf("%d%%", report.AccuracyImproved))
		printField("Records cleaned", report.CleanedCount)
		printField("Quality improvement", fmt.Sprintf("%d%%", report.QualityImprovement))
		printSuccess("%s", report.Summary)
	}

	// Export
	artifacts, err := collectArtifacts(engine, cfg)
	if err != nil {
		return nil, err
	}

	sink, err := export.NewDirSink(cfg.Export.Dir, log)
	if err != nil {
		return nil, err
	}
	written, err := sink.WriteAll(artifacts...)
	if err != nil {
		return written, fmt.Errorf("export failed: %w", err)
	}

	fmt.Fprintln(outputWriter)
	printSection("Artifacts")
	for _, w := range written {
		if err := export.Verify(w); err != nil {
			return written, err
		}
		printField(w.Name, fmt.Sprintf("%s (%d bytes, sha256 %s)", w.Path, w.Bytes, w.SHA256[:12]))
	}

	fmt.Fprintln(outputWriter)
	printSuccess("Workflow complete (phase: %s)", engine.Phase())
	return written, nil
}

func synthesize(ctx context.Context, engine *workflow.Engine, cfg *config.Config, rows int) error {
	task, err := engine.Synthesize(ctx, rows, func(p int) {
		fmt.Fprintf(outputWriter, "\r  %s", color.Cyan.Sprint(progressBar(p, 30)))
	})
	if errors.Is(err, workflow.ErrPrecondition) {
		printWarning("Skipping synthesis: %v", err)
		return nil
	}
	if err != nil {
		return err
	}

	if _, err := task.Wait(ctx); err != nil {
		fmt.Fprintln(outputWriter)
		return err
	}
	fmt.Fprintln(outputWriter)

	preview, err := engine.PreviewSynthetic()
	if err != nil {
		return err
	}
	printField("Rows generated", preview.Len())
	if cfg.Preview.Rows > 0 {
		printDataset(preview, cfg.Preview.Rows)
	}
	return nil
}

// collectArtifacts gathers the exports available in the engine's current
// state. The summary is always produced.
func collectArtifacts(engine *workflow.Engine, cfg *config.Config) ([]workflow.Artifact, error) {
	var artifacts []workflow.Artifact

	csvArtifact, err := engine.ExportSynthetic()
	switch {
	case err == nil:
		artifacts = append(artifacts, csvArtifact)

		if cfg.Export.XLSX {
			synthetic, err := engine.PreviewSynthetic()
			if err != nil {
				return nil, err
			}
			wb, err := spreadsheet.Workbook(synthetic)
			if err != nil {
				return nil, err
			}
			artifacts = append(artifacts, wb)
		}
	case errors.Is(err, workflow.ErrPrecondition):
		// nothing synthesized
	default:
		return nil, err
	}

	summary, err := engine.ExportSummary()
	if err != nil {
		return nil, err
	}
	return append(artifacts, summary), nil
}
