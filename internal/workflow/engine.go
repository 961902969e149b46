// Package workflow implements the submit → analyze → synthesize → denoise →
// export state machine.
//
// The Engine owns the workflow State. Long-running simulated steps return a
// Task immediately and write their results into the state when they finish;
// if two runs of the same step overlap, whichever finishes last wins.
package workflow

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dbsmedya/synthflow/internal/config"
	"github.com/dbsmedya/synthflow/internal/dataset"
	"github.com/dbsmedya/synthflow/internal/denoise"
	"github.com/dbsmedya/synthflow/internal/logger"
	"github.com/dbsmedya/synthflow/internal/quality"
	"github.com/dbsmedya/synthflow/internal/synth"
	"github.com/dbsmedya/synthflow/internal/types"
)

// Engine drives a single workflow session.
type Engine struct {
	mu         sync.Mutex
	state      State
	generation uint64 // bumped on Submit and Reset so stale tasks do not leak into a new project

	simulation config.SimulationConfig
	export     config.ExportConfig

	rng       types.Rand
	simulator *quality.Simulator
	generator *synth.Generator
	cleaner   *denoise.Cleaner
	logger    *logger.Logger
	now       func() time.Time
	newID     func() string

	tasks sync.WaitGroup
}

// Option customizes an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l *logger.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithRand replaces the random source (the default is seeded from config).
func WithRand(r types.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithClock replaces the clock used for summary dates.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator replaces the project ID generator.
func WithIDGenerator(f func() string) Option {
	return func(e *Engine) { e.newID = f }
}

// NewEngine creates an Engine in the Idle phase.
func NewEngine(cfg *config.Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	e := &Engine{
		simulation: cfg.Simulation,
		export:     cfg.Export,
		logger:     logger.NewNop(),
		now:        time.Now,
		newID:      func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = types.NewRand(cfg.Simulation.Seed)
	}

	e.simulator = quality.NewSimulator(e.rng)
	e.generator = synth.NewGenerator(e.rng, synth.Options{
		MinRows:  cfg.Simulation.MinSyntheticRows,
		MaxRows:  cfg.Simulation.MaxSyntheticRows,
		Steps:    cfg.Simulation.ProgressSteps,
		Interval: cfg.Simulation.ProgressInterval(),
	})
	e.cleaner = denoise.NewCleaner(e.rng, cfg.Simulation.DenoiseDelay())

	return e, nil
}

// Snapshot returns a deep copy of the current state.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.clone()
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Phase
}

// Wait blocks until every task started so far has completed.
func (e *Engine) Wait() {
	e.tasks.Wait()
}

// Reset discards the current project and returns to Idle.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.generation++
	e.state = State{}
	e.logger.Infow("Workflow reset")
}

// Submit validates meta and csvText, parses the data and starts a new
// project in the Submitted phase. On any error the state is left unchanged.
func (e *Engine) Submit(meta ProjectMeta, csvText string) error {
	meta.Name = strings.TrimSpace(meta.Name)
	meta.Source = strings.TrimSpace(meta.Source)
	if errs := validateSubmission(meta, csvText); len(errs) > 0 {
		e.logger.Warnw("Submission rejected", "errors", len(errs))
		return errs
	}

	d, err := dataset.Parse(csvText)
	if err != nil {
		e.logger.Warnw("Submitted data could not be parsed", "error", err)
		return fmt.Errorf("failed to parse submitted data: %w", err)
	}

	meta.ID = e.newID()

	e.mu.Lock()
	defer e.mu.Unlock()

	e.generation++
	e.state = State{
		Project:  meta,
		Phase:    PhaseSubmitted,
		Original: d,
		Results:  types.ProcessingResults{OriginalCount: d.Len()},
	}

	e.logger.WithProject(meta.ID, meta.Name).Infow("Project submitted",
		"data_type", meta.DataType,
		"rows", d.Len(),
		"columns", len(d.Columns),
	)
	return nil
}

// Analyze moves to Analyzing and simulates quality metrics after the
// configured delay. It requires a submitted project.
func (e *Engine) Analyze(ctx context.Context) (*Task[quality.Metrics], error) {
	e.mu.Lock()
	if !e.state.Phase.AtLeast(PhaseSubmitted) {
		e.mu.Unlock()
		return nil, &PreconditionError{Op: "analyze", Message: "no project has been submitted"}
	}
	gen := e.enter(PhaseAnalyzing)
	e.mu.Unlock()

	task := newTask[quality.Metrics]()
	e.tasks.Add(1)
	go func() {
		defer e.tasks.Done()

		if err := sleep(ctx, e.simulation.AnalysisDelay()); err != nil {
			task.complete(quality.Metrics{}, fmt.Errorf("analysis cancelled: %w", err))
			return
		}

		m := e.simulator.Simulate()
		e.apply(gen, func(s *State) { s.Metrics = &m })

		e.logger.Infow("Analysis complete",
			"completeness", m.Completeness,
			"accuracy", m.Accuracy,
			"missing_values", m.MissingValues,
			"outliers", m.Outliers,
			"duplicates", m.Duplicates,
		)
		task.complete(m, nil)
	}()

	return task, nil
}

// Synthesize moves to Synthesizing and generates count synthetic rows from the
// submitted dataset (count <= 0 picks a random count). progress, if non-nil,
// is called from the task goroutine. The finished dataset replaces any
// earlier synthetic dataset.
func (e *Engine) Synthesize(ctx context.Context, count int, progress synth.ProgressFunc) (*Task[*dataset.Dataset], error) {
	e.mu.Lock()
	if e.state.Original.IsEmpty() {
		e.mu.Unlock()
		return nil, &PreconditionError{Op: "synthesize", Message: "no submitted rows to learn from"}
	}
	src := e.state.Original.Clone()
	gen := e.enter(PhaseSynthesizing)
	e.mu.Unlock()

	task := newTask[*dataset.Dataset]()
	e.tasks.Add(1)
	go func() {
		defer e.tasks.Done()

		out, err := e.generator.Generate(ctx, src, count, progress)
		if err != nil {
			e.logger.Warnw("Synthesis failed", "error", err)
			task.complete(nil, err)
			return
		}

		e.apply(gen, func(s *State) {
			s.Synthetic = out
			s.Results.SyntheticCount = out.Len()
		})

		e.logger.Infow("Synthesis complete", "rows", out.Len(), "source_rows", src.Len())
		task.complete(out.Clone(), nil)
	}()

	return task, nil
}

// PreviewSynthetic returns a copy of the synthetic dataset.
func (e *Engine) PreviewSynthetic() (*dataset.Dataset, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Synthetic.IsEmpty() {
		return nil, &PreconditionError{Op: "preview synthetic data", Message: "no synthetic data has been generated"}
	}
	return e.state.Synthetic.Clone(), nil
}

// ExportSynthetic serializes the synthetic dataset as synthetic_data.csv.
func (e *Engine) ExportSynthetic() (Artifact, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Synthetic.IsEmpty() {
		return Artifact{}, &PreconditionError{Op: "export synthetic data", Message: "no synthetic data has been generated"}
	}

	data := dataset.Serialize(e.state.Synthetic)
	e.enter(PhaseExported)

	e.logger.Infow("Synthetic data exported", "file", SyntheticFileName, "rows", e.state.Synthetic.Len(), "bytes", len(data))
	return Artifact{Name: SyntheticFileName, MIMEType: MIMETypeCSV, Data: []byte(data)}, nil
}

// Denoise moves to Denoising and runs the simulated cleaning pass. It
// requires a submitted project.
func (e *Engine) Denoise(ctx context.Context) (*Task[denoise.Report], error) {
	e.mu.Lock()
	if !e.state.Phase.AtLeast(PhaseSubmitted) {
		e.mu.Unlock()
		return nil, &PreconditionError{Op: "denoise", Message: "no project has been submitted"}
	}
	originalCount := e.state.Results.OriginalCount
	gen := e.enter(PhaseDenoising)
	e.mu.Unlock()

	task := newTask[denoise.Report]()
	e.tasks.Add(1)
	go func() {
		defer e.tasks.Done()

		report, err := e.cleaner.Clean(ctx, originalCount)
		if err != nil {
			task.complete(denoise.Report{}, err)
			return
		}

		e.apply(gen, func(s *State) {
			s.Results.CleanedCount = report.CleanedCount
			s.Results.QualityImprovement = report.QualityImprovement
			s.DenoiseSummary = report.Summary
		})

		e.logger.Infow("Denoising complete",
			"cleaned_count", report.CleanedCount,
			"quality_improvement", report.QualityImprovement,
		)
		task.complete(report, nil)
	}()

	return task, nil
}

// ExportSummary renders the project, metrics and counters as
// analysis_summary.json. It is always allowed; before analysis the quality
// section is zeroed.
func (e *Engine) ExportSummary() (Artifact, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	doc := buildSummary(e.state, e.export.Analyst, e.export.DateLayout, e.now())
	data, err := encodeSummary(doc)
	if err != nil {
		return Artifact{}, err
	}

	e.enter(PhaseExported)

	e.logger.Infow("Summary exported", "file", SummaryFileName, "bytes", len(data))
	return Artifact{Name: SummaryFileName, MIMEType: MIMETypeJSON, Data: data}, nil
}

// enter records p as the current phase unless no project exists yet, and
// returns the current project generation. Callers hold e.mu.
func (e *Engine) enter(p Phase) uint64 {
	if prev := e.state.Phase; prev != PhaseIdle {
		e.state.Phase = p
		e.logger.WithPhase(p.String()).Debugw("Phase entered",
			"project_id", e.state.Project.ID,
			"previous", prev.String(),
		)
	}
	return e.generation
}

// apply runs f against the state if the project that started the task is
// still the current one.
func (e *Engine) apply(gen uint64, f func(s *State)) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.generation {
		e.logger.Debugw("Discarding result of a superseded project", "generation", gen)
		return
	}
	f(&e.state)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
