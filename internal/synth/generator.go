package synth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dbsmedya/synthflow/internal/dataset"
	"github.com/dbsmedya/synthflow/internal/types"
)

// ErrEmptyDataset is returned when there are no source rows to learn from.
var ErrEmptyDataset = fmt.Errorf("source dataset has no rows: %w", types.ErrPrecondition)

// ProgressFunc receives the completed percentage. The last call is always 100.
type ProgressFunc func(percent int)

// Options tunes a Generator.
type Options struct {
	MinRows  int           // inclusive lower bound for the default row count
	MaxRows  int           // exclusive upper bound for the default row count
	Steps    int           // number of chunks, and so of progress updates
	Interval time.Duration // pause between chunks
}

// DefaultOptions matches the stock workflow: 30–79 rows in ten steps.
func DefaultOptions() Options {
	return Options{MinRows: 30, MaxRows: 80, Steps: 10}
}

// Generator produces synthetic datasets.
type Generator struct {
	rng  types.Rand
	opts Options
}

// NewGenerator creates a Generator. Steps below types.MinProgressSteps are raised to it.
func NewGenerator(rng types.Rand, opts Options) *Generator {
	if opts.Steps < types.MinProgressSteps {
		opts.Steps = types.MinProgressSteps
	}
	if opts.MinRows <= 0 {
		opts.MinRows = DefaultOptions().MinRows
	}
	if opts.MaxRows <= opts.MinRows {
		opts.MaxRows = opts.MinRows + 1
	}
	return &Generator{rng: rng, opts: opts}
}

// Generate derives count synthetic rows from src. A count of zero or less
// picks one uniformly from [MinRows, MaxRows).
//
// Rows are produced in Steps chunks and progress is reported after each one.
// Cancelling ctx aborts generation and returns ctx.Err().
func (g *Generator) Generate(ctx context.Context, src *dataset.Dataset, count int, progress ProgressFunc) (*dataset.Dataset, error) {
	if src.IsEmpty() {
		return nil, ErrEmptyDataset
	}
	if count <= 0 {
		count = types.IntRange(g.rng, g.opts.MinRows, g.opts.MaxRows)
	}

	stats := Stats(src)
	columns := make([]string, len(stats))
	for i, cs := range stats {
		columns[i] = cs.Name
	}

	out := dataset.New(columns)
	out.Records = make([]dataset.Record, 0, count)

	steps := g.opts.Steps
	for step := 0; step < steps; step++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("synthesis cancelled at %d%%: %w", step*100/steps, err)
		}

		end := (step + 1) * count / steps
		for len(out.Records) < end {
			out.Append(g.row(columns, stats))
		}

		if progress != nil {
			progress((step + 1) * 100 / steps)
		}

		if step < steps-1 {
			if err := g.pause(ctx); err != nil {
				return nil, fmt.Errorf("synthesis cancelled at %d%%: %w", (step+1)*100/steps, err)
			}
		}
	}

	return out, nil
}

func (g *Generator) pause(ctx context.Context) error {
	if g.opts.Interval <= 0 {
		return nil
	}
	timer := time.NewTimer(g.opts.Interval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (g *Generator) row(columns []string, stats []ColumnStats) dataset.Record {
	r := dataset.NewRecord(columns)
	for _, cs := range stats {
		r.Set(cs.Name, g.value(cs))
	}
	return r
}

// value draws one synthetic cell for a column.
func (g *Generator) value(cs ColumnStats) string {
	switch {
	case cs.Numeric:
		if cs.StdDev == 0 {
			return types.FormatFixed2(cs.Mean)
		}
		return types.FormatFixed2(cs.Mean + (g.rng.Float64()-0.5)*2*cs.StdDev)
	case len(cs.Values) > 0:
		orig := cs.Values[g.rng.IntN(len(cs.Values))]
		return "Synthetic_" + orig + "_" + strconv.Itoa(g.rng.IntN(1000))
	default:
		return "Synthetic_" + strconv.Itoa(g.rng.IntN(10000))
	}
}
