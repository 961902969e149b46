// Package quality simulates data-quality metrics.
//
// The simulator is a stand-in for real profiling: it never reads a dataset,
// it only draws values from fixed ranges.
package quality

import (
	"strconv"

	"github.com/dbsmedya/synthflow/internal/types"
)

// Metrics is the simulated quality profile of a dataset.
type Metrics struct {
	Completeness  int `json:"completeness"`  // percent
	Accuracy      int `json:"accuracy"`      // percent
	MissingValues int `json:"missingValues"` // count
	Outliers      int `json:"outliers"`      // count
	Duplicates    int `json:"duplicates"`    // count
}

// Range is a half-open integer interval [Min, Max).
type Range struct {
	Min int
	Max int
}

// Ranges bounds each simulated metric.
type Ranges struct {
	Completeness  Range
	Accuracy      Range
	MissingValues Range
	Outliers      Range
	Duplicates    Range
}

// DefaultRanges are the bounds the workflow reports against.
var DefaultRanges = Ranges{
	Completeness:  Range{60, 90},
	Accuracy:      Range{70, 95},
	MissingValues: Range{5, 15},
	Outliers:      Range{2, 10},
	Duplicates:    Range{1, 6},
}

// Simulator draws Metrics from a Rand.
type Simulator struct {
	rng    types.Rand
	ranges Ranges
}

// NewSimulator creates a Simulator using DefaultRanges.
func NewSimulator(rng types.Rand) *Simulator {
	return &Simulator{rng: rng, ranges: DefaultRanges}
}

// Simulate returns uniformly drawn metrics.
func (s *Simulator) Simulate() Metrics {
	return Metrics{
		Completeness:  s.draw(s.ranges.Completeness),
		Accuracy:      s.draw(s.ranges.Accuracy),
		MissingValues: s.draw(s.ranges.MissingValues),
		Outliers:      s.draw(s.ranges.Outliers),
		Duplicates:    s.draw(s.ranges.Duplicates),
	}
}

func (s *Simulator) draw(r Range) int {
	return types.IntRange(s.rng, r.Min, r.Max)
}

// Formatted renders the metrics the way the summary document shows them:
// percentages with a trailing "%", counts as plain numbers.
type Formatted struct {
	Completeness  string `json:"completeness"`
	Accuracy      string `json:"accuracy"`
	MissingValues string `json:"missingValues"`
	Outliers      string `json:"outliers"`
	Duplicates    string `json:"duplicates"`
}

// Format converts m into its display form.
func (m Metrics) Format() Formatted {
	return Formatted{
		Completeness:  strconv.Itoa(m.Completeness) + "%",
		Accuracy:      strconv.Itoa(m.Accuracy) + "%",
		MissingValues: strconv.Itoa(m.MissingValues),
		Outliers:      strconv.Itoa(m.Outliers),
		Duplicates:    strconv.Itoa(m.Duplicates),
	}
}
