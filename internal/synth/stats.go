// Package synth derives synthetic rows from the per-column statistics of an
// existing dataset.
package synth

import (
	"math"

	"github.com/dbsmedya/synthflow/internal/dataset"
	"github.com/dbsmedya/synthflow/internal/types"
)

// ColumnStats summarizes one column of a source dataset.
type ColumnStats struct {
	Name    string
	Values  []string // non-null values in row order
	Numeric bool     // at least one value parses as a finite number
	Count   int      // size of the numeric subset
	Mean    float64  // over the numeric subset
	StdDev  float64  // population standard deviation over the numeric subset
}

// Stats computes ColumnStats for every column of d, in column order.
func Stats(d *dataset.Dataset) []ColumnStats {
	if d == nil {
		return nil
	}

	columns := d.Columns
	if len(columns) == 0 && len(d.Records) > 0 {
		columns = d.Records[0].Columns()
	}

	out := make([]ColumnStats, 0, len(columns))
	for _, c := range columns {
		out = append(out, columnStats(c, d.Values(c)))
	}
	return out
}

func columnStats(name string, values []string) ColumnStats {
	cs := ColumnStats{Name: name, Values: values}

	var nums []float64
	for _, v := range values {
		if f, ok := types.ParseNumber(v); ok {
			nums = append(nums, f)
		}
	}
	if len(nums) == 0 {
		return cs
	}

	cs.Numeric = true
	cs.Count = len(nums)

	sum := 0.0
	for _, f := range nums {
		sum += f
	}
	cs.Mean = sum / float64(len(nums))

	sq := 0.0
	for _, f := range nums {
		sq += (f - cs.Mean) * (f - cs.Mean)
	}
	cs.StdDev = math.Sqrt(sq / float64(len(nums)))

	return cs
}
