// Package types contains shared types used across multiple packages to avoid import cycles.
package types

// ProcessingResults holds the running counters of a project. Counters are
// overwritten as phases complete and only cleared when a new project starts.
type ProcessingResults struct {
	OriginalCount      int // Rows in the submitted dataset
	SyntheticCount     int // Rows in the latest synthetic dataset
	CleanedCount       int // Rows reported by the latest denoising pass
	QualityImprovement int // Percentage reported by the latest denoising pass
}

// Normalize clamps negative counters to zero.
func (r ProcessingResults) Normalize() ProcessingResults {
	r.OriginalCount = max(r.OriginalCount, 0)
	r.SyntheticCount = max(r.SyntheticCount, 0)
	r.CleanedCount = max(r.CleanedCount, 0)
	r.QualityImprovement = max(r.QualityImprovement, 0)
	return r
}
