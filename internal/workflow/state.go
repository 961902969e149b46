package workflow

import (
	"github.com/dbsmedya/synthflow/internal/dataset"
	"github.com/dbsmedya/synthflow/internal/quality"
	"github.com/dbsmedya/synthflow/internal/types"
)

// State is the workflow's single source of truth. The engine owns it;
// callers only ever see copies returned by Engine.Snapshot.
type State struct {
	Project        ProjectMeta
	Phase          Phase
	Original       *dataset.Dataset
	Synthetic      *dataset.Dataset
	Metrics        *quality.Metrics // nil until an analysis completes
	DenoiseSummary string
	Results        types.ProcessingResults
}

func (s State) clone() State {
	out := s
	out.Original = s.Original.Clone()
	out.Synthetic = s.Synthetic.Clone()
	if s.Metrics != nil {
		m := *s.Metrics
		out.Metrics = &m
	}
	return out
}
