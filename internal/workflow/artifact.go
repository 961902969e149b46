package workflow

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dbsmedya/synthflow/internal/quality"
	"github.com/dbsmedya/synthflow/internal/types"
)

const (
	SyntheticFileName = "synthetic_data.csv"
	SummaryFileName   = "analysis_summary.json"

	MIMETypeCSV  = "text/csv"
	MIMETypeJSON = "application/json"
)

// Artifact is a named, typed blob ready to be handed to a file-save mechanism.
type Artifact struct {
	Name     string
	MIMEType string
	Data     []byte
}

// SummaryDocument is the layout of analysis_summary.json.
type SummaryDocument struct {
	ProjectInfo ProjectInfo       `json:"projectInfo"`
	DataQuality quality.Formatted `json:"dataQuality"`
	Processing  ProcessingSummary `json:"processing"`
}

// ProjectInfo is the projectInfo section of the summary.
type ProjectInfo struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	AnalysisDate string `json:"analysisDate"`
	Analyst      string `json:"analyst"`
}

// ProcessingSummary is the processing section of the summary.
type ProcessingSummary struct {
	OriginalCount      int `json:"originalCount"`
	SyntheticCount     int `json:"syntheticCount"`
	CleanedCount       int `json:"cleanedCount"`
	QualityImprovement int `json:"qualityImprovement"`
}

func buildSummary(s State, analyst, dateLayout string, now time.Time) SummaryDocument {
	var m quality.Metrics
	if s.Metrics != nil {
		m = *s.Metrics
	}
	r := s.Results.Normalize()

	return SummaryDocument{
		ProjectInfo: ProjectInfo{
			Name:         s.Project.Name,
			Type:         string(s.Project.DataType),
			AnalysisDate: now.Format(dateLayout),
			Analyst:      analyst,
		},
		DataQuality: m.Format(),
		Processing:  processingSummary(r),
	}
}

func processingSummary(r types.ProcessingResults) ProcessingSummary {
	return ProcessingSummary{
		OriginalCount:      r.OriginalCount,
		SyntheticCount:     r.SyntheticCount,
		CleanedCount:       r.CleanedCount,
		QualityImprovement: r.QualityImprovement,
	}
}

func encodeSummary(doc SummaryDocument) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode summary: %w", err)
	}
	return data, nil
}
