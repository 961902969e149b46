package workflow

import "fmt"

// Phase is a stage of the workflow. Phases are ordered; the engine records
// the most recently entered one.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitted
	PhaseAnalyzing
	PhaseSynthesizing
	PhaseDenoising
	PhaseExported
)

var phaseNames = [...]string{
	PhaseIdle:         "idle",
	PhaseSubmitted:    "submitted",
	PhaseAnalyzing:    "analyzing",
	PhaseSynthesizing: "synthesizing",
	PhaseDenoising:    "denoising",
	PhaseExported:     "exported",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

// AtLeast reports whether p is at or beyond other in workflow order.
func (p Phase) AtLeast(other Phase) bool {
	return p >= other
}
