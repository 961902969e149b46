package workflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseIdle, "idle"},
		{PhaseSubmitted, "submitted"},
		{PhaseAnalyzing, "analyzing"},
		{PhaseSynthesizing, "synthesizing"},
		{PhaseDenoising, "denoising"},
		{PhaseExported, "exported"},
		{Phase(42), "phase(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.phase.String())
		})
	}
}

func TestPhaseOrder(t *testing.T) {
	assert.True(t, PhaseAnalyzing.AtLeast(PhaseSubmitted))
	assert.True(t, PhaseSubmitted.AtLeast(PhaseSubmitted))
	assert.False(t, PhaseIdle.AtLeast(PhaseSubmitted))
	assert.True(t, PhaseExported.AtLeast(PhaseDenoising))
}

func TestErrorKinds(t *testing.T) {
	pe := &PreconditionError{Op: "export synthetic data", Message: "no synthetic data has been generated"}
	assert.Equal(t, "cannot export synthetic data: no synthetic data has been generated", pe.Error())
	assert.True(t, errors.Is(pe, ErrPrecondition))
	assert.False(t, errors.Is(pe, ErrValidation))

	ve := ValidationErrors{
		{Field: "name", Message: "name is required"},
		{Field: "data", Message: "data is required"},
	}
	assert.Equal(t, "validation failed:\n  - name: name is required\n  - data: data is required", ve.Error())
	assert.True(t, errors.Is(ve, ErrValidation))
	assert.False(t, errors.Is(ve, ErrPrecondition))
	assert.Empty(t, ValidationErrors{}.Error())
}
