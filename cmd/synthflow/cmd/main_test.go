package cmd

import (
	"os"
	"testing"

	"github.com/gookit/color"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	color.Disable()
	os.Exit(m.Run())
}

func TestExecute(t *testing.T) {
	// Execute calls os.Exit on error, so only its presence is checked here.
	assert.NotNil(t, Execute)
}

func TestVersionVariables(t *testing.T) {
	assert.NotEmpty(t, Version, "Version should not be empty")
	assert.NotEmpty(t, Commit, "Commit should not be empty")
}

func TestCLIFlagsVariables(t *testing.T) {
	assert.Equal(t, "synthflow.yaml", cfgFile, "cfgFile should default to synthflow.yaml")
	assert.Equal(t, "", logLevel)
	assert.Equal(t, "", logFormat)
	assert.Equal(t, uint64(0), seed)
	assert.False(t, instant)
	assert.False(t, noColor)
}

func TestCommandVariables(t *testing.T) {
	assert.Equal(t, "", runInput, "runInput should default to empty")
	assert.Equal(t, 0, runRows)
	assert.False(t, runXLSX)
	assert.Equal(t, "", previewInput, "previewInput should default to empty")
	assert.Equal(t, 0, previewRows)
}
