package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHelpersUsableWithoutSetup(t *testing.T) {
	// Packages log during tests without ever calling Setup; the global must
	// already be live.
	assert.NotNil(t, Log)
	assert.NotPanics(t, func() {
		Debug("debug message", "key", "value")
		Info("info message")
		Warn("warn message")
		Error("error message", "error", assert.AnError)
	})
}

func TestSetupReconfigures(t *testing.T) {
	before := Log
	Setup("production")
	assert.NotNil(t, Log)
	assert.NotSame(t, before, Log)

	Setup("development")
	assert.NotNil(t, Log)
}
