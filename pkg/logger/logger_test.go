package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestSetLevel(t *testing.T) {
	defer SetLevel("info")

	SetLevel("warn")
	assert.Equal(t, zapcore.WarnLevel, Level())

	SetLevel("DEBUG")
	assert.Equal(t, zapcore.DebugLevel, Level())

	SetLevel("nonsense")
	assert.Equal(t, zapcore.InfoLevel, Level())
}

func TestDefaultLoggerIsUsable(t *testing.T) {
	assert.NotPanics(t, func() { Log.Info("before init") })
}
