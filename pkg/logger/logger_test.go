package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNewWithLevel(t *testing.T) {
	log := NewWithLevel("crcsum", "warn")
	assert.False(t, log.Desugar().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Desugar().Core().Enabled(zapcore.WarnLevel))
}

func TestUnknownLevelDefaultsToInfo(t *testing.T) {
	log := NewWithLevel("crcsum", "loud")
	assert.True(t, log.Desugar().Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.Desugar().Core().Enabled(zapcore.DebugLevel))
}

func TestNew(t *testing.T) {
	assert.True(t, New("crcsum").Desugar().Core().Enabled(zapcore.InfoLevel))
	assert.False(t, NewNop().Desugar().Core().Enabled(zapcore.ErrorLevel))
}
