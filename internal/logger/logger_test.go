package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_DefaultLevel(t *testing.T) {
	log, err := New(false, false)
	require.NoError(t, err)
	defer func() { _ = log.Sync() }()

	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_DebugLevel(t *testing.T) {
	log, err := New(false, true)
	require.NoError(t, err)
	defer func() { _ = log.Sync() }()

	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_JSONEncoding(t *testing.T) {
	log, err := New(true, false)
	require.NoError(t, err)
	defer func() { _ = log.Sync() }()
	assert.NotNil(t, log)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abc...", Truncate("abcdefgh", 3))
	assert.Equal(t, "", Truncate("anything", 0))
	assert.Equal(t, "trimmed", Truncate("  trimmed  ", 10))
}

func TestTruncate_MultibyteSafe(t *testing.T) {
	assert.Equal(t, "héllo...", Truncate("héllo wörld", 5))
}
