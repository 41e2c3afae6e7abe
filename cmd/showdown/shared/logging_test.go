package shared

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level string
		debug bool
		want  log.Level
	}{
		{"", false, log.InfoLevel},
		{"warn", false, log.WarnLevel},
		{"error", true, log.DebugLevel},
	}
	for _, tt := range tests {
		logger, err := newLogger(&bytes.Buffer{}, tt.level, tt.debug)
		require.NoError(t, err)
		assert.Equal(t, tt.want, logger.GetLevel())
	}

	_, err := newLogger(&bytes.Buffer{}, "chatty", false)
	assert.Error(t, err)
}
