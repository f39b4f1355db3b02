package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/acharjeesuvo/EvalMind/internal/config"
)

func TestNew(t *testing.T) {
	logger, err := New(config.Log{Level: "debug", Development: true})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))

	logger, err = New(config.Log{Level: "warn"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.InfoLevel))
	assert.True(t, logger.Core().Enabled(zap.WarnLevel))
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(config.Log{Level: "loud"})
	assert.Error(t, err)
}
