package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestInit(t *testing.T) {
	assert.NotNil(t, logger)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestRun(t *testing.T) {
	t.Run("Invalid flag", func(t *testing.T) {
		err := run(context.Background(), []string{"-no-such-flag"})
		assert.Error(t, err)
	})

	t.Run("Invalid limit", func(t *testing.T) {
		err := run(context.Background(), []string{"-limit", "0"})
		assert.Error(t, err)
	})

	t.Run("Stops on cancellation", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()

		err := run(ctx, []string{"-addr", ":3010", "-disable-rate-limit"})
		assert.NoError(t, err)
	})
}
