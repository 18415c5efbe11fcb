package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		t.Run(format, func(t *testing.T) {
			l, err := New(zapcore.WarnLevel, format, "shortbot")
			require.NoError(t, err)
			assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
			assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
		})
	}
}

func TestBotLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	bl := NewBotLogger(zap.New(core))

	bl.Printf("Endpoint: %s, response: %s\n", "getUpdates", "ok")
	bl.Println("stopping", "updates")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "Endpoint: getUpdates, response: ok", entries[0].Message)
	assert.Equal(t, "stopping updates", entries[1].Message)
	assert.Equal(t, "tgbotapi", entries[0].LoggerName)
}
