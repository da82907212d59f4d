package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	l, err := New("debug", "console")
	require.NoError(t, err)
	assert.NotNil(t, l.Logger)

	l, err = New("not-a-level", "")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zap.DebugLevel))
	assert.True(t, l.Core().Enabled(zap.InfoLevel))
}

func TestContextMethodsAttachRequestID(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{Logger: zap.New(core)}

	ctx := ContextWithRequestID(context.Background(), "req-42")
	l.InfoContext(ctx, "hello", StringField("ticker", "AAPL"))
	l.ErrorContext(context.Background(), "no id")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "req-42", entries[0].ContextMap()["request_id"])
	assert.Equal(t, "AAPL", entries[0].ContextMap()["ticker"])
	_, ok := entries[1].ContextMap()["request_id"]
	assert.False(t, ok)
}
