package lifted

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestTrace(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zapcore.DebugLevel)
	m := Trace(zap.New(core), "number", Digits())

	out, ok := m.Match(NewCursor("42"))
	require.True(t, ok)
	assert.Equal(t, "42", out.Value)

	_, ok = m.Match(NewCursor("x"))
	require.False(t, ok)

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, "attempt", entries[0].Message)
	assert.Equal(t, "match", entries[1].Message)
	assert.Equal(t, "attempt", entries[2].Message)
	assert.Equal(t, "no match", entries[3].Message)

	fields := entries[1].ContextMap()
	assert.Equal(t, "number", fields["matcher"])
	assert.EqualValues(t, 2, fields["next"])
}

func TestTraceNilLogger(t *testing.T) {
	t.Parallel()
	m := Lazy(Digits)
	assert.Same(t, m, Trace(nil, "number", m))
}
