package logger

import (
	"errors"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"":        Info,
		"debug":   Debug,
		" WARN ":  Warn,
		"warning": Warn,
		"error":   Error,
		"bogus":   Info,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "input %q", in)
	}
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatText, ParseFormat("console"))
}

func TestWithMergesFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := FromZap(zap.New(core)).With(map[string]any{"request_id": "abc"})

	l.Info("hola", map[string]any{"path": "/pets", "": "ignorado"})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "hola", entry.Message)
	ctx := entry.ContextMap()
	assert.Equal(t, "abc", ctx["request_id"])
	assert.Equal(t, "/pets", ctx["path"])
	assert.NotContains(t, ctx, "")
}

func TestErrorFieldExpandsOopsCode(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := FromZap(zap.New(core))

	err := oops.Code("PET_INSERT_FAILED").With("pet_name", "Rex").Wrap(errors.New("boom"))
	l.Error("create failed", map[string]any{"error": err})

	require.Equal(t, 1, logs.Len())
	ctx := logs.All()[0].ContextMap()
	assert.Contains(t, ctx["error"], "boom")
	assert.Equal(t, "PET_INSERT_FAILED", ctx["code"])
	assert.Contains(t, ctx, "context")
}

func TestPlainErrorHasNoCode(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	FromZap(zap.New(core)).Warn("x", map[string]any{"error": errors.New("plain")})

	ctx := logs.All()[0].ContextMap()
	assert.Equal(t, "plain", ctx["error"])
	assert.NotContains(t, ctx, "code")
}

func TestNopDoesNotPanic(t *testing.T) {
	l := Nop()
	l.With(map[string]any{"a": 1}).Debug("nada", nil)
	Sync(l)
}
