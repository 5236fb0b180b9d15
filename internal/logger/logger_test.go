package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

// ─────────────────────────────────────────────
// constructors
// ─────────────────────────────────────────────

func TestNewLogger_EntryShape(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "collab-forms-server")

	l.Info().Str("form_id", "f1").Msg("form loaded")

	entry := decode(t, &buf)
	assert.Equal(t, "collab-forms-server", entry["role"])
	assert.Equal(t, "f1", entry["form_id"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry["func"], "TestNewLogger_EntryShape", "caller is reported as the function name")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		new  func() *Logger
	}{
		{name: "json", new: func() *Logger { return NewLogger("server") }},
		{name: "console", new: func() *Logger { return NewConsoleLogger("formctl") }},
		{name: "nop", new: Nop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotNil(t, tt.new())
		})
	}
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Error().Msg("submission failed")

	assert.Empty(t, buf.String())
}

func TestGetChildLogger(t *testing.T) {
	var buf bytes.Buffer
	parent := newLogger(&buf, "collab-forms-server")

	child := parent.GetChildLogger()
	require.NotSame(t, parent, child)
	child.Logger = child.With().Str("user_id", "u1").Logger()

	child.Info().Msg("signed in")
	entry := decode(t, &buf)
	assert.Equal(t, "collab-forms-server", entry["role"], "child keeps parent fields")
	assert.Equal(t, "u1", entry["user_id"])

	buf.Reset()
	parent.Info().Msg("parent line")
	assert.NotContains(t, decode(t, &buf), "user_id", "parent is not enriched by the child")
}

// ─────────────────────────────────────────────
// context helpers
// ─────────────────────────────────────────────

func TestFromContext(t *testing.T) {
	t.Run("nothing attached", func(t *testing.T) {
		require.NotNil(t, FromContext(context.Background()))
	})

	t.Run("attached with WithContext", func(t *testing.T) {
		var buf bytes.Buffer
		l := &Logger{zerolog.New(&buf).With().Str("trace_id", "abc").Logger()}

		FromContext(l.WithContext(context.Background())).Info().Msg("hello")

		assert.Equal(t, "abc", decode(t, &buf)["trace_id"])
	})
}

func TestFromRequest(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{zerolog.New(&buf).With().Str("trace_id", "req-1").Logger()}

	req := httptest.NewRequest(http.MethodPost, "/forms/f1", nil)
	require.NotNil(t, FromRequest(req))

	req = req.WithContext(l.WithContext(req.Context()))
	FromRequest(req).Info().Msg("submit")

	assert.Equal(t, "req-1", decode(t, &buf)["trace_id"])
}
