package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
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

func TestNewLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "device-trust-server")

	l.Info().Msg("hello")

	entry := decode(t, &buf)
	assert.Equal(t, "device-trust-server", entry["role"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry["func"], "TestNewLogger_Fields")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNewClientLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.log")
	t.Setenv(LogFileEnv, path)

	l := NewClientLogger("device-trust-client")
	l.Info().Msg("into the file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "into the file")
	assert.Contains(t, string(data), `"role":"device-trust-client"`)
}

func TestNewClientLogger_UnwritablePathFallsBack(t *testing.T) {
	t.Setenv(LogFileEnv, filepath.Join(t.TempDir(), "missing", "client.log"))
	assert.NotNil(t, NewClientLogger("client"))
}

func TestNop_DiscardsOutput(t *testing.T) {
	l := Nop()
	assert.Equal(t, zerolog.Disabled, l.GetLevel())
	assert.NotPanics(t, func() { l.Info().Msg("dropped") })
}

func TestChildAndTabLoggers(t *testing.T) {
	var buf bytes.Buffer
	parent := newLogger(&buf, "client")

	child := parent.GetChildLogger()
	child.Logger = child.With().Str("component", "flow").Logger()
	child.Info().Msg("child")
	entry := decode(t, &buf)
	assert.Equal(t, "flow", entry["component"])
	assert.Equal(t, "client", entry["role"])

	buf.Reset()
	parent.Info().Msg("parent")
	assert.NotContains(t, decode(t, &buf), "component")

	buf.Reset()
	parent.WithTab("tab-1").Info().Msg("tab")
	entry = decode(t, &buf)
	assert.Equal(t, "tab-1", entry["tab"])
	assert.Equal(t, "client", entry["role"])
}

func TestFromContextAndRequest(t *testing.T) {
	var buf bytes.Buffer
	attached := zerolog.New(&buf).With().Str("request_id", "r-1").Logger()
	ctx := attached.WithContext(context.Background())

	FromContext(ctx).Info().Msg("ctx")
	assert.Equal(t, "r-1", decode(t, &buf)["request_id"])

	buf.Reset()
	r := httptest.NewRequest("GET", "/login", nil).WithContext(ctx)
	FromRequest(r).Info().Msg("req")
	assert.Equal(t, "r-1", decode(t, &buf)["request_id"])

	assert.NotNil(t, FromContext(context.Background()))
}
