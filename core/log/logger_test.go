package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisabled(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(ParseLevel("off"))
	Error("hidden")
	assert.Empty(t, buf.String())
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(slog.LevelInfo)
	defer SetLevel(ParseLevel("off"))

	Debug("not shown")
	Info("shown", "key", "value")
	assert.NotContains(t, buf.String(), "not shown")
	assert.Contains(t, buf.String(), "msg=shown key=value")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.Level(1000), ParseLevel(""))
}
