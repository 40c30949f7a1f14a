package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stdout)
		require.NoError(t, Configure("info", "json"))
	})
	return &buf
}

func TestZerologLoggerMethods(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	buf := capture(t)
	require.NoError(t, Configure("debug", "json"))
	l := NewZerologLogger("test")
	if l == nil {
		t.Fatalf("nil logger")
	}
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Errorf("error")
	assert.Contains(t, buf.String(), "info test")
}

func TestJSONOutputCarriesComponent(t *testing.T) {
	t.Setenv("APP_ENV", "")
	buf := capture(t)
	require.NoError(t, Configure("info", "json"))
	New("yard").Infof("composed %q", "IC 1")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "yard", line["component"])
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, `composed "IC 1"`, line["message"])
	assert.Contains(t, line, "time")
}

func TestConfigureLevel(t *testing.T) {
	t.Setenv("APP_ENV", "")
	buf := capture(t)
	require.NoError(t, Configure("warn", "json"))
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
	l := New("yard")
	l.Infof("hidden")
	l.Warnf("shown")
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	assert.Contains(t, buf.String(), "shown")
}

func TestConfigureConsole(t *testing.T) {
	t.Setenv("APP_ENV", "")
	buf := capture(t)
	require.NoError(t, Configure("info", "console"))
	New("yard").Infof("plain")
	assert.False(t, json.Valid(buf.Bytes()))
	assert.Contains(t, buf.String(), "plain")
}

func TestConfigureRejectsUnknownLevel(t *testing.T) {
	assert.Error(t, Configure("loud", "json"))
}
