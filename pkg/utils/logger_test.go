package utils

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"debug": LogLevelDebug,
		"INFO":  LogLevelInfo,
		"warn":  LogLevelWarn,
		"error": LogLevelError,
		"fatal": LogLevelFatal,
	}
	for in, want := range tests {
		got, err := ParseLogLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLogLevel("loud")
	assert.Error(t, err)
}

func TestZapLogger_JSONWithFields(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewLogger(&LoggerConfig{Level: LogLevelInfo, Format: LogFormatJSON, Output: &buf})
	require.NoError(t, err)

	l.Debug("hidden")
	l.WithField("app", "ldap").WithFields(map[string]interface{}{"page": 2}).Info("loaded %d records", 12)
	require.NoError(t, l.Sync())

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "loaded 12 records", entry["msg"])
	assert.Equal(t, "ldap", entry["app"])
	assert.EqualValues(t, 2, entry["page"])
}

func TestZapLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewLogger(&LoggerConfig{Level: LogLevelError, Output: &buf})
	require.NoError(t, err)

	l.Warn("first")
	assert.Empty(t, buf.String())

	l.SetLevel(LogLevelDebug)
	l.Debug("second")
	assert.Contains(t, buf.String(), "second")
	assert.Contains(t, buf.String(), "DEBUG")
}

func TestZapLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "connhub.log")
	var buf bytes.Buffer
	l, err := NewLogger(&LoggerConfig{Level: LogLevelInfo, Output: &buf, FilePath: path})
	require.NoError(t, err)
	l.Info("to file")
	require.NoError(t, l.Close())
	assert.FileExists(t, path)
}
