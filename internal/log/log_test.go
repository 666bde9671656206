package log

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriterLogger(t *testing.T) {
	var cmds, errs bytes.Buffer

	l, err := NewWriterLogger(&cmds, &errs, "info")
	require.NoError(t, err)

	l.LogCommand("select 3 on")
	l.LogError("move 1 4", errors.New("cyclic parent reference"))
	l.LogDebug("hidden", map[string]any{"rows": 3})
	require.NoError(t, l.Close())

	require.Contains(t, cmds.String(), `command="select 3 on"`)
	require.NotContains(t, cmds.String(), "hidden")
	require.Contains(t, errs.String(), `error="cyclic parent reference"`)
	require.Contains(t, errs.String(), `command="move 1 4"`)
}

func TestWriterLoggerDebugLevel(t *testing.T) {
	var cmds bytes.Buffer

	l, err := NewWriterLogger(&cmds, &bytes.Buffer{}, "debug")
	require.NoError(t, err)

	l.LogDebug("loaded", map[string]any{"rows": 3})
	require.Contains(t, cmds.String(), "rows=3")
}

func TestInvalidLevel(t *testing.T) {
	_, err := NewWriterLogger(&bytes.Buffer{}, &bytes.Buffer{}, "loud")
	require.Error(t, err)
}

func TestFileLogger(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "log")

	l, err := NewLogger(dir, "commands.log", "errors.log", "info")
	require.NoError(t, err)

	l.LogCommand("show all")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(filepath.Join(dir, "commands.log"))
	require.NoError(t, err)
	require.Contains(t, string(data), "show all")
	require.FileExists(t, filepath.Join(dir, "errors.log"))
}
