package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWritesToFile(t *testing.T) {
	prev, prevDefault := Logger, slog.Default()
	t.Cleanup(func() {
		Logger = prev
		slog.SetDefault(prevDefault)
	})

	path := filepath.Join(t.TempDir(), "logs", "todo.log")
	closeFn, err := Init(path)
	require.NoError(t, err)

	Logger.Info("task added", "index", 3)
	require.NoError(t, closeFn())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "task added")
	assert.Contains(t, string(b), "index=3")
}

func TestInitEmptyPath(t *testing.T) {
	closeFn, err := Init("")
	require.NoError(t, err)
	assert.NoError(t, closeFn())
}
