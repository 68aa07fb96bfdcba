package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/taskbin/internal/config"
	"github.com/Makepad-fr/taskbin/internal/model"
	"github.com/Makepad-fr/taskbin/internal/store"
)

type harness struct {
	dir    string
	file   string
	config string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("TODO_FILE", "")
	t.Setenv("TODO_THEME", "")
	return &harness{
		dir:    dir,
		file:   filepath.Join(dir, store.DefaultFileName),
		config: filepath.Join(dir, "missing.yaml"),
	}
}

func (h *harness) run(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	full := append([]string{}, args...)
	full = append(full, "--file", h.file, "--config", h.config, "--theme", "mono")
	code = Run(full, Options{Stdout: &out, Stderr: &errOut})
	return code, out.String(), errOut.String()
}

func (h *harness) tasks(t *testing.T) []model.Task {
	t.Helper()
	got, err := store.ReadFile(h.file, 0)
	require.NoError(t, err)
	return got
}

func TestAddAndList(t *testing.T) {
	h := newHarness(t)

	code, out, _ := h.run("add", "Buy", "milk")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, "added #1")

	code, _, _ = h.run("add", "-p", "high", "--due", "2024-01-01", "--done", "Pay rent")
	require.Equal(t, ExitOK, code)

	tasks := h.tasks(t)
	require.Len(t, tasks, 2)
	assert.Equal(t, model.Task{Priority: model.PriorityLow, Description: "Buy milk", DueDate: model.UnsetDueDate}, tasks[0])
	assert.Equal(t, model.Task{Priority: model.PriorityHigh, Description: "Pay rent", DueDate: "2024-01-01", Completed: true}, tasks[1])

	code, out, _ = h.run("ls")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, "Buy milk")
	assert.Contains(t, out, "Pay rent")
	assert.Contains(t, out, "[x]")

	code, out, _ = h.run("ls", "--group")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, "Pending")
	assert.Contains(t, out, "Done")
}

func TestAddUsageErrors(t *testing.T) {
	h := newHarness(t)

	code, _, errOut := h.run("add")
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, errOut, "usage: todo add")

	code, _, _ = h.run("add", "-p", "urgent", "x")
	assert.Equal(t, ExitUsage, code)

	code, _, _ = h.run("add", "  ")
	assert.Equal(t, ExitUsage, code)

	_, err := os.Stat(h.file)
	assert.True(t, os.IsNotExist(err))
}

func TestRemoveAndDone(t *testing.T) {
	h := newHarness(t)
	for _, d := range []string{"a", "b", "c", "d"} {
		code, _, _ := h.run("add", d)
		require.Equal(t, ExitOK, code)
	}

	code, _, _ := h.run("rm", "3")
	require.Equal(t, ExitOK, code)

	code, _, _ = h.run("done", "1")
	require.Equal(t, ExitOK, code)

	tasks := h.tasks(t)
	require.Len(t, tasks, 3)
	assert.Equal(t, "a", tasks[0].Description)
	assert.True(t, tasks[0].Completed)
	assert.Equal(t, "b", tasks[1].Description)
	assert.Equal(t, "d", tasks[2].Description)
}

func TestIndexErrors(t *testing.T) {
	h := newHarness(t)
	code, _, _ := h.run("add", "a")
	require.Equal(t, ExitOK, code)

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"rm", "5"}, "index out of range"},
		{[]string{"rm", "0"}, "index out of range"},
		{[]string{"done", "x"}, "not a number"},
		{[]string{"rm"}, "usage: todo rm"},
		{[]string{"show", "2"}, "todo ls"},
	}
	for _, tt := range tests {
		code, _, errOut := h.run(tt.args...)
		assert.Equal(t, ExitUsage, code, tt.args)
		assert.Contains(t, errOut, tt.want, tt.args)
	}
	assert.Len(t, h.tasks(t), 1)
}

func TestUnknownCommand(t *testing.T) {
	h := newHarness(t)
	code, _, errOut := h.run("frobnicate")
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, errOut, "unknown command")

	code, _, _ = h.run("ls", "--nope")
	assert.Equal(t, ExitUsage, code)
}

func TestShow(t *testing.T) {
	h := newHarness(t)
	code, _, _ := h.run("add", "-p", "medium", "Call mom")
	require.Equal(t, ExitOK, code)

	code, out, _ := h.run("show", "1", "--style", "notty")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, "Call mom")
	assert.Contains(t, out, "medium")
}

func TestCorruptTailIsRecovered(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, store.WriteFile(h.file, []model.Task{
		{Description: "keep", DueDate: " "},
		{Description: "lost", DueDate: " "},
	}, store.WriteOptions{}))
	b, err := os.ReadFile(h.file)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(h.file, b[:len(b)-2], 0o644))

	code, out, errOut := h.run("ls")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, errOut, "recovered 1 task(s)")
	assert.Contains(t, errOut, "dropped on the next save")
	assert.Contains(t, out, "keep")
	assert.NotContains(t, out, "lost")
}

func TestOverCapacityFileIsNotRewritten(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.WriteFile(h.config, []byte("capacity: 1\n"), 0o644))
	require.NoError(t, store.WriteFile(h.file, []model.Task{
		{Description: "a", DueDate: " "},
		{Description: "b", DueDate: " "},
	}, store.WriteOptions{}))

	code, _, errOut := h.run("add", "c")
	assert.Equal(t, ExitError, code)
	assert.Contains(t, errOut, "full")
	assert.Len(t, h.tasks(t), 2)
}

func TestConfigFileSelectsDataFile(t *testing.T) {
	h := newHarness(t)
	other := filepath.Join(h.dir, "other.bin")
	require.NoError(t, os.WriteFile(h.config, []byte("data_file: "+other+"\nheader: true\n"), 0o644))

	var out, errOut bytes.Buffer
	code := Run([]string{"add", "x", "--config", h.config}, Options{Stdout: &out, Stderr: &errOut})
	require.Equal(t, ExitOK, code, errOut.String())

	b, err := os.ReadFile(other)
	require.NoError(t, err)
	assert.Equal(t, "TODO", string(b[:4]))
}

func TestConfigInit(t *testing.T) {
	h := newHarness(t)
	h.config = filepath.Join(h.dir, "conf", "config.yaml")

	code, out, errOut := h.run("config", "init")
	require.Equal(t, ExitOK, code, errOut)
	assert.Contains(t, out, "wrote "+h.config)

	cfg, err := config.Load(h.config)
	require.NoError(t, err)
	assert.Equal(t, h.file, cfg.DataFile)
	assert.Equal(t, "mono", cfg.Theme)
	assert.Equal(t, 1024, cfg.Capacity)
	assert.True(t, cfg.IsDurable())

	// an existing file is left alone without --force
	code, _, errOut = h.run("config", "init")
	assert.Equal(t, ExitError, code)
	assert.Contains(t, errOut, "already exists")

	code, _, _ = h.run("config", "init", "--force")
	assert.Equal(t, ExitOK, code)
}
