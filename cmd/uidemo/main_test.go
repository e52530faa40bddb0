package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-uidemo/internal/prompt"
	"github.com/goliatone/go-uidemo/pkg/todos"
)

type fakeDriver struct {
	answers []string
	pick    int
}

func (d *fakeDriver) Input(context.Context, prompt.InputConfig) (string, error) {
	if len(d.answers) == 0 {
		return "", prompt.ErrAborted
	}
	answer := d.answers[0]
	d.answers = d.answers[1:]
	return answer, nil
}

func (d *fakeDriver) Confirm(context.Context, prompt.ConfirmConfig) (bool, error) { return true, nil }

func (d *fakeDriver) Select(context.Context, prompt.SelectConfig) (int, error) { return d.pick, nil }

func (d *fakeDriver) Info(context.Context, string) error { return nil }

func useDriver(t *testing.T, d prompt.Driver) {
	t.Helper()
	prev := newDriver
	newDriver = func() prompt.Driver { return d }
	t.Cleanup(func() { newDriver = prev })
}

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	project := filepath.Join(dir, "project.yaml")
	require.NoError(t, os.WriteFile(project, []byte("name: demo-project\nversion: 1.0.0\n"), 0o644))

	cfg := fmt.Sprintf(`name: uidemo-test
log:
  level: error
  format: json
storage:
  driver: file
  dir: %s
action:
  delay: 0s
  project_file: %s
`, filepath.Join(dir, "slots"), project)
	path := filepath.Join(dir, "uidemo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))
	return path
}

func execute(args ...string) (string, error) {
	root := newRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute("version")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "uidemo dev"), out)
}

func TestTodosCommands(t *testing.T) {
	cfg := writeConfig(t)

	out, err := execute("--config", cfg, "todos", "list")
	require.NoError(t, err)
	require.Contains(t, out, "Nothing to do yet.")

	_, err = execute("--config", cfg, "todos", "add", "Buy", "milk")
	require.NoError(t, err)
	_, err = execute("--config", cfg, "todos", "add", "Walk dog")
	require.NoError(t, err)

	out, err = execute("--config", cfg, "todos", "toggle", "1")
	require.NoError(t, err)
	require.Contains(t, out, "[x]  Walk dog")
	require.Contains(t, out, "1 remaining")

	_, err = execute("--config", cfg, "todos", "remove", "0")
	require.NoError(t, err)

	out, err = execute("--config", cfg, "todos", "list", "--json")
	require.NoError(t, err)
	var list todos.List
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Equal(t, todos.List{{Title: "Walk dog", Done: true}}, list)

	out, err = execute("--config", cfg, "todos", "--session", "other", "list")
	require.NoError(t, err)
	require.Contains(t, out, "Nothing to do yet.")
}

func TestTodosToggleWithoutIndexPrompts(t *testing.T) {
	cfg := writeConfig(t)
	useDriver(t, &fakeDriver{pick: 0})

	_, err := execute("--config", cfg, "todos", "add", "Read")
	require.NoError(t, err)
	out, err := execute("--config", cfg, "todos", "toggle")
	require.NoError(t, err)
	require.Contains(t, out, "[x]  Read")
}

func TestTodosRemoveOutOfRange(t *testing.T) {
	cfg := writeConfig(t)
	_, err := execute("--config", cfg, "todos", "remove", "3")
	require.ErrorIs(t, err, todos.ErrIndexOutOfRange)
}

func TestSubmitCommand(t *testing.T) {
	cfg := writeConfig(t)
	useDriver(t, &fakeDriver{answers: []string{"Ada", "ada@example.com"}})

	out, err := execute("--config", cfg, "submit")
	require.NoError(t, err)
	require.Contains(t, out, "Submitted to demo-project.")
}

func TestSubmitCommandAbort(t *testing.T) {
	cfg := writeConfig(t)
	useDriver(t, &fakeDriver{answers: []string{"Ada"}})

	out, err := execute("--config", cfg, "submit")
	require.NoError(t, err)
	require.Contains(t, out, "Aborted.")
}
