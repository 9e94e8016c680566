package shell_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/shell"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func newQuietLogger(t *testing.T) *mocks.MockLogger {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	return log
}

func TestExecutor_Execute_StreamsOutput(t *testing.T) {
	skipOnWindows(t)

	var stdout, stderr bytes.Buffer
	executor := shell.NewExecutor(newQuietLogger(t), &stdout, &stderr)

	err := executor.Execute(context.Background(), domain.Command{
		Name: "sh",
		Args: []string{"-c", "echo compiling; printf part1; echo part2; echo warning >&2"},
		Dir:  t.TempDir(),
	})
	require.NoError(t, err)
	assert.Equal(t, "compiling\npart1part2\n", stdout.String())
	assert.Equal(t, "warning\n", stderr.String())
}

func TestExecutor_Execute_EnvironmentVariables(t *testing.T) {
	skipOnWindows(t)

	var stdout bytes.Buffer
	executor := shell.NewExecutor(newQuietLogger(t), &stdout, &bytes.Buffer{})

	err := executor.Execute(context.Background(), domain.Command{
		Name: "sh",
		Args: []string{"-c", "echo $KILN_VALUE"},
		Env:  []string{"KILN_VALUE=test-value-123"},
	})
	require.NoError(t, err)
	assert.Equal(t, "test-value-123\n", stdout.String())
}

func TestExecutor_Execute_WorkingDir(t *testing.T) {
	skipOnWindows(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Makefile"), []byte("all:\n"), 0o600))

	var stdout bytes.Buffer
	executor := shell.NewExecutor(newQuietLogger(t), &stdout, &bytes.Buffer{})
	require.NoError(t, executor.Execute(context.Background(), domain.Command{
		Name: "sh", Args: []string{"-c", "ls"}, Dir: dir,
	}))
	assert.Equal(t, "Makefile\n", stdout.String())
}

func TestExecutor_Execute_CommandFailure(t *testing.T) {
	skipOnWindows(t)

	executor := shell.NewExecutor(newQuietLogger(t), &bytes.Buffer{}, &bytes.Buffer{})

	err := executor.Execute(context.Background(), domain.Command{
		Name: "sh",
		Args: []string{"-c", "exit 2"},
	})
	require.Error(t, err)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, 2, zErr.Metadata()["exit_code"])
	assert.Equal(t, "sh", zErr.Metadata()["command"])
}

func TestExecutor_Execute_InvalidCommand(t *testing.T) {
	executor := shell.NewExecutor(newQuietLogger(t), &bytes.Buffer{}, &bytes.Buffer{})

	err := executor.Execute(context.Background(), domain.Command{Name: "kiln-no-such-tool-xyz"})
	require.Error(t, err)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, -1, zErr.Metadata()["exit_code"])
}

func TestExecutor_Execute_EmptyCommand(t *testing.T) {
	executor := shell.NewExecutor(newQuietLogger(t), &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, executor.Execute(context.Background(), domain.Command{}))
}

func TestResolveEnvironment(t *testing.T) {
	got := shell.ResolveEnvironment(
		[]string{"PATH=/usr/bin", "HOME=/root", "KILN_DEBUG=build"},
		[]string{"HOME=/tmp", "CC=clang"},
	)
	assert.Equal(t, []string{"CC=clang", "HOME=/tmp", "KILN_DEBUG=build", "PATH=/usr/bin"}, got)
}

func TestLookPath(t *testing.T) {
	skipOnWindows(t)

	dir := t.TempDir()
	tool := filepath.Join(dir, "ninja")
	require.NoError(t, os.WriteFile(tool, []byte("#!/bin/sh\n"), 0o700)) //nolint:gosec // executable fixture

	got, err := shell.LookPath("ninja", []string{"PATH=" + dir})
	require.NoError(t, err)
	assert.Equal(t, tool, got)

	_, err = shell.LookPath("ninja", []string{"HOME=/root"})
	require.Error(t, err)
}
