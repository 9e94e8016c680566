// Package shell provides the process adapters: the toolchain executor and the test case runner.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

// DebugArea is the debug area command lines are logged under.
const DebugArea = "build"

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
	stdout io.Writer
	stderr io.Writer
}

// NewExecutor creates a new Executor streaming command output to stdout and stderr.
func NewExecutor(logger ports.Logger, stdout, stderr io.Writer) *Executor {
	return &Executor{
		logger: logger,
		stdout: stdout,
		stderr: stderr,
	}
}

// Execute runs cmd with the process environment overlaid by cmd.Env.
// Output is passed through unmodified.
func (e *Executor) Execute(ctx context.Context, cmd domain.Command) error {
	if cmd.Name == "" {
		return nil
	}

	cmdEnv := resolveEnvironment(os.Environ(), cmd.Env)

	executable := cmd.Name
	if !filepath.IsAbs(cmd.Name) {
		if lp, err := lookPath(cmd.Name, cmdEnv); err == nil {
			executable = lp
		}
	}

	c := exec.CommandContext(ctx, executable, cmd.Args...) //nolint:gosec // toolchain command
	// Keep the name as invoked in Args[0].
	if len(c.Args) > 0 {
		c.Args[0] = cmd.Name
	}
	c.Dir = cmd.Dir
	c.Env = cmdEnv
	c.Stdout = e.stdout
	c.Stderr = e.stderr

	e.logger.Debug(DebugArea, strings.Join(append([]string{cmd.Name}, cmd.Args...), " "))

	if err := c.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.With(zerr.Wrap(err, "command failed"), "command", cmd.Name), "exit_code", exitCode)
	}

	return nil
}

// resolveEnvironment layers overrides over the system environment.
// The result is sorted by key.
func resolveEnvironment(sysEnv, overrides []string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(overrides))
	for _, entries := range [][]string{sysEnv, overrides} {
		for _, entry := range entries {
			if k, v, ok := strings.Cut(entry, "="); ok {
				envMap[k] = v
			}
		}
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result
}

// lookPath searches for an executable in the directories named by the PATH entry of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		path := filepath.Join(dir, file)
		if err := findExecutable(path); err == nil {
			return path, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
