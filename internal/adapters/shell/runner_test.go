package shell_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lithammer/dedent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/shell"
	"go.trai.ch/kiln/internal/core/domain"
)

func writeCase(t *testing.T, script string) domain.TestCase {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "parallel")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	path := filepath.Join(dir, "test-case.sh")
	require.NoError(t, os.WriteFile(path, []byte(dedent.Dedent(script)), 0o600))
	return domain.TestCase{ID: "parallel/test-case.sh", Path: path, Group: "parallel", Mode: domain.ModeParallel}
}

func TestRunner_Run(t *testing.T) {
	skipOnWindows(t)

	tests := []struct {
		name     string
		script   string
		timeout  time.Duration
		outcome  domain.Outcome
		exitCode int
		reason   string
	}{
		{
			name:    "pass",
			script:  "echo ok\n",
			outcome: domain.OutcomePass,
		},
		{
			name:     "fail",
			script:   "echo assertion failed >&2\nexit 3\n",
			outcome:  domain.OutcomeFail,
			exitCode: 3,
			reason:   "exit code 3",
		},
		{
			name: "skip",
			script: `
				echo "1..0 # Skipped: missing crypto"
				exit 0
			`,
			outcome: domain.OutcomeSkip,
			reason:  "missing crypto",
		},
		{
			name:     "timeout",
			script:   "exec sleep 5\n",
			timeout:  100 * time.Millisecond,
			outcome:  domain.OutcomeTimeout,
			exitCode: -1,
		},
		{
			name:     "timeout kills descendants",
			script:   "sleep 5\necho late\n",
			timeout:  200 * time.Millisecond,
			outcome:  domain.OutcomeTimeout,
			exitCode: -1,
		},
		{
			name:     "crash",
			script:   "kill -SEGV $$\n",
			outcome:  domain.OutcomeCrash,
			exitCode: -1,
		},
		{
			name:    "env",
			script:  "test \"$KILN_TEST_CASE\" = parallel/test-case.sh\n",
			outcome: domain.OutcomePass,
		},
	}

	runner := shell.NewRunner(newQuietLogger(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timeout := tt.timeout
			if timeout == 0 {
				timeout = 10 * time.Second
			}
			begin := time.Now()
			res := runner.Run(context.Background(), "/bin/sh", writeCase(t, tt.script), timeout)
			assert.Less(t, time.Since(begin), 3*time.Second)

			assert.Equal(t, tt.outcome, res.Outcome, "output: %s", res.Output)
			assert.Equal(t, tt.exitCode, res.ExitCode)
			if tt.reason != "" {
				assert.Equal(t, tt.reason, res.Reason)
			}
			assert.False(t, res.Start.IsZero())
			assert.False(t, res.End.Before(res.Start))
		})
	}
}

func TestRunner_Run_CapturesOutput(t *testing.T) {
	skipOnWindows(t)

	res := shell.NewRunner(newQuietLogger(t)).Run(
		context.Background(), "/bin/sh", writeCase(t, "echo out\necho err >&2\n"), 10*time.Second,
	)
	assert.Equal(t, "out\nerr\n", string(res.Output))
}

func TestRunner_Run_Cancelled(t *testing.T) {
	skipOnWindows(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := shell.NewRunner(newQuietLogger(t)).Run(ctx, "/bin/sh", writeCase(t, "echo ok\n"), time.Second)
	assert.Equal(t, domain.OutcomeNotRun, res.Outcome)
	assert.True(t, res.Start.IsZero())
}

func TestRunner_Run_CancelledInFlight(t *testing.T) {
	skipOnWindows(t)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(200*time.Millisecond, cancel)
	defer cancel()

	begin := time.Now()
	res := shell.NewRunner(newQuietLogger(t)).Run(ctx, "/bin/sh", writeCase(t, "sleep 5\n"), 10*time.Second)

	assert.Less(t, time.Since(begin), 3*time.Second)
	assert.Equal(t, domain.OutcomeFail, res.Outcome)
	assert.True(t, res.Outcome.Failed())
	assert.Equal(t, "cancelled", res.Reason)
	assert.Equal(t, -1, res.ExitCode)
	assert.False(t, res.Start.IsZero())
}

func TestRunner_Run_RelativePath(t *testing.T) {
	skipOnWindows(t)

	root := t.TempDir()
	dir := filepath.Join(root, "test", "parallel")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test-ok.sh"), []byte("exit 0\n"), 0o600))
	t.Chdir(root)

	tc := domain.TestCase{
		ID:    "parallel/test-ok.sh",
		Path:  filepath.Join("test", "parallel", "test-ok.sh"),
		Group: "parallel",
		Mode:  domain.ModeParallel,
	}
	res := shell.NewRunner(newQuietLogger(t)).Run(context.Background(), "/bin/sh", tc, 10*time.Second)
	assert.Equal(t, domain.OutcomePass, res.Outcome, "output: %s", res.Output)
}
