package shell

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
)

const (
	// skipPrefix marks a case that skipped itself on its first stdout line.
	skipPrefix = "1..0 # Skipped"

	// waitDelay bounds how long Wait blocks on output pipes held by grandchildren after a kill.
	waitDelay = 5 * time.Second

	reasonCancelled = "cancelled"
)

var _ ports.TestRunner = (*Runner)(nil)

// Runner launches one test case per process.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run executes binary with the absolute case path as its only argument, in the case's directory.
// The process inherits the environment, KILN_DEBUG included. A case that never starts
// because ctx is already done is not-run; one interrupted by ctx fails.
func (r *Runner) Run(ctx context.Context, binary string, tc domain.TestCase, timeout time.Duration) domain.CaseResult {
	res := domain.CaseResult{Case: tc}

	if ctx.Err() != nil {
		res.Outcome = domain.OutcomeNotRun
		res.Reason = reasonCancelled
		return res
	}

	path, err := filepath.Abs(tc.Path)
	if err != nil {
		res.Outcome = domain.OutcomeFail
		res.ExitCode = -1
		res.Reason = err.Error()
		return res
	}

	runCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, binary, path) //nolint:gosec // binary comes from the build plan
	cmd.Dir = filepath.Dir(path)
	cmd.Env = resolveEnvironment(os.Environ(), []string{
		"KILN_TEST_CASE=" + tc.ID,
		"KILN_TEST_MODE=" + string(tc.Mode),
	})
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay
	killProcessGroup(cmd)

	r.logger.Debug("dispatch", fmt.Sprintf("start %s", tc.ID))
	res.Start = time.Now()
	err = cmd.Run()
	res.End = time.Now()

	res.Output = append(stdout.Bytes(), stderr.Bytes()...)
	classify(ctx, runCtx, &res, err, timeout, stdout.Bytes())
	r.logger.Debug("dispatch", fmt.Sprintf("%s %s", res.Outcome, tc.ID))

	return res
}

// classify derives the outcome from the process exit and the contexts it ran under.
// A process that exited on its own keeps its result even if a context expired afterwards.
func classify(ctx, runCtx context.Context, res *domain.CaseResult, err error, timeout time.Duration, stdout []byte) {
	switch {
	case err == nil:
	case ctx.Err() != nil:
		res.Outcome = domain.OutcomeFail
		res.Reason = reasonCancelled
		res.ExitCode = -1
		return
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		res.Outcome = domain.OutcomeTimeout
		res.Reason = fmt.Sprintf("timed out after %v", timeout)
		res.ExitCode = -1
		return
	}

	if err == nil {
		if reason, ok := skipReason(stdout); ok {
			res.Outcome = domain.OutcomeSkip
			res.Reason = reason
			return
		}
		res.Outcome = domain.OutcomePass
		return
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		res.Outcome = domain.OutcomeFail
		res.ExitCode = -1
		res.Reason = err.Error()
		return
	}

	res.ExitCode = exitErr.ExitCode()
	if res.ExitCode == -1 {
		res.Outcome = domain.OutcomeCrash
		res.Reason = exitErr.String()
		return
	}
	res.Outcome = domain.OutcomeFail
	res.Reason = fmt.Sprintf("exit code %d", res.ExitCode)
}

// skipReason reports whether the first stdout line announces a skip, and its reason.
func skipReason(stdout []byte) (string, bool) {
	sc := bufio.NewScanner(bytes.NewReader(stdout))
	if !sc.Scan() {
		return "", false
	}
	line := strings.TrimSpace(sc.Text())
	if !strings.HasPrefix(line, skipPrefix) {
		return "", false
	}
	reason := strings.TrimPrefix(line, skipPrefix)
	reason = strings.TrimSpace(strings.TrimPrefix(reason, ":"))
	return reason, true
}
