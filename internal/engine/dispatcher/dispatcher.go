// Package dispatcher runs selected test cases and aggregates their results.
package dispatcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// DebugArea is the debug area the dispatcher logs under.
const DebugArea = "dispatch"

// Reasons recorded on cases the dispatcher never launched.
const (
	reasonCancelled    = "cancelled"
	reasonSuiteTimeout = "suite timeout exceeded"
)

// Options bound a dispatch.
type Options struct {
	// Binary is the executable every case runs against.
	Binary string
	// Timeout bounds a single case. Zero means unbounded.
	Timeout time.Duration
	// SuiteTimeout stops scheduling new cases once elapsed. Zero means unbounded.
	SuiteTimeout time.Duration
	// Jobs bounds the parallel worker pool. Zero or less means one job.
	Jobs int
}

// Dispatcher runs parallel cases on a bounded pool, then sequential cases one at a time.
type Dispatcher struct {
	runner ports.TestRunner
	tracer ports.Tracer
	logger ports.Logger
}

// New creates a Dispatcher.
func New(runner ports.TestRunner, tracer ports.Tracer, logger ports.Logger) *Dispatcher {
	return &Dispatcher{runner: runner, tracer: tracer, logger: logger}
}

// Run executes cases and returns their results in selection order.
// Failures never stop siblings. A crash in the sequential group marks the rest of that group not-run.
// Cases that were not launched before ctx was cancelled or the suite timeout elapsed are reported not-run.
func (d *Dispatcher) Run(
	ctx context.Context, cases []domain.TestCase, opts Options, reporter ports.Reporter,
) (*domain.Report, error) {
	start := time.Now()

	ctx, span := d.tracer.Start(ctx, "dispatch", ports.WithAttribute("cases", len(cases)))
	defer span.End()

	ids := make([]string, len(cases))
	for i, tc := range cases {
		ids[i] = tc.ID
	}
	d.tracer.EmitPlan(ctx, ids)

	// Scheduling stops when the suite timeout elapses; cases already running keep their own timeout.
	schedCtx := ctx
	if opts.SuiteTimeout > 0 {
		var cancel context.CancelFunc
		schedCtx, cancel = context.WithTimeout(ctx, opts.SuiteTimeout)
		defer cancel()
	}

	state := &runState{
		d:        d,
		ctx:      ctx,
		schedCtx: schedCtx,
		opts:     opts,
		cases:    cases,
		reporter: reporter,
		results:  make([]domain.CaseResult, len(cases)),
		done:     make([]bool, len(cases)),
	}

	var parallel, sequential []int
	for i, tc := range cases {
		if tc.Mode == domain.ModeSequential {
			sequential = append(sequential, i)
		} else {
			parallel = append(parallel, i)
		}
	}

	reporter.Plan(len(cases))
	state.runParallel(parallel)
	state.runSequential(sequential)

	report := &domain.Report{Results: state.results, Elapsed: time.Since(start)}
	c := report.Counts()
	span.SetAttribute("passed", c.Passed)
	span.SetAttribute("failed", c.Failed)
	span.SetAttribute("not_run", c.NotRun)
	if !report.OK() {
		span.RecordError(domain.ErrTestsFailed)
	}
	d.logger.Debug(DebugArea, fmt.Sprintf("%d of %d cases passed in %v", c.Passed, c.Total, report.Elapsed))

	if err := reporter.Summary(report); err != nil {
		return report, err
	}
	return report, nil
}

type runState struct {
	d        *Dispatcher
	ctx      context.Context
	schedCtx context.Context
	opts     Options
	cases    []domain.TestCase
	reporter ports.Reporter

	mu      sync.Mutex
	results []domain.CaseResult
	done    []bool
}

func (s *runState) runParallel(indexes []int) {
	if len(indexes) == 0 {
		return
	}
	jobs := max(s.opts.Jobs, 1)
	s.d.logger.Debug(DebugArea, fmt.Sprintf("running %d parallel cases on %d jobs", len(indexes), jobs))

	// Go never returns an error here: a failing case is a result, not a reason to stop siblings.
	var g errgroup.Group
	g.SetLimit(jobs)
	for _, i := range indexes {
		if reason, stop := s.stopped(); stop {
			s.skip(i, reason)
			continue
		}
		g.Go(func() error {
			s.launch(i)
			return nil
		})
	}
	_ = g.Wait()
}

func (s *runState) runSequential(indexes []int) {
	if len(indexes) > 0 {
		s.d.logger.Debug(DebugArea, fmt.Sprintf("running %d sequential cases", len(indexes)))
	}

	crashed := ""
	for _, i := range indexes {
		if crashed != "" {
			s.skip(i, "not run after crash of "+crashed)
			continue
		}
		if reason, stop := s.stopped(); stop {
			s.skip(i, reason)
			continue
		}
		if res := s.launch(i); res.Outcome == domain.OutcomeCrash {
			crashed = res.Case.ID
		}
	}
}

// stopped reports whether no further case may be scheduled, and why.
func (s *runState) stopped() (string, bool) {
	switch {
	case s.ctx.Err() != nil:
		return reasonCancelled, true
	case s.schedCtx.Err() != nil:
		return reasonSuiteTimeout, true
	default:
		return "", false
	}
}

// launch runs case i unless scheduling stopped while it waited for a worker.
func (s *runState) launch(i int) domain.CaseResult {
	if reason, stop := s.stopped(); stop {
		return s.skip(i, reason)
	}

	tc := s.cases[i]
	ctx, span := s.d.tracer.Start(s.ctx, tc.ID, ports.WithAttribute("mode", string(tc.Mode)))
	res := s.d.runner.Run(ctx, s.opts.Binary, tc, s.opts.Timeout)
	span.SetAttribute("outcome", string(res.Outcome))
	span.SetAttribute("duration", res.Duration())
	if res.Outcome.Failed() {
		span.RecordError(fmt.Errorf("%s: %s", res.Outcome, res.Reason))
	}
	if len(res.Output) > 0 {
		_, _ = span.Write(res.Output)
	}
	span.End()

	s.finish(i, res)
	return res
}

func (s *runState) skip(i int, reason string) domain.CaseResult {
	res := domain.CaseResult{Case: s.cases[i], Outcome: domain.OutcomeNotRun, Reason: reason}
	s.finish(i, res)
	return res
}

// finish records the result of case i and reports it. Each case finishes once.
func (s *runState) finish(i int, res domain.CaseResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done[i] {
		return
	}
	s.done[i] = true
	s.results[i] = res
	s.reporter.CaseFinished(res)
}
