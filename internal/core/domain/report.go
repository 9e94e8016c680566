package domain

import "time"

// Outcome is the terminal state of a test case.
type Outcome string

const (
	OutcomePass    Outcome = "pass"
	OutcomeFail    Outcome = "fail"
	OutcomeCrash   Outcome = "crash"
	OutcomeTimeout Outcome = "timeout"
	OutcomeSkip    Outcome = "skip"
	OutcomeNotRun  Outcome = "not-run"
)

// Failed reports whether the outcome counts as a failure.
func (o Outcome) Failed() bool {
	switch o {
	case OutcomeFail, OutcomeCrash, OutcomeTimeout:
		return true
	default:
		return false
	}
}

// CaseResult is the outcome of a single test case.
type CaseResult struct {
	Case     TestCase
	Outcome  Outcome
	ExitCode int
	// Reason explains skips, crashes, timeouts and not-run cases.
	Reason string
	Output []byte
	Start  time.Time
	End    time.Time
}

// Duration returns how long the case ran. Cases that never started report zero.
func (r CaseResult) Duration() time.Duration {
	if r.Start.IsZero() || r.End.IsZero() {
		return 0
	}
	return r.End.Sub(r.Start)
}

// Counts aggregates outcomes. Passed + Failed + Skipped + NotRun always equals Total.
type Counts struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
	NotRun  int
	// Crashed and TimedOut are the subsets of Failed with those outcomes.
	Crashed  int
	TimedOut int
}

// Report is the aggregate result of a dispatch, results in selection order.
type Report struct {
	Results []CaseResult
	Elapsed time.Duration
}

// Counts tallies the results.
func (r *Report) Counts() Counts {
	c := Counts{Total: len(r.Results)}
	for _, res := range r.Results {
		switch res.Outcome {
		case OutcomePass:
			c.Passed++
		case OutcomeSkip:
			c.Skipped++
		case OutcomeNotRun:
			c.NotRun++
		case OutcomeCrash:
			c.Failed++
			c.Crashed++
		case OutcomeTimeout:
			c.Failed++
			c.TimedOut++
		default:
			c.Failed++
		}
	}
	return c
}

// OK reports whether no executed case failed, crashed or timed out.
func (r *Report) OK() bool {
	return r.Counts().Failed == 0
}
