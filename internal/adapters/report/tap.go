package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
)

var _ ports.Reporter = (*TAPReporter)(nil)

// TAPReporter writes results in TAP version 13.
// Skipped and not-run cases are reported as ok with a SKIP directive.
type TAPReporter struct {
	w io.Writer
	n int
}

// NewTAPReporter creates a TAPReporter writing to w.
func NewTAPReporter(w io.Writer) *TAPReporter {
	return &TAPReporter{w: w}
}

// Plan writes the version line and the plan.
func (r *TAPReporter) Plan(total int) {
	_, _ = fmt.Fprintf(r.w, "TAP version 13\n1..%d\n", total)
}

// CaseFinished writes one test point with its YAML diagnostics block.
func (r *TAPReporter) CaseFinished(res domain.CaseResult) {
	r.n++
	id := res.Case.ID

	switch res.Outcome {
	case domain.OutcomePass:
		_, _ = fmt.Fprintf(r.w, "ok %d %s\n", r.n, id)
	case domain.OutcomeSkip:
		_, _ = fmt.Fprintf(r.w, "ok %d %s # SKIP %s\n", r.n, id, res.Reason)
		return
	case domain.OutcomeNotRun:
		_, _ = fmt.Fprintf(r.w, "ok %d %s # SKIP not run\n", r.n, id)
		return
	default:
		_, _ = fmt.Fprintf(r.w, "not ok %d %s\n", r.n, id)
	}

	var b strings.Builder
	b.WriteString("  ---\n")
	fmt.Fprintf(&b, "  duration_ms: %.3f\n", float64(res.Duration().Microseconds())/1000)
	if res.Outcome.Failed() {
		fmt.Fprintf(&b, "  severity: %s\n", res.Outcome)
		fmt.Fprintf(&b, "  exitcode: %d\n", res.ExitCode)
		if res.Reason != "" {
			fmt.Fprintf(&b, "  reason: %q\n", res.Reason)
		}
		if out := bytes.TrimRight(res.Output, "\n"); len(out) > 0 {
			b.WriteString("  stack: |-\n")
			for line := range bytes.SplitSeq(out, []byte("\n")) {
				fmt.Fprintf(&b, "    %s\n", line)
			}
		}
	}
	b.WriteString("  ...\n")
	_, _ = io.WriteString(r.w, b.String())
}

// Summary writes the trailing count comments.
func (r *TAPReporter) Summary(report *domain.Report) error {
	c := report.Counts()
	_, err := fmt.Fprintf(r.w, "# tests %d\n# pass %d\n# fail %d\n# skip %d\n# not run %d\n",
		c.Total, c.Passed, c.Failed, c.Skipped, c.NotRun)
	return err
}
