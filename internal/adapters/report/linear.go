// Package report renders test results and the target graph for operators.
package report

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/ui/output"
	"go.trai.ch/kiln/internal/ui/style"
)

var _ ports.Reporter = (*LinearReporter)(nil)

// LinearReporter prints one colored status line per case, followed by a summary.
// Output of failed cases is replayed below their status line.
type LinearReporter struct {
	w      io.Writer
	output *termenv.Output
}

// NewLinearReporter creates a LinearReporter writing to w.
func NewLinearReporter(w io.Writer) *LinearReporter {
	return &LinearReporter{
		w:      w,
		output: output.New(w),
	}
}

// Plan announces the number of selected cases.
func (r *LinearReporter) Plan(total int) {
	_, _ = fmt.Fprintf(r.w, "Running %d test case(s)\n", total)
}

// CaseFinished prints the status line of one case.
func (r *LinearReporter) CaseFinished(res domain.CaseResult) {
	mark := style.Outcome(res.Outcome)
	icon := r.color(mark.Icon, mark.Color)
	id := res.Case.ID
	switch res.Outcome {
	case domain.OutcomePass:
		_, _ = fmt.Fprintf(r.w, "%s %s %s\n", icon, id, r.faint(formatDuration(res.Duration())))
	case domain.OutcomeSkip:
		_, _ = fmt.Fprintf(r.w, "%s %s skipped: %s\n", icon, id, res.Reason)
	case domain.OutcomeNotRun:
		_, _ = fmt.Fprintf(r.w, "%s %s not run\n", icon, id)
	default:
		_, _ = fmt.Fprintf(r.w, "%s %s %s: %s %s\n",
			icon, id, res.Outcome, res.Reason, r.faint(formatDuration(res.Duration())))
		r.replay(res.Output)
	}
}

// Summary prints the aggregate counts.
func (r *LinearReporter) Summary(report *domain.Report) error {
	c := report.Counts()
	failed := fmt.Sprintf("%d failed", c.Failed)
	if c.Failed > 0 {
		failed = r.color(failed, style.Red)
	}
	_, err := fmt.Fprintf(r.w, "\n%s, %s, %d skipped, %d not run (%d total) in %s\n",
		r.color(fmt.Sprintf("%d passed", c.Passed), style.Green), failed, c.Skipped, c.NotRun, c.Total,
		formatDuration(report.Elapsed))
	return err
}

func (r *LinearReporter) replay(out []byte) {
	out = bytes.TrimRight(out, "\n")
	if len(out) == 0 {
		return
	}
	for line := range bytes.SplitSeq(out, []byte("\n")) {
		_, _ = fmt.Fprintf(r.w, "    %s\n", line)
	}
}

func (r *LinearReporter) color(s string, c lipgloss.Color) string {
	return r.output.String(s).Foreground(r.output.Color(string(c))).String()
}

func (r *LinearReporter) faint(s string) string {
	return r.output.String("(" + s + ")").Faint().String()
}

// formatDuration rounds d for display.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(10 * time.Millisecond).String()
}
