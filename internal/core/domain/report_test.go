package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/kiln/internal/core/domain"
)

func TestReport_Counts(t *testing.T) {
	outcomes := []domain.Outcome{
		domain.OutcomePass, domain.OutcomePass, domain.OutcomeFail, domain.OutcomeCrash,
		domain.OutcomeTimeout, domain.OutcomeSkip, domain.OutcomeNotRun, domain.OutcomeNotRun,
	}
	report := &domain.Report{}
	for _, o := range outcomes {
		report.Results = append(report.Results, domain.CaseResult{Outcome: o})
	}

	c := report.Counts()
	assert.Equal(t, domain.Counts{
		Total: 8, Passed: 2, Failed: 3, Skipped: 1, NotRun: 2, Crashed: 1, TimedOut: 1,
	}, c)
	assert.Equal(t, c.Total, c.Passed+c.Failed+c.Skipped+c.NotRun)
	assert.False(t, report.OK())
}

func TestReport_OK(t *testing.T) {
	report := &domain.Report{Results: []domain.CaseResult{
		{Outcome: domain.OutcomePass},
		{Outcome: domain.OutcomeSkip},
		{Outcome: domain.OutcomeNotRun},
	}}
	assert.True(t, report.OK())
}

func TestCaseResult_Duration(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	res := domain.CaseResult{Start: start, End: start.Add(1500 * time.Millisecond)}
	assert.Equal(t, 1500*time.Millisecond, res.Duration())
	assert.Zero(t, domain.CaseResult{Outcome: domain.OutcomeNotRun}.Duration())
}
