package report_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/report"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func result(id string, mode domain.TestMode, outcome domain.Outcome, d time.Duration) domain.CaseResult {
	res := domain.CaseResult{
		Case:    domain.TestCase{ID: id, Mode: mode},
		Outcome: outcome,
	}
	if outcome != domain.OutcomeNotRun {
		res.Start = epoch
		res.End = epoch.Add(d)
	}
	return res
}

func sampleReport() *domain.Report {
	fail := result("parallel/test-fs.js", domain.ModeParallel, domain.OutcomeFail, 250*time.Millisecond)
	fail.ExitCode = 1
	fail.Reason = "exit code 1"
	fail.Output = []byte("AssertionError: 1 == 2\n    at test-fs.js:3\n")

	skip := result("parallel/test-crypto.js", domain.ModeParallel, domain.OutcomeSkip, time.Millisecond)
	skip.Reason = "missing crypto"

	crash := result("sequential/test-net.js", domain.ModeSequential, domain.OutcomeCrash, 1500*time.Millisecond)
	crash.ExitCode = -1
	crash.Reason = "signal: segmentation fault"

	return &domain.Report{
		Results: []domain.CaseResult{
			result("parallel/test-buffer.js", domain.ModeParallel, domain.OutcomePass, 12*time.Millisecond),
			fail,
			skip,
			crash,
			result("sequential/test-child.js", domain.ModeSequential, domain.OutcomeNotRun, 0),
		},
		Elapsed: 2 * time.Second,
	}
}

func render(t *testing.T, r ports.Reporter, rep *domain.Report) {
	t.Helper()
	r.Plan(len(rep.Results))
	for _, res := range rep.Results {
		r.CaseFinished(res)
	}
	require.NoError(t, r.Summary(rep))
}

func TestLinearReporter(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	render(t, report.NewLinearReporter(&buf), sampleReport())

	g := goldie.New(t)
	g.Assert(t, "linear", buf.Bytes())
}

func TestTAPReporter(t *testing.T) {
	var buf bytes.Buffer
	render(t, report.NewTAPReporter(&buf), sampleReport())

	g := goldie.New(t)
	g.Assert(t, "tap", buf.Bytes())
}

func TestPresenter_Reporter(t *testing.T) {
	p := report.NewPresenter()

	r, err := p.Reporter(report.FormatTAP, &bytes.Buffer{})
	require.NoError(t, err)
	assert.IsType(t, &report.TAPReporter{}, r)

	r, err = p.Reporter("", &bytes.Buffer{})
	require.NoError(t, err)
	assert.IsType(t, &report.LinearReporter{}, r)

	_, err = p.Reporter("junit", &bytes.Buffer{})
	require.ErrorContains(t, err, domain.ErrUnknownReporter.Error())
}

func newGraph(t *testing.T, primary string) *domain.TargetGraph {
	t.Helper()
	g := domain.NewTargetGraph()
	libnode := &domain.Target{
		Name:         domain.NewInternedString("libnode"),
		Type:         domain.TargetStaticLibrary,
		Dependencies: domain.NewInternedStrings([]string{"libuv", "zlib"}),
		Conditions: []domain.Condition{{
			When:         domain.PredicateFunc{Expr: "config.use_ssl"},
			Dependencies: domain.NewInternedStrings([]string{"openssl", "zlib"}),
		}},
	}
	for _, target := range []*domain.Target{
		{Name: domain.NewInternedString("node"), Dependencies: domain.NewInternedStrings([]string{"libnode"})},
		{Name: domain.NewInternedString("cctest"), Dependencies: domain.NewInternedStrings([]string{"libuv"})},
		libnode,
		{Name: domain.NewInternedString("libuv")},
		{Name: domain.NewInternedString("zlib")},
		{Name: domain.NewInternedString("openssl")},
	} {
		require.NoError(t, g.AddTarget(target))
	}
	if primary != "" {
		g.SetPrimary(primary)
	}
	return g
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestWriteGraph_Primary(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	require.NoError(t, report.WriteGraph(&buf, newGraph(t, "node"), ""))

	assert.Equal(t, []string{
		"node",
		"└── libnode",
		"    ├── libuv",
		"    ├── zlib",
		"    └── openssl [when config.use_ssl]",
	}, lines(buf.String()))
}

func TestWriteGraph_AllRoots(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	require.NoError(t, report.WriteGraph(&buf, newGraph(t, ""), ""))

	out := lines(buf.String())
	assert.Equal(t, "cctest", out[0])
	assert.Equal(t, "└── libuv", out[1])
	assert.Equal(t, "node", out[2])
}

func TestWriteGraph_NamedRoot(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	require.NoError(t, report.WriteGraph(&buf, newGraph(t, "node"), "cctest"))
	assert.Equal(t, []string{"cctest", "└── libuv"}, lines(buf.String()))

	err := report.WriteGraph(&buf, newGraph(t, "node"), "ghost")
	require.ErrorContains(t, err, domain.ErrTargetNotFound.Error())
}
