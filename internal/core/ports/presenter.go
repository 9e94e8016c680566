package ports

import (
	"io"

	"go.trai.ch/kiln/internal/core/domain"
)

// Reporter renders test results as they complete. Calls are serialized by the caller.
//
//go:generate mockgen -source=presenter.go -destination=mocks/mock_presenter.go -package=mocks
type Reporter interface {
	// Plan announces the number of selected cases.
	Plan(total int)
	// CaseFinished renders one terminal result.
	CaseFinished(res domain.CaseResult)
	// Summary renders the aggregate report.
	Summary(report *domain.Report) error
}

// Presenter creates renderers for operator-facing output.
type Presenter interface {
	// Reporter returns a test reporter for the format (linear or tap) writing to w.
	Reporter(format string, w io.Writer) (Reporter, error)
	// Graph renders the dependency tree below root, or below every root target when root is empty.
	Graph(w io.Writer, g *domain.TargetGraph, root string) error
}
