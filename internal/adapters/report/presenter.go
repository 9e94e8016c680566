package report

import (
	"io"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

// Report formats.
const (
	FormatLinear = "linear"
	FormatTAP    = "tap"
)

var _ ports.Presenter = (*Presenter)(nil)

// Presenter implements ports.Presenter.
type Presenter struct{}

// NewPresenter creates a new Presenter.
func NewPresenter() *Presenter {
	return &Presenter{}
}

// Reporter returns the reporter for format writing to w.
func (p *Presenter) Reporter(format string, w io.Writer) (ports.Reporter, error) {
	switch format {
	case FormatLinear, "":
		return NewLinearReporter(w), nil
	case FormatTAP:
		return NewTAPReporter(w), nil
	default:
		return nil, zerr.With(domain.ErrUnknownReporter, "format", format)
	}
}

// Graph renders the dependency tree below root.
func (p *Presenter) Graph(w io.Writer, g *domain.TargetGraph, root string) error {
	return WriteGraph(w, g, root)
}
