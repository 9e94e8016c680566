package report

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/core/ports"
)

// NodeID is the unique identifier for the presenter Graft node.
const NodeID graft.ID = "adapter.presenter"

func init() {
	graft.Register(graft.Node[ports.Presenter]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Presenter, error) {
			return NewPresenter(), nil
		},
	})
}
