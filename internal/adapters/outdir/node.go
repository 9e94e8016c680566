package outdir

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/core/ports"
)

// NodeID is the unique identifier for the output directory store Graft node.
const NodeID graft.ID = "adapter.config_store"

func init() {
	graft.Register(graft.Node[ports.ConfigStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ConfigStore, error) {
			return NewStore(), nil
		},
	})
}
