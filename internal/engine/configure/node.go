package configure

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/adapters/detector" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/kiln/internal/adapters/logger"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/kiln/internal/core/ports"
)

// NodeID is the unique identifier for the configuration resolver Graft node.
const NodeID graft.ID = "engine.configure"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{detector.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Resolver, error) {
			host, err := graft.Dep[ports.Host](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewResolver(host, log), nil
		},
	})
}
