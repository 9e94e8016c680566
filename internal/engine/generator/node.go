package generator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/adapters/fs"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/kiln/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/kiln/internal/core/ports"
)

// NodeID is the unique identifier for the build file generator Graft node.
const NodeID graft.ID = "engine.generator"

func init() {
	graft.Register(graft.Node[*Generator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.VerifierNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Generator, error) {
			verifier, err := graft.Dep[ports.SourceVerifier](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(verifier, log), nil
		},
	})
}
