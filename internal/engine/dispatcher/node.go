package dispatcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/kiln/internal/adapters/shell"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/kiln/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/kiln/internal/core/ports"
)

// NodeID is the unique identifier for the test dispatcher Graft node.
const NodeID graft.ID = "engine.dispatcher"

func init() {
	graft.Register(graft.Node[*Dispatcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.RunnerNodeID, telemetry.TracerNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Dispatcher, error) {
			runner, err := graft.Dep[ports.TestRunner](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(runner, tracer, log), nil
		},
	})
}
