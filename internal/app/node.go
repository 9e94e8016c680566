package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/adapters/cas"        //nolint:depguard // Wired in app layer
	"go.trai.ch/kiln/internal/adapters/config"     //nolint:depguard // Wired in app layer
	"go.trai.ch/kiln/internal/adapters/detector"   //nolint:depguard // Wired in app layer
	"go.trai.ch/kiln/internal/adapters/fs"         //nolint:depguard // Wired in app layer
	"go.trai.ch/kiln/internal/adapters/logger"     //nolint:depguard // Wired in app layer
	"go.trai.ch/kiln/internal/adapters/outdir"     //nolint:depguard // Wired in app layer
	"go.trai.ch/kiln/internal/adapters/report"     //nolint:depguard // Wired in app layer
	"go.trai.ch/kiln/internal/adapters/shell"      //nolint:depguard // Wired in app layer
	"go.trai.ch/kiln/internal/adapters/targetfile" //nolint:depguard // Wired in app layer
	"go.trai.ch/kiln/internal/adapters/telemetry"  //nolint:depguard // Wired in app layer
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/engine/configure"
	"go.trai.ch/kiln/internal/engine/dispatcher"
	"go.trai.ch/kiln/internal/engine/generator"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			targetfile.NodeID,
			outdir.NodeID,
			cas.NodeID,
			fs.HasherNodeID,
			fs.CatalogNodeID,
			shell.NodeID,
			report.NodeID,
			detector.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
			configure.NodeID,
			generator.NodeID,
			dispatcher.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{AppNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: a, Logger: log}, nil
		},
	})
}

//nolint:cyclop // one lookup per dependency
func runAppNode(ctx context.Context) (*App, error) {
	var deps Deps
	var err error

	if deps.Manifests, err = graft.Dep[ports.ManifestLoader](ctx); err != nil {
		return nil, err
	}
	if deps.Graphs, err = graft.Dep[ports.GraphLoader](ctx); err != nil {
		return nil, err
	}
	if deps.Configs, err = graft.Dep[ports.ConfigStore](ctx); err != nil {
		return nil, err
	}
	if deps.BuildInfo, err = graft.Dep[ports.BuildInfoStore](ctx); err != nil {
		return nil, err
	}
	if deps.Hasher, err = graft.Dep[ports.Hasher](ctx); err != nil {
		return nil, err
	}
	if deps.Catalog, err = graft.Dep[ports.TestCatalog](ctx); err != nil {
		return nil, err
	}
	if deps.Executor, err = graft.Dep[ports.Executor](ctx); err != nil {
		return nil, err
	}
	if deps.Presenter, err = graft.Dep[ports.Presenter](ctx); err != nil {
		return nil, err
	}
	if deps.Host, err = graft.Dep[ports.Host](ctx); err != nil {
		return nil, err
	}
	if deps.Tracer, err = graft.Dep[ports.Tracer](ctx); err != nil {
		return nil, err
	}
	if deps.Logger, err = graft.Dep[ports.Logger](ctx); err != nil {
		return nil, err
	}
	if deps.Resolver, err = graft.Dep[*configure.Resolver](ctx); err != nil {
		return nil, err
	}
	if deps.Generator, err = graft.Dep[*generator.Generator](ctx); err != nil {
		return nil, err
	}
	if deps.Dispatcher, err = graft.Dep[*dispatcher.Dispatcher](ctx); err != nil {
		return nil, err
	}
	return New(deps), nil
}
