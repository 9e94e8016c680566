package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/core/ports"
)

const (
	WalkerNodeID   graft.ID = "adapter.fs.walker"
	HasherNodeID   graft.ID = "adapter.fs.hasher"
	VerifierNodeID graft.ID = "adapter.fs.verifier"
	CatalogNodeID  graft.ID = "adapter.fs.catalog"
)

func init() {
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})

	graft.Register(graft.Node[ports.SourceVerifier]{
		ID:        VerifierNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SourceVerifier, error) {
			return NewVerifier(), nil
		},
	})

	graft.Register(graft.Node[ports.TestCatalog]{
		ID:        CatalogNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WalkerNodeID},
		Run: func(ctx context.Context) (ports.TestCatalog, error) {
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewCatalog(walker), nil
		},
	})
}
