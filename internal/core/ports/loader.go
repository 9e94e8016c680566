package ports

import "go.trai.ch/kiln/internal/core/domain"

// ManifestLoader reads the project manifest.
//
//go:generate mockgen -source=loader.go -destination=mocks/mock_loader.go -package=mocks
type ManifestLoader interface {
	// Load reads kiln.yaml from the project root. A missing file yields the defaults.
	Load(root string) (*domain.Manifest, error)
}

// GraphLoader reads the target graph.
type GraphLoader interface {
	// Load parses the target graph file. Duplicate names are rejected; the graph is not yet validated.
	Load(path string) (*domain.TargetGraph, error)
}
