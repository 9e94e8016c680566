package ports

import "go.trai.ch/kiln/internal/core/domain"

// BuildInfoStore defines the interface for storing and retrieving build information.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type BuildInfoStore interface {
	// Get retrieves the build info of an artifact from the state directory.
	// Returns nil, nil if not found.
	Get(stateDir, artifact string) (*domain.BuildInfo, error)

	// Put stores the build info in the state directory.
	Put(stateDir string, info domain.BuildInfo) error

	// Remove deletes the state directory.
	Remove(stateDir string) error
}
