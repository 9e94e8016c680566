package ports

import "go.trai.ch/kiln/internal/core/domain"

// Host describes the machine kiln runs on.
//
//go:generate mockgen -source=host.go -destination=mocks/mock_host.go -package=mocks
type Host interface {
	// Platform returns the host platform in destination naming.
	Platform() domain.Platform
	// LookPath resolves a tool on PATH.
	LookPath(tool string) (string, error)
	// Getenv returns the value of an environment variable.
	Getenv(key string) string
	// NumCPU returns the number of usable cores.
	NumCPU() int
}
