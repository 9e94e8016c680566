// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/kiln/internal/core/domain"
)

// Executor runs the native build orchestrator.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs cmd, streaming its output verbatim.
	// A non-zero exit is returned as an error carrying the exit code.
	Execute(ctx context.Context, cmd domain.Command) error
}
