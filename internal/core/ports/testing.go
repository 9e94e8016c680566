package ports

import (
	"context"
	"time"

	"go.trai.ch/kiln/internal/core/domain"
)

// TestCatalog discovers test cases.
//
//go:generate mockgen -source=testing.go -destination=mocks/mock_testing.go -package=mocks
type TestCatalog interface {
	// Discover lists the cases of every declared group, groups in declaration order, cases sorted by path.
	Discover(root string, settings domain.TestSettings) ([]domain.TestCase, error)
}

// TestRunner runs a single test case as a subprocess.
type TestRunner interface {
	// Run launches binary with the case path and waits for it.
	// The process is killed when timeout elapses or ctx is cancelled.
	// The returned result carries the outcome, output and timestamps.
	Run(ctx context.Context, binary string, tc domain.TestCase, timeout time.Duration) domain.CaseResult
}
