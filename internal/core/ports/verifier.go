package ports

// SourceVerifier checks that source files exist.
//
//go:generate mockgen -source=verifier.go -destination=mocks/mock_verifier.go -package=mocks
type SourceVerifier interface {
	// Missing returns the entries of paths, relative to root, that are not regular files.
	Missing(root string, paths []string) ([]string, error)
}
