package ports

// Hasher fingerprints files.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// Fingerprint hashes the contents of paths in the given order.
	// A missing file contributes a marker instead of failing, so removal changes the fingerprint.
	Fingerprint(paths []string) (string, error)
}
