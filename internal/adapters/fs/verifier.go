package fs

import (
	"os"
	"path/filepath"

	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SourceVerifier = (*Verifier)(nil)

// Verifier checks that declared sources exist.
type Verifier struct{}

// NewVerifier creates a new Verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// Missing returns the entries of paths that are not regular files under root, in input order.
func (v *Verifier) Missing(root string, paths []string) ([]string, error) {
	var missing []string
	for _, p := range paths {
		path := filepath.Join(root, p)
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				missing = append(missing, p)
				continue
			}
			return nil, zerr.With(zerr.Wrap(err, "failed to stat source"), "path", path)
		}
		if !info.Mode().IsRegular() {
			missing = append(missing, p)
		}
	}
	return missing, nil
}
