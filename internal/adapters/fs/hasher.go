package fs

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// missingMarker stands in for the content hash of a file that does not exist.
var missingMarker = []byte("\x00missing\x00")

// Hasher fingerprints file contents with xxhash.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

// Fingerprint hashes the names and contents of paths in the given order.
func (h *Hasher) Fingerprint(paths []string) (string, error) {
	digest := xxhash.New()

	for _, path := range paths {
		_, _ = digest.WriteString(path)
		_, _ = digest.Write([]byte{0})

		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, iofs.ErrNotExist) {
				_, _ = digest.Write(missingMarker)
				continue
			}
			return "", zerr.With(zerr.Wrap(err, "failed to stat file"), "path", path)
		}

		sum, err := h.ComputeFileHash(path)
		if err != nil {
			return "", err
		}

		if err := binary.Write(digest, binary.LittleEndian, sum); err != nil {
			return "", zerr.Wrap(err, "failed to write hash to digest")
		}
	}

	return fmt.Sprintf("%016x", digest.Sum64()), nil
}
