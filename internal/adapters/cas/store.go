// Package cas stores the fingerprints generated artifacts were produced from.
package cas

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.BuildInfoStore using a file-per-artifact strategy.
type Store struct{}

// NewStore creates a new BuildInfoStore.
func NewStore() *Store {
	return &Store{}
}

// Get retrieves the build info of an artifact from the state directory.
func (s *Store) Get(stateDir, artifact string) (*domain.BuildInfo, error) {
	filename := s.filename(stateDir, artifact)
	//nolint:gosec // Path is constructed from the state directory and a hashed name
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "artifact", artifact)
	}

	var info domain.BuildInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "artifact", artifact)
	}

	return &info, nil
}

// Put stores the build info.
func (s *Store) Put(stateDir string, info domain.BuildInfo) error {
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}

	if err := os.MkdirAll(stateDir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}

	//nolint:gosec // Path is constructed from the state directory and a hashed name
	if err := os.WriteFile(s.filename(stateDir, info.Artifact), data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "artifact", info.Artifact)
	}

	return nil
}

// Remove deletes the state directory and everything recorded in it.
func (s *Store) Remove(stateDir string) error {
	if err := os.RemoveAll(stateDir); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	return nil
}

func (s *Store) filename(stateDir, artifact string) string {
	var sum [8]byte
	h := xxhash.Sum64String(artifact)
	for i := range sum {
		sum[i] = byte(h >> (56 - 8*i))
	}
	return filepath.Join(stateDir, hex.EncodeToString(sum[:])+".json")
}
