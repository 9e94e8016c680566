package outdir

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
)

// Lock takes exclusive ownership of outDir by creating its lock file.
// A second run fails fast with ErrOutputDirLocked instead of waiting.
func (s *Store) Lock(outDir string) (func() error, error) {
	if err := os.MkdirAll(outDir, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigWriteFailed.Error()), "path", outDir)
	}

	path := filepath.Join(outDir, domain.LockFileName)
	//nolint:gosec // path is inside the output directory
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, domain.FilePerm)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			holder, _ := os.ReadFile(path) //nolint:gosec // path is inside the output directory
			return nil, zerr.With(zerr.With(domain.ErrOutputDirLocked, "path", path), "pid", string(holder))
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigWriteFailed.Error()), "path", path)
	}

	_, writeErr := fmt.Fprintf(f, "%d", os.Getpid())
	if closeErr := f.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		_ = os.Remove(path)
		return nil, zerr.With(zerr.Wrap(writeErr, domain.ErrConfigWriteFailed.Error()), "path", path)
	}

	var once sync.Once
	var unlockErr error
	return func() error {
		once.Do(func() {
			if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				unlockErr = zerr.With(zerr.Wrap(err, "failed to release output directory lock"), "path", path)
			}
		})
		return unlockErr
	}, nil
}
