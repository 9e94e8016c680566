// Package outdir owns the files configure and generate write into the output directory.
package outdir

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ConfigStore = (*Store)(nil)

var rename = os.Rename

// Store implements ports.ConfigStore on the local file system.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// configDocument is the on-disk form of config.json.
type configDocument struct {
	Args   []string       `json:"args"`
	Values map[string]any `json:"values"`
}

// Save writes config.mk and config.json. Either both are replaced or neither is.
func (s *Store) Save(outDir string, cfg *domain.BuildConfiguration) error {
	jsonData, err := RenderJSON(cfg)
	if err != nil {
		return err
	}

	err = writeAll(outDir, []domain.BuildFile{
		{Name: domain.ConfigMakeFileName, Content: RenderMake(cfg)},
		{Name: domain.ConfigJSONFileName, Content: jsonData},
	})
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigWriteFailed.Error())
	}
	return nil
}

// Load reads the configuration back from config.json.
func (s *Store) Load(outDir string) (*domain.BuildConfiguration, error) {
	path := filepath.Join(outDir, domain.ConfigJSONFileName)
	data, err := os.ReadFile(path) //nolint:gosec // path is inside the output directory
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(domain.ErrNotConfigured, "path", path)
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var doc configDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	return domain.NewBuildConfiguration(doc.Args, doc.Values), nil
}

// WriteBuildFiles writes the rendered build files. Either all are replaced or none is.
func (s *Store) WriteBuildFiles(outDir string, files []domain.BuildFile) error {
	if err := writeAll(outDir, files); err != nil {
		return zerr.Wrap(err, domain.ErrBuildFilesWriteFailed.Error())
	}
	return nil
}

// RenderJSON renders the build-options descriptor. Keys are sorted.
func RenderJSON(cfg *domain.BuildConfiguration) ([]byte, error) {
	args := cfg.Args()
	if args == nil {
		args = []string{}
	}
	data, err := json.MarshalIndent(configDocument{Args: args, Values: cfg.Values()}, "", "  ")
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigWriteFailed.Error())
	}
	return append(data, '\n'), nil
}

// RenderMake renders the configuration as make variable assignments, one per key in sorted order.
func RenderMake(cfg *domain.BuildConfiguration) []byte {
	var buf bytes.Buffer
	buf.WriteString("# Generated by kiln configure. Do not edit.\n")
	fmt.Fprintf(&buf, "CONFIGURE_ARGS := %s\n", strings.Join(cfg.Args(), " "))
	for _, key := range cfg.Keys() {
		fmt.Fprintf(&buf, "%s := %s\n", strings.ToUpper(key), cfg.String(key))
	}
	return buf.Bytes()
}

// writeAll stages every file next to its destination and renames them into place
// only once all of them were written. Files it replaces are kept aside until every
// rename succeeded and are restored otherwise.
func writeAll(outDir string, files []domain.BuildFile) error {
	if err := os.MkdirAll(outDir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create output directory"), "path", outDir)
	}

	staged := make([]string, 0, len(files))
	cleanup := func() {
		for _, tmp := range staged {
			_ = os.Remove(tmp)
		}
	}

	for _, f := range files {
		tmp, err := stage(outDir, f)
		if err != nil {
			cleanup()
			return err
		}
		staged = append(staged, tmp)
	}

	type backup struct{ dst, path string }
	var (
		backups []backup
		placed  []string
	)
	rollback := func() {
		for _, dst := range placed {
			_ = os.Remove(dst)
		}
		for _, b := range backups {
			_ = rename(b.path, b.dst)
		}
		cleanup()
	}

	for i, f := range files {
		dst := filepath.Join(outDir, f.Name)
		if info, err := os.Lstat(dst); err == nil {
			if info.IsDir() {
				rollback()
				return zerr.With(zerr.New("destination is a directory"), "path", dst)
			}
			bak := staged[i] + ".bak"
			if err := rename(dst, bak); err != nil {
				rollback()
				return zerr.With(zerr.Wrap(err, "failed to set aside existing file"), "path", dst)
			}
			backups = append(backups, backup{dst: dst, path: bak})
		}
		if err := rename(staged[i], dst); err != nil {
			rollback()
			return zerr.With(zerr.Wrap(err, "failed to move file into place"), "path", dst)
		}
		placed = append(placed, dst)
	}

	for _, b := range backups {
		_ = os.Remove(b.path)
	}
	return nil
}

func stage(outDir string, f domain.BuildFile) (string, error) {
	tmp, err := os.CreateTemp(outDir, "."+f.Name+".*")
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to create temporary file"), "file", f.Name)
	}

	_, err = tmp.Write(f.Content)
	if err == nil {
		err = tmp.Chmod(domain.FilePerm)
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return "", zerr.With(zerr.Wrap(err, "failed to write temporary file"), "file", f.Name)
	}
	return tmp.Name(), nil
}
