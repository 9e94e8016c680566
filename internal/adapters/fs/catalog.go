package fs

import (
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.TestCatalog = (*Catalog)(nil)

// catalogIgnores are directory names inside a group that never hold cases.
var catalogIgnores = []string{"fixtures", "tmp", "node_modules"}

// Catalog discovers test cases on disk.
type Catalog struct {
	walker *Walker
}

// NewCatalog creates a new Catalog.
func NewCatalog(walker *Walker) *Catalog {
	return &Catalog{walker: walker}
}

// Discover lists the cases of every group under root/settings.Root.
// Groups keep their declaration order; the cases of one group are sorted by ID.
// A declared group without a directory contributes no cases. Case paths are absolute.
func (c *Catalog) Discover(root string, settings domain.TestSettings) ([]domain.TestCase, error) {
	testRoot, err := filepath.Abs(filepath.Join(root, settings.Root))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve test root"), "root", root)
	}
	pattern := settings.Pattern
	if pattern == "" {
		pattern = "*"
	}
	if _, err := filepath.Match(pattern, "x"); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestInvalid.Error()), "pattern", pattern)
	}

	var cases []domain.TestCase
	for _, group := range settings.Groups {
		dir := filepath.Join(testRoot, group.Dir)
		info, err := os.Stat(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, zerr.With(zerr.Wrap(err, "failed to stat test group"), "group", group.Dir)
		}
		if !info.IsDir() {
			return nil, zerr.With(zerr.New("test group is not a directory"), "group", group.Dir)
		}

		var found []domain.TestCase
		for file := range c.walker.WalkFiles(dir, catalogIgnores) {
			if ok, _ := filepath.Match(pattern, filepath.Base(file)); !ok {
				continue
			}
			rel, err := filepath.Rel(testRoot, file)
			if err != nil {
				return nil, zerr.Wrap(err, "failed to resolve test path")
			}
			found = append(found, domain.TestCase{
				ID:    filepath.ToSlash(rel),
				Path:  file,
				Group: group.Dir,
				Mode:  group.Mode,
			})
		}
		slices.SortFunc(found, func(a, b domain.TestCase) int {
			switch {
			case a.ID < b.ID:
				return -1
			case a.ID > b.ID:
				return 1
			}
			return 0
		})
		cases = append(cases, found...)
	}

	return cases, nil
}
