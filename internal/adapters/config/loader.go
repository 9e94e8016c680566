// Package config loads the kiln.yaml project manifest.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DebugArea is the debug area manifest loading is logged under.
const DebugArea = "configure"

var _ ports.ManifestLoader = (*Loader)(nil)

// Loader implements ports.ManifestLoader using a YAML file.
type Loader struct {
	logger   ports.Logger
	validate *validator.Validate
}

// NewLoader creates a new manifest loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Load reads kiln.yaml from root. A missing manifest yields the defaults.
func (l *Loader) Load(root string) (*domain.Manifest, error) {
	path := filepath.Join(root, domain.ManifestFileName)
	data, err := os.ReadFile(path) //nolint:gosec // path is derived from the project root
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.logger.Debug(DebugArea, "no "+domain.ManifestFileName+", using defaults")
			return domain.DefaultManifest(), nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
	}

	return l.Parse(data)
}

// Parse decodes and validates manifest data, filling unset fields with defaults.
func (l *Loader) Parse(data []byte) (*domain.Manifest, error) {
	var dto Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&dto); err != nil && !errors.Is(err, io.EOF) {
		return nil, zerr.Wrap(err, domain.ErrManifestParseFailed.Error())
	}

	if err := l.validate.Struct(&dto); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, zerr.With(zerr.With(domain.ErrManifestInvalid, "field", verrs[0].Namespace()), "rule", verrs[0].Tag())
		}
		return nil, zerr.Wrap(err, domain.ErrManifestInvalid.Error())
	}

	return toDomain(&dto)
}

func toDomain(dto *Manifest) (*domain.Manifest, error) {
	m := domain.DefaultManifest()
	m.Project = dto.Project
	if dto.Graph != "" {
		m.Graph = dto.Graph
	}

	t := &m.Tests
	if dto.Tests.Root != "" {
		t.Root = dto.Tests.Root
	}
	if dto.Tests.Pattern != "" {
		if _, err := filepath.Match(dto.Tests.Pattern, "x"); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestInvalid.Error()), "field", "tests.pattern")
		}
		t.Pattern = dto.Tests.Pattern
	}
	t.Binary = dto.Tests.Binary
	t.Jobs = dto.Tests.Jobs

	var err error
	if dto.Tests.Timeout != "" {
		if t.Timeout, err = parseDuration("tests.timeout", dto.Tests.Timeout); err != nil {
			return nil, err
		}
	}
	if dto.Tests.SuiteTimeout != "" {
		if t.SuiteTimeout, err = parseDuration("tests.suite_timeout", dto.Tests.SuiteTimeout); err != nil {
			return nil, err
		}
	}

	if len(dto.Tests.Groups) > 0 {
		seen := make(map[string]bool, len(dto.Tests.Groups))
		t.Groups = make([]domain.TestGroup, 0, len(dto.Tests.Groups))
		for _, g := range dto.Tests.Groups {
			if seen[g.Dir] {
				return nil, zerr.With(zerr.With(domain.ErrManifestInvalid, "field", "tests.groups"), "duplicate", g.Dir)
			}
			seen[g.Dir] = true
			t.Groups = append(t.Groups, domain.TestGroup{Dir: g.Dir, Mode: domain.TestMode(g.Mode)})
		}
	}

	return m, nil
}

func parseDuration(field, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrManifestInvalid.Error()), "field", field)
	}
	if d < 0 {
		return 0, zerr.With(zerr.With(domain.ErrManifestInvalid, "field", field), "value", value)
	}
	return d, nil
}
