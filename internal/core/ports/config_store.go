package ports

import "go.trai.ch/kiln/internal/core/domain"

// ConfigStore owns the generated files of an output directory.
//
//go:generate mockgen -source=config_store.go -destination=mocks/mock_config_store.go -package=mocks
type ConfigStore interface {
	// Lock takes exclusive ownership of the output directory.
	// It fails with ErrOutputDirLocked when another run holds it.
	Lock(outDir string) (unlock func() error, err error)

	// Save writes config.mk and config.json. Either both are written or neither is.
	Save(outDir string, cfg *domain.BuildConfiguration) error

	// Load reads the configuration back from config.json.
	// It fails with ErrNotConfigured when configure never ran.
	Load(outDir string) (*domain.BuildConfiguration, error)

	// WriteBuildFiles writes the rendered build files. Either all are written or none is.
	WriteBuildFiles(outDir string, files []domain.BuildFile) error
}
