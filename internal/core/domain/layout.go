package domain

import "path/filepath"

const (
	// ManifestFileName is the name of the optional project manifest.
	ManifestFileName = "kiln.yaml"

	// DefaultGraphFileName is the default name of the target graph file.
	DefaultGraphFileName = "targets.hcl"

	// DefaultOutputDir is the default output directory, relative to the project root.
	DefaultOutputDir = "out"

	// ConfigMakeFileName is the makefile-style configuration written by configure.
	ConfigMakeFileName = "config.mk"

	// ConfigJSONFileName is the build-options descriptor written by configure.
	ConfigJSONFileName = "config.json"

	// MakefileName is the build file for the make backend.
	MakefileName = "Makefile"

	// NinjaFileName is the build file for the ninja backend.
	NinjaFileName = "build.ninja"

	// LockFileName guards the output directory against concurrent runs.
	LockFileName = ".kiln.lock"

	// StateDirName holds the build info records of generated artifacts.
	StateDirName = ".kiln-state"

	// BuildFilesArtifact is the build info key of the generated build files.
	BuildFilesArtifact = "build-files"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// Layout resolves the paths a run works with.
type Layout struct {
	// Root is the project root.
	Root string
	// OutputDir is the output directory relative to Root.
	OutputDir string
}

// NewLayout returns a Layout, falling back to the default output directory.
func NewLayout(root, outputDir string) Layout {
	if root == "" {
		root = "."
	}
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}
	return Layout{Root: root, OutputDir: filepath.Clean(outputDir)}
}

// Out returns the output directory path.
func (l Layout) Out() string {
	return filepath.Join(l.Root, l.OutputDir)
}

// StateDir returns the directory holding build info records.
func (l Layout) StateDir() string {
	return filepath.Join(l.Out(), StateDirName)
}

// BuildTypeDir returns the directory holding compiled outputs of a build type.
func (l Layout) BuildTypeDir(buildType string) string {
	return filepath.Join(l.Out(), buildType)
}

// GeneratedFiles returns every file configure and generate write into the output directory.
func (l Layout) GeneratedFiles() []string {
	return []string{
		filepath.Join(l.Out(), ConfigMakeFileName),
		filepath.Join(l.Out(), ConfigJSONFileName),
		filepath.Join(l.Out(), MakefileName),
		filepath.Join(l.Out(), NinjaFileName),
	}
}
