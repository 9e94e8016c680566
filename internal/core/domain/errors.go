package domain

import "go.trai.ch/zerr"

// Configuration errors.
var (
	// ErrUnknownOption is returned when a configure token does not name a declared option.
	ErrUnknownOption = zerr.New("unknown configure option")

	// ErrConflictingOptions is returned when two options cannot be combined.
	ErrConflictingOptions = zerr.New("conflicting configure options")

	// ErrInvalidOptionValue is returned when an option value is not one of its allowed choices.
	ErrInvalidOptionValue = zerr.New("invalid configure option value")

	// ErrUnexpectedArgument is returned when configure receives a positional argument.
	ErrUnexpectedArgument = zerr.New("unexpected configure argument")

	// ErrUnsupportedPlatform is returned for a destination OS and CPU combination that cannot be built.
	ErrUnsupportedPlatform = zerr.New("unsupported platform")

	// ErrToolchainMissing is returned when a required external tool cannot be found.
	ErrToolchainMissing = zerr.New("required toolchain not found")

	// ErrHelpRequested is returned by the resolver when the operator asked for the option listing.
	ErrHelpRequested = zerr.New("help requested")

	// ErrOutputDirLocked is returned when another run holds the output directory.
	ErrOutputDirLocked = zerr.New("output directory is locked by another run")

	// ErrNotConfigured is returned when a later stage runs before configure.
	ErrNotConfigured = zerr.New("project is not configured, run 'kiln configure' first")

	// ErrConfigReadFailed is returned when the generated configuration cannot be read back.
	ErrConfigReadFailed = zerr.New("failed to read generated configuration")

	// ErrConfigWriteFailed is returned when the generated configuration cannot be written.
	ErrConfigWriteFailed = zerr.New("failed to write generated configuration")
)

// Target graph and generation errors.
var (
	// ErrTargetAlreadyExists is returned when attempting to add a target with a name that already exists.
	ErrTargetAlreadyExists = zerr.New("target already exists")

	// ErrDanglingDependency is returned when a target references a dependency that doesn't exist in the graph.
	ErrDanglingDependency = zerr.New("dangling target dependency")

	// ErrCycleDetected is returned when a cycle is detected in the target dependency graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrMissingSource is returned when a target references a source file that does not exist.
	ErrMissingSource = zerr.New("missing source file")

	// ErrInvalidTargetType is returned for a target type other than executable or library.
	ErrInvalidTargetType = zerr.New("invalid target type")

	// ErrConditionEvaluation is returned when a condition cannot be evaluated to a boolean.
	ErrConditionEvaluation = zerr.New("failed to evaluate target condition")

	// ErrTargetNotFound is returned when a requested target is not found in the graph.
	ErrTargetNotFound = zerr.New("target not found")

	// ErrNoPrimaryTarget is returned when no target is given and the graph declares no primary target.
	ErrNoPrimaryTarget = zerr.New("no target specified and no primary target declared")

	// ErrGraphReadFailed is returned when the target graph file cannot be read.
	ErrGraphReadFailed = zerr.New("failed to read target graph")

	// ErrGraphParseFailed is returned when the target graph file cannot be parsed.
	ErrGraphParseFailed = zerr.New("failed to parse target graph")

	// ErrBuildFilesWriteFailed is returned when the generated build files cannot be written.
	ErrBuildFilesWriteFailed = zerr.New("failed to write build files")
)

// Build, test and project errors.
var (
	// ErrBuildFailed is returned when the native orchestrator exits non-zero.
	ErrBuildFailed = zerr.New("build failed")

	// ErrTestsFailed is returned when at least one test case failed, crashed or timed out.
	ErrTestsFailed = zerr.New("tests failed")

	// ErrTestNotFound is returned when a selected test path or group does not exist.
	ErrTestNotFound = zerr.New("test not found")

	// ErrNoTestBinary is returned when no binary is available to run the test corpus against.
	ErrNoTestBinary = zerr.New("no test binary available")

	// ErrManifestReadFailed is returned when the project manifest cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read project manifest")

	// ErrManifestParseFailed is returned when the project manifest cannot be parsed.
	ErrManifestParseFailed = zerr.New("failed to parse project manifest")

	// ErrManifestInvalid is returned when the project manifest fails validation.
	ErrManifestInvalid = zerr.New("invalid project manifest")

	// ErrStoreReadFailed is returned when the build info cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read build info")

	// ErrStoreWriteFailed is returned when the build info cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write build info")

	// ErrUnknownReporter is returned for a report format other than linear or tap.
	ErrUnknownReporter = zerr.New("unknown report format")
)
