package domain

import "time"

// Manifest is the project description read from kiln.yaml.
type Manifest struct {
	Project string
	// Graph is the target graph file relative to the project root.
	Graph string
	Tests TestSettings
}

// TestSettings configures test discovery and dispatch.
type TestSettings struct {
	// Root is the test corpus directory relative to the project root.
	Root string
	// Pattern is the glob test file names must match.
	Pattern string
	// Binary overrides the executable the cases run against, relative to the project root.
	// Empty means the artifact of the primary target.
	Binary string
	// Timeout bounds a single case.
	Timeout time.Duration
	// SuiteTimeout bounds the whole run. Zero means unbounded.
	SuiteTimeout time.Duration
	// Jobs bounds the parallel worker pool. Zero means the host core count.
	Jobs   int
	Groups []TestGroup
}

// TestGroup is a directory of test cases sharing one execution mode.
type TestGroup struct {
	Dir  string
	Mode TestMode
}

// DefaultManifest returns the manifest used when kiln.yaml is absent.
func DefaultManifest() *Manifest {
	return &Manifest{
		Graph: DefaultGraphFileName,
		Tests: TestSettings{
			Root:    "test",
			Pattern: "test-*",
			Timeout: 2 * time.Minute,
			Groups: []TestGroup{
				{Dir: "parallel", Mode: ModeParallel},
				{Dir: "sequential", Mode: ModeSequential},
			},
		},
	}
}
