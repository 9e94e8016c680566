package domain

// TestMode is the execution mode of a test group.
type TestMode string

const (
	// ModeParallel cases may run concurrently with each other.
	ModeParallel TestMode = "parallel"
	// ModeSequential cases run one at a time in declaration order.
	ModeSequential TestMode = "sequential"
)

// TestCase is one test file of the corpus.
type TestCase struct {
	// ID is the path relative to the test root, using forward slashes.
	ID string
	// Path is the file path the binary is invoked with.
	Path  string
	Group string
	Mode  TestMode
}
