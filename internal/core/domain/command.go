package domain

// Command is an external process invocation.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Env holds extra KEY=VALUE pairs layered over the process environment.
	Env []string
}
