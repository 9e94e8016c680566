//go:build !unix

package shell

import "os/exec"

// killProcessGroup leaves the default cancellation in place; only the direct child is killed.
func killProcessGroup(*exec.Cmd) {}
