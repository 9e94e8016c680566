// Package detector inspects the machine kiln runs on.
package detector

import (
	"os"
	"os/exec"
	"runtime"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
)

var _ ports.Host = (*Host)(nil)

// Host implements ports.Host for the running process.
type Host struct{}

// NewHost creates a new Host.
func NewHost() *Host {
	return &Host{}
}

// Platform returns the host platform in destination naming.
func (h *Host) Platform() domain.Platform {
	return domain.PlatformFromGo(runtime.GOOS, runtime.GOARCH)
}

// LookPath resolves a tool on PATH.
func (h *Host) LookPath(tool string) (string, error) {
	return exec.LookPath(tool)
}

// Getenv returns the value of an environment variable.
func (h *Host) Getenv(key string) string {
	return os.Getenv(key)
}

// NumCPU returns the number of usable cores.
func (h *Host) NumCPU() int {
	return runtime.NumCPU()
}
