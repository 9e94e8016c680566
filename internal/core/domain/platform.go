package domain

import "slices"

// Platform identifies an operating system and CPU architecture pair.
type Platform struct {
	OS   string
	Arch string
}

// ValidOS lists the destination operating systems a build can target.
var ValidOS = []string{"aix", "android", "freebsd", "linux", "mac", "openbsd", "os400", "solaris", "win"}

// ValidArch lists the destination CPU architectures a build can target.
var ValidArch = []string{"arm", "arm64", "ia32", "loong64", "mips64el", "ppc64", "riscv64", "s390x", "x64"}

// supportedArch is the support matrix of destination OS to CPU architectures.
var supportedArch = map[string][]string{
	"aix":     {"ppc64"},
	"android": {"arm", "arm64", "ia32", "x64"},
	"freebsd": {"arm64", "x64"},
	"linux":   {"arm", "arm64", "ia32", "loong64", "mips64el", "ppc64", "riscv64", "s390x", "x64"},
	"mac":     {"arm64", "x64"},
	"openbsd": {"arm64", "x64"},
	"os400":   {"ppc64"},
	"solaris": {"x64"},
	"win":     {"arm64", "ia32", "x64"},
}

// Supported reports whether the platform is in the support matrix.
func (p Platform) Supported() bool {
	return slices.Contains(supportedArch[p.OS], p.Arch)
}

// String returns the OS/arch form of the platform.
func (p Platform) String() string {
	return p.OS + "/" + p.Arch
}

// goOS maps GOOS values to destination OS names.
var goOS = map[string]string{
	"aix":     "aix",
	"android": "android",
	"darwin":  "mac",
	"freebsd": "freebsd",
	"illumos": "solaris",
	"ios":     "mac",
	"linux":   "linux",
	"openbsd": "openbsd",
	"solaris": "solaris",
	"windows": "win",
}

// goArch maps GOARCH values to destination CPU names.
var goArch = map[string]string{
	"386":      "ia32",
	"amd64":    "x64",
	"arm":      "arm",
	"arm64":    "arm64",
	"loong64":  "loong64",
	"mips64le": "mips64el",
	"ppc64":    "ppc64",
	"ppc64le":  "ppc64",
	"riscv64":  "riscv64",
	"s390x":    "s390x",
}

// PlatformFromGo translates a GOOS/GOARCH pair. Unknown values pass through unchanged.
func PlatformFromGo(goos, goarch string) Platform {
	p := Platform{OS: goos, Arch: goarch}
	if v, ok := goOS[goos]; ok {
		p.OS = v
	}
	if v, ok := goArch[goarch]; ok {
		p.Arch = v
	}
	return p
}
