package domain

import "strings"

// Configuration keys.
const (
	KeyBuildType = "build_type"
	KeyDestOS    = "dest_os"
	KeyDestCPU   = "dest_cpu"
	KeyHostOS    = "host_os"
	KeyHostArch  = "host_arch"
	KeyPrefix    = "prefix"
	KeyCC        = "cc"
	KeyCXX       = "cxx"
	KeyAR        = "ar"
	KeyOutputDir = "output_dir"
	KeyUseNinja  = "use_ninja"
	KeyUseCcache = "use_ccache"
	KeyIntl      = "intl"
)

// Build types.
const (
	BuildTypeRelease = "Release"
	BuildTypeDebug   = "Debug"
)

// IntlModes lists the accepted values of --with-intl.
var IntlModes = []string{"full-icu", "small-icu", "system-icu", "none"}

// Features are the components that ship enabled and can be turned off with --without-<feature>.
var Features = []string{"ssl", "inspector", "npm", "corepack", "node_snapshot"}

// SharedDependencies are the bundled dependencies that can be linked from the system with --shared-<dep>.
var SharedDependencies = []string{
	"openssl", "zlib", "libuv", "nghttp2", "brotli", "cares", "llhttp", "simdjson", "sqlite", "zstd",
}

// Instrumentation lists the --enable-<x> switches.
var Instrumentation = []string{"asan", "ubsan", "tsan", "lto", "pgo_generate", "pgo_use"}

// OptionKind distinguishes switches from options that take a value.
type OptionKind int

const (
	// OptionSwitch takes no value; its presence assigns Set to the key.
	OptionSwitch OptionKind = iota
	// OptionValue requires a value in --flag=value or --flag value form.
	OptionValue
)

// Option describes one configure flag.
type Option struct {
	// Flag is the flag name without leading dashes.
	Flag string
	// Key is the configuration key the flag drives.
	Key  string
	Kind OptionKind
	// Set is the value assigned when a switch is present.
	Set any
	// Default is the value of Key when no flag drives it. Nil means the resolver derives it.
	Default any
	// Choices restricts the accepted values of a value option.
	Choices []string
	Usage   string
	// Conflicts names flags that cannot be combined with this one.
	Conflicts []string
	// Requires names an external tool that must be on PATH when the flag is given.
	Requires string
}

// FlagName returns the flag in its command-line form.
func (o Option) FlagName() string {
	return "--" + o.Flag
}

// FlagFor converts a configuration key suffix into its flag spelling.
func FlagFor(suffix string) string {
	return strings.ReplaceAll(suffix, "_", "-")
}

// Options returns the declared option table in display order.
func Options() []Option {
	opts := []Option{
		{
			Flag: "debug", Key: KeyBuildType, Kind: OptionSwitch,
			Set: BuildTypeDebug, Default: BuildTypeRelease,
			Usage: "build the Debug variant instead of Release",
		},
		{
			Flag: "dest-os", Key: KeyDestOS, Kind: OptionValue, Choices: ValidOS,
			Usage: "operating system to build for (default: host)",
		},
		{
			Flag: "dest-cpu", Key: KeyDestCPU, Kind: OptionValue, Choices: ValidArch,
			Usage: "CPU architecture to build for (default: host)",
		},
		{
			Flag: "prefix", Key: KeyPrefix, Kind: OptionValue, Default: "/usr/local",
			Usage: "install prefix",
		},
		{
			Flag: "with-intl", Key: KeyIntl, Kind: OptionValue, Choices: IntlModes, Default: "full-icu",
			Usage: "internationalization support",
		},
		{
			Flag: "without-intl", Key: KeyIntl, Kind: OptionSwitch, Set: "none",
			Usage: "build without internationalization support (same as --with-intl=none)",
		},
		{
			Flag: "ninja", Key: KeyUseNinja, Kind: OptionSwitch, Set: true, Default: false,
			Usage: "generate build files for ninja instead of make", Requires: "ninja",
		},
		{
			Flag: "with-ccache", Key: KeyUseCcache, Kind: OptionSwitch, Set: true, Default: false,
			Usage: "compile through ccache", Requires: "ccache",
		},
	}

	for _, f := range Features {
		opts = append(opts, Option{
			Flag: "without-" + FlagFor(f), Key: "use_" + f, Kind: OptionSwitch, Set: false, Default: true,
			Usage: "build without " + FlagFor(f) + " support",
		})
	}
	for _, d := range SharedDependencies {
		opts = append(opts, Option{
			Flag: "shared-" + FlagFor(d), Key: "shared_" + d, Kind: OptionSwitch, Set: true, Default: false,
			Usage: "link against the system " + d + " instead of the bundled copy",
		})
	}
	for _, x := range Instrumentation {
		opts = append(opts, Option{
			Flag: "enable-" + FlagFor(x), Key: "enable_" + x, Kind: OptionSwitch, Set: true, Default: false,
			Usage: "enable " + FlagFor(x),
		})
	}

	for i := range opts {
		opts[i].Conflicts = optionConflicts[opts[i].Flag]
	}
	return opts
}

// optionConflicts pairs flags that cannot be combined, listed in both directions.
var optionConflicts = map[string][]string{
	"without-ssl":         {"shared-openssl"},
	"shared-openssl":      {"without-ssl"},
	"enable-pgo-generate": {"enable-pgo-use"},
	"enable-pgo-use":      {"enable-pgo-generate"},
	"enable-asan":         {"enable-tsan"},
	"enable-tsan":         {"enable-asan"},
}
