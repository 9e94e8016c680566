package generator

import (
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
)

// sanitizers maps enable_<x> keys to -fsanitize names, in flag order.
var sanitizers = []struct{ key, name string }{
	{"enable_asan", "address"},
	{"enable_ubsan", "undefined"},
	{"enable_tsan", "thread"},
}

// Toolchain derives the compilers and configuration-wide flags from cfg.
func Toolchain(cfg *domain.BuildConfiguration) domain.Toolchain {
	tc := domain.Toolchain{
		CC:  orDefault(cfg.String(domain.KeyCC), "cc"),
		CXX: orDefault(cfg.String(domain.KeyCXX), "c++"),
		AR:  orDefault(cfg.String(domain.KeyAR), "ar"),
	}

	if cfg.BuildType() == domain.BuildTypeDebug {
		tc.CFlags = append(tc.CFlags, "-g", "-O0")
		tc.Defines = append(tc.Defines, "DEBUG", "_DEBUG")
	} else {
		tc.CFlags = append(tc.CFlags, "-O3")
		tc.Defines = append(tc.Defines, "NDEBUG")
	}

	var sanitize []string
	for _, s := range sanitizers {
		if cfg.Bool(s.key) {
			sanitize = append(sanitize, s.name)
		}
	}
	if len(sanitize) > 0 {
		flag := "-fsanitize=" + strings.Join(sanitize, ",")
		tc.CFlags = append(tc.CFlags, flag, "-fno-omit-frame-pointer")
		tc.LDFlags = append(tc.LDFlags, flag)
	}

	if cfg.Bool("enable_lto") {
		tc.CFlags = append(tc.CFlags, "-flto")
		tc.LDFlags = append(tc.LDFlags, "-flto")
	}
	switch {
	case cfg.Bool("enable_pgo_generate"):
		tc.CFlags = append(tc.CFlags, "-fprofile-generate")
		tc.LDFlags = append(tc.LDFlags, "-fprofile-generate")
	case cfg.Bool("enable_pgo_use"):
		tc.CFlags = append(tc.CFlags, "-fprofile-use", "-Wno-missing-profile")
	}

	if cfg.Bool(domain.KeyUseCcache) {
		tc.Launcher = "ccache"
	}
	return tc
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
