package configure

import (
	"fmt"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
)

// probe is one external tool configure must find.
type probe struct {
	key string
	env string
	def string
}

// compilers are resolved from the environment, falling back to the usual names.
var compilers = []probe{
	{key: domain.KeyCC, env: "CC", def: "cc"},
	{key: domain.KeyCXX, env: "CXX", def: "c++"},
	{key: domain.KeyAR, env: "AR", def: "ar"},
}

// probeToolchain checks that every tool the configuration needs is on PATH and
// records the compiler names in resolved.
func (r *Resolver) probeToolchain(resolved map[string]any) error {
	for _, p := range compilers {
		tool := r.host.Getenv(p.env)
		if tool == "" {
			tool = p.def
		}
		if err := r.lookPath(tool, "env", p.env); err != nil {
			return err
		}
		resolved[p.key] = tool
	}

	if resolved[domain.KeyUseNinja] != true {
		if err := r.lookPath("make", "flag", "(default backend, pass --ninja to use ninja)"); err != nil {
			return err
		}
	}

	for _, opt := range r.options {
		if opt.Requires == "" || resolved[opt.Key] != opt.Set {
			continue
		}
		if err := r.lookPath(opt.Requires, "flag", opt.FlagName()); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) lookPath(tool, reason, by string) error {
	path, err := r.host.LookPath(tool)
	if err != nil {
		return zerr.With(zerr.With(domain.ErrToolchainMissing, "tool", tool), reason, by)
	}
	r.logger.Debug(DebugArea, fmt.Sprintf("found %s at %s", tool, path))
	return nil
}
