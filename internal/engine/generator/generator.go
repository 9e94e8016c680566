// Package generator resolves the target graph against a build configuration and renders
// the native build files.
package generator

import (
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

// DebugArea is the debug area the generator logs under.
const DebugArea = "generate"

// Generator turns a validated target graph into a build plan and its build files.
type Generator struct {
	verifier ports.SourceVerifier
	logger   ports.Logger
}

// New creates a Generator.
func New(verifier ports.SourceVerifier, logger ports.Logger) *Generator {
	return &Generator{verifier: verifier, logger: logger}
}

// Generate plans the build and renders both backends from the same plan.
// Nothing is returned unless every check passed.
func (g *Generator) Generate(
	layout domain.Layout, graph *domain.TargetGraph, cfg *domain.BuildConfiguration,
) ([]domain.BuildFile, error) {
	plan, err := g.Plan(layout, graph, cfg)
	if err != nil {
		return nil, err
	}
	return []domain.BuildFile{
		{Name: domain.MakefileName, Content: RenderMakefile(plan)},
		{Name: domain.NinjaFileName, Content: RenderNinja(plan)},
	}, nil
}

// Plan validates graph, applies its conditions to cfg and checks that every resolved source exists.
func (g *Generator) Plan(
	layout domain.Layout, graph *domain.TargetGraph, cfg *domain.BuildConfiguration,
) (*domain.BuildPlan, error) {
	if err := graph.Validate(); err != nil {
		return nil, err
	}

	srcRoot, err := filepath.Rel(layout.Out(), layout.Root)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to locate project root"), "output_dir", layout.OutputDir)
	}

	plan := &domain.BuildPlan{
		BuildType:  cfg.BuildType(),
		SourceRoot: filepath.ToSlash(srcRoot),
		Toolchain:  Toolchain(cfg),
		Primary:    graph.Primary(),
	}

	for target := range graph.Walk() {
		rt, err := resolve(target, cfg, plan.BuildType)
		if err != nil {
			return nil, err
		}
		plan.Targets = append(plan.Targets, rt)
	}

	for _, rt := range plan.Targets {
		missing, err := g.verifier.Missing(layout.Root, rt.Sources)
		if err != nil {
			return nil, zerr.With(err, "target", rt.Name)
		}
		if len(missing) > 0 {
			return nil, zerr.With(zerr.With(domain.ErrMissingSource, "target", rt.Name), "source", missing[0])
		}
	}

	g.logger.Debug(DebugArea, fmt.Sprintf("planned %d targets for %s", len(plan.Targets), plan.BuildType))
	return plan, nil
}

// resolve applies the conditional blocks of t in declaration order.
func resolve(t domain.Target, cfg *domain.BuildConfiguration, buildType string) (domain.ResolvedTarget, error) {
	name := t.Name.String()
	rt := domain.ResolvedTarget{
		Name:         name,
		Type:         t.Type,
		Sources:      slices.Clone(t.Sources),
		Dependencies: domain.Strings(t.Dependencies),
		CFlags:       slices.Clone(t.CFlags),
		LDFlags:      slices.Clone(t.LDFlags),
		Defines:      slices.Clone(t.Defines),
	}

	for _, c := range t.Conditions {
		if c.When != nil {
			ok, err := c.When.Evaluate(cfg)
			if err != nil {
				return rt, zerr.With(err, "target", name)
			}
			if !ok {
				continue
			}
		}
		rt.Sources = appendUnique(rt.Sources, c.Sources...)
		rt.Dependencies = appendUnique(rt.Dependencies, domain.Strings(c.Dependencies)...)
		rt.CFlags = append(rt.CFlags, c.CFlags...)
		rt.LDFlags = append(rt.LDFlags, c.LDFlags...)
		rt.Defines = append(rt.Defines, c.Defines...)
	}

	rt.Artifact = path.Join(buildType, t.ArtifactName(cfg.String(domain.KeyDestOS)))
	for _, src := range rt.Sources {
		rt.Objects = append(rt.Objects, objectPath(buildType, name, src))
	}
	return rt, nil
}

// objectPath places the object of src under <buildType>/obj/<target>/.
func objectPath(buildType, target, src string) string {
	clean := path.Clean(filepath.ToSlash(src))
	clean = strings.ReplaceAll(clean, "../", "__/")
	return path.Join(buildType, "obj", target, strings.TrimSuffix(clean, path.Ext(clean))+".o")
}

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		if !slices.Contains(dst, v) {
			dst = append(dst, v)
		}
	}
	return dst
}

// linkOrder returns the transitive dependencies of t, dependents before their dependencies.
func linkOrder(p *domain.BuildPlan, t *domain.ResolvedTarget) []*domain.ResolvedTarget {
	deps := make(map[string]bool)
	var visit func(name string)
	visit = func(name string) {
		dep, ok := p.Target(name)
		if !ok || deps[name] {
			return
		}
		deps[name] = true
		for _, d := range dep.Dependencies {
			visit(d)
		}
	}
	for _, d := range t.Dependencies {
		visit(d)
	}

	var out []*domain.ResolvedTarget
	for i := len(p.Targets) - 1; i >= 0; i-- {
		if deps[p.Targets[i].Name] {
			out = append(out, &p.Targets[i])
		}
	}
	return out
}

// libraries returns the artifacts t links against.
func libraries(p *domain.BuildPlan, t *domain.ResolvedTarget) []string {
	var libs []string
	for _, dep := range linkOrder(p, t) {
		if dep.Type != domain.TargetExecutable {
			libs = append(libs, dep.Artifact)
		}
	}
	return libs
}

// prerequisites returns the artifacts that must exist before t links.
func prerequisites(p *domain.BuildPlan, t *domain.ResolvedTarget) []string {
	var out []string
	for _, dep := range linkOrder(p, t) {
		out = append(out, dep.Artifact)
	}
	return out
}

// defaultTargets returns what a bare build produces: the primary target, or every target.
func defaultTargets(p *domain.BuildPlan) []string {
	if p.Primary != "" {
		return []string{p.Primary}
	}
	names := make([]string, 0, len(p.Targets))
	for _, t := range p.Targets {
		names = append(names, t.Name)
	}
	return names
}

// isC reports whether src compiles with the C compiler.
func isC(src string) bool {
	switch path.Ext(src) {
	case ".c", ".s", ".S":
		return true
	default:
		return false
	}
}

func defines(ds []string) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, "-D"+d)
	}
	return out
}

// words joins the non-empty parts with single spaces.
func words(parts ...string) string {
	return strings.Join(slices.DeleteFunc(slices.Clone(parts), func(s string) bool { return s == "" }), " ")
}
