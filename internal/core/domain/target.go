package domain

import "slices"

// TargetType is the kind of artifact a target links into.
type TargetType string

const (
	// TargetExecutable links a program.
	TargetExecutable TargetType = "executable"
	// TargetStaticLibrary archives objects into a static library.
	TargetStaticLibrary TargetType = "static_library"
	// TargetSharedLibrary links a shared library.
	TargetSharedLibrary TargetType = "shared_library"
)

// Valid reports whether t is a known target type.
func (t TargetType) Valid() bool {
	switch t {
	case TargetExecutable, TargetStaticLibrary, TargetSharedLibrary:
		return true
	default:
		return false
	}
}

// Predicate decides whether a conditional block applies to a configuration.
type Predicate interface {
	Evaluate(cfg *BuildConfiguration) (bool, error)
	// String returns the source form of the predicate.
	String() string
}

// PredicateFunc adapts a function to the Predicate interface.
type PredicateFunc struct {
	Expr string
	Fn   func(cfg *BuildConfiguration) (bool, error)
}

// Evaluate calls Fn.
func (p PredicateFunc) Evaluate(cfg *BuildConfiguration) (bool, error) {
	return p.Fn(cfg)
}

func (p PredicateFunc) String() string {
	return p.Expr
}

// Condition adds sources, dependencies and flags to a target when its predicate holds.
type Condition struct {
	When         Predicate
	Sources      []string
	Dependencies []InternedString
	CFlags       []string
	LDFlags      []string
	Defines      []string
}

// Target is a named unit of compilation declared in the target graph.
type Target struct {
	Name         InternedString
	Type         TargetType
	Sources      []string
	Dependencies []InternedString
	CFlags       []string
	LDFlags      []string
	Defines      []string
	Conditions   []Condition
}

// DeclaredDependencies returns every dependency the target names, conditional ones included,
// deduplicated in first-seen order.
func (t *Target) DeclaredDependencies() []InternedString {
	out := slices.Clone(t.Dependencies)
	for _, c := range t.Conditions {
		for _, d := range c.Dependencies {
			if !slices.Contains(out, d) {
				out = append(out, d)
			}
		}
	}
	return out
}

// ArtifactName returns the file name the target links to on the given destination OS.
func (t *Target) ArtifactName(destOS string) string {
	name := t.Name.String()
	switch t.Type {
	case TargetStaticLibrary:
		if destOS == "win" {
			return name + ".lib"
		}
		return "lib" + name + ".a"
	case TargetSharedLibrary:
		switch destOS {
		case "win":
			return name + ".dll"
		case "mac":
			return "lib" + name + ".dylib"
		default:
			return "lib" + name + ".so"
		}
	default:
		if destOS == "win" {
			return name + ".exe"
		}
		return name
	}
}
