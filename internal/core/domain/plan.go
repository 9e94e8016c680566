package domain

// Toolchain holds the compilers and configuration-wide flags a plan is built with.
type Toolchain struct {
	CC  string
	CXX string
	AR  string
	// Launcher prefixes every compile command, e.g. ccache.
	Launcher string
	CFlags   []string
	LDFlags  []string
	Defines  []string
}

// ResolvedTarget is a target after its conditional blocks were applied to a configuration.
type ResolvedTarget struct {
	Name         string
	Type         TargetType
	Sources      []string
	Dependencies []string
	CFlags       []string
	LDFlags      []string
	Defines      []string
	// Artifact is the linked output path relative to the output directory.
	Artifact string
	// Objects are the compiled outputs of Sources, in the same order, relative to the output directory.
	Objects []string
}

// BuildPlan is the backend-independent input to every build file renderer.
type BuildPlan struct {
	BuildType string
	// SourceRoot is the project root relative to the output directory.
	SourceRoot string
	Toolchain  Toolchain
	Primary    string
	// Targets are in dependency order, ties broken by name.
	Targets []ResolvedTarget
}

// Target returns the resolved target with the given name.
func (p *BuildPlan) Target(name string) (*ResolvedTarget, bool) {
	for i := range p.Targets {
		if p.Targets[i].Name == name {
			return &p.Targets[i], true
		}
	}
	return nil, false
}

// BuildFile is one rendered native build file.
type BuildFile struct {
	// Name is the file name inside the output directory.
	Name    string
	Content []byte
}
