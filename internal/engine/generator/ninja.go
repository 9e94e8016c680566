package generator

import (
	"bytes"
	"fmt"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
)

var ninjaEscaper = strings.NewReplacer("$", "$$", " ", "$ ", ":", "$:")

// RenderNinja renders the plan for ninja.
func RenderNinja(p *domain.BuildPlan) []byte {
	var buf bytes.Buffer
	buf.WriteString(generatedHeader)
	buf.WriteString("ninja_required_version = 1.7\n\n")

	variable := func(indent, name string, values ...string) {
		buf.WriteString(indent + words(name, "=", strings.Join(values, " ")) + "\n")
	}
	variable("", "srcdir", p.SourceRoot)
	variable("", "cc", p.Toolchain.CC)
	variable("", "cxx", p.Toolchain.CXX)
	variable("", "ar", p.Toolchain.AR)
	variable("", "cflags", p.Toolchain.CFlags...)
	variable("", "ldflags", p.Toolchain.LDFlags...)
	variable("", "defines", defines(p.Toolchain.Defines)...)

	rule := func(name, command, description string, depfile bool) {
		fmt.Fprintf(&buf, "\nrule %s\n", name)
		variable("  ", "command", command)
		if depfile {
			variable("  ", "depfile", "$out.d")
			variable("  ", "deps", "gcc")
		}
		variable("  ", "description", description+" $out")
	}
	compile := "-MMD -MF $out.d $cflags $target_cflags $defines $target_defines -c $in -o $out"
	rule("cc", words(p.Toolchain.Launcher, "$cc", compile), "CC", true)
	rule("cxx", words(p.Toolchain.Launcher, "$cxx", compile), "CXX", true)
	rule("ar", "rm -f $out && $ar crs $out $in", "AR", false)
	rule("link", "$cxx $ldflags $target_ldflags -o $out $in $libs", "LINK", false)
	rule("solink", "$cxx -shared $ldflags $target_ldflags -o $out $in $libs", "SOLINK", false)

	for i := range p.Targets {
		t := &p.Targets[i]
		for j, src := range t.Sources {
			r := "cxx"
			if isC(src) {
				r = "cc"
			}
			fmt.Fprintf(&buf, "\nbuild %s: %s $srcdir/%s\n", ninjaPath(t.Objects[j]), r, ninjaPath(src))
			if len(t.CFlags) > 0 {
				variable("  ", "target_cflags", t.CFlags...)
			}
			if len(t.Defines) > 0 {
				variable("  ", "target_defines", defines(t.Defines)...)
			}
		}

		r := "link"
		switch t.Type {
		case domain.TargetStaticLibrary:
			r = "ar"
		case domain.TargetSharedLibrary:
			r = "solink"
		}
		deps := ninjaPaths(prerequisites(p, t))
		if len(deps) > 0 {
			deps = "| " + deps
		}
		fmt.Fprintf(&buf, "\n%s\n", words("build "+ninjaPath(t.Artifact)+":", r, ninjaPaths(t.Objects), deps))
		if t.Type != domain.TargetStaticLibrary {
			if libs := libraries(p, t); len(libs) > 0 {
				variable("  ", "libs", ninjaPaths(libs))
			}
			if len(t.LDFlags) > 0 {
				variable("  ", "target_ldflags", t.LDFlags...)
			}
		}
		fmt.Fprintf(&buf, "\nbuild %s: phony %s\n", t.Name, ninjaPath(t.Artifact))
	}

	fmt.Fprintf(&buf, "\ndefault %s\n", strings.Join(defaultTargets(p), " "))
	return buf.Bytes()
}

func ninjaPath(p string) string {
	return ninjaEscaper.Replace(p)
}

func ninjaPaths(ps []string) string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, ninjaPath(p))
	}
	return strings.Join(out, " ")
}
