package generator

import (
	"bytes"
	"fmt"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
)

const generatedHeader = "# Generated by kiln generate. Do not edit.\n"

// RenderMakefile renders the plan for make. It reads the compilers from config.mk.
func RenderMakefile(p *domain.BuildPlan) []byte {
	var buf bytes.Buffer
	buf.WriteString(generatedHeader)
	buf.WriteString("include " + domain.ConfigMakeFileName + "\n\n")

	assign := func(name string, values ...string) {
		buf.WriteString(words(name, ":=", strings.Join(values, " ")) + "\n")
	}
	assign("srcdir", p.SourceRoot)
	assign("BUILDTYPE", p.BuildType)
	assign("LAUNCHER", p.Toolchain.Launcher)
	assign("KILN_CFLAGS", p.Toolchain.CFlags...)
	assign("KILN_LDFLAGS", p.Toolchain.LDFlags...)
	assign("KILN_DEFINES", defines(p.Toolchain.Defines)...)
	buf.WriteString("\n")

	names := make([]string, 0, len(p.Targets))
	for _, t := range p.Targets {
		names = append(names, t.Name)
	}
	fmt.Fprintf(&buf, "%s\n\n", words(".PHONY: all", strings.Join(names, " ")))
	fmt.Fprintf(&buf, "all: %s\n", strings.Join(defaultTargets(p), " "))

	var objects []string
	for i := range p.Targets {
		t := &p.Targets[i]
		objects = append(objects, t.Objects...)
		fmt.Fprintf(&buf, "\n%s: %s\n\n", t.Name, t.Artifact)

		fmt.Fprintf(&buf, "%s\n", words(t.Artifact+":", strings.Join(t.Objects, " "), strings.Join(prerequisites(p, t), " ")))
		buf.WriteString("\t@mkdir -p $(@D)\n")
		fmt.Fprintf(&buf, "\t%s\n", makeLink(p, t))

		for j, src := range t.Sources {
			compiler := "$(CXX)"
			if isC(src) {
				compiler = "$(CC)"
			}
			fmt.Fprintf(&buf, "\n%s: $(srcdir)/%s\n", t.Objects[j], src)
			buf.WriteString("\t@mkdir -p $(@D)\n")
			fmt.Fprintf(&buf, "\t%s\n", words(
				"$(LAUNCHER)", compiler, "$(KILN_CFLAGS)", strings.Join(t.CFlags, " "),
				"$(KILN_DEFINES)", strings.Join(defines(t.Defines), " "), "-MMD -MP -c $< -o $@",
			))
		}
	}

	// Compilers write header dependencies next to each object.
	buf.WriteString("\n")
	assign("KILN_OBJS", objects...)
	buf.WriteString("-include $(KILN_OBJS:.o=.d)\n")
	return buf.Bytes()
}

func makeLink(p *domain.BuildPlan, t *domain.ResolvedTarget) string {
	objects := strings.Join(t.Objects, " ")
	switch t.Type {
	case domain.TargetStaticLibrary:
		return words("rm -f $@ && $(AR) crs $@", objects)
	case domain.TargetSharedLibrary:
		return words("$(CXX) -shared $(KILN_LDFLAGS)", strings.Join(t.LDFlags, " "), "-o $@", objects,
			strings.Join(libraries(p, t), " "))
	default:
		return words("$(CXX) $(KILN_LDFLAGS)", strings.Join(t.LDFlags, " "), "-o $@", objects,
			strings.Join(libraries(p, t), " "))
	}
}
