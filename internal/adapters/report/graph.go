package report

import (
	"io"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/ddddddO/gtree"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/ui/output"
	"go.trai.ch/kiln/internal/ui/style"
	"go.trai.ch/zerr"
)

// WriteGraph renders the dependency tree below root, or below the primary target,
// or below every root target when the graph declares no primary.
// Conditional dependencies are annotated with their condition.
func WriteGraph(w io.Writer, g *domain.TargetGraph, root string) error {
	roots := []string{root}
	switch {
	case root != "":
		if _, ok := g.Target(root); !ok {
			return zerr.With(domain.ErrTargetNotFound, "target", root)
		}
	case g.Primary() != "":
		roots = []string{g.Primary()}
	default:
		roots = g.Roots()
	}

	renderer := lipgloss.NewRenderer(w)
	renderer.SetColorProfile(output.ColorProfileANSI())
	annotation := renderer.NewStyle().Foreground(style.Slate)

	for _, name := range roots {
		node := gtree.NewRoot(name)
		addDependencies(node, g, name, []string{name}, annotation)
		if err := gtree.OutputFromRoot(w, node); err != nil {
			return zerr.Wrap(err, "failed to render dependency tree")
		}
	}
	return nil
}

func addDependencies(parent *gtree.Node, g *domain.TargetGraph, name string, path []string, annotation lipgloss.Style) {
	t, ok := g.Target(name)
	if !ok {
		return
	}

	type edge struct {
		dep  string
		when string
	}
	var edges []edge
	for _, d := range t.Dependencies {
		edges = append(edges, edge{dep: d.String()})
	}
	for _, c := range t.Conditions {
		for _, d := range c.Dependencies {
			if slices.Contains(t.Dependencies, d) {
				continue
			}
			edges = append(edges, edge{dep: d.String(), when: c.When.String()})
		}
	}

	for _, e := range edges {
		text := e.dep
		if e.when != "" {
			text += " " + annotation.Render("[when "+e.when+"]")
		}
		child := parent.Add(text)
		if slices.Contains(path, e.dep) {
			continue
		}
		addDependencies(child, g, e.dep, append(slices.Clone(path), e.dep), annotation)
	}
}
