// Package domain contains the core models of the configure, generate and test pipeline.
package domain

import (
	"iter"
	"maps"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// TargetGraph is the static set of declared build targets.
type TargetGraph struct {
	targets        map[InternedString]Target
	primary        InternedString
	executionOrder []InternedString
}

// NewTargetGraph creates a new empty TargetGraph.
func NewTargetGraph() *TargetGraph {
	return &TargetGraph{
		targets: make(map[InternedString]Target),
	}
}

// AddTarget adds a target to the graph.
// It returns an error if a target with the same name already exists.
func (g *TargetGraph) AddTarget(t *Target) error {
	if _, exists := g.targets[t.Name]; exists {
		return zerr.With(ErrTargetAlreadyExists, "target", t.Name.String())
	}
	g.targets[t.Name] = *t
	return nil
}

// SetPrimary declares the target built when none is named.
func (g *TargetGraph) SetPrimary(name string) {
	g.primary = NewInternedString(name)
}

// Primary returns the primary target name, or "" when none is declared.
func (g *TargetGraph) Primary() string {
	return g.primary.String()
}

// Target returns the target with the given name.
func (g *TargetGraph) Target(name string) (Target, bool) {
	t, ok := g.targets[NewInternedString(name)]
	return t, ok
}

// Len returns the number of targets.
func (g *TargetGraph) Len() int {
	return len(g.targets)
}

// Names returns every target name in sorted order.
func (g *TargetGraph) Names() []string {
	names := make([]string, 0, len(g.targets))
	for name := range g.targets {
		names = append(names, name.String())
	}
	slices.Sort(names)
	return names
}

// Validate checks that every dependency exists and that the graph is acyclic.
// Conditional dependencies are checked as well, so a graph valid for one configuration is valid for all.
// On success the execution order is populated: dependencies first, ties broken by name.
func (g *TargetGraph) Validate() error {
	if !g.primary.IsZero() {
		if _, ok := g.targets[g.primary]; !ok {
			return zerr.With(ErrTargetNotFound, "target", g.primary.String())
		}
	}

	g.executionOrder = make([]InternedString, 0, len(g.targets))
	visited := make(map[InternedString]int) // 0: unvisited, 1: visiting, 2: visited
	var path []InternedString

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		visited[u] = 1
		path = append(path, u)

		target := g.targets[u]
		deps := target.DeclaredDependencies()
		slices.SortFunc(deps, InternedString.Compare)

		for _, dep := range deps {
			if _, exists := g.targets[dep]; !exists {
				err := zerr.With(ErrDanglingDependency, "target", u.String())
				return zerr.With(err, "dependency", dep.String())
			}
			if visited[dep] == 1 {
				return buildCycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		g.executionOrder = append(g.executionOrder, u)
		return nil
	}

	names := slices.SortedFunc(maps.Keys(g.targets), InternedString.Compare)
	for _, name := range names {
		if visited[name] == 0 {
			if err := visit(name); err != nil {
				g.executionOrder = nil
				return err
			}
		}
	}

	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func buildCycleError(path []InternedString, dep InternedString) error {
	start := slices.Index(path, dep)
	nodes := make([]string, 0, len(path)-start+1)
	for _, n := range path[start:] {
		nodes = append(nodes, n.String())
	}
	nodes = append(nodes, dep.String())
	return zerr.With(ErrCycleDetected, "cycle", strings.Join(nodes, " -> "))
}

// Walk returns an iterator that yields targets in dependency order.
// It assumes Validate() has been called and returned nil.
func (g *TargetGraph) Walk() iter.Seq[Target] {
	return func(yield func(Target) bool) {
		for _, name := range g.executionOrder {
			if !yield(g.targets[name]) {
				return
			}
		}
	}
}

// Roots returns the targets no other target depends on, in sorted order.
func (g *TargetGraph) Roots() []string {
	depended := make(map[InternedString]bool)
	for _, t := range g.targets {
		for _, d := range t.DeclaredDependencies() {
			depended[d] = true
		}
	}
	var roots []string
	for _, name := range g.Names() {
		if !depended[NewInternedString(name)] {
			roots = append(roots, name)
		}
	}
	return roots
}
