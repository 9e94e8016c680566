// Package targetfile loads the HCL target graph.
package targetfile

import (
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.GraphLoader = (*Loader)(nil)

// Loader implements ports.GraphLoader for HCL files.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the target graph at path. Duplicate target names are rejected;
// dependency validation is left to the graph.
func (l *Loader) Load(path string) (*domain.TargetGraph, error) {
	src, err := os.ReadFile(path) //nolint:gosec // path comes from the project manifest
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrGraphReadFailed.Error()), "path", path)
	}
	return Parse(src, path)
}

// Parse decodes HCL source into a target graph. filename is used in diagnostics.
func Parse(src []byte, filename string) (*domain.TargetGraph, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, zerr.With(zerr.Wrap(diags, domain.ErrGraphParseFailed.Error()), "path", filename)
	}

	var parsed hclGraphFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return nil, zerr.With(zerr.Wrap(diags, domain.ErrGraphParseFailed.Error()), "path", filename)
	}

	g := domain.NewTargetGraph()
	if parsed.Primary != "" {
		g.SetPrimary(parsed.Primary)
	}

	for _, ht := range parsed.Targets {
		t, err := newTarget(ht, file.Bytes)
		if err != nil {
			return nil, err
		}
		if err := g.AddTarget(t); err != nil {
			return nil, err
		}
	}

	return g, nil
}

func newTarget(ht *hclTarget, src []byte) (*domain.Target, error) {
	typ := domain.TargetType(ht.Type)
	if !typ.Valid() {
		return nil, zerr.With(zerr.With(domain.ErrInvalidTargetType, "target", ht.Name), "type", ht.Type)
	}

	t := &domain.Target{
		Name:         domain.NewInternedString(ht.Name),
		Type:         typ,
		Sources:      ht.Sources,
		Dependencies: domain.NewInternedStrings(ht.DependsOn),
		CFlags:       ht.CFlags,
		LDFlags:      ht.LDFlags,
		Defines:      ht.Defines,
	}

	for _, hc := range ht.Conditions {
		t.Conditions = append(t.Conditions, domain.Condition{
			When:         newPredicate(hc.When, src),
			Sources:      hc.Sources,
			Dependencies: domain.NewInternedStrings(hc.DependsOn),
			CFlags:       hc.CFlags,
			LDFlags:      hc.LDFlags,
			Defines:      hc.Defines,
		})
	}

	return t, nil
}
