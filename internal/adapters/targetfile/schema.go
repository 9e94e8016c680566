package targetfile

import "github.com/hashicorp/hcl/v2"

// hclGraphFile represents the top-level structure of a target graph file for decoding.
type hclGraphFile struct {
	Primary string       `hcl:"primary,optional"`
	Targets []*hclTarget `hcl:"target,block"`
}

// hclTarget represents a target block. Every attribute is a literal.
type hclTarget struct {
	Name       string          `hcl:"name,label"`
	Type       string          `hcl:"type"`
	Sources    []string        `hcl:"sources,optional"`
	DependsOn  []string        `hcl:"depends_on,optional"`
	CFlags     []string        `hcl:"cflags,optional"`
	LDFlags    []string        `hcl:"ldflags,optional"`
	Defines    []string        `hcl:"defines,optional"`
	Conditions []*hclCondition `hcl:"condition,block"`
}

// hclCondition represents a conditional block. When is kept as an expression and
// evaluated once a configuration exists.
type hclCondition struct {
	When      hcl.Expression `hcl:"when"`
	Sources   []string       `hcl:"sources,optional"`
	DependsOn []string       `hcl:"depends_on,optional"`
	CFlags    []string       `hcl:"cflags,optional"`
	LDFlags   []string       `hcl:"ldflags,optional"`
	Defines   []string       `hcl:"defines,optional"`
}
