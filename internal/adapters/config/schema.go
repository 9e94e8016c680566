package config

// Manifest represents the structure of the kiln.yaml project manifest.
type Manifest struct {
	Project string   `yaml:"project"`
	Graph   string   `yaml:"graph"`
	Tests   TestsDTO `yaml:"tests"`
}

// TestsDTO represents the test section of the manifest.
type TestsDTO struct {
	Root         string     `yaml:"root"`
	Pattern      string     `yaml:"pattern"`
	Binary       string     `yaml:"binary"`
	Timeout      string     `yaml:"timeout"`
	SuiteTimeout string     `yaml:"suite_timeout"`
	Jobs         int        `yaml:"jobs"          validate:"gte=0"`
	Groups       []GroupDTO `yaml:"groups"        validate:"dive"`
}

// GroupDTO represents a test group declaration.
type GroupDTO struct {
	Dir  string `yaml:"dir"  validate:"required,excludesall=/\\"`
	Mode string `yaml:"mode" validate:"required,oneof=parallel sequential"`
}
