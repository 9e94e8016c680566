package domain

import (
	"fmt"
	"maps"
	"slices"
)

// BuildConfiguration is the resolved set of platform and feature choices driving a build.
// It is immutable once constructed: the constructor copies its inputs and there are no setters.
type BuildConfiguration struct {
	args   []string
	values map[string]any
}

// NewBuildConfiguration creates a configuration from the configure arguments that produced it
// and the resolved values. Values must be strings or bools.
func NewBuildConfiguration(args []string, values map[string]any) *BuildConfiguration {
	return &BuildConfiguration{
		args:   slices.Clone(args),
		values: maps.Clone(values),
	}
}

// Args returns the configure arguments in the order they were given.
func (c *BuildConfiguration) Args() []string {
	return slices.Clone(c.args)
}

// Keys returns every configuration key in sorted order.
func (c *BuildConfiguration) Keys() []string {
	return slices.Sorted(maps.Keys(c.values))
}

// Values returns a copy of the resolved values.
func (c *BuildConfiguration) Values() map[string]any {
	return maps.Clone(c.values)
}

// Lookup returns the value of key.
func (c *BuildConfiguration) Lookup(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// String returns the value of key formatted as a string. Missing keys yield "".
func (c *BuildConfiguration) String(key string) string {
	v, ok := c.values[key]
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Bool returns the value of key as a bool. Missing or non-bool keys yield false.
func (c *BuildConfiguration) Bool(key string) bool {
	b, _ := c.values[key].(bool)
	return b
}

// BuildType returns Release or Debug.
func (c *BuildConfiguration) BuildType() string {
	if bt := c.String(KeyBuildType); bt != "" {
		return bt
	}
	return BuildTypeRelease
}

// Target returns the destination platform.
func (c *BuildConfiguration) Target() Platform {
	return Platform{OS: c.String(KeyDestOS), Arch: c.String(KeyDestCPU)}
}

// Host returns the platform configure ran on.
func (c *BuildConfiguration) Host() Platform {
	return Platform{OS: c.String(KeyHostOS), Arch: c.String(KeyHostArch)}
}

// UseNinja reports whether the ninja backend was selected.
func (c *BuildConfiguration) UseNinja() bool {
	return c.Bool(KeyUseNinja)
}
