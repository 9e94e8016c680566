package domain

import "unique"

// InternedString wraps a unique.Handle[string].
// Target names and dependency references repeat across the graph, so they share one handle per value.
type InternedString struct {
	h unique.Handle[string]
}

// NewInternedString interns s.
func NewInternedString(s string) InternedString {
	return InternedString{h: unique.Make(s)}
}

// NewInternedStrings interns every element of ss, preserving order.
func NewInternedStrings(ss []string) []InternedString {
	out := make([]InternedString, 0, len(ss))
	for _, s := range ss {
		out = append(out, NewInternedString(s))
	}
	return out
}

// String returns the underlying string value. The zero value yields "".
func (is InternedString) String() string {
	var zero unique.Handle[string]
	if is.h == zero {
		return ""
	}
	return is.h.Value()
}

// IsZero reports whether the value was never set.
func (is InternedString) IsZero() bool {
	var zero unique.Handle[string]
	return is.h == zero
}

// Value returns the underlying handle.
func (is InternedString) Value() unique.Handle[string] {
	return is.h
}

// Compare orders two interned strings by their string value.
func (is InternedString) Compare(other InternedString) int {
	a, b := is.String(), other.String()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// MarshalText implements encoding.TextMarshaler.
func (is InternedString) MarshalText() ([]byte, error) {
	return []byte(is.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (is *InternedString) UnmarshalText(text []byte) error {
	is.h = unique.Make(string(text))
	return nil
}

// Strings converts interned values back to plain strings.
func Strings(in []InternedString) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		out = append(out, v.String())
	}
	return out
}
