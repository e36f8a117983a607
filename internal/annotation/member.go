// Package annotation parses the textual arguments of enuminject annotations:
// the model reference carried by the type-level directive and the enum-member
// path carried by each field's inject tag. Parsing is purely lexical; name
// resolution is left to the compiler of the generated code.
package annotation

import (
	"errors"
	"strings"
)

var (
	// ErrMalformedMember is returned when an inject tag has fewer than two
	// path segments or contains a blank segment.
	ErrMalformedMember = errors.New(`expected enum member of the form "Enum.Member"`)

	// ErrMalformedRef is returned when a model reference is empty or
	// contains a blank segment.
	ErrMalformedRef = errors.New("expected a type reference")
)

// Member is a parsed field annotation: a qualified reference to one variant
// of a tagged-union model type. The last segment names the variant, the
// segment before it names the enum, and any leading segments qualify the
// enum's package. Members are immutable and compare structurally.
type Member struct {
	segments []string
}

// ParseMember parses the argument of one inject tag, e.g. "Model.Name" or
// "models.Model.Name". Fewer than two segments, or any blank segment, is a
// malformed annotation.
func ParseMember(raw string) (Member, error) {
	segments, err := splitPath(raw)
	if err != nil || len(segments) < 2 {
		return Member{}, ErrMalformedMember
	}
	return Member{segments: segments}, nil
}

// Variant returns the variant name (the last segment).
func (m Member) Variant() string {
	return m.segments[len(m.segments)-1]
}

// Enum returns the enum type name (the segment before the variant).
func (m Member) Enum() string {
	return m.segments[len(m.segments)-2]
}

// Qualifier returns the package qualifier preceding the enum name, or "" for
// an unqualified member.
func (m Member) Qualifier() string {
	return strings.Join(m.segments[:len(m.segments)-2], ".")
}

// BelongsTo reports whether the member references the enum named by ref:
// every segment of ref must equal the corresponding leading segment of the
// member. Comparison is by name sequence only, not type resolution.
func (m Member) BelongsTo(ref Ref) bool {
	n := len(ref.segments)
	if n > len(m.segments) {
		n = len(m.segments)
	}
	for i := 0; i < n; i++ {
		if m.segments[i] != ref.segments[i] {
			return false
		}
	}
	return true
}

// String returns the member as written, segments joined by dots.
func (m Member) String() string {
	return strings.Join(m.segments, ".")
}

// Ref is a parsed model reference from the type-level directive: the enum
// type name, optionally preceded by a package qualifier.
type Ref struct {
	segments []string
}

// ParseRef parses the argument of a type-level directive, e.g. "Model" or
// "models.Model".
func ParseRef(raw string) (Ref, error) {
	segments, err := splitPath(raw)
	if err != nil {
		return Ref{}, ErrMalformedRef
	}
	return Ref{segments: segments}, nil
}

// Name returns the enum type name (the last segment).
func (r Ref) Name() string {
	return r.segments[len(r.segments)-1]
}

// Qualifier returns the package qualifier preceding the enum name, or "" for
// an unqualified reference.
func (r Ref) Qualifier() string {
	return strings.Join(r.segments[:len(r.segments)-1], ".")
}

// String returns the reference as written, segments joined by dots.
func (r Ref) String() string {
	return strings.Join(r.segments, ".")
}

func splitPath(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("empty path")
	}
	segments := strings.Split(raw, ".")
	for i, s := range segments {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, errors.New("blank path segment")
		}
		segments[i] = s
	}
	return segments, nil
}
