package descriptor

import (
	"fmt"
	"go/token"

	"github.com/enuminject/enuminject/internal/annotation"
)

var (
	_ error = MalformedAnnotationError{}
	_ error = MalformedDirectiveError{}
	_ error = UnsupportedTargetError{}
	_ error = EnumMismatchError{}
)

// MalformedAnnotationError indicates a field's inject tag could not be
// parsed. The diagnostic points at the offending field.
type MalformedAnnotationError struct {
	TypeName string
	Field    string
	Raw      string
	Pos      token.Position
	Cause    error
}

func (e MalformedAnnotationError) Error() string {
	return fmt.Sprintf("%s: field %s of %s: invalid inject tag %q: %v",
		e.Pos, e.Field, e.TypeName, e.Raw, e.Cause)
}

// Unwrap exposes the parse failure, typically annotation.ErrMalformedMember.
func (e MalformedAnnotationError) Unwrap() error { return e.Cause }

// MalformedDirectiveError indicates the type-level directive's argument is
// not a type reference.
type MalformedDirectiveError struct {
	TypeName string
	Raw      string
	Pos      token.Position
	Cause    error
}

func (e MalformedDirectiveError) Error() string {
	return fmt.Sprintf("%s: type %s: invalid %s argument %q: %v",
		e.Pos, e.TypeName, DirectiveName, e.Raw, e.Cause)
}

// Unwrap exposes the parse failure, typically annotation.ErrMalformedRef.
func (e MalformedDirectiveError) Unwrap() error { return e.Cause }

// UnsupportedTargetError indicates the type-level directive was applied to
// something other than a struct type.
type UnsupportedTargetError struct {
	TypeName string
	Pos      token.Position
}

func (e UnsupportedTargetError) Error() string {
	return fmt.Sprintf("%s: %s can only be applied to structs (type %s is not a struct)",
		e.Pos, DirectiveName, e.TypeName)
}

// EnumMismatchError indicates a field references a different enum than the
// one declared at the type level. The diagnostic points at the type
// definition: the inconsistency is a whole-type failure, not a per-field one.
type EnumMismatchError struct {
	TypeName string
	Field    string
	Declared annotation.Ref
	Member   annotation.Member
	Pos      token.Position
}

func (e EnumMismatchError) Error() string {
	return fmt.Sprintf("%s: type %s: all injected fields must be from the same enum (declared %s, field %s references %s)",
		e.Pos, e.TypeName, e.Declared, e.Field, e.Member)
}
