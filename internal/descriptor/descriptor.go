// Package descriptor builds generation descriptors from Go syntax trees and
// validates them. Scanning and validation are a pure descriptor-building
// phase with no side effects; code emission (internal/codegen) only runs on
// descriptors that validated cleanly.
package descriptor

import (
	"go/ast"
	"go/token"
	"path"
	"reflect"
	"strconv"
	"strings"

	"github.com/enuminject/enuminject/internal/annotation"
)

const (
	// DirectiveName is the type-level annotation marking a struct as
	// injectable: //enuminject:model Model
	DirectiveName = "enuminject:model"

	// TagKey is the struct-tag key carrying a field's enum-member binding:
	// `inject:"Model.Name"`
	TagKey = "inject"
)

const directivePrefix = "//" + DirectiveName

// FieldBinding pairs one struct field with the enum member that populates
// it. Bindings keep declaration order; the order is carried through to the
// generated dispatch arms.
type FieldBinding struct {
	// FieldName is the field's name in the data-holder struct.
	FieldName string

	// Member is the parsed inject tag.
	Member annotation.Member

	// Pos is the field's position, used for diagnostics.
	Pos token.Position
}

// Descriptor captures everything the synthesizer needs about one annotated
// data-holder type. Descriptors exist only for the duration of a generation
// pass; nothing about them survives into the running program.
type Descriptor struct {
	// TypeName is the data-holder struct's name.
	TypeName string

	// Model is the enum type declared by the type-level directive.
	Model annotation.Ref

	// Bindings lists the annotated fields in declaration order.
	Bindings []FieldBinding

	// Pos is the type definition's position, used for whole-type diagnostics.
	Pos token.Position

	// Imports maps local package names to import paths for the file the
	// type was declared in, for resolving qualified members during emission.
	Imports map[string]string
}

// Scan walks one parsed file and builds a Descriptor for every struct type
// carrying the enuminject:model directive. The file must have been parsed
// with comments. Scanning is fail-fast: the first malformed annotation or
// unsupported target aborts the whole file.
func Scan(fset *token.FileSet, file *ast.File) ([]*Descriptor, error) {
	imports := fileImports(file)

	var descriptors []*Descriptor
	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}
		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			arg, ok := directiveArg(genDecl, typeSpec)
			if !ok {
				continue
			}
			desc, err := build(fset, typeSpec, arg, imports)
			if err != nil {
				return nil, err
			}
			descriptors = append(descriptors, desc)
		}
	}
	return descriptors, nil
}

// Validate checks that every binding references the descriptor's declared
// enum. The first mismatch fails the whole type with a diagnostic attached
// to the type definition. On success the bindings pass to the synthesizer
// unchanged.
func Validate(d *Descriptor) error {
	for _, b := range d.Bindings {
		if !b.Member.BelongsTo(d.Model) {
			return EnumMismatchError{
				TypeName: d.TypeName,
				Field:    b.FieldName,
				Declared: d.Model,
				Member:   b.Member,
				Pos:      d.Pos,
			}
		}
	}
	return nil
}

func build(fset *token.FileSet, typeSpec *ast.TypeSpec, arg string, imports map[string]string) (*Descriptor, error) {
	typeName := typeSpec.Name.Name
	pos := fset.Position(typeSpec.Pos())

	ref, err := annotation.ParseRef(arg)
	if err != nil {
		return nil, MalformedDirectiveError{TypeName: typeName, Raw: arg, Pos: pos, Cause: err}
	}

	structType, ok := typeSpec.Type.(*ast.StructType)
	if !ok {
		return nil, UnsupportedTargetError{TypeName: typeName, Pos: pos}
	}

	desc := &Descriptor{
		TypeName: typeName,
		Model:    ref,
		Pos:      pos,
		Imports:  imports,
	}

	for _, field := range structType.Fields.List {
		raw, ok := injectTag(field)
		if !ok {
			continue
		}
		// Embedded fields have no name to bind to.
		if len(field.Names) == 0 {
			continue
		}
		member, err := annotation.ParseMember(raw)
		if err != nil {
			return nil, MalformedAnnotationError{
				TypeName: typeName,
				Field:    field.Names[0].Name,
				Raw:      raw,
				Pos:      fset.Position(field.Pos()),
				Cause:    err,
			}
		}
		// A single tag on a multi-name field binds every name it declares.
		for _, name := range field.Names {
			desc.Bindings = append(desc.Bindings, FieldBinding{
				FieldName: name.Name,
				Member:    member,
				Pos:       fset.Position(name.Pos()),
			})
		}
	}

	return desc, nil
}

// directiveArg extracts the enuminject:model argument from the declaration's
// comments. The directive may sit on the surrounding GenDecl, on the
// TypeSpec itself, or as a trailing comment.
func directiveArg(genDecl *ast.GenDecl, typeSpec *ast.TypeSpec) (string, bool) {
	for _, group := range []*ast.CommentGroup{genDecl.Doc, typeSpec.Doc, typeSpec.Comment} {
		if group == nil {
			continue
		}
		for _, c := range group.List {
			if !strings.HasPrefix(c.Text, directivePrefix) {
				continue
			}
			rest := c.Text[len(directivePrefix):]
			if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
				continue // a longer directive name, not ours
			}
			return strings.TrimSpace(rest), true
		}
	}
	return "", false
}

func injectTag(field *ast.Field) (string, bool) {
	if field.Tag == nil {
		return "", false
	}
	unquoted, err := strconv.Unquote(field.Tag.Value)
	if err != nil {
		return "", false
	}
	return reflect.StructTag(unquoted).Lookup(TagKey)
}

func fileImports(file *ast.File) map[string]string {
	imports := make(map[string]string, len(file.Imports))
	for _, spec := range file.Imports {
		importPath, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		local := path.Base(importPath)
		if spec.Name != nil {
			local = spec.Name.Name
		}
		imports[local] = importPath
	}
	return imports
}
