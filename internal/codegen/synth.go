// Package codegen synthesizes dispatch code from validated descriptors. For
// every data-holder it emits one Inject method - a type switch routing each
// bound variant's payload into its field - plus a compile-time assertion
// that the method realizes the Injectable capability.
package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"path"
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/enuminject/enuminject/internal/annotation"
	"github.com/enuminject/enuminject/internal/descriptor"
)

// RuntimeImport is the import path of the runtime package generated code
// depends on.
const RuntimeImport = "github.com/enuminject/enuminject"

const runtimePkg = "enuminject"

// Arm is one synthesized dispatch rule: a model variant type and the field
// its payload is stored into. Arm order follows binding order; variants are
// disjoint, so order has no observable effect.
type Arm struct {
	VariantType string
	FieldName   string
}

// Arms builds the dispatch arms for a validated descriptor, in binding
// order. The variant named Name of enum Model maps to the Go type ModelName,
// qualified like the member was written.
func Arms(d *descriptor.Descriptor) []Arm {
	arms := make([]Arm, 0, len(d.Bindings))
	for _, b := range d.Bindings {
		arms = append(arms, Arm{
			VariantType: variantType(b.Member),
			FieldName:   b.FieldName,
		})
	}
	return arms
}

// Render emits a complete generated file for one package: the header, the
// import block, and an Inject method plus capability assertion per
// descriptor. The result is gofmt-formatted. Descriptors must already have
// passed descriptor.Validate.
func Render(pkgName string, descs []*descriptor.Descriptor) ([]byte, error) {
	imports, err := collectImports(descs)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("// Code generated by enuminject. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", pkgName)
	writeImports(&buf, imports)

	for _, d := range descs {
		writeMethod(&buf, d)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		// Indicates a synthesizer bug, not bad user input.
		return nil, fmt.Errorf("formatting generated code: %w", err)
	}
	return src, nil
}

var (
	_ error = UnknownQualifierError{}
	_ error = QualifierConflictError{}
)

// UnknownQualifierError indicates an annotation used a package qualifier the
// source file does not import.
type UnknownQualifierError struct {
	TypeName  string
	Qualifier string
}

func (e UnknownQualifierError) Error() string {
	return fmt.Sprintf("type %s: package qualifier %q is not imported by the file declaring it", e.TypeName, e.Qualifier)
}

// QualifierConflictError indicates two annotated files in the same package
// bind the same local package name to different import paths.
type QualifierConflictError struct {
	Qualifier string
	PathA     string
	PathB     string
}

func (e QualifierConflictError) Error() string {
	return fmt.Sprintf("package qualifier %q refers to both %q and %q", e.Qualifier, e.PathA, e.PathB)
}

func writeMethod(buf *bytes.Buffer, d *descriptor.Descriptor) {
	recv := receiverName(d.TypeName)
	model := modelType(d.Model)
	arms := Arms(d)

	fmt.Fprintf(buf, "// Inject routes value's payload into the matching injected field of %s.\n", d.TypeName)
	fmt.Fprintf(buf, "// A variant no field is bound to is ignored.\n")
	fmt.Fprintf(buf, "func (%s *%s) Inject(value %s) {\n", recv, d.TypeName, model)
	if len(arms) == 0 {
		buf.WriteString("\tswitch value.(type) {\n\tdefault:\n\t}\n")
	} else {
		buf.WriteString("\tswitch value := value.(type) {\n")
		for _, arm := range arms {
			fmt.Fprintf(buf, "\tcase %s:\n", arm.VariantType)
			fmt.Fprintf(buf, "\t\t%s.%s = %s.From(value.Value)\n", recv, arm.FieldName, runtimePkg)
		}
		buf.WriteString("\tdefault:\n\t}\n")
	}
	buf.WriteString("}\n\n")

	fmt.Fprintf(buf, "var _ %s.Injectable[%s] = (*%s)(nil)\n\n", runtimePkg, model, d.TypeName)
}

// collectImports gathers the import block: the runtime package plus every
// package qualifier used by a model reference or member, resolved against
// the imports of the file each descriptor came from.
func collectImports(descs []*descriptor.Descriptor) (map[string]string, error) {
	imports := map[string]string{runtimePkg: RuntimeImport}

	add := func(d *descriptor.Descriptor, qualifier string) error {
		if qualifier == "" {
			return nil
		}
		importPath, ok := d.Imports[qualifier]
		if !ok {
			return UnknownQualifierError{TypeName: d.TypeName, Qualifier: qualifier}
		}
		if existing, ok := imports[qualifier]; ok && existing != importPath {
			return QualifierConflictError{Qualifier: qualifier, PathA: existing, PathB: importPath}
		}
		imports[qualifier] = importPath
		return nil
	}

	for _, d := range descs {
		if err := add(d, d.Model.Qualifier()); err != nil {
			return nil, err
		}
		for _, b := range d.Bindings {
			if err := add(d, b.Member.Qualifier()); err != nil {
				return nil, err
			}
		}
	}
	return imports, nil
}

func writeImports(buf *bytes.Buffer, imports map[string]string) {
	locals := make([]string, 0, len(imports))
	for local := range imports {
		locals = append(locals, local)
	}
	sort.Slice(locals, func(i, j int) bool {
		return imports[locals[i]] < imports[locals[j]]
	})

	buf.WriteString("import (\n")
	for _, local := range locals {
		importPath := imports[local]
		if path.Base(importPath) == local {
			fmt.Fprintf(buf, "\t%q\n", importPath)
		} else {
			fmt.Fprintf(buf, "\t%s %q\n", local, importPath)
		}
	}
	buf.WriteString(")\n\n")
}

func variantType(m annotation.Member) string {
	name := m.Enum() + m.Variant()
	if q := m.Qualifier(); q != "" {
		return q + "." + name
	}
	return name
}

func modelType(r annotation.Ref) string {
	if q := r.Qualifier(); q != "" {
		return q + "." + r.Name()
	}
	return r.Name()
}

// receiverName picks a short receiver identifier from the type name, the
// usual single-letter convention.
func receiverName(typeName string) string {
	r, _ := utf8.DecodeRuneInString(typeName)
	if r == utf8.RuneError {
		return "x"
	}
	return string(unicode.ToLower(r))
}
