package descriptor

import (
	"errors"
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enuminject/enuminject/internal/annotation"
)

func parseSource(t *testing.T, src string) (*token.FileSet, *ast.File) {
	t.Helper()
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "src.go", src, parser.ParseComments|parser.SkipObjectResolution)
	require.NoError(t, err)
	return fset, file
}

func TestScan(t *testing.T) {
	t.Run("builds descriptor with ordered bindings", func(t *testing.T) {
		fset, file := parseSource(t, `package demo

import "github.com/enuminject/enuminject"

//enuminject:model Model
type View struct {
	Name enuminject.Injected[string] `+"`inject:\"Model.Name\"`"+`
	Age  enuminject.Injected[uint32] `+"`inject:\"Model.Age\"`"+`
	skip string
}
`)
		descs, err := Scan(fset, file)
		require.NoError(t, err)
		require.Len(t, descs, 1)

		d := descs[0]
		assert.Equal(t, "View", d.TypeName)
		assert.Equal(t, "Model", d.Model.String())
		require.Len(t, d.Bindings, 2)
		assert.Equal(t, "Name", d.Bindings[0].FieldName)
		assert.Equal(t, "Model.Name", d.Bindings[0].Member.String())
		assert.Equal(t, "Age", d.Bindings[1].FieldName)
		assert.Equal(t, "Model.Age", d.Bindings[1].Member.String())
	})

	t.Run("directive inside a type block", func(t *testing.T) {
		fset, file := parseSource(t, `package demo

type (
	//enuminject:model Model
	View struct {
		Name string `+"`inject:\"Model.Name\"`"+`
	}
)
`)
		descs, err := Scan(fset, file)
		require.NoError(t, err)
		require.Len(t, descs, 1)
		assert.Equal(t, "View", descs[0].TypeName)
	})

	t.Run("types without the directive are ignored", func(t *testing.T) {
		fset, file := parseSource(t, `package demo

type Plain struct {
	Name string `+"`inject:\"Model.Name\"`"+`
}
`)
		descs, err := Scan(fset, file)
		require.NoError(t, err)
		assert.Empty(t, descs)
	})

	t.Run("single-segment tag is malformed", func(t *testing.T) {
		fset, file := parseSource(t, `package demo

//enuminject:model Model
type View struct {
	Name string `+"`inject:\"Foo\"`"+`
}
`)
		_, err := Scan(fset, file)
		require.Error(t, err)

		var malformed MalformedAnnotationError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, "Name", malformed.Field)
		assert.Equal(t, "Foo", malformed.Raw)
		assert.True(t, errors.Is(err, annotation.ErrMalformedMember))
		assert.Contains(t, err.Error(), `expected enum member of the form "Enum.Member"`)
		assert.Contains(t, err.Error(), "src.go:5", "diagnostic should point at the field")
	})

	t.Run("directive on a non-struct fails", func(t *testing.T) {
		fset, file := parseSource(t, `package demo

//enuminject:model Model
type Alias int
`)
		_, err := Scan(fset, file)
		require.Error(t, err)

		var unsupported UnsupportedTargetError
		require.ErrorAs(t, err, &unsupported)
		assert.Equal(t, "Alias", unsupported.TypeName)
		assert.Contains(t, err.Error(), "can only be applied to structs")
	})

	t.Run("directive without an argument fails", func(t *testing.T) {
		fset, file := parseSource(t, `package demo

//enuminject:model
type View struct{}
`)
		_, err := Scan(fset, file)
		require.Error(t, err)

		var malformed MalformedDirectiveError
		require.ErrorAs(t, err, &malformed)
		assert.True(t, errors.Is(err, annotation.ErrMalformedRef))
	})

	t.Run("a longer directive name is not ours", func(t *testing.T) {
		fset, file := parseSource(t, `package demo

//enuminject:modelextra Model
type View struct{}
`)
		descs, err := Scan(fset, file)
		require.NoError(t, err)
		assert.Empty(t, descs)
	})

	t.Run("multi-name field binds every name", func(t *testing.T) {
		fset, file := parseSource(t, `package demo

//enuminject:model Model
type View struct {
	First, Second string `+"`inject:\"Model.Name\"`"+`
}
`)
		descs, err := Scan(fset, file)
		require.NoError(t, err)
		require.Len(t, descs, 1)
		require.Len(t, descs[0].Bindings, 2)
		assert.Equal(t, "First", descs[0].Bindings[0].FieldName)
		assert.Equal(t, "Second", descs[0].Bindings[1].FieldName)
	})

	t.Run("embedded fields are skipped", func(t *testing.T) {
		fset, file := parseSource(t, `package demo

type Base struct{}

//enuminject:model Model
type View struct {
	Base `+"`inject:\"Model.Name\"`"+`
}
`)
		descs, err := Scan(fset, file)
		require.NoError(t, err)
		require.Len(t, descs, 1)
		assert.Empty(t, descs[0].Bindings)
	})

	t.Run("records file imports for qualifier resolution", func(t *testing.T) {
		fset, file := parseSource(t, `package demo

import (
	"github.com/enuminject/enuminject"
	m "example.com/app/models"
)

//enuminject:model m.Model
type View struct {
	Name enuminject.Injected[string] `+"`inject:\"m.Model.Name\"`"+`
}
`)
		descs, err := Scan(fset, file)
		require.NoError(t, err)
		require.Len(t, descs, 1)
		assert.Equal(t, "example.com/app/models", descs[0].Imports["m"])
		assert.Equal(t, "github.com/enuminject/enuminject", descs[0].Imports["enuminject"])
	})
}

func TestValidate(t *testing.T) {
	t.Run("consistent bindings pass", func(t *testing.T) {
		fset, file := parseSource(t, `package demo

//enuminject:model Model
type View struct {
	Name string `+"`inject:\"Model.Name\"`"+`
	Age  uint32 `+"`inject:\"Model.Age\"`"+`
}
`)
		descs, err := Scan(fset, file)
		require.NoError(t, err)
		require.Len(t, descs, 1)
		assert.NoError(t, Validate(descs[0]))
	})

	t.Run("mismatched enum fails the whole type", func(t *testing.T) {
		fset, file := parseSource(t, `package demo

//enuminject:model Model
type View struct {
	Name string `+"`inject:\"Model.Name\"`"+`
	Age  uint32 `+"`inject:\"Other.Age\"`"+`
}
`)
		descs, err := Scan(fset, file)
		require.NoError(t, err)
		require.Len(t, descs, 1)

		err = Validate(descs[0])
		require.Error(t, err)

		var mismatch EnumMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, "View", mismatch.TypeName)
		assert.Equal(t, "Age", mismatch.Field)
		assert.Contains(t, err.Error(), "all injected fields must be from the same enum")
		assert.Contains(t, err.Error(), "src.go:4", "diagnostic should point at the type definition")
	})

	t.Run("qualified model validates qualified members", func(t *testing.T) {
		fset, file := parseSource(t, `package demo

//enuminject:model models.Model
type View struct {
	Name string `+"`inject:\"models.Model.Name\"`"+`
	Age  uint32 `+"`inject:\"Model.Age\"`"+`
}
`)
		descs, err := Scan(fset, file)
		require.NoError(t, err)

		err = Validate(descs[0])
		require.Error(t, err)

		var mismatch EnumMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, "Age", mismatch.Field)
	})
}
