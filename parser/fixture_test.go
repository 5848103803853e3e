/*
 * Status Resolver - Declaration status and type resolution passes
 *
 * Copyright Flow Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/statusresolver/ast"
	"github.com/onflow/statusresolver/common"
	"github.com/onflow/statusresolver/test_utils/common_utils"
)

const testFixture = `
libraries:
  - package: lib
    declarations:
      - kind: interface
        name: Named
        members:
          - kind: val
            name: name
            type: String
files:
  - name: Base.kt
    package: a
    imports: [lib.Named, b.*, c.D as E]
    declarations:
      - kind: class
        name: Base
        annotations: [Deprecated]
        modifiers: [open]
        typeParameters:
          - name: T
            bounds: [Comparable<T>]
        superTypes: [Named]
        members:
          - kind: constructor
            primary: true
            parameters:
              - name: x
                type: Int
          - kind: constructor
            delegate:
              kind: this
            parameters:
              - name: x
                type: String
                annotations: [Suppress]
          - kind: fun
            name: foo
            modifiers: [protected, open]
            type: Unit
            body: true
            parameters:
              - name: values
                type: T
                vararg: true
            locals:
              - kind: class
                name: Local
          - kind: fun
            name: foo
            type: Unit
          - kind: var
            name: p
            type: Int
            initializer: true
            getter:
              body: true
            setter:
              modifiers: [private]
          - kind: fun
            name: bar
            standInFor: a.Base.foo
`

func TestParseFixture(t *testing.T) {

	t.Parallel()

	fixture, err := ParseFixture([]byte(testFixture))
	require.NoError(t, err)

	tree := fixture.Tree

	require.Len(t, fixture.Files, 1)
	file, ok := ast.Get[*ast.File](tree, fixture.Files[0])
	require.True(t, ok)
	assert.Equal(t, "a", file.PackageName)
	assert.Equal(t,
		[]ast.Import{
			{FqName: "lib.Named"},
			{FqName: "b", AllUnder: true},
			{FqName: "c.D", Alias: "E"},
		},
		file.Imports,
	)

	t.Run("class", func(t *testing.T) {
		class, ok := ast.Get[*ast.RegularClass](tree, fixture.MustLookup("a.Base"))
		require.True(t, ok)
		assert.Equal(t, common.NewClassID("a", "Base", false), class.ClassID())
		assert.Equal(t, common.ModalityOpen, class.Status.Modality)
		assert.Len(t, class.TypeParameters(), 1)
		assert.Len(t, class.SuperTypes, 1)
		assert.Equal(t,
			&ast.UnresolvedTypeRef{
				Qualifier: []string{"Named"},
			},
			tree.TypeRef(class.SuperTypes[0]),
		)
		assert.False(t, tree.Status(class.ID()).IsResolved())
	})

	t.Run("overloads", func(t *testing.T) {
		first := fixture.MustLookup("a.Base.foo")
		second := fixture.MustLookup("a.Base.foo#2")
		assert.NotEqual(t, first, second)

		function, ok := ast.Get[*ast.SimpleFunction](tree, first)
		require.True(t, ok)
		assert.True(t, function.HasBody)
		assert.Len(t, function.ValueParameters(), 1)
		assert.Len(t, function.LocalDeclarations(), 1)

		parameter, ok := ast.Get[*ast.ValueParameter](tree, fixture.MustLookup("a.Base.foo(values)"))
		require.True(t, ok)
		assert.True(t, parameter.IsVararg)

		local, ok := ast.Get[*ast.RegularClass](tree, fixture.MustLookup("a.Base.foo.Local"))
		require.True(t, ok)
		assert.True(t, local.ClassID().IsLocal)
	})

	t.Run("accessors", func(t *testing.T) {
		property, ok := ast.Get[*ast.Property](tree, fixture.MustLookup("a.Base.p"))
		require.True(t, ok)
		assert.True(t, property.IsVar)
		assert.Equal(t, fixture.MustLookup("a.Base.p.<get>"), property.Getter())
		assert.Equal(t, fixture.MustLookup("a.Base.p.<set>"), property.Setter())

		setter, ok := ast.Get[*ast.PropertyAccessor](tree, property.Setter())
		require.True(t, ok)
		assert.Equal(t, common.VisibilityPrivate, setter.Status.Visibility)
	})

	t.Run("constructor", func(t *testing.T) {
		constructor, ok := ast.Get[*ast.Constructor](tree, fixture.MustLookup("a.Base.<init>"))
		require.True(t, ok)
		assert.True(t, constructor.IsPrimary)
		assert.Nil(t, constructor.Delegated)

		secondary, ok := ast.Get[*ast.Constructor](tree, fixture.MustLookup("a.Base.<init>#2"))
		require.True(t, ok)
		require.NotNil(t, secondary.Delegated)
		assert.True(t, secondary.Delegated.IsThis)
		assert.Equal(t, ast.ImplicitTypeRef{}, tree.TypeRef(secondary.Delegated.ConstructedType))
	})

	t.Run("annotations", func(t *testing.T) {
		class, ok := ast.Get[*ast.RegularClass](tree, fixture.MustLookup("a.Base"))
		require.True(t, ok)
		require.Len(t, class.AnnotationTypes(), 1)
		assert.Equal(t,
			&ast.UnresolvedTypeRef{
				Qualifier: []string{"Deprecated"},
			},
			tree.TypeRef(class.AnnotationTypes()[0]),
		)

		parameter, ok := ast.Get[*ast.ValueParameter](tree, fixture.MustLookup("a.Base.<init>#2(x)"))
		require.True(t, ok)
		assert.Len(t, parameter.AnnotationTypes(), 1)
	})

	t.Run("stand-in", func(t *testing.T) {
		function, ok := ast.Get[*ast.SimpleFunction](tree, fixture.MustLookup("a.Base.bar"))
		require.True(t, ok)
		assert.Equal(t, fixture.MustLookup("a.Base.foo"), function.OverriddenSymbol)
	})

	t.Run("library", func(t *testing.T) {
		named := fixture.MustLookup("lib.Named")
		assert.Equal(t, ast.NoDeclarationID, tree.ContainingFile(named))

		status, ok := tree.ResolvedStatus(named)
		require.True(t, ok)
		assert.Equal(t, common.VisibilityPublic, status.Visibility())
		assert.Equal(t, common.ModalityAbstract, status.Modality())

		member, ok := tree.ResolvedStatus(fixture.MustLookup("lib.Named.name"))
		require.True(t, ok)
		assert.Equal(t, common.ModalityAbstract, member.Modality())
	})

	t.Run("builtins", func(t *testing.T) {
		anyID := fixture.MustLookup("kotlin.Any")
		status, ok := tree.ResolvedStatus(anyID)
		require.True(t, ok)
		assert.Equal(t, common.ModalityOpen, status.Modality())

		unit, ok := ast.Get[*ast.RegularClass](tree, fixture.MustLookup("kotlin.Unit"))
		require.True(t, ok)
		require.Len(t, unit.SuperTypes, 1)

		superType, ok := tree.ResolvedType(unit.SuperTypes[0])
		require.True(t, ok)
		assert.Equal(t,
			&ast.ClassType{
				ClassID: common.AnyClassID,
			},
			superType,
		)
	})
}

func TestParseFixtureLibraryStatuses(t *testing.T) {

	t.Parallel()

	// Subclasses are declared before their supertypes
	const source = `
libraries:
  - package: lib
    declarations:
      - kind: class
        name: Square
        modifiers: [open]
        superTypes: [Base, Shape]
        members:
          - kind: fun
            name: area
            modifiers: [override]
            type: Int
            body: true
          - kind: fun
            name: describe
            modifiers: [override]
            type: String
            body: true
      - kind: class
        name: Circle
        superTypes: [Shape]
        members:
          - kind: fun
            name: area
            modifiers: [override]
            type: Int
            body: true
      - kind: class
        name: Base
        modifiers: [open]
        members:
          - kind: fun
            name: describe
            modifiers: [protected, open]
            type: String
            body: true
          - kind: var
            name: size
            type: Int
            initializer: true
            getter:
              body: true
      - kind: interface
        name: Shape
        members:
          - kind: fun
            name: area
            modifiers: [suspend]
            type: Int
          - kind: fun
            name: check
            modifiers: [private]
            type: Unit
            body: true
`

	fixture, err := ParseFixture([]byte(source))
	require.NoError(t, err)

	tree := fixture.Tree

	status := func(t *testing.T, path string) ast.ResolvedDeclarationStatus {
		status, ok := tree.ResolvedStatus(fixture.MustLookup(path))
		require.True(t, ok, path)
		return status
	}

	t.Run("private interface member", func(t *testing.T) {
		check := status(t, "lib.Shape.check")
		assert.Equal(t, common.VisibilityPrivate, check.Visibility())
		assert.Equal(t, common.ModalityFinal, check.Modality())

		area := status(t, "lib.Shape.area")
		assert.Equal(t, common.ModalityAbstract, area.Modality())
	})

	t.Run("override in open class", func(t *testing.T) {
		area := status(t, "lib.Square.area")
		assert.Equal(t, common.VisibilityPublic, area.Visibility())
		assert.Equal(t, common.ModalityOpen, area.Modality())
		assert.True(t, area.Has(common.ModifierOverride))
		assert.True(t, area.Has(common.ModifierSuspend))

		describe := status(t, "lib.Square.describe")
		assert.Equal(t, common.VisibilityProtected, describe.Visibility())
		assert.Equal(t, common.ModalityOpen, describe.Modality())
	})

	t.Run("override in final class", func(t *testing.T) {
		area := status(t, "lib.Circle.area")
		assert.Equal(t, common.ModalityFinal, area.Modality())
		assert.True(t, area.Has(common.ModifierSuspend))
	})

	t.Run("accessor", func(t *testing.T) {
		getter := status(t, "lib.Base.size.<get>")
		assert.Equal(t, common.VisibilityPublic, getter.Visibility())
		assert.Equal(t, common.ModalityFinal, getter.Modality())
	})
}

func TestParseFixtureErrors(t *testing.T) {

	t.Parallel()

	tests := map[string]string{
		"malformed YAML": "files: [",
		"unknown field": `
files:
  - name: A.kt
    unknown: true
`,
		"unknown kind": `
files:
  - name: A.kt
    declarations:
      - kind: struct
        name: S
`,
		"unknown modifier": `
files:
  - name: A.kt
    declarations:
      - kind: class
        name: C
        modifiers: [virtual]
`,
		"invalid type": `
files:
  - name: A.kt
    declarations:
      - kind: val
        name: p
        type: List<
`,
		"unknown library supertype": `
libraries:
  - package: lib
    declarations:
      - kind: class
        name: C
        superTypes: [Missing]
`,
		"anonymous object member": `
files:
  - name: A.kt
    declarations:
      - kind: class
        name: C
        members:
          - kind: anonymous
`,
		"unknown delegated constructor call": `
files:
  - name: A.kt
    declarations:
      - kind: class
        name: C
        members:
          - kind: constructor
            delegate:
              kind: self
`,
		"delegating function": `
files:
  - name: A.kt
    declarations:
      - kind: fun
        name: f
        delegate:
          kind: this
`,
		"annotated field": `
files:
  - name: A.kt
    declarations:
      - kind: class
        name: C
        members:
          - kind: field
            name: x
            type: Int
            annotations: [Marker]
`,
		"unknown stand-in target": `
files:
  - name: A.kt
    declarations:
      - kind: fun
        name: f
        standInFor: missing
`,
	}

	for name, source := range tests {
		source := source
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseFixture([]byte(source))
			common_utils.RequireUserError(t, err)
		})
	}
}
