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

package sema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/statusresolver/ast"
	"github.com/onflow/statusresolver/parser"
)

const designationFixture = `
files:
  - name: A.kt
    package: a
    declarations:
      - kind: class
        name: Outer
        members:
          - kind: class
            name: Inner
            members:
              - kind: fun
                name: f
                type: Unit
              - kind: typealias
                name: Alias
                type: Int
              - kind: class
                name: Deep
          - kind: fun
            name: g
            type: Unit
            body: true
            locals:
              - kind: class
                name: Local
                members:
                  - kind: class
                    name: Nested
                    members:
                      - kind: fun
                        name: h
                        type: Unit
              - kind: anonymous
      - kind: fun
        name: top
        type: Unit
`

func paths(fixture *parser.Fixture, ids []ast.DeclarationID) []string {
	names := map[ast.DeclarationID]string{}
	for path, id := range fixture.Paths() {
		names[id] = path
	}

	result := make([]string, len(ids))
	for i, id := range ids {
		result[i] = names[id]
	}
	return result
}

func TestDesignation(t *testing.T) {

	t.Parallel()

	fixture := parseResolvedTypes(t, designationFixture)
	tree := fixture.Tree

	local := fixture.MustLookup("a.Outer.g.Local")
	context := newStatusResolutionContext(
		tree,
		nil,
		NewStatusComputationSession(),
		CollectLocalClassParentMap(tree, local),
		nil,
	)

	for target, expected := range map[string][]string{
		"a.top":                    {"A.kt", "a.top"},
		"a.Outer":                  {"A.kt", "a.Outer"},
		"a.Outer.Inner.f":          {"A.kt", "a.Outer", "a.Outer.Inner", "a.Outer.Inner.f"},
		"a.Outer.Inner.Alias":      {"A.kt", "a.Outer", "a.Outer.Inner", "a.Outer.Inner.Alias"},
		"a.Outer.g.Local":          {"a.Outer.g.Local"},
		"a.Outer.g.Local.Nested.h": {"a.Outer.g.Local", "a.Outer.g.Local.Nested", "a.Outer.g.Local.Nested.h"},
	} {
		t.Run(target, func(t *testing.T) {
			designation := context.designation(fixture.MustLookup(target))
			assert.Equal(t, expected, paths(fixture, designation))
			assert.Equal(t, fixture.MustLookup(target), designation.Target())
		})
	}

	t.Run("local class outside of the hierarchy", func(t *testing.T) {
		anonymous := fixture.MustLookup("a.Outer.g.<anonymous>")

		var notFound *DesignationNotFoundError
		requirePanicsWithError(t, &notFound, func() {
			context.designation(anonymous)
		})
		assert.Equal(t, anonymous, notFound.Declaration)
	})

	t.Run("local class of the local scope", func(t *testing.T) {
		function := tree.Declaration(fixture.MustLookup("a.Outer.g")).(*ast.SimpleFunction)
		context := newStatusResolutionContext(
			tree,
			nil,
			NewStatusComputationSession(),
			LocalClassParentMap{},
			NewDeclarationScope(tree, function.LocalDeclarations()),
		)

		designation := context.designation(fixture.MustLookup("a.Outer.g.Local.Nested"))
		assert.Equal(t,
			[]string{"a.Outer.g.Local", "a.Outer.g.Local.Nested"},
			paths(fixture, designation),
		)
	})
}

func TestCollectLocalClassParentMap(t *testing.T) {

	t.Parallel()

	fixture := parseFixture(t, designationFixture)

	local := fixture.MustLookup("a.Outer.g.Local")
	nested := fixture.MustLookup("a.Outer.g.Local.Nested")

	parents := CollectLocalClassParentMap(fixture.Tree, local)

	assert.Equal(t,
		LocalClassParentMap{
			local:  ast.NoDeclarationID,
			nested: local,
		},
		parents,
	)
	assert.Equal(t, []ast.DeclarationID{local, nested}, parents.Classes())
}

func TestDesignatedStatusTraversal(t *testing.T) {

	t.Parallel()

	fixture := parseFixture(t, designationFixture)
	tree := fixture.Tree

	file := fixture.MustLookup("A.kt")
	outer := fixture.MustLookup("a.Outer")
	inner := fixture.MustLookup("a.Outer.Inner")

	traversal := newDesignatedStatusTraversal(tree, Designation{file, outer, inner})

	fileDeclaration := tree.Declaration(file).(*ast.File)
	outerDeclaration := tree.Declaration(outer).(*ast.RegularClass)
	innerDeclaration := tree.Declaration(inner).(*ast.RegularClass)

	require.Equal(t, rolePrefix, traversal.enter(file))
	assert.Equal(t, []ast.DeclarationID{outer}, traversal.content(fileDeclaration.Declarations()))

	require.Equal(t, rolePrefix, traversal.enter(outer))
	assert.Equal(t, []ast.DeclarationID{inner}, traversal.content(outerDeclaration.Declarations()))

	require.Equal(t, roleTarget, traversal.enter(inner))

	// Members and type aliases of the target are visited, nested classes are not
	assert.Equal(t,
		[]string{"a.Outer.Inner.f", "a.Outer.Inner.Alias"},
		paths(fixture, traversal.content(innerDeclaration.Declarations())),
	)

	assert.Equal(t, roleContent, traversal.enter(fixture.MustLookup("a.Outer.Inner.f")))

	t.Run("off the path", func(t *testing.T) {
		traversal := newDesignatedStatusTraversal(tree, Designation{file, outer, inner})

		assert.Equal(t, roleContent, traversal.enter(outer))
		assert.Empty(t, traversal.content(outerDeclaration.Declarations()))
	})
}
