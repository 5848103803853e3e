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

	"github.com/onflow/statusresolver/ast"
)

func TestSupertypeOverrideScope(t *testing.T) {

	t.Parallel()

	fixture := parseResolvedTypes(t, `
files:
  - name: A.kt
    package: a
    declarations:
      - kind: interface
        name: I
        members:
          - kind: fun
            name: f
            type: Unit
            parameters:
              - name: x
                type: Int
          - kind: val
            name: p
            type: Int
      - kind: class
        name: A
        modifiers: [open]
        superTypes: [I]
        members:
          - kind: fun
            name: f
            modifiers: [override]
            type: Unit
            body: true
            parameters:
              - name: x
                type: Int
          - kind: fun
            name: g
            modifiers: [open]
            type: Unit
            body: true
          - kind: fun
            name: hidden
            modifiers: [private]
            type: Unit
            body: true
          - kind: fun
            name: ext
            modifiers: [open]
            type: Unit
            body: true
      - kind: class
        name: B
        modifiers: [open]
        superTypes: [A]
      - kind: typealias
        name: AliasA
        type: A
      - kind: class
        name: C
        superTypes: [B, I]
        members:
          - kind: fun
            name: f
            modifiers: [override]
            type: Unit
            body: true
            parameters:
              - name: x
                type: Int
          - kind: fun
            name: overload
            type: Unit
            body: true
          - kind: fun
            name: g
            modifiers: [override]
            type: Unit
            body: true
          - kind: fun
            name: hidden
            type: Unit
            body: true
          - kind: fun
            name: ext
            receiver: String
            type: Unit
            body: true
          - kind: val
            name: p
            modifiers: [override]
            type: Int
            initializer: true
          - kind: constructor
            primary: true
      - kind: class
        name: D
        superTypes: [AliasA]
        members:
          - kind: fun
            name: g
            modifiers: [override]
            type: Unit
            body: true
      - kind: class
        name: X
        superTypes: [Y]
        members:
          - kind: fun
            name: m
            type: Unit
            body: true
          - kind: fun
            name: only
            type: Unit
            body: true
      - kind: class
        name: Y
        superTypes: [X]
        members:
          - kind: fun
            name: m
            type: Unit
            body: true
`)
	tree := fixture.Tree
	scope := NewSupertypeOverrideScope(tree, NewTreeSymbolProvider(tree).ClassLikeByID)

	overridden := func(class string, member string) []string {
		var result []ast.DeclarationID
		scope.ProcessDirectOverriddenMembers(
			fixture.MustLookup(class),
			fixture.MustLookup(member),
			func(overridden ast.DeclarationID) {
				result = append(result, overridden)
			},
		)
		return paths(fixture, result)
	}

	for member, expected := range map[string][]string{
		// The closest member of each direct supertype
		"a.C.f": {"a.A.f", "a.I.f"},
		"a.C.g": {"a.A.g"},
		"a.C.p": {"a.I.p"},
		// Private members are never overridden
		"a.C.hidden": {},
		// Receivers must match
		"a.C.ext":      {},
		"a.C.overload": {},
		"a.C.<init>":   {},
	} {
		t.Run(member, func(t *testing.T) {
			assert.Equal(t, expected, overridden("a.C", member))
		})
	}

	t.Run("type alias supertype", func(t *testing.T) {
		assert.Equal(t, []string{"a.A.g"}, overridden("a.D", "a.D.g"))
	})

	t.Run("supertype cycle", func(t *testing.T) {
		assert.Equal(t, []string{"a.Y.m"}, overridden("a.X", "a.X.m"))
		assert.Equal(t, []string{"a.X.m"}, overridden("a.Y", "a.Y.m"))
		assert.Equal(t, []string{}, overridden("a.X", "a.X.only"))
	})
}
