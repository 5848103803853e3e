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
	"github.com/onflow/statusresolver/errors"
)

func TestParseTypeReference(t *testing.T) {

	t.Parallel()

	t.Run("simple", func(t *testing.T) {
		t.Parallel()

		typeRef, err := ParseTypeReference("Int")
		require.NoError(t, err)
		assert.Equal(t,
			&ast.UnresolvedTypeRef{
				Qualifier: []string{"Int"},
			},
			typeRef,
		)
	})

	t.Run("qualified, nullable", func(t *testing.T) {
		t.Parallel()

		typeRef, err := ParseTypeReference(" a.b.C? ")
		require.NoError(t, err)
		assert.Equal(t,
			&ast.UnresolvedTypeRef{
				Qualifier: []string{"a", "b", "C"},
				Nullable:  true,
			},
			typeRef,
		)
	})

	t.Run("nested arguments", func(t *testing.T) {
		t.Parallel()

		typeRef, err := ParseTypeReference("Map<K, List<V?>>?")
		require.NoError(t, err)
		assert.Equal(t,
			&ast.UnresolvedTypeRef{
				Qualifier: []string{"Map"},
				Arguments: []*ast.UnresolvedTypeRef{
					{
						Qualifier: []string{"K"},
					},
					{
						Qualifier: []string{"List"},
						Arguments: []*ast.UnresolvedTypeRef{
							{
								Qualifier: []string{"V"},
								Nullable:  true,
							},
						},
					},
				},
				Nullable: true,
			},
			typeRef,
		)
		assert.Equal(t, "Map<K, List<V?>>?", typeRef.String())
	})

	t.Run("errors", func(t *testing.T) {
		t.Parallel()

		for _, source := range []string{
			"",
			"List<",
			"List<A B>",
			"a.",
			"A)",
			"1A",
		} {
			_, err := ParseTypeReference(source)
			require.Error(t, err, source)

			var syntaxError *SyntaxError
			require.ErrorAs(t, err, &syntaxError)
			assert.True(t, errors.IsUserError(err))
		}
	})
}
