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
)

func TestParseModifiers(t *testing.T) {

	t.Parallel()

	status, err := ParseModifiers([]string{"protected", "open", "override", "external"})
	require.NoError(t, err)
	assert.Equal(t,
		ast.DeclarationStatus{
			Visibility: common.VisibilityProtected,
			Modality:   common.ModalityOpen,
			Modifiers:  common.NewModifierSet(common.ModifierOverride, common.ModifierExternal),
		},
		status,
	)

	status, err = ParseModifiers(nil)
	require.NoError(t, err)
	assert.Equal(t, ast.DeclarationStatus{}, status)

	_, err = ParseModifiers([]string{"open", "virtual"})
	require.Equal(t,
		&UnknownModifierError{
			Keyword: "virtual",
		},
		err,
	)
}

func TestModifierKeywordsTable(t *testing.T) {

	t.Parallel()

	for _, keyword := range modifierKeywords {
		found, ok := lookupModifierKeyword(keyword.keyword)
		require.True(t, ok, keyword.keyword)
		assert.Equal(t, keyword, found)
	}

	for _, keyword := range []string{"", "local", "private(this)", "Open"} {
		_, ok := lookupModifierKeyword(keyword)
		assert.False(t, ok, keyword)
	}
}
