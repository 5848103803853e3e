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

package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModifierSet(t *testing.T) {

	t.Parallel()

	set := NewModifierSet(ModifierOverride, ModifierLateinit)

	assert.True(t, set.Has(ModifierOverride))
	assert.True(t, set.Has(ModifierLateinit))
	assert.False(t, set.Has(ModifierExternal))

	assert.Equal(t,
		[]Modifier{ModifierOverride, ModifierLateinit},
		set.Modifiers(),
	)
	assert.Equal(t, "override lateinit", set.String())

	set = set.Without(ModifierOverride).Union(NewModifierSet(ModifierInline))
	assert.Equal(t, "inline lateinit", set.String())
	assert.True(t, ModifierSet(0).IsEmpty())
}

func TestModifierKeywords(t *testing.T) {

	t.Parallel()

	seen := map[string]struct{}{}

	for _, modifier := range AllModifiers {
		keyword := modifier.Keyword()
		assert.NotContains(t, seen, keyword)
		seen[keyword] = struct{}{}
	}
}
