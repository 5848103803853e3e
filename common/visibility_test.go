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
	"github.com/stretchr/testify/require"
)

func TestCompareVisibilities(t *testing.T) {

	t.Parallel()

	type test struct {
		first, second Visibility
		result        int
		comparable    bool
	}

	tests := []test{
		{VisibilityPublic, VisibilityPublic, 0, true},
		{VisibilityPublic, VisibilityProtected, 1, true},
		{VisibilityProtected, VisibilityPublic, -1, true},
		{VisibilityInternal, VisibilityPrivate, 1, true},
		{VisibilityPrivateToThis, VisibilityPrivate, -1, true},
		{VisibilityInternal, VisibilityProtected, 0, false},
		{VisibilityLocal, VisibilityPublic, 0, false},
		{VisibilityUnknown, VisibilityPrivate, 0, false},
	}

	for _, test := range tests {
		test := test
		t.Run(test.first.String()+"/"+test.second.String(), func(t *testing.T) {
			t.Parallel()

			result, comparable := CompareVisibilities(test.first, test.second)
			require.Equal(t, test.comparable, comparable)
			if !comparable {
				return
			}
			switch {
			case test.result < 0:
				assert.Negative(t, result)
			case test.result > 0:
				assert.Positive(t, result)
			default:
				assert.Zero(t, result)
			}
		})
	}
}

func TestVisibilityIsMorePermissiveThan(t *testing.T) {

	t.Parallel()

	assert.True(t, VisibilityPublic.IsMorePermissiveThan(VisibilityProtected))
	assert.False(t, VisibilityProtected.IsMorePermissiveThan(VisibilityInternal))
	assert.False(t, VisibilityInternal.IsMorePermissiveThan(VisibilityProtected))
	assert.False(t, VisibilityPublic.IsMorePermissiveThan(VisibilityPublic))
}

func TestVisibilityKeyword(t *testing.T) {

	t.Parallel()

	for _, visibility := range Visibilities {
		assert.NotPanics(t, func() {
			_ = visibility.Keyword()
		})
	}

	assert.Equal(t, VisibilityPrivate, VisibilityPrivateToThis.Normalize())
	assert.Equal(t, VisibilityPublic, VisibilityPublic.Normalize())
}
