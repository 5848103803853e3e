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

package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsInternalError(t *testing.T) {

	t.Parallel()

	t.Run("unreachable", func(t *testing.T) {
		t.Parallel()

		assert.True(t, IsInternalError(NewUnreachableError()))
		assert.False(t, IsUserError(NewUnreachableError()))
	})

	t.Run("wrapped unexpected", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("resolving: %w", NewUnexpectedError("status of %s is unresolved", "foo"))
		assert.True(t, IsInternalError(err))
		assert.Equal(t, "resolving: status of foo is unresolved", err.Error())
	})

	t.Run("user", func(t *testing.T) {
		t.Parallel()

		err := NewDefaultUserError("unknown modifier %q", "opne")
		assert.True(t, IsUserError(err))
		assert.False(t, IsInternalError(err))
	})
}

func TestRecover(t *testing.T) {

	t.Parallel()

	assert.NoError(t, Recover(nil))

	unexpected := NewUnexpectedError("boom")
	assert.Equal(t, unexpected, Recover(unexpected))

	err := Recover("collaborator failed")
	externalErr, ok := GetExternalError(err)
	require.True(t, ok)
	assert.Equal(t, "collaborator failed", externalErr.Error())
}
