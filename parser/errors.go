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
	"fmt"

	"github.com/onflow/statusresolver/errors"
)

// SyntaxError is reported for malformed type references.
type SyntaxError struct {
	Source  string
	Offset  int
	Message string
}

var _ errors.UserError = &SyntaxError{}

func (*SyntaxError) IsUserError() {}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf(
		"syntax error in %q at offset %d: %s",
		e.Source,
		e.Offset,
		e.Message,
	)
}

// UnknownModifierError is reported for modifier keywords which are not known.
type UnknownModifierError struct {
	Keyword string
}

var _ errors.UserError = &UnknownModifierError{}

func (*UnknownModifierError) IsUserError() {}

func (e *UnknownModifierError) Error() string {
	return fmt.Sprintf("unknown modifier: %q", e.Keyword)
}

// InvalidFixtureError is reported for declaration fixtures which are well-formed YAML,
// but do not describe a valid declaration tree.
type InvalidFixtureError struct {
	Path    string
	Message string
}

var _ errors.UserError = &InvalidFixtureError{}

func (*InvalidFixtureError) IsUserError() {}

func (e *InvalidFixtureError) Error() string {
	return fmt.Sprintf("invalid fixture at %s: %s", e.Path, e.Message)
}
