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
	"fmt"

	"github.com/onflow/statusresolver/ast"
	"github.com/onflow/statusresolver/common"
	"github.com/onflow/statusresolver/errors"
)

// UnresolvedStatusError is reported when the resolved status of a declaration is requested,
// but the status is not resolved and cannot be resolved.
type UnresolvedStatusError struct {
	Declaration ast.DeclarationID
	Kind        common.DeclarationKind
	Name        string
}

var _ errors.InternalError = &UnresolvedStatusError{}

func (*UnresolvedStatusError) IsInternalError() {}

func (e *UnresolvedStatusError) Error() string {
	return fmt.Sprintf(
		"status of %s %s (%d) is not resolved",
		e.Kind.Name(),
		e.Name,
		e.Declaration,
	)
}

func newUnresolvedStatusError(tree *ast.Tree, id ast.DeclarationID) *UnresolvedStatusError {
	declaration := tree.Declaration(id)
	return &UnresolvedStatusError{
		Declaration: id,
		Kind:        declaration.DeclarationKind(),
		Name:        declaration.DeclarationName(),
	}
}

// DesignationNotFoundError is reported when no designation path can be built to a declaration,
// e.g. because its containing class or file cannot be found.
type DesignationNotFoundError struct {
	Declaration ast.DeclarationID
	Reason      string
}

var _ errors.InternalError = &DesignationNotFoundError{}

func (*DesignationNotFoundError) IsInternalError() {}

func (e *DesignationNotFoundError) Error() string {
	return fmt.Sprintf(
		"cannot find designation of declaration %d: %s",
		e.Declaration,
		e.Reason,
	)
}

// UnsupportedDeclarationError is reported when the status of a declaration is resolved
// which does not carry a status.
type UnsupportedDeclarationError struct {
	Kind common.DeclarationKind
}

var _ errors.InternalError = &UnsupportedDeclarationError{}

func (*UnsupportedDeclarationError) IsInternalError() {}

func (e *UnsupportedDeclarationError) Error() string {
	return fmt.Sprintf("cannot resolve status of %s", e.Kind.Name())
}
