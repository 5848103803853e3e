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

package ast

import (
	"fmt"

	"github.com/onflow/statusresolver/common"
	"github.com/onflow/statusresolver/errors"
)

// StatusAlreadyResolvedError is reported when the declared status of a declaration
// is replaced after its status was resolved.
type StatusAlreadyResolvedError struct {
	Declaration DeclarationID
}

var _ errors.InternalError = &StatusAlreadyResolvedError{}

func (*StatusAlreadyResolvedError) IsInternalError() {}

func (e *StatusAlreadyResolvedError) Error() string {
	return fmt.Sprintf(
		"cannot replace status of declaration %d: status is already resolved",
		e.Declaration,
	)
}

// InvalidResolvedStatusError is reported when a resolved status is created
// from an unknown visibility or an unspecified modality.
type InvalidResolvedStatusError struct {
	Visibility common.Visibility
	Modality   common.Modality
}

var _ errors.InternalError = &InvalidResolvedStatusError{}

func (*InvalidResolvedStatusError) IsInternalError() {}

func (e *InvalidResolvedStatusError) Error() string {
	return fmt.Sprintf(
		"invalid resolved status: visibility %s, modality %s",
		e.Visibility,
		e.Modality,
	)
}

// InvalidChildError is reported when a declaration is added to a parent
// which cannot contain declarations of its kind.
type InvalidChildError struct {
	ParentKind common.DeclarationKind
	ChildKind  common.DeclarationKind
}

var _ errors.InternalError = &InvalidChildError{}

func (*InvalidChildError) IsInternalError() {}

func (e *InvalidChildError) Error() string {
	return fmt.Sprintf(
		"%s cannot be declared in %s",
		e.ChildKind.Name(),
		e.ParentKind.Name(),
	)
}

// MissingStatusError is reported when the status of a declaration is accessed
// which does not carry a status.
type MissingStatusError struct {
	Declaration DeclarationID
	Kind        common.DeclarationKind
}

var _ errors.InternalError = &MissingStatusError{}

func (*MissingStatusError) IsInternalError() {}

func (e *MissingStatusError) Error() string {
	return fmt.Sprintf(
		"%s %d has no status",
		e.Kind.Name(),
		e.Declaration,
	)
}

// InvalidDeclarationIDError is reported when an ID does not refer to a declaration of the tree.
type InvalidDeclarationIDError struct {
	Declaration DeclarationID
}

var _ errors.InternalError = &InvalidDeclarationIDError{}

func (*InvalidDeclarationIDError) IsInternalError() {}

func (e *InvalidDeclarationIDError) Error() string {
	return fmt.Sprintf("invalid declaration ID %d", e.Declaration)
}
