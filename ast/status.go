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
	"github.com/turbolent/prettier"

	"github.com/onflow/statusresolver/common"
	"github.com/onflow/statusresolver/errors"
)

// DeclarationStatus is the status of a declaration as written in source.
// Any component may be left unspecified.
type DeclarationStatus struct {
	Visibility common.Visibility
	Modality   common.Modality
	Modifiers  common.ModifierSet
}

func (s DeclarationStatus) Has(modifier common.Modifier) bool {
	return s.Modifiers.Has(modifier)
}

func (s DeclarationStatus) Doc() prettier.Doc {
	return statusDoc(s.Visibility, s.Modality, s.Modifiers)
}

func (s DeclarationStatus) String() string {
	return Prettier(s.Doc())
}

// ResolvedDeclarationStatus is a fully resolved declaration status:
// the visibility and the modality are always concrete.
//
// The fields are unexported, a resolved status can only be created through
// NewResolvedDeclarationStatus and never changes afterwards.
type ResolvedDeclarationStatus struct {
	visibility common.Visibility
	modality   common.Modality
	modifiers  common.ModifierSet
}

func NewResolvedDeclarationStatus(
	visibility common.Visibility,
	modality common.Modality,
	modifiers common.ModifierSet,
) ResolvedDeclarationStatus {
	if visibility.IsUnknown() || !modality.IsSpecified() {
		panic(&InvalidResolvedStatusError{
			Visibility: visibility,
			Modality:   modality,
		})
	}

	return ResolvedDeclarationStatus{
		visibility: visibility,
		modality:   modality,
		modifiers:  modifiers,
	}
}

func (s ResolvedDeclarationStatus) Visibility() common.Visibility {
	return s.visibility
}

func (s ResolvedDeclarationStatus) Modality() common.Modality {
	return s.modality
}

func (s ResolvedDeclarationStatus) Modifiers() common.ModifierSet {
	return s.modifiers
}

func (s ResolvedDeclarationStatus) Has(modifier common.Modifier) bool {
	return s.modifiers.Has(modifier)
}

// IsZero returns true for the zero value, which is not a valid resolved status.
func (s ResolvedDeclarationStatus) IsZero() bool {
	return s == ResolvedDeclarationStatus{}
}

// Declared returns the resolved status in the form of a declared status.
func (s ResolvedDeclarationStatus) Declared() DeclarationStatus {
	return DeclarationStatus{
		Visibility: s.visibility,
		Modality:   s.modality,
		Modifiers:  s.modifiers,
	}
}

func (s ResolvedDeclarationStatus) Doc() prettier.Doc {
	return statusDoc(s.visibility, s.modality, s.modifiers)
}

func (s ResolvedDeclarationStatus) String() string {
	return Prettier(s.Doc())
}

func statusDoc(
	visibility common.Visibility,
	modality common.Modality,
	modifiers common.ModifierSet,
) prettier.Doc {
	var docs []prettier.Doc

	if keyword := visibility.Keyword(); keyword != "" {
		docs = append(docs, prettier.Text(keyword))
	}
	if keyword := modality.Keyword(); keyword != "" {
		docs = append(docs, prettier.Text(keyword))
	}
	for _, modifier := range modifiers.Modifiers() {
		docs = append(docs, prettier.Text(modifier.Keyword()))
	}

	return prettier.Join(prettier.Space, docs...)
}

// Status is the status slot of a declaration.
// It is either unresolved, holding the declared status,
// or resolved, holding the resolved status.
type Status interface {
	isStatus()
	Declared() DeclarationStatus
	IsResolved() bool
}

type UnresolvedStatus struct {
	DeclarationStatus
}

var _ Status = UnresolvedStatus{}

func (UnresolvedStatus) isStatus() {}

func (s UnresolvedStatus) Declared() DeclarationStatus {
	return s.DeclarationStatus
}

func (UnresolvedStatus) IsResolved() bool {
	return false
}

type ResolvedStatus struct {
	Resolved ResolvedDeclarationStatus
}

var _ Status = ResolvedStatus{}

func (ResolvedStatus) isStatus() {}

func (s ResolvedStatus) Declared() DeclarationStatus {
	return s.Resolved.Declared()
}

func (ResolvedStatus) IsResolved() bool {
	return true
}

// ResolvedOf returns the resolved status of the given status slot, if it is resolved.
func ResolvedOf(status Status) (ResolvedDeclarationStatus, bool) {
	switch status := status.(type) {
	case ResolvedStatus:
		return status.Resolved, true
	case UnresolvedStatus, nil:
		return ResolvedDeclarationStatus{}, false
	}

	panic(errors.NewUnreachableError())
}
