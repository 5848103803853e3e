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
	"github.com/onflow/statusresolver/errors"
)

//go:generate stringer -type=DeclarationKind

type DeclarationKind uint8

const (
	DeclarationKindUnknown DeclarationKind = iota
	DeclarationKindFile
	DeclarationKindRegularClass
	DeclarationKindAnonymousObject
	DeclarationKindProperty
	DeclarationKindPropertyAccessor
	DeclarationKindSimpleFunction
	DeclarationKindConstructor
	DeclarationKindField
	DeclarationKindTypeAlias
	DeclarationKindTypeParameter
	DeclarationKindValueParameter
	DeclarationKindEnumEntry
)

// IsClassLike returns true for declarations which own members and may be nested into other classes.
func (k DeclarationKind) IsClassLike() bool {
	switch k {
	case DeclarationKindRegularClass,
		DeclarationKindAnonymousObject,
		DeclarationKindTypeAlias:

		return true

	default:
		return false
	}
}

// IsCallableMember returns true for declarations which may override
// or be overridden by members of supertypes.
func (k DeclarationKind) IsCallableMember() bool {
	switch k {
	case DeclarationKindProperty,
		DeclarationKindSimpleFunction:

		return true

	default:
		return false
	}
}

// HasStatus returns true for declarations which carry a declaration status.
func (k DeclarationKind) HasStatus() bool {
	switch k {
	case DeclarationKindRegularClass,
		DeclarationKindProperty,
		DeclarationKindPropertyAccessor,
		DeclarationKindSimpleFunction,
		DeclarationKindConstructor,
		DeclarationKindField,
		DeclarationKindTypeAlias,
		DeclarationKindEnumEntry:

		return true

	default:
		return false
	}
}

func (k DeclarationKind) Name() string {
	switch k {
	case DeclarationKindUnknown:
		return "unknown"
	case DeclarationKindFile:
		return "file"
	case DeclarationKindRegularClass:
		return "class"
	case DeclarationKindAnonymousObject:
		return "anonymous object"
	case DeclarationKindProperty:
		return "property"
	case DeclarationKindPropertyAccessor:
		return "property accessor"
	case DeclarationKindSimpleFunction:
		return "function"
	case DeclarationKindConstructor:
		return "constructor"
	case DeclarationKindField:
		return "field"
	case DeclarationKindTypeAlias:
		return "type alias"
	case DeclarationKindTypeParameter:
		return "type parameter"
	case DeclarationKindValueParameter:
		return "value parameter"
	case DeclarationKindEnumEntry:
		return "enum entry"
	}

	panic(errors.NewUnreachableError())
}
