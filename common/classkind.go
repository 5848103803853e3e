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

//go:generate stringer -type=ClassKind

type ClassKind uint8

const (
	ClassKindClass ClassKind = iota
	ClassKindInterface
	ClassKindEnumClass
	ClassKindEnumEntry
	ClassKindAnnotationClass
	ClassKindObject
)

var ClassKinds = []ClassKind{
	ClassKindClass,
	ClassKindInterface,
	ClassKindEnumClass,
	ClassKindEnumEntry,
	ClassKindAnnotationClass,
	ClassKindObject,
}

func (k ClassKind) IsInterface() bool {
	return k == ClassKindInterface
}

// IsEnum returns true for enum classes and their entries.
func (k ClassKind) IsEnum() bool {
	return k == ClassKindEnumClass || k == ClassKindEnumEntry
}

func (k ClassKind) Keyword() string {
	switch k {
	case ClassKindClass:
		return "class"
	case ClassKindInterface:
		return "interface"
	case ClassKindEnumClass:
		return "enum class"
	case ClassKindEnumEntry:
		return "enum entry"
	case ClassKindAnnotationClass:
		return "annotation class"
	case ClassKindObject:
		return "object"
	}

	panic(errors.NewUnreachableError())
}

// ClassKindFromKeyword is the inverse of ClassKind.Keyword.
func ClassKindFromKeyword(keyword string) (ClassKind, bool) {
	for _, kind := range ClassKinds {
		if kind.Keyword() == keyword {
			return kind, true
		}
	}
	return 0, false
}
