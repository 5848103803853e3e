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
	"strings"

	"github.com/onflow/statusresolver/errors"
)

// Modifier is a boolean flag of a declaration status.
type Modifier uint32

const (
	ModifierExpect Modifier = 1 << iota
	ModifierActual
	ModifierOverride
	ModifierOperator
	ModifierInfix
	ModifierInline
	ModifierTailrec
	ModifierExternal
	ModifierConst
	ModifierLateinit
	ModifierInner
	ModifierCompanion
	ModifierData
	ModifierSuspend
	ModifierStatic
	ModifierFun
)

// NOTE: ensure to update AllModifiers when adding a new modifier

var AllModifiers = []Modifier{
	ModifierExpect,
	ModifierActual,
	ModifierOverride,
	ModifierOperator,
	ModifierInfix,
	ModifierInline,
	ModifierTailrec,
	ModifierExternal,
	ModifierConst,
	ModifierLateinit,
	ModifierInner,
	ModifierCompanion,
	ModifierData,
	ModifierSuspend,
	ModifierStatic,
	ModifierFun,
}

func (m Modifier) Keyword() string {
	switch m {
	case ModifierExpect:
		return "expect"
	case ModifierActual:
		return "actual"
	case ModifierOverride:
		return "override"
	case ModifierOperator:
		return "operator"
	case ModifierInfix:
		return "infix"
	case ModifierInline:
		return "inline"
	case ModifierTailrec:
		return "tailrec"
	case ModifierExternal:
		return "external"
	case ModifierConst:
		return "const"
	case ModifierLateinit:
		return "lateinit"
	case ModifierInner:
		return "inner"
	case ModifierCompanion:
		return "companion"
	case ModifierData:
		return "data"
	case ModifierSuspend:
		return "suspend"
	case ModifierStatic:
		return "static"
	case ModifierFun:
		return "fun"
	}

	panic(errors.NewUnreachableError())
}

// ModifierSet is a set of modifiers.
type ModifierSet uint32

func NewModifierSet(modifiers ...Modifier) ModifierSet {
	var set ModifierSet
	for _, modifier := range modifiers {
		set = set.With(modifier)
	}
	return set
}

func (s ModifierSet) Has(modifier Modifier) bool {
	return uint32(s)&uint32(modifier) != 0
}

func (s ModifierSet) With(modifier Modifier) ModifierSet {
	return s | ModifierSet(modifier)
}

func (s ModifierSet) Without(modifier Modifier) ModifierSet {
	return s &^ ModifierSet(modifier)
}

func (s ModifierSet) Union(other ModifierSet) ModifierSet {
	return s | other
}

func (s ModifierSet) IsEmpty() bool {
	return s == 0
}

// Modifiers returns the modifiers of the set in declaration order.
func (s ModifierSet) Modifiers() []Modifier {
	var result []Modifier
	for _, modifier := range AllModifiers {
		if s.Has(modifier) {
			result = append(result, modifier)
		}
	}
	return result
}

func (s ModifierSet) String() string {
	modifiers := s.Modifiers()
	keywords := make([]string, 0, len(modifiers))
	for _, modifier := range modifiers {
		keywords = append(keywords, modifier.Keyword())
	}
	return strings.Join(keywords, " ")
}
