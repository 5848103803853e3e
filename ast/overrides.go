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
	"github.com/bits-and-blooms/bitset"

	"github.com/onflow/statusresolver/common"
)

// ClassLookup finds the classifier with the given class ID.
type ClassLookup func(classID common.ClassID) (DeclarationID, bool)

// MemberSignature is what overriding members have in common with the members they override:
// kind, name, number of value parameters, and presence of a receiver.
type MemberSignature struct {
	Kind            common.DeclarationKind
	Name            string
	ValueParameters int
	HasReceiver     bool
}

// MemberSignature returns the signature of the given member,
// if it is a member which can override, i.e. a function or a property.
func (t *Tree) MemberSignature(member DeclarationID) (MemberSignature, bool) {
	switch declaration := t.Declaration(member).(type) {
	case *SimpleFunction:
		return MemberSignature{
			Kind:            common.DeclarationKindSimpleFunction,
			Name:            declaration.Name,
			ValueParameters: len(declaration.ValueParameters()),
			HasReceiver:     declaration.ReceiverType.IsValid(),
		}, true

	case *Property:
		return MemberSignature{
			Kind:        common.DeclarationKindProperty,
			Name:        declaration.Name,
			HasReceiver: declaration.ReceiverType.IsValid(),
		}, true

	default:
		return MemberSignature{}, false
	}
}

// ClassMembers returns the members of the given class or anonymous object.
func (t *Tree) ClassMembers(class DeclarationID) []DeclarationID {
	switch declaration := t.Declaration(class).(type) {
	case *RegularClass:
		return declaration.Declarations()
	case *AnonymousObject:
		return declaration.Declarations()
	}
	return nil
}

// SuperTypes returns the supertype references of the given class or anonymous object.
func (t *Tree) SuperTypes(class DeclarationID) []TypeRefID {
	switch declaration := t.Declaration(class).(type) {
	case *RegularClass:
		return declaration.SuperTypes
	case *AnonymousObject:
		return declaration.SuperTypes
	}
	return nil
}

// ResolveSuperClass returns the class which the given resolved supertype reference refers to.
// Type aliases are expanded.
// Unresolved references and references to type parameters have no class.
func (t *Tree) ResolveSuperClass(lookup ClassLookup, superType TypeRefID) (DeclarationID, bool) {
	resolvedType, ok := t.ResolvedType(superType)
	if !ok {
		return NoDeclarationID, false
	}
	classType, ok := resolvedType.(*ClassType)
	if !ok {
		return NoDeclarationID, false
	}
	id, ok := lookup(classType.ClassID)
	if !ok {
		return NoDeclarationID, false
	}
	return t.ExpandTypeAlias(lookup, id)
}

// ExpandTypeAlias follows type aliases until a class is reached.
func (t *Tree) ExpandTypeAlias(lookup ClassLookup, id DeclarationID) (DeclarationID, bool) {
	var seen map[DeclarationID]struct{}

	for {
		alias, ok := Get[*TypeAlias](t, id)
		if !ok {
			return id, true
		}

		if seen == nil {
			seen = map[DeclarationID]struct{}{}
		}
		if _, ok := seen[id]; ok {
			return NoDeclarationID, false
		}
		seen[id] = struct{}{}

		expandedType, ok := t.ResolvedType(alias.ExpandedType)
		if !ok {
			return NoDeclarationID, false
		}
		classType, ok := expandedType.(*ClassType)
		if !ok {
			return NoDeclarationID, false
		}
		id, ok = lookup(classType.ClassID)
		if !ok {
			return NoDeclarationID, false
		}
	}
}

// SuperClasses returns the classes of the resolved supertypes of the given class.
func (t *Tree) SuperClasses(lookup ClassLookup, class DeclarationID) []DeclarationID {
	var result []DeclarationID
	for _, superType := range t.SuperTypes(class) {
		superClass, ok := t.ResolveSuperClass(lookup, superType)
		if ok {
			result = append(result, superClass)
		}
	}
	return result
}

// ProcessDirectOverriddenMembers calls the given function for each member
// which the given member of the given class directly overrides.
//
// For each direct supertype, the closest matching member is reported:
// supertypes which do not declare a matching member are searched recursively.
// Private members are never overridden.
func (t *Tree) ProcessDirectOverriddenMembers(
	lookup ClassLookup,
	class DeclarationID,
	member DeclarationID,
	f func(overridden DeclarationID),
) {
	signature, ok := t.MemberSignature(member)
	if !ok {
		return
	}

	visited := bitset.New(uint(t.Len() + 1))
	visited.Set(uint(class))

	var processSuperClass func(class DeclarationID)
	processSuperClass = func(class DeclarationID) {
		if visited.Test(uint(class)) {
			return
		}
		visited.Set(uint(class))

		if overridden, ok := t.findMatchingMember(class, signature); ok {
			f(overridden)
			return
		}

		for _, superClass := range t.SuperClasses(lookup, class) {
			processSuperClass(superClass)
		}
	}

	for _, superClass := range t.SuperClasses(lookup, class) {
		processSuperClass(superClass)
	}
}

func (t *Tree) findMatchingMember(class DeclarationID, signature MemberSignature) (DeclarationID, bool) {
	for _, member := range t.ClassMembers(class) {
		candidate, ok := t.MemberSignature(member)
		if !ok || candidate != signature {
			continue
		}
		if t.Status(member).Declared().Visibility == common.VisibilityPrivate {
			continue
		}
		return member, true
	}
	return NoDeclarationID, false
}
