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
	"github.com/onflow/statusresolver/common"
	"github.com/onflow/statusresolver/errors"
)

type node struct {
	declaration Declaration
	status      Status
	phase       common.ResolvePhase
}

// Tree is the arena of all declarations of a compilation:
// the files, their declarations, and the declarations of libraries.
//
// Declarations are addressed by DeclarationID, type references by TypeRefID.
// The tree owns the mutable state of the declarations:
// their status slots, their resolve phases, and their type reference slots.
//
// A tree is not safe for concurrent use.
type Tree struct {
	nodes    []node
	typeRefs []TypeRef
	files    []DeclarationID
	// libraryClasses are the top-level classifiers without a containing file
	libraryClasses []DeclarationID
}

func NewTree() *Tree {
	return &Tree{
		// ID 0 is reserved
		nodes:    make([]node, 1),
		typeRefs: make([]TypeRef, 1),
	}
}

// Len returns the number of declarations in the tree.
func (t *Tree) Len() int {
	return len(t.nodes) - 1
}

func (t *Tree) node(id DeclarationID) *node {
	if id == NoDeclarationID || int(id) >= len(t.nodes) {
		panic(&InvalidDeclarationIDError{
			Declaration: id,
		})
	}
	return &t.nodes[id]
}

func (t *Tree) Declaration(id DeclarationID) Declaration {
	return t.node(id).declaration
}

// Get returns the declaration with the given ID, if it is of the given kind.
func Get[T Declaration](tree *Tree, id DeclarationID) (result T, ok bool) {
	if id == NoDeclarationID {
		return
	}
	result, ok = tree.Declaration(id).(T)
	return
}

func (t *Tree) Files() []DeclarationID {
	return t.files
}

func (t *Tree) LibraryClasses() []DeclarationID {
	return t.libraryClasses
}

// AddFile adds a file to the tree and returns its ID.
func (t *Tree) AddFile(file *File) DeclarationID {
	id := t.add(NoDeclarationID, file)
	t.files = append(t.files, id)
	return id
}

// AddLibraryClass adds a top-level classifier which is not declared in any file,
// e.g. a class of a precompiled library.
func (t *Tree) AddLibraryClass(classID common.ClassID, declaration ClassLikeDeclaration) DeclarationID {
	id := t.add(NoDeclarationID, declaration)
	setClassID(declaration, classID)
	t.libraryClasses = append(t.libraryClasses, id)
	return id
}

// Add adds the declaration as a child of the given parent declaration, and returns its ID.
//
// The class ID of classifiers is derived from the parent:
// classifiers nested in a function, constructor, property, or accessor are local.
func (t *Tree) Add(parent DeclarationID, declaration Declaration) DeclarationID {
	parentDeclaration := t.Declaration(parent)
	childKind := declaration.DeclarationKind()

	if !canContain(parentDeclaration, childKind) {
		panic(&InvalidChildError{
			ParentKind: parentDeclaration.DeclarationKind(),
			ChildKind:  childKind,
		})
	}

	id := t.add(parent, declaration)

	if classLike, ok := declaration.(ClassLikeDeclaration); ok {
		setClassID(classLike, t.childClassID(parentDeclaration, classLike))
	}

	switch parentDeclaration := parentDeclaration.(type) {
	case *File:
		parentDeclaration.declarations = append(parentDeclaration.declarations, id)

	case *RegularClass:
		if childKind == common.DeclarationKindTypeParameter {
			parentDeclaration.typeParameters = append(parentDeclaration.typeParameters, id)
		} else {
			parentDeclaration.declarations = append(parentDeclaration.declarations, id)
		}

	case *AnonymousObject:
		parentDeclaration.declarations = append(parentDeclaration.declarations, id)

	case *Property:
		switch declaration := declaration.(type) {
		case *PropertyAccessor:
			if declaration.IsGetter {
				parentDeclaration.getter = id
			} else {
				parentDeclaration.setter = id
			}
		case *TypeParameter:
			parentDeclaration.typeParameters = append(parentDeclaration.typeParameters, id)
		default:
			parentDeclaration.localDeclarations = append(parentDeclaration.localDeclarations, id)
		}

	case *PropertyAccessor:
		if childKind == common.DeclarationKindValueParameter {
			parentDeclaration.valueParameters = append(parentDeclaration.valueParameters, id)
		} else {
			parentDeclaration.localDeclarations = append(parentDeclaration.localDeclarations, id)
		}

	case *SimpleFunction:
		switch childKind {
		case common.DeclarationKindTypeParameter:
			parentDeclaration.typeParameters = append(parentDeclaration.typeParameters, id)
		case common.DeclarationKindValueParameter:
			parentDeclaration.valueParameters = append(parentDeclaration.valueParameters, id)
		default:
			parentDeclaration.localDeclarations = append(parentDeclaration.localDeclarations, id)
		}

	case *Constructor:
		if childKind == common.DeclarationKindValueParameter {
			parentDeclaration.valueParameters = append(parentDeclaration.valueParameters, id)
		} else {
			parentDeclaration.localDeclarations = append(parentDeclaration.localDeclarations, id)
		}

	case *TypeAlias:
		parentDeclaration.typeParameters = append(parentDeclaration.typeParameters, id)

	default:
		panic(errors.NewUnreachableError())
	}

	return id
}

func (t *Tree) add(parent DeclarationID, declaration Declaration) DeclarationID {
	id := DeclarationID(len(t.nodes))

	base, ok := declaration.(interface {
		attach(id DeclarationID, parent DeclarationID)
	})
	if !ok {
		panic(errors.NewUnreachableError())
	}
	base.attach(id, parent)

	var status Status
	if owner, ok := declaration.(StatusOwner); ok {
		status = UnresolvedStatus{
			DeclarationStatus: owner.DeclaredStatus(),
		}
	}

	t.nodes = append(t.nodes, node{
		declaration: declaration,
		status:      status,
		phase:       common.ResolvePhaseRawBuilder,
	})

	return id
}

func canContain(parent Declaration, childKind common.DeclarationKind) bool {
	switch parent.DeclarationKind() {
	case common.DeclarationKindFile:
		switch childKind {
		case common.DeclarationKindRegularClass,
			common.DeclarationKindTypeAlias,
			common.DeclarationKindProperty,
			common.DeclarationKindSimpleFunction:
			return true
		}

	case common.DeclarationKindRegularClass:
		switch childKind {
		case common.DeclarationKindFile,
			common.DeclarationKindAnonymousObject,
			common.DeclarationKindValueParameter,
			common.DeclarationKindPropertyAccessor:
			return false
		}
		return true

	case common.DeclarationKindAnonymousObject:
		// Anonymous objects only occur in bodies
		switch childKind {
		case common.DeclarationKindFile,
			common.DeclarationKindAnonymousObject,
			common.DeclarationKindValueParameter,
			common.DeclarationKindPropertyAccessor,
			common.DeclarationKindTypeParameter,
			common.DeclarationKindEnumEntry:
			return false
		}
		return true

	case common.DeclarationKindProperty:
		return childKind == common.DeclarationKindPropertyAccessor ||
			childKind == common.DeclarationKindTypeParameter ||
			isLocalClassifierKind(childKind)

	case common.DeclarationKindSimpleFunction:
		return childKind == common.DeclarationKindTypeParameter ||
			childKind == common.DeclarationKindValueParameter ||
			isLocalClassifierKind(childKind)

	case common.DeclarationKindPropertyAccessor,
		common.DeclarationKindConstructor:
		return childKind == common.DeclarationKindValueParameter ||
			isLocalClassifierKind(childKind)

	case common.DeclarationKindTypeAlias:
		return childKind == common.DeclarationKindTypeParameter
	}

	return false
}

func isLocalClassifierKind(kind common.DeclarationKind) bool {
	return kind == common.DeclarationKindRegularClass ||
		kind == common.DeclarationKindAnonymousObject
}

func (t *Tree) childClassID(parent Declaration, child ClassLikeDeclaration) common.ClassID {
	name := child.DeclarationName()

	switch parent := parent.(type) {
	case *File:
		return common.NewClassID(parent.PackageName, name, false)

	case *RegularClass:
		return parent.ClassID().NestedClassID(name)

	case *AnonymousObject:
		return parent.ClassID().NestedClassID(name)
	}

	// Classifiers declared in bodies are local
	packageName := ""
	if file, ok := Get[*File](t, t.ContainingFile(parent.ID())); ok {
		packageName = file.PackageName
	}
	return common.NewClassID(packageName, name, true)
}

func setClassID(declaration ClassLikeDeclaration, classID common.ClassID) {
	switch declaration := declaration.(type) {
	case *RegularClass:
		declaration.classID = classID
	case *AnonymousObject:
		declaration.classID = classID
	case *TypeAlias:
		declaration.classID = classID
	default:
		panic(errors.NewUnreachableError())
	}
}

// Status returns the status slot of the declaration.
func (t *Tree) Status(id DeclarationID) Status {
	node := t.node(id)
	if node.status == nil {
		panic(&MissingStatusError{
			Declaration: id,
			Kind:        node.declaration.DeclarationKind(),
		})
	}
	return node.status
}

// HasStatus returns true if the declaration carries a status.
func (t *Tree) HasStatus(id DeclarationID) bool {
	return t.node(id).status != nil
}

// ResolvedStatus returns the resolved status of the declaration, if it is resolved.
func (t *Tree) ResolvedStatus(id DeclarationID) (ResolvedDeclarationStatus, bool) {
	node := t.node(id)
	if node.status == nil {
		return ResolvedDeclarationStatus{}, false
	}
	return ResolvedOf(node.status)
}

// ReplaceStatus transitions the status slot of the declaration from unresolved to resolved.
// The transition happens at most once: if the status is already resolved,
// the existing resolved status is kept and returned.
func (t *Tree) ReplaceStatus(id DeclarationID, resolved ResolvedDeclarationStatus) ResolvedDeclarationStatus {
	node := t.node(id)

	switch status := node.status.(type) {
	case ResolvedStatus:
		return status.Resolved

	case UnresolvedStatus:
		if resolved.IsZero() {
			panic(errors.NewUnexpectedError("zero resolved status for declaration %d", id))
		}
		node.status = ResolvedStatus{
			Resolved: resolved,
		}
		return resolved

	case nil:
		panic(&MissingStatusError{
			Declaration: id,
			Kind:        node.declaration.DeclarationKind(),
		})
	}

	panic(errors.NewUnreachableError())
}

// ReplaceRawStatus replaces the declared status of a declaration whose status is not resolved yet.
func (t *Tree) ReplaceRawStatus(id DeclarationID, status DeclarationStatus) {
	node := t.node(id)

	switch node.status.(type) {
	case UnresolvedStatus:
		node.status = UnresolvedStatus{
			DeclarationStatus: status,
		}

	case ResolvedStatus:
		panic(&StatusAlreadyResolvedError{
			Declaration: id,
		})

	case nil:
		panic(&MissingStatusError{
			Declaration: id,
			Kind:        node.declaration.DeclarationKind(),
		})

	default:
		panic(errors.NewUnreachableError())
	}
}

func (t *Tree) Phase(id DeclarationID) common.ResolvePhase {
	return t.node(id).phase
}

// AdvancePhase raises the resolve phase of the declaration.
// Phases never go back: advancing to an earlier phase has no effect.
func (t *Tree) AdvancePhase(id DeclarationID, phase common.ResolvePhase) {
	node := t.node(id)
	if node.phase.IsBefore(phase) {
		node.phase = phase
	}
}

// NewTypeRef allocates a type reference slot.
func (t *Tree) NewTypeRef(ref TypeRef) TypeRefID {
	id := TypeRefID(len(t.typeRefs))
	t.typeRefs = append(t.typeRefs, ref)
	return id
}

// TypeRef returns the content of the type reference slot, or nil for NoTypeRefID.
func (t *Tree) TypeRef(id TypeRefID) TypeRef {
	if id == NoTypeRefID {
		return nil
	}
	return t.typeRefs[id]
}

func (t *Tree) ReplaceTypeRef(id TypeRefID, ref TypeRef) {
	if id == NoTypeRefID {
		panic(errors.NewUnexpectedError("cannot replace missing type reference"))
	}
	t.typeRefs[id] = ref
}

// ResolvedType returns the type of a resolved type reference.
func (t *Tree) ResolvedType(id TypeRefID) (Type, bool) {
	ref, ok := t.TypeRef(id).(*ResolvedTypeRef)
	if !ok {
		return nil, false
	}
	return ref.Type, true
}

// ContainingFile returns the file the declaration is declared in,
// or NoDeclarationID for library declarations.
func (t *Tree) ContainingFile(id DeclarationID) DeclarationID {
	for id != NoDeclarationID {
		declaration := t.Declaration(id)
		if declaration.DeclarationKind() == common.DeclarationKindFile {
			return id
		}
		id = declaration.Parent()
	}
	return NoDeclarationID
}

// ContainingClass returns the class which declares the given member.
// The containing class of a property accessor is the class declaring the property.
// Declarations outside of classes, e.g. top-level and local declarations, have no containing class.
func (t *Tree) ContainingClass(id DeclarationID) DeclarationID {
	parent := t.Declaration(id).Parent()
	if parent == NoDeclarationID {
		return NoDeclarationID
	}

	parentDeclaration := t.Declaration(parent)
	if parentDeclaration.DeclarationKind() == common.DeclarationKindProperty &&
		t.Declaration(id).DeclarationKind() == common.DeclarationKindPropertyAccessor {

		parent = parentDeclaration.Parent()
		if parent == NoDeclarationID {
			return NoDeclarationID
		}
		parentDeclaration = t.Declaration(parent)
	}

	switch parentDeclaration.DeclarationKind() {
	case common.DeclarationKindRegularClass,
		common.DeclarationKindAnonymousObject:
		return parent
	}

	return NoDeclarationID
}
