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

type DeclarationVisitor[T any] interface {
	VisitFile(*File) T
	VisitRegularClass(*RegularClass) T
	VisitAnonymousObject(*AnonymousObject) T
	VisitProperty(*Property) T
	VisitPropertyAccessor(*PropertyAccessor) T
	VisitSimpleFunction(*SimpleFunction) T
	VisitConstructor(*Constructor) T
	VisitField(*Field) T
	VisitTypeAlias(*TypeAlias) T
	VisitTypeParameter(*TypeParameter) T
	VisitValueParameter(*ValueParameter) T
	VisitEnumEntry(*EnumEntry) T
}

func AcceptDeclaration[T any](declaration Declaration, visitor DeclarationVisitor[T]) (_ T) {

	switch declaration.DeclarationKind() {

	case common.DeclarationKindFile:
		return visitor.VisitFile(declaration.(*File))

	case common.DeclarationKindRegularClass:
		return visitor.VisitRegularClass(declaration.(*RegularClass))

	case common.DeclarationKindAnonymousObject:
		return visitor.VisitAnonymousObject(declaration.(*AnonymousObject))

	case common.DeclarationKindProperty:
		return visitor.VisitProperty(declaration.(*Property))

	case common.DeclarationKindPropertyAccessor:
		return visitor.VisitPropertyAccessor(declaration.(*PropertyAccessor))

	case common.DeclarationKindSimpleFunction:
		return visitor.VisitSimpleFunction(declaration.(*SimpleFunction))

	case common.DeclarationKindConstructor:
		return visitor.VisitConstructor(declaration.(*Constructor))

	case common.DeclarationKindField:
		return visitor.VisitField(declaration.(*Field))

	case common.DeclarationKindTypeAlias:
		return visitor.VisitTypeAlias(declaration.(*TypeAlias))

	case common.DeclarationKindTypeParameter:
		return visitor.VisitTypeParameter(declaration.(*TypeParameter))

	case common.DeclarationKindValueParameter:
		return visitor.VisitValueParameter(declaration.(*ValueParameter))

	case common.DeclarationKindEnumEntry:
		return visitor.VisitEnumEntry(declaration.(*EnumEntry))
	}

	panic(errors.NewUnreachableError())
}

// Children returns the child declarations of the given declaration:
// type parameters first, then value parameters, accessors, members, and local declarations.
func (t *Tree) Children(id DeclarationID) []DeclarationID {
	var children []DeclarationID

	switch declaration := t.Declaration(id).(type) {
	case *File:
		children = append(children, declaration.declarations...)

	case *RegularClass:
		children = append(children, declaration.typeParameters...)
		children = append(children, declaration.declarations...)

	case *AnonymousObject:
		children = append(children, declaration.declarations...)

	case *Property:
		children = append(children, declaration.typeParameters...)
		if declaration.getter != NoDeclarationID {
			children = append(children, declaration.getter)
		}
		if declaration.setter != NoDeclarationID {
			children = append(children, declaration.setter)
		}
		children = append(children, declaration.localDeclarations...)

	case *PropertyAccessor:
		children = append(children, declaration.valueParameters...)
		children = append(children, declaration.localDeclarations...)

	case *SimpleFunction:
		children = append(children, declaration.typeParameters...)
		children = append(children, declaration.valueParameters...)
		children = append(children, declaration.localDeclarations...)

	case *Constructor:
		children = append(children, declaration.valueParameters...)
		children = append(children, declaration.localDeclarations...)

	case *TypeAlias:
		children = append(children, declaration.typeParameters...)
	}

	return children
}

// Walk calls the given function for the declaration and all its descendants, in pre-order.
// Descendants of a declaration are skipped if the function returns false.
func (t *Tree) Walk(id DeclarationID, f func(Declaration) bool) {
	if !f(t.Declaration(id)) {
		return
	}
	for _, child := range t.Children(id) {
		t.Walk(child, f)
	}
}
