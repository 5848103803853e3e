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
)

// Type is a resolved type.
type Type interface {
	isType()
	IsNullable() bool
	Doc() prettier.Doc
	String() string
}

var nullableDoc = prettier.Text("?")

// ClassType

type ClassType struct {
	ClassID   common.ClassID
	Arguments []Type
	Nullable  bool
}

var _ Type = &ClassType{}

func (*ClassType) isType() {}

func (t *ClassType) IsNullable() bool {
	return t.Nullable
}

func (t *ClassType) Doc() prettier.Doc {
	doc := prettier.Concat{
		prettier.Text(t.ClassID.QualifiedName()),
	}
	if len(t.Arguments) > 0 {
		argumentDocs := make([]prettier.Doc, len(t.Arguments))
		for i, argument := range t.Arguments {
			argumentDocs[i] = argument.Doc()
		}
		doc = append(doc, typeArgumentsDoc(argumentDocs))
	}
	if t.Nullable {
		doc = append(doc, nullableDoc)
	}
	return doc
}

func (t *ClassType) String() string {
	return Prettier(t.Doc())
}

// TopType returns the supertype of all types, the nullable Any type.
func TopType() *ClassType {
	return &ClassType{
		ClassID:  common.AnyClassID,
		Nullable: true,
	}
}

// ArrayOf returns the array type of the given element type.
func ArrayOf(elementType Type) *ClassType {
	return &ClassType{
		ClassID:   common.ArrayClassID,
		Arguments: []Type{elementType},
	}
}

// TypeParameterType

type TypeParameterType struct {
	Parameter DeclarationID
	Name      string
	Nullable  bool
}

var _ Type = &TypeParameterType{}

func (*TypeParameterType) isType() {}

func (t *TypeParameterType) IsNullable() bool {
	return t.Nullable
}

func (t *TypeParameterType) Doc() prettier.Doc {
	if t.Nullable {
		return prettier.Concat{
			prettier.Text(t.Name),
			nullableDoc,
		}
	}
	return prettier.Text(t.Name)
}

func (t *TypeParameterType) String() string {
	return Prettier(t.Doc())
}

// ErrorType is the result of a type reference which could not be resolved.
type ErrorType struct {
	Reason string
	// Suggestion is the closest visible classifier name, if any
	Suggestion string
}

var _ Type = &ErrorType{}

func (*ErrorType) isType() {}

func (*ErrorType) IsNullable() bool {
	return false
}

func (t *ErrorType) Doc() prettier.Doc {
	return prettier.Text("<error: " + t.Reason + ">")
}

func (t *ErrorType) String() string {
	return Prettier(t.Doc())
}

func typeArgumentsDoc(argumentDocs []prettier.Doc) prettier.Doc {
	return prettier.Wrap(
		prettier.Text("<"),
		prettier.Join(typeArgumentSeparatorDoc, argumentDocs...),
		prettier.Text(">"),
		prettier.SoftLine{},
	)
}

var typeArgumentSeparatorDoc = prettier.Concat{
	prettier.Text(","),
	prettier.Line{},
}
