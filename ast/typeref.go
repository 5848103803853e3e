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
	"strings"

	"github.com/turbolent/prettier"
)

// TypeRefID addresses a type reference slot in a Tree.
// The zero ID refers to no type reference, e.g. a missing receiver type.
type TypeRefID uint32

const NoTypeRefID TypeRefID = 0

func (id TypeRefID) IsValid() bool {
	return id != NoTypeRefID
}

// TypeRef is the content of a type reference slot.
// Type resolution replaces unresolved references by resolved ones.
type TypeRef interface {
	isTypeRef()
	Doc() prettier.Doc
}

// UnresolvedTypeRef is a type reference as written in source, e.g. "a.b.List<T>?".
type UnresolvedTypeRef struct {
	Qualifier []string
	Arguments []*UnresolvedTypeRef
	Nullable  bool
}

var _ TypeRef = &UnresolvedTypeRef{}

func (*UnresolvedTypeRef) isTypeRef() {}

// QualifiedName returns the dot-separated qualifier.
func (r *UnresolvedTypeRef) QualifiedName() string {
	return strings.Join(r.Qualifier, ".")
}

func (r *UnresolvedTypeRef) Doc() prettier.Doc {
	doc := prettier.Concat{
		prettier.Text(r.QualifiedName()),
	}
	if len(r.Arguments) > 0 {
		argumentDocs := make([]prettier.Doc, len(r.Arguments))
		for i, argument := range r.Arguments {
			argumentDocs[i] = argument.Doc()
		}
		doc = append(doc, typeArgumentsDoc(argumentDocs))
	}
	if r.Nullable {
		doc = append(doc, nullableDoc)
	}
	return doc
}

func (r *UnresolvedTypeRef) String() string {
	return Prettier(r.Doc())
}

// ImplicitTypeRef is a type reference which is not written in source,
// and is inferred by a later phase.
type ImplicitTypeRef struct{}

var _ TypeRef = ImplicitTypeRef{}

func (ImplicitTypeRef) isTypeRef() {}

func (ImplicitTypeRef) Doc() prettier.Doc {
	return prettier.Text("<implicit>")
}

// ResolvedTypeRef

type ResolvedTypeRef struct {
	Type Type
	// Source is the unresolved reference the type was resolved from, if any
	Source *UnresolvedTypeRef
}

var _ TypeRef = &ResolvedTypeRef{}

func (*ResolvedTypeRef) isTypeRef() {}

func (r *ResolvedTypeRef) Doc() prettier.Doc {
	return r.Type.Doc()
}

// IsError returns true if the reference could not be resolved.
func (r *ResolvedTypeRef) IsError() bool {
	_, ok := r.Type.(*ErrorType)
	return ok
}
