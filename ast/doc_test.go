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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/onflow/statusresolver/common"
)

func TestTree_Doc(t *testing.T) {

	t.Parallel()

	tree := NewTree()

	fileID := tree.AddFile(&File{
		Name: "Test.kt",
	})
	classID := tree.Add(fileID, &RegularClass{
		Name:      "Base",
		ClassKind: common.ClassKindClass,
		Status: DeclarationStatus{
			Modality: common.ModalityOpen,
		},
	})
	functionID := tree.Add(classID, &SimpleFunction{
		Name: "foo",
		Status: DeclarationStatus{
			Modality: common.ModalityOpen,
		},
		ReturnType: tree.NewTypeRef(&UnresolvedTypeRef{
			Qualifier: []string{"Unit"},
		}),
	})

	assert.Equal(t,
		"open class Base {\n"+
			"    open fun foo(): Unit\n"+
			"}",
		tree.String(classID),
	)

	tree.ReplaceStatus(
		functionID,
		NewResolvedDeclarationStatus(
			common.VisibilityPublic,
			common.ModalityOpen,
			0,
		),
	)

	assert.Equal(t,
		"public open fun foo(): Unit",
		tree.String(functionID),
	)
}

func TestTree_DocAnnotations(t *testing.T) {

	t.Parallel()

	tree := NewTree()

	fileID := tree.AddFile(&File{
		Name: "Test.kt",
	})
	classID := tree.Add(fileID, &RegularClass{
		Annotations: Annotations{
			tree.NewTypeRef(&UnresolvedTypeRef{
				Qualifier: []string{"Deprecated"},
			}),
		},
		Name:      "C",
		ClassKind: common.ClassKindClass,
	})
	constructorID := tree.Add(classID, &Constructor{
		Delegated: &DelegatedConstructorCall{
			ConstructedType: tree.NewTypeRef(&UnresolvedTypeRef{
				Qualifier: []string{"Base"},
			}),
		},
	})
	tree.Add(constructorID, &ValueParameter{
		Annotations: Annotations{
			tree.NewTypeRef(&UnresolvedTypeRef{
				Qualifier: []string{"Named"},
			}),
		},
		Name: "x",
		ReturnType: tree.NewTypeRef(&UnresolvedTypeRef{
			Qualifier: []string{"Int"},
		}),
	})

	assert.Equal(t,
		"@Deprecated class C {\n"+
			"    constructor(@Named x: Int) : super<Base>()\n"+
			"}",
		tree.String(classID),
	)

	var annotated []string
	tree.Walk(classID, func(declaration Declaration) bool {
		if declaration, ok := declaration.(AnnotatedDeclaration); ok && len(declaration.AnnotationTypes()) > 0 {
			annotated = append(annotated, declaration.DeclarationName())
		}
		return true
	})
	assert.Equal(t, []string{"C", "x"}, annotated)
}
