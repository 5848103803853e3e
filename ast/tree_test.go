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
	"github.com/stretchr/testify/require"

	"github.com/onflow/statusresolver/common"
)

func TestTree_Add(t *testing.T) {

	t.Parallel()

	tree := NewTree()

	fileID := tree.AddFile(&File{
		PackageName: "a.b",
		Name:        "Test.kt",
	})

	outerID := tree.Add(fileID, &RegularClass{
		Name:      "Outer",
		ClassKind: common.ClassKindClass,
	})
	typeParameterID := tree.Add(outerID, &TypeParameter{
		Name: "T",
	})
	innerID := tree.Add(outerID, &RegularClass{
		Name:      "Inner",
		ClassKind: common.ClassKindInterface,
	})
	functionID := tree.Add(outerID, &SimpleFunction{
		Name:    "f",
		HasBody: true,
	})
	localID := tree.Add(functionID, &RegularClass{
		Name:      "Local",
		ClassKind: common.ClassKindClass,
	})
	localNestedID := tree.Add(localID, &RegularClass{
		Name:      "Nested",
		ClassKind: common.ClassKindClass,
	})

	assert.Equal(t, 7, tree.Len())
	assert.Equal(t, []DeclarationID{fileID}, tree.Files())

	file, ok := Get[*File](tree, fileID)
	require.True(t, ok)
	assert.Equal(t, []DeclarationID{outerID}, file.Declarations())

	outer, ok := Get[*RegularClass](tree, outerID)
	require.True(t, ok)
	assert.Equal(t, common.NewClassID("a.b", "Outer", false), outer.ClassID())
	assert.Equal(t, []DeclarationID{typeParameterID}, outer.TypeParameters())
	assert.Equal(t, []DeclarationID{innerID, functionID}, outer.Declarations())

	inner, ok := Get[*RegularClass](tree, innerID)
	require.True(t, ok)
	assert.Equal(t, common.NewClassID("a.b", "Outer.Inner", false), inner.ClassID())

	function, ok := Get[*SimpleFunction](tree, functionID)
	require.True(t, ok)
	assert.Equal(t, []DeclarationID{localID}, function.LocalDeclarations())

	local, ok := Get[*RegularClass](tree, localID)
	require.True(t, ok)
	assert.Equal(t, common.NewClassID("a.b", "Local", true), local.ClassID())

	localNested, ok := Get[*RegularClass](tree, localNestedID)
	require.True(t, ok)
	assert.Equal(t, common.NewClassID("a.b", "Local.Nested", true), localNested.ClassID())

	_, ok = Get[*RegularClass](tree, functionID)
	assert.False(t, ok)

	assert.Equal(t, fileID, tree.ContainingFile(localNestedID))
	assert.Equal(t, outerID, tree.ContainingClass(functionID))
	assert.Equal(t, NoDeclarationID, tree.ContainingClass(localID))
	assert.Equal(t, localID, tree.ContainingClass(localNestedID))
	assert.Equal(t, NoDeclarationID, tree.ContainingClass(outerID))
}

func TestTree_AddInvalidChild(t *testing.T) {

	t.Parallel()

	tree := NewTree()

	fileID := tree.AddFile(&File{
		Name: "Test.kt",
	})

	assert.PanicsWithValue(t,
		&InvalidChildError{
			ParentKind: common.DeclarationKindFile,
			ChildKind:  common.DeclarationKindConstructor,
		},
		func() {
			tree.Add(fileID, &Constructor{})
		},
	)
}

func TestTree_AddLibraryClass(t *testing.T) {

	t.Parallel()

	tree := NewTree()

	classID := common.NewClassID("lib", "Base", false)
	id := tree.AddLibraryClass(classID, &RegularClass{
		Name: "Base",
	})
	memberID := tree.Add(id, &SimpleFunction{
		Name: "f",
	})

	class, ok := Get[*RegularClass](tree, id)
	require.True(t, ok)
	assert.Equal(t, classID, class.ClassID())
	assert.Equal(t, []DeclarationID{id}, tree.LibraryClasses())
	assert.Equal(t, NoDeclarationID, tree.ContainingFile(memberID))
	assert.Equal(t, id, tree.ContainingClass(memberID))
}

func TestTree_ContainingClassOfAccessor(t *testing.T) {

	t.Parallel()

	tree := NewTree()

	fileID := tree.AddFile(&File{
		Name: "Test.kt",
	})
	classID := tree.Add(fileID, &RegularClass{
		Name: "C",
	})
	propertyID := tree.Add(classID, &Property{
		Name: "p",
	})
	getterID := tree.Add(propertyID, &PropertyAccessor{
		IsGetter: true,
	})
	setterID := tree.Add(propertyID, &PropertyAccessor{})

	property, ok := Get[*Property](tree, propertyID)
	require.True(t, ok)
	assert.Equal(t, getterID, property.Getter())
	assert.Equal(t, setterID, property.Setter())

	assert.Equal(t, classID, tree.ContainingClass(getterID))
	assert.Equal(t, classID, tree.ContainingClass(setterID))

	topLevelPropertyID := tree.Add(fileID, &Property{
		Name: "q",
	})
	topLevelGetterID := tree.Add(topLevelPropertyID, &PropertyAccessor{
		IsGetter: true,
	})
	assert.Equal(t, NoDeclarationID, tree.ContainingClass(topLevelGetterID))
}

func TestTree_ReplaceStatus(t *testing.T) {

	t.Parallel()

	newTree := func() (*Tree, DeclarationID) {
		tree := NewTree()
		fileID := tree.AddFile(&File{
			Name: "Test.kt",
		})
		classID := tree.Add(fileID, &RegularClass{
			Name: "C",
			Status: DeclarationStatus{
				Visibility: common.VisibilityInternal,
			},
		})
		return tree, classID
	}

	t.Run("declared status", func(t *testing.T) {
		t.Parallel()

		tree, classID := newTree()

		status := tree.Status(classID)
		assert.False(t, status.IsResolved())
		assert.Equal(t,
			DeclarationStatus{
				Visibility: common.VisibilityInternal,
			},
			status.Declared(),
		)

		_, ok := tree.ResolvedStatus(classID)
		assert.False(t, ok)
	})

	t.Run("resolved once", func(t *testing.T) {
		t.Parallel()

		tree, classID := newTree()

		first := NewResolvedDeclarationStatus(
			common.VisibilityInternal,
			common.ModalityFinal,
			0,
		)
		second := NewResolvedDeclarationStatus(
			common.VisibilityPublic,
			common.ModalityOpen,
			common.NewModifierSet(common.ModifierExternal),
		)

		assert.Equal(t, first, tree.ReplaceStatus(classID, first))
		assert.Equal(t, first, tree.ReplaceStatus(classID, second))

		resolved, ok := tree.ResolvedStatus(classID)
		require.True(t, ok)
		assert.Equal(t, first, resolved)
	})

	t.Run("raw status before resolution", func(t *testing.T) {
		t.Parallel()

		tree, classID := newTree()

		raw := DeclarationStatus{
			Visibility: common.VisibilityInternal,
			Modality:   common.ModalityFinal,
		}
		tree.ReplaceRawStatus(classID, raw)

		assert.Equal(t, raw, tree.Status(classID).Declared())
	})

	t.Run("raw status after resolution", func(t *testing.T) {
		t.Parallel()

		tree, classID := newTree()

		tree.ReplaceStatus(
			classID,
			NewResolvedDeclarationStatus(
				common.VisibilityInternal,
				common.ModalityFinal,
				0,
			),
		)

		assert.PanicsWithValue(t,
			&StatusAlreadyResolvedError{
				Declaration: classID,
			},
			func() {
				tree.ReplaceRawStatus(classID, DeclarationStatus{})
			},
		)
	})

	t.Run("declaration without status", func(t *testing.T) {
		t.Parallel()

		tree, classID := newTree()

		typeParameterID := tree.Add(classID, &TypeParameter{
			Name: "T",
		})

		assert.False(t, tree.HasStatus(typeParameterID))
		assert.Panics(t, func() {
			tree.Status(typeParameterID)
		})
	})
}

func TestNewResolvedDeclarationStatus(t *testing.T) {

	t.Parallel()

	assert.PanicsWithValue(t,
		&InvalidResolvedStatusError{
			Visibility: common.VisibilityUnknown,
			Modality:   common.ModalityFinal,
		},
		func() {
			NewResolvedDeclarationStatus(common.VisibilityUnknown, common.ModalityFinal, 0)
		},
	)

	assert.PanicsWithValue(t,
		&InvalidResolvedStatusError{
			Visibility: common.VisibilityPublic,
			Modality:   common.ModalityNotSpecified,
		},
		func() {
			NewResolvedDeclarationStatus(common.VisibilityPublic, common.ModalityNotSpecified, 0)
		},
	)

	status := NewResolvedDeclarationStatus(
		common.VisibilityProtected,
		common.ModalityAbstract,
		common.NewModifierSet(common.ModifierOverride),
	)
	assert.Equal(t, common.VisibilityProtected, status.Visibility())
	assert.Equal(t, common.ModalityAbstract, status.Modality())
	assert.True(t, status.Has(common.ModifierOverride))
	assert.False(t, status.IsZero())
	assert.Equal(t, "protected abstract override", status.String())
}

func TestTree_AdvancePhase(t *testing.T) {

	t.Parallel()

	tree := NewTree()
	fileID := tree.AddFile(&File{
		Name: "Test.kt",
	})

	assert.Equal(t, common.ResolvePhaseRawBuilder, tree.Phase(fileID))

	tree.AdvancePhase(fileID, common.ResolvePhaseStatus)
	assert.Equal(t, common.ResolvePhaseStatus, tree.Phase(fileID))

	tree.AdvancePhase(fileID, common.ResolvePhaseTypes)
	assert.Equal(t, common.ResolvePhaseStatus, tree.Phase(fileID))
}

func TestTree_TypeRefs(t *testing.T) {

	t.Parallel()

	tree := NewTree()

	unresolved := &UnresolvedTypeRef{
		Qualifier: []string{"a", "B"},
		Arguments: []*UnresolvedTypeRef{
			{Qualifier: []string{"T"}},
		},
		Nullable: true,
	}

	id := tree.NewTypeRef(unresolved)
	assert.True(t, id.IsValid())
	assert.Same(t, unresolved, tree.TypeRef(id))
	assert.Nil(t, tree.TypeRef(NoTypeRefID))

	_, ok := tree.ResolvedType(id)
	assert.False(t, ok)

	resolvedType := &ClassType{
		ClassID: common.NewClassID("a", "B", false),
		Arguments: []Type{
			TopType(),
		},
		Nullable: true,
	}
	tree.ReplaceTypeRef(id, &ResolvedTypeRef{
		Type:   resolvedType,
		Source: unresolved,
	})

	resolved, ok := tree.ResolvedType(id)
	require.True(t, ok)
	assert.Same(t, resolvedType, resolved)

	assert.Equal(t, "a.B<T>?", unresolved.String())
	assert.Equal(t, "a.B<kotlin.Any?>?", resolvedType.String())
}

func TestTree_Walk(t *testing.T) {

	t.Parallel()

	tree := NewTree()
	fileID := tree.AddFile(&File{
		Name: "Test.kt",
	})
	classID := tree.Add(fileID, &RegularClass{
		Name: "C",
	})
	functionID := tree.Add(classID, &SimpleFunction{
		Name: "f",
	})
	parameterID := tree.Add(functionID, &ValueParameter{
		Name: "x",
	})
	otherID := tree.Add(fileID, &TypeAlias{
		Name: "A",
	})

	var visited []DeclarationID
	tree.Walk(fileID, func(declaration Declaration) bool {
		visited = append(visited, declaration.ID())
		return declaration.DeclarationKind() != common.DeclarationKindSimpleFunction
	})

	assert.Equal(t,
		[]DeclarationID{fileID, classID, functionID, otherID},
		visited,
	)
	assert.Equal(t, []DeclarationID{parameterID}, tree.Children(functionID))
}
