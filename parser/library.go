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

package parser

import (
	"fmt"

	"github.com/onflow/statusresolver/ast"
	"github.com/onflow/statusresolver/common"
)

type librarySuperType struct {
	path        string
	packageName string
	typeRef     ast.TypeRefID
}

func (b *fixtureBuilder) addLibraryClass(packageName string, fixture declarationFixture) error {
	classKind, ok := common.ClassKindFromKeyword(fixture.Kind)
	if !ok && fixture.Kind != fixtureKindTypeAlias {
		return &InvalidFixtureError{
			Path:    childPath(packageName, fixture.Name),
			Message: fmt.Sprintf("library declaration of kind %q is not a classifier", fixture.Kind),
		}
	}

	tree := b.fixture.Tree
	path := childPath(packageName, fixture.Name)
	classID := common.NewClassID(packageName, fixture.Name, false)

	status, err := b.parseStatus(path, fixture.Modifiers)
	if err != nil {
		return err
	}

	var id ast.DeclarationID

	if fixture.Kind == fixtureKindTypeAlias {
		expandedType, err := b.newTypeRef(path, fixture.Type)
		if err != nil {
			return err
		}
		id = tree.AddLibraryClass(classID, &ast.TypeAlias{
			Name:         fixture.Name,
			Status:       status,
			ExpandedType: expandedType,
		})
		path = b.register(path, id)

		err = b.addTypeParameters(id, path, fixture.TypeParameters)
		if err != nil {
			return err
		}

	} else {
		superTypes, err := b.newTypeRefs(path, fixture.SuperTypes)
		if err != nil {
			return err
		}
		id = tree.AddLibraryClass(classID, &ast.RegularClass{
			Name:       fixture.Name,
			ClassKind:  classKind,
			Status:     status,
			SuperTypes: superTypes,
		})
		path = b.register(path, id)

		err = b.addTypeParameters(id, path, fixture.TypeParameters)
		if err != nil {
			return err
		}
		err = b.addMembers(id, path, fixture.Members)
		if err != nil {
			return err
		}
	}

	// Index the classifiers of the library subtree,
	// and remember the supertypes to resolve once all library classifiers are known
	var walkErr error
	tree.Walk(id, func(declaration ast.Declaration) bool {
		switch declaration := declaration.(type) {
		case *ast.RegularClass:
			b.libraryClasses[declaration.ClassID().QualifiedName()] = declaration.ClassID()
			b.libraryClassIDs[declaration.ClassID()] = declaration.ID()
			for _, superType := range declaration.SuperTypes {
				b.librarySuperTypes = append(b.librarySuperTypes, librarySuperType{
					path:        declaration.ClassID().QualifiedName(),
					packageName: packageName,
					typeRef:     superType,
				})
			}
		case *ast.TypeAlias:
			b.libraryClasses[declaration.ClassID().QualifiedName()] = declaration.ClassID()
			b.libraryClassIDs[declaration.ClassID()] = declaration.ID()
		case *ast.AnonymousObject:
			walkErr = &InvalidFixtureError{
				Path:    path,
				Message: "anonymous object in library",
			}
			return false
		}
		return true
	})
	return walkErr
}

// resolveLibrarySuperTypes resolves the supertypes of library classes.
// Library supertypes may only refer to library classifiers,
// either by qualified name or by a name in the same package or the standard package.
func (b *fixtureBuilder) resolveLibrarySuperTypes() error {
	tree := b.fixture.Tree

	for _, superType := range b.librarySuperTypes {
		source, ok := tree.TypeRef(superType.typeRef).(*ast.UnresolvedTypeRef)
		if !ok {
			continue
		}
		if len(source.Arguments) > 0 {
			return &InvalidFixtureError{
				Path:    superType.path,
				Message: fmt.Sprintf("library supertype %s has type arguments", source),
			}
		}

		name := source.QualifiedName()

		classID, ok := b.libraryClasses[name]
		if !ok {
			classID, ok = b.libraryClasses[childPath(superType.packageName, name)]
		}
		if !ok {
			classID, ok = b.libraryClasses[childPath(common.StandardPackageName, name)]
		}
		if !ok {
			return &InvalidFixtureError{
				Path:    superType.path,
				Message: fmt.Sprintf("unknown library supertype %s", name),
			}
		}

		tree.ReplaceTypeRef(
			superType.typeRef,
			&ast.ResolvedTypeRef{
				Type: &ast.ClassType{
					ClassID:  classID,
					Nullable: source.Nullable,
				},
				Source: source,
			},
		)
	}

	return nil
}

// resolveLibraryStatuses resolves the statuses of all library declarations,
// following the same rules as the resolution of declarations in files.
//
// Classes are resolved after their supertypes,
// so members inherit the visibilities and flags of the members they override.
func (b *fixtureBuilder) resolveLibraryStatuses() {
	tree := b.fixture.Tree

	lookup := func(classID common.ClassID) (ast.DeclarationID, bool) {
		id, ok := b.libraryClassIDs[classID]
		return id, ok
	}

	seen := map[ast.DeclarationID]struct{}{}

	var resolveDeclaration func(id ast.DeclarationID, containingClass ast.DeclarationID)

	resolveClass := func(class ast.DeclarationID, containingClass ast.DeclarationID) {
		if _, ok := seen[class]; ok {
			return
		}
		seen[class] = struct{}{}

		for _, superClass := range tree.SuperClasses(lookup, class) {
			resolveDeclaration(superClass, tree.ContainingClass(superClass))
		}

		b.resolveLibraryStatus(lookup, class, containingClass)

		for _, child := range tree.Children(class) {
			resolveDeclaration(child, class)
		}
	}

	resolveDeclaration = func(id ast.DeclarationID, containingClass ast.DeclarationID) {
		if _, ok := tree.Declaration(id).(*ast.RegularClass); ok {
			resolveClass(id, containingClass)
			return
		}

		if tree.HasStatus(id) {
			b.resolveLibraryStatus(lookup, id, containingClass)
		} else {
			tree.AdvancePhase(id, common.ResolvePhaseStatus)
		}

		for _, child := range tree.Children(id) {
			resolveDeclaration(child, containingClass)
		}
	}

	for _, class := range tree.LibraryClasses() {
		resolveDeclaration(class, ast.NoDeclarationID)
	}
}

func (b *fixtureBuilder) resolveLibraryStatus(
	lookup ast.ClassLookup,
	id ast.DeclarationID,
	containingClass ast.DeclarationID,
) {
	tree := b.fixture.Tree
	declaration := tree.Declaration(id)
	declared := tree.Status(id).Declared()

	var overridden []ast.ResolvedDeclarationStatus
	if containingClass != ast.NoDeclarationID {
		tree.ProcessDirectOverriddenMembers(lookup, containingClass, id, func(member ast.DeclarationID) {
			if status, ok := tree.ResolvedStatus(member); ok {
				overridden = append(overridden, status)
			}
		})
	}

	visibility := declared.Visibility
	if visibility.IsUnknown() {
		visibility = libraryVisibility(tree, declaration, containingClass, overridden)
	}

	inInterface := false
	if class, ok := ast.Get[*ast.RegularClass](tree, containingClass); ok {
		inInterface = class.ClassKind.IsInterface()
	}
	hasBody := libraryHasBody(tree, declaration)

	modality := declared.Modality
	if modality.IsSpecified() {
		modality = common.DeclaredMemberModality(modality, inInterface, hasBody)
	} else {
		switch declaration := declaration.(type) {
		case *ast.RegularClass:
			modality = common.DefaultClassModality(declaration.ClassKind)
		case *ast.TypeAlias:
			modality = common.DefaultClassModality(common.ClassKindClass)
		default:
			modality = common.DefaultMemberModality(common.MemberModalityContext{
				HasContainingClass: containingClass != ast.NoDeclarationID,
				InInterface:        inInterface,
				HasBody:            hasBody,
				IsOverride:         declared.Has(common.ModifierOverride),
				Visibility:         visibility,
				ContainingClassModality: func() common.Modality {
					return libraryClassModality(tree, containingClass)
				},
			})
		}
	}

	modifiers := declared.Modifiers
	for _, status := range overridden {
		modifiers = modifiers.Union(status.Modifiers())
	}

	tree.ReplaceStatus(id, ast.NewResolvedDeclarationStatus(visibility, modality, modifiers))
	tree.AdvancePhase(id, common.ResolvePhaseStatus)
}

func libraryVisibility(
	tree *ast.Tree,
	declaration ast.Declaration,
	containingClass ast.DeclarationID,
	overridden []ast.ResolvedDeclarationStatus,
) common.Visibility {
	switch declaration := declaration.(type) {
	case ast.ClassLikeDeclaration:
		if declaration.ClassID().IsLocal {
			return common.VisibilityLocal
		}

	case *ast.Constructor:
		if class, ok := ast.Get[*ast.RegularClass](tree, containingClass); ok &&
			(class.ClassKind.IsEnum() ||
				libraryClassModality(tree, containingClass) == common.ModalitySealed) {

			return common.VisibilityPrivate
		}
	}

	visibilities := make([]common.Visibility, len(overridden))
	for i, status := range overridden {
		visibilities[i] = status.Visibility()
	}
	return common.InheritedVisibility(visibilities)
}

// libraryHasBody returns true if the declaration has a body, an initializer, or an accessor with a body.
func libraryHasBody(tree *ast.Tree, declaration ast.Declaration) bool {
	switch declaration := declaration.(type) {
	case *ast.SimpleFunction:
		return declaration.HasBody

	case *ast.Property:
		if declaration.HasInitializer {
			return true
		}
		for _, accessor := range []ast.DeclarationID{declaration.Getter(), declaration.Setter()} {
			if accessor == ast.NoDeclarationID {
				continue
			}
			if tree.Declaration(accessor).(*ast.PropertyAccessor).HasBody {
				return true
			}
		}
		return false

	case *ast.PropertyAccessor:
		return declaration.HasBody
	}

	return true
}

// libraryClassModality returns the modality of the given containing class,
// which is resolved before its members.
func libraryClassModality(tree *ast.Tree, class ast.DeclarationID) common.Modality {
	if status, ok := tree.ResolvedStatus(class); ok {
		return status.Modality()
	}
	return common.ModalityFinal
}

func builtinLibraries() []libraryFixture {
	openMember := func(name string, returnType string, parameters ...valueParameterFixture) declarationFixture {
		return declarationFixture{
			Kind:       fixtureKindFunction,
			Name:       name,
			Modifiers:  []string{"open"},
			Type:       returnType,
			Body:       true,
			Parameters: parameters,
		}
	}

	typeParameter := func(name string) []typeParameterFixture {
		return []typeParameterFixture{
			{Name: name},
		}
	}

	simpleClass := func(name string) declarationFixture {
		return declarationFixture{
			Kind:       "class",
			Name:       name,
			SuperTypes: []string{"Any"},
		}
	}

	return []libraryFixture{
		{
			Package: common.StandardPackageName,
			Declarations: []declarationFixture{
				{
					Kind:      "class",
					Name:      "Any",
					Modifiers: []string{"open"},
					Members: []declarationFixture{
						openMember("equals", "Boolean", valueParameterFixture{Name: "other", Type: "Any?"}),
						openMember("hashCode", "Int"),
						openMember("toString", "String"),
					},
				},
				{
					Kind:       "object",
					Name:       "Unit",
					SuperTypes: []string{"Any"},
				},
				simpleClass("Nothing"),
				simpleClass("Boolean"),
				simpleClass("Int"),
				simpleClass("Long"),
				simpleClass("Double"),
				simpleClass("String"),
				{
					Kind:           "class",
					Name:           "Array",
					TypeParameters: typeParameter("T"),
					SuperTypes:     []string{"Any"},
					Members: []declarationFixture{
						{
							Kind: fixtureKindValue,
							Name: "size",
							Type: "Int",
						},
					},
				},
				{
					Kind:           "interface",
					Name:           "Comparable",
					TypeParameters: typeParameter("T"),
					Members: []declarationFixture{
						{
							Kind: fixtureKindFunction,
							Name: "compareTo",
							Type: "Int",
							Parameters: []valueParameterFixture{
								{Name: "other", Type: "T"},
							},
						},
					},
				},
				{
					Kind:           "interface",
					Name:           "Collection",
					TypeParameters: typeParameter("E"),
					Members: []declarationFixture{
						{
							Kind: fixtureKindValue,
							Name: "size",
							Type: "Int",
						},
					},
				},
				{
					Kind:           "interface",
					Name:           "List",
					TypeParameters: typeParameter("E"),
					SuperTypes:     []string{"Collection"},
				},
			},
		},
	}
}
