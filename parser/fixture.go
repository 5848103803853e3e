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
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/onflow/statusresolver/ast"
	"github.com/onflow/statusresolver/common"
	"github.com/onflow/statusresolver/errors"
)

// A fixture describes a declaration tree in YAML:
//
//	files:
//	  - name: Base.kt
//	    package: a
//	    imports: [b.C, c.*, d.E as F]
//	    declarations:
//	      - kind: class
//	        name: Base
//	        annotations: [Deprecated]
//	        modifiers: [open]
//	        superTypes: [Any]
//	        members:
//	          - kind: constructor
//	            delegate:
//	              kind: super
//	              type: Any
//	          - kind: fun
//	            name: foo
//	            modifiers: [open]
//	            type: Unit
//	            body: true
//	libraries:
//	  - package: lib
//	    declarations:
//	      - kind: interface
//	        name: Named
//
// Library declarations have no containing file, their statuses are resolved when loaded.

type fixtureFile struct {
	Files     []fileFixture    `yaml:"files"`
	Libraries []libraryFixture `yaml:"libraries"`
}

type fileFixture struct {
	Name         string               `yaml:"name"`
	Package      string               `yaml:"package"`
	Imports      []string             `yaml:"imports"`
	Annotations  []string             `yaml:"annotations"`
	Declarations []declarationFixture `yaml:"declarations"`
}

type libraryFixture struct {
	Package      string               `yaml:"package"`
	Declarations []declarationFixture `yaml:"declarations"`
}

type declarationFixture struct {
	Kind           string                  `yaml:"kind"`
	Name           string                  `yaml:"name"`
	Annotations    []string                `yaml:"annotations"`
	Modifiers      []string                `yaml:"modifiers"`
	TypeParameters []typeParameterFixture  `yaml:"typeParameters"`
	SuperTypes     []string                `yaml:"superTypes"`
	Type           string                  `yaml:"type"`
	Receiver       string                  `yaml:"receiver"`
	Body           bool                    `yaml:"body"`
	Initializer    bool                    `yaml:"initializer"`
	Primary        bool                    `yaml:"primary"`
	Delegate       *delegateFixture        `yaml:"delegate"`
	Parameters     []valueParameterFixture `yaml:"parameters"`
	Getter         *accessorFixture        `yaml:"getter"`
	Setter         *accessorFixture        `yaml:"setter"`
	StandInFor     string                  `yaml:"standInFor"`
	Members        []declarationFixture    `yaml:"members"`
	Locals         []declarationFixture    `yaml:"locals"`
}

type typeParameterFixture struct {
	Name        string   `yaml:"name"`
	Annotations []string `yaml:"annotations"`
	Reified     bool     `yaml:"reified"`
	Bounds      []string `yaml:"bounds"`
}

type valueParameterFixture struct {
	Name        string   `yaml:"name"`
	Annotations []string `yaml:"annotations"`
	Type        string   `yaml:"type"`
	Vararg      bool     `yaml:"vararg"`
	Default     bool     `yaml:"default"`
}

type accessorFixture struct {
	Annotations []string                `yaml:"annotations"`
	Modifiers   []string                `yaml:"modifiers"`
	Body        bool                    `yaml:"body"`
	Parameters  []valueParameterFixture `yaml:"parameters"`
	Locals      []declarationFixture    `yaml:"locals"`
}

// delegateFixture is the call of a constructor to another constructor.
// Without a type, a this call constructs the class itself, and a super call constructs Any.
type delegateFixture struct {
	Kind string `yaml:"kind"`
	Type string `yaml:"type"`
}

const (
	delegateKindThis  = "this"
	delegateKindSuper = "super"
)

const (
	fixtureKindFunction        = "fun"
	fixtureKindValue           = "val"
	fixtureKindVariable        = "var"
	fixtureKindConstructor     = "constructor"
	fixtureKindField           = "field"
	fixtureKindTypeAlias       = "typealias"
	fixtureKindEnumEntry       = "entry"
	fixtureKindAnonymousObject = "anonymous"
)

// Fixture is a declaration tree loaded from a YAML fixture.
type Fixture struct {
	Tree *ast.Tree
	// Files are the files of the fixture, in fixture order
	Files []ast.DeclarationID
	// paths maps the dotted path of each declaration to its ID
	paths map[string]ast.DeclarationID
}

// Lookup returns the declaration with the given dotted path,
// e.g. "a.Base.foo" for the member foo of the class Base in package a.
//
// Files are addressed by their name, type parameters as "a.Base<T>",
// value parameters as "a.Base.foo(x)", and property accessors as "a.Base.p.<get>" and "a.Base.p.<set>".
// Repeated paths, e.g. of overloads, are numbered: "a.Base.foo#2".
func (f *Fixture) Lookup(path string) (ast.DeclarationID, bool) {
	id, ok := f.paths[path]
	return id, ok
}

// MustLookup is like Lookup, but panics if no declaration has the given path.
func (f *Fixture) MustLookup(path string) ast.DeclarationID {
	id, ok := f.Lookup(path)
	if !ok {
		panic(errors.NewUnexpectedError("no declaration at path %q", path))
	}
	return id
}

// Paths returns the paths of all declarations of the fixture.
func (f *Fixture) Paths() map[string]ast.DeclarationID {
	return f.paths
}

func ParseFixtureFile(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseFixture(data)
}

// ParseFixture builds a declaration tree from the given YAML fixture.
// The tree always contains the builtin library classes, e.g. kotlin.Any.
func ParseFixture(data []byte) (*Fixture, error) {
	var file fixtureFile
	err := yaml.UnmarshalWithOptions(data, &file, yaml.DisallowUnknownField())
	if err != nil {
		return nil, errors.NewDefaultUserError("failed to parse fixture: %w", err)
	}

	builder := &fixtureBuilder{
		fixture: &Fixture{
			Tree:  ast.NewTree(),
			paths: map[string]ast.DeclarationID{},
		},
		libraryClasses:  map[string]common.ClassID{},
		libraryClassIDs: map[common.ClassID]ast.DeclarationID{},
	}

	libraries := append(builtinLibraries(), file.Libraries...)

	err = builder.build(libraries, file.Files)
	if err != nil {
		return nil, err
	}

	return builder.fixture, nil
}

type standIn struct {
	declaration ast.Declaration
	path        string
	target      string
}

type fixtureBuilder struct {
	fixture *Fixture
	// libraryClasses maps the qualified names of library classifiers to their class IDs
	libraryClasses map[string]common.ClassID
	// libraryClassIDs maps the class IDs of library classifiers to their declarations
	libraryClassIDs map[common.ClassID]ast.DeclarationID
	standIns       []standIn
	// librarySuperTypes are the supertypes of library classes,
	// resolved once all library classes are known
	librarySuperTypes []librarySuperType
}

func (b *fixtureBuilder) build(libraries []libraryFixture, files []fileFixture) error {
	for _, library := range libraries {
		for _, declaration := range library.Declarations {
			err := b.addLibraryClass(library.Package, declaration)
			if err != nil {
				return err
			}
		}
	}

	err := b.resolveLibrarySuperTypes()
	if err != nil {
		return err
	}

	b.resolveLibraryStatuses()

	for _, file := range files {
		err := b.addFile(file)
		if err != nil {
			return err
		}
	}

	for _, standIn := range b.standIns {
		target, ok := b.fixture.Lookup(standIn.target)
		if !ok {
			return &InvalidFixtureError{
				Path:    standIn.path,
				Message: fmt.Sprintf("unknown stand-in target %q", standIn.target),
			}
		}
		switch declaration := standIn.declaration.(type) {
		case *ast.SimpleFunction:
			declaration.OverriddenSymbol = target
		case *ast.Property:
			declaration.OverriddenSymbol = target
		default:
			panic(errors.NewUnreachableError())
		}
	}

	return nil
}

func (b *fixtureBuilder) register(path string, id ast.DeclarationID) string {
	if _, ok := b.fixture.paths[path]; ok {
		for i := 2; ; i++ {
			numbered := fmt.Sprintf("%s#%d", path, i)
			if _, ok := b.fixture.paths[numbered]; !ok {
				path = numbered
				break
			}
		}
	}
	b.fixture.paths[path] = id
	return path
}

func childPath(parent string, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func (b *fixtureBuilder) addFile(file fileFixture) error {
	imports := make([]ast.Import, 0, len(file.Imports))
	for _, imported := range file.Imports {
		imports = append(imports, parseImport(imported))
	}

	annotations, err := b.newTypeRefs(file.Name, file.Annotations)
	if err != nil {
		return err
	}

	fileID := b.fixture.Tree.AddFile(&ast.File{
		Annotations: annotations,
		PackageName: file.Package,
		Name:        file.Name,
		Imports:     imports,
	})
	b.fixture.Files = append(b.fixture.Files, fileID)
	b.register(file.Name, fileID)

	for _, declaration := range file.Declarations {
		_, err := b.addDeclaration(fileID, file.Package, declaration)
		if err != nil {
			return err
		}
	}

	return nil
}

func parseImport(imported string) ast.Import {
	imported = strings.TrimSpace(imported)

	if name, alias, ok := strings.Cut(imported, " as "); ok {
		return ast.Import{
			FqName: strings.TrimSpace(name),
			Alias:  strings.TrimSpace(alias),
		}
	}

	if packageName, ok := strings.CutSuffix(imported, ".*"); ok {
		return ast.Import{
			FqName:   packageName,
			AllUnder: true,
		}
	}

	return ast.Import{
		FqName: imported,
	}
}

func (b *fixtureBuilder) newTypeRef(path string, source string) (ast.TypeRefID, error) {
	if source == "" {
		return b.fixture.Tree.NewTypeRef(ast.ImplicitTypeRef{}), nil
	}

	typeRef, err := ParseTypeReference(source)
	if err != nil {
		return ast.NoTypeRefID, &InvalidFixtureError{
			Path:    path,
			Message: err.Error(),
		}
	}

	return b.fixture.Tree.NewTypeRef(typeRef), nil
}

func (b *fixtureBuilder) newOptionalTypeRef(path string, source string) (ast.TypeRefID, error) {
	if source == "" {
		return ast.NoTypeRefID, nil
	}
	return b.newTypeRef(path, source)
}

func (b *fixtureBuilder) newTypeRefs(path string, sources []string) ([]ast.TypeRefID, error) {
	var typeRefs []ast.TypeRefID
	for _, source := range sources {
		typeRef, err := b.newTypeRef(path, source)
		if err != nil {
			return nil, err
		}
		typeRefs = append(typeRefs, typeRef)
	}
	return typeRefs, nil
}

func (b *fixtureBuilder) parseStatus(path string, modifiers []string) (ast.DeclarationStatus, error) {
	status, err := ParseModifiers(modifiers)
	if err != nil {
		return ast.DeclarationStatus{}, &InvalidFixtureError{
			Path:    path,
			Message: err.Error(),
		}
	}
	return status, nil
}

// addDeclaration adds the declaration described by the fixture to the given parent,
// and returns its ID and its registered path.
func (b *fixtureBuilder) addDeclaration(
	parent ast.DeclarationID,
	parentPath string,
	fixture declarationFixture,
) (ast.DeclarationID, error) {
	tree := b.fixture.Tree

	name := fixture.Name
	switch fixture.Kind {
	case fixtureKindConstructor:
		name = ast.ConstructorName
	case fixtureKindAnonymousObject:
		name = ast.AnonymousObjectName
	}
	path := childPath(parentPath, name)

	status, err := b.parseStatus(path, fixture.Modifiers)
	if err != nil {
		return ast.NoDeclarationID, err
	}

	annotations, err := b.newTypeRefs(path, fixture.Annotations)
	if err != nil {
		return ast.NoDeclarationID, err
	}

	switch fixture.Kind {
	case fixtureKindField, fixtureKindAnonymousObject:
		if len(annotations) > 0 {
			return ast.NoDeclarationID, &InvalidFixtureError{
				Path:    path,
				Message: fmt.Sprintf("declaration of kind %q cannot be annotated", fixture.Kind),
			}
		}
	}

	if fixture.Delegate != nil && fixture.Kind != fixtureKindConstructor {
		return ast.NoDeclarationID, &InvalidFixtureError{
			Path:    path,
			Message: "only constructors may delegate",
		}
	}

	var id ast.DeclarationID

	switch fixture.Kind {
	case fixtureKindFunction:
		returnType, err := b.newTypeRef(path, fixture.Type)
		if err != nil {
			return ast.NoDeclarationID, err
		}
		receiverType, err := b.newOptionalTypeRef(path, fixture.Receiver)
		if err != nil {
			return ast.NoDeclarationID, err
		}
		function := &ast.SimpleFunction{
			Annotations:  annotations,
			Name:         fixture.Name,
			Status:       status,
			ReturnType:   returnType,
			ReceiverType: receiverType,
			HasBody:      fixture.Body,
		}
		id = tree.Add(parent, function)
		path = b.register(path, id)
		b.addStandIn(function, path, fixture.StandInFor)

		err = b.addTypeParameters(id, path, fixture.TypeParameters)
		if err != nil {
			return ast.NoDeclarationID, err
		}
		err = b.addValueParameters(id, path, fixture.Parameters)
		if err != nil {
			return ast.NoDeclarationID, err
		}
		err = b.addLocals(id, path, fixture.Locals)
		if err != nil {
			return ast.NoDeclarationID, err
		}

	case fixtureKindValue, fixtureKindVariable:
		returnType, err := b.newTypeRef(path, fixture.Type)
		if err != nil {
			return ast.NoDeclarationID, err
		}
		receiverType, err := b.newOptionalTypeRef(path, fixture.Receiver)
		if err != nil {
			return ast.NoDeclarationID, err
		}
		property := &ast.Property{
			Annotations:    annotations,
			Name:           fixture.Name,
			Status:         status,
			ReturnType:     returnType,
			ReceiverType:   receiverType,
			HasInitializer: fixture.Initializer,
			IsVar:          fixture.Kind == fixtureKindVariable,
		}
		id = tree.Add(parent, property)
		path = b.register(path, id)
		b.addStandIn(property, path, fixture.StandInFor)

		err = b.addTypeParameters(id, path, fixture.TypeParameters)
		if err != nil {
			return ast.NoDeclarationID, err
		}
		if fixture.Getter != nil {
			err = b.addAccessor(id, path, true, *fixture.Getter)
			if err != nil {
				return ast.NoDeclarationID, err
			}
		}
		if fixture.Setter != nil {
			if fixture.Kind != fixtureKindVariable {
				return ast.NoDeclarationID, &InvalidFixtureError{
					Path:    path,
					Message: "setter of read-only property",
				}
			}
			err = b.addAccessor(id, path, false, *fixture.Setter)
			if err != nil {
				return ast.NoDeclarationID, err
			}
		}
		err = b.addLocals(id, path, fixture.Locals)
		if err != nil {
			return ast.NoDeclarationID, err
		}

	case fixtureKindConstructor:
		delegated, err := b.newDelegatedConstructorCall(path, fixture.Delegate)
		if err != nil {
			return ast.NoDeclarationID, err
		}
		id = tree.Add(parent, &ast.Constructor{
			Annotations: annotations,
			IsPrimary:   fixture.Primary,
			Status:      status,
			Delegated:   delegated,
		})
		path = b.register(path, id)

		err = b.addValueParameters(id, path, fixture.Parameters)
		if err != nil {
			return ast.NoDeclarationID, err
		}
		err = b.addLocals(id, path, fixture.Locals)
		if err != nil {
			return ast.NoDeclarationID, err
		}

	case fixtureKindField:
		returnType, err := b.newTypeRef(path, fixture.Type)
		if err != nil {
			return ast.NoDeclarationID, err
		}
		id = tree.Add(parent, &ast.Field{
			Name:       fixture.Name,
			Status:     status,
			ReturnType: returnType,
		})
		b.register(path, id)

	case fixtureKindTypeAlias:
		expandedType, err := b.newTypeRef(path, fixture.Type)
		if err != nil {
			return ast.NoDeclarationID, err
		}
		id = tree.Add(parent, &ast.TypeAlias{
			Annotations:  annotations,
			Name:         fixture.Name,
			Status:       status,
			ExpandedType: expandedType,
		})
		path = b.register(path, id)

		err = b.addTypeParameters(id, path, fixture.TypeParameters)
		if err != nil {
			return ast.NoDeclarationID, err
		}

	case fixtureKindEnumEntry:
		returnType, err := b.newTypeRef(path, fixture.Type)
		if err != nil {
			return ast.NoDeclarationID, err
		}
		id = tree.Add(parent, &ast.EnumEntry{
			Annotations: annotations,
			Name:        fixture.Name,
			Status:      status,
			ReturnType:  returnType,
		})
		b.register(path, id)

	case fixtureKindAnonymousObject:
		superTypes, err := b.newTypeRefs(path, fixture.SuperTypes)
		if err != nil {
			return ast.NoDeclarationID, err
		}
		id = tree.Add(parent, &ast.AnonymousObject{
			SuperTypes: superTypes,
		})
		path = b.register(path, id)

		err = b.addMembers(id, path, fixture.Members)
		if err != nil {
			return ast.NoDeclarationID, err
		}

	default:
		classKind, ok := common.ClassKindFromKeyword(fixture.Kind)
		if !ok {
			return ast.NoDeclarationID, &InvalidFixtureError{
				Path:    path,
				Message: fmt.Sprintf("unknown declaration kind %q", fixture.Kind),
			}
		}

		superTypes, err := b.newTypeRefs(path, fixture.SuperTypes)
		if err != nil {
			return ast.NoDeclarationID, err
		}
		id = tree.Add(parent, &ast.RegularClass{
			Annotations: annotations,
			Name:        fixture.Name,
			ClassKind:   classKind,
			Status:      status,
			SuperTypes:  superTypes,
		})
		path = b.register(path, id)

		err = b.addTypeParameters(id, path, fixture.TypeParameters)
		if err != nil {
			return ast.NoDeclarationID, err
		}
		err = b.addMembers(id, path, fixture.Members)
		if err != nil {
			return ast.NoDeclarationID, err
		}
	}

	return id, nil
}

func (b *fixtureBuilder) newDelegatedConstructorCall(
	path string,
	fixture *delegateFixture,
) (*ast.DelegatedConstructorCall, error) {
	if fixture == nil {
		return nil, nil
	}

	var isThis bool
	switch fixture.Kind {
	case delegateKindThis:
		isThis = true
	case delegateKindSuper:
	default:
		return nil, &InvalidFixtureError{
			Path:    path,
			Message: fmt.Sprintf("unknown delegated constructor call %q", fixture.Kind),
		}
	}

	constructedType, err := b.newTypeRef(path, fixture.Type)
	if err != nil {
		return nil, err
	}

	return &ast.DelegatedConstructorCall{
		IsThis:          isThis,
		ConstructedType: constructedType,
	}, nil
}

func (b *fixtureBuilder) addStandIn(declaration ast.Declaration, path string, target string) {
	if target == "" {
		return
	}
	b.standIns = append(b.standIns, standIn{
		declaration: declaration,
		path:        path,
		target:      target,
	})
}

func (b *fixtureBuilder) addMembers(parent ast.DeclarationID, path string, members []declarationFixture) error {
	for _, member := range members {
		if member.Kind == fixtureKindAnonymousObject {
			return &InvalidFixtureError{
				Path:    path,
				Message: "anonymous objects may only be declared in bodies",
			}
		}
		_, err := b.addDeclaration(parent, path, member)
		if err != nil {
			return err
		}
	}
	return nil
}

func (b *fixtureBuilder) addLocals(parent ast.DeclarationID, path string, locals []declarationFixture) error {
	for _, local := range locals {
		_, isClass := common.ClassKindFromKeyword(local.Kind)
		if !isClass && local.Kind != fixtureKindAnonymousObject {
			return &InvalidFixtureError{
				Path:    path,
				Message: fmt.Sprintf("local declaration of kind %q is not a classifier", local.Kind),
			}
		}
		_, err := b.addDeclaration(parent, path, local)
		if err != nil {
			return err
		}
	}
	return nil
}

func (b *fixtureBuilder) addTypeParameters(
	parent ast.DeclarationID,
	path string,
	typeParameters []typeParameterFixture,
) error {
	for _, typeParameter := range typeParameters {
		typeParameterPath := path + "<" + typeParameter.Name + ">"

		bounds, err := b.newTypeRefs(typeParameterPath, typeParameter.Bounds)
		if err != nil {
			return err
		}
		annotations, err := b.newTypeRefs(typeParameterPath, typeParameter.Annotations)
		if err != nil {
			return err
		}

		id := b.fixture.Tree.Add(parent, &ast.TypeParameter{
			Annotations: annotations,
			Name:        typeParameter.Name,
			IsReified:   typeParameter.Reified,
			Bounds:      bounds,
		})
		b.register(typeParameterPath, id)
	}
	return nil
}

func (b *fixtureBuilder) addValueParameters(
	parent ast.DeclarationID,
	path string,
	valueParameters []valueParameterFixture,
) error {
	for _, valueParameter := range valueParameters {
		valueParameterPath := path + "(" + valueParameter.Name + ")"

		returnType, err := b.newTypeRef(valueParameterPath, valueParameter.Type)
		if err != nil {
			return err
		}
		annotations, err := b.newTypeRefs(valueParameterPath, valueParameter.Annotations)
		if err != nil {
			return err
		}

		id := b.fixture.Tree.Add(parent, &ast.ValueParameter{
			Annotations: annotations,
			Name:        valueParameter.Name,
			ReturnType:  returnType,
			IsVararg:    valueParameter.Vararg,
			HasDefault:  valueParameter.Default,
		})
		b.register(valueParameterPath, id)
	}
	return nil
}

func (b *fixtureBuilder) addAccessor(
	property ast.DeclarationID,
	propertyPath string,
	isGetter bool,
	fixture accessorFixture,
) error {
	name := "<set>"
	if isGetter {
		name = "<get>"
	}
	path := childPath(propertyPath, name)

	status, err := b.parseStatus(path, fixture.Modifiers)
	if err != nil {
		return err
	}
	annotations, err := b.newTypeRefs(path, fixture.Annotations)
	if err != nil {
		return err
	}

	id := b.fixture.Tree.Add(property, &ast.PropertyAccessor{
		Annotations: annotations,
		IsGetter:    isGetter,
		HasBody:     fixture.Body,
		Status:      status,
		ReturnType:  b.fixture.Tree.NewTypeRef(ast.ImplicitTypeRef{}),
	})
	path = b.register(path, id)

	err = b.addValueParameters(id, path, fixture.Parameters)
	if err != nil {
		return err
	}
	return b.addLocals(id, path, fixture.Locals)
}
