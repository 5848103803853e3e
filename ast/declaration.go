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
)

// DeclarationID addresses a declaration in a Tree.
// The zero ID never refers to a declaration.
type DeclarationID uint32

const NoDeclarationID DeclarationID = 0

func (id DeclarationID) IsValid() bool {
	return id != NoDeclarationID
}

// Declaration is the closed set of declaration kinds of a Tree.
//
// Declarations are built once and added to a Tree, which assigns their IDs
// and links them to their parent. The resolution passes never mutate declarations,
// all mutable state (statuses, phases, type references) is owned by the Tree.
type Declaration interface {
	isDeclaration()
	ID() DeclarationID
	Parent() DeclarationID
	DeclarationKind() common.DeclarationKind
	DeclarationName() string
}

type declarationBase struct {
	id     DeclarationID
	parent DeclarationID
}

func (*declarationBase) isDeclaration() {}

func (d *declarationBase) ID() DeclarationID {
	return d.id
}

func (d *declarationBase) Parent() DeclarationID {
	return d.parent
}

func (d *declarationBase) attach(id DeclarationID, parent DeclarationID) {
	d.id = id
	d.parent = parent
}

// StatusOwner is implemented by the declarations which carry a declaration status.
type StatusOwner interface {
	Declaration
	DeclaredStatus() DeclarationStatus
}

// ClassLikeDeclaration is implemented by the declarations which are classifiers:
// regular classes, anonymous objects, and type aliases.
type ClassLikeDeclaration interface {
	Declaration
	ClassID() common.ClassID
}

// Annotations are the type references of the annotations of a declaration, in source order.
type Annotations []TypeRefID

func (a Annotations) AnnotationTypes() []TypeRefID {
	return a
}

// AnnotatedDeclaration is implemented by the declarations which can be annotated.
type AnnotatedDeclaration interface {
	Declaration
	AnnotationTypes() []TypeRefID
}

// Import

type Import struct {
	// FqName is the dot-separated imported name, e.g. "a.b.C", or the package name for star imports
	FqName string
	// AllUnder is true for star imports, e.g. "import a.b.*"
	AllUnder bool
	// Alias is the optional name the imported classifier is visible as
	Alias string
}

// ImportedName returns the name under which an explicitly imported classifier is visible.
func (i Import) ImportedName() string {
	if i.Alias != "" {
		return i.Alias
	}
	index := len(i.FqName) - 1
	for index >= 0 && i.FqName[index] != '.' {
		index--
	}
	return i.FqName[index+1:]
}

// File

type File struct {
	declarationBase
	Annotations
	PackageName  string
	Name         string
	Imports      []Import
	declarations []DeclarationID
}

var _ AnnotatedDeclaration = &File{}

func (*File) DeclarationKind() common.DeclarationKind {
	return common.DeclarationKindFile
}

func (f *File) DeclarationName() string {
	return f.Name
}

// Declarations returns the top-level declarations of the file, in source order.
func (f *File) Declarations() []DeclarationID {
	return f.declarations
}

// RegularClass

type RegularClass struct {
	declarationBase
	Annotations
	Name           string
	ClassKind      common.ClassKind
	Status         DeclarationStatus
	SuperTypes     []TypeRefID
	classID        common.ClassID
	typeParameters []DeclarationID
	declarations   []DeclarationID
}

var _ StatusOwner = &RegularClass{}
var _ AnnotatedDeclaration = &RegularClass{}
var _ ClassLikeDeclaration = &RegularClass{}

func (*RegularClass) DeclarationKind() common.DeclarationKind {
	return common.DeclarationKindRegularClass
}

func (c *RegularClass) DeclarationName() string {
	return c.Name
}

func (c *RegularClass) DeclaredStatus() DeclarationStatus {
	return c.Status
}

func (c *RegularClass) ClassID() common.ClassID {
	return c.classID
}

func (c *RegularClass) IsInner() bool {
	return c.Status.Modifiers.Has(common.ModifierInner)
}

func (c *RegularClass) TypeParameters() []DeclarationID {
	return c.typeParameters
}

// Declarations returns the members of the class, nested classifiers included, in source order.
func (c *RegularClass) Declarations() []DeclarationID {
	return c.declarations
}

// AnonymousObject

type AnonymousObject struct {
	declarationBase
	SuperTypes   []TypeRefID
	classID      common.ClassID
	declarations []DeclarationID
}

var _ ClassLikeDeclaration = &AnonymousObject{}

func (*AnonymousObject) DeclarationKind() common.DeclarationKind {
	return common.DeclarationKindAnonymousObject
}

func (*AnonymousObject) DeclarationName() string {
	return AnonymousObjectName
}

const AnonymousObjectName = "<anonymous>"

func (o *AnonymousObject) ClassID() common.ClassID {
	return o.classID
}

func (o *AnonymousObject) Declarations() []DeclarationID {
	return o.declarations
}

// Property

type Property struct {
	declarationBase
	Annotations
	Name           string
	Status         DeclarationStatus
	ReturnType     TypeRefID
	ReceiverType   TypeRefID
	HasInitializer bool
	IsVar          bool
	// OverriddenSymbol is set for synthetic stand-ins (substitution or intersection overrides),
	// and refers to the member the stand-in was created for
	OverriddenSymbol  DeclarationID
	getter            DeclarationID
	setter            DeclarationID
	typeParameters    []DeclarationID
	localDeclarations []DeclarationID
}

var _ StatusOwner = &Property{}
var _ AnnotatedDeclaration = &Property{}

func (*Property) DeclarationKind() common.DeclarationKind {
	return common.DeclarationKindProperty
}

func (p *Property) DeclarationName() string {
	return p.Name
}

func (p *Property) DeclaredStatus() DeclarationStatus {
	return p.Status
}

func (p *Property) Getter() DeclarationID {
	return p.getter
}

func (p *Property) Setter() DeclarationID {
	return p.setter
}

func (p *Property) TypeParameters() []DeclarationID {
	return p.typeParameters
}

func (p *Property) LocalDeclarations() []DeclarationID {
	return p.localDeclarations
}

// PropertyAccessor

type PropertyAccessor struct {
	declarationBase
	Annotations
	IsGetter          bool
	HasBody           bool
	Status            DeclarationStatus
	ReturnType        TypeRefID
	valueParameters   []DeclarationID
	localDeclarations []DeclarationID
}

var _ StatusOwner = &PropertyAccessor{}
var _ AnnotatedDeclaration = &PropertyAccessor{}

func (*PropertyAccessor) DeclarationKind() common.DeclarationKind {
	return common.DeclarationKindPropertyAccessor
}

func (a *PropertyAccessor) DeclarationName() string {
	if a.IsGetter {
		return "<get>"
	}
	return "<set>"
}

func (a *PropertyAccessor) DeclaredStatus() DeclarationStatus {
	return a.Status
}

func (a *PropertyAccessor) ValueParameters() []DeclarationID {
	return a.valueParameters
}

func (a *PropertyAccessor) LocalDeclarations() []DeclarationID {
	return a.localDeclarations
}

// SimpleFunction

type SimpleFunction struct {
	declarationBase
	Annotations
	Name             string
	Status           DeclarationStatus
	ReturnType       TypeRefID
	ReceiverType     TypeRefID
	HasBody          bool
	OverriddenSymbol DeclarationID
	typeParameters   []DeclarationID
	valueParameters  []DeclarationID
	// localDeclarations are the classifiers declared in the function body
	localDeclarations []DeclarationID
}

var _ StatusOwner = &SimpleFunction{}
var _ AnnotatedDeclaration = &SimpleFunction{}

func (*SimpleFunction) DeclarationKind() common.DeclarationKind {
	return common.DeclarationKindSimpleFunction
}

func (f *SimpleFunction) DeclarationName() string {
	return f.Name
}

func (f *SimpleFunction) DeclaredStatus() DeclarationStatus {
	return f.Status
}

func (f *SimpleFunction) TypeParameters() []DeclarationID {
	return f.typeParameters
}

func (f *SimpleFunction) ValueParameters() []DeclarationID {
	return f.valueParameters
}

func (f *SimpleFunction) LocalDeclarations() []DeclarationID {
	return f.localDeclarations
}

// Constructor

type Constructor struct {
	declarationBase
	Annotations
	IsPrimary bool
	Status    DeclarationStatus
	// Delegated is the call to another constructor, if any
	Delegated         *DelegatedConstructorCall
	valueParameters   []DeclarationID
	localDeclarations []DeclarationID
}

var _ StatusOwner = &Constructor{}
var _ AnnotatedDeclaration = &Constructor{}

func (*Constructor) DeclarationKind() common.DeclarationKind {
	return common.DeclarationKindConstructor
}

func (*Constructor) DeclarationName() string {
	return ConstructorName
}

const ConstructorName = "<init>"

func (c *Constructor) DeclaredStatus() DeclarationStatus {
	return c.Status
}

func (c *Constructor) ValueParameters() []DeclarationID {
	return c.valueParameters
}

func (c *Constructor) LocalDeclarations() []DeclarationID {
	return c.localDeclarations
}

// DelegatedConstructorCall is the call of a constructor to another constructor
// of the same class (this) or of the superclass (super).
type DelegatedConstructorCall struct {
	IsThis          bool
	ConstructedType TypeRefID
}

// Field is a backing field of a class, e.g. of a delegated supertype.

type Field struct {
	declarationBase
	Name       string
	Status     DeclarationStatus
	ReturnType TypeRefID
}

var _ StatusOwner = &Field{}

func (*Field) DeclarationKind() common.DeclarationKind {
	return common.DeclarationKindField
}

func (f *Field) DeclarationName() string {
	return f.Name
}

func (f *Field) DeclaredStatus() DeclarationStatus {
	return f.Status
}

// TypeAlias

type TypeAlias struct {
	declarationBase
	Annotations
	Name           string
	Status         DeclarationStatus
	ExpandedType   TypeRefID
	classID        common.ClassID
	typeParameters []DeclarationID
}

var _ StatusOwner = &TypeAlias{}
var _ AnnotatedDeclaration = &TypeAlias{}
var _ ClassLikeDeclaration = &TypeAlias{}

func (*TypeAlias) DeclarationKind() common.DeclarationKind {
	return common.DeclarationKindTypeAlias
}

func (a *TypeAlias) DeclarationName() string {
	return a.Name
}

func (a *TypeAlias) DeclaredStatus() DeclarationStatus {
	return a.Status
}

func (a *TypeAlias) ClassID() common.ClassID {
	return a.classID
}

func (a *TypeAlias) TypeParameters() []DeclarationID {
	return a.typeParameters
}

// TypeParameter

type TypeParameter struct {
	declarationBase
	Annotations
	Name      string
	IsReified bool
	Bounds    []TypeRefID
}

var _ AnnotatedDeclaration = &TypeParameter{}

func (*TypeParameter) DeclarationKind() common.DeclarationKind {
	return common.DeclarationKindTypeParameter
}

func (p *TypeParameter) DeclarationName() string {
	return p.Name
}

// ValueParameter

type ValueParameter struct {
	declarationBase
	Annotations
	Name       string
	ReturnType TypeRefID
	IsVararg   bool
	HasDefault bool
}

var _ AnnotatedDeclaration = &ValueParameter{}

func (*ValueParameter) DeclarationKind() common.DeclarationKind {
	return common.DeclarationKindValueParameter
}

func (p *ValueParameter) DeclarationName() string {
	return p.Name
}

// EnumEntry

type EnumEntry struct {
	declarationBase
	Annotations
	Name       string
	Status     DeclarationStatus
	ReturnType TypeRefID
}

var _ StatusOwner = &EnumEntry{}
var _ AnnotatedDeclaration = &EnumEntry{}

func (*EnumEntry) DeclarationKind() common.DeclarationKind {
	return common.DeclarationKindEnumEntry
}

func (e *EnumEntry) DeclarationName() string {
	return e.Name
}

func (e *EnumEntry) DeclaredStatus() DeclarationStatus {
	return e.Status
}
