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

package sema

import (
	"strings"

	"golang.org/x/exp/slices"

	"github.com/onflow/statusresolver/ast"
	"github.com/onflow/statusresolver/common"
)

// Scope is a lexical scope of classifiers and type parameters.
type Scope interface {
	// FindClassifier returns the classifier or type parameter with the given name.
	FindClassifier(name string) (ast.DeclarationID, bool)
	// ClassifierNames returns the names of all classifiers in the scope.
	ClassifierNames() []string
}

// DeclarationScope is a scope of a fixed set of declarations,
// e.g. the classifiers declared in a function body.
// Declarations which are not classifiers or type parameters are ignored.
type DeclarationScope struct {
	names        []string
	declarations map[string]ast.DeclarationID
}

var _ Scope = &DeclarationScope{}

func NewDeclarationScope(tree *ast.Tree, declarations []ast.DeclarationID) *DeclarationScope {
	scope := &DeclarationScope{
		declarations: map[string]ast.DeclarationID{},
	}
	for _, id := range declarations {
		declaration := tree.Declaration(id)

		kind := declaration.DeclarationKind()
		if !kind.IsClassLike() && kind != common.DeclarationKindTypeParameter {
			continue
		}
		if kind == common.DeclarationKindAnonymousObject {
			continue
		}

		name := declaration.DeclarationName()
		if _, ok := scope.declarations[name]; ok {
			continue
		}
		scope.declarations[name] = id
		scope.names = append(scope.names, name)
	}
	return scope
}

func (s *DeclarationScope) FindClassifier(name string) (ast.DeclarationID, bool) {
	id, ok := s.declarations[name]
	return id, ok
}

func (s *DeclarationScope) ClassifierNames() []string {
	return s.names
}

// explicitImportScope contains the explicitly imported classifiers of a file.
type explicitImportScope struct {
	provider SymbolProvider
	imports  map[string]string
	names    []string
}

var _ Scope = &explicitImportScope{}

func newExplicitImportScope(provider SymbolProvider, imports []ast.Import) *explicitImportScope {
	scope := &explicitImportScope{
		provider: provider,
		imports:  map[string]string{},
	}
	for _, imported := range imports {
		if imported.AllUnder {
			continue
		}
		name := imported.ImportedName()
		if _, ok := scope.imports[name]; ok {
			continue
		}
		scope.imports[name] = imported.FqName
		scope.names = append(scope.names, name)
	}
	return scope
}

func (s *explicitImportScope) FindClassifier(name string) (ast.DeclarationID, bool) {
	qualifiedName, ok := s.imports[name]
	if !ok {
		return ast.NoDeclarationID, false
	}
	return s.provider.ResolveQualifiedName(qualifiedName)
}

func (s *explicitImportScope) ClassifierNames() []string {
	return s.names
}

// packageMemberScope contains the top-level classifiers of packages,
// e.g. of the file's own package, or of star imports.
type packageMemberScope struct {
	tree     *ast.Tree
	provider SymbolProvider
	packages []string
}

var _ Scope = &packageMemberScope{}

func newPackageMemberScope(tree *ast.Tree, provider SymbolProvider, packages ...string) *packageMemberScope {
	return &packageMemberScope{
		tree:     tree,
		provider: provider,
		packages: packages,
	}
}

func (s *packageMemberScope) FindClassifier(name string) (ast.DeclarationID, bool) {
	for _, packageName := range s.packages {
		for _, id := range s.provider.PackageClassifiers(packageName) {
			if s.tree.Declaration(id).DeclarationName() == name {
				return id, true
			}
		}
	}
	return ast.NoDeclarationID, false
}

func (s *packageMemberScope) ClassifierNames() []string {
	var names []string
	for _, packageName := range s.packages {
		for _, id := range s.provider.PackageClassifiers(packageName) {
			names = append(names, s.tree.Declaration(id).DeclarationName())
		}
	}
	return names
}

// fileImportingScopes returns the importing scopes of a file, outermost first:
// default star imports, explicit star imports, same-package members, and explicit imports.
func fileImportingScopes(
	tree *ast.Tree,
	provider SymbolProvider,
	file *ast.File,
	defaultImports []ast.Import,
) []Scope {
	var defaultPackages []string
	for _, imported := range defaultImports {
		if imported.AllUnder {
			defaultPackages = append(defaultPackages, imported.FqName)
		}
	}

	var starPackages []string
	for _, imported := range file.Imports {
		if imported.AllUnder {
			starPackages = append(starPackages, imported.FqName)
		}
	}

	return []Scope{
		newPackageMemberScope(tree, provider, defaultPackages...),
		newExplicitImportScope(provider, defaultImports),
		newPackageMemberScope(tree, provider, starPackages...),
		newPackageMemberScope(tree, provider, file.PackageName),
		newExplicitImportScope(provider, file.Imports),
	}
}

type scopeFrameKind uint8

const (
	scopeFrameImporting scopeFrameKind = iota
	scopeFrameClassifiers
	scopeFrameClassTypeParameters
	scopeFrameTypeParameters
)

type scopeFrame struct {
	scope Scope
	kind  scopeFrameKind
	// static is set for the type parameter frames of classes which are not inner:
	// the type parameters of outer classes are not visible inside such classes
	static bool
}

// ScopeStack is the stack of lexical scopes of a position in a file, innermost last.
type ScopeStack struct {
	frames []scopeFrame
}

func (s *ScopeStack) push(scope Scope, kind scopeFrameKind, static bool) {
	s.frames = append(s.frames, scopeFrame{
		scope:  scope,
		kind:   kind,
		static: static,
	})
}

func (s *ScopeStack) pop() {
	s.frames = s.frames[:len(s.frames)-1]
}

// Push adds a scope which is searched before all scopes on the stack.
func (s *ScopeStack) Push(scope Scope) {
	s.push(scope, scopeFrameClassifiers, false)
}

// visibleFrames calls the given function for each visible frame, innermost first.
func (s *ScopeStack) visibleFrames(f func(frame scopeFrame) bool) {
	outerClassTypeParametersHidden := false

	for i := len(s.frames) - 1; i >= 0; i-- {
		frame := s.frames[i]

		if frame.kind == scopeFrameClassTypeParameters {
			if outerClassTypeParametersHidden {
				continue
			}
			if frame.static {
				// Type parameters of this class are visible, but not the ones of outer classes
				outerClassTypeParametersHidden = true
			}
		}

		if !f(frame) {
			return
		}
	}
}

// FindClassifier returns the innermost visible classifier or type parameter with the given name.
func (s *ScopeStack) FindClassifier(name string) (result ast.DeclarationID, found bool) {
	s.visibleFrames(func(frame scopeFrame) bool {
		result, found = frame.scope.FindClassifier(name)
		return !found
	})
	return
}

// ClassifierNames returns the names of all visible classifiers, sorted and deduplicated.
func (s *ScopeStack) ClassifierNames() []string {
	var names []string
	s.visibleFrames(func(frame scopeFrame) bool {
		names = append(names, frame.scope.ClassifierNames()...)
		return true
	})
	slices.Sort(names)
	return slices.Compact(names)
}

func (s *ScopeStack) String() string {
	return strings.Join(s.ClassifierNames(), ", ")
}
