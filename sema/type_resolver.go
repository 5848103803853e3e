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
	"fmt"
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"

	"github.com/onflow/statusresolver/ast"
)

// TypeResolver resolves type references against a scope stack.
type TypeResolver struct {
	tree     *ast.Tree
	provider SymbolProvider
	scopes   *ScopeStack
}

func NewTypeResolver(tree *ast.Tree, provider SymbolProvider, scopes *ScopeStack) *TypeResolver {
	return &TypeResolver{
		tree:     tree,
		provider: provider,
		scopes:   scopes,
	}
}

// ResolveType resolves the given type reference.
//
// The first segment of a qualified reference is looked up in the scopes,
// the following segments are nested classifiers.
// If the first segment is not in scope, the reference is resolved as a fully qualified name.
// Unresolvable references result in an error type.
func (r *TypeResolver) ResolveType(ref *ast.UnresolvedTypeRef) ast.Type {
	if len(ref.Qualifier) == 0 {
		return &ast.ErrorType{
			Reason: "empty type reference",
		}
	}

	id, ok := r.findClassifier(ref.Qualifier)
	if !ok {
		return r.unresolvedReference(ref)
	}

	arguments := make([]ast.Type, len(ref.Arguments))
	for i, argument := range ref.Arguments {
		arguments[i] = r.ResolveType(argument)
	}

	switch declaration := r.tree.Declaration(id).(type) {
	case *ast.TypeParameter:
		if len(arguments) > 0 {
			return &ast.ErrorType{
				Reason: fmt.Sprintf("type arguments for type parameter %s", declaration.Name),
			}
		}
		return &ast.TypeParameterType{
			Parameter: id,
			Name:      declaration.Name,
			Nullable:  ref.Nullable,
		}

	case ast.ClassLikeDeclaration:
		if len(arguments) == 0 {
			arguments = nil
		}
		return &ast.ClassType{
			ClassID:   declaration.ClassID(),
			Arguments: arguments,
			Nullable:  ref.Nullable,
		}

	default:
		return &ast.ErrorType{
			Reason: fmt.Sprintf("%s is not a type", ref.QualifiedName()),
		}
	}
}

func (r *TypeResolver) findClassifier(qualifier []string) (ast.DeclarationID, bool) {
	id, ok := r.scopes.FindClassifier(qualifier[0])
	if ok {
		for _, name := range qualifier[1:] {
			id = nestedClassifier(r.tree, id, name)
			if id == ast.NoDeclarationID {
				return ast.NoDeclarationID, false
			}
		}
		return id, true
	}

	if len(qualifier) > 1 {
		return r.provider.ResolveQualifiedName(strings.Join(qualifier, "."))
	}

	return ast.NoDeclarationID, false
}

func (r *TypeResolver) unresolvedReference(ref *ast.UnresolvedTypeRef) *ast.ErrorType {
	errorType := &ast.ErrorType{
		Reason: "unresolved reference " + ref.QualifiedName(),
	}
	if len(ref.Qualifier) == 1 {
		errorType.Suggestion = closestName(ref.Qualifier[0], r.scopes.ClassifierNames())
	}
	return errorType
}

// closestName finds the name with the smallest edit distance from the given name.
// Names which would have to be replaced completely are never suggested.
// The given names must be sorted, so the result is deterministic.
func closestName(name string, names []string) (closest string) {
	nameRunes := []rune(name)

	closestDistance := len(name)

	for _, candidate := range names {
		distance := levenshtein.DistanceForStrings(
			nameRunes,
			[]rune(candidate),
			levenshtein.DefaultOptions,
		)

		if distance < closestDistance && distance < len(candidate) {
			closest = candidate
			closestDistance = distance
		}
	}

	return
}
