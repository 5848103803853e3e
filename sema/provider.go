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
	"sort"
	"strings"

	"github.com/dghubble/trie"

	"github.com/onflow/statusresolver/ast"
	"github.com/onflow/statusresolver/common"
)

// SymbolProvider provides the classifiers of all files and libraries
// which are visible to a resolution request.
type SymbolProvider interface {
	// ClassLikeByID returns the classifier with the given class ID.
	// Local classifiers are never found.
	ClassLikeByID(classID common.ClassID) (ast.DeclarationID, bool)
	// ContainerFile returns the file which declares the given declaration.
	// Library declarations have no containing file.
	ContainerFile(declaration ast.DeclarationID) (ast.DeclarationID, bool)
	// PackageClassifiers returns the top-level classifiers of the given package.
	PackageClassifiers(packageName string) []ast.DeclarationID
	// ResolveQualifiedName returns the classifier with the given dot-separated fully qualified name.
	ResolveQualifiedName(qualifiedName string) (ast.DeclarationID, bool)
}

// TreeSymbolProvider provides the classifiers of a declaration tree.
//
// Classifiers are indexed by their fully qualified names in a path trie,
// so qualified names can be resolved without knowing where the package name ends.
type TreeSymbolProvider struct {
	tree     *ast.Tree
	index    *trie.PathTrie
	packages map[string][]ast.DeclarationID
}

var _ SymbolProvider = &TreeSymbolProvider{}

var qualifiedNamePathTrieConfig = &trie.PathTrieConfig{
	Segmenter: qualifiedNameSegmenter,
}

func NewTreeSymbolProvider(tree *ast.Tree) *TreeSymbolProvider {
	provider := &TreeSymbolProvider{
		tree:     tree,
		index:    trie.NewPathTrieWithConfig(qualifiedNamePathTrieConfig),
		packages: map[string][]ast.DeclarationID{},
	}

	for _, file := range tree.Files() {
		provider.indexClassifiers(file)
	}
	for _, library := range tree.LibraryClasses() {
		provider.indexClassifier(library, true)
	}

	return provider
}

func (p *TreeSymbolProvider) indexClassifiers(container ast.DeclarationID) {
	file, ok := ast.Get[*ast.File](p.tree, container)
	if !ok {
		return
	}
	for _, declaration := range file.Declarations() {
		p.indexClassifier(declaration, true)
	}
}

// indexClassifier indexes the given classifier and its nested classifiers.
// Local classifiers and bodies are never indexed.
func (p *TreeSymbolProvider) indexClassifier(id ast.DeclarationID, topLevel bool) {
	classLike, ok := p.tree.Declaration(id).(ast.ClassLikeDeclaration)
	if !ok {
		return
	}

	classID := classLike.ClassID()
	if classID.IsLocal {
		return
	}

	p.index.Put(classID.QualifiedName(), id)

	if topLevel {
		p.packages[classID.PackageName] = append(p.packages[classID.PackageName], id)
	}

	if class, ok := classLike.(*ast.RegularClass); ok {
		for _, member := range class.Declarations() {
			p.indexClassifier(member, false)
		}
	}
}

func (p *TreeSymbolProvider) ClassLikeByID(classID common.ClassID) (ast.DeclarationID, bool) {
	if classID.IsLocal {
		return ast.NoDeclarationID, false
	}

	value := p.index.Get(classID.QualifiedName())
	if value == nil {
		return ast.NoDeclarationID, false
	}

	id := value.(ast.DeclarationID)

	// Qualified names may be ambiguous, e.g. class b.C in package a and class C in package a.b
	classLike := p.tree.Declaration(id).(ast.ClassLikeDeclaration)
	if classLike.ClassID() != classID {
		return p.findAmbiguous(classID)
	}

	return id, true
}

func (p *TreeSymbolProvider) findAmbiguous(classID common.ClassID) (ast.DeclarationID, bool) {
	relativeNames := strings.Split(classID.RelativeName, ".")

	for _, candidate := range p.packages[classID.PackageName] {
		id := candidate
		for i, name := range relativeNames {
			if i == 0 {
				if p.tree.Declaration(id).DeclarationName() != name {
					id = ast.NoDeclarationID
					break
				}
				continue
			}
			id = nestedClassifier(p.tree, id, name)
			if id == ast.NoDeclarationID {
				break
			}
		}
		if id != ast.NoDeclarationID {
			return id, true
		}
	}

	return ast.NoDeclarationID, false
}

func (p *TreeSymbolProvider) ContainerFile(declaration ast.DeclarationID) (ast.DeclarationID, bool) {
	file := p.tree.ContainingFile(declaration)
	return file, file != ast.NoDeclarationID
}

func (p *TreeSymbolProvider) PackageClassifiers(packageName string) []ast.DeclarationID {
	return p.packages[packageName]
}

// Packages returns the names of all packages which declare classifiers, sorted.
func (p *TreeSymbolProvider) Packages() []string {
	packages := make([]string, 0, len(p.packages))
	for packageName := range p.packages {
		packages = append(packages, packageName)
	}
	sort.Strings(packages)
	return packages
}

// ResolveQualifiedName resolves a fully qualified name, e.g. "a.b.Outer.Inner".
// The deepest classifier on the path must match the complete name.
func (p *TreeSymbolProvider) ResolveQualifiedName(qualifiedName string) (ast.DeclarationID, bool) {
	id, matched := p.longestMatch(qualifiedName)
	if id == ast.NoDeclarationID || matched != qualifiedName {
		return ast.NoDeclarationID, false
	}
	return id, true
}

// longestMatch returns the deepest classifier whose qualified name is a prefix of the given name.
func (p *TreeSymbolProvider) longestMatch(qualifiedName string) (ast.DeclarationID, string) {
	var last ast.DeclarationID
	var lastKey string

	_ = p.index.WalkPath(qualifiedName, func(key string, value any) error {
		if value == nil {
			return nil
		}
		last = value.(ast.DeclarationID)
		lastKey = key
		return nil
	})

	return last, lastKey
}

// qualifiedNameSegmenter segments qualified names by dot separators. For example,
// "a.b.C" -> ("a", 1), (".b", 3), (".C", -1) in successive calls.
func qualifiedNameSegmenter(path string, start int) (segment string, next int) {
	if len(path) == 0 || start < 0 || start > len(path)-1 {
		return "", -1
	}
	end := strings.IndexRune(path[start+1:], '.') // next '.' after 0th rune
	if end == -1 {
		return path[start:], -1
	}
	return path[start : start+end+1], start + end + 1
}

// nestedClassifier returns the classifier with the given name declared in the given class.
func nestedClassifier(tree *ast.Tree, class ast.DeclarationID, name string) ast.DeclarationID {
	regularClass, ok := ast.Get[*ast.RegularClass](tree, class)
	if !ok {
		return ast.NoDeclarationID
	}
	for _, member := range regularClass.Declarations() {
		declaration := tree.Declaration(member)
		if !declaration.DeclarationKind().IsClassLike() {
			continue
		}
		if declaration.DeclarationName() == name {
			return member
		}
	}
	return ast.NoDeclarationID
}
