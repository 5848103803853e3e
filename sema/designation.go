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
	"golang.org/x/exp/slices"

	"github.com/onflow/statusresolver/ast"
	"github.com/onflow/statusresolver/common"
)

// Designation is a path of declarations from a root, a file or a local class,
// down to a target declaration.
type Designation []ast.DeclarationID

func (d Designation) Target() ast.DeclarationID {
	return d[len(d)-1]
}

func (d Designation) Root() ast.DeclarationID {
	return d[0]
}

// LocalClassParentMap maps each local class of a hierarchy to its enclosing local class.
// The root of the hierarchy maps to ast.NoDeclarationID.
type LocalClassParentMap map[ast.DeclarationID]ast.DeclarationID

// Classes returns the classes of the hierarchy, in ascending order.
func (m LocalClassParentMap) Classes() []ast.DeclarationID {
	classes := make([]ast.DeclarationID, 0, len(m))
	for class := range m {
		classes = append(classes, class)
	}
	slices.Sort(classes)
	return classes
}

// CollectLocalClassParentMap returns the parent map of the given local class
// and all classifiers nested in it.
func CollectLocalClassParentMap(tree *ast.Tree, root ast.DeclarationID) LocalClassParentMap {
	parents := LocalClassParentMap{
		root: ast.NoDeclarationID,
	}

	var collect func(class ast.DeclarationID)
	collect = func(class ast.DeclarationID) {
		for _, member := range tree.ClassMembers(class) {
			switch tree.Declaration(member).(type) {
			case *ast.RegularClass, *ast.AnonymousObject:
				parents[member] = class
				collect(member)
			}
		}
	}
	collect(root)

	return parents
}

// designation returns the path from the root of the given declaration to the declaration.
// Global declarations are rooted at their file, and found through the class IDs of their outer classes.
// Local declarations are rooted at the root of the local class hierarchy being resolved.
func (c *statusResolutionContext) designation(target ast.DeclarationID) Designation {
	tree := c.tree

	path := Designation{target}

	var class ast.DeclarationID
	if isClassLike(tree, target) {
		class = target
	} else {
		class = tree.ContainingClass(target)
		if class == ast.NoDeclarationID {
			return c.fileDesignation(target, path)
		}
		path = append(path, class)
	}

	for {
		classID := tree.Declaration(class).(ast.ClassLikeDeclaration).ClassID()

		if classID.IsLocal {
			parent, ok := c.localParents[class]
			if !ok {
				parent, ok = c.localParent(class, classID)
				if !ok {
					panic(&DesignationNotFoundError{
						Declaration: target,
						Reason:      "local class is not part of the resolved hierarchy",
					})
				}
			}
			if parent == ast.NoDeclarationID {
				break
			}
			path = append(path, parent)
			class = parent
			continue
		}

		outerClassID, ok := classID.OuterClassID()
		if !ok {
			return c.fileDesignation(target, path)
		}

		outer, ok := c.provider.ClassLikeByID(outerClassID)
		if !ok {
			panic(&DesignationNotFoundError{
				Declaration: target,
				Reason:      "missing outer class " + outerClassID.String(),
			})
		}
		path = append(path, outer)
		class = outer
	}

	slices.Reverse(path)
	return path
}

// localParent returns the enclosing local class of a local class outside of the resolved hierarchy.
// Classes of the local scope are the roots of their own hierarchy.
func (c *statusResolutionContext) localParent(class ast.DeclarationID, classID common.ClassID) (ast.DeclarationID, bool) {
	parent := c.tree.Declaration(class).Parent()
	switch c.tree.Declaration(parent).(type) {
	case *ast.RegularClass, *ast.AnonymousObject:
		return parent, true
	}

	if c.localScope == nil {
		return ast.NoDeclarationID, false
	}
	id, ok := c.localScope.FindClassifier(classID.ShortName())
	return ast.NoDeclarationID, ok && id == class
}

func (c *statusResolutionContext) fileDesignation(target ast.DeclarationID, path Designation) Designation {
	file, ok := c.provider.ContainerFile(path[len(path)-1])
	if !ok {
		panic(&DesignationNotFoundError{
			Declaration: target,
			Reason:      "no containing file",
		})
	}
	path = append(path, file)
	slices.Reverse(path)
	return path
}

func isClassLike(tree *ast.Tree, id ast.DeclarationID) bool {
	switch tree.Declaration(id).DeclarationKind() {
	case common.DeclarationKindRegularClass,
		common.DeclarationKindAnonymousObject,
		common.DeclarationKindTypeAlias:
		return true
	}
	return false
}

type traversalRole uint8

const (
	// roleContent: the declaration is resolved, and so is its content
	roleContent traversalRole = iota
	// rolePrefix: the declaration lies on the designation path above the target
	rolePrefix
	// roleTarget: the declaration is the target of the designation
	roleTarget
)

// statusTraversal decides which declarations the status transformer visits.
type statusTraversal interface {
	// enter is called when the transformer visits a declaration
	enter(declaration ast.DeclarationID) traversalRole
	// content filters the children of the entered declaration which should be visited
	content(children []ast.DeclarationID) []ast.DeclarationID
}

// fullStatusTraversal visits every declaration.
type fullStatusTraversal struct{}

var _ statusTraversal = fullStatusTraversal{}

func (fullStatusTraversal) enter(_ ast.DeclarationID) traversalRole {
	return roleContent
}

func (fullStatusTraversal) content(children []ast.DeclarationID) []ast.DeclarationID {
	return children
}

// designatedStatusTraversal only visits the declarations of a designation path.
// Once the target is entered, its members are visited, but no nested classifiers.
type designatedStatusTraversal struct {
	tree        *ast.Tree
	designation Designation
	index       int
	located     bool
}

var _ statusTraversal = &designatedStatusTraversal{}

func newDesignatedStatusTraversal(tree *ast.Tree, designation Designation) *designatedStatusTraversal {
	return &designatedStatusTraversal{
		tree:        tree,
		designation: designation,
	}
}

func (t *designatedStatusTraversal) enter(declaration ast.DeclarationID) traversalRole {
	if t.located {
		return roleContent
	}

	if t.index >= len(t.designation) ||
		t.designation[t.index] != declaration {

		return roleContent
	}

	t.index++
	if t.index == len(t.designation) {
		t.located = true
		return roleTarget
	}
	return rolePrefix
}

func (t *designatedStatusTraversal) content(children []ast.DeclarationID) []ast.DeclarationID {
	if t.located {
		var members []ast.DeclarationID
		for _, child := range children {
			if isClassLike(t.tree, child) &&
				t.tree.Declaration(child).DeclarationKind() != common.DeclarationKindTypeAlias {

				continue
			}
			members = append(members, child)
		}
		return members
	}

	if t.index >= len(t.designation) {
		return nil
	}

	next := t.designation[t.index]
	if slices.Contains(children, next) {
		return []ast.DeclarationID{next}
	}
	return nil
}
