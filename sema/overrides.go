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
	"github.com/onflow/statusresolver/ast"
)

// OverrideScope finds the members of supertypes which are overridden by a member.
type OverrideScope interface {
	// ProcessDirectOverriddenMembers calls the given function for each member
	// which the given member of the given class directly overrides.
	ProcessDirectOverriddenMembers(
		class ast.DeclarationID,
		member ast.DeclarationID,
		f func(overridden ast.DeclarationID),
	)
}

// ClassLookup finds the classifier with the given class ID.
type ClassLookup = ast.ClassLookup

// SupertypeOverrideScope matches members by kind, name, number of value parameters,
// and presence of a receiver, see ast.Tree.ProcessDirectOverriddenMembers.
type SupertypeOverrideScope struct {
	tree   *ast.Tree
	lookup ClassLookup
}

var _ OverrideScope = &SupertypeOverrideScope{}

func NewSupertypeOverrideScope(tree *ast.Tree, lookup ClassLookup) *SupertypeOverrideScope {
	return &SupertypeOverrideScope{
		tree:   tree,
		lookup: lookup,
	}
}

func (s *SupertypeOverrideScope) ProcessDirectOverriddenMembers(
	class ast.DeclarationID,
	member ast.DeclarationID,
	f func(overridden ast.DeclarationID),
) {
	s.tree.ProcessDirectOverriddenMembers(s.lookup, class, member, f)
}
