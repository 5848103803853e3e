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

// ResolvedStatusCalculator provides the resolved statuses of overridden members.
type ResolvedStatusCalculator interface {
	// TryCalculateResolvedStatus returns the resolved status of the given member.
	// The boolean result is false if the status is currently being resolved,
	// i.e. the member is part of an override cycle.
	TryCalculateResolvedStatus(member ast.DeclarationID) (ast.ResolvedDeclarationStatus, bool)
}

// DefaultResolvedStatusCalculator requires the statuses of overridden members
// to be resolved already, e.g. by an earlier phase.
type DefaultResolvedStatusCalculator struct {
	tree *ast.Tree
}

var _ ResolvedStatusCalculator = DefaultResolvedStatusCalculator{}

func NewDefaultResolvedStatusCalculator(tree *ast.Tree) DefaultResolvedStatusCalculator {
	return DefaultResolvedStatusCalculator{
		tree: tree,
	}
}

func (c DefaultResolvedStatusCalculator) TryCalculateResolvedStatus(
	member ast.DeclarationID,
) (ast.ResolvedDeclarationStatus, bool) {
	status, ok := c.tree.ResolvedStatus(member)
	if !ok {
		panic(newUnresolvedStatusError(c.tree, member))
	}
	return status, true
}

// ResolvedStatusCalculatorWithJumps forces the resolution of members whose status is not resolved yet,
// by jumping to them with a designated traversal.
type ResolvedStatusCalculatorWithJumps struct {
	context *statusResolutionContext
}

var _ ResolvedStatusCalculator = &ResolvedStatusCalculatorWithJumps{}

func (c *ResolvedStatusCalculatorWithJumps) TryCalculateResolvedStatus(
	member ast.DeclarationID,
) (ast.ResolvedDeclarationStatus, bool) {
	tree := c.context.tree

	if status, ok := tree.ResolvedStatus(member); ok {
		return status, true
	}

	member = unwrapOverrideStandIn(tree, member)
	if status, ok := tree.ResolvedStatus(member); ok {
		return status, true
	}

	if c.context.membersInProgress.Test(uint(member)) {
		c.context.logger.Debug().
			Uint32("member", uint32(member)).
			Str("name", tree.Declaration(member).DeclarationName()).
			Msg("overridden member is being resolved, skipping")
		return ast.ResolvedDeclarationStatus{}, false
	}

	c.context.forceDesignation(c.context.designation(member))

	status, ok := tree.ResolvedStatus(member)
	if !ok {
		panic(newUnresolvedStatusError(tree, member))
	}
	return status, true
}

// unwrapOverrideStandIn returns the declaration which the given synthetic override stand-in stands in for.
// Other declarations are returned as-is.
func unwrapOverrideStandIn(tree *ast.Tree, member ast.DeclarationID) ast.DeclarationID {
	// Stand-ins may stand in for stand-ins. Bounded in case of a malformed cycle
	for i, n := 0, tree.Len(); i < n; i++ {
		var overridden ast.DeclarationID
		switch declaration := tree.Declaration(member).(type) {
		case *ast.SimpleFunction:
			overridden = declaration.OverriddenSymbol
		case *ast.Property:
			overridden = declaration.OverriddenSymbol
		}
		if overridden == ast.NoDeclarationID {
			return member
		}
		member = overridden
	}
	return member
}
