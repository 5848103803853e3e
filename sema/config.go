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
	"github.com/rs/zerolog"

	"github.com/onflow/statusresolver/ast"
	"github.com/onflow/statusresolver/common"
)

// Config configures the resolution passes.
type Config struct {
	// Logger receives debug events, e.g. forced designations and bound cycles
	Logger zerolog.Logger
	Tracer
	// SymbolProvider is used to look up classifiers by class ID.
	// If nil, a TreeSymbolProvider over the resolved tree is used
	SymbolProvider SymbolProvider
	// OverrideScope is used to find the members overridden by a member.
	// If nil, a SupertypeOverrideScope is used
	OverrideScope OverrideScope
	// DefaultImports are the star imports implicitly available in every file.
	// If nil, DefaultStarImports are used
	DefaultImports []ast.Import
	// OnStatusResolved is called after the status of a declaration got resolved,
	// in the order the statuses are resolved
	OnStatusResolved func(declaration ast.DeclarationID, status ast.ResolvedDeclarationStatus)
}

// DefaultStarImports are the packages implicitly imported in every file.
var DefaultStarImports = []ast.Import{
	{
		FqName:   common.StandardPackageName,
		AllUnder: true,
	},
}

// NewConfig returns a configuration which logs nothing and uses the default collaborators.
func NewConfig() *Config {
	return &Config{
		Logger: zerolog.Nop(),
	}
}

func (c *Config) defaultImports() []ast.Import {
	if c.DefaultImports == nil {
		return DefaultStarImports
	}
	return c.DefaultImports
}

func (c *Config) symbolProvider(tree *ast.Tree) SymbolProvider {
	if c.SymbolProvider != nil {
		return c.SymbolProvider
	}
	return NewTreeSymbolProvider(tree)
}
