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

// A utility program that resolves the types and statuses of declaration fixtures,
// and prints the resolved declarations.

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/logrusorgru/aurora/v4"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	"github.com/tidwall/pretty"
	"go.opentelemetry.io/otel/attribute"

	"github.com/onflow/statusresolver/ast"
	"github.com/onflow/statusresolver/parser"
	"github.com/onflow/statusresolver/sema"
)

var debugFlag = flag.Bool("debug", false, "log debug events of the resolution passes")
var jsonFlag = flag.Bool("json", false, "print the resolved statuses as JSON")
var traceFlag = flag.Bool("trace", false, "log the duration of file, class, and designation resolutions")
var progressFlag = flag.Bool("progress", false, "show a progress bar")

// bodyOwner is a declaration which may declare local classifiers in its body.
type bodyOwner interface {
	ast.Declaration
	LocalDeclarations() []ast.DeclarationID
}

type resolvedDeclaration struct {
	Path   string `json:"path"`
	Kind   string `json:"kind"`
	Status string `json:"status"`
	Phase  string `json:"phase"`
}

type resolvedFixture struct {
	Path         string                `json:"path"`
	Declarations []resolvedDeclaration `json:"declarations"`
}

func main() {
	flag.Parse()

	paths := flag.Args()
	if len(paths) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: resolve [-debug] [-json] [-trace] [-progress] <fixture.yaml>...")
		os.Exit(2)
	}

	level := zerolog.InfoLevel
	if *debugFlag {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()

	config := sema.NewConfig()
	config.Logger = logger
	if *traceFlag {
		config.Tracer = sema.Tracer{
			TracingEnabled: true,
			OnRecordTrace:  traceRecorder(logger),
		}
	}

	var bar *progressbar.ProgressBar
	if *progressFlag {
		bar = progressbar.Default(int64(len(paths)), "resolving")
	}

	var results []resolvedFixture
	failed := false

	for _, path := range paths {
		fixture, err := resolveFixture(path, config)
		if err != nil {
			logger.Err(err).Str("fixture", path).Msg("failed to resolve fixture")
			failed = true
		} else if *jsonFlag {
			results = append(results, resolvedFixtureOf(path, fixture))
		} else {
			printFixture(path, fixture)
		}

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if *jsonFlag {
		err := printJSON(results)
		if err != nil {
			logger.Err(err).Msg("failed to print results")
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}

func traceRecorder(logger zerolog.Logger) sema.OnRecordTraceFunc {
	return func(operationName string, duration time.Duration, attrs []attribute.KeyValue) {
		event := logger.Info().
			Str("operation", operationName).
			Dur("duration", duration)
		for _, attr := range attrs {
			event = event.Str(string(attr.Key), attr.Value.Emit())
		}
		event.Msg("trace")
	}
}

// resolveFixture resolves the types and statuses of all files of the fixture,
// and then of all local classifiers, outermost bodies first.
func resolveFixture(path string, config *sema.Config) (*parser.Fixture, error) {
	fixture, err := parser.ParseFixtureFile(path)
	if err != nil {
		return nil, err
	}

	tree := fixture.Tree

	err = sema.ResolveTypesForFiles(tree, fixture.Files, config)
	if err != nil {
		return nil, err
	}

	err = sema.ResolveStatusForFiles(tree, fixture.Files, config)
	if err != nil {
		return nil, err
	}

	for _, file := range fixture.Files {
		tree.Walk(file, func(declaration ast.Declaration) bool {
			owner, ok := declaration.(bodyOwner)
			if !ok || len(owner.LocalDeclarations()) == 0 {
				return err == nil
			}

			err = resolveLocalClasses(tree, owner, config)
			return err == nil
		})
		if err != nil {
			return nil, err
		}
	}

	return fixture, nil
}

func resolveLocalClasses(tree *ast.Tree, owner bodyOwner, config *sema.Config) error {
	scopes := bodyScopes(tree, owner)
	localScope := nestedScope(scopes)

	for _, class := range owner.LocalDeclarations() {
		err := sema.ResolveTypesForClass(tree, class, scopes, config)
		if err != nil {
			return err
		}
	}

	for _, class := range owner.LocalDeclarations() {
		err := sema.ResolveStatusForLocalClassHierarchy(tree, class, nil, localScope, config)
		if err != nil {
			return err
		}
	}

	return nil
}

// bodyScopes returns the scopes of the local classifiers of the given body owner
// and of all enclosing body owners, outermost first.
func bodyScopes(tree *ast.Tree, owner bodyOwner) []sema.Scope {
	var scopes []sema.Scope
	for id := owner.ID(); id != ast.NoDeclarationID; id = tree.Declaration(id).Parent() {
		enclosing, ok := tree.Declaration(id).(bodyOwner)
		if !ok {
			continue
		}
		scopes = append(scopes, sema.NewDeclarationScope(tree, enclosing.LocalDeclarations()))
	}

	// Reverse
	for i, j := 0, len(scopes)-1; i < j; i, j = i+1, j-1 {
		scopes[i], scopes[j] = scopes[j], scopes[i]
	}

	return scopes
}

// nestedScope searches the scopes of nested bodies, innermost first.
type nestedScope []sema.Scope

var _ sema.Scope = nestedScope{}

func (s nestedScope) FindClassifier(name string) (ast.DeclarationID, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		id, ok := s[i].FindClassifier(name)
		if ok {
			return id, true
		}
	}
	return ast.NoDeclarationID, false
}

func (s nestedScope) ClassifierNames() []string {
	var names []string
	for _, scope := range s {
		names = append(names, scope.ClassifierNames()...)
	}
	return names
}

func printFixture(path string, fixture *parser.Fixture) {
	fmt.Println(aurora.Colorize(path, aurora.YellowFg|aurora.BrightFg|aurora.BoldFm))
	for _, file := range fixture.Files {
		fmt.Println(aurora.Colorize(
			"// "+fixture.Tree.Declaration(file).DeclarationName(),
			aurora.BlackFg|aurora.BrightFg,
		))
		fmt.Println(fixture.Tree.String(file))
		fmt.Println()
	}
}

func resolvedFixtureOf(path string, fixture *parser.Fixture) resolvedFixture {
	tree := fixture.Tree

	result := resolvedFixture{
		Path: path,
	}

	for declarationPath, id := range fixture.Paths() {
		if !tree.HasStatus(id) {
			continue
		}

		status := "unresolved"
		if resolved, ok := tree.ResolvedStatus(id); ok {
			status = resolved.String()
		}

		result.Declarations = append(result.Declarations, resolvedDeclaration{
			Path:   declarationPath,
			Kind:   tree.Declaration(id).DeclarationKind().Name(),
			Status: status,
			Phase:  tree.Phase(id).String(),
		})
	}

	sort.Slice(result.Declarations, func(i, j int) bool {
		return result.Declarations[i].Path < result.Declarations[j].Path
	})

	return result
}

func printJSON(results []resolvedFixture) error {
	data, err := json.Marshal(results)
	if err != nil {
		return err
	}

	data = pretty.Pretty(data)
	if isatty.IsTerminal(os.Stdout.Fd()) {
		data = pretty.Color(data, nil)
	}

	_, err = os.Stdout.Write(data)
	return err
}
