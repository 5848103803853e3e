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
	"time"

	"github.com/bits-and-blooms/bitset"
	"github.com/rs/zerolog"

	"github.com/onflow/statusresolver/ast"
	"github.com/onflow/statusresolver/common"
	"github.com/onflow/statusresolver/errors"
)

// statusResolutionContext is the state of one status resolution request.
// It is shared by the transformer of the request and the transformers of all forced designations.
type statusResolutionContext struct {
	tree          *ast.Tree
	config        *Config
	logger        zerolog.Logger
	session       *StatusComputationSession
	provider      SymbolProvider
	overrideScope OverrideScope
	resolver      *StatusResolver
	// membersInProgress are the members whose status is currently being resolved
	membersInProgress *bitset.BitSet
	// localParents is the parent map of the local class hierarchy being resolved, if any
	localParents LocalClassParentMap
	// localScope finds local classes outside of the hierarchy, if any
	localScope Scope
}

func newStatusResolutionContext(
	tree *ast.Tree,
	config *Config,
	session *StatusComputationSession,
	localParents LocalClassParentMap,
	localScope Scope,
) *statusResolutionContext {
	if config == nil {
		config = NewConfig()
	}

	context := &statusResolutionContext{
		tree:              tree,
		config:            config,
		logger:            config.Logger.With().Str("pass", "status").Logger(),
		session:           session,
		provider:          config.symbolProvider(tree),
		membersInProgress: bitset.New(uint(tree.Len())),
		localParents:      localParents,
		localScope:        localScope,
	}

	context.overrideScope = config.OverrideScope
	if context.overrideScope == nil {
		context.overrideScope = NewSupertypeOverrideScope(tree, context.lookupClass)
	}

	context.resolver = NewStatusResolver(
		tree,
		&ResolvedStatusCalculatorWithJumps{
			context: context,
		},
		context.overrideScope,
	)

	return context
}

// lookupClass finds the classifier with the given class ID.
// Local classifiers are found in the resolved local class hierarchy, or in the local scope.
func (c *statusResolutionContext) lookupClass(classID common.ClassID) (ast.DeclarationID, bool) {
	if !classID.IsLocal {
		return c.provider.ClassLikeByID(classID)
	}

	for _, class := range c.localParents.Classes() {
		if c.tree.Declaration(class).(ast.ClassLikeDeclaration).ClassID() == classID {
			return class, true
		}
	}

	if c.localScope == nil {
		return ast.NoDeclarationID, false
	}

	names := strings.Split(classID.RelativeName, ".")
	id, ok := c.localScope.FindClassifier(names[0])
	for _, name := range names[1:] {
		if !ok {
			break
		}
		id = nestedClassifier(c.tree, id, name)
		ok = id != ast.NoDeclarationID
	}
	if !ok {
		return ast.NoDeclarationID, false
	}

	classLike, ok := c.tree.Declaration(id).(ast.ClassLikeDeclaration)
	if !ok || classLike.ClassID() != classID {
		return ast.NoDeclarationID, false
	}
	return id, true
}

// forceDesignation resolves the target of the given designation,
// with a fresh transformer which only visits the declarations on the path.
func (c *statusResolutionContext) forceDesignation(designation Designation) {
	c.logger.Debug().
		Uint32("target", uint32(designation.Target())).
		Str("name", c.tree.Declaration(designation.Target()).DeclarationName()).
		Int("length", len(designation)).
		Msg("forcing designation")

	var start time.Time
	if c.config.Tracer.enabled() {
		start = time.Now()
	}

	transformer := newStatusTransformer(c, newDesignatedStatusTraversal(c.tree, designation))
	transformer.visit(designation.Root())

	if c.config.Tracer.enabled() {
		c.config.Tracer.reportDesignationTrace(c.tree, designation, time.Since(start))
	}
}

// forceSuperTypes forces the statuses of the direct supertypes of the given class.
func (c *statusResolutionContext) forceSuperTypes(class ast.DeclarationID) {
	for _, superClass := range c.tree.SuperClasses(c.lookupClass, class) {
		c.forceClassStatus(superClass)
	}
}

func (c *statusResolutionContext) forceClassStatus(class ast.DeclarationID) {
	if c.session.Get(class) != StatusNotComputed {
		return
	}

	classID := c.tree.Declaration(class).(ast.ClassLikeDeclaration).ClassID()

	_, hasFile := c.provider.ContainerFile(class)
	if hasFile || classID.IsLocal {
		c.forceDesignation(c.designation(class))
		c.session.EndComputing(class)
		return
	}

	// Library classes are resolved already, but their supertypes might be declared in a file
	if _, ok := c.tree.ResolvedStatus(class); ok {
		c.logger.Debug().
			Str("class", classID.String()).
			Msg("forcing supertypes of library class")

		c.session.StartComputing(class)
		c.forceSuperTypes(class)
		c.session.EndComputing(class)
		return
	}

	c.logger.Debug().
		Str("class", classID.String()).
		Msg("status of library class is not resolved")
}

// statusTransformer resolves the statuses of the declarations its traversal enters.
type statusTransformer struct {
	*statusResolutionContext
	traversal statusTraversal
	// classes is the stack of the classes containing the visited declaration
	classes []ast.DeclarationID
}

var _ ast.DeclarationVisitor[struct{}] = &statusTransformer{}

func newStatusTransformer(context *statusResolutionContext, traversal statusTraversal) *statusTransformer {
	return &statusTransformer{
		statusResolutionContext: context,
		traversal:               traversal,
	}
}

func (t *statusTransformer) visit(id ast.DeclarationID) {
	ast.AcceptDeclaration[struct{}](t.tree.Declaration(id), t)
}

func (t *statusTransformer) visitContent(children []ast.DeclarationID) {
	for _, child := range t.traversal.content(orderContent(t.tree, children)) {
		t.visit(child)
	}
}

// orderContent orders declarations so that non-classifiers come first, then classifiers.
func orderContent(tree *ast.Tree, declarations []ast.DeclarationID) []ast.DeclarationID {
	ordered := make([]ast.DeclarationID, 0, len(declarations))
	var classifiers []ast.DeclarationID
	for _, declaration := range declarations {
		if isClassLike(tree, declaration) {
			classifiers = append(classifiers, declaration)
			continue
		}
		ordered = append(ordered, declaration)
	}
	return append(ordered, classifiers...)
}

func (t *statusTransformer) containingClass() ast.DeclarationID {
	if len(t.classes) == 0 {
		return ast.NoDeclarationID
	}
	return t.classes[len(t.classes)-1]
}

func (t *statusTransformer) VisitFile(file *ast.File) struct{} {
	role := t.traversal.enter(file.ID())
	t.visitContent(file.Declarations())

	// Files on a designation path are only partially resolved
	if role != rolePrefix {
		t.tree.AdvancePhase(file.ID(), common.ResolvePhaseStatus)
	}
	return struct{}{}
}

func (t *statusTransformer) VisitRegularClass(class *ast.RegularClass) struct{} {
	t.visitClass(class.ID())
	return struct{}{}
}

func (t *statusTransformer) VisitAnonymousObject(object *ast.AnonymousObject) struct{} {
	t.visitClass(object.ID())
	return struct{}{}
}

func (t *statusTransformer) visitClass(class ast.DeclarationID) {
	role := t.traversal.enter(class)

	switch t.session.Get(class) {
	case StatusComputing:
		if role != rolePrefix {
			// Re-entered while the class is being resolved, e.g. through a supertype cycle.
			// The outer visit completes the class
			t.logger.Debug().
				Uint32("class", uint32(class)).
				Str("name", t.tree.Declaration(class).DeclarationName()).
				Msg("class status is being computed, skipping")
			return
		}
		t.visitClassContent(class, role)

	case StatusNotComputed:
		var start time.Time
		if t.config.Tracer.enabled() {
			start = time.Now()
		}

		t.session.StartComputing(class)
		t.forceSuperTypes(class)
		t.resolveClassStatus(class)
		t.visitClassContent(class, role)
		t.session.EndComputing(class)

		if t.config.Tracer.enabled() {
			t.config.Tracer.reportClassTrace(tracingStatusPrefix, t.tree, class, time.Since(start))
		}

	case StatusComputed:
		if role != rolePrefix {
			t.resolveClassStatus(class)
		}
		t.visitClassContent(class, role)

	default:
		panic(errors.NewUnreachableError())
	}
}

func (t *statusTransformer) resolveClassStatus(class ast.DeclarationID) {
	regularClass, ok := ast.Get[*ast.RegularClass](t.tree, class)
	if !ok {
		return
	}

	containingClass := t.containingClass()
	isLocal := regularClass.ClassID().IsLocal &&
		containingClass == ast.NoDeclarationID

	status := t.resolver.ResolveStatus(class, containingClass, isLocal)
	t.storeStatus(class, status)
}

func (t *statusTransformer) visitClassContent(class ast.DeclarationID, role traversalRole) {
	t.classes = append(t.classes, class)

	var content []ast.DeclarationID
	switch declaration := t.tree.Declaration(class).(type) {
	case *ast.RegularClass:
		content = append(content, declaration.TypeParameters()...)
		content = append(content, declaration.Declarations()...)
	case *ast.AnonymousObject:
		content = declaration.Declarations()
	default:
		panic(errors.NewUnreachableError())
	}
	t.visitContent(content)

	t.classes = t.classes[:len(t.classes)-1]

	if role != rolePrefix {
		t.tree.AdvancePhase(class, common.ResolvePhaseStatus)
	}
}

// storeStatus replaces the status of the declaration, if it is not resolved yet.
func (t *statusTransformer) storeStatus(declaration ast.DeclarationID, status ast.ResolvedDeclarationStatus) {
	if t.tree.Status(declaration).IsResolved() {
		return
	}
	t.tree.ReplaceStatus(declaration, status)

	if t.config.OnStatusResolved != nil {
		t.config.OnStatusResolved(declaration, status)
	}
}

func (t *statusTransformer) resolveMemberStatus(member ast.DeclarationID) {
	if t.tree.Status(member).IsResolved() {
		return
	}

	index := uint(member)
	t.membersInProgress.Set(index)
	defer t.membersInProgress.Clear(index)

	status := t.resolver.ResolveStatus(member, t.containingClass(), false)
	t.storeStatus(member, status)
}

func (t *statusTransformer) advancePhases(declarations []ast.DeclarationID) {
	for _, declaration := range declarations {
		t.tree.AdvancePhase(declaration, common.ResolvePhaseStatus)
	}
}

func (t *statusTransformer) VisitProperty(property *ast.Property) struct{} {
	t.traversal.enter(property.ID())
	t.resolveMemberStatus(property.ID())

	for _, accessor := range []ast.DeclarationID{property.Getter(), property.Setter()} {
		if accessor == ast.NoDeclarationID {
			continue
		}
		t.resolveMemberStatus(accessor)
		t.tree.AdvancePhase(accessor, common.ResolvePhaseStatus)
	}

	t.advancePhases(property.TypeParameters())
	t.tree.AdvancePhase(property.ID(), common.ResolvePhaseStatus)
	return struct{}{}
}

func (t *statusTransformer) VisitPropertyAccessor(accessor *ast.PropertyAccessor) struct{} {
	t.traversal.enter(accessor.ID())
	t.resolveMemberStatus(accessor.Parent())
	t.resolveMemberStatus(accessor.ID())
	t.advancePhases(accessor.ValueParameters())
	t.tree.AdvancePhase(accessor.ID(), common.ResolvePhaseStatus)
	return struct{}{}
}

func (t *statusTransformer) VisitSimpleFunction(function *ast.SimpleFunction) struct{} {
	t.traversal.enter(function.ID())
	t.resolveMemberStatus(function.ID())
	t.advancePhases(function.TypeParameters())
	t.advancePhases(function.ValueParameters())
	t.tree.AdvancePhase(function.ID(), common.ResolvePhaseStatus)
	return struct{}{}
}

func (t *statusTransformer) VisitConstructor(constructor *ast.Constructor) struct{} {
	t.traversal.enter(constructor.ID())
	t.resolveMemberStatus(constructor.ID())
	t.advancePhases(constructor.ValueParameters())
	t.tree.AdvancePhase(constructor.ID(), common.ResolvePhaseStatus)
	return struct{}{}
}

func (t *statusTransformer) VisitField(field *ast.Field) struct{} {
	t.traversal.enter(field.ID())
	t.resolveMemberStatus(field.ID())
	t.tree.AdvancePhase(field.ID(), common.ResolvePhaseStatus)
	return struct{}{}
}

func (t *statusTransformer) VisitTypeAlias(alias *ast.TypeAlias) struct{} {
	t.traversal.enter(alias.ID())
	t.resolveMemberStatus(alias.ID())
	t.advancePhases(alias.TypeParameters())
	t.tree.AdvancePhase(alias.ID(), common.ResolvePhaseStatus)
	return struct{}{}
}

func (t *statusTransformer) VisitTypeParameter(parameter *ast.TypeParameter) struct{} {
	t.traversal.enter(parameter.ID())
	t.tree.AdvancePhase(parameter.ID(), common.ResolvePhaseStatus)
	return struct{}{}
}

func (t *statusTransformer) VisitValueParameter(parameter *ast.ValueParameter) struct{} {
	t.traversal.enter(parameter.ID())
	t.tree.AdvancePhase(parameter.ID(), common.ResolvePhaseStatus)
	return struct{}{}
}

func (t *statusTransformer) VisitEnumEntry(entry *ast.EnumEntry) struct{} {
	t.traversal.enter(entry.ID())
	t.resolveMemberStatus(entry.ID())
	t.tree.AdvancePhase(entry.ID(), common.ResolvePhaseStatus)
	return struct{}{}
}

func recoverResolution(err *error) {
	if recovered := recover(); recovered != nil {
		*err = errors.Recover(recovered)
	}
}

// ResolveStatusForWholeFile resolves the statuses of all declarations of the given file,
// except for local declarations.
// Declarations of other files are only resolved if the declarations of the file depend on them.
func ResolveStatusForWholeFile(tree *ast.Tree, file ast.DeclarationID, config *Config) error {
	return ResolveStatusForFiles(tree, []ast.DeclarationID{file}, config)
}

// ResolveStatusForFiles resolves the statuses of all declarations of the given files in one session.
func ResolveStatusForFiles(tree *ast.Tree, files []ast.DeclarationID, config *Config) (err error) {
	defer recoverResolution(&err)

	context := newStatusResolutionContext(tree, config, NewStatusComputationSession(), nil, nil)

	for _, file := range files {
		if _, ok := ast.Get[*ast.File](tree, file); !ok {
			return errors.NewUnexpectedError("declaration %d is not a file", file)
		}

		var start time.Time
		if context.config.Tracer.enabled() {
			start = time.Now()
		}

		newStatusTransformer(context, fullStatusTraversal{}).visit(file)

		if context.config.Tracer.enabled() {
			context.config.Tracer.reportFileTrace(tracingStatusPrefix, tree, file, time.Since(start))
		}
	}

	return nil
}

// ResolveStatusForLocalClassHierarchy resolves the statuses of the given local class
// and of the classes of its parent map.
// All other classes are considered resolved.
// Local supertypes outside of the hierarchy are found in the given local scope, which may be nil.
func ResolveStatusForLocalClassHierarchy(
	tree *ast.Tree,
	class ast.DeclarationID,
	parentMap LocalClassParentMap,
	localScope Scope,
	config *Config,
) (err error) {
	defer recoverResolution(&err)

	if parentMap == nil {
		parentMap = CollectLocalClassParentMap(tree, class)
	}

	classLike, ok := tree.Declaration(class).(ast.ClassLikeDeclaration)
	if !ok || !classLike.ClassID().IsLocal {
		return errors.NewUnexpectedError("declaration %d is not a local class", class)
	}

	if _, ok := parentMap[class]; !ok {
		extended := make(LocalClassParentMap, len(parentMap)+1)
		for child, parent := range parentMap {
			extended[child] = parent
		}
		extended[class] = ast.NoDeclarationID
		parentMap = extended
	}

	context := newStatusResolutionContext(
		tree,
		config,
		NewLocalClassStatusComputationSession(parentMap.Classes()),
		parentMap,
		localScope,
	)

	var start time.Time
	if context.config.Tracer.enabled() {
		start = time.Now()
	}

	newStatusTransformer(context, fullStatusTraversal{}).visit(class)

	if context.config.Tracer.enabled() {
		context.config.Tracer.reportClassTrace(tracingStatusPrefix, tree, class, time.Since(start))
	}

	return nil
}
