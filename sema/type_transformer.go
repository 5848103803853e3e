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
	"time"

	"github.com/bits-and-blooms/bitset"
	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"

	"github.com/onflow/statusresolver/ast"
	"github.com/onflow/statusresolver/common"
	"github.com/onflow/statusresolver/errors"
)

// typeTransformer resolves the type references of the declarations it visits,
// maintaining the lexical scopes of the visited declaration.
//
// Bodies are not visited: local classes are resolved with ResolveTypesForClass.
type typeTransformer struct {
	tree     *ast.Tree
	config   *Config
	logger   zerolog.Logger
	provider SymbolProvider
	scopes   *ScopeStack
	resolver *TypeResolver
	// classes is the stack of the classes containing the visited declaration
	classes []ast.DeclarationID
}

var _ ast.DeclarationVisitor[struct{}] = &typeTransformer{}

func newTypeTransformer(tree *ast.Tree, config *Config, provider SymbolProvider) *typeTransformer {
	scopes := &ScopeStack{}
	return &typeTransformer{
		tree:     tree,
		config:   config,
		logger:   config.Logger.With().Str("pass", "types").Logger(),
		provider: provider,
		scopes:   scopes,
		resolver: NewTypeResolver(tree, provider, scopes),
	}
}

func (t *typeTransformer) visit(id ast.DeclarationID) {
	ast.AcceptDeclaration[struct{}](t.tree.Declaration(id), t)
}

func (t *typeTransformer) visitAll(ids []ast.DeclarationID) {
	for _, id := range ids {
		t.visit(id)
	}
}

func (t *typeTransformer) containingClass() ast.DeclarationID {
	if len(t.classes) == 0 {
		return ast.NoDeclarationID
	}
	return t.classes[len(t.classes)-1]
}

// resolveTypeRef replaces the unresolved type reference in the given slot, if any.
func (t *typeTransformer) resolveTypeRef(id ast.TypeRefID) {
	if !id.IsValid() {
		return
	}

	ref, ok := t.tree.TypeRef(id).(*ast.UnresolvedTypeRef)
	if !ok {
		return
	}

	resolvedType := t.resolver.ResolveType(ref)
	if errorType, ok := resolvedType.(*ast.ErrorType); ok {
		t.logger.Debug().
			Str("reference", ref.String()).
			Str("reason", errorType.Reason).
			Str("suggestion", errorType.Suggestion).
			Msg("cannot resolve type reference")
	}

	t.tree.ReplaceTypeRef(id, &ast.ResolvedTypeRef{
		Type:   resolvedType,
		Source: ref,
	})
}

func (t *typeTransformer) resolveAnnotations(declaration ast.AnnotatedDeclaration) {
	for _, annotation := range declaration.AnnotationTypes() {
		t.resolveTypeRef(annotation)
	}
}

// pushTypeParameters pushes a scope of the given type parameters,
// resolves their bounds, and replaces cyclic bounds.
func (t *typeTransformer) pushTypeParameters(parameters []ast.DeclarationID, kind scopeFrameKind, static bool) {
	t.scopes.push(NewDeclarationScope(t.tree, parameters), kind, static)

	for _, parameter := range parameters {
		typeParameter := t.tree.Declaration(parameter).(*ast.TypeParameter)
		for _, bound := range typeParameter.Bounds {
			t.resolveTypeRef(bound)
		}
		t.resolveAnnotations(typeParameter)
	}

	t.replaceCyclicBounds(parameters)

	for _, parameter := range parameters {
		t.tree.AdvancePhase(parameter, common.ResolvePhaseTypes)
	}
}

// replaceCyclicBounds replaces the bounds of each type parameter
// whose bounds refer back to the parameter itself, directly or through other type parameters,
// with the top type.
// The parameters are checked in order, so only the first parameter of a cycle loses its bounds.
func (t *typeTransformer) replaceCyclicBounds(parameters []ast.DeclarationID) {
	for _, parameter := range parameters {
		if !t.hasBoundCycle(parameter) {
			continue
		}

		typeParameter := t.tree.Declaration(parameter).(*ast.TypeParameter)

		t.logger.Debug().
			Str("parameter", typeParameter.Name).
			Msg("type parameter bounds are cyclic, replacing with top type")

		for _, bound := range typeParameter.Bounds {
			var source *ast.UnresolvedTypeRef
			if ref, ok := t.tree.TypeRef(bound).(*ast.ResolvedTypeRef); ok {
				source = ref.Source
			}
			t.tree.ReplaceTypeRef(bound, &ast.ResolvedTypeRef{
				Type:   ast.TopType(),
				Source: source,
			})
		}
	}
}

func (t *typeTransformer) hasBoundCycle(start ast.DeclarationID) bool {
	visited := bitset.New(uint(t.tree.Len()))

	var visit func(parameter ast.DeclarationID) bool
	visit = func(parameter ast.DeclarationID) bool {
		typeParameter := t.tree.Declaration(parameter).(*ast.TypeParameter)

		for _, bound := range typeParameter.Bounds {
			boundType, ok := t.tree.ResolvedType(bound)
			if !ok {
				continue
			}
			parameterType, ok := boundType.(*ast.TypeParameterType)
			if !ok {
				continue
			}

			next := parameterType.Parameter
			if next == start {
				return true
			}
			if visited.Test(uint(next)) {
				continue
			}
			visited.Set(uint(next))

			if visit(next) {
				return true
			}
		}
		return false
	}

	return visit(start)
}

// fillModality replaces an unspecified declared modality with its structural default.
func (t *typeTransformer) fillModality(declaration ast.DeclarationID, modality func(declared ast.DeclarationStatus) common.Modality) {
	status := t.tree.Status(declaration)
	if status.IsResolved() {
		return
	}

	declared := status.Declared()
	if declared.Modality.IsSpecified() {
		return
	}

	declared.Modality = modality(declared)
	t.tree.ReplaceRawStatus(declaration, declared)
}

func (t *typeTransformer) fillMemberModality(member ast.DeclarationID, hasBody bool) {
	t.fillModality(member, func(declared ast.DeclarationStatus) common.Modality {
		containingClass := t.containingClass()
		return common.DefaultMemberModality(common.MemberModalityContext{
			HasContainingClass: containingClass != ast.NoDeclarationID,
			InInterface:        t.isInterface(containingClass),
			HasBody:            hasBody,
			IsOverride:         declared.Has(common.ModifierOverride),
			Visibility:         declared.Visibility,
			ContainingClassModality: func() common.Modality {
				return t.classModality(containingClass)
			},
		})
	})
}

func (t *typeTransformer) isInterface(class ast.DeclarationID) bool {
	regularClass, ok := ast.Get[*ast.RegularClass](t.tree, class)
	return ok && regularClass.ClassKind.IsInterface()
}

func (t *typeTransformer) classModality(class ast.DeclarationID) common.Modality {
	regularClass, ok := ast.Get[*ast.RegularClass](t.tree, class)
	if !ok {
		return common.ModalityFinal
	}
	modality := t.tree.Status(class).Declared().Modality
	if modality.IsSpecified() {
		return modality
	}
	return common.DefaultClassModality(regularClass.ClassKind)
}

func (t *typeTransformer) VisitFile(file *ast.File) struct{} {
	for _, scope := range fileImportingScopes(t.tree, t.provider, file, t.config.defaultImports()) {
		t.scopes.push(scope, scopeFrameImporting, false)
	}

	t.resolveAnnotations(file)

	t.visitAll(file.Declarations())

	t.scopes.frames = t.scopes.frames[:0]

	t.tree.AdvancePhase(file.ID(), common.ResolvePhaseTypes)
	return struct{}{}
}

func (t *typeTransformer) VisitRegularClass(class *ast.RegularClass) struct{} {
	var start time.Time
	if t.config.Tracer.enabled() {
		start = time.Now()
	}

	// Annotations do not see the type parameters of the class
	t.resolveAnnotations(class)

	frames := len(t.scopes.frames)

	t.pushTypeParameters(
		class.TypeParameters(),
		scopeFrameClassTypeParameters,
		isStaticClass(class),
	)

	for _, superType := range class.SuperTypes {
		t.resolveTypeRef(superType)
	}

	t.fillModality(class.ID(), func(_ ast.DeclarationStatus) common.Modality {
		return common.DefaultClassModality(class.ClassKind)
	})

	t.visitClassContent(class.ID(), class.Declarations())

	t.scopes.frames = t.scopes.frames[:frames]

	t.tree.AdvancePhase(class.ID(), common.ResolvePhaseTypes)

	if t.config.Tracer.enabled() {
		t.config.Tracer.reportClassTrace(tracingTypesPrefix, t.tree, class.ID(), time.Since(start))
	}
	return struct{}{}
}

// isStaticClass returns true if the type parameters of outer classes are not visible in the class.
// Local classes capture the type parameters of their enclosing declarations.
func isStaticClass(class *ast.RegularClass) bool {
	return !class.IsInner() && !class.ClassID().IsLocal
}

func (t *typeTransformer) visitClassContent(class ast.DeclarationID, declarations []ast.DeclarationID) {
	t.scopes.push(NewDeclarationScope(t.tree, declarations), scopeFrameClassifiers, false)
	t.classes = append(t.classes, class)

	t.visitAll(declarations)

	t.classes = t.classes[:len(t.classes)-1]
	t.scopes.pop()
}

func (t *typeTransformer) VisitAnonymousObject(object *ast.AnonymousObject) struct{} {
	for _, superType := range object.SuperTypes {
		t.resolveTypeRef(superType)
	}

	t.visitClassContent(object.ID(), object.Declarations())

	t.tree.AdvancePhase(object.ID(), common.ResolvePhaseTypes)
	return struct{}{}
}

func (t *typeTransformer) VisitProperty(property *ast.Property) struct{} {
	t.pushTypeParameters(property.TypeParameters(), scopeFrameTypeParameters, false)

	t.resolveTypeRef(property.ReceiverType)
	t.resolveTypeRef(property.ReturnType)
	t.resolveAnnotations(property)

	hasAccessorBody := false
	for _, accessor := range []ast.DeclarationID{property.Getter(), property.Setter()} {
		if accessor == ast.NoDeclarationID {
			continue
		}
		t.visit(accessor)
		if t.tree.Declaration(accessor).(*ast.PropertyAccessor).HasBody {
			hasAccessorBody = true
		}
	}

	t.fillMemberModality(property.ID(), property.HasInitializer || hasAccessorBody)

	t.scopes.pop()

	t.tree.AdvancePhase(property.ID(), common.ResolvePhaseTypes)
	return struct{}{}
}

func (t *typeTransformer) VisitPropertyAccessor(accessor *ast.PropertyAccessor) struct{} {
	property := t.tree.Declaration(accessor.Parent()).(*ast.Property)

	// Accessors without an explicit type have the type of the property
	propertyType := t.tree.TypeRef(property.ReturnType)

	if accessor.IsGetter {
		t.resolveImplicitTypeRef(accessor.ReturnType, propertyType)
	} else {
		t.resolveTypeRef(accessor.ReturnType)
	}

	for _, parameter := range accessor.ValueParameters() {
		valueParameter := t.tree.Declaration(parameter).(*ast.ValueParameter)
		t.resolveImplicitTypeRef(valueParameter.ReturnType, propertyType)
		t.resolveAnnotations(valueParameter)
		t.tree.AdvancePhase(parameter, common.ResolvePhaseTypes)
	}

	t.resolveAnnotations(accessor)

	t.tree.AdvancePhase(accessor.ID(), common.ResolvePhaseTypes)
	return struct{}{}
}

// resolveImplicitTypeRef resolves the given type reference,
// or replaces it by the given resolved reference if it is implicit.
func (t *typeTransformer) resolveImplicitTypeRef(id ast.TypeRefID, implicitRef ast.TypeRef) {
	if !id.IsValid() {
		return
	}
	if _, ok := t.tree.TypeRef(id).(ast.ImplicitTypeRef); !ok {
		t.resolveTypeRef(id)
		return
	}
	if resolved, ok := implicitRef.(*ast.ResolvedTypeRef); ok {
		t.tree.ReplaceTypeRef(id, resolved)
	}
}

func (t *typeTransformer) VisitSimpleFunction(function *ast.SimpleFunction) struct{} {
	t.pushTypeParameters(function.TypeParameters(), scopeFrameTypeParameters, false)

	t.resolveTypeRef(function.ReceiverType)
	t.visitAll(function.ValueParameters())
	t.resolveTypeRef(function.ReturnType)
	t.resolveAnnotations(function)

	t.fillMemberModality(function.ID(), function.HasBody)

	t.scopes.pop()

	t.tree.AdvancePhase(function.ID(), common.ResolvePhaseTypes)
	return struct{}{}
}

func (t *typeTransformer) VisitConstructor(constructor *ast.Constructor) struct{} {
	t.visitAll(constructor.ValueParameters())
	t.resolveAnnotations(constructor)

	if constructor.Delegated != nil {
		t.resolveDelegatedConstructorCall(constructor.Delegated)
	}

	t.tree.AdvancePhase(constructor.ID(), common.ResolvePhaseTypes)
	return struct{}{}
}

// resolveDelegatedConstructorCall resolves the type constructed by the delegated call.
// An implicit type is the type of the containing class for this calls,
// and the superclass type for super calls.
func (t *typeTransformer) resolveDelegatedConstructorCall(call *ast.DelegatedConstructorCall) {
	class := t.containingClass()
	if class == ast.NoDeclarationID {
		t.resolveTypeRef(call.ConstructedType)
		return
	}

	var implicitType ast.Type
	if call.IsThis {
		implicitType = t.selfType(class)
	} else {
		implicitType = t.superClassType(class)
	}

	t.resolveImplicitTypeRef(call.ConstructedType, &ast.ResolvedTypeRef{
		Type: implicitType,
	})
}

// selfType returns the type of the given class, with its own type parameters as arguments.
func (t *typeTransformer) selfType(class ast.DeclarationID) *ast.ClassType {
	classLike := t.tree.Declaration(class).(ast.ClassLikeDeclaration)
	selfType := &ast.ClassType{
		ClassID: classLike.ClassID(),
	}

	if regularClass, ok := classLike.(*ast.RegularClass); ok {
		for _, parameter := range regularClass.TypeParameters() {
			typeParameter := t.tree.Declaration(parameter).(*ast.TypeParameter)
			selfType.Arguments = append(selfType.Arguments, &ast.TypeParameterType{
				Parameter: parameter,
				Name:      typeParameter.Name,
			})
		}
	}

	return selfType
}

// superClassType returns the first resolved supertype of the given class which is not an interface,
// or Any if there is none.
func (t *typeTransformer) superClassType(class ast.DeclarationID) ast.Type {
	for _, superType := range t.tree.SuperTypes(class) {
		superClass, ok := t.tree.ResolveSuperClass(t.provider.ClassLikeByID, superType)
		if !ok || t.isInterface(superClass) {
			continue
		}
		resolvedType, ok := t.tree.ResolvedType(superType)
		if ok {
			return resolvedType
		}
	}

	return &ast.ClassType{
		ClassID: common.AnyClassID,
	}
}

func (t *typeTransformer) VisitField(field *ast.Field) struct{} {
	t.resolveTypeRef(field.ReturnType)
	t.tree.AdvancePhase(field.ID(), common.ResolvePhaseTypes)
	return struct{}{}
}

func (t *typeTransformer) VisitTypeAlias(alias *ast.TypeAlias) struct{} {
	t.pushTypeParameters(alias.TypeParameters(), scopeFrameTypeParameters, false)
	t.resolveTypeRef(alias.ExpandedType)
	t.resolveAnnotations(alias)
	t.scopes.pop()

	t.tree.AdvancePhase(alias.ID(), common.ResolvePhaseTypes)
	return struct{}{}
}

func (t *typeTransformer) VisitTypeParameter(_ *ast.TypeParameter) struct{} {
	// Type parameters are resolved together with their owner,
	// as bounds may refer to all parameters of the owner
	panic(errors.NewUnreachableError())
}

func (t *typeTransformer) VisitValueParameter(parameter *ast.ValueParameter) struct{} {
	t.resolveTypeRef(parameter.ReturnType)
	t.resolveAnnotations(parameter)

	if parameter.IsVararg {
		if ref, ok := t.tree.TypeRef(parameter.ReturnType).(*ast.ResolvedTypeRef); ok && !ref.IsError() {
			t.tree.ReplaceTypeRef(parameter.ReturnType, &ast.ResolvedTypeRef{
				Type:   ast.ArrayOf(ref.Type),
				Source: ref.Source,
			})
		}
	}

	t.tree.AdvancePhase(parameter.ID(), common.ResolvePhaseTypes)
	return struct{}{}
}

func (t *typeTransformer) VisitEnumEntry(entry *ast.EnumEntry) struct{} {
	// Entries without an explicit type have the type of the enum class
	if class := t.containingClass(); class != ast.NoDeclarationID {
		t.resolveImplicitTypeRef(entry.ReturnType, &ast.ResolvedTypeRef{
			Type: t.selfType(class),
		})
	} else {
		t.resolveTypeRef(entry.ReturnType)
	}
	t.resolveAnnotations(entry)

	t.tree.AdvancePhase(entry.ID(), common.ResolvePhaseTypes)
	return struct{}{}
}

// pushEnclosingScopes pushes the scopes of the file and the declarations enclosing the given declaration.
func (t *typeTransformer) pushEnclosingScopes(declaration ast.DeclarationID) {
	var ancestors []ast.DeclarationID
	for parent := t.tree.Declaration(declaration).Parent(); parent != ast.NoDeclarationID; {
		ancestors = append(ancestors, parent)
		parent = t.tree.Declaration(parent).Parent()
	}
	slices.Reverse(ancestors)

	for _, ancestor := range ancestors {
		switch ancestor := t.tree.Declaration(ancestor).(type) {
		case *ast.File:
			for _, scope := range fileImportingScopes(t.tree, t.provider, ancestor, t.config.defaultImports()) {
				t.scopes.push(scope, scopeFrameImporting, false)
			}

		case *ast.RegularClass:
			t.scopes.push(
				NewDeclarationScope(t.tree, ancestor.TypeParameters()),
				scopeFrameClassTypeParameters,
				isStaticClass(ancestor),
			)
			t.scopes.push(NewDeclarationScope(t.tree, ancestor.Declarations()), scopeFrameClassifiers, false)
			t.classes = append(t.classes, ancestor.ID())

		case *ast.AnonymousObject:
			t.scopes.push(NewDeclarationScope(t.tree, ancestor.Declarations()), scopeFrameClassifiers, false)
			t.classes = append(t.classes, ancestor.ID())

		case *ast.SimpleFunction:
			t.scopes.push(NewDeclarationScope(t.tree, ancestor.TypeParameters()), scopeFrameTypeParameters, false)

		case *ast.Property:
			t.scopes.push(NewDeclarationScope(t.tree, ancestor.TypeParameters()), scopeFrameTypeParameters, false)
		}
	}
}

// ResolveTypesForFile resolves the type references of the declarations of the given file,
// except for local declarations.
func ResolveTypesForFile(tree *ast.Tree, file ast.DeclarationID, config *Config) error {
	return ResolveTypesForFiles(tree, []ast.DeclarationID{file}, config)
}

// ResolveTypesForFiles resolves the type references of the declarations of the given files.
func ResolveTypesForFiles(tree *ast.Tree, files []ast.DeclarationID, config *Config) (err error) {
	defer recoverResolution(&err)

	if config == nil {
		config = NewConfig()
	}
	provider := config.symbolProvider(tree)

	for _, file := range files {
		if _, ok := ast.Get[*ast.File](tree, file); !ok {
			return errors.NewUnexpectedError("declaration %d is not a file", file)
		}

		var start time.Time
		if config.Tracer.enabled() {
			start = time.Now()
		}

		newTypeTransformer(tree, config, provider).visit(file)

		if config.Tracer.enabled() {
			config.Tracer.reportFileTrace(tracingTypesPrefix, tree, file, time.Since(start))
		}
	}

	return nil
}

// ResolveTypesForClass resolves the type references of the given class and its members,
// e.g. of a local class.
// The class sees the scopes of its enclosing declarations,
// and the given extra scopes, e.g. the classifiers of the enclosing body.
// Extra scopes are searched first, the last one before the others.
func ResolveTypesForClass(
	tree *ast.Tree,
	class ast.DeclarationID,
	extraScopes []Scope,
	config *Config,
) (err error) {
	defer recoverResolution(&err)

	if config == nil {
		config = NewConfig()
	}

	if !isClassLike(tree, class) {
		return errors.NewUnexpectedError("declaration %d is not a class", class)
	}

	transformer := newTypeTransformer(tree, config, config.symbolProvider(tree))
	transformer.pushEnclosingScopes(class)
	for _, scope := range extraScopes {
		transformer.scopes.Push(scope)
	}

	transformer.visit(class)

	return nil
}
