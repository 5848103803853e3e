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
	"github.com/onflow/statusresolver/common"
)

// StatusResolver computes the resolved status of a declaration
// from its declared status, its containing class, and the statuses of the members it overrides.
type StatusResolver struct {
	tree          *ast.Tree
	calculator    ResolvedStatusCalculator
	overrideScope OverrideScope
}

func NewStatusResolver(
	tree *ast.Tree,
	calculator ResolvedStatusCalculator,
	overrideScope OverrideScope,
) *StatusResolver {
	return &StatusResolver{
		tree:          tree,
		calculator:    calculator,
		overrideScope: overrideScope,
	}
}

// statusSubject is what the resolver needs to know about the declaration kinds.
type statusSubject struct {
	kind common.DeclarationKind
	// classifier is set for classes and type aliases
	classifier bool
	classKind  common.ClassKind
	// hasBody is set if the declaration has a body, an initializer, or an accessor with a body.
	// Classifiers always have a body
	hasBody bool
	// canOverride is set for the members which are looked up in the override scope
	canOverride bool
}

type statusSubjectVisitor struct {
	tree *ast.Tree
}

var _ ast.DeclarationVisitor[statusSubject] = statusSubjectVisitor{}

func (statusSubjectVisitor) unsupported(declaration ast.Declaration) statusSubject {
	panic(&UnsupportedDeclarationError{
		Kind: declaration.DeclarationKind(),
	})
}

func (v statusSubjectVisitor) VisitFile(declaration *ast.File) statusSubject {
	return v.unsupported(declaration)
}

func (statusSubjectVisitor) VisitRegularClass(declaration *ast.RegularClass) statusSubject {
	return statusSubject{
		kind:       common.DeclarationKindRegularClass,
		classifier: true,
		classKind:  declaration.ClassKind,
		hasBody:    true,
	}
}

func (v statusSubjectVisitor) VisitAnonymousObject(declaration *ast.AnonymousObject) statusSubject {
	return v.unsupported(declaration)
}

func (v statusSubjectVisitor) VisitProperty(declaration *ast.Property) statusSubject {
	return statusSubject{
		kind:        common.DeclarationKindProperty,
		hasBody:     declaration.HasInitializer || v.hasAccessorBody(declaration),
		canOverride: true,
	}
}

func (v statusSubjectVisitor) hasAccessorBody(property *ast.Property) bool {
	for _, accessor := range []ast.DeclarationID{property.Getter(), property.Setter()} {
		if accessor == ast.NoDeclarationID {
			continue
		}
		if v.tree.Declaration(accessor).(*ast.PropertyAccessor).HasBody {
			return true
		}
	}
	return false
}

func (statusSubjectVisitor) VisitPropertyAccessor(declaration *ast.PropertyAccessor) statusSubject {
	return statusSubject{
		kind:    common.DeclarationKindPropertyAccessor,
		hasBody: declaration.HasBody,
	}
}

func (statusSubjectVisitor) VisitSimpleFunction(declaration *ast.SimpleFunction) statusSubject {
	return statusSubject{
		kind:        common.DeclarationKindSimpleFunction,
		hasBody:     declaration.HasBody,
		canOverride: true,
	}
}

func (statusSubjectVisitor) VisitConstructor(_ *ast.Constructor) statusSubject {
	return statusSubject{
		kind:    common.DeclarationKindConstructor,
		hasBody: true,
	}
}

func (statusSubjectVisitor) VisitField(_ *ast.Field) statusSubject {
	return statusSubject{
		kind:    common.DeclarationKindField,
		hasBody: true,
	}
}

func (statusSubjectVisitor) VisitTypeAlias(_ *ast.TypeAlias) statusSubject {
	return statusSubject{
		kind:       common.DeclarationKindTypeAlias,
		classifier: true,
		hasBody:    true,
		// Type aliases are never interfaces
		classKind: common.ClassKindClass,
	}
}

func (v statusSubjectVisitor) VisitTypeParameter(declaration *ast.TypeParameter) statusSubject {
	return v.unsupported(declaration)
}

func (v statusSubjectVisitor) VisitValueParameter(declaration *ast.ValueParameter) statusSubject {
	return v.unsupported(declaration)
}

func (statusSubjectVisitor) VisitEnumEntry(_ *ast.EnumEntry) statusSubject {
	return statusSubject{
		kind:    common.DeclarationKindEnumEntry,
		hasBody: true,
	}
}

// ResolveStatus returns the resolved status of the given declaration.
// The containing class is the class declaring the declaration, if any.
// isLocal is set for classifiers declared in a body.
//
// The result is not stored: callers replace the status of the declaration.
func (r *StatusResolver) ResolveStatus(
	declaration ast.DeclarationID,
	containingClass ast.DeclarationID,
	isLocal bool,
) ast.ResolvedDeclarationStatus {
	subject := ast.AcceptDeclaration[statusSubject](
		r.tree.Declaration(declaration),
		statusSubjectVisitor{tree: r.tree},
	)

	if resolved, ok := r.tree.ResolvedStatus(declaration); ok {
		return resolved
	}

	declared := r.tree.Status(declaration).Declared()

	overridden := r.overriddenStatuses(declaration, containingClass, subject)

	visibility := r.resolveVisibility(declared, subject, containingClass, isLocal, overridden)
	modality := r.resolveModality(declared, subject, containingClass, visibility)

	modifiers := declared.Modifiers
	for _, status := range overridden {
		modifiers = modifiers.Union(status.Modifiers())
	}

	return ast.NewResolvedDeclarationStatus(visibility, modality, modifiers)
}

func (r *StatusResolver) overriddenStatuses(
	declaration ast.DeclarationID,
	containingClass ast.DeclarationID,
	subject statusSubject,
) []ast.ResolvedDeclarationStatus {
	if !subject.canOverride || containingClass == ast.NoDeclarationID {
		return nil
	}

	var statuses []ast.ResolvedDeclarationStatus
	r.overrideScope.ProcessDirectOverriddenMembers(
		containingClass,
		declaration,
		func(overridden ast.DeclarationID) {
			status, ok := r.calculator.TryCalculateResolvedStatus(overridden)
			if !ok {
				return
			}
			statuses = append(statuses, status)
		},
	)
	return statuses
}

func (r *StatusResolver) resolveVisibility(
	declared ast.DeclarationStatus,
	subject statusSubject,
	containingClass ast.DeclarationID,
	isLocal bool,
	overridden []ast.ResolvedDeclarationStatus,
) common.Visibility {
	if !declared.Visibility.IsUnknown() {
		return declared.Visibility
	}

	if isLocal {
		return common.VisibilityLocal
	}

	if subject.kind == common.DeclarationKindConstructor &&
		containingClass != ast.NoDeclarationID {

		switch class := r.tree.Declaration(containingClass).(type) {
		case *ast.AnonymousObject:
			return common.VisibilityPrivate

		case *ast.RegularClass:
			if class.ClassKind.IsEnum() ||
				r.classModality(containingClass) == common.ModalitySealed {

				return common.VisibilityPrivate
			}
		}
	}

	visibilities := make([]common.Visibility, len(overridden))
	for i, status := range overridden {
		visibilities[i] = status.Visibility()
	}
	return common.InheritedVisibility(visibilities)
}

func (r *StatusResolver) resolveModality(
	declared ast.DeclarationStatus,
	subject statusSubject,
	containingClass ast.DeclarationID,
	visibility common.Visibility,
) common.Modality {
	inInterface := r.isInterface(containingClass)

	if declared.Modality.IsSpecified() {
		return common.DeclaredMemberModality(declared.Modality, inInterface, subject.hasBody)
	}

	if subject.classifier {
		return common.DefaultClassModality(subject.classKind)
	}

	return common.DefaultMemberModality(common.MemberModalityContext{
		HasContainingClass: containingClass != ast.NoDeclarationID,
		InInterface:        inInterface,
		HasBody:            subject.hasBody,
		IsOverride:         declared.Has(common.ModifierOverride),
		Visibility:         visibility,
		ContainingClassModality: func() common.Modality {
			return r.classModality(containingClass)
		},
	})
}

func (r *StatusResolver) isInterface(class ast.DeclarationID) bool {
	if class == ast.NoDeclarationID {
		return false
	}
	regularClass, ok := ast.Get[*ast.RegularClass](r.tree, class)
	return ok && regularClass.ClassKind.IsInterface()
}

// classModality returns the modality of the given containing class.
// Anonymous objects are final.
// If the status of the class is not resolved yet, the structural default is used.
func (r *StatusResolver) classModality(class ast.DeclarationID) common.Modality {
	regularClass, ok := ast.Get[*ast.RegularClass](r.tree, class)
	if !ok {
		return common.ModalityFinal
	}

	if status, ok := r.tree.ResolvedStatus(class); ok {
		return status.Modality()
	}

	modality := r.tree.Status(class).Declared().Modality
	if modality.IsSpecified() {
		return modality
	}
	return common.DefaultClassModality(regularClass.ClassKind)
}
