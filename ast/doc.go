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

package ast

import (
	"strings"

	"github.com/turbolent/prettier"
)

const maxLineWidth = 80

func Prettier(doc prettier.Doc) string {
	var builder strings.Builder
	prettier.Prettier(&builder, doc, maxLineWidth, "    ")
	return builder.String()
}

// Doc returns the document of the declaration and its descendants,
// showing the current content of the status and type reference slots.
func (t *Tree) Doc(id DeclarationID) prettier.Doc {
	return AcceptDeclaration[prettier.Doc](
		t.Declaration(id),
		treeDocumenter{tree: t},
	)
}

func (t *Tree) String(id DeclarationID) string {
	return Prettier(t.Doc(id))
}

type treeDocumenter struct {
	tree *Tree
}

var _ DeclarationVisitor[prettier.Doc] = treeDocumenter{}

var (
	typeSeparatorSpaceDoc = prettier.Text(": ")
	superTypeSeparatorDoc = prettier.Text(" : ")
	commaSeparatorDoc     = prettier.Concat{
		prettier.Text(","),
		prettier.Line{},
	}
	equalSpaceDoc = prettier.Text(" = ")
	varargDoc     = prettier.Text("vararg ")
	annotationDoc = prettier.Text("@")
)

func (d treeDocumenter) VisitFile(file *File) prettier.Doc {
	var doc prettier.Concat

	for _, annotation := range file.Annotations {
		doc = append(
			doc,
			prettier.Text("@file:"),
			d.typeRefDoc(annotation),
			prettier.HardLine{},
		)
	}

	if file.PackageName != "" {
		doc = append(
			doc,
			prettier.Text("package "+file.PackageName),
			prettier.HardLine{},
		)
	}

	for _, imported := range file.Imports {
		text := "import " + imported.FqName
		if imported.AllUnder {
			text += ".*"
		} else if imported.Alias != "" {
			text += " as " + imported.Alias
		}
		doc = append(
			doc,
			prettier.Text(text),
			prettier.HardLine{},
		)
	}

	for _, declaration := range file.declarations {
		doc = append(
			doc,
			prettier.HardLine{},
			d.tree.Doc(declaration),
			prettier.HardLine{},
		)
	}

	return doc
}

// annotationsDoc returns the annotations of a declaration, each followed by a space.
func (d treeDocumenter) annotationsDoc(annotations []TypeRefID) prettier.Doc {
	doc := prettier.Concat{}
	for _, annotation := range annotations {
		doc = append(
			doc,
			annotationDoc,
			d.typeRefDoc(annotation),
			prettier.Space,
		)
	}
	return doc
}

func (d treeDocumenter) statusPrefixDoc(id DeclarationID) prettier.Doc {
	statusDoc := d.statusDoc(id)
	if statusDoc == nil {
		return prettier.Concat{}
	}
	return prettier.Concat{
		statusDoc,
		prettier.Space,
	}
}

func (d treeDocumenter) statusDoc(id DeclarationID) prettier.Doc {
	var status DeclarationStatus
	switch slot := d.tree.Status(id).(type) {
	case ResolvedStatus:
		status = slot.Resolved.Declared()
	case UnresolvedStatus:
		status = slot.DeclarationStatus
	}
	if status == (DeclarationStatus{}) {
		return nil
	}
	return status.Doc()
}

func (d treeDocumenter) typeRefDoc(id TypeRefID) prettier.Doc {
	ref := d.tree.TypeRef(id)
	if ref == nil {
		return prettier.Text("<none>")
	}
	return ref.Doc()
}

func (d treeDocumenter) typeParametersDoc(typeParameters []DeclarationID) prettier.Doc {
	if len(typeParameters) == 0 {
		return prettier.Concat{}
	}
	return typeArgumentsDoc(d.docs(typeParameters))
}

func (d treeDocumenter) valueParametersDoc(valueParameters []DeclarationID) prettier.Doc {
	if len(valueParameters) == 0 {
		return prettier.Text("()")
	}
	return prettier.WrapParentheses(
		prettier.Join(commaSeparatorDoc, d.docs(valueParameters)...),
		prettier.SoftLine{},
	)
}

func (d treeDocumenter) superTypesDoc(superTypes []TypeRefID) prettier.Doc {
	if len(superTypes) == 0 {
		return prettier.Concat{}
	}
	superTypeDocs := make([]prettier.Doc, len(superTypes))
	for i, superType := range superTypes {
		superTypeDocs[i] = d.typeRefDoc(superType)
	}
	return prettier.Concat{
		superTypeSeparatorDoc,
		prettier.Group{
			Doc: prettier.Join(commaSeparatorDoc, superTypeDocs...),
		},
	}
}

func (d treeDocumenter) membersDoc(members []DeclarationID) prettier.Doc {
	if len(members) == 0 {
		return prettier.Concat{}
	}

	var body prettier.Concat
	for _, member := range members {
		body = append(
			body,
			prettier.HardLine{},
			d.tree.Doc(member),
		)
	}

	return prettier.Concat{
		prettier.Text(" {"),
		prettier.Indent{
			Doc: body,
		},
		prettier.HardLine{},
		prettier.Text("}"),
	}
}

func (d treeDocumenter) docs(ids []DeclarationID) []prettier.Doc {
	docs := make([]prettier.Doc, len(ids))
	for i, id := range ids {
		docs[i] = d.tree.Doc(id)
	}
	return docs
}

func (d treeDocumenter) receiverDoc(receiverType TypeRefID) prettier.Doc {
	if !receiverType.IsValid() {
		return prettier.Concat{}
	}
	return prettier.Concat{
		d.typeRefDoc(receiverType),
		prettier.Text("."),
	}
}

func (d treeDocumenter) VisitRegularClass(class *RegularClass) prettier.Doc {
	return prettier.Concat{
		d.annotationsDoc(class.Annotations),
		d.statusPrefixDoc(class.id),
		prettier.Text(class.ClassKind.Keyword()),
		prettier.Space,
		prettier.Text(class.Name),
		d.typeParametersDoc(class.typeParameters),
		d.superTypesDoc(class.SuperTypes),
		d.membersDoc(class.declarations),
	}
}

func (d treeDocumenter) VisitAnonymousObject(object *AnonymousObject) prettier.Doc {
	return prettier.Concat{
		prettier.Text("object"),
		d.superTypesDoc(object.SuperTypes),
		d.membersDoc(object.declarations),
	}
}

func (d treeDocumenter) VisitProperty(property *Property) prettier.Doc {
	keyword := "val "
	if property.IsVar {
		keyword = "var "
	}

	doc := prettier.Concat{
		d.annotationsDoc(property.Annotations),
		d.statusPrefixDoc(property.id),
		prettier.Text(keyword),
	}
	if len(property.typeParameters) > 0 {
		doc = append(
			doc,
			d.typeParametersDoc(property.typeParameters),
			prettier.Space,
		)
	}
	doc = append(
		doc,
		d.receiverDoc(property.ReceiverType),
		prettier.Text(property.Name),
		typeSeparatorSpaceDoc,
		d.typeRefDoc(property.ReturnType),
	)
	if property.HasInitializer {
		doc = append(doc, equalSpaceDoc, prettier.Text("..."))
	}

	var accessors prettier.Concat
	for _, accessor := range []DeclarationID{property.getter, property.setter} {
		if accessor == NoDeclarationID {
			continue
		}
		accessors = append(
			accessors,
			prettier.HardLine{},
			d.tree.Doc(accessor),
		)
	}
	if len(accessors) > 0 {
		doc = append(
			doc,
			prettier.Indent{
				Doc: accessors,
			},
		)
	}

	return doc
}

func (d treeDocumenter) VisitPropertyAccessor(accessor *PropertyAccessor) prettier.Doc {
	keyword := "set"
	if accessor.IsGetter {
		keyword = "get"
	}

	doc := prettier.Concat{
		d.annotationsDoc(accessor.Annotations),
		d.statusPrefixDoc(accessor.id),
		prettier.Text(keyword),
	}
	if !accessor.IsGetter || accessor.HasBody {
		doc = append(doc, d.valueParametersDoc(accessor.valueParameters))
	}
	if accessor.HasBody {
		doc = append(doc, prettier.Text(" { ... }"))
	}
	return doc
}

func (d treeDocumenter) VisitSimpleFunction(function *SimpleFunction) prettier.Doc {
	doc := prettier.Concat{
		d.annotationsDoc(function.Annotations),
		d.statusPrefixDoc(function.id),
		prettier.Text("fun "),
	}
	if len(function.typeParameters) > 0 {
		doc = append(
			doc,
			d.typeParametersDoc(function.typeParameters),
			prettier.Space,
		)
	}
	doc = append(
		doc,
		d.receiverDoc(function.ReceiverType),
		prettier.Text(function.Name),
		prettier.Group{
			Doc: d.valueParametersDoc(function.valueParameters),
		},
	)
	if function.ReturnType.IsValid() {
		doc = append(
			doc,
			typeSeparatorSpaceDoc,
			d.typeRefDoc(function.ReturnType),
		)
	}
	if function.HasBody {
		doc = append(doc, prettier.Text(" { ... }"))
	}
	return doc
}

func (d treeDocumenter) VisitConstructor(constructor *Constructor) prettier.Doc {
	doc := prettier.Concat{
		d.annotationsDoc(constructor.Annotations),
		d.statusPrefixDoc(constructor.id),
		prettier.Text("constructor"),
		prettier.Group{
			Doc: d.valueParametersDoc(constructor.valueParameters),
		},
	}

	if delegated := constructor.Delegated; delegated != nil {
		keyword := "super"
		if delegated.IsThis {
			keyword = "this"
		}
		doc = append(
			doc,
			superTypeSeparatorDoc,
			prettier.Text(keyword),
			prettier.Text("<"),
			d.typeRefDoc(delegated.ConstructedType),
			prettier.Text(">()"),
		)
	}

	return doc
}

func (d treeDocumenter) VisitField(field *Field) prettier.Doc {
	return prettier.Concat{
		d.statusPrefixDoc(field.id),
		prettier.Text("field "),
		prettier.Text(field.Name),
		typeSeparatorSpaceDoc,
		d.typeRefDoc(field.ReturnType),
	}
}

func (d treeDocumenter) VisitTypeAlias(alias *TypeAlias) prettier.Doc {
	return prettier.Concat{
		d.annotationsDoc(alias.Annotations),
		d.statusPrefixDoc(alias.id),
		prettier.Text("typealias "),
		prettier.Text(alias.Name),
		d.typeParametersDoc(alias.typeParameters),
		equalSpaceDoc,
		d.typeRefDoc(alias.ExpandedType),
	}
}

func (d treeDocumenter) VisitTypeParameter(parameter *TypeParameter) prettier.Doc {
	doc := prettier.Concat{
		d.annotationsDoc(parameter.Annotations),
	}
	if parameter.IsReified {
		doc = append(doc, prettier.Text("reified "))
	}
	doc = append(doc, prettier.Text(parameter.Name))

	if len(parameter.Bounds) > 0 {
		boundDocs := make([]prettier.Doc, len(parameter.Bounds))
		for i, bound := range parameter.Bounds {
			boundDocs[i] = d.typeRefDoc(bound)
		}
		doc = append(
			doc,
			typeSeparatorSpaceDoc,
			prettier.Join(prettier.Text(" & "), boundDocs...),
		)
	}
	return doc
}

func (d treeDocumenter) VisitValueParameter(parameter *ValueParameter) prettier.Doc {
	doc := prettier.Concat{
		d.annotationsDoc(parameter.Annotations),
	}
	if parameter.IsVararg {
		doc = append(doc, varargDoc)
	}
	doc = append(
		doc,
		prettier.Text(parameter.Name),
		typeSeparatorSpaceDoc,
		d.typeRefDoc(parameter.ReturnType),
	)
	if parameter.HasDefault {
		doc = append(doc, equalSpaceDoc, prettier.Text("..."))
	}
	return doc
}

func (d treeDocumenter) VisitEnumEntry(entry *EnumEntry) prettier.Doc {
	doc := prettier.Concat{
		d.annotationsDoc(entry.Annotations),
		d.statusPrefixDoc(entry.id),
		prettier.Text(entry.Name),
	}
	if entry.ReturnType.IsValid() {
		doc = append(
			doc,
			typeSeparatorSpaceDoc,
			d.typeRefDoc(entry.ReturnType),
		)
	}
	return doc
}
