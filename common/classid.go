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

package common

import (
	"strings"
)

const StandardPackageName = "kotlin"

var (
	AnyClassID   = NewClassID(StandardPackageName, "Any", false)
	ArrayClassID = NewClassID(StandardPackageName, "Array", false)
)

// ClassID identifies a classifier by its package and its dot-separated name relative to the package.
//
// Local classes (declared in function bodies) are not part of the global symbol table,
// their IDs are only unique within the declaring function.
type ClassID struct {
	PackageName  string
	RelativeName string
	IsLocal      bool
}

func NewClassID(packageName string, relativeName string, isLocal bool) ClassID {
	return ClassID{
		PackageName:  packageName,
		RelativeName: relativeName,
		IsLocal:      isLocal,
	}
}

// ParseClassID parses the "package/path/Outer.Inner" form produced by ClassID.String.
func ParseClassID(s string) ClassID {
	packagePath, relativeName := "", s
	if index := strings.LastIndexByte(s, '/'); index >= 0 {
		packagePath, relativeName = s[:index], s[index+1:]
	}
	return NewClassID(
		strings.ReplaceAll(packagePath, "/", "."),
		relativeName,
		false,
	)
}

func (id ClassID) IsZero() bool {
	return id.RelativeName == ""
}

func (id ClassID) ShortName() string {
	index := strings.LastIndexByte(id.RelativeName, '.')
	return id.RelativeName[index+1:]
}

// IsNested returns true if the class is declared inside another class.
func (id ClassID) IsNested() bool {
	return strings.IndexByte(id.RelativeName, '.') >= 0
}

// OuterClassID returns the ID of the immediately enclosing class, if any.
func (id ClassID) OuterClassID() (ClassID, bool) {
	index := strings.LastIndexByte(id.RelativeName, '.')
	if index < 0 {
		return ClassID{}, false
	}
	return NewClassID(id.PackageName, id.RelativeName[:index], id.IsLocal), true
}

func (id ClassID) NestedClassID(name string) ClassID {
	return NewClassID(id.PackageName, id.RelativeName+"."+name, id.IsLocal)
}

// QualifiedName returns the dot-separated fully qualified name, e.g. "a.b.Outer.Inner".
func (id ClassID) QualifiedName() string {
	if id.PackageName == "" {
		return id.RelativeName
	}
	return id.PackageName + "." + id.RelativeName
}

func (id ClassID) String() string {
	var builder strings.Builder
	if id.PackageName != "" {
		builder.WriteString(strings.ReplaceAll(id.PackageName, ".", "/"))
		builder.WriteByte('/')
	}
	builder.WriteString(id.RelativeName)
	return builder.String()
}
