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

	"go.opentelemetry.io/otel/attribute"

	"github.com/onflow/statusresolver/ast"
)

const (
	tracingStatusPrefix = "status."
	tracingTypesPrefix  = "types."

	tracingFilePostfix        = "file"
	tracingClassPostfix       = "class"
	tracingDesignationPostfix = "designation"
)

// OnRecordTraceFunc is a function that records a trace.
type OnRecordTraceFunc func(
	operationName string,
	duration time.Duration,
	attrs []attribute.KeyValue,
)

type Tracer struct {
	// OnRecordTrace is triggered when a trace is recorded
	OnRecordTrace OnRecordTraceFunc
	// TracingEnabled determines if tracing is enabled.
	// Tracing reports file passes, class resolutions, and forced designations
	TracingEnabled bool
}

func (tracer Tracer) enabled() bool {
	return tracer.TracingEnabled && tracer.OnRecordTrace != nil
}

func prepareDeclarationTraceAttrs(tree *ast.Tree, id ast.DeclarationID) []attribute.KeyValue {
	declaration := tree.Declaration(id)
	return []attribute.KeyValue{
		attribute.Int64("declaration", int64(id)),
		attribute.String("kind", declaration.DeclarationKind().Name()),
		attribute.String("name", declaration.DeclarationName()),
	}
}

func (tracer Tracer) reportFileTrace(
	prefix string,
	tree *ast.Tree,
	file ast.DeclarationID,
	duration time.Duration,
) {
	tracer.OnRecordTrace(
		prefix+tracingFilePostfix,
		duration,
		prepareDeclarationTraceAttrs(tree, file),
	)
}

func (tracer Tracer) reportClassTrace(
	prefix string,
	tree *ast.Tree,
	class ast.DeclarationID,
	duration time.Duration,
) {
	tracer.OnRecordTrace(
		prefix+tracingClassPostfix,
		duration,
		prepareDeclarationTraceAttrs(tree, class),
	)
}

func (tracer Tracer) reportDesignationTrace(
	tree *ast.Tree,
	designation Designation,
	duration time.Duration,
) {
	attrs := prepareDeclarationTraceAttrs(tree, designation.Target())
	attrs = append(attrs, attribute.Int("length", len(designation)))

	tracer.OnRecordTrace(
		tracingStatusPrefix+tracingDesignationPostfix,
		duration,
		attrs,
	)
}
