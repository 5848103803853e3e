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

package parser

import (
	"unicode"
	"unicode/utf8"

	"github.com/onflow/statusresolver/ast"
)

// ParseTypeReference parses a type reference, e.g. "a.b.Map<K, List<V>>?".
func ParseTypeReference(source string) (*ast.UnresolvedTypeRef, error) {
	p := &typeParser{
		source: source,
	}

	p.skipSpace()
	typeRef, err := p.parseType()
	if err != nil {
		return nil, err
	}

	p.skipSpace()
	if !p.atEnd() {
		return nil, p.syntaxError("unexpected trailing input")
	}

	return typeRef, nil
}

type typeParser struct {
	source string
	offset int
}

func (p *typeParser) atEnd() bool {
	return p.offset >= len(p.source)
}

func (p *typeParser) current() rune {
	r, _ := utf8.DecodeRuneInString(p.source[p.offset:])
	return r
}

func (p *typeParser) next() {
	_, size := utf8.DecodeRuneInString(p.source[p.offset:])
	p.offset += size
}

func (p *typeParser) skipSpace() {
	for !p.atEnd() && unicode.IsSpace(p.current()) {
		p.next()
	}
}

func (p *typeParser) accept(r rune) bool {
	p.skipSpace()
	if p.atEnd() || p.current() != r {
		return false
	}
	p.next()
	return true
}

func (p *typeParser) syntaxError(message string) *SyntaxError {
	return &SyntaxError{
		Source:  p.source,
		Offset:  p.offset,
		Message: message,
	}
}

func (p *typeParser) parseType() (*ast.UnresolvedTypeRef, error) {
	typeRef := &ast.UnresolvedTypeRef{}

	for {
		identifier, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		typeRef.Qualifier = append(typeRef.Qualifier, identifier)

		if !p.accept('.') {
			break
		}
	}

	if p.accept('<') {
		for {
			argument, err := p.parseType()
			if err != nil {
				return nil, err
			}
			typeRef.Arguments = append(typeRef.Arguments, argument)

			if p.accept('>') {
				break
			}
			if !p.accept(',') {
				return nil, p.syntaxError("expected ',' or '>'")
			}
		}
	}

	if p.accept('?') {
		typeRef.Nullable = true
	}

	return typeRef, nil
}

func (p *typeParser) parseIdentifier() (string, error) {
	p.skipSpace()

	start := p.offset
	for !p.atEnd() {
		r := p.current()
		if r != '_' && !unicode.IsLetter(r) && (p.offset == start || !unicode.IsDigit(r)) {
			break
		}
		p.next()
	}

	if p.offset == start {
		return "", p.syntaxError("expected identifier")
	}

	return p.source[start:p.offset], nil
}
