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
	"github.com/SaveTheRbtz/mph"

	"github.com/onflow/statusresolver/ast"
	"github.com/onflow/statusresolver/common"
)

type modifierKeywordKind uint8

const (
	modifierKeywordVisibility modifierKeywordKind = iota
	modifierKeywordModality
	modifierKeywordFlag
)

type modifierKeyword struct {
	keyword    string
	kind       modifierKeywordKind
	visibility common.Visibility
	modality   common.Modality
	flag       common.Modifier
}

var modifierKeywords = func() []modifierKeyword {
	var keywords []modifierKeyword

	for _, visibility := range common.Visibilities {
		switch visibility {
		case common.VisibilityUnknown,
			common.VisibilityLocal,
			common.VisibilityPrivateToThis:
			// not declarable
			continue
		}
		keywords = append(keywords, modifierKeyword{
			keyword:    visibility.Keyword(),
			kind:       modifierKeywordVisibility,
			visibility: visibility,
		})
	}

	for _, modality := range common.Modalities {
		if !modality.IsSpecified() {
			continue
		}
		keywords = append(keywords, modifierKeyword{
			keyword:  modality.Keyword(),
			kind:     modifierKeywordModality,
			modality: modality,
		})
	}

	for _, modifier := range common.AllModifiers {
		keywords = append(keywords, modifierKeyword{
			keyword: modifier.Keyword(),
			kind:    modifierKeywordFlag,
			flag:    modifier,
		})
	}

	return keywords
}()

var modifierKeywordsTable = func() *mph.Table {
	keywords := make([]string, len(modifierKeywords))
	for i, keyword := range modifierKeywords {
		keywords[i] = keyword.keyword
	}
	return mph.Build(keywords)
}()

func lookupModifierKeyword(keyword string) (modifierKeyword, bool) {
	index, ok := modifierKeywordsTable.Lookup(keyword)
	if !ok {
		return modifierKeyword{}, false
	}
	return modifierKeywords[index], true
}

// ParseModifiers parses a list of modifier keywords into a declaration status.
// The last visibility and the last modality win.
func ParseModifiers(keywords []string) (ast.DeclarationStatus, error) {
	var status ast.DeclarationStatus

	for _, keyword := range keywords {
		modifier, ok := lookupModifierKeyword(keyword)
		if !ok {
			return ast.DeclarationStatus{}, &UnknownModifierError{
				Keyword: keyword,
			}
		}

		switch modifier.kind {
		case modifierKeywordVisibility:
			status.Visibility = modifier.visibility
		case modifierKeywordModality:
			status.Modality = modifier.modality
		case modifierKeywordFlag:
			status.Modifiers = status.Modifiers.With(modifier.flag)
		}
	}

	return status, nil
}
