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
	"github.com/onflow/statusresolver/errors"
)

//go:generate stringer -type=Modality

type Modality uint8

const (
	ModalityNotSpecified Modality = iota
	ModalityFinal
	ModalitySealed
	ModalityOpen
	ModalityAbstract
)

var Modalities = []Modality{
	ModalityNotSpecified,
	ModalityFinal,
	ModalitySealed,
	ModalityOpen,
	ModalityAbstract,
}

func (m Modality) IsSpecified() bool {
	return m != ModalityNotSpecified
}

func (m Modality) Keyword() string {
	switch m {
	case ModalityNotSpecified:
		return ""
	case ModalityFinal:
		return "final"
	case ModalitySealed:
		return "sealed"
	case ModalityOpen:
		return "open"
	case ModalityAbstract:
		return "abstract"
	}

	panic(errors.NewUnreachableError())
}

// DefaultClassModality returns the modality of a classifier with unspecified modality.
func DefaultClassModality(kind ClassKind) Modality {
	if kind.IsInterface() {
		return ModalityAbstract
	}
	return ModalityFinal
}

// MemberModalityContext is what determines the default modality of a callable member.
type MemberModalityContext struct {
	HasContainingClass bool
	InInterface        bool
	// HasBody is set if the member has a body, an initializer, or an accessor with a body
	HasBody    bool
	IsOverride bool
	Visibility Visibility
	// ContainingClassModality is only called for overriding members of classes
	ContainingClassModality func() Modality
}

// DefaultMemberModality returns the modality of a callable member with unspecified modality.
func DefaultMemberModality(context MemberModalityContext) Modality {
	switch {
	case !context.HasContainingClass:
		return ModalityFinal

	case context.InInterface:
		switch {
		case context.Visibility == VisibilityPrivate:
			return ModalityFinal
		case !context.HasBody:
			return ModalityAbstract
		default:
			return ModalityOpen
		}

	case context.IsOverride &&
		context.ContainingClassModality() != ModalityFinal:

		return ModalityOpen

	default:
		return ModalityFinal
	}
}

// DeclaredMemberModality returns the modality of a callable member with specified modality.
// Open members of interfaces without a body are abstract.
func DeclaredMemberModality(declared Modality, inInterface bool, hasBody bool) Modality {
	if declared == ModalityOpen && inInterface && !hasBody {
		return ModalityAbstract
	}
	return declared
}
