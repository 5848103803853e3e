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

//go:generate stringer -type=Visibility

type Visibility uint8

const (
	VisibilityUnknown Visibility = iota
	VisibilityPrivateToThis
	VisibilityPrivate
	VisibilityProtected
	VisibilityInternal
	VisibilityPublic
	VisibilityLocal
)

var Visibilities = []Visibility{
	VisibilityUnknown,
	VisibilityPrivateToThis,
	VisibilityPrivate,
	VisibilityProtected,
	VisibilityInternal,
	VisibilityPublic,
	VisibilityLocal,
}

// visibilityRanks orders the comparable visibilities.
// Visibilities with equal rank, or without a rank, are incomparable.
var visibilityRanks = map[Visibility]int{
	VisibilityPrivateToThis: 0,
	VisibilityPrivate:       1,
	VisibilityInternal:      2,
	VisibilityProtected:     2,
	VisibilityPublic:        3,
}

// CompareVisibilities compares two visibilities in the visibility partial order.
// The result is negative if first is less permissive than second, positive if it is more permissive,
// and zero if both are the same visibility.
// The boolean result is false if the visibilities are incomparable, e.g. internal and protected.
func CompareVisibilities(first, second Visibility) (int, bool) {
	if first == second {
		return 0, true
	}

	firstRank, ok := visibilityRanks[first]
	if !ok {
		return 0, false
	}
	secondRank, ok := visibilityRanks[second]
	if !ok || firstRank == secondRank {
		return 0, false
	}

	return firstRank - secondRank, true
}

// IsMorePermissiveThan returns true if the visibility is strictly wider than the other visibility.
// Incomparable visibilities are never wider.
func (v Visibility) IsMorePermissiveThan(other Visibility) bool {
	result, ok := CompareVisibilities(v, other)
	return ok && result > 0
}

// Normalize maps visibilities which only exist during resolution to their declared counterpart.
func (v Visibility) Normalize() Visibility {
	if v == VisibilityPrivateToThis {
		return VisibilityPrivate
	}
	return v
}

func (v Visibility) IsUnknown() bool {
	return v == VisibilityUnknown
}

func (v Visibility) Keyword() string {
	switch v {
	case VisibilityUnknown:
		return ""
	case VisibilityPrivateToThis:
		return "private(this)"
	case VisibilityPrivate:
		return "private"
	case VisibilityProtected:
		return "protected"
	case VisibilityInternal:
		return "internal"
	case VisibilityPublic:
		return "public"
	case VisibilityLocal:
		return "local"
	}

	panic(errors.NewUnreachableError())
}

// InheritedVisibility returns the visibility of a member with unspecified visibility
// which overrides members with the given visibilities.
//
// The widest visibility wins. Incomparable visibilities are not wider, so the first one is kept.
// Members which override nothing are public.
func InheritedVisibility(overridden []Visibility) Visibility {
	if len(overridden) == 0 {
		return VisibilityPublic
	}

	widest := overridden[0]
	for _, visibility := range overridden[1:] {
		if visibility.IsMorePermissiveThan(widest) {
			widest = visibility
		}
	}
	return widest.Normalize()
}
