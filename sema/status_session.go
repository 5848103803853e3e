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
	"github.com/bits-and-blooms/bitset"

	"github.com/onflow/statusresolver/ast"
	"github.com/onflow/statusresolver/errors"
)

type StatusComputationState uint8

const (
	StatusNotComputed StatusComputationState = iota
	StatusComputing
	StatusComputed
)

func (s StatusComputationState) String() string {
	switch s {
	case StatusNotComputed:
		return "NotComputed"
	case StatusComputing:
		return "Computing"
	case StatusComputed:
		return "Computed"
	}

	panic(errors.NewUnreachableError())
}

// StatusComputationSession tracks the status computation state of the classes of one resolution request.
// States only ever advance: NotComputed -> Computing -> Computed.
type StatusComputationSession struct {
	computing *bitset.BitSet
	computed  *bitset.BitSet
	// localClasses restricts the session to a set of local classes, if not nil.
	// All other classes are considered computed
	localClasses *bitset.BitSet
}

func NewStatusComputationSession() *StatusComputationSession {
	return &StatusComputationSession{
		computing: bitset.New(0),
		computed:  bitset.New(0),
	}
}

// NewLocalClassStatusComputationSession returns a session which only computes the given local classes.
// All other classes are considered already computed.
func NewLocalClassStatusComputationSession(localClasses []ast.DeclarationID) *StatusComputationSession {
	session := NewStatusComputationSession()
	session.localClasses = bitset.New(0)
	for _, class := range localClasses {
		session.localClasses.Set(uint(class))
	}
	return session
}

func (s *StatusComputationSession) Get(class ast.DeclarationID) StatusComputationState {
	index := uint(class)

	switch {
	case s.localClasses != nil && !s.localClasses.Test(index),
		s.computed.Test(index):
		return StatusComputed

	case s.computing.Test(index):
		return StatusComputing

	default:
		return StatusNotComputed
	}
}

// StartComputing marks the class as being computed, if it was not computed yet,
// and returns the state before the call.
func (s *StatusComputationSession) StartComputing(class ast.DeclarationID) StatusComputationState {
	state := s.Get(class)
	if state == StatusNotComputed {
		s.computing.Set(uint(class))
	}
	return state
}

// EndComputing marks the class as computed.
func (s *StatusComputationSession) EndComputing(class ast.DeclarationID) {
	if s.localClasses != nil && !s.localClasses.Test(uint(class)) {
		return
	}
	index := uint(class)
	s.computing.Clear(index)
	s.computed.Set(index)
}
