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

//go:generate stringer -type=ResolvePhase -trimprefix=ResolvePhase

// ResolvePhase marks how far a declaration has been resolved.
// Phases only ever advance.
type ResolvePhase uint8

const (
	ResolvePhaseRawBuilder ResolvePhase = iota
	ResolvePhaseTypes
	ResolvePhaseStatus
	ResolvePhaseBodyResolve
)

func (p ResolvePhase) IsBefore(other ResolvePhase) bool {
	return p < other
}
