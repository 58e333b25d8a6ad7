// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package node defines the boundary vocabulary the core consumes from a
// frontend: plan-node and predicate type tags, and the input-form trees
// built out of them. The core never interprets a Type's meaning; it only
// needs equality, a stable Discriminant for MatchDiscriminant rules, and
// an IsLogical bit.
package node

import "fmt"

// Type is supplied by the host. It must be safe to use as a map key
// (comparable), and Discriminant must be stable for all type tags sharing
// the same "kind" (e.g. all join variants), so that a rules.Matcher using
// MatchDiscriminant can match any of them.
type Type interface {
	fmt.Stringer

	// IsLogical reports whether this is a logical (pre-implementation) node
	// type, as opposed to a physical (executable) one.
	IsLogical() bool

	// Discriminant groups related type tags together for MatchDiscriminant.
	// Two type tags that should be matched interchangeably by a
	// MatchDiscriminant matcher must return the same Discriminant.
	Discriminant() string
}

// PredType is the analogous vocabulary for predicate nodes. Predicates
// carry no IsLogical bit: they are always pure, side-effect-free scalar
// expressions.
type PredType interface {
	fmt.Stringer
}
