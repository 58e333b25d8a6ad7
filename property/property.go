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

// Package property defines the plug-in contract the memo calls exactly
// once per new group: logical-property derivation. A core build can
// register several builders (cardinality, functional dependencies,
// distribution, ...); each gets its own slot in a group's cached property
// vector, in registration order.
package property

import "github.com/cascadeopt/cascade/node"

// Builder derives one kind of logical property. Derive must be pure: the
// same (typeTag, predicates, childProperties) must always yield an equal
// result, since the memo caches the result for the group's entire
// lifetime and never recomputes it on merge.
type Builder interface {
	// Derive computes this builder's property for a freshly created group,
	// given the expression that defined it. childProperties holds, for
	// each child group in order, the value this same builder previously
	// produced for that child.
	Derive(typeTag node.Type, predicates []*node.PredNode, childProperties []interface{}) interface{}

	// Name identifies the builder for diagnostics.
	Name() string
}
