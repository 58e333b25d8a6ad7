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

// Package heuristics implements the non-cost-based pre-pass optimizer: a
// single rewrite of a fully materialized tree, with no memo and no
// search. It exists to normalize a plan (collapse trivial operators,
// flatten associative ones, push dependent joins) before handing it to
// the cascades engine.
package heuristics

import (
	"github.com/cascadeopt/cascade/node"
	"github.com/cascadeopt/cascade/rules"
)

// Rule is the heuristic rewrite contract: narrower than rules.Rule
// because there is no memo here, so a capture is a fully materialized
// sub-tree rather than a group reference. Apply returns at most one
// replacement; firing more than once per node is never attempted.
type Rule interface {
	Matcher() rules.Matcher

	// Apply is called with the matched node itself (so a rule can read
	// its own predicates) plus every PickOne capture from the match.
	Apply(n *node.PlanNode, picks map[int]*node.PlanNode) []*node.PlanNode

	Name() string
}
