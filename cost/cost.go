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

// Package cost defines the plug-in contract the cascades engine calls to
// cost a candidate physical expression and to derive the output
// statistics its parents will be costed against.
package cost

import (
	"github.com/cascadeopt/cascade/ids"
	"github.com/cascadeopt/cascade/node"
)

// Context carries the identifiers surrounding one costing call: the
// expression being costed, the group it belongs to, and that
// expression's child groups in order.
type Context struct {
	GroupId  ids.GroupId
	ExprId   ids.ExprId
	Children []ids.GroupId
}

// Model is the cost/statistics plug-in. Sum must be associative over the
// reduction OptimizeInput uses (operator cost folded with each child's
// already-settled total cost); WeightedCost must be monotonic in child
// costs so that pruning by upper bound is sound.
type Model interface {
	// Zero is the identity cost: a lower bound used for children that
	// have not been resolved yet.
	Zero() interface{}

	// ComputeOperationCost returns the cost attributable to this operator
	// alone, given its children's already-derived statistics.
	ComputeOperationCost(typeTag node.Type, predicates []*node.PredNode, childStats []interface{}, ctx Context) interface{}

	// DeriveStatistics returns output-row statistics for typeTag, used to
	// cost this expression's parent.
	DeriveStatistics(typeTag node.Type, predicates []*node.PredNode, childStats []interface{}, ctx Context) interface{}

	// Sum folds an operator's own cost together with its children's
	// costs into one total.
	Sum(operationCost interface{}, childCosts []interface{}) interface{}

	// WeightedCost reduces a Cost to the scalar used for winner
	// comparison and for upper-bound pruning.
	WeightedCost(interface{}) float64

	// ExplainCost and ExplainStatistics render human-readable strings for
	// traces and dumps.
	ExplainCost(interface{}) string
	ExplainStatistics(interface{}) string
}
