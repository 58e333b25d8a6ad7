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

package heuristics

import (
	"github.com/sirupsen/logrus"

	"github.com/cascadeopt/cascade/node"
	"github.com/cascadeopt/cascade/property"
)

// ApplyOrder fixes the traversal order the pre-pass walks the tree in.
type ApplyOrder int

const (
	// BottomUp rewrites a node's children before the node itself, so a
	// rule sees its inputs already normalized.
	BottomUp ApplyOrder = iota
	// TopDown rewrites a node before descending into its children, so a
	// rule sees the original shape of its inputs.
	TopDown
)

// Optimizer runs every registered rule over a materialized tree exactly
// once per node, in Order, then infers properties over the result. There
// is no memo, no cost model, and no fixpoint: this is a single
// normalizing rewrite meant to run ahead of the cascades search.
type Optimizer struct {
	rules    []Rule
	order    ApplyOrder
	builders []property.Builder
	props    map[*node.PlanNode][]interface{}
	log      *logrus.Logger
}

// New builds a heuristic optimizer firing rules (in order) over a tree
// walked in the given order, then deriving properties with builders.
func New(rules []Rule, order ApplyOrder, builders []property.Builder) *Optimizer {
	return &Optimizer{
		rules:    append([]Rule{}, rules...),
		order:    order,
		builders: append([]property.Builder{}, builders...),
		props:    make(map[*node.PlanNode][]interface{}),
		log:      logrus.StandardLogger(),
	}
}

// Optimize rewrites root and returns the normalized tree. Properties for
// every surviving node are computed as a side effect and retrievable via
// Properties.
func (o *Optimizer) Optimize(root *node.PlanNode) (*node.PlanNode, error) {
	out := o.optimizeInner(root)
	o.inferProperties(out)
	return out, nil
}

// Properties returns the cached property slice for n, computed by
// Optimize. Returns nil if n was never part of a tree Optimize processed;
// the cache is not cleared between calls.
func (o *Optimizer) Properties(n *node.PlanNode) []interface{} {
	return o.props[n]
}

func (o *Optimizer) optimizeInner(n *node.PlanNode) *node.PlanNode {
	switch o.order {
	case BottomUp:
		n = o.optimizeInputs(n)
		n = o.applyRules(n)
	case TopDown:
		n = o.applyRules(n)
		n = o.optimizeInputs(n)
	}
	return n
}

// optimizeInputs replaces every child of n with its recursively
// optimized form. Group references never appear here: the heuristic
// pass runs before anything enters the memo.
func (o *Optimizer) optimizeInputs(n *node.PlanNode) *node.PlanNode {
	changed := false
	newChildren := make([]node.PlanNodeOrGroup, len(n.Children))
	for i, c := range n.Children {
		if c.IsGroup() {
			panic("heuristics: cannot optimize a group reference outside the memo")
		}
		optimized := o.optimizeInner(c.PlanTree())
		newChildren[i] = node.Node(optimized)
		if optimized != c.PlanTree() {
			changed = true
		}
	}
	if !changed {
		return n
	}
	return node.NewPlanNode(n.Type, n.Predicates, newChildren...)
}

// applyRules tries every rule against n in registration order. Each
// rule fires at most once per node; a rule producing more than one
// replacement is a programming error in that rule, since there is no
// search here to choose among alternatives.
func (o *Optimizer) applyRules(n *node.PlanNode) *node.PlanNode {
	for _, r := range o.rules {
		picks, ok := matchAndPick(r.Matcher(), n)
		if !ok {
			continue
		}
		results := r.Apply(n, picks)
		if len(results) == 0 {
			continue
		}
		if len(results) > 1 {
			panic("heuristics: rule " + r.Name() + " produced more than one replacement")
		}
		o.log.Debugf("heuristics: rule %s fired on %s", r.Name(), n.Type)
		n = results[0]
	}
	return n
}

// inferProperties derives and caches properties for n and every node
// beneath it, children first, so a builder can read its child's already
// derived property slice.
func (o *Optimizer) inferProperties(n *node.PlanNode) []interface{} {
	if cached, ok := o.props[n]; ok {
		return cached
	}
	childProps := make([][]interface{}, len(n.Children))
	for i, c := range n.Children {
		if c.IsGroup() {
			panic("heuristics: cannot infer properties through a group reference")
		}
		childProps[i] = o.inferProperties(c.PlanTree())
	}
	props := make([]interface{}, len(o.builders))
	for bi, b := range o.builders {
		perChild := make([]interface{}, len(n.Children))
		for i := range n.Children {
			if bi < len(childProps[i]) {
				perChild[i] = childProps[i][bi]
			}
		}
		props[bi] = b.Derive(n.Type, n.Predicates, perChild)
	}
	o.props[n] = props
	return props
}
