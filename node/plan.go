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

package node

import (
	"strings"

	"github.com/cascadeopt/cascade/ids"
)

// PlanNode is the input form of a plan tree: constructed by the frontend,
// consumed once by the memo on interning, never retained afterwards.
// Children are either full sub-trees or direct references to an existing
// memo group.
type PlanNode struct {
	Type       Type
	Children   []PlanNodeOrGroup
	Predicates []*PredNode
}

// NewPlanNode builds a plan tree node out of already-constructed children.
func NewPlanNode(typ Type, predicates []*PredNode, children ...PlanNodeOrGroup) *PlanNode {
	return &PlanNode{Type: typ, Children: children, Predicates: predicates}
}

func (n *PlanNode) String() string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(n.Type.String())
	for _, p := range n.Predicates {
		b.WriteByte(' ')
		b.WriteString(p.String())
	}
	for _, c := range n.Children {
		b.WriteByte(' ')
		b.WriteString(c.String())
	}
	b.WriteByte(')')
	return b.String()
}

// PlanNodeOrGroup is a tagged union: either an input-form sub-tree still
// to be interned, or a direct reference to an existing memo group. It
// appears both as a child slot in PlanNode and as the result rules.Rule.Apply
// returns (a produced expression can be a brand new tree, or simply point
// back at a pre-existing group).
type PlanNodeOrGroup struct {
	node  *PlanNode
	group ids.GroupId
	isRef bool
}

// Node wraps a sub-tree as a PlanNodeOrGroup.
func Node(n *PlanNode) PlanNodeOrGroup {
	return PlanNodeOrGroup{node: n}
}

// GroupRef wraps a group id as a PlanNodeOrGroup.
func GroupRef(g ids.GroupId) PlanNodeOrGroup {
	return PlanNodeOrGroup{group: g, isRef: true}
}

// IsGroup reports whether this is a direct group reference rather than a
// sub-tree.
func (p PlanNodeOrGroup) IsGroup() bool { return p.isRef }

// Group returns the referenced group id. Panics if IsGroup is false.
func (p PlanNodeOrGroup) Group() ids.GroupId {
	if !p.isRef {
		panic("node: PlanNodeOrGroup is a sub-tree, not a group reference")
	}
	return p.group
}

// PlanTree returns the wrapped sub-tree. Panics if IsGroup is true.
func (p PlanNodeOrGroup) PlanTree() *PlanNode {
	if p.isRef {
		panic("node: PlanNodeOrGroup is a group reference, not a sub-tree")
	}
	return p.node
}

func (p PlanNodeOrGroup) String() string {
	if p.isRef {
		return p.group.String()
	}
	return p.node.String()
}

// PlanTree is the fully materialized output form: every child is itself a
// PlanTree, never a group reference. Memo.GetBestGroupBinding produces
// these.
type PlanTree struct {
	Type       Type
	Children   []*PlanTree
	Predicates []*PredNode
}

func (n *PlanTree) String() string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(n.Type.String())
	for _, p := range n.Predicates {
		b.WriteByte(' ')
		b.WriteString(p.String())
	}
	for _, c := range n.Children {
		b.WriteByte(' ')
		b.WriteString(c.String())
	}
	b.WriteByte(')')
	return b.String()
}
