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

package cascades

import (
	"fmt"
	"sort"

	"github.com/cascadeopt/cascade/ids"
	"github.com/cascadeopt/cascade/memo"
	"github.com/cascadeopt/cascade/node"
)

// maxJoinOrders bounds EnumerateJoinOrder's result, per spec.md §6.
const maxJoinOrders = 20

// JoinOrder is a distinct join shape reachable from a group: either a
// leaf (a base relation, named by the domain's Classifier) or a join of
// two sub-orders. The core has no built-in notion of "join" or "scan" —
// a Classifier supplies that domain knowledge.
type JoinOrder struct {
	Leaf        string
	Left, Right *JoinOrder
}

func leafOrder(name string) *JoinOrder { return &JoinOrder{Leaf: name} }

func joinOrder(left, right *JoinOrder) *JoinOrder { return &JoinOrder{Left: left, Right: right} }

func (j *JoinOrder) isLeaf() bool { return j.Left == nil && j.Right == nil }

// String renders a canonical form used both for display and for
// deduplication/sorting ("Join(t1,t2)", "t1").
func (j *JoinOrder) String() string {
	if j.isLeaf() {
		return j.Leaf
	}
	return fmt.Sprintf("Join(%s,%s)", j.Left, j.Right)
}

// Classifier supplies the domain knowledge EnumerateJoinOrder needs: how
// to recognize a join node's two join inputs, and how to recognize a
// base-relation leaf and name it. A type tag that is neither is treated
// as transparent (e.g. Project) and its single/multiple children are
// searched through instead.
type Classifier struct {
	// IsJoin reports whether typ is a join, and if so its two join-input
	// child indices.
	IsJoin func(typ node.Type) (left, right int, ok bool)
	// Leaf reports whether typ is a base relation, and if so its name
	// (e.g. the table name carried in a predicate).
	Leaf func(typ node.Type, predicates []*node.PredNode) (name string, ok bool)
}

// EnumerateJoinOrder returns every distinct join shape reachable from
// groupID, lexicographically sorted by String() and capped at
// maxJoinOrders. Cycle-safe: a group already being expanded on the
// current path contributes nothing to its own expansion (spec.md §9's
// "cyclic references through memo" edge case).
func EnumerateJoinOrder(mm *memo.Memo, groupID ids.GroupId, classifier Classifier) []*JoinOrder {
	seen := map[ids.GroupId]bool{}
	dedup := map[string]*JoinOrder{}
	for _, o := range expandJoinOrders(mm, groupID, classifier, seen) {
		dedup[o.String()] = o
	}
	out := make([]*JoinOrder, 0, len(dedup))
	for _, o := range dedup {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	if len(out) > maxJoinOrders {
		out = out[:maxJoinOrders]
	}
	return out
}

func expandJoinOrders(mm *memo.Memo, groupID ids.GroupId, c Classifier, onPath map[ids.GroupId]bool) []*JoinOrder {
	if onPath[groupID] {
		return nil
	}
	onPath[groupID] = true
	defer delete(onPath, groupID)

	var out []*JoinOrder
	for _, exprID := range mm.GetAllExprsInGroup(groupID) {
		expr := mm.GetExprMemoed(exprID)

		if li, ri, ok := c.IsJoin(expr.Type); ok && li < len(expr.Children) && ri < len(expr.Children) {
			lefts := expandJoinOrders(mm, expr.Children[li], c, onPath)
			rights := expandJoinOrders(mm, expr.Children[ri], c, onPath)
			for _, l := range lefts {
				for _, r := range rights {
					out = append(out, joinOrder(l, r))
				}
			}
			continue
		}

		predicates := make([]*node.PredNode, len(expr.Predicates))
		for i, p := range expr.Predicates {
			predicates[i] = mm.GetPred(p)
		}
		if name, ok := c.Leaf(expr.Type, predicates); ok {
			out = append(out, leafOrder(name))
			continue
		}

		for _, childGroup := range expr.Children {
			out = append(out, expandJoinOrders(mm, childGroup, c, onPath)...)
		}
	}
	return out
}
