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

package memo

import (
	"github.com/cascadeopt/cascade/ids"
	"github.com/cascadeopt/cascade/node"
)

// MemoExpr is an expression as stored in the memo: its children are group
// ids rather than sub-trees, since every child has already been reduced to
// its equivalence class.
type MemoExpr struct {
	Type       node.Type
	Children   []ids.GroupId
	Predicates []ids.PredId
}

// Equal reports structural equality used for hash-consing: same type, same
// child groups in the same order, same predicates in the same order.
func (e *MemoExpr) Equal(o *MemoExpr) bool {
	if e.Type != o.Type || len(e.Children) != len(o.Children) || len(e.Predicates) != len(o.Predicates) {
		return false
	}
	for i := range e.Children {
		if e.Children[i] != o.Children[i] {
			return false
		}
	}
	for i := range e.Predicates {
		if e.Predicates[i] != o.Predicates[i] {
			return false
		}
	}
	return true
}

// GroupInfo holds the data a property.Builder derives once per group, plus
// the current best physical plan for it. Properties holds one slot per
// registered builder, in registration order.
type GroupInfo struct {
	Properties []interface{}
	Winner     Winner
}

// Group is an equivalence class of memoized expressions: one or more
// expressions that are known to produce the same result. Exprs is keyed by
// ExprId rather than being a slice so that removing a duplicate during a
// group merge is O(1).
type Group struct {
	Exprs map[ids.ExprId]struct{}
	Info  GroupInfo
}

func newGroup() *Group {
	return &Group{
		Exprs: make(map[ids.ExprId]struct{}),
		Info:  GroupInfo{Winner: UnknownWinner()},
	}
}

func (g *Group) addExpr(id ids.ExprId) {
	g.Exprs[id] = struct{}{}
}

func (g *Group) removeExpr(id ids.ExprId) {
	delete(g.Exprs, id)
}
