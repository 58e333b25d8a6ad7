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
	"github.com/cascadeopt/cascade/cerrors"
	"github.com/cascadeopt/cascade/ids"
	"github.com/cascadeopt/cascade/node"
)

// BindingHook is invoked once per node while materializing a best-plan
// binding, after that node's own sub-tree has been resolved. It exists so
// callers (tracing, EXPLAIN output) can observe the winner metadata for
// every node touched without a second traversal.
type BindingHook func(groupID ids.GroupId, exprID ids.ExprId, winner Winner)

// GetBestGroupBinding walks the current winners starting at groupID and
// materializes the cheapest full physical plan found so far. hook may be
// nil. It fails if any group reachable from groupID has not settled on a
// WinnerFull yet.
func (m *Memo) GetBestGroupBinding(groupID ids.GroupId, hook BindingHook) (*node.PlanTree, error) {
	groupID = m.groupMerges.find(groupID)
	group := m.GetGroup(groupID)
	if group.Info.Winner.Kind != WinnerFull {
		return nil, cerrors.ErrNoWinner.New(int(groupID))
	}
	tree, err := m.bindExpr(group.Info.Winner.ExprId, hook)
	if err != nil {
		return nil, err
	}
	if hook != nil {
		hook(groupID, group.Info.Winner.ExprId, group.Info.Winner)
	}
	return tree, nil
}

func (m *Memo) bindExpr(exprID ids.ExprId, hook BindingHook) (*node.PlanTree, error) {
	expr := m.GetExprMemoed(exprID)
	children := make([]*node.PlanTree, len(expr.Children))
	for i, childGroup := range expr.Children {
		child, err := m.GetBestGroupBinding(childGroup, hook)
		if err != nil {
			return nil, err
		}
		children[i] = child
	}
	preds := make([]*node.PredNode, len(expr.Predicates))
	for i, p := range expr.Predicates {
		preds[i] = m.GetPred(p)
	}
	return &node.PlanTree{Type: expr.Type, Children: children, Predicates: preds}, nil
}

// GetAllExprsInGroup returns every expression id currently in groupID,
// sorted for deterministic iteration.
func (m *Memo) GetAllExprsInGroup(groupID ids.GroupId) []ids.ExprId {
	group := m.GetGroup(groupID)
	out := make([]ids.ExprId, 0, len(group.Exprs))
	for id := range group.Exprs {
		out = append(out, id)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// GetAllExprBindingsInGroup materializes every distinct one-level
// expansion of groupID's expressions, leaving nested groups as
// GroupId references rather than recursing.
func (m *Memo) GetAllExprBindingsInGroup(groupID ids.GroupId) []*MemoExpr {
	group := m.GetGroup(groupID)
	out := make([]*MemoExpr, 0, len(group.Exprs))
	for exprID := range group.Exprs {
		out = append(out, m.GetExprMemoed(exprID))
	}
	return out
}
