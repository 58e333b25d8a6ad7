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

package memo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cascadeopt/cascade/internal/testvocab"
	"github.com/cascadeopt/cascade/memo"
	"github.com/cascadeopt/cascade/node"
)

func tru() *node.PredNode { return testvocab.Lit(true) }

func TestAddPredicateDedupes(t *testing.T) {
	m := memo.New()
	predNode := testvocab.List(testvocab.Lit(int64(233)))
	p1 := m.AddNewPred(predNode)
	p2 := m.AddNewPred(testvocab.List(testvocab.Lit(int64(233))))
	require.Equal(t, p1, p2)
}

func TestGroupMergeSameGroupTwoExprs(t *testing.T) {
	m := memo.New()
	_, groupID := m.AddNewExpr(testvocab.Join(testvocab.PlanTree(testvocab.Scan("t1")), testvocab.PlanTree(testvocab.Scan("t2")), tru()))
	m.AddExprToGroup(testvocab.PlanTree(testvocab.Join(testvocab.PlanTree(testvocab.Scan("t2")), testvocab.PlanTree(testvocab.Scan("t1")), tru())), groupID)
	require.Len(t, m.GetGroup(groupID).Exprs, 2)
}

func TestGroupMergeIdenticalTreesShareGroup(t *testing.T) {
	m := memo.New()
	build := func() *node.PlanNode {
		return testvocab.Project(
			testvocab.PlanTree(testvocab.Join(testvocab.PlanTree(testvocab.Scan("t1")), testvocab.PlanTree(testvocab.Scan("t2")), tru())),
			testvocab.List(testvocab.Lit(int64(1))),
		)
	}
	_, group1 := m.AddNewExpr(build())
	_, group2 := m.AddNewExpr(build())
	require.Equal(t, group1, group2)
}

func TestGroupMergeChildMergeCascadesToParent(t *testing.T) {
	m := memo.New()
	expr1 := testvocab.Project(testvocab.PlanTree(testvocab.Scan("t1")), testvocab.List(testvocab.Lit(int64(1))))
	expr2 := testvocab.Project(testvocab.PlanTree(testvocab.Scan("t1-alias")), testvocab.List(testvocab.Lit(int64(1))))
	_, group1 := m.AddNewExpr(expr1)
	_, group2 := m.AddNewExpr(expr2)
	require.NotEqual(t, group1, group2)

	_, scanT1Group := m.AddNewExpr(testvocab.Scan("t1"))
	m.AddExprToGroup(testvocab.PlanTree(testvocab.Scan("t1-alias")), scanT1Group)

	require.Equal(t, m.ReduceGroup(group1), m.ReduceGroup(group2))
}

func TestGroupMergeCascadesThroughTwoLevels(t *testing.T) {
	m := memo.New()
	expr1 := testvocab.Project(
		testvocab.PlanTree(testvocab.Project(testvocab.PlanTree(testvocab.Scan("t1")), testvocab.List(testvocab.Lit(int64(1))))),
		testvocab.List(testvocab.Lit(int64(2))),
	)
	expr2 := testvocab.Project(
		testvocab.PlanTree(testvocab.Project(testvocab.PlanTree(testvocab.Scan("t1-alias")), testvocab.List(testvocab.Lit(int64(1))))),
		testvocab.List(testvocab.Lit(int64(2))),
	)
	_, group1 := m.AddNewExpr(expr1)
	_, group2 := m.AddNewExpr(expr2)
	require.NotEqual(t, group1, group2)

	_, scanT1Group := m.AddNewExpr(testvocab.Scan("t1"))
	m.AddExprToGroup(testvocab.PlanTree(testvocab.Scan("t1-alias")), scanT1Group)

	require.Equal(t, m.ReduceGroup(group1), m.ReduceGroup(group2))
}

func TestGroupMergeViaGroupRefBinding(t *testing.T) {
	m := memo.New()
	inner := func(table string) *node.PlanNode {
		return testvocab.Project(testvocab.PlanTree(testvocab.Scan(table)), testvocab.List(testvocab.Lit(int64(1))))
	}
	expr1 := testvocab.Project(testvocab.PlanTree(inner("t1")), testvocab.List(testvocab.Lit(int64(2))))
	expr2 := testvocab.Project(testvocab.PlanTree(inner("t1-alias")), testvocab.List(testvocab.Lit(int64(2))))
	expr1ID, _ := m.AddNewExpr(expr1)
	expr2ID, _ := m.AddNewExpr(expr2)

	_, scanT1Group := m.AddNewExpr(testvocab.Scan("t1"))

	expr2Memoed := m.GetExprMemoed(expr2ID)
	middleProj2 := expr2Memoed.Children[0]

	binding := testvocab.Project(testvocab.Group(scanT1Group), testvocab.List(testvocab.Lit(int64(1))))
	m.AddExprToGroup(testvocab.PlanTree(binding), middleProj2)

	require.Equal(t, m.GetGroupId(expr1ID), m.GetGroupId(expr2ID))
}
