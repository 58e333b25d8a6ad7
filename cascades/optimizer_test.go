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

package cascades_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cascadeopt/cascade/cascades"
	"github.com/cascadeopt/cascade/internal/testvocab"
	"github.com/cascadeopt/cascade/memo"
	"github.com/cascadeopt/cascade/node"
	"github.com/cascadeopt/cascade/rules"
)

func newTestOptimizer(props cascades.OptimizerProperties) *cascades.Optimizer {
	ruleSet := rules.NewSet(
		testvocab.JoinCommute{},
		testvocab.ScanToPhysScan{},
		testvocab.JoinToPhysNestedLoopJoin{},
		testvocab.ProjectToPhysProject{},
	)
	mm := memo.New()
	return cascades.New(mm, ruleSet, testvocab.RowCountCost{}, nil, props)
}

func TestOptimizeChoosesPhysicalWinner(t *testing.T) {
	opt := newTestOptimizer(cascades.OptimizerProperties{})
	tree := testvocab.Join(
		testvocab.PlanTree(testvocab.Scan("t1")),
		testvocab.PlanTree(testvocab.Scan("t2")),
		testvocab.Lit(true),
	)

	groupID := opt.StepOptimizeRel(tree)
	plan, err := opt.StepGetOptimizeRel(groupID, nil)
	require.NoError(t, err)

	require.Equal(t, testvocab.PhysNestedLoopJoinType, plan.Type)
	require.Len(t, plan.Children, 2)
	require.Equal(t, testvocab.PhysScanType, plan.Children[0].Type)
	require.Equal(t, testvocab.PhysScanType, plan.Children[1].Type)
}

func TestOptimizeMergesGroupWhenCommutedJoinAlreadyExists(t *testing.T) {
	opt := newTestOptimizer(cascades.OptimizerProperties{})
	mm := opt.Memo()

	_, canonicalGroup := mm.AddNewExpr(testvocab.Join(
		testvocab.PlanTree(testvocab.Scan("t2")),
		testvocab.PlanTree(testvocab.Scan("t1")),
		testvocab.Lit(true),
	))

	tree := testvocab.Join(
		testvocab.PlanTree(testvocab.Scan("t1")),
		testvocab.PlanTree(testvocab.Scan("t2")),
		testvocab.Lit(true),
	)
	groupID := opt.StepOptimizeRel(tree)

	require.Equal(t, mm.ReduceGroup(canonicalGroup), mm.ReduceGroup(groupID))

	plan, err := opt.StepGetOptimizeRel(groupID, nil)
	require.NoError(t, err)
	require.Equal(t, testvocab.PhysNestedLoopJoinType, plan.Type)
}

func TestJoinOrderEnumerationListsBothOrders(t *testing.T) {
	mm := memo.New()
	_, joinGroup := mm.AddNewExpr(testvocab.Join(
		testvocab.PlanTree(testvocab.Scan("t1")),
		testvocab.PlanTree(testvocab.Scan("t2")),
		testvocab.Lit(true),
	))
	mm.AddExprToGroup(testvocab.PlanTree(testvocab.Project(
		testvocab.PlanTree(testvocab.Join(
			testvocab.PlanTree(testvocab.Scan("t2")),
			testvocab.PlanTree(testvocab.Scan("t1")),
			testvocab.Lit(true),
		)),
		testvocab.List(),
	)), joinGroup)

	classifier := cascades.Classifier{
		IsJoin: func(typ node.Type) (int, int, bool) {
			if typ == testvocab.JoinType {
				return 0, 1, true
			}
			return 0, 0, false
		},
		Leaf: func(typ node.Type, predicates []*node.PredNode) (string, bool) {
			if typ != testvocab.ScanType {
				return "", false
			}
			return string(predicates[0].Data.(testvocab.TableName)), true
		},
	}

	orders := cascades.EnumerateJoinOrder(mm, joinGroup, classifier)
	require.Len(t, orders, 2)
	require.Equal(t, "Join(t1,t2)", orders[0].String())
	require.Equal(t, "Join(t2,t1)", orders[1].String())
}

func TestBudgetAwareTerminationStopsLogicalRules(t *testing.T) {
	opt := newTestOptimizer(cascades.OptimizerProperties{PartialExploreSpace: 1})
	tree := testvocab.Join(
		testvocab.PlanTree(testvocab.Scan("t1")),
		testvocab.PlanTree(testvocab.Scan("t2")),
		testvocab.Lit(true),
	)

	groupID := opt.StepOptimizeRel(tree)
	require.True(t, opt.Ctx.LogicalBudgetUsed)

	// Implementation rules still fire after the logical budget is spent,
	// so a winner is still reachable.
	_, err := opt.StepGetOptimizeRel(groupID, nil)
	require.NoError(t, err)
}
