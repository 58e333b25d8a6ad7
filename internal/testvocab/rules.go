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

package testvocab

import (
	"github.com/cascadeopt/cascade/ids"
	"github.com/cascadeopt/cascade/memo"
	"github.com/cascadeopt/cascade/node"
	"github.com/cascadeopt/cascade/rules"
)

// JoinCommute is a transformation rule: it produces the mirrored join,
// swapping child groups in place without touching the join condition.
// It never fires on its own output a second time because rule firing is
// tracked per expression id, not per shape.
type JoinCommute struct{}

func (JoinCommute) Matcher() rules.Matcher {
	return rules.MatchNode(JoinType, rules.PickOne(0), rules.PickOne(1))
}

func (JoinCommute) Apply(mm *memo.Memo, exprID ids.ExprId, binding rules.Binding) []node.PlanNodeOrGroup {
	expr := mm.GetExprMemoed(exprID)
	cond := mm.GetPred(expr.Predicates[0])
	return []node.PlanNodeOrGroup{
		node.Node(Join(node.GroupRef(binding.One[1]), node.GroupRef(binding.One[0]), cond)),
	}
}

func (JoinCommute) IsImplRule() bool { return false }
func (JoinCommute) Name() string     { return "join_commute" }

// ScanToPhysScan is the implementation rule turning a logical scan into
// its physical counterpart, one-for-one.
type ScanToPhysScan struct{}

func (ScanToPhysScan) Matcher() rules.Matcher { return rules.MatchNode(ScanType) }

func (ScanToPhysScan) Apply(mm *memo.Memo, exprID ids.ExprId, _ rules.Binding) []node.PlanNodeOrGroup {
	expr := mm.GetExprMemoed(exprID)
	table := mm.GetPred(expr.Predicates[0])
	return []node.PlanNodeOrGroup{node.Node(node.NewPlanNode(PhysScanType, []*node.PredNode{table}))}
}

func (ScanToPhysScan) IsImplRule() bool { return true }
func (ScanToPhysScan) Name() string     { return "scan_to_phys_scan" }

// JoinToPhysNestedLoopJoin is the implementation rule turning a logical
// join into a nested loop join, one-for-one.
type JoinToPhysNestedLoopJoin struct{}

func (JoinToPhysNestedLoopJoin) Matcher() rules.Matcher {
	return rules.MatchNode(JoinType, rules.PickOne(0), rules.PickOne(1))
}

func (JoinToPhysNestedLoopJoin) Apply(mm *memo.Memo, exprID ids.ExprId, binding rules.Binding) []node.PlanNodeOrGroup {
	expr := mm.GetExprMemoed(exprID)
	cond := mm.GetPred(expr.Predicates[0])
	return []node.PlanNodeOrGroup{
		node.Node(PhysNestedLoopJoin(node.GroupRef(binding.One[0]), node.GroupRef(binding.One[1]), cond)),
	}
}

func (JoinToPhysNestedLoopJoin) IsImplRule() bool { return true }
func (JoinToPhysNestedLoopJoin) Name() string     { return "join_to_phys_nested_loop_join" }

// ProjectToPhysProject is the implementation rule turning a logical
// projection into its physical counterpart, one-for-one.
type ProjectToPhysProject struct{}

func (ProjectToPhysProject) Matcher() rules.Matcher {
	return rules.MatchNode(ProjectType, rules.PickOne(0))
}

func (ProjectToPhysProject) Apply(mm *memo.Memo, exprID ids.ExprId, binding rules.Binding) []node.PlanNodeOrGroup {
	expr := mm.GetExprMemoed(exprID)
	exprList := mm.GetPred(expr.Predicates[0])
	return []node.PlanNodeOrGroup{
		node.Node(PhysProject(node.GroupRef(binding.One[0]), exprList)),
	}
}

func (ProjectToPhysProject) IsImplRule() bool { return true }
func (ProjectToPhysProject) Name() string     { return "project_to_phys_project" }
