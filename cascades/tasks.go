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

	"github.com/cascadeopt/cascade/cerrors"
	"github.com/cascadeopt/cascade/cost"
	"github.com/cascadeopt/cascade/ids"
	"github.com/cascadeopt/cascade/memo"
	"github.com/cascadeopt/cascade/node"
	"github.com/cascadeopt/cascade/rules"
)

func costContext(groupID ids.GroupId, exprID ids.ExprId, children []ids.GroupId) cost.Context {
	return cost.Context{GroupId: groupID, ExprId: exprID, Children: append([]ids.GroupId{}, children...)}
}

// searchContext threads a group and, optionally, an upper bound on
// total weighted cost through the five mutually recursive tasks below.
// A nil upper bound means "unbounded": no pruning decision can be made.
type searchContext struct {
	groupID    ids.GroupId
	upperBound *float64
}

// taskRun is the per-FireOptimizeTasks-call state: a step counter (used
// both for the partial-explore-iter budget and for ordering traces) and
// a trace-step counter per group.
type taskRun struct {
	opt        *Optimizer
	stage      int
	steps      int
	traceSteps map[ids.GroupId]int
}

func (r *taskRun) nextTraceStep(groupID ids.GroupId) int {
	if r.traceSteps == nil {
		r.traceSteps = make(map[ids.GroupId]int)
	}
	r.traceSteps[groupID]++
	return r.traceSteps[groupID]
}

// optimizeGroup explores every expression in a group exactly once:
// physical expressions are sent straight to optimizeInput (to settle
// their cost), logical expressions are sent to optimizeExpr (to apply
// transformation/implementation rules).
func (r *taskRun) optimizeGroup(ctx searchContext) {
	r.steps++
	r.opt.Stats.OptimizeGroupCount++
	groupID := ctx.groupID

	if _, done := r.opt.exploredGroup[groupID]; done {
		return
	}
	r.opt.exploredGroup[groupID] = struct{}{}

	exprs := r.opt.mm.GetAllExprsInGroup(groupID)
	for _, exprID := range exprs {
		expr := r.opt.mm.GetExprMemoed(exprID)
		if !expr.Type.IsLogical() {
			r.optimizeInput(searchContext{groupID: groupID, upperBound: ctx.upperBound}, exprID)
		}
	}
	for _, exprID := range exprs {
		expr := r.opt.mm.GetExprMemoed(exprID)
		if expr.Type.IsLogical() {
			r.optimizeExpr(searchContext{groupID: groupID, upperBound: ctx.upperBound}, exprID, false)
		}
	}
}

// optimizeExpr tries every enabled rule whose matcher's top-level shape
// fits expr's type tag, exploring every child group first so the rule
// has alternatives to match against. Each rule fires at most once per
// expression, tracked via firedRules.
func (r *taskRun) optimizeExpr(ctx searchContext, exprID ids.ExprId, exploring bool) {
	r.steps++
	r.opt.Stats.OptimizeExprCount++
	groupID := ctx.groupID
	desc := taskDesc{kind: taskOptimizeExpr, exprID: exprID, group: groupID}
	if _, started := r.opt.exploredExpr[desc]; started {
		return
	}
	r.opt.exploredExpr[desc] = struct{}{}
	// The key only guards against re-entering this expression while it is
	// in flight; once this call returns, a later call (such as the
	// non-exploring pass after an exploring one) may run it again, and
	// firedRules keeps each rule from firing twice.
	defer delete(r.opt.exploredExpr, desc)

	expr := r.opt.mm.GetExprMemoed(exprID)
	for ruleID, rule := range r.opt.Rules() {
		if r.isRuleFired(exprID, ruleID) {
			continue
		}
		if exploring && rule.IsImplRule() {
			continue
		}
		if (r.opt.Ctx.LogicalBudgetUsed || r.opt.Ctx.AllBudgetUsed) && !rule.IsImplRule() {
			continue
		}
		if r.opt.Ctx.AllBudgetUsed && r.opt.mm.GetGroup(groupID).Info.Winner.Kind == memo.WinnerFull {
			break
		}
		if !rules.TopMatches(rule.Matcher(), expr.Type) {
			continue
		}
		for _, childGroup := range expr.Children {
			r.exploreGroup(searchContext{groupID: childGroup, upperBound: ctx.upperBound})
		}
		r.applyRule(searchContext{groupID: groupID, upperBound: ctx.upperBound}, ruleID, exprID, exploring)
	}
}

// exploreGroup applies rules to every logical expression of a group
// purely to widen the group's alternatives (exploring=true skips impl
// rules), without trying to cost anything.
func (r *taskRun) exploreGroup(ctx searchContext) {
	r.steps++
	r.opt.Stats.ExploreGroupCount++
	for _, exprID := range r.opt.mm.GetAllExprsInGroup(ctx.groupID) {
		if r.opt.mm.GetExprMemoed(exprID).Type.IsLogical() {
			r.optimizeExpr(searchContext{groupID: ctx.groupID, upperBound: ctx.upperBound}, exprID, true)
		}
	}
}

func (r *taskRun) isRuleFired(exprID ids.ExprId, ruleID int) bool {
	fired, ok := r.opt.firedRules[exprID]
	if !ok {
		return false
	}
	_, yes := fired[ruleID]
	return yes
}

func (r *taskRun) markRuleFired(exprID ids.ExprId, ruleID int) {
	if r.opt.firedRules[exprID] == nil {
		r.opt.firedRules[exprID] = make(map[int]struct{})
	}
	r.opt.firedRules[exprID][ruleID] = struct{}{}
}

// applyRule enumerates every binding of rule against exprID, applies it,
// and interns whatever comes back into exprID's group — scheduling a
// follow-up optimizeExpr (for a logical result) or optimizeInput (for a
// physical result) for each produced expression. Stops early once a
// budget has been exhausted and the group already has a full winner.
func (r *taskRun) applyRule(ctx searchContext, ruleID int, exprID ids.ExprId, exploring bool) {
	r.steps++
	r.opt.Stats.ApplyRuleCount++
	groupID := ctx.groupID

	if r.isRuleFired(exprID, ruleID) {
		return
	}
	if r.opt.isRuleDisabled(ruleID) {
		return
	}
	r.markRuleFired(exprID, ruleID)

	rule := r.opt.Rules()[ruleID]
	bindings := rules.MatchAndPick(rule.Matcher(), r.opt.mm, exprID)
	if len(bindings) > 0 {
		r.opt.Stats.RuleMatchCount[ruleID]++
	}
	if len(bindings) >= rules.MaxBindings {
		r.opt.log.Warn(cerrors.ErrRuleBindingTooLarge.New(rule.Name(), len(bindings), rules.MaxBindings))
	}

	for _, binding := range bindings {
		r.opt.Stats.RuleTotalBindings[ruleID]++

		if !r.opt.Ctx.LogicalBudgetUsed && r.opt.Props.PartialExploreSpace > 0 {
			if planSpace := r.opt.mm.EstimatedPlanSpace(); planSpace > r.opt.Props.PartialExploreSpace {
				reason := fmt.Sprintf("plan space %d exceeds PartialExploreSpace %d", planSpace, r.opt.Props.PartialExploreSpace)
				r.opt.log.Warn(cerrors.ErrBudgetExhausted.New(reason))
				r.opt.Ctx.LogicalBudgetUsed = true
				if r.opt.Props.PanicOnBudget {
					panic(cerrors.ErrBudgetExhausted.New(reason))
				}
			}
		}
		if !r.opt.Ctx.AllBudgetUsed && r.opt.Props.PartialExploreIter > 0 {
			if r.steps > r.opt.Props.PartialExploreIter {
				reason := fmt.Sprintf("step %d exceeds PartialExploreIter %d", r.steps, r.opt.Props.PartialExploreIter)
				r.opt.log.Warn(cerrors.ErrBudgetExhausted.New(reason))
				r.opt.Ctx.AllBudgetUsed = true
				if r.opt.Props.PanicOnBudget {
					panic(cerrors.ErrBudgetExhausted.New(reason))
				}
			}
		}

		if (r.opt.Ctx.LogicalBudgetUsed || r.opt.Ctx.AllBudgetUsed) && !rule.IsImplRule() {
			continue
		}
		if r.opt.Ctx.AllBudgetUsed && r.opt.mm.GetGroup(groupID).Info.Winner.Kind == memo.WinnerFull {
			break
		}

		produced := rule.Apply(r.opt.mm, exprID, binding)
		for _, out := range produced {
			r.opt.Ctx.RulesApplied++
			producedExprID, isNew := r.opt.mm.AddExprToGroup(out, groupID)
			if !isNew {
				// The produced expression was already memoized (in this
				// group, or in another group this call merged into it), so
				// there is nothing new to schedule.
				continue
			}
			if r.opt.Props.EnableTracing {
				r.opt.Stats.Trace[groupID] = append(r.opt.Stats.Trace[groupID], Trace{
					Stage: r.stage, Step: r.nextTraceStep(groupID), Group: groupID,
					AppliedExprId: exprID, ProducedExprId: producedExprID, RuleId: ruleID,
				})
			}
			if out.IsGroup() {
				continue
			}
			if out.PlanTree().Type.IsLogical() {
				r.optimizeExpr(searchContext{groupID: groupID, upperBound: ctx.upperBound}, producedExprID, exploring)
			} else {
				r.optimizeInput(searchContext{groupID: groupID, upperBound: ctx.upperBound}, producedExprID)
			}
		}
	}
}

func (r *taskRun) updateWinnerIfBetter(groupID ids.GroupId, proposed memo.Winner) {
	current := r.opt.mm.GetGroup(groupID).Info.Winner
	better := current.Kind != memo.WinnerFull || current.WeightedCost > proposed.WeightedCost
	if !better {
		return
	}
	info := r.opt.mm.GetGroup(groupID).Info
	info.Winner = proposed
	r.opt.mm.UpdateGroupInfo(groupID, info)
}

// statsAndCosts gathers, for expr's children, the statistics and costs
// of their current winners (Zero-cost/nil-stats for a child with no
// winner yet), then computes expr's own operation cost and the running
// total.
func (r *taskRun) statsAndCosts(groupID ids.GroupId, exprID ids.ExprId, expr *memo.MemoExpr, predicates []*node.PredNode) (childStats []interface{}, childCosts []interface{}, totalCost, operationCost interface{}) {
	costModel := r.opt.costModel
	ctx := costContext(groupID, exprID, expr.Children)

	childStats = make([]interface{}, len(expr.Children))
	childCosts = make([]interface{}, len(expr.Children))
	for i, childGroup := range expr.Children {
		winner := r.opt.mm.GetGroup(childGroup).Info.Winner
		if winner.Kind == memo.WinnerFull {
			childStats[i] = winner.Statistics
			childCosts[i] = winner.TotalCost
		} else {
			childCosts[i] = costModel.Zero()
		}
	}
	operationCost = costModel.ComputeOperationCost(expr.Type, predicates, childStats, ctx)
	totalCost = costModel.Sum(operationCost, childCosts)
	return
}

// optimizeInput settles the cost of a physical expression: it recurses
// into each child group (bounding the search with an upper bound derived
// from the best total cost seen so far, unless pruning is disabled),
// then proposes a winner for groupID if the settled cost beats the
// current one.
func (r *taskRun) optimizeInput(ctx searchContext, exprID ids.ExprId) {
	r.steps++
	r.opt.Stats.OptimizeInputCount++
	groupID := ctx.groupID
	desc := taskDesc{kind: taskOptimizeInput, exprID: exprID, group: groupID}
	if _, started := r.opt.exploredExpr[desc]; started {
		return
	}
	r.opt.exploredExpr[desc] = struct{}{}

	expr := r.opt.mm.GetExprMemoed(exprID)
	costModel := r.opt.costModel

	predicates := make([]*node.PredNode, len(expr.Predicates))
	for i, p := range expr.Predicates {
		predicates[i] = r.opt.mm.GetPred(p)
	}

	var winnerUpperBound *float64
	if w := r.opt.mm.GetGroup(groupID).Info.Winner; w.Kind == memo.WinnerFull {
		v := w.WeightedCost
		winnerUpperBound = &v
	}
	upperBound := minBoundPtr(ctx.upperBound, winnerUpperBound)

	for childIdx := range expr.Children {
		_, childCosts, totalCost, _ := r.statsAndCosts(groupID, exprID, expr, predicates)

		var childUpperBound *float64
		if !r.opt.Props.DisablePruning {
			costSoFar := costModel.WeightedCost(totalCost)
			if upperBound != nil {
				if *upperBound < costSoFar {
					return
				}
				childCurrentCost := costModel.WeightedCost(childCosts[childIdx])
				v := *upperBound - costSoFar + childCurrentCost
				childUpperBound = &v
			}
		}

		childGroup := expr.Children[childIdx]
		r.optimizeGroup(searchContext{groupID: childGroup, upperBound: childUpperBound})

		// A child without a full winner (WinnerUnknown because its own
		// search was pruned, or WinnerImpossible) leaves this expression
		// without a cost, so bail out without proposing a winner. The
		// parent group is not marked WinnerImpossible; it keeps its
		// current winner (WinnerUnknown unless another expression wins).
		if r.opt.mm.GetGroup(childGroup).Info.Winner.Kind != memo.WinnerFull {
			return
		}
	}

	childStats, _, totalCost, operationCost := r.statsAndCosts(groupID, exprID, expr, predicates)
	statistics := costModel.DeriveStatistics(expr.Type, predicates, childStats, costContext(groupID, exprID, expr.Children))

	proposed := memo.FullWinner(exprID, operationCost, totalCost, costModel.WeightedCost(totalCost), statistics)

	if r.opt.Props.EnableTracing {
		children := make([]ids.ExprId, 0, len(expr.Children))
		for _, childGroup := range expr.Children {
			if w := r.opt.mm.GetGroup(childGroup).Info.Winner; w.Kind == memo.WinnerFull {
				children = append(children, w.ExprId)
			}
		}
		r.opt.Stats.Trace[groupID] = append(r.opt.Stats.Trace[groupID], Trace{
			Stage: r.stage, Step: r.nextTraceStep(groupID), Group: groupID,
			IsDecideWinner: true, ProposedWinner: proposed, ChildrenWinners: children,
		})
	}
	r.updateWinnerIfBetter(groupID, proposed)
}

func minBoundPtr(a, b *float64) *float64 {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case *a < *b:
		return a
	default:
		return b
	}
}
