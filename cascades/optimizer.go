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

// Package cascades is the cost-based search engine: it drives the memo
// through OptimizeGroup/OptimizeExpr/ExploreGroup/ApplyRule/OptimizeInput
// until every reachable group has settled on a winner (or the configured
// budget runs out first).
package cascades

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cascadeopt/cascade/cerrors"
	"github.com/cascadeopt/cascade/cost"
	"github.com/cascadeopt/cascade/ids"
	"github.com/cascadeopt/cascade/memo"
	"github.com/cascadeopt/cascade/node"
	"github.com/cascadeopt/cascade/property"
	"github.com/cascadeopt/cascade/rules"
)

// OptimizerProperties configures one Optimizer instance. Every field
// defaults to the Go zero value meaning "off"/"unlimited".
type OptimizerProperties struct {
	// PanicOnBudget makes the engine panic instead of degrading to
	// physical-only exploration once a budget is exhausted; used in
	// tests that want a hard failure on runaway search.
	PanicOnBudget bool

	// PartialExploreIter caps the number of task steps (every
	// optimize-group/expr, explore-group, apply-rule and optimize-input
	// entry) one FireOptimizeTasks call may take. Past it, logical rules
	// stop firing, and no rule fires for a group that already has a full
	// winner. Zero means unlimited.
	PartialExploreIter int

	// PartialExploreSpace caps the memo's estimated plan space before
	// logical rules stop firing. Zero means unlimited.
	PartialExploreSpace int

	// DisablePruning turns off upper-bound pruning in OptimizeInput,
	// useful when comparing costs for a test that needs every candidate
	// actually costed.
	DisablePruning bool

	// EnableTracing records an ApplyRule/DecideWinner Trace for every
	// decision the engine makes.
	EnableTracing bool
}

// OptimizerContext is the engine's mutable run state: whether a budget
// has kicked in yet, and how many rules have fired so far.
type OptimizerContext struct {
	LogicalBudgetUsed bool
	AllBudgetUsed     bool
	RulesApplied      int
}

// Stats counts how much work the engine did, for diagnostics and tests
// that assert on search effort rather than just the final plan.
type Stats struct {
	RuleMatchCount     map[int]int
	RuleTotalBindings  map[int]int
	ExploreGroupCount  int
	OptimizeGroupCount int
	OptimizeExprCount  int
	ApplyRuleCount     int
	OptimizeInputCount int
	Trace              map[ids.GroupId][]Trace
}

func newStats() Stats {
	return Stats{
		RuleMatchCount:    make(map[int]int),
		RuleTotalBindings: make(map[int]int),
		Trace:             make(map[ids.GroupId][]Trace),
	}
}

type taskKind int

const (
	taskOptimizeExpr taskKind = iota
	taskOptimizeInput
)

type taskDesc struct {
	kind   taskKind
	exprID ids.ExprId
	group  ids.GroupId
}

// Optimizer is the cascades engine bound to one memo, rule set and cost
// model. It is not safe for concurrent use: the search it drives is
// single-threaded recursion over a single Memo, matching that type's own
// concurrency contract.
type Optimizer struct {
	mm       *memo.Memo
	ruleSet  *rules.Set
	costModel cost.Model
	builders []property.Builder

	Ctx   OptimizerContext
	Props OptimizerProperties
	Stats Stats

	exploredGroup map[ids.GroupId]struct{}
	exploredExpr  map[taskDesc]struct{}
	firedRules    map[ids.ExprId]map[int]struct{}
	disabledRules map[int]struct{}

	stage int
	log   *logrus.Logger
}

// New builds an Optimizer over an already-constructed memo. builders
// must be the same property.Builder list the memo was constructed with,
// since StepClear rebuilds the memo from scratch using them.
func New(mm *memo.Memo, ruleSet *rules.Set, costModel cost.Model, builders []property.Builder, props OptimizerProperties) *Optimizer {
	return &Optimizer{
		mm:            mm,
		ruleSet:       ruleSet,
		costModel:     costModel,
		builders:      append([]property.Builder{}, builders...),
		Props:         props,
		Stats:         newStats(),
		exploredGroup: make(map[ids.GroupId]struct{}),
		exploredExpr:  make(map[taskDesc]struct{}),
		firedRules:    make(map[ids.ExprId]map[int]struct{}),
		disabledRules: make(map[int]struct{}),
		log:           logrus.StandardLogger(),
	}
}

// Memo returns the memo this optimizer is driving.
func (o *Optimizer) Memo() *memo.Memo { return o.mm }

// Cost returns the cost model this optimizer was built with.
func (o *Optimizer) Cost() cost.Model { return o.costModel }

// Rules returns every registered rule, in registration order.
func (o *Optimizer) Rules() []rules.Rule { return o.ruleSet.All() }

func (o *Optimizer) isRuleDisabled(ruleID int) bool {
	_, disabled := o.disabledRules[ruleID]
	return disabled
}

// DisableRuleByName turns a rule off by name; panics if no such rule is
// registered, matching the engine's "this is a configuration mistake"
// treatment of an unknown name.
func (o *Optimizer) DisableRuleByName(name string) {
	id := o.ruleIndex(name)
	o.disabledRules[id] = struct{}{}
}

// EnableRuleByName turns a rule back on by name; panics if unknown.
func (o *Optimizer) EnableRuleByName(name string) {
	id := o.ruleIndex(name)
	delete(o.disabledRules, id)
}

func (o *Optimizer) ruleIndex(name string) int {
	for i, r := range o.ruleSet.All() {
		if r.Name() == name {
			return i
		}
	}
	panic("cascades: rule " + name + " not found")
}

// StepClear resets the optimizer to a fresh, empty memo and clears every
// piece of per-run bookkeeping (fired rules, explored groups/exprs).
func (o *Optimizer) StepClear() {
	o.mm = memo.New(o.builders...)
	o.firedRules = make(map[ids.ExprId]map[int]struct{})
	o.exploredGroup = make(map[ids.GroupId]struct{})
	o.exploredExpr = make(map[taskDesc]struct{})
}

// StepClearWinner resets every group's winner but keeps the memo's
// interned expressions, so exploration does not need to redo interning.
func (o *Optimizer) StepClearWinner() {
	o.mm.ClearWinner()
	o.exploredGroup = make(map[ids.GroupId]struct{})
	o.exploredExpr = make(map[taskDesc]struct{})
}

// StepNextStage clears only the explored-group/expr bookkeeping, so a
// second optimization pass (e.g. with different rules enabled) revisits
// every group instead of skipping ones the previous stage already
// explored.
func (o *Optimizer) StepNextStage() {
	o.exploredGroup = make(map[ids.GroupId]struct{})
	o.exploredExpr = make(map[taskDesc]struct{})
}

// StepOptimizeRel interns root and drives the search to a fixed point
// (or until the budget runs out), returning the root's group id.
func (o *Optimizer) StepOptimizeRel(root *node.PlanNode) ids.GroupId {
	_, groupID := o.mm.AddNewExpr(root)
	o.FireOptimizeTasks(groupID)
	return groupID
}

// StepGetOptimizeRel materializes the best plan found so far for
// groupID. Returns cerrors.ErrNoWinner if no WinnerFull has been
// recorded for that group (or any group it transitively needs).
func (o *Optimizer) StepGetOptimizeRel(groupID ids.GroupId, hook memo.BindingHook) (*node.PlanTree, error) {
	tree, err := o.mm.GetBestGroupBinding(groupID, hook)
	if err != nil && cerrors.DebugAssertionsEnabled {
		o.log.WithError(err).Debug(o.Dump())
	}
	return tree, err
}

// FireOptimizeTasks runs one full search stage over groupID: every
// reachable group gets OptimizeGroup'd until nothing new is left to
// explore or the budget is exhausted.
func (o *Optimizer) FireOptimizeTasks(groupID ids.GroupId) {
	o.stage++
	run := &taskRun{opt: o, stage: o.stage}
	run.optimizeGroup(searchContext{groupID: groupID})
}

// Dump renders every group, its properties, its expressions, and the
// recorded traces that settled its winner, in group-id order.
func (o *Optimizer) Dump() string {
	var b strings.Builder
	groupIDs := o.mm.GetAllGroupIds()
	for _, groupID := range groupIDs {
		group := o.mm.GetGroup(groupID)
		winnerStr := "winner=<unknown>"
		switch group.Info.Winner.Kind {
		case memo.WinnerImpossible:
			winnerStr = "winner=<impossible>"
		case memo.WinnerFull:
			w := group.Info.Winner
			winnerStr = fmt.Sprintf("winner=%s weighted_cost=%v cost=%s stat=%s",
				w.ExprId, w.WeightedCost, o.costModel.ExplainCost(w.TotalCost), o.costModel.ExplainStatistics(w.Statistics))
		}
		fmt.Fprintf(&b, "group_id=%s %s\n", groupID, winnerStr)
		for i, builder := range o.builders {
			if i < len(group.Info.Properties) {
				fmt.Fprintf(&b, "  %s=%v\n", builder.Name(), group.Info.Properties[i])
			}
		}
		for _, exprID := range o.mm.GetAllExprsInGroup(groupID) {
			fmt.Fprintf(&b, "  expr_id=%s | %s\n", exprID, o.mm.GetExprMemoed(exprID))
		}
		traces := append([]Trace{}, o.Stats.Trace[groupID]...)
		sort.Slice(traces, func(i, j int) bool {
			si, stepI := traces[i].StageStep()
			sj, stepJ := traces[j].StageStep()
			if si != sj {
				return si < sj
			}
			return stepI < stepJ
		})
		for _, t := range traces {
			fmt.Fprintf(&b, "  %s\n", t)
		}
	}
	return b.String()
}
