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
	"strings"

	"github.com/cascadeopt/cascade/ids"
	"github.com/cascadeopt/cascade/memo"
)

// Trace is one recorded decision made while optimizing a group. It is
// only populated when OptimizerProperties.EnableTracing is set; the
// engine pays the bookkeeping cost of collecting these only when a
// caller asked for them.
type Trace struct {
	Stage int
	Step  int
	Group ids.GroupId

	// Populated for an ApplyRule trace.
	AppliedExprId  ids.ExprId
	ProducedExprId ids.ExprId
	RuleId         int

	// Populated for a DecideWinner trace.
	ProposedWinner  memo.Winner
	ChildrenWinners []ids.ExprId
	IsDecideWinner  bool
}

// StageStep returns the (stage, step) pair traces sort by.
func (t Trace) StageStep() (int, int) { return t.Stage, t.Step }

func (t Trace) String() string {
	if t.IsDecideWinner {
		children := make([]string, len(t.ChildrenWinners))
		for i, c := range t.ChildrenWinners {
			children[i] = c.String()
		}
		return fmt.Sprintf(
			"step=%d/%d decide_winner group_id=%s proposed_winner_expr=%s children_winner_exprs=[%s] total_weighted_cost=%v",
			t.Stage, t.Step, t.Group, t.ProposedWinner.ExprId, strings.Join(children, ","), t.ProposedWinner.WeightedCost,
		)
	}
	return fmt.Sprintf(
		"step=%d/%d apply_rule group_id=%s applied_expr_id=%s produced_expr_id=%s rule_id=%d",
		t.Stage, t.Step, t.Group, t.AppliedExprId, t.ProducedExprId, t.RuleId,
	)
}
