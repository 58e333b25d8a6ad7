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

// Package benchmark exercises the optimizer against a join-chain shaped
// after the eight TPC-H tables, the same schema the teacher's own
// benchmark package loads data for, sampling process resource usage
// around the optimize call via gopsutil.
package benchmark

import (
	"github.com/cascadeopt/cascade/cascades"
	"github.com/cascadeopt/cascade/internal/testvocab"
	"github.com/cascadeopt/cascade/memo"
	"github.com/cascadeopt/cascade/node"
	"github.com/cascadeopt/cascade/rules"
)

// tpchTables is the left-deep join order the TPC-H schema's foreign keys
// naturally chain in: part/partsupp/supplier feed lineitem, which feeds
// orders, which feeds customer, which feeds nation, which feeds region.
var tpchTables = []string{
	"part", "partsupp", "supplier", "lineitem", "orders", "customer", "nation", "region",
}

// JoinChainTree builds a left-deep join tree over tpchTables, condition
// predicates left as a literal true (the benchmark is about join-order
// search, not predicate semantics).
func JoinChainTree() *node.PlanNode {
	tree := testvocab.Scan(tpchTables[0])
	for _, table := range tpchTables[1:] {
		tree = testvocab.Join(testvocab.PlanTree(tree), testvocab.PlanTree(testvocab.Scan(table)), testvocab.Lit(true))
	}
	return tree
}

// RuleSet returns the rule set the benchmark drives the optimizer with:
// every rule internal/testvocab defines, so the full join-commute plus
// implementation-rule search space is exercised.
func RuleSet() *rules.Set {
	return rules.NewSet(
		testvocab.JoinCommute{},
		testvocab.ScanToPhysScan{},
		testvocab.JoinToPhysNestedLoopJoin{},
		testvocab.ProjectToPhysProject{},
	)
}

// Run optimizes one fresh join-chain tree against a fresh memo and returns
// the optimizer so a caller can inspect Stats or Dump.
func Run(props cascades.OptimizerProperties) (*cascades.Optimizer, error) {
	opt := cascades.New(memo.New(), RuleSet(), testvocab.RowCountCost{}, nil, props)
	groupID := opt.StepOptimizeRel(JoinChainTree())
	if _, err := opt.StepGetOptimizeRel(groupID, nil); err != nil {
		return opt, err
	}
	return opt, nil
}
