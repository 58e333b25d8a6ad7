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

package heuristics_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cascadeopt/cascade/heuristics"
	"github.com/cascadeopt/cascade/internal/testvocab"
	"github.com/cascadeopt/cascade/node"
	"github.com/cascadeopt/cascade/property"
	"github.com/cascadeopt/cascade/rules"
)

// physicalizeScan rewrites every logical scan into its physical form,
// unconditionally. It never recurses, so it is safe under either
// traversal order.
type physicalizeScan struct{}

func (physicalizeScan) Matcher() rules.Matcher { return rules.MatchNode(testvocab.ScanType) }

func (physicalizeScan) Apply(n *node.PlanNode, _ map[int]*node.PlanNode) []*node.PlanNode {
	table := string(n.Predicates[0].Data.(testvocab.TableName))
	return []*node.PlanNode{testvocab.PhysScan(table)}
}

func (physicalizeScan) Name() string { return "physicalize_scan" }

// swapJoinSides produces the commuted form of a join. Its output is again
// a logical JoinType that its matcher accepts; it still fires exactly once
// because the optimizer tries each rule once per node and the join's
// children are scans.
type swapJoinSides struct{ fired int }

func (r *swapJoinSides) Matcher() rules.Matcher {
	return rules.MatchNode(testvocab.JoinType, rules.PickOne(0), rules.PickOne(1))
}

func (r *swapJoinSides) Apply(n *node.PlanNode, picks map[int]*node.PlanNode) []*node.PlanNode {
	r.fired++
	return []*node.PlanNode{testvocab.Join(node.Node(picks[1]), node.Node(picks[0]), n.Predicates[0])}
}

func (r *swapJoinSides) Name() string { return "swap_join_sides" }

type rowCount struct{}

func (rowCount) Name() string { return "row_count" }

func (rowCount) Derive(typeTag node.Type, _ []*node.PredNode, childProperties []interface{}) interface{} {
	if typeTag.Discriminant() == "scan" {
		return 100
	}
	total := 0
	for _, c := range childProperties {
		if c != nil {
			total += c.(int)
		}
	}
	return total
}

func TestOptimizeBottomUpPhysicalizesEveryScan(t *testing.T) {
	tree := testvocab.Join(
		testvocab.PlanTree(testvocab.Scan("t1")),
		testvocab.PlanTree(testvocab.Scan("t2")),
		testvocab.Lit(true),
	)
	opt := heuristics.New([]heuristics.Rule{physicalizeScan{}}, heuristics.BottomUp, nil)

	out, err := opt.Optimize(tree)
	require.NoError(t, err)
	require.Equal(t, testvocab.PhysScanType, out.Children[0].PlanTree().Type)
	require.Equal(t, testvocab.PhysScanType, out.Children[1].PlanTree().Type)
}

func TestOptimizeTopDownAppliesBeforeDescending(t *testing.T) {
	tree := testvocab.Join(
		testvocab.PlanTree(testvocab.Scan("t1")),
		testvocab.PlanTree(testvocab.Scan("t2")),
		testvocab.Lit(true),
	)
	r := &swapJoinSides{}
	opt := heuristics.New([]heuristics.Rule{r}, heuristics.TopDown, nil)

	out, err := opt.Optimize(tree)
	require.NoError(t, err)
	require.Equal(t, 1, r.fired)
	require.Equal(t, "t2", string(out.Children[0].PlanTree().Predicates[0].Data.(testvocab.TableName)))
	require.Equal(t, "t1", string(out.Children[1].PlanTree().Predicates[0].Data.(testvocab.TableName)))
}

func TestOptimizeInfersPropertiesBottomUp(t *testing.T) {
	tree := testvocab.Join(
		testvocab.PlanTree(testvocab.Scan("t1")),
		testvocab.PlanTree(testvocab.Scan("t2")),
		testvocab.Lit(true),
	)
	opt := heuristics.New(nil, heuristics.BottomUp, []property.Builder{rowCount{}})

	out, err := opt.Optimize(tree)
	require.NoError(t, err)
	require.Equal(t, []interface{}{200}, opt.Properties(out))
}
