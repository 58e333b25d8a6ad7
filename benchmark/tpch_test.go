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

package benchmark

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cascadeopt/cascade/cascades"
	"github.com/cascadeopt/cascade/node"
)

// countLeaves walks a sub-tree counting scan leaves. JoinChainTree never
// produces a bare group reference, so every child is a PlanTree.
func countLeaves(n *node.PlanNode) int {
	if len(n.Children) == 0 {
		return 1
	}
	count := 0
	for _, c := range n.Children {
		count += countLeaves(c.PlanTree())
	}
	return count
}

func TestJoinChainTreeHasOneLeafPerTable(t *testing.T) {
	tree := JoinChainTree()
	require.Equal(t, len(tpchTables), countLeaves(tree))
}

func TestRunOptimizesJoinChainToFixpoint(t *testing.T) {
	opt, err := Run(cascades.OptimizerProperties{})
	require.NoError(t, err)
	require.Greater(t, opt.Stats.OptimizeGroupCount, 0)
}

func BenchmarkTpchJoinChain(b *testing.B) {
	b.Log("optimizing tpc-h-shaped join chain")
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		before := TakeSample()
		opt, err := Run(cascades.OptimizerProperties{})
		if err != nil {
			b.Fatal(err)
		}
		after := TakeSample()
		b.Logf("groups explored: %d, rss delta: %d bytes", opt.Stats.OptimizeGroupCount, Delta(before, after).RSSBytes)
	}
}
