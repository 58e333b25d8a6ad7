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
)

func TestSnapshotRestoreRoundTrips(t *testing.T) {
	mm := memo.New()
	exprID, groupID := mm.AddNewExpr(testvocab.Join(
		testvocab.PlanTree(testvocab.Scan("t1")),
		testvocab.PlanTree(testvocab.Scan("t2")),
		testvocab.Lit(true),
	))

	info := mm.GetGroup(groupID).Info
	info.Winner = memo.FullWinner(exprID, testvocab.Cost{Weighted: 1}, testvocab.Cost{Weighted: 2}, 2, testvocab.Statistics{Rows: 10})
	mm.UpdateGroupInfo(groupID, info)

	snap := mm.Snapshot()
	restored := memo.Restore(snap)

	require.Equal(t, mm.GetAllExprsInGroup(groupID), restored.GetAllExprsInGroup(groupID))
	require.Equal(t, memo.WinnerFull, restored.GetGroup(groupID).Info.Winner.Kind)
	require.Equal(t, 2.0, restored.GetGroup(groupID).Info.Winner.WeightedCost)

	// A fresh AddNewExpr against the restored memo must keep allocating
	// ids past whatever the snapshot had already handed out, rather than
	// colliding with them.
	_, newGroup := restored.AddNewExpr(testvocab.Scan("t3"))
	require.NotEqual(t, groupID, newGroup)
}

func TestSnapshotPreservesGroupMerge(t *testing.T) {
	mm := memo.New()
	_, groupA := mm.AddNewExpr(testvocab.Join(
		testvocab.PlanTree(testvocab.Scan("t2")),
		testvocab.PlanTree(testvocab.Scan("t1")),
		testvocab.Lit(true),
	))
	_, groupB := mm.AddNewExpr(testvocab.Join(
		testvocab.PlanTree(testvocab.Scan("t1")),
		testvocab.PlanTree(testvocab.Scan("t2")),
		testvocab.Lit(true),
	))
	mm.AddExprToGroup(testvocab.PlanTree(testvocab.Join(
		testvocab.PlanTree(testvocab.Scan("t2")),
		testvocab.PlanTree(testvocab.Scan("t1")),
		testvocab.Lit(true),
	)), groupB)
	require.Equal(t, mm.ReduceGroup(groupA), mm.ReduceGroup(groupB))

	snap := mm.Snapshot()
	restored := memo.Restore(snap)

	require.Equal(t, mm.ReduceGroup(groupA), restored.ReduceGroup(groupA))
	require.Equal(t, mm.ReduceGroup(groupB), restored.ReduceGroup(groupB))
}
