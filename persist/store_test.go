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

package persist_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cascadeopt/cascade/internal/testvocab"
	"github.com/cascadeopt/cascade/memo"
	"github.com/cascadeopt/cascade/persist"
)

func TestSaveLoadRoundTripsGroupsAndWinner(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memo.db")

	mm := memo.New()
	exprID, groupID := mm.AddNewExpr(testvocab.Join(
		testvocab.PlanTree(testvocab.Scan("t1")),
		testvocab.PlanTree(testvocab.Scan("t2")),
		testvocab.Lit(true),
	))
	info := mm.GetGroup(groupID).Info
	info.Winner = memo.FullWinner(exprID, testvocab.Cost{Weighted: 1}, testvocab.Cost{Weighted: 3}, 3, testvocab.Statistics{Rows: 42})
	mm.UpdateGroupInfo(groupID, info)

	store, err := persist.Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(mm))
	require.NoError(t, store.Close())

	reopened, err := persist.Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	restored, err := reopened.Load()
	require.NoError(t, err)

	require.ElementsMatch(t, mm.GetAllGroupIds(), restored.GetAllGroupIds())
	require.Equal(t, memo.WinnerFull, restored.GetGroup(groupID).Info.Winner.Kind)
	require.Equal(t, 3.0, restored.GetGroup(groupID).Info.Winner.WeightedCost)
	require.Len(t, restored.GetAllExprsInGroup(groupID), len(mm.GetAllExprsInGroup(groupID)))
}

func TestLoadWithoutPriorSaveReturnsEmptyMemo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	store, err := persist.Open(path)
	require.NoError(t, err)
	defer store.Close()

	restored, err := store.Load()
	require.NoError(t, err)
	require.Empty(t, restored.GetAllGroupIds())
}
