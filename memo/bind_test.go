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

	"github.com/cascadeopt/cascade/ids"
	"github.com/cascadeopt/cascade/internal/testvocab"
	"github.com/cascadeopt/cascade/memo"
)

func TestGetBestGroupBindingFailsWithoutWinner(t *testing.T) {
	m := memo.New()
	_, groupID := m.AddNewExpr(testvocab.Scan("t1"))
	_, err := m.GetBestGroupBinding(groupID, nil)
	require.Error(t, err)
}

func TestGetBestGroupBindingMaterializesTree(t *testing.T) {
	m := memo.New()
	leftExprID, leftGroup := m.AddNewExpr(testvocab.PhysScan("t1"))
	rightExprID, rightGroup := m.AddNewExpr(testvocab.PhysScan("t2"))
	m.UpdateGroupInfo(leftGroup, memo.GroupInfo{Winner: memo.FullWinner(leftExprID, 1.0, 1.0, 1.0, nil)})
	m.UpdateGroupInfo(rightGroup, memo.GroupInfo{Winner: memo.FullWinner(rightExprID, 1.0, 1.0, 1.0, nil)})

	joinExprID, joinGroup := m.AddNewExpr(testvocab.PhysNestedLoopJoin(
		testvocab.Group(leftGroup), testvocab.Group(rightGroup), testvocab.Lit(true),
	))
	m.UpdateGroupInfo(joinGroup, memo.GroupInfo{Winner: memo.FullWinner(joinExprID, 1.0, 3.0, 3.0, nil)})

	var hookCalls int
	hook := func(groupID ids.GroupId, exprID ids.ExprId, winner memo.Winner) { hookCalls++ }
	tree, err := m.GetBestGroupBinding(joinGroup, hook)
	require.NoError(t, err)
	require.Len(t, tree.Children, 2)
	require.Equal(t, 3, hookCalls)
}
