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
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cascadeopt/cascade/internal/testvocab"
	"github.com/cascadeopt/cascade/memo"
)

func TestDumpListsEveryGroupAndExpr(t *testing.T) {
	m := memo.New()
	_, groupID := m.AddNewExpr(testvocab.Join(
		testvocab.PlanTree(testvocab.Scan("t1")),
		testvocab.PlanTree(testvocab.Scan("t2")),
		testvocab.Lit(true),
	))

	out := m.Dump()
	require.Contains(t, out, groupID.String())
	require.Equal(t, 3, strings.Count(out, "\n  "))
}

func TestDumpShowsWinnerOnceRecorded(t *testing.T) {
	m := memo.New()
	exprID, groupID := m.AddNewExpr(testvocab.PhysScan("t1"))
	m.UpdateGroupInfo(groupID, memo.GroupInfo{Winner: memo.FullWinner(exprID, 1.0, 1.0, 1.0, nil)})

	out := m.Dump()
	require.Contains(t, out, "winner=full(")
}
