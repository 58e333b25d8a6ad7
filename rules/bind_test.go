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

package rules_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cascadeopt/cascade/internal/testvocab"
	"github.com/cascadeopt/cascade/memo"
	"github.com/cascadeopt/cascade/rules"
)

func TestMatchAndPickCapturesTwoChildren(t *testing.T) {
	m := memo.New()
	exprID, _ := m.AddNewExpr(testvocab.Join(
		testvocab.PlanTree(testvocab.Scan("t1")), testvocab.PlanTree(testvocab.Scan("t2")), testvocab.Lit(true),
	))

	matcher := rules.MatchNode(testvocab.JoinType, rules.PickOne(0), rules.PickOne(1))
	bindings := rules.MatchAndPick(matcher, m, exprID)

	require.Len(t, bindings, 1)
	require.Len(t, bindings[0].One, 2)
	require.NotEqual(t, bindings[0].One[0], bindings[0].One[1])
}

func TestMatchAndPickEnumeratesNestedAlternatives(t *testing.T) {
	m := memo.New()
	_, joinGroup := m.AddNewExpr(testvocab.Join(
		testvocab.PlanTree(testvocab.Scan("t1")), testvocab.PlanTree(testvocab.Scan("t2")), testvocab.Lit(true),
	))
	m.AddExprToGroup(testvocab.PlanTree(testvocab.Join(
		testvocab.PlanTree(testvocab.Scan("t2")), testvocab.PlanTree(testvocab.Scan("t1")), testvocab.Lit(true),
	)), joinGroup)

	projExprID, _ := m.AddNewExpr(testvocab.Project(testvocab.Group(joinGroup), testvocab.List(testvocab.Lit(int64(1)))))

	matcher := rules.MatchNode(testvocab.ProjectType,
		rules.MatchNode(testvocab.JoinType, rules.PickOne(0), rules.PickOne(1)),
	)
	bindings := rules.MatchAndPick(matcher, m, projExprID)
	require.Len(t, bindings, 2)
}

func TestMatchAndPickPickManyCapturesTrailingChildren(t *testing.T) {
	m := memo.New()
	exprID, _ := m.AddNewExpr(testvocab.Project(testvocab.PlanTree(testvocab.Scan("t1")), testvocab.List(testvocab.Lit(int64(1)))))

	matcher := rules.MatchNode(testvocab.ProjectType, rules.PickMany(0))
	bindings := rules.MatchAndPick(matcher, m, exprID)

	require.Len(t, bindings, 1)
	require.Len(t, bindings[0].Many[0], 1)
}

func TestMatchAndPickReturnsNilWhenTopTypeDiffers(t *testing.T) {
	m := memo.New()
	exprID, _ := m.AddNewExpr(testvocab.Scan("t1"))
	matcher := rules.MatchNode(testvocab.JoinType, rules.PickOne(0), rules.PickOne(1))
	require.Nil(t, rules.MatchAndPick(matcher, m, exprID))
}
