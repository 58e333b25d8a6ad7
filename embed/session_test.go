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

package embed_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cascadeopt/cascade/embed"
	"github.com/cascadeopt/cascade/internal/testvocab"
	"github.com/cascadeopt/cascade/rules"
)

func TestSessionOptimizeProducesPhysicalPlan(t *testing.T) {
	ruleSet := rules.NewSet(testvocab.ScanToPhysScan{})
	session := embed.Open(ruleSet, testvocab.RowCountCost{}, nil, embed.Options{})

	plan, err := session.Optimize(testvocab.Scan("t1"))
	require.NoError(t, err)
	require.Equal(t, testvocab.PhysScanType, plan.Type)
}

func TestSessionReusesMemoAcrossCalls(t *testing.T) {
	ruleSet := rules.NewSet(testvocab.ScanToPhysScan{})
	session := embed.Open(ruleSet, testvocab.RowCountCost{}, nil, embed.Options{})

	_, err := session.Optimize(testvocab.Scan("t1"))
	require.NoError(t, err)

	before := len(session.Optimizer().Memo().GetAllGroupIds())
	plan, err := session.Optimize(testvocab.Scan("t1"))
	require.NoError(t, err)

	// Re-optimizing the exact same tree hash-conses into the same group:
	// the memo gains no new groups.
	require.Equal(t, before, len(session.Optimizer().Memo().GetAllGroupIds()))
	require.Equal(t, testvocab.PhysScanType, plan.Type)
}
