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

package debugserver_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cascadeopt/cascade/cascades"
	"github.com/cascadeopt/cascade/debugserver"
	"github.com/cascadeopt/cascade/internal/testvocab"
	"github.com/cascadeopt/cascade/memo"
	"github.com/cascadeopt/cascade/rules"
)

func TestDumpAndMetricsEndpoints(t *testing.T) {
	ruleSet := rules.NewSet(testvocab.ScanToPhysScan{})
	opt := cascades.New(memo.New(), ruleSet, testvocab.RowCountCost{}, nil, cascades.OptimizerProperties{})
	opt.StepOptimizeRel(testvocab.Scan("t1"))

	srv := httptest.NewServer(debugserver.New(opt).Handler())
	defer srv.Close()

	dumpResp, err := http.Get(srv.URL + "/dump")
	require.NoError(t, err)
	defer dumpResp.Body.Close()
	require.Equal(t, http.StatusOK, dumpResp.StatusCode)
	body, err := io.ReadAll(dumpResp.Body)
	require.NoError(t, err)
	require.NotEmpty(t, body)

	metricsResp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer metricsResp.Body.Close()
	require.Equal(t, http.StatusOK, metricsResp.StatusCode)
	metricsBody, err := io.ReadAll(metricsResp.Body)
	require.NoError(t, err)
	require.Contains(t, string(metricsBody), "cascade_task_total")
}
