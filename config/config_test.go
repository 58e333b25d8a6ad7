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

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cascadeopt/cascade/config"
)

func TestParseFillsOnlyNamedFields(t *testing.T) {
	props, err := config.Parse([]byte(`
partial_explore_iter: 500
enable_tracing: true
`))
	require.NoError(t, err)
	require.Equal(t, 500, props.PartialExploreIter)
	require.True(t, props.EnableTracing)
	require.Equal(t, 0, props.PartialExploreSpace)
	require.False(t, props.DisablePruning)
}

func TestLoadReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "optimizer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("disable_pruning: true\npanic_on_budget: true\n"), 0o644))

	props, err := config.Load(path)
	require.NoError(t, err)
	require.True(t, props.DisablePruning)
	require.True(t, props.PanicOnBudget)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load("/does/not/exist.yaml")
	require.Error(t, err)
}
