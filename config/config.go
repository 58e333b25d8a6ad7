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

// Package config loads cascades.OptimizerProperties from a YAML file, the
// same shape of entry point the teacher module uses for its own
// environment-driven server config.
package config

import (
	"os"

	"gopkg.in/yaml.v2"

	"github.com/cascadeopt/cascade/cascades"
)

// file is the on-disk shape; each field's YAML key is set by its yaml
// tag.
type file struct {
	PanicOnBudget       bool `yaml:"panic_on_budget"`
	PartialExploreIter  int  `yaml:"partial_explore_iter"`
	PartialExploreSpace int  `yaml:"partial_explore_space"`
	DisablePruning      bool `yaml:"disable_pruning"`
	EnableTracing       bool `yaml:"enable_tracing"`
}

// Load reads a YAML file at path and decodes it into
// cascades.OptimizerProperties. A missing or empty field keeps its zero
// value (unlimited budgets, pruning on, tracing and panic-on-budget off).
func Load(path string) (cascades.OptimizerProperties, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cascades.OptimizerProperties{}, err
	}
	return Parse(data)
}

// Parse decodes YAML bytes into cascades.OptimizerProperties directly,
// without touching the filesystem.
func Parse(data []byte) (cascades.OptimizerProperties, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return cascades.OptimizerProperties{}, err
	}
	return cascades.OptimizerProperties{
		PanicOnBudget:       f.PanicOnBudget,
		PartialExploreIter:  f.PartialExploreIter,
		PartialExploreSpace: f.PartialExploreSpace,
		DisablePruning:      f.DisablePruning,
		EnableTracing:       f.EnableTracing,
	}, nil
}
