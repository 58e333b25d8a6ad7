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

// Package embed is the library entry point for embedding the optimizer
// directly into a host process, without a wire protocol or separate
// server: one *Session wraps one memo and the rule/cost/property stack it
// was opened with, the way driver.Driver wraps one sql.Catalog.
package embed

import (
	"sync"

	"github.com/cascadeopt/cascade/cascades"
	"github.com/cascadeopt/cascade/cost"
	"github.com/cascadeopt/cascade/memo"
	"github.com/cascadeopt/cascade/node"
	"github.com/cascadeopt/cascade/property"
	"github.com/cascadeopt/cascade/rules"
)

// Options configures a Session. The zero value runs with no budget limits,
// pruning enabled, and tracing disabled, same as a zero-value
// cascades.OptimizerProperties.
type Options struct {
	Properties cascades.OptimizerProperties
}

// Session is an embeddable, single-memo optimizer instance. A Session is
// safe for concurrent use by multiple goroutines serializing on it the
// same way driver.Driver serializes catalog access: only one Optimize call
// actually runs the search at a time.
type Session struct {
	mu  sync.Mutex
	opt *cascades.Optimizer
}

// Open builds a Session with a fresh, empty memo, the given rule set and
// cost model, and builders consulted once per new group.
func Open(ruleSet *rules.Set, costModel cost.Model, builders []property.Builder, opts Options) *Session {
	mm := memo.New(builders...)
	return &Session{opt: cascades.New(mm, ruleSet, costModel, builders, opts.Properties)}
}

// Optimize interns root, drives the search to a fixpoint, and extracts the
// cheapest physical plan found. Successive calls share the same
// underlying memo, so a later call can reuse alternatives discovered by an
// earlier one if root (or a sub-tree of it) recurs.
func (s *Session) Optimize(root *node.PlanNode) (*node.PlanTree, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	groupID := s.opt.StepOptimizeRel(root)
	return s.opt.StepGetOptimizeRel(groupID, nil)
}

// Optimizer exposes the underlying *cascades.Optimizer, for callers that
// need direct access to Stats, Dump, or rule enable/disable beyond what
// Optimize's simple request/response shape offers.
func (s *Session) Optimizer() *cascades.Optimizer { return s.opt }
