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

package rules

import (
	"github.com/cascadeopt/cascade/ids"
	"github.com/cascadeopt/cascade/memo"
	"github.com/cascadeopt/cascade/node"
)

// Rule is a transformation (logical to logical) or implementation
// (logical to physical) rule. Rule identity, for firing bookkeeping and
// enable/disable, is the rule's position in the ordered Set it was
// registered in — not its Name, which serves diagnostics and
// enabling/disabling a rule by name.
type Rule interface {
	// Matcher describes the shape this rule fires on.
	Matcher() Matcher

	// Apply produces zero or more replacement expressions for the bound
	// match. exprID is the matched expression itself, so a rule can read
	// its own type/predicates (e.g. a physical-conversion rule needs the
	// logical node's predicates to build its physical counterpart) without
	// a dedicated matcher slot for "capture myself". Apply may read mm
	// (e.g. to inspect a captured group's cached properties) but must
	// never mutate it or schedule further search work itself; the engine
	// interns whatever is returned and schedules the follow-up tasks.
	Apply(mm *memo.Memo, exprID ids.ExprId, binding Binding) []node.PlanNodeOrGroup

	// IsImplRule reports whether this rule produces a physical
	// (executable) expression from a logical one, as opposed to another
	// logical expression.
	IsImplRule() bool

	// Name is a stable identifier used to enable/disable this rule by
	// name in diagnostics and configuration.
	Name() string
}

// Set is an ordered, named rule registry: the order rules were appended
// in is their registration index, which is what the engine uses for
// iteration order and firing dedup — Name is for diagnostics and lookup
// by name.
type Set struct {
	rules   []Rule
	byName  map[string]int
	enabled map[string]bool
}

// NewSet builds a rule registry from rules, in the given order.
func NewSet(rs ...Rule) *Set {
	s := &Set{
		rules:   append([]Rule{}, rs...),
		byName:  make(map[string]int, len(rs)),
		enabled: make(map[string]bool, len(rs)),
	}
	for i, r := range rs {
		s.byName[r.Name()] = i
		s.enabled[r.Name()] = true
	}
	return s
}

// All returns every registered rule in registration order.
func (s *Set) All() []Rule { return s.rules }

// Enabled reports whether r should currently fire.
func (s *Set) Enabled(r Rule) bool { return s.enabled[r.Name()] }

// SetEnabled turns a rule on or off by name. Unknown names are ignored.
func (s *Set) SetEnabled(name string, enabled bool) {
	if _, ok := s.byName[name]; ok {
		s.enabled[name] = enabled
	}
}
