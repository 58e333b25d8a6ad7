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

// Package cerrors is the optimizer's error taxonomy. Each Kind is a
// template for a family of errors carrying the same arguments, built with
// gopkg.in/src-d/go-errors.v1's NewKind.
package cerrors

import "gopkg.in/src-d/go-errors.v1"

var (
	// ErrNoWinner is returned to callers of GetBestGroupBinding and
	// StepGetOptimizeRel when the requested group has not settled on a
	// WinnerFull yet. This is the only Kind in this package returned
	// across an API boundary; the rest are either logged or panicked.
	ErrNoWinner = errors.NewKind("no winner for group %d")

	// ErrBudgetExhausted is logged (logrus.Warn) when the cascades engine
	// stops exploring because a configured budget ran out before the
	// search converged.
	ErrBudgetExhausted = errors.NewKind("optimizer budget exhausted: %s")

	// ErrRuleBindingTooLarge is logged (logrus.Warn) when a rule's
	// Cartesian-product binding enumeration hits the cap and is
	// truncated.
	ErrRuleBindingTooLarge = errors.NewKind("rule %s produced %d bindings, capped at %d")

	// ErrInvalidWinnerUpdate is raised as a panic, guarded by
	// DebugAssertionsEnabled, when a caller proposes a WinnerFull with a
	// non-positive weighted cost.
	ErrInvalidWinnerUpdate = errors.NewKind("proposed full winner for group %d has non-positive weighted cost")

	// ErrDanglingGroupReference is raised as a panic, guarded by
	// DebugAssertionsEnabled, when an expression's child references a
	// group id the memo has no record of.
	ErrDanglingGroupReference = errors.NewKind("expression %d references dangling group %d")
)

// DebugAssertionsEnabled gates ErrInvalidWinnerUpdate and
// ErrDanglingGroupReference panics. Production builds that would rather
// degrade than crash on a corrupted memo can turn this off; tests leave
// it on so a violated invariant fails loudly.
var DebugAssertionsEnabled = true

// Assert panics with err.New(args...) if DebugAssertionsEnabled and cond
// is false. A no-op otherwise.
func Assert(cond bool, kind *errors.Kind, args ...interface{}) {
	if !cond && DebugAssertionsEnabled {
		panic(kind.New(args...))
	}
}
