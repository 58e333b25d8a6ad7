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

// Package ids defines the opaque integer handles shared across the memo:
// GroupId, ExprId and PredId.
package ids

import (
	"fmt"
)

// GroupId identifies an equivalence class of memoized expressions.
type GroupId uint64

// ExprId identifies one memoized expression occurrence.
type ExprId uint64

// PredId identifies one interned predicate tree.
type PredId uint64

func (g GroupId) String() string { return fmt.Sprintf("!%d", uint64(g)) }
func (e ExprId) String() string  { return fmt.Sprintf("%d", uint64(e)) }
func (p PredId) String() string  { return fmt.Sprintf("P%d", uint64(p)) }

// InvalidGroup is never allocated by an Allocator; it is useful as a zero
// value sentinel in call sites that build a MemoPlanNode incrementally.
const InvalidGroup GroupId = 0

// Allocator hands out GroupId, ExprId and PredId values from one shared
// monotonic counter. Sharing the counter is deliberate: it makes ids
// globally distinct integers, so passing an ExprId where a GroupId is
// expected shows up immediately in logs and test fixtures instead of
// silently aliasing with an unrelated group. The memo (and therefore the
// allocator) is single-threaded for the duration of one optimization call,
// per the core's concurrency model, so no locking is needed here.
type Allocator struct {
	counter uint64
}

// NewAllocator returns an allocator whose first id is 1 (0 is reserved as
// InvalidGroup).
func NewAllocator() *Allocator {
	return &Allocator{counter: 0}
}

func (a *Allocator) next() uint64 {
	a.counter++
	return a.counter
}

// Current returns the highest id handed out so far, for snapshotting.
func (a *Allocator) Current() uint64 { return a.counter }

// Restore sets the counter so the next allocation continues after
// counter, for rebuilding an allocator from a snapshot.
func (a *Allocator) Restore(counter uint64) { a.counter = counter }

// NextGroup allocates the next GroupId.
func (a *Allocator) NextGroup() GroupId { return GroupId(a.next()) }

// NextExpr allocates the next ExprId.
func (a *Allocator) NextExpr() ExprId { return ExprId(a.next()) }

// NextPred allocates the next PredId.
func (a *Allocator) NextPred() PredId { return PredId(a.next()) }
