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

package memo

import "github.com/cascadeopt/cascade/ids"

// disjointSet maps a merged-away group id to the survivor it was folded
// into, with path compression on lookup. The Rust original guards the
// backing map with an RwLock since it can be shared across optimizer
// threads; this core's memo is single-threaded for the duration of one
// optimization call, so the map is used directly.
type disjointSet struct {
	parent map[ids.GroupId]ids.GroupId
}

func newDisjointSet() *disjointSet {
	return &disjointSet{parent: make(map[ids.GroupId]ids.GroupId)}
}

// union redirects `from` to resolve to `to` from now on. Both ids are
// expected to already be canonical (callers resolve via find first).
func (d *disjointSet) union(from, to ids.GroupId) {
	if from == to {
		return
	}
	d.parent[from] = to
}

// find resolves id to its current canonical representative, compressing
// the path it walked so subsequent lookups are O(1).
func (d *disjointSet) find(id ids.GroupId) ids.GroupId {
	next, ok := d.parent[id]
	if !ok {
		return id
	}
	root := d.find(next)
	d.parent[id] = root
	return root
}

// tryFind resolves id if it is tracked, reporting whether id had ever been
// merged away at all (as opposed to being canonical from the start).
func (d *disjointSet) tryFind(id ids.GroupId) (ids.GroupId, bool) {
	if _, ok := d.parent[id]; !ok {
		return id, false
	}
	return d.find(id), true
}
