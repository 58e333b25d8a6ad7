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

import (
	"github.com/mitchellh/hashstructure"

	"github.com/cascadeopt/cascade/ids"
	"github.com/cascadeopt/cascade/node"
)

// predKey is the structural hash bucket key: predicates with different
// hashes can never be equal, so the store only falls back to a full
// Equal-by-value comparison for node.PredNode trees that collide.
type predKey uint64

type predStore struct {
	alloc    *ids.Allocator
	byId     map[ids.PredId]*node.PredNode
	byHash   map[predKey][]ids.PredId
	refCount map[ids.PredId]int
}

func newPredStore(alloc *ids.Allocator) *predStore {
	return &predStore{
		alloc:    alloc,
		byId:     make(map[ids.PredId]*node.PredNode),
		byHash:   make(map[predKey][]ids.PredId),
		refCount: make(map[ids.PredId]int),
	}
}

func predEqual(a, b *node.PredNode) bool {
	if a.Type != b.Type || len(a.Children) != len(b.Children) {
		return false
	}
	if a.Data != b.Data {
		return false
	}
	for i := range a.Children {
		if !predEqual(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

func hashPred(p *node.PredNode) predKey {
	h, err := hashstructure.Hash(struct {
		Type     node.PredType
		Data     interface{}
		Children []*node.PredNode
	}{p.Type, p.Data, p.Children}, nil)
	if err != nil {
		// hashstructure only errors on unhashable kinds (chan, func); predicate
		// data is expected to be plain scalars, so treat this as a caller bug
		// rather than something worth recovering from per-call.
		panic("memo: predicate data is not hashable: " + err.Error())
	}
	return predKey(h)
}

// addOrGet interns p, returning an existing PredId if an equal predicate
// tree was already stored, or allocating a new one and incrementing its
// reference count either way.
func (s *predStore) addOrGet(p *node.PredNode) ids.PredId {
	key := hashPred(p)
	for _, candidate := range s.byHash[key] {
		if predEqual(s.byId[candidate], p) {
			s.refCount[candidate]++
			return candidate
		}
	}
	id := s.alloc.NextPred()
	s.byId[id] = p
	s.byHash[key] = append(s.byHash[key], id)
	s.refCount[id] = 1
	return id
}

func (s *predStore) get(id ids.PredId) *node.PredNode {
	p, ok := s.byId[id]
	if !ok {
		panic("memo: dangling predicate id " + id.String())
	}
	return p
}
