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
	"github.com/cascadeopt/cascade/ids"
	"github.com/cascadeopt/cascade/node"
	"github.com/cascadeopt/cascade/property"
)

// GroupSnapshot is one group's persisted state: the expressions it
// contains and its current winner/properties, mirroring the
// cascades_group/group_winner/plan_cost table split of the original
// persistent-memo backend.
type GroupSnapshot struct {
	Exprs      []ids.ExprId
	Properties []interface{}
	Winner     Winner
}

// Snapshot is a flat, serializable dump of a Memo's entire internal state:
// enough to reconstruct it exactly, including group merges and predicate
// ref counts, without replaying any rule or search history.
type Snapshot struct {
	NextId int

	Groups map[ids.GroupId]GroupSnapshot
	Exprs  map[ids.ExprId]MemoExpr
	// ExprGroup records which group each expr id belongs to, independent
	// of GroupSnapshot.Exprs, so exprIdToGroupId can be rebuilt exactly.
	ExprGroup map[ids.ExprId]ids.GroupId
	// GroupMerges is the disjoint-set parent map: a merged-away group id
	// to the group id it currently resolves to.
	GroupMerges map[ids.GroupId]ids.GroupId
	// DupExprs maps an expression id folded away during a group merge to
	// the surviving expression id it collapsed into, so a Winner.ExprId
	// (or any other id a caller is still holding) that names a
	// since-collapsed expression keeps resolving correctly after restore.
	DupExprs map[ids.ExprId]ids.ExprId

	Preds        map[ids.PredId]*node.PredNode
	PredRefCount map[ids.PredId]int
}

// Snapshot captures m's entire internal state. It does not include the
// registered property.Builders: the caller must supply the same builders
// (in the same order) to Restore, the same way New requires them.
func (m *Memo) Snapshot() Snapshot {
	groups := make(map[ids.GroupId]GroupSnapshot, len(m.groups))
	exprGroup := make(map[ids.ExprId]ids.GroupId, len(m.exprIdToGroupId))
	for gid, g := range m.groups {
		exprs := make([]ids.ExprId, 0, len(g.Exprs))
		for eid := range g.Exprs {
			exprs = append(exprs, eid)
		}
		groups[gid] = GroupSnapshot{
			Exprs:      exprs,
			Properties: g.Info.Properties,
			Winner:     g.Info.Winner,
		}
	}
	for eid, gid := range m.exprIdToGroupId {
		exprGroup[eid] = gid
	}

	exprs := make(map[ids.ExprId]MemoExpr, len(m.exprIdToExpr))
	for eid, e := range m.exprIdToExpr {
		exprs[eid] = *e
	}

	merges := make(map[ids.GroupId]ids.GroupId, len(m.groupMerges.parent))
	for from, to := range m.groupMerges.parent {
		merges[from] = to
	}

	dupExprs := make(map[ids.ExprId]ids.ExprId, len(m.dupExprMapping))
	for from, to := range m.dupExprMapping {
		dupExprs[from] = to
	}

	preds := make(map[ids.PredId]*node.PredNode, len(m.preds.byId))
	refCount := make(map[ids.PredId]int, len(m.preds.refCount))
	for id, p := range m.preds.byId {
		preds[id] = p
		refCount[id] = m.preds.refCount[id]
	}

	return Snapshot{
		NextId:       int(m.alloc.Current()),
		Groups:       groups,
		Exprs:        exprs,
		ExprGroup:    exprGroup,
		GroupMerges:  merges,
		DupExprs:     dupExprs,
		Preds:        preds,
		PredRefCount: refCount,
	}
}

// Restore rebuilds a Memo from a Snapshot taken by (*Memo).Snapshot,
// re-registering builders the way New does (Restore never re-derives
// properties: Snapshot already carries each group's derived values).
func Restore(snap Snapshot, builders ...property.Builder) *Memo {
	m := New(builders...)
	m.alloc.Restore(uint64(snap.NextId))

	for gid, gs := range snap.Groups {
		g := newGroup()
		for _, eid := range gs.Exprs {
			g.addExpr(eid)
		}
		g.Info = GroupInfo{Properties: gs.Properties, Winner: gs.Winner}
		m.groups[gid] = g
	}
	for eid, e := range snap.Exprs {
		expr := e
		m.exprIdToExpr[eid] = &expr
		m.exprHash[hashExpr(&expr)] = append(m.exprHash[hashExpr(&expr)], eid)
	}
	for eid, gid := range snap.ExprGroup {
		m.exprIdToGroupId[eid] = gid
	}
	for from, to := range snap.GroupMerges {
		m.groupMerges.parent[from] = to
	}
	for from, to := range snap.DupExprs {
		m.dupExprMapping[from] = to
	}
	for id, p := range snap.Preds {
		m.preds.byId[id] = p
		key := hashPred(p)
		m.preds.byHash[key] = append(m.preds.byHash[key], id)
		m.preds.refCount[id] = snap.PredRefCount[id]
	}

	return m
}
