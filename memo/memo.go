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

// Package memo implements the deduplicating repository of plan fragments
// at the heart of the search: every distinct expression is stored exactly
// once, expressions that produce the same result are folded into a shared
// group, and folding one pair of groups can cascade into folding others.
package memo

import (
	"github.com/mitchellh/hashstructure"
	"github.com/sirupsen/logrus"

	"github.com/cascadeopt/cascade/cerrors"
	"github.com/cascadeopt/cascade/ids"
	"github.com/cascadeopt/cascade/node"
	"github.com/cascadeopt/cascade/property"
)

type exprKey uint64

// Memo is the deduplicating repository of plan fragments. It is not safe
// for concurrent use: a single optimization call owns it exclusively, per
// the core's concurrency model.
type Memo struct {
	alloc *ids.Allocator
	log   *logrus.Logger

	groups          map[ids.GroupId]*Group
	exprIdToExpr    map[ids.ExprId]*MemoExpr
	exprIdToGroupId map[ids.ExprId]ids.GroupId
	exprHash        map[exprKey][]ids.ExprId
	dupExprMapping  map[ids.ExprId]ids.ExprId
	groupMerges     *disjointSet

	preds    *predStore
	builders []property.Builder
}

// New returns an empty memo. builders are consulted, in order, exactly
// once per new group, per property.Builder's contract.
func New(builders ...property.Builder) *Memo {
	alloc := ids.NewAllocator()
	return &Memo{
		alloc:           alloc,
		log:             logrus.StandardLogger(),
		groups:          make(map[ids.GroupId]*Group),
		exprIdToExpr:    make(map[ids.ExprId]*MemoExpr),
		exprIdToGroupId: make(map[ids.ExprId]ids.GroupId),
		exprHash:        make(map[exprKey][]ids.ExprId),
		dupExprMapping:  make(map[ids.ExprId]ids.ExprId),
		groupMerges:     newDisjointSet(),
		preds:           newPredStore(alloc),
		builders:        builders,
	}
}

func hashExpr(e *MemoExpr) exprKey {
	h, err := hashstructure.Hash(struct {
		Type       node.Type
		Children   []ids.GroupId
		Predicates []ids.PredId
	}{e.Type, e.Children, e.Predicates}, nil)
	if err != nil {
		panic("memo: expression is not hashable: " + err.Error())
	}
	return exprKey(h)
}

// AddNewExpr interns planNode (and, transitively, every sub-tree it owns
// outright) and returns the root's expression and group id. A child slot
// that is already a group reference is used as-is; it is never re-derived.
func (m *Memo) AddNewExpr(planNode *node.PlanNode) (ids.ExprId, ids.GroupId) {
	groupID, exprID := m.addNewGroupExpr(planNode, nil)
	return exprID, groupID
}

// AddExprToGroup folds planNode into target: if planNode is itself a group
// reference, the two groups are merged outright; if it is a sub-tree, it
// is interned as one more expression occurrence of target (possibly
// triggering a merge if that sub-tree turns out to already exist
// elsewhere). Returns the new expression's id and true, or false if no new
// expression was created: planNode was a group reference (id 0), or the
// sub-tree was already memoized (its existing id).
func (m *Memo) AddExprToGroup(planNode node.PlanNodeOrGroup, target ids.GroupId) (ids.ExprId, bool) {
	if planNode.IsGroup() {
		inputGroup := m.groupMerges.find(planNode.Group())
		target = m.groupMerges.find(target)
		m.mergeGroup(target, inputGroup)
		return 0, false
	}
	reduced := m.groupMerges.find(target)
	lastID := m.alloc.Current()
	groupID, exprID := m.addNewGroupExpr(planNode.PlanTree(), &reduced)
	if groupID != reduced {
		panic("memo: add_new_group_expr returned an unexpected group after merge")
	}
	// Ids come from one increasing counter, so an id at or below lastID
	// names an expression that already existed before this call.
	return exprID, uint64(exprID) > lastID
}

// addNewGroupExpr is the shared recursive core behind AddNewExpr and
// AddExprToGroup: it resolves every child to a group id (recursing into
// child sub-trees first, without ever merging on that recursive leg),
// interns the resulting MemoExpr via hash-consing, and either reuses an
// existing expression occurrence or allocates a new one — optionally
// folding it directly into addTo.
func (m *Memo) addNewGroupExpr(planNode *node.PlanNode, addTo *ids.GroupId) (ids.GroupId, ids.ExprId) {
	children := make([]ids.GroupId, len(planNode.Children))
	for i, child := range planNode.Children {
		if child.IsGroup() {
			ref := m.groupMerges.find(child.Group())
			// The expression being built has no id yet, so report the
			// dangling reference by its child position rather than an
			// expression id.
			_, exists := m.groups[ref]
			cerrors.Assert(exists, cerrors.ErrDanglingGroupReference, i, int(child.Group()))
			children[i] = ref
			continue
		}
		g, _ := m.addNewGroupExpr(child.PlanTree(), nil)
		children[i] = m.groupMerges.find(g)
	}

	preds := make([]ids.PredId, len(planNode.Predicates))
	for i, p := range planNode.Predicates {
		preds[i] = m.preds.addOrGet(p)
	}

	expr := &MemoExpr{Type: planNode.Type, Children: children, Predicates: preds}
	key := hashExpr(expr)
	if existing, ok := m.findExpr(key, expr); ok {
		groupID := m.exprIdToGroupId[existing]
		if addTo != nil {
			addToReduced := m.groupMerges.find(*addTo)
			m.mergeGroup(addToReduced, groupID)
			return addToReduced, existing
		}
		return groupID, existing
	}

	exprID := m.alloc.NextExpr()
	var groupID ids.GroupId
	if addTo != nil {
		groupID = *addTo
	} else {
		groupID = m.alloc.NextGroup()
	}
	m.exprIdToExpr[exprID] = expr
	m.exprIdToGroupId[exprID] = groupID
	m.exprHash[key] = append(m.exprHash[key], exprID)
	m.appendExprToGroup(exprID, groupID, expr)
	return groupID, exprID
}

func (m *Memo) findExpr(key exprKey, expr *MemoExpr) (ids.ExprId, bool) {
	for _, candidate := range m.exprHash[key] {
		if m.exprIdToExpr[candidate].Equal(expr) {
			return candidate, true
		}
	}
	return 0, false
}

func (m *Memo) removeExprFromHash(key exprKey, id ids.ExprId) {
	list := m.exprHash[key]
	for i, candidate := range list {
		if candidate == id {
			m.exprHash[key] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

func (m *Memo) appendExprToGroup(exprID ids.ExprId, groupID ids.GroupId, expr *MemoExpr) {
	g, ok := m.groups[groupID]
	if !ok {
		g = newGroup()
		g.Info.Properties = m.deriveProperties(expr)
		m.groups[groupID] = g
	}
	g.addExpr(exprID)
}

// deriveProperties runs every registered property builder once, passing
// each the expression's predicates (resolved to their PredNode trees) and
// the corresponding property already cached on each child group.
func (m *Memo) deriveProperties(expr *MemoExpr) []interface{} {
	if len(m.builders) == 0 {
		return nil
	}
	predNodes := make([]*node.PredNode, len(expr.Predicates))
	for i, p := range expr.Predicates {
		predNodes[i] = m.preds.get(p)
	}
	out := make([]interface{}, len(m.builders))
	for bi, builder := range m.builders {
		childProps := make([]interface{}, len(expr.Children))
		for ci, childGroup := range expr.Children {
			childProps[ci] = m.groups[childGroup].Info.Properties[bi]
		}
		out[bi] = builder.Derive(expr.Type, predNodes, childProps)
	}
	return out
}

// AddNewPred interns p, returning an existing id if an equal predicate
// tree is already stored.
func (m *Memo) AddNewPred(p *node.PredNode) ids.PredId {
	return m.preds.addOrGet(p)
}

// GetPred returns the predicate tree registered under id.
func (m *Memo) GetPred(id ids.PredId) *node.PredNode {
	return m.preds.get(id)
}

// GetGroupId follows the duplicate-expression chain (left behind when a
// merge discovers an expression collides with one already in the
// surviving group) and returns the owning group.
func (m *Memo) GetGroupId(exprID ids.ExprId) ids.GroupId {
	for {
		next, ok := m.dupExprMapping[exprID]
		if !ok {
			break
		}
		exprID = next
	}
	g, ok := m.exprIdToGroupId[exprID]
	if !ok {
		panic("memo: expr not found in group mapping: " + exprID.String())
	}
	return g
}

// GetExprMemoed returns the memoized expression for exprID, following the
// duplicate-expression chain first.
func (m *Memo) GetExprMemoed(exprID ids.ExprId) *MemoExpr {
	for {
		next, ok := m.dupExprMapping[exprID]
		if !ok {
			break
		}
		exprID = next
	}
	e, ok := m.exprIdToExpr[exprID]
	if !ok {
		panic("memo: expr not found: " + exprID.String())
	}
	return e
}

// ReduceGroup resolves groupID through any merges it has been folded away
// by, returning its current canonical group id.
func (m *Memo) ReduceGroup(groupID ids.GroupId) ids.GroupId {
	return m.groupMerges.find(groupID)
}

// GetGroup returns the group record for groupID (after reduction).
func (m *Memo) GetGroup(groupID ids.GroupId) *Group {
	groupID = m.groupMerges.find(groupID)
	g, ok := m.groups[groupID]
	if !ok {
		panic("memo: group not found: " + groupID.String())
	}
	return g
}

// GetAllGroupIds returns every live (post-merge) group id, sorted.
func (m *Memo) GetAllGroupIds() []ids.GroupId {
	out := make([]ids.GroupId, 0, len(m.groups))
	for id := range m.groups {
		out = append(out, id)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// EstimatedPlanSpace returns the number of distinct memoized expressions,
// a cheap proxy for how much of the search space has been materialized.
func (m *Memo) EstimatedPlanSpace() int {
	return len(m.exprIdToExpr)
}

// UpdateGroupInfo replaces groupID's derived properties and/or winner.
// Called by the optimizer, never by the memo itself: the memo has no
// opinion on cost or statistics. Panics if info proposes a Full winner
// with a non-positive weighted cost (InvalidWinnerUpdate is a programmer
// error, not a recoverable condition).
func (m *Memo) UpdateGroupInfo(groupID ids.GroupId, info GroupInfo) {
	cerrors.Assert(info.Winner.Kind != WinnerFull || info.Winner.WeightedCost > 0,
		cerrors.ErrInvalidWinnerUpdate, int(groupID))
	m.GetGroup(groupID).Info = info
}

// ClearWinner resets every group's winner to WinnerUnknown, e.g. between
// optimizer stages that use different cost models.
func (m *Memo) ClearWinner() {
	for _, g := range m.groups {
		g.Info.Winner = UnknownWinner()
	}
}

// mergeGroup folds mergeFrom into mergeInto: every expression occurrence
// that was in mergeFrom moves to mergeInto, and any expression elsewhere
// in the memo that referenced mergeFrom as a child is rewritten to
// reference mergeInto instead. Rewriting a child reference can make that
// expression collide with one already present in its own group (the
// rewritten structure is now identical to something already memoized);
// when that happens the colliding groups are queued for a further merge
// once this pass finishes, which is how one merge cascades into others.
func (m *Memo) mergeGroup(mergeInto, mergeFrom ids.GroupId) {
	if mergeInto == mergeFrom {
		return
	}
	m.log.WithFields(logrus.Fields{"merge_into": mergeInto, "merge_from": mergeFrom}).Trace("merge_group")

	fromGroup, ok := m.groups[mergeFrom]
	if !ok {
		panic("memo: merge_from group does not exist: " + mergeFrom.String())
	}
	delete(m.groups, mergeFrom)
	intoGroup := m.groups[mergeInto]
	for exprID := range fromGroup.Exprs {
		m.exprIdToGroupId[exprID] = mergeInto
		intoGroup.addExpr(exprID)
	}
	if fromGroup.Info.Winner.Kind == WinnerFull &&
		(intoGroup.Info.Winner.Kind != WinnerFull || fromGroup.Info.Winner.WeightedCost < intoGroup.Info.Winner.WeightedCost) {
		intoGroup.Info.Winner = fromGroup.Info.Winner
	}
	m.groupMerges.union(mergeFrom, mergeInto)

	type pendingMerge struct{ from, into ids.GroupId }
	var pending []pendingMerge

	for groupID, group := range m.groups {
		newExprs := make(map[ids.ExprId]struct{}, len(group.Exprs))
		for exprID := range group.Exprs {
			expr := m.exprIdToExpr[exprID]
			if !containsGroup(expr.Children, mergeFrom) {
				newExprs[exprID] = struct{}{}
				continue
			}
			oldKey := hashExpr(expr)
			newExpr := &MemoExpr{Type: expr.Type, Predicates: expr.Predicates, Children: rewriteChildren(expr.Children, mergeFrom, mergeInto)}
			m.removeExprFromHash(oldKey, exprID)

			newKey := hashExpr(newExpr)
			if dupID, found := m.findExpr(newKey, newExpr); found {
				dupGroupID := m.exprIdToGroupId[dupID]
				if dupGroupID != groupID {
					pending = append(pending, pendingMerge{from: dupGroupID, into: groupID})
				}
				delete(m.exprIdToExpr, exprID)
				delete(m.exprIdToGroupId, exprID)
				m.dupExprMapping[exprID] = dupID
				newExprs[dupID] = struct{}{}
			} else {
				m.exprIdToExpr[exprID] = newExpr
				m.exprHash[newKey] = append(m.exprHash[newKey], exprID)
				newExprs[exprID] = struct{}{}
			}
		}
		group.Exprs = newExprs
	}

	for _, p := range pending {
		from := m.groupMerges.find(p.from)
		into := m.groupMerges.find(p.into)
		m.mergeGroup(into, from)
	}
}

func containsGroup(children []ids.GroupId, target ids.GroupId) bool {
	for _, c := range children {
		if c == target {
			return true
		}
	}
	return false
}

func rewriteChildren(children []ids.GroupId, from, to ids.GroupId) []ids.GroupId {
	out := make([]ids.GroupId, len(children))
	for i, c := range children {
		if c == from {
			out[i] = to
		} else {
			out[i] = c
		}
	}
	return out
}
