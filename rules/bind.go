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
	"github.com/sirupsen/logrus"

	"github.com/cascadeopt/cascade/ids"
	"github.com/cascadeopt/cascade/memo"
)

// MaxBindings bounds how many bindings a single match_and_pick call will
// enumerate. A group whose cardinality has exploded (many alternative
// expressions at every level) can otherwise produce a combinatorial
// number of bindings; this cap trades completeness for termination.
// Exported so callers (the cascades engine) can report which rule hit the
// cap, since this package has no rule name to attach to the warning.
const MaxBindings = 200

const maxBindings = MaxBindings

// Binding is a concrete assignment from a matcher's capture slots to memo
// subtrees: One holds PickOne captures, Many holds PickMany captures.
type Binding struct {
	One  map[int]ids.GroupId
	Many map[int][]ids.GroupId
}

func newBinding() Binding {
	return Binding{One: make(map[int]ids.GroupId), Many: make(map[int][]ids.GroupId)}
}

func mergeBinding(a, b Binding) Binding {
	out := newBinding()
	for k, v := range a.One {
		out.One[k] = v
	}
	for k, v := range a.Many {
		out.Many[k] = v
	}
	for k, v := range b.One {
		out.One[k] = v
	}
	for k, v := range b.Many {
		out.Many[k] = v
	}
	return out
}

// MatchAndPick enumerates every binding matcher produces against exprID's
// memoized expression. The result is the Cartesian product of each
// child's own binding set: a MatchNode/MatchDiscriminant child slot
// contributes one alternative per matching expression in that child's
// group, a PickOne slot contributes exactly one (the group itself), and
// an Ignore* slot contributes exactly one empty alternative.
func MatchAndPick(m Matcher, mm *memo.Memo, exprID ids.ExprId) []Binding {
	expr := mm.GetExprMemoed(exprID)
	if !topMatches(m, expr.Type) {
		return nil
	}
	return matchChildren(m.Children, mm, expr.Children)
}

func matchChildren(matchers []Matcher, mm *memo.Memo, groupIDs []ids.GroupId) []Binding {
	n := len(matchers)
	fixed := matchers
	var trailing *Matcher
	if n > 0 && (matchers[n-1].Kind == KindPickMany || matchers[n-1].Kind == KindIgnoreMany) {
		trailing = &matchers[n-1]
		fixed = matchers[:n-1]
	}
	if len(groupIDs) < len(fixed) || (trailing == nil && len(groupIDs) != len(fixed)) {
		return nil
	}

	combos := []Binding{newBinding()}
	for i, cm := range fixed {
		slotResults := matchSlot(cm, mm, groupIDs[i])
		combos = crossProduct(combos, slotResults)
		if len(combos) == 0 {
			return nil
		}
	}
	if trailing != nil && trailing.Kind == KindPickMany {
		rest := append([]ids.GroupId{}, groupIDs[len(fixed):]...)
		b := newBinding()
		b.Many[trailing.Slot] = rest
		combos = crossProduct(combos, []Binding{b})
	}
	return combos
}

func matchSlot(m Matcher, mm *memo.Memo, groupID ids.GroupId) []Binding {
	switch m.Kind {
	case KindPickOne:
		b := newBinding()
		b.One[m.Slot] = groupID
		return []Binding{b}
	case KindIgnoreOne:
		return []Binding{newBinding()}
	case KindMatchNode, KindMatchDiscriminant:
		var all []Binding
		for _, exprID := range mm.GetAllExprsInGroup(groupID) {
			expr := mm.GetExprMemoed(exprID)
			if !topMatches(m, expr.Type) {
				continue
			}
			all = append(all, matchChildren(m.Children, mm, expr.Children)...)
			if len(all) >= maxBindings {
				logrus.WithField("group", groupID).Warnf("rules: binding enumeration capped at %d", maxBindings)
				return all[:maxBindings]
			}
		}
		return all
	default:
		panic("rules: PickMany/IgnoreMany is only valid as the last matcher in its parent")
	}
}

func crossProduct(a, b []Binding) []Binding {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	out := make([]Binding, 0, len(a)*len(b))
	for _, x := range a {
		for _, y := range b {
			out = append(out, mergeBinding(x, y))
			if len(out) >= maxBindings {
				logrus.Warnf("rules: binding enumeration capped at %d", maxBindings)
				return out
			}
		}
	}
	return out
}
