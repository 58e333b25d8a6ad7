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

package heuristics

import (
	"fmt"

	"github.com/cascadeopt/cascade/node"
	"github.com/cascadeopt/cascade/rules"
)

// matchAndPick matches matcher's top node against n and, on success,
// returns every PickOne capture. Unlike rules.MatchAndPick there is no
// memo and no enumeration: a materialized tree has exactly one shape, so
// there is exactly zero or one result.
func matchAndPick(matcher rules.Matcher, n *node.PlanNode) (map[int]*node.PlanNode, bool) {
	switch matcher.Kind {
	case rules.KindMatchNode:
		if n.Type != matcher.TypeTag {
			return nil, false
		}
	case rules.KindMatchDiscriminant:
		if n.Type.Discriminant() != matcher.Discriminant {
			return nil, false
		}
	default:
		panic("heuristics: top-level matcher must be MatchNode or MatchDiscriminant")
	}
	return matchChildren(matcher.Children, n)
}

func matchChildren(children []rules.Matcher, n *node.PlanNode) (map[int]*node.PlanNode, bool) {
	last := rules.Matcher{}
	if len(children) > 0 {
		last = children[len(children)-1]
	}
	if last.Kind != rules.KindPickMany && last.Kind != rules.KindIgnoreMany {
		if len(children) != len(n.Children) {
			panic(fmt.Sprintf("heuristics: matcher arity %d does not match node arity %d for %s", len(children), len(n.Children), n))
		}
	}

	picks := make(map[int]*node.PlanNode)
	for idx, child := range children {
		switch child.Kind {
		case rules.KindIgnoreOne:
		case rules.KindIgnoreMany:
			return picks, true
		case rules.KindPickOne:
			picks[child.Slot] = childTree(n, idx)
		case rules.KindPickMany:
			panic("heuristics: PickMany is not supported against a materialized tree")
		default:
			sub, ok := matchAndPick(child, childTree(n, idx))
			if !ok {
				return nil, false
			}
			for k, v := range sub {
				picks[k] = v
			}
		}
	}
	return picks, true
}

func childTree(n *node.PlanNode, idx int) *node.PlanNode {
	c := n.Children[idx]
	if c.IsGroup() {
		panic("heuristics: cannot match a group reference outside the memo")
	}
	return c.PlanTree()
}
