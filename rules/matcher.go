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

// Package rules defines the matcher substrate rules are built from:
// pattern trees matched against memoized expressions, and bounded binding
// enumeration over the memo groups they reach.
package rules

import "github.com/cascadeopt/cascade/node"

// Kind distinguishes the matcher tree's variants. Matchers are kept as
// plain data (a Kind tag plus a handful of fields) rather than an
// interface hierarchy, so the engine can inspect a rule's top-level shape
// cheaply before committing to a full match attempt.
type Kind int

const (
	// KindMatchNode matches one exact type tag, with exact-arity children
	// (unless the last child is a PickMany/IgnoreMany).
	KindMatchNode Kind = iota
	// KindMatchDiscriminant matches any type tag sharing a discriminant.
	KindMatchDiscriminant
	// KindPickOne captures one child group as-is.
	KindPickOne
	// KindPickMany captures a trailing suffix of children as a list. Must
	// be the last entry in its parent's Children.
	KindPickMany
	// KindIgnoreOne skips one child without capturing it.
	KindIgnoreOne
	// KindIgnoreMany skips a trailing suffix of children without capturing
	// any of them. Must be the last entry in its parent's Children.
	KindIgnoreMany
)

// Matcher is one node of a matcher tree.
type Matcher struct {
	Kind Kind

	TypeTag      node.Type // KindMatchNode
	Discriminant string    // KindMatchDiscriminant
	Children     []Matcher // KindMatchNode, KindMatchDiscriminant

	// Slot is the binding index a PickOne/PickMany capture is stored
	// under. Rule authors choose slot numbers explicitly (0, 1, 2, ...)
	// the way one numbers capture groups in a regular expression; Apply
	// reads them back out of the Binding by the same numbers.
	Slot int
}

// MatchNode matches exactly typeTag, recursing into children in order.
func MatchNode(typeTag node.Type, children ...Matcher) Matcher {
	return Matcher{Kind: KindMatchNode, TypeTag: typeTag, Children: children}
}

// MatchDiscriminant matches any type tag sharing discriminant.
func MatchDiscriminant(discriminant string, children ...Matcher) Matcher {
	return Matcher{Kind: KindMatchDiscriminant, Discriminant: discriminant, Children: children}
}

// PickOne captures one child group as-is, under slot.
func PickOne(slot int) Matcher { return Matcher{Kind: KindPickOne, Slot: slot} }

// PickMany captures the trailing children as a list, under slot. Only
// valid as the last entry of a Children list.
func PickMany(slot int) Matcher { return Matcher{Kind: KindPickMany, Slot: slot} }

// IgnoreOne skips one child without capturing it.
func IgnoreOne() Matcher { return Matcher{Kind: KindIgnoreOne} }

// IgnoreMany skips the trailing children without capturing any of them.
// Only valid as the last entry of a Children list.
func IgnoreMany() Matcher { return Matcher{Kind: KindIgnoreMany} }

// topMatches reports whether m's root variant matches typeTag, without
// looking at children at all. Used by the engine to skip a rule cheaply
// before attempting the (potentially expensive) full match.
func topMatches(m Matcher, typeTag node.Type) bool {
	switch m.Kind {
	case KindMatchNode:
		return m.TypeTag == typeTag
	case KindMatchDiscriminant:
		return m.Discriminant == typeTag.Discriminant()
	default:
		return false
	}
}

// TopMatches is the exported form of topMatches, used by the cascades
// engine to decide whether a rule's matcher is even worth trying against
// an expression's type tag before paying for MatchAndPick.
func TopMatches(m Matcher, typeTag node.Type) bool { return topMatches(m, typeTag) }
