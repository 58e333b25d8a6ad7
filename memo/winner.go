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
	"fmt"

	"github.com/cascadeopt/cascade/ids"
)

// WinnerKind distinguishes the three states a group's winner can be in.
type WinnerKind int

const (
	// WinnerUnknown means no physical expression has been costed for this
	// group yet (or costing has not finished).
	WinnerUnknown WinnerKind = iota
	// WinnerImpossible means every physical expression explored for this
	// group failed (e.g. a required property can never be satisfied).
	WinnerImpossible
	// WinnerFull means a cheapest physical expression has been chosen.
	WinnerFull
)

func (k WinnerKind) String() string {
	switch k {
	case WinnerUnknown:
		return "unknown"
	case WinnerImpossible:
		return "impossible"
	case WinnerFull:
		return "full"
	default:
		return "invalid"
	}
}

// Winner records the current best physical expression for a group, along
// with the cost that justified picking it. A group starts at WinnerUnknown
// and only ever moves to WinnerImpossible or WinnerFull once costing
// completes; it can still be replaced by a cheaper WinnerFull later as more
// of the search space is explored.
type Winner struct {
	Kind WinnerKind

	// The remaining fields are meaningful only when Kind == WinnerFull.
	ExprId        ids.ExprId
	OperationCost interface{}
	TotalCost     interface{}
	WeightedCost  float64 // scalar used for comparison and pruning
	Statistics    interface{}
}

// UnknownWinner is the zero-value winner every group starts with.
func UnknownWinner() Winner { return Winner{Kind: WinnerUnknown} }

// ImpossibleWinner marks a group as having no feasible physical plan.
func ImpossibleWinner() Winner { return Winner{Kind: WinnerImpossible} }

// FullWinner records a concrete winning expression and the costs that
// justify it. weighted must be strictly positive per the memo's
// update_group_info contract.
func FullWinner(expr ids.ExprId, operationCost, totalCost interface{}, weighted float64, stats interface{}) Winner {
	return Winner{
		Kind:          WinnerFull,
		ExprId:        expr,
		OperationCost: operationCost,
		TotalCost:     totalCost,
		WeightedCost:  weighted,
		Statistics:    stats,
	}
}

func (w Winner) String() string {
	switch w.Kind {
	case WinnerFull:
		return fmt.Sprintf("full(%s, cost=%v)", w.ExprId, w.WeightedCost)
	default:
		return w.Kind.String()
	}
}
