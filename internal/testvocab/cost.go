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

package testvocab

import (
	"fmt"

	"github.com/cascadeopt/cascade/cost"
	"github.com/cascadeopt/cascade/node"
)

// RowCountCost is a toy per-operator cost formula keyed on node type,
// grounded on the shape (not the selectivity math) of a DataFusion-style
// cost model: a scan costs a flat 1.0, a
// nested loop join costs proportional to the product of its inputs' row
// counts, everything else costs proportional to its single input.
// Logical operators cost nothing; only physical ones are ever actually
// costed by the engine.
type RowCountCost struct{}

// Statistics is the per-group output this model derives: an estimated
// row count.
type Statistics struct{ Rows float64 }

// Cost is the per-expression cost this model produces.
type Cost struct{ Weighted float64 }

func (RowCountCost) Zero() interface{} { return Cost{} }

func (RowCountCost) ComputeOperationCost(typeTag node.Type, _ []*node.PredNode, childStats []interface{}, _ cost.Context) interface{} {
	switch typeTag {
	case PhysScanType:
		return Cost{Weighted: 1.0}
	case PhysNestedLoopJoinType:
		left, right := rows(childStats, 0), rows(childStats, 1)
		return Cost{Weighted: left * right * 0.001}
	case PhysProjectType:
		return Cost{Weighted: rows(childStats, 0) * 0.01}
	default:
		return Cost{}
	}
}

func (RowCountCost) DeriveStatistics(typeTag node.Type, predicates []*node.PredNode, childStats []interface{}, _ cost.Context) interface{} {
	switch typeTag {
	case ScanType, PhysScanType:
		_ = predicates
		return Statistics{Rows: 100}
	case JoinType, PhysNestedLoopJoinType:
		return Statistics{Rows: rows(childStats, 0) * rows(childStats, 1)}
	default:
		if len(childStats) > 0 {
			return Statistics{Rows: rows(childStats, 0)}
		}
		return Statistics{Rows: 0}
	}
}

func (RowCountCost) Sum(operationCost interface{}, childCosts []interface{}) interface{} {
	total := operationCost.(Cost).Weighted
	for _, c := range childCosts {
		if c == nil {
			continue
		}
		total += c.(Cost).Weighted
	}
	return Cost{Weighted: total}
}

func (RowCountCost) WeightedCost(c interface{}) float64 {
	if c == nil {
		return 0
	}
	return c.(Cost).Weighted
}

func (RowCountCost) ExplainCost(c interface{}) string {
	return fmt.Sprintf("%.4f", c.(Cost).Weighted)
}

func (RowCountCost) ExplainStatistics(s interface{}) string {
	if s == nil {
		return "unknown"
	}
	return fmt.Sprintf("rows=%.0f", s.(Statistics).Rows)
}

func rows(stats []interface{}, idx int) float64 {
	if idx >= len(stats) || stats[idx] == nil {
		return 0
	}
	return stats[idx].(Statistics).Rows
}
