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

// Package testvocab is a minimal toy plan vocabulary (scan, join, project,
// and their physical counterparts) shared by every package's tests, so
// that a memo dump or a rule trace reads the same way everywhere in this
// module's test suite.
package testvocab

import (
	"github.com/cascadeopt/cascade/ids"
	"github.com/cascadeopt/cascade/node"
)

// RelType is the toy node.Type vocabulary: three logical operators and
// their physical implementations.
type RelType int

const (
	ScanType RelType = iota
	JoinType
	ProjectType
	PhysScanType
	PhysNestedLoopJoinType
	PhysProjectType
)

var relNames = map[RelType]string{
	ScanType:               "scan",
	JoinType:               "join",
	ProjectType:             "project",
	PhysScanType:           "phys_scan",
	PhysNestedLoopJoinType: "phys_nested_loop_join",
	PhysProjectType:        "phys_project",
}

func (t RelType) String() string { return relNames[t] }

func (t RelType) IsLogical() bool {
	switch t {
	case ScanType, JoinType, ProjectType:
		return true
	default:
		return false
	}
}

// Discriminant groups a logical operator with its physical implementation
// so that a rules.Matcher built with MatchDiscriminant matches either.
func (t RelType) Discriminant() string {
	switch t {
	case ScanType, PhysScanType:
		return "scan"
	case JoinType, PhysNestedLoopJoinType:
		return "join"
	case ProjectType, PhysProjectType:
		return "project"
	default:
		return "unknown"
	}
}

var _ node.Type = ScanType

// PredType is the toy predicate vocabulary: a scalar literal, and a list
// combinator used to bundle a projection's expression list into one
// predicate tree.
type PredType int

const (
	ValueType PredType = iota
	ListType
)

func (t PredType) String() string {
	if t == ListType {
		return "list"
	}
	return "value"
}

var _ node.PredType = ValueType

// TableName is the Data payload carried by a Scan node.
type TableName string

func (n TableName) String() string { return string(n) }

// Scan builds a logical table scan over table.
func Scan(table string) *node.PlanNode {
	return withTable(node.NewPlanNode(ScanType, nil), table)
}

func withTable(n *node.PlanNode, table string) *node.PlanNode {
	// The toy vocabulary stores the table name as a zero-argument predicate
	// so it participates in hash-consing like any other expression detail.
	n.Predicates = []*node.PredNode{node.NewPredNode(ValueType, TableName(table))}
	return n
}

// PhysScan builds the physical counterpart of Scan.
func PhysScan(table string) *node.PlanNode {
	n := node.NewPlanNode(PhysScanType, nil)
	return withTable(n, table)
}

// Join builds a logical join of left and right under cond.
func Join(left, right node.PlanNodeOrGroup, cond *node.PredNode) *node.PlanNode {
	return node.NewPlanNode(JoinType, []*node.PredNode{cond}, left, right)
}

// PhysNestedLoopJoin builds the physical counterpart of Join.
func PhysNestedLoopJoin(left, right node.PlanNodeOrGroup, cond *node.PredNode) *node.PlanNode {
	return node.NewPlanNode(PhysNestedLoopJoinType, []*node.PredNode{cond}, left, right)
}

// Project builds a logical projection of input under exprList (normally
// built with List).
func Project(input node.PlanNodeOrGroup, exprList *node.PredNode) *node.PlanNode {
	return node.NewPlanNode(ProjectType, []*node.PredNode{exprList}, input)
}

// PhysProject builds the physical counterpart of Project.
func PhysProject(input node.PlanNodeOrGroup, exprList *node.PredNode) *node.PlanNode {
	return node.NewPlanNode(PhysProjectType, []*node.PredNode{exprList}, input)
}

// Lit wraps a scalar literal as a predicate leaf.
func Lit(v interface{}) *node.PredNode {
	return node.NewPredNode(ValueType, v)
}

// List bundles expressions together as one predicate tree, e.g. a
// projection's expression list.
func List(exprs ...*node.PredNode) *node.PredNode {
	return node.NewPredNode(ListType, nil, exprs...)
}

// PlanTree wraps n as a PlanNodeOrGroup sub-tree.
func PlanTree(n *node.PlanNode) node.PlanNodeOrGroup { return node.Node(n) }

// Group wraps g as a PlanNodeOrGroup group reference.
func Group(g ids.GroupId) node.PlanNodeOrGroup { return node.GroupRef(g) }
