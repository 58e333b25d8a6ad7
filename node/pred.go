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

package node

import (
	"fmt"
	"strings"
)

// PredNode is the input form of a predicate sub-tree: pure, side-effect
// free, and structurally hashable. Predicates reference columns by index
// (carried in Data by convention, e.g. a column-reference predicate type
// stores the column ordinal there); they never embed a group reference.
type PredNode struct {
	Type     PredType
	Children []*PredNode
	Data     interface{}
}

// NewPredNode builds a predicate tree node.
func NewPredNode(typ PredType, data interface{}, children ...*PredNode) *PredNode {
	return &PredNode{Type: typ, Children: children, Data: data}
}

func (p *PredNode) String() string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(p.Type.String())
	if p.Data != nil {
		fmt.Fprintf(&b, " %v", p.Data)
	}
	for _, c := range p.Children {
		b.WriteByte(' ')
		b.WriteString(c.String())
	}
	b.WriteByte(')')
	return b.String()
}
