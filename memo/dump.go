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
	"sort"
	"strings"

	"github.com/cascadeopt/cascade/ids"
)

// Dump renders every live group and its member expressions, one line per
// expression, in group id order. Meant for test fixtures and interactive
// debugging, not for machine consumption.
func (m *Memo) Dump() string {
	var b strings.Builder
	groupIDs := m.GetAllGroupIds()
	for _, gid := range groupIDs {
		group := m.groups[gid]
		fmt.Fprintf(&b, "%s", gid)
		if group.Info.Winner.Kind != WinnerUnknown {
			fmt.Fprintf(&b, " winner=%s", group.Info.Winner)
		}
		b.WriteByte('\n')

		exprIDs := make([]ids.ExprId, 0, len(group.Exprs))
		for id := range group.Exprs {
			exprIDs = append(exprIDs, id)
		}
		sort.Slice(exprIDs, func(i, j int) bool { return exprIDs[i] < exprIDs[j] })
		for _, eid := range exprIDs {
			expr := m.exprIdToExpr[eid]
			fmt.Fprintf(&b, "  %s %s %v\n", eid, expr.Type, expr.Children)
		}
	}
	return b.String()
}
