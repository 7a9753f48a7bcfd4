// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package dot names the external graph-rendering collaborator and provides
// the one concrete implementation the plot command needs: producing
// Graphviz DOT text for a function graph, optionally with a set of matches
// highlighted as clusters. Turning that text into an image is out of
// scope.
package dot

import (
	"fmt"
	"sort"
	"strings"

	"github.com/opselect/isel/pkg/graph"
	"github.com/opselect/isel/pkg/match"
)

// Renderer turns a function graph, plus an optional set of matches found
// against it, into Graphviz DOT text.
type Renderer interface {
	Render(fg graph.Graph, matches []match.PatternMatch) (string, error)
}

type renderer struct{}

// New returns the default Renderer.
func New() Renderer {
	return renderer{}
}

func shapeFor(kind graph.NodeKind) string {
	switch {
	case graph.IsBlock(kind):
		return "box"
	case graph.IsOperation(kind):
		return "ellipse"
	default:
		return "oval"
	}
}

// Render implements Renderer. Nodes are emitted in ascending public-ID
// order and edges in ascending (Src, Dst, Kind) order so the output is
// reproducible across calls on the same graph.
func (renderer) Render(fg graph.Graph, matches []match.PatternMatch) (string, error) {
	refs := fg.Nodes()

	byID := make(map[graph.NodeID]graph.NodeRef, len(refs))
	for _, ref := range refs {
		byID[fg.PublicID(ref)] = ref
	}

	ids := make([]graph.NodeID, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var b strings.Builder

	b.WriteString("digraph function {\n")

	for _, id := range ids {
		kind := fg.Kind(byID[id])
		fmt.Fprintf(&b, "  n%d [label=%q, shape=%s];\n", id, kind.String(), shapeFor(kind))
	}

	type edgeLine struct {
		src, dst graph.NodeID
		kind     string
	}

	edgeRefs := fg.Edges()
	lines := make([]edgeLine, len(edgeRefs))

	for i, ref := range edgeRefs {
		e := fg.Edge(ref)
		lines[i] = edgeLine{src: fg.PublicID(e.Src), dst: fg.PublicID(e.Dst), kind: e.Kind.String()}
	}

	sort.Slice(lines, func(i, j int) bool {
		if lines[i].src != lines[j].src {
			return lines[i].src < lines[j].src
		}

		if lines[i].dst != lines[j].dst {
			return lines[i].dst < lines[j].dst
		}

		return lines[i].kind < lines[j].kind
	})

	for _, l := range lines {
		fmt.Fprintf(&b, "  n%d -> n%d [label=%q];\n", l.src, l.dst, l.kind)
	}

	for i, pm := range matches {
		fmt.Fprintf(&b, "  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&b, "    label=%q;\n", fmt.Sprintf("instr %d pattern %d match %d", pm.InstrID, pm.PatternID, pm.MatchID))

		memberIDs := make([]graph.NodeID, 0, len(pm.Match.Pairs))
		for _, fnID := range pm.Match.Pairs {
			memberIDs = append(memberIDs, fnID)
		}

		sort.Slice(memberIDs, func(i, j int) bool { return memberIDs[i] < memberIDs[j] })

		for _, id := range memberIDs {
			fmt.Fprintf(&b, "    n%d;\n", id)
		}

		b.WriteString("  }\n")
	}

	b.WriteString("}\n")

	return b.String(), nil
}
