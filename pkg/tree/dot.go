// Package tree renders the three-level care taxonomy as a node-link
// hierarchy, for auditing the snapshot's structure outside the compiled
// chart document.
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG and
// PNG rendering, so no graphviz binary is required at runtime.
package tree

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/careatlas/pkg/dataset"
)

// Options configures taxonomy tree rendering.
type Options struct {
	// Counts appends the mapped-measure count to each node label and fills
	// gap nodes red.
	Counts bool

	// MaxLevel prunes the tree below the given level (1-3). Zero means the
	// full depth.
	MaxLevel int
}

// node is one taxonomy node with its parent edge and measure count.
type node struct {
	id       string
	label    string
	level    int
	parent   string
	sortKey  float64
	measures int
}

// ToDOT converts the snapshot's taxonomy into Graphviz DOT format. Nodes are
// emitted level by level in chart order (descending sort key), so identical
// snapshots yield identical DOT output. The resulting string can be rendered
// with [RenderSVG] or [RenderPNG].
func ToDOT(ds *dataset.Dataset, opts Options) string {
	maxLevel := opts.MaxLevel
	if maxLevel < 1 || maxLevel > 3 {
		maxLevel = 3
	}

	nodes := collect(ds, maxLevel)

	var buf bytes.Buffer
	buf.WriteString("digraph taxonomy {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=1.0;\n")
	buf.WriteString("  nodesep=0.15;\n")
	buf.WriteString("\n")

	for _, n := range nodes {
		label := n.label
		attrs := []string{}
		if opts.Counts {
			label = fmt.Sprintf("%s (%d)", n.label, n.measures)
			if n.measures == 0 {
				attrs = append(attrs, "fillcolor=mistyrose")
			}
		}
		attrs = append([]string{fmt.Sprintf("label=%q", label)}, attrs...)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.id, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, n := range nodes {
		if n.parent != "" {
			fmt.Fprintf(&buf, "  %q -> %q;\n", n.parent, n.id)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// collect deduplicates taxonomy nodes and orders them level by sort key.
// Node IDs are path-qualified so that two branches sharing a child name
// stay distinct.
func collect(ds *dataset.Dataset, maxLevel int) []node {
	byID := make(map[string]*node)

	for i := range ds.Rows {
		row := &ds.Rows[i]
		names := [3]string{row.Level1, row.Level2, row.Level3}
		keys := [3]float64{row.Level1Sort, row.Level2Sort, row.Level3Sort}

		parent := ""
		for lvl := 0; lvl < maxLevel; lvl++ {
			if names[lvl] == "" {
				break
			}
			id := parent + "/" + names[lvl]
			n, ok := byID[id]
			if !ok {
				n = &node{
					id:      id,
					label:   names[lvl],
					level:   lvl + 1,
					parent:  parent,
					sortKey: keys[lvl],
				}
				byID[id] = n
			}
			if row.HasMeasure() {
				n.measures++
			}
			parent = id
		}
	}

	nodes := make([]node, 0, len(byID))
	for _, n := range byID {
		nodes = append(nodes, *n)
	}
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].level != nodes[j].level {
			return nodes[i].level < nodes[j].level
		}
		if nodes[i].sortKey != nodes[j].sortKey {
			return nodes[i].sortKey > nodes[j].sortKey
		}
		return nodes[i].id < nodes[j].id
	})
	return nodes
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return render(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
