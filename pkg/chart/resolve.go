package chart

import "github.com/matzehuels/careatlas/pkg/vega"

// Scale resolution policy. Two scopes:
//
// Within one level chart, color and shape resolve independently so each
// level's legend and coloring is self-contained, while both position
// channels stay shared across the three layers (the Vega-Lite default),
// which is what keeps rect, line, and point vertically aligned.
//
// Across the three level charts, the color scale resolves independently so
// each level's coverage ramp and phase legend is computed from its own
// visible rows, not the union.

// chartResolve is the per-chart policy applied by BuildLevelChart.
func chartResolve() *vega.Resolve {
	return &vega.Resolve{
		Scale: map[string]string{
			"color": vega.ResolveIndependent,
			"shape": vega.ResolveIndependent,
		},
	}
}

// documentResolve is the document-wide policy applied by Assemble.
func documentResolve() *vega.Resolve {
	return &vega.Resolve{
		Scale: map[string]string{
			"color": vega.ResolveIndependent,
		},
	}
}
