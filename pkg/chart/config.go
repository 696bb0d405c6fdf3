// Package chart compiles the joined care-taxonomy snapshot into a layered,
// linked Vega-Lite document.
//
// The package is organized the way the document is: per-level configuration
// ([LevelConfig]), selection declarations ([Selections]), the shared
// transform chains, the three layer builders, [BuildLevelChart] composing
// one level's layers, and [Assemble] stacking the three level charts into
// the final document.
//
// The compiler is a pure function of (dataset, options): it performs no I/O
// and holds no mutable state, so identical inputs always produce
// byte-identical documents.
package chart

import (
	"github.com/matzehuels/careatlas/pkg/dataset"
	"github.com/matzehuels/careatlas/pkg/errors"
)

// PhaseColors maps each phase to its fixed categorical color.
// The order matches dataset.Phases (demand, supply, operate, outcome).
var PhaseColors = []string{"#d62728", "#ff7f0e", "#1f77b4", "#2ca02c"}

// UnselectedColor is the flat fill for points outside the active brush at
// levels 1 and 2. Rows render dimmed rather than hidden so that downstream
// charts can still filter on the brush.
const UnselectedColor = "lightgray"

// Sub-row glyphs, one SVG path per phase, on the mark's unit square. The
// glyphs tile the row instead of overlapping, so several phases stacked on
// one taxonomy row stay distinguishable.
var (
	// glyphQuarters tiles the row into four vertical quarters, one per phase.
	glyphQuarters = []string{
		"M -1 -1 L 1 -1 L 1 -0.5 L -1 -0.5 Z",
		"M -1 -0.5 L 1 -0.5 L 1 0 L -1 0 Z",
		"M -1 0 L 1 0 L 1 0.5 L -1 0.5 Z",
		"M -1 0.5 L 1 0.5 L 1 1 L -1 1 Z",
	}

	// glyphHalves shares the top half between demand/supply and the bottom
	// half between operate/outcome. This is a data-dependent simplification:
	// no level-2 node mixes all four phases in a conflicting way.
	glyphHalves = []string{
		"M -1 -1 L 1 -1 L 1 0 L -1 0 Z",
		"M -1 -1 L 1 -1 L 1 0 L -1 0 Z",
		"M -1 0 L 1 0 L 1 1 L -1 1 Z",
		"M -1 0 L 1 0 L 1 1 L -1 1 Z",
	}

	// glyphCentered is one centered sub-row for all phases; each level-3
	// node carries exactly one phase in practice.
	glyphCentered = []string{
		"M -1 -0.5 L 1 -0.5 L 1 0.5 L -1 0.5 Z",
		"M -1 -0.5 L 1 -0.5 L 1 0.5 L -1 0.5 Z",
		"M -1 -0.5 L 1 -0.5 L 1 0.5 L -1 0.5 Z",
		"M -1 -0.5 L 1 -0.5 L 1 0.5 L -1 0.5 Z",
	}
)

// LevelConfig collects everything that differs between the three level
// charts: field bindings, separators, glyph set, tooltip depth, and the
// synthetic-row filter. Looking the record up once per level replaces
// conditional branching scattered across the layer builders.
type LevelConfig struct {
	// Level is the taxonomy level, 1 (coarsest) to 3 (most granular).
	Level int

	// NameField and SortField are the taxonomy columns bound to this level.
	NameField string
	SortField string

	// FixedStrengthField is the zero-sentinel column whose zero rows are
	// synthetic gap placeholders, excluded from the point layer. Empty at
	// level 3, where no synthetic rows exist.
	FixedStrengthField string

	// AxisTitle labels the vertical taxonomy axis.
	AxisTitle string

	// Separator stroke between adjacent coverage rectangles. Level 1 rows
	// are tall enough to need none.
	StrokeWidth   float64
	StrokeOpacity float64

	// ShapeRange holds one glyph path per phase, aligned with dataset.Phases.
	ShapeRange []string

	// GlyphSize is the point mark size for this level's row density.
	GlyphSize float64

	// RowStep is the per-row step height used when the chart auto-sizes.
	RowStep float64

	// CountNote annotates the coverage tooltip where overlapping same-phase
	// measures may hide behind each other.
	CountNote string

	// HasBrush reports whether this level's chart carries an interval brush.
	// Level 3 is terminal and has no downstream chart to filter.
	HasBrush bool

	// Upstream lists the levels whose brushes filter this chart, applied
	// conjunctively.
	Upstream []int
}

var levelConfigs = map[int]LevelConfig{
	1: {
		Level:              1,
		NameField:          dataset.FieldLevel1,
		SortField:          dataset.FieldLevel1Sort,
		FixedStrengthField: dataset.FieldFixedStrengthL1,
		AxisTitle:          "Service dimension",
		ShapeRange:         glyphQuarters,
		GlyphSize:          220,
		RowStep:            48,
		CountNote:          " (same-phase measures may overlap)",
		HasBrush:           true,
	},
	2: {
		Level:              2,
		NameField:          dataset.FieldLevel2,
		SortField:          dataset.FieldLevel2Sort,
		FixedStrengthField: dataset.FieldFixedStrengthL2,
		AxisTitle:          "Service area",
		StrokeWidth:        0.5,
		StrokeOpacity:      0.2,
		ShapeRange:         glyphHalves,
		GlyphSize:          120,
		RowStep:            18,
		CountNote:          " (same-phase measures may overlap)",
		HasBrush:           true,
		Upstream:           []int{1},
	},
	3: {
		Level:         3,
		NameField:     dataset.FieldLevel3,
		SortField:     dataset.FieldLevel3Sort,
		AxisTitle:     "Measure topic",
		StrokeWidth:   0.5,
		StrokeOpacity: 0.2,
		ShapeRange:    glyphCentered,
		GlyphSize:     60,
		RowStep:       11,
		Upstream:      []int{1, 2},
	},
}

// ConfigFor returns the configuration record for a taxonomy level.
func ConfigFor(level int) (LevelConfig, error) {
	cfg, ok := levelConfigs[level]
	if !ok {
		return LevelConfig{}, errors.New(errors.ErrCodeInvalidLevel,
			"taxonomy level must be 1, 2, or 3, got %d", level)
	}
	return cfg, nil
}
