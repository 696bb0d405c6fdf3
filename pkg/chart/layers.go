package chart

import (
	"github.com/matzehuels/careatlas/pkg/dataset"
	"github.com/matzehuels/careatlas/pkg/vega"
)

// taxonomyY is the vertical taxonomy channel shared by all three layers of
// one chart: the level's name field, sorted descending by the level's sort
// key so the "users" dimension renders topmost. Every layer must use this
// exact field/sort pair or the layers drift apart vertically.
func taxonomyY(cfg LevelConfig, withAxis bool) *vega.Channel {
	ch := &vega.Channel{
		Field: cfg.NameField,
		Type:  "nominal",
		Sort:  &vega.Sort{Field: cfg.SortField, Op: "max", Order: "descending"},
	}
	if withAxis {
		ch.Axis = vega.Axis{Title: cfg.AxisTitle, LabelLimit: 220}
	} else {
		ch.Axis = vega.Null
	}
	return ch
}

// measureX is the horizontal measure-identity channel, ordered by the
// currently active sort key's value. The axis is suppressed: measure
// identity is conveyed by tooltip, not by tick labels.
func measureX(cfg LevelConfig) *vega.Channel {
	return &vega.Channel{
		Field: dataset.FieldMeasureID,
		Type:  "nominal",
		Sort:  &vega.Sort{Field: FieldSortValue, Op: "max", Order: "ascending"},
		Axis: vega.Axis{
			Title:  vega.Null,
			Labels: vega.Bool(false),
			Ticks:  vega.Bool(false),
		},
	}
}

// CoverageLayer builds the coverage-count layer: one filled rectangle per
// taxonomy node, colored by the number of genuine measure mappings on an
// inverted ramp so that gaps, not abundance, stand out dark. This layer
// also hosts the level's brush param, when the level has one.
func CoverageLayer(cfg LevelConfig, sel *Selections) vega.Layer {
	mark := &vega.Mark{Type: "rect"}
	if cfg.StrokeWidth > 0 {
		// Dense levels get a faint separator between adjacent rows.
		mark.Stroke = "white"
		mark.StrokeWidth = cfg.StrokeWidth
		mark.StrokeOpacity = cfg.StrokeOpacity
	}

	layer := vega.Layer{
		Mark: mark,
		Encoding: &vega.Encoding{
			Y: taxonomyY(cfg, true),
			Color: &vega.Channel{
				Field:     FieldHasMeasure,
				Aggregate: "sum",
				Type:      "quantitative",
				Scale:     vega.Scale{Scheme: "greys", Reverse: true},
				Legend:    map[string]any{"title": "Mapped measures"},
			},
			Tooltip: []vega.TooltipField{
				{Field: cfg.NameField, Type: "nominal", Title: cfg.AxisTitle},
				{
					Field:     FieldHasMeasure,
					Aggregate: "sum",
					Type:      "quantitative",
					Title:     "Mapped measures" + cfg.CountNote,
				},
			},
		},
	}

	if brush, ok := sel.BrushParam(cfg.Level); ok {
		layer.Params = []vega.Param{brush}
	}

	return layer
}

// ExtentLayer builds the measure-extent line layer: one vertical line per
// distinct measure, spanning the topmost to bottommost taxonomy row the
// measure maps to. It reuses the coverage layer's exact vertical channel so
// the two layers align pixel-for-pixel.
func ExtentLayer(cfg LevelConfig) vega.Layer {
	return vega.Layer{
		Mark: &vega.Mark{
			Type:    "line",
			Color:   "#b5b5b5",
			Size:    1,
			Opacity: 0.5,
		},
		Transform: LineTransforms(),
		Encoding: &vega.Encoding{
			X:      measureX(cfg),
			Y:      taxonomyY(cfg, false),
			Detail: &vega.Channel{Field: dataset.FieldMeasureID, Type: "nominal"},
		},
	}
}

// phaseScale is the fixed categorical phase color map.
func phaseScale() vega.Scale {
	domain := make([]string, len(dataset.Phases))
	for i, p := range dataset.Phases {
		domain[i] = string(p)
	}
	return vega.Scale{Domain: domain, Range: PhaseColors}
}

// phaseShapeScale maps phases to the level's sub-row glyphs.
func phaseShapeScale(cfg LevelConfig) vega.Scale {
	domain := make([]string, len(dataset.Phases))
	for i, p := range dataset.Phases {
		domain[i] = string(p)
	}
	return vega.Scale{Domain: domain, Range: cfg.ShapeRange}
}

// pointColor builds the point layer's fill channel. At level 3 points are
// always colored by phase. At levels 1 and 2 the phase coloring is gated on
// the level's own brush: rows outside the brush render flat light gray,
// dimmed but still present, so downstream charts can filter on the brush.
func pointColor(cfg LevelConfig, sel *Selections) *vega.Channel {
	if cfg.Level == 3 {
		return &vega.Channel{
			Field:  dataset.FieldPhase,
			Type:   "nominal",
			Scale:  phaseScale(),
			Legend: map[string]any{"title": "Phase"},
		}
	}
	return &vega.Channel{
		Condition: &vega.Condition{
			ParamRef: vega.ParamRef{Param: sel.BrushName(cfg.Level)},
			Field:    dataset.FieldPhase,
			Type:     "nominal",
			Scale:    phaseScale(),
			Legend:   map[string]any{"title": "Phase"},
		},
		Value: UnselectedColor,
	}
}

// pointTooltip lists source and measure attributes plus the taxonomy names
// at every level up to and including the active one.
func pointTooltip(cfg LevelConfig) []vega.TooltipField {
	fields := []vega.TooltipField{
		{Field: dataset.FieldSourceOrg, Type: "nominal", Title: "Organisation"},
		{Field: dataset.FieldSourceName, Type: "nominal", Title: "Source"},
		{Field: dataset.FieldMeasureName, Type: "nominal", Title: "Measure"},
		{Field: dataset.FieldStrength, Type: "quantitative", Title: "Strength", Format: ".2f"},
	}
	for level := 1; level <= cfg.Level; level++ {
		lc := levelConfigs[level]
		fields = append(fields, vega.TooltipField{
			Field: lc.NameField,
			Type:  "nominal",
			Title: lc.AxisTitle,
		})
	}
	fields = append(fields,
		vega.TooltipField{Field: dataset.FieldPhase, Type: "nominal", Title: "Phase"},
		vega.TooltipField{Field: dataset.FieldMeasureID, Type: "nominal", Title: "Measure ID"},
	)
	return fields
}

// PointLayer builds the domain-phase point layer: one mark per
// (taxonomy node, measure) mapping edge. Shape encodes the phase as
// non-overlapping sub-row glyphs; opacity remaps strength from [0.1, 1.0]
// onto the full [0, 1] range, replacing the default scale that would
// compress contrast into [0.3, 0.8]. This layer hosts the level's legend
// filter param.
func PointLayer(cfg LevelConfig, sel *Selections) vega.Layer {
	return vega.Layer{
		Mark: &vega.Mark{
			Type:   "point",
			Filled: vega.Bool(true),
			Size:   cfg.GlyphSize,
		},
		Params:    []vega.Param{sel.LegendParam(cfg.Level)},
		Transform: PointTransforms(cfg, sel),
		Encoding: &vega.Encoding{
			X:     measureX(cfg),
			Y:     taxonomyY(cfg, false),
			Shape: &vega.Channel{
				Field:  dataset.FieldPhase,
				Type:   "nominal",
				Scale:  phaseShapeScale(cfg),
				Legend: vega.Null,
			},
			Color: pointColor(cfg, sel),
			Opacity: &vega.Channel{
				Field: dataset.FieldStrength,
				Type:  "quantitative",
				Scale: vega.Scale{
					Domain: []float64{0.1, 1.0},
					Range:  []float64{0.0, 1.0},
					Clamp:  true,
				},
				Legend: vega.Null,
			},
			Tooltip: pointTooltip(cfg),
		},
	}
}
