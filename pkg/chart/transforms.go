package chart

import (
	"fmt"
	"strings"

	"github.com/matzehuels/careatlas/pkg/dataset"
	"github.com/matzehuels/careatlas/pkg/vega"
)

// phaseBitmapExpr builds the chained conditional deriving the phase-encoded
// sort value from the phase column, using each phase's bit value.
func phaseBitmapExpr() string {
	var b strings.Builder
	for i, p := range dataset.Phases {
		if i == len(dataset.Phases)-1 {
			fmt.Fprintf(&b, "%d", p.Bitmap())
			break
		}
		fmt.Fprintf(&b, "datum.%s == '%s' ? %d : ", dataset.FieldPhase, p, p.Bitmap())
	}
	return b.String()
}

// ChartTransforms is the transform chain applied to every layer of one
// level chart, in order:
//
//  1. derive the mapping indicator the coverage layer aggregates
//  2. derive the phase bitmap candidate sort value
//  3. duplicate each row once per candidate sort key (fold), tagging each
//     duplicate with the key name and its numeric value
//  4. keep only the duplicates matching the active sort-order selection
//  5. apply each upstream level's brush conjunctively
//
// Step 4 guarantees exactly one duplicate per source row survives, so
// downstream aggregations are unaffected by the duplication.
func ChartTransforms(cfg LevelConfig, sel *Selections) []vega.Transform {
	transforms := []vega.Transform{
		{
			Calculate: fmt.Sprintf("isValid(datum.%s) && datum.%s != '' ? 1 : 0",
				dataset.FieldMeasureID, dataset.FieldMeasureID),
			As: FieldHasMeasure,
		},
		{
			Calculate: phaseBitmapExpr(),
			As:        FieldPhaseBitmap,
		},
		{
			Fold: []string{SortKeyStrength, SortKeyPhaseBitmap},
			As:   []string{FieldSortKey, FieldSortValue},
		},
		{
			Filter: fmt.Sprintf("datum.%s == %s", FieldSortKey, sel.SortOrderName()),
		},
	}

	for _, upstream := range cfg.Upstream {
		transforms = append(transforms, vega.Transform{
			Filter: vega.ParamRef{Param: sel.BrushName(upstream)},
		})
	}

	return transforms
}

// PointTransforms is the extra filter chain of the domain-phase point layer:
// the per-level synthetic-row suppression (levels 1 and 2 only) and the
// legend filter. The legend filter lives here, not at chart level, so the
// coverage aggregation stays independent of the legend selection.
func PointTransforms(cfg LevelConfig, sel *Selections) []vega.Transform {
	var transforms []vega.Transform

	if cfg.FixedStrengthField != "" {
		// Zero is the exact gap sentinel; genuine mappings never carry it.
		transforms = append(transforms, vega.Transform{
			Filter: fmt.Sprintf("datum.%s != 0", cfg.FixedStrengthField),
		})
	}

	transforms = append(transforms, vega.Transform{
		Filter: vega.ParamRef{Param: sel.LegendName(cfg.Level), Empty: vega.Bool(false)},
	})

	return transforms
}

// LineTransforms is the measure-extent layer's filter chain: gap rows carry
// no measure and must not collapse into a phantom line.
func LineTransforms() []vega.Transform {
	return []vega.Transform{
		{Filter: fmt.Sprintf("datum.%s == 1", FieldHasMeasure)},
	}
}
