package chart

import "github.com/matzehuels/careatlas/pkg/vega"

// HeightAuto is the fixedHeight sentinel requesting step-based auto-sizing
// instead of a concrete pixel height.
const HeightAuto = 0

// BuildLevelChart composes the three layers for one taxonomy level into a
// single layered chart. fixedHeight reserves a stable vertical space when
// positive (used for level 1); HeightAuto sizes the chart by row step
// (levels 2 and 3, whose row counts vary with the snapshot).
//
// Layer order matters for painting: rectangles first, extent lines over
// them, points on top.
func BuildLevelChart(level int, fixedHeight float64, sel *Selections) (vega.Chart, error) {
	cfg, err := ConfigFor(level)
	if err != nil {
		return vega.Chart{}, err
	}

	var height any
	if fixedHeight > 0 {
		height = fixedHeight
	} else {
		height = vega.Step{Step: cfg.RowStep}
	}

	return vega.Chart{
		Height:    height,
		Width:     "container",
		Transform: ChartTransforms(cfg, sel),
		Layer: []vega.Layer{
			CoverageLayer(cfg, sel),
			ExtentLayer(cfg),
			PointLayer(cfg, sel),
		},
		Resolve: chartResolve(),
	}, nil
}
