package chart

import (
	"testing"

	"github.com/matzehuels/careatlas/pkg/vega"
)

func TestCoverageLayerAggregatesMappingCount(t *testing.T) {
	sel := NewSelections()
	cfg, _ := ConfigFor(1)
	layer := CoverageLayer(cfg, sel)

	if layer.Mark.Type != "rect" {
		t.Fatalf("mark type = %q, want rect", layer.Mark.Type)
	}
	color := layer.Encoding.Color
	if color.Field != FieldHasMeasure || color.Aggregate != "sum" {
		t.Errorf("color = sum(%s), want sum(%s)", color.Field, FieldHasMeasure)
	}
	scale, ok := color.Scale.(vega.Scale)
	if !ok {
		t.Fatalf("color scale type = %T, want vega.Scale", color.Scale)
	}
	if scale.Scheme != "greys" || !scale.Reverse {
		t.Error("coverage ramp must be the reversed greys scheme so gaps render dark")
	}
	// The legend filter lives on the point layer only; a legend filter here
	// would make coverage counts depend on the legend selection.
	if len(layer.Transform) != 0 {
		t.Errorf("coverage layer has %d transforms, want none", len(layer.Transform))
	}
}

func TestCoverageLayerHostsBrush(t *testing.T) {
	sel := NewSelections()

	tests := []struct {
		level     int
		wantBrush bool
	}{
		{level: 1, wantBrush: true},
		{level: 2, wantBrush: true},
		{level: 3, wantBrush: false},
	}
	for _, tt := range tests {
		cfg, _ := ConfigFor(tt.level)
		layer := CoverageLayer(cfg, sel)
		if got := len(layer.Params) > 0; got != tt.wantBrush {
			t.Errorf("level %d: hosts brush = %v, want %v", tt.level, got, tt.wantBrush)
		}
		if tt.wantBrush && layer.Params[0].Name != sel.BrushName(tt.level) {
			t.Errorf("level %d: brush named %q, want %q", tt.level, layer.Params[0].Name, sel.BrushName(tt.level))
		}
	}
}

func TestCoverageLayerStrokeSeparators(t *testing.T) {
	sel := NewSelections()

	for _, level := range []int{1, 2, 3} {
		cfg, _ := ConfigFor(level)
		layer := CoverageLayer(cfg, sel)
		wantStroke := level != 1
		if got := layer.Mark.Stroke != ""; got != wantStroke {
			t.Errorf("level %d: stroke present = %v, want %v", level, got, wantStroke)
		}
	}
}

func TestExtentLayerExcludesGapRows(t *testing.T) {
	cfg, _ := ConfigFor(2)
	layer := ExtentLayer(cfg)

	if layer.Mark.Type != "line" {
		t.Fatalf("mark type = %q, want line", layer.Mark.Type)
	}
	if len(layer.Transform) != 1 {
		t.Fatalf("extent layer has %d transforms, want 1", len(layer.Transform))
	}
	if expr, ok := layer.Transform[0].Filter.(string); !ok || expr != "datum.has_measure == 1" {
		t.Errorf("extent filter = %v, want datum.has_measure == 1", layer.Transform[0].Filter)
	}
	if layer.Encoding.Detail == nil || layer.Encoding.Detail.Field != "measure_id" {
		t.Error("extent lines must be grouped per measure via the detail channel")
	}
}

func TestPointLayerOpacityRemap(t *testing.T) {
	sel := NewSelections()
	cfg, _ := ConfigFor(1)
	layer := PointLayer(cfg, sel)

	op := layer.Encoding.Opacity
	if op == nil {
		t.Fatal("point layer has no opacity channel")
	}
	scale, ok := op.Scale.(vega.Scale)
	if !ok {
		t.Fatalf("opacity scale type = %T, want vega.Scale", op.Scale)
	}
	domain, ok := scale.Domain.([]float64)
	if !ok || len(domain) != 2 || domain[0] != 0.1 || domain[1] != 1.0 {
		t.Errorf("opacity domain = %v, want [0.1 1]", scale.Domain)
	}
	rng, ok := scale.Range.([]float64)
	if !ok || len(rng) != 2 || rng[0] != 0.0 || rng[1] != 1.0 {
		t.Errorf("opacity range = %v, want [0 1]", scale.Range)
	}
	if !scale.Clamp {
		t.Error("opacity scale must clamp out-of-domain strengths")
	}
}

func TestPointLayerBrushConditionalColor(t *testing.T) {
	sel := NewSelections()

	for _, level := range []int{1, 2} {
		cfg, _ := ConfigFor(level)
		layer := PointLayer(cfg, sel)

		color := layer.Encoding.Color
		if color.Condition == nil {
			t.Fatalf("level %d: point color has no brush condition", level)
		}
		if color.Condition.Param != sel.BrushName(level) {
			t.Errorf("level %d: condition param = %q, want %q", level, color.Condition.Param, sel.BrushName(level))
		}
		if color.Value != UnselectedColor {
			t.Errorf("level %d: fallback color = %v, want %q", level, color.Value, UnselectedColor)
		}
	}

	// Terminal level: no brush, plain phase coloring.
	cfg, _ := ConfigFor(3)
	layer := PointLayer(cfg, sel)
	if layer.Encoding.Color.Condition != nil {
		t.Error("level 3 point color must not be brush-conditional")
	}
	if layer.Encoding.Color.Field != "phase" {
		t.Errorf("level 3 color field = %q, want phase", layer.Encoding.Color.Field)
	}
}

func TestPointLayerGlyphRanges(t *testing.T) {
	sel := NewSelections()

	for _, level := range []int{1, 2, 3} {
		cfg, _ := ConfigFor(level)
		layer := PointLayer(cfg, sel)

		shape := layer.Encoding.Shape
		if shape == nil {
			t.Fatalf("level %d: no shape channel", level)
		}
		scale, ok := shape.Scale.(vega.Scale)
		if !ok {
			t.Fatalf("level %d: shape scale type = %T, want vega.Scale", level, shape.Scale)
		}
		rng, ok := scale.Range.([]string)
		if !ok || len(rng) != 4 {
			t.Fatalf("level %d: shape range = %v, want 4 glyph paths", level, scale.Range)
		}
		// Distinct phases must stay distinguishable at level 1; coarser
		// levels deliberately share glyph slots.
		if level == 1 {
			seen := map[string]bool{}
			for _, g := range rng {
				if seen[g] {
					t.Errorf("level 1 glyphs must not overlap, %q reused", g)
				}
				seen[g] = true
			}
		}
	}
}

func TestTaxonomyAxisSuppression(t *testing.T) {
	cfg, _ := ConfigFor(2)

	withAxis := taxonomyY(cfg, true)
	if _, ok := withAxis.Axis.(vega.Axis); !ok {
		t.Fatalf("axis-bearing channel has %T axis", withAxis.Axis)
	}
	withoutAxis := taxonomyY(cfg, false)
	// Suppression must marshal as explicit null, not be omitted, or the
	// renderer draws a duplicate default axis per layer.
	if raw, ok := withoutAxis.Axis.(interface{ MarshalJSON() ([]byte, error) }); ok {
		b, err := raw.MarshalJSON()
		if err != nil || string(b) != "null" {
			t.Errorf("suppressed axis marshals as %s, want null", b)
		}
	} else {
		t.Errorf("suppressed axis = %v, want explicit null", withoutAxis.Axis)
	}
}
