package chart

import (
	"strings"
	"testing"

	"github.com/matzehuels/careatlas/pkg/vega"
)

// brushFilters extracts the param names of all ParamRef filters in a chain.
func brushFilters(transforms []vega.Transform) []string {
	var names []string
	for _, tr := range transforms {
		if ref, ok := tr.Filter.(vega.ParamRef); ok {
			names = append(names, ref.Param)
		}
	}
	return names
}

func TestChartTransformsUpstreamBrushes(t *testing.T) {
	sel := NewSelections()

	tests := []struct {
		level int
		want  []string
	}{
		{level: 1, want: nil},
		{level: 2, want: []string{"brush_level1"}},
		{level: 3, want: []string{"brush_level1", "brush_level2"}},
	}
	for _, tt := range tests {
		cfg, err := ConfigFor(tt.level)
		if err != nil {
			t.Fatalf("ConfigFor(%d): %v", tt.level, err)
		}
		got := brushFilters(ChartTransforms(cfg, sel))
		if len(got) != len(tt.want) {
			t.Errorf("level %d: brush filters = %v, want %v", tt.level, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("level %d: brush filter %d = %q, want %q", tt.level, i, got[i], tt.want[i])
			}
		}
	}
}

func TestChartTransformsSortMechanism(t *testing.T) {
	sel := NewSelections()
	cfg, _ := ConfigFor(1)
	transforms := ChartTransforms(cfg, sel)

	var foldSeen, filterSeen bool
	for _, tr := range transforms {
		if len(tr.Fold) > 0 {
			foldSeen = true
			if tr.Fold[0] != SortKeyStrength || tr.Fold[1] != SortKeyPhaseBitmap {
				t.Errorf("fold inputs = %v, want [%s %s]", tr.Fold, SortKeyStrength, SortKeyPhaseBitmap)
			}
			as, ok := tr.As.([]string)
			if !ok || len(as) != 2 || as[0] != FieldSortKey || as[1] != FieldSortValue {
				t.Errorf("fold outputs = %v, want [%s %s]", tr.As, FieldSortKey, FieldSortValue)
			}
		}
		if expr, ok := tr.Filter.(string); ok && strings.Contains(expr, FieldSortKey) {
			filterSeen = true
			if !strings.Contains(expr, sel.SortOrderName()) {
				t.Errorf("sort filter %q does not reference the sort-order param", expr)
			}
		}
	}
	if !foldSeen {
		t.Error("transform chain has no fold step")
	}
	if !filterSeen {
		t.Error("transform chain has no sort-key filter")
	}
}

func TestChartTransformsDeriveBothSortValues(t *testing.T) {
	sel := NewSelections()
	cfg, _ := ConfigFor(2)
	transforms := ChartTransforms(cfg, sel)

	// The fold duplicates rows, so exactly one filter must collapse the
	// duplication before any brush filter runs, or coverage counts double.
	foldIdx, sortFilterIdx := -1, -1
	for i, tr := range transforms {
		if len(tr.Fold) > 0 {
			foldIdx = i
		}
		if expr, ok := tr.Filter.(string); ok && strings.Contains(expr, FieldSortKey) {
			sortFilterIdx = i
		}
	}
	if foldIdx < 0 || sortFilterIdx < 0 {
		t.Fatal("fold or sort filter missing")
	}
	if sortFilterIdx != foldIdx+1 {
		t.Errorf("sort filter at index %d, want immediately after fold (index %d)", sortFilterIdx, foldIdx+1)
	}
	for _, name := range brushFilters(transforms) {
		if name == "" {
			t.Error("brush filter with empty param name")
		}
	}
}

func TestPhaseBitmapExprCoversAllPhases(t *testing.T) {
	expr := phaseBitmapExpr()
	for _, frag := range []string{"'demand' ? 1", "'supply' ? 2", "'operate' ? 4", "8"} {
		if !strings.Contains(expr, frag) {
			t.Errorf("bitmap expression %q missing %q", expr, frag)
		}
	}
}

func TestPointTransforms(t *testing.T) {
	sel := NewSelections()

	tests := []struct {
		level          int
		wantFixedCount int
	}{
		// Levels 1 and 2 suppress synthetic gap rows via the zero sentinel.
		{level: 1, wantFixedCount: 1},
		{level: 2, wantFixedCount: 1},
		// Level 3 has no synthetic rows to suppress.
		{level: 3, wantFixedCount: 0},
	}
	for _, tt := range tests {
		cfg, _ := ConfigFor(tt.level)
		transforms := PointTransforms(cfg, sel)

		var fixedCount int
		var legendRef *vega.ParamRef
		for _, tr := range transforms {
			switch f := tr.Filter.(type) {
			case string:
				if strings.Contains(f, "!= 0") {
					fixedCount++
				}
			case vega.ParamRef:
				ref := f
				legendRef = &ref
			}
		}
		if fixedCount != tt.wantFixedCount {
			t.Errorf("level %d: %d zero-sentinel filters, want %d", tt.level, fixedCount, tt.wantFixedCount)
		}
		if legendRef == nil {
			t.Fatalf("level %d: no legend filter on point layer", tt.level)
		}
		if legendRef.Param != sel.LegendName(tt.level) {
			t.Errorf("level %d: legend filter references %q, want %q", tt.level, legendRef.Param, sel.LegendName(tt.level))
		}
		if legendRef.Empty == nil || *legendRef.Empty {
			t.Errorf("level %d: legend filter must set empty:false so a cleared legend hides everything", tt.level)
		}
	}
}
