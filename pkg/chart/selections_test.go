package chart

import (
	"testing"

	"github.com/matzehuels/careatlas/pkg/vega"
)

func TestSelectionNamesAreLevelQualified(t *testing.T) {
	sel := NewSelections()

	seen := map[string]bool{sel.SortOrderName(): true}
	for level := 1; level <= 3; level++ {
		name := sel.LegendName(level)
		if name == "" {
			t.Fatalf("LegendName(%d) is empty", level)
		}
		if seen[name] {
			t.Errorf("legend name %q reused across levels", name)
		}
		seen[name] = true
	}
	for level := 1; level <= 2; level++ {
		name := sel.BrushName(level)
		if name == "" {
			t.Fatalf("BrushName(%d) is empty", level)
		}
		if seen[name] {
			t.Errorf("brush name %q reused", name)
		}
		seen[name] = true
	}
}

func TestNoBrushAtTerminalLevel(t *testing.T) {
	sel := NewSelections()
	if name := sel.BrushName(3); name != "" {
		t.Errorf("BrushName(3) = %q, want empty: level 3 has no downstream chart", name)
	}
	if _, ok := sel.BrushParam(3); ok {
		t.Error("BrushParam(3) should not exist")
	}
}

func TestSortOrderParamDefaults(t *testing.T) {
	sel := NewSelections()
	p := sel.SortOrderParam()

	if p.Value != SortKeyStrength {
		t.Errorf("initial sort order = %v, want %q", p.Value, SortKeyStrength)
	}

	bind, ok := p.Bind.(vega.Bind)
	if !ok {
		t.Fatalf("Bind type = %T, want vega.Bind", p.Bind)
	}
	if bind.Input != "radio" {
		t.Errorf("bind input = %q, want radio", bind.Input)
	}
	if len(bind.Options) != 2 || bind.Options[0] != SortKeyStrength || bind.Options[1] != SortKeyPhaseBitmap {
		t.Errorf("bind options = %v, want [%s %s]", bind.Options, SortKeyStrength, SortKeyPhaseBitmap)
	}
}

func TestLegendParamInitiallySelectsAllPhases(t *testing.T) {
	sel := NewSelections()
	p := sel.LegendParam(2)

	values, ok := p.Value.([]phaseValue)
	if !ok {
		t.Fatalf("Value type = %T, want []phaseValue", p.Value)
	}
	if len(values) != 4 {
		t.Errorf("initial legend selection has %d phases, want 4", len(values))
	}
	if p.Bind != vega.BindLegend {
		t.Errorf("Bind = %v, want %q", p.Bind, vega.BindLegend)
	}
	if p.Select == nil || p.Select.Type != "point" {
		t.Error("legend param must be a point selection")
	}
}

func TestBrushParamIsVerticalInterval(t *testing.T) {
	sel := NewSelections()
	p, ok := sel.BrushParam(1)
	if !ok {
		t.Fatal("BrushParam(1) missing")
	}
	if p.Value != nil {
		t.Errorf("brush initial value = %v, want unset", p.Value)
	}
	if p.Select == nil || p.Select.Type != "interval" {
		t.Fatal("brush must be an interval selection")
	}
	if len(p.Select.Encodings) != 1 || p.Select.Encodings[0] != "y" {
		t.Errorf("brush encodings = %v, want [y]", p.Select.Encodings)
	}
}
