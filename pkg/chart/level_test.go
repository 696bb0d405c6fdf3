package chart

import (
	"testing"

	"github.com/matzehuels/careatlas/pkg/errors"
)

func TestBuildLevelChartLayerOrder(t *testing.T) {
	sel := NewSelections()

	for _, level := range []int{1, 2, 3} {
		chart, err := BuildLevelChart(level, HeightAuto, sel)
		if err != nil {
			t.Fatalf("BuildLevelChart(%d): %v", level, err)
		}
		if len(chart.Layer) != 3 {
			t.Fatalf("level %d: %d layers, want 3", level, len(chart.Layer))
		}
		// Painting order: rectangles below, lines over them, points on top.
		for i, want := range []string{"rect", "line", "point"} {
			if got := chart.Layer[i].Mark.Type; got != want {
				t.Errorf("level %d: layer %d mark = %q, want %q", level, i, got, want)
			}
		}
		if chart.Width != "container" {
			t.Errorf("level %d: width = %v, want container", level, chart.Width)
		}
		if len(chart.Transform) == 0 {
			t.Errorf("level %d: chart-level transform chain is empty", level)
		}
	}
}

func TestBuildLevelChartRejectsUnknownLevel(t *testing.T) {
	sel := NewSelections()
	for _, level := range []int{0, 4, -1} {
		if _, err := BuildLevelChart(level, HeightAuto, sel); !errors.Is(err, errors.ErrCodeInvalidLevel) {
			t.Errorf("BuildLevelChart(%d) error = %v, want INVALID_LEVEL", level, err)
		}
	}
}
