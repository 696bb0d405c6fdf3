package chart

import (
	"fmt"

	"github.com/matzehuels/careatlas/pkg/dataset"
	"github.com/matzehuels/careatlas/pkg/vega"
)

// Names of the derived fields the transform pipeline introduces.
const (
	// FieldHasMeasure is 1 for rows with a genuine measure mapping, 0 for
	// gap rows. The coverage layer sums it per taxonomy node.
	FieldHasMeasure = "has_measure"

	// FieldSortKey and FieldSortValue are the fold outputs of the dynamic
	// sort-key mechanism: each source row is duplicated once per candidate
	// key, tagged with the key name and carrying its numeric value.
	FieldSortKey   = "sort_key"
	FieldSortValue = "sort_value"

	// FieldPhaseBitmap is the phase-encoded ordinal sort value, computed
	// before the fold so it can serve as a candidate key.
	FieldPhaseBitmap = "phase_bitmap"
)

// The two candidate sort keys. These are the fold's input field names and
// therefore the values FieldSortKey takes.
const (
	SortKeyStrength    = dataset.FieldStrength
	SortKeyPhaseBitmap = FieldPhaseBitmap
)

// Selections holds the named interaction handles shared by every layer of
// the document. Names are level-qualified so that two level charts can
// never silently share one selection's state; building a second document
// reuses the same names, which is safe because each document carries its
// own runtime state.
type Selections struct {
	sortOrder string
	legend    map[int]string
	brush     map[int]string
}

// NewSelections creates the document's selection handles with their
// canonical names.
func NewSelections() *Selections {
	s := &Selections{
		sortOrder: "sort_order",
		legend:    make(map[int]string, 3),
		brush:     make(map[int]string, 2),
	}
	for level := 1; level <= 3; level++ {
		s.legend[level] = fmt.Sprintf("phase_legend_level%d", level)
	}
	// Level 3 is terminal: no downstream chart to filter, so no brush.
	for level := 1; level <= 2; level++ {
		s.brush[level] = fmt.Sprintf("brush_level%d", level)
	}
	return s
}

// SortOrderName returns the document-wide sort-order param name.
func (s *Selections) SortOrderName() string { return s.sortOrder }

// LegendName returns the level's legend-filter param name.
func (s *Selections) LegendName(level int) string { return s.legend[level] }

// BrushName returns the level's brush param name, or "" for level 3.
func (s *Selections) BrushName(level int) string { return s.brush[level] }

// SortOrderParam declares the document-wide sort-order toggle: single
// valued, initial state "strength", switchable to the phase bitmap via a
// radio binding. Declared once at the top level of the document.
func (s *Selections) SortOrderParam() vega.Param {
	return vega.Param{
		Name:  s.sortOrder,
		Value: SortKeyStrength,
		Bind: vega.Bind{
			Input:   "radio",
			Options: []string{SortKeyStrength, SortKeyPhaseBitmap},
			Name:    "Order measures by: ",
		},
	}
}

// phaseValue is one initial legend-selection entry.
type phaseValue struct {
	Phase dataset.Phase `json:"phase"`
}

// LegendParam declares one level's legend filter: a set-valued selection
// over the four phases, bound to the chart's color legend. The initial
// value selects all four phases; references use empty:false so that
// clearing the selection is the degenerate all-filtered state rather than
// falling back to "match everything".
func (s *Selections) LegendParam(level int) vega.Param {
	values := make([]phaseValue, len(dataset.Phases))
	for i, p := range dataset.Phases {
		values[i] = phaseValue{Phase: p}
	}
	return vega.Param{
		Name:   s.legend[level],
		Value:  values,
		Select: &vega.Select{Type: "point", Fields: []string{dataset.FieldPhase}},
		Bind:   vega.BindLegend,
	}
}

// BrushParam declares one level's interval brush over the vertical taxonomy
// axis. The second return value is false for level 3. The initial state is
// unset, which downstream filters interpret as "everything visible".
func (s *Selections) BrushParam(level int) (vega.Param, bool) {
	name, ok := s.brush[level]
	if !ok {
		return vega.Param{}, false
	}
	return vega.Param{
		Name:   name,
		Select: &vega.Select{Type: "interval", Encodings: []string{"y"}},
	}, true
}
