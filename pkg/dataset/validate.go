package dataset

import "github.com/matzehuels/careatlas/pkg/errors"

// Validate checks every row against the value-level invariants. It returns
// the first violation found; the caller aborts the whole build, never
// emitting a partial document.
//
// Checks:
//   - phase values must be one of the four known phases (an unrecognized
//     phase would silently fall outside every scale domain downstream)
//   - a genuine mapping must carry a nonzero strength: zero or absent
//     strength on a row with a measure is indistinguishable from a gap
//     sentinel and must be resolved upstream
//   - a genuine mapping must not carry a zero per-level fixed strength,
//     which would silently suppress the point in the level-1/2 layers
func (d *Dataset) Validate() error {
	for i := range d.Rows {
		row := &d.Rows[i]
		idx := i + 1

		if row.Level3 != "" && !row.Phase.Valid() {
			return errors.New(errors.ErrCodeInvalidPhase,
				"row %d: unrecognized phase %q for node %q (known: demand, supply, operate, outcome)",
				idx, string(row.Phase), row.Level3)
		}

		if !row.HasMeasure() {
			continue
		}

		if row.Strength == nil || *row.Strength == 0 {
			return errors.New(errors.ErrCodeAmbiguousStrength,
				"row %d: measure %q has zero or missing strength; ambiguous with gap sentinel, resolve upstream",
				idx, row.MeasureID)
		}
		if row.FixedStrengthL1 == 0 || row.FixedStrengthL2 == 0 {
			return errors.New(errors.ErrCodeAmbiguousStrength,
				"row %d: measure %q has a zero fixed-strength field on a genuine mapping",
				idx, row.MeasureID)
		}
	}
	return nil
}
