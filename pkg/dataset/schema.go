package dataset

import "github.com/matzehuels/careatlas/pkg/errors"

// Column names of the schema contract. These are the exact field names the
// external join pipeline writes and the emitted document references.
const (
	FieldMeasureID   = "measure_id"
	FieldMeasureName = "measure_name"
	FieldSourceOrg   = "source_organisation"
	FieldSourceName  = "source_name"

	FieldLevel1 = "level_1"
	FieldLevel2 = "level_2"
	FieldLevel3 = "level_3"

	FieldLevel1Sort = "level_1_sort"
	FieldLevel2Sort = "level_2_sort"
	FieldLevel3Sort = "level_3_sort"

	FieldPhase = "phase"

	FieldStrength        = "strength"
	FieldFixedStrengthL1 = "strength_fixed_level_1"
	FieldFixedStrengthL2 = "strength_fixed_level_2"

	// Optional catalogue columns.
	FieldDataURL       = "data_url"
	FieldSection       = "section"
	FieldGeoResolution = "geo_resolution"
)

// DefaultTable is the table name read from SQLite snapshots.
const DefaultTable = "dataset"

// RequiredFields is the minimum column set the compiler needs. A snapshot
// missing any of these fails the build before any chart is assembled.
var RequiredFields = []string{
	FieldMeasureID,
	FieldMeasureName,
	FieldLevel1,
	FieldLevel2,
	FieldLevel3,
	FieldLevel1Sort,
	FieldLevel2Sort,
	FieldLevel3Sort,
	FieldPhase,
	FieldStrength,
	FieldFixedStrengthL1,
	FieldFixedStrengthL2,
	FieldSourceOrg,
	FieldSourceName,
}

// CheckSchema verifies that every required field is present, returning a
// MISSING_FIELD error naming the first absent column. The root assembler
// calls this again before emitting so that no partial document can ever be
// produced from a malformed snapshot.
func (d *Dataset) CheckSchema() error {
	present := make(map[string]bool, len(d.Fields))
	for _, f := range d.Fields {
		present[f] = true
	}
	for _, f := range RequiredFields {
		if !present[f] {
			return errors.New(errors.ErrCodeMissingField,
				"dataset is missing required field %q", f)
		}
	}
	return nil
}
