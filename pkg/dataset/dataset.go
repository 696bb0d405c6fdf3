// Package dataset implements the schema contract for the joined care-taxonomy
// snapshot consumed by the compiler.
//
// The snapshot is produced by an external join pipeline and is strictly
// read-only here: one flat table where each row carries one taxonomy node's
// identity at all three levels plus the mapped measure/source attributes, or
// empty measure fields when the node has no mapping (a "gap row").
//
// Two on-disk formats are supported: CSV (the join pipeline's default) and a
// single-table SQLite snapshot. Both decode into the same [Dataset] and go
// through the same schema and value validation.
package dataset

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/careatlas/pkg/errors"
)

// Phase classifies a level-3 taxonomy node's role in the care pathway.
type Phase string

// The four known phases. Any other value in the snapshot is a fatal
// data error: an unknown phase would fall outside every color and shape
// scale domain and render as an invisible blank point.
const (
	PhaseDemand  Phase = "demand"
	PhaseSupply  Phase = "supply"
	PhaseOperate Phase = "operate"
	PhaseOutcome Phase = "outcome"
)

// Phases lists the known phases in pathway order (demand first).
var Phases = []Phase{PhaseDemand, PhaseSupply, PhaseOperate, PhaseOutcome}

// Valid reports whether p is one of the four known phases.
func (p Phase) Valid() bool {
	switch p {
	case PhaseDemand, PhaseSupply, PhaseOperate, PhaseOutcome:
		return true
	}
	return false
}

// Bitmap returns the phase's bit value used by the phase-encoded sort key.
// Demand carries the lowest bit so demand-phase measures sort leftmost.
func (p Phase) Bitmap() int {
	switch p {
	case PhaseDemand:
		return 1
	case PhaseSupply:
		return 2
	case PhaseOperate:
		return 4
	case PhaseOutcome:
		return 8
	}
	return 0
}

// Row is one joined (taxonomy-node, measure, source) record.
//
// JSON tags match the snapshot's column names exactly; they are also the
// field names referenced by the emitted document, so inline-data mode and
// URL mode see the same schema. Measure-side fields use omitempty so that
// gap rows serialize their measure side as absent (null to the renderer).
type Row struct {
	MeasureID   string `json:"measure_id,omitempty"`
	MeasureName string `json:"measure_name,omitempty"`
	SourceOrg   string `json:"source_organisation,omitempty"`
	SourceName  string `json:"source_name,omitempty"`

	Level1 string `json:"level_1"`
	Level2 string `json:"level_2"`
	Level3 string `json:"level_3"`

	Level1Sort float64 `json:"level_1_sort"`
	Level2Sort float64 `json:"level_2_sort"`
	Level3Sort float64 `json:"level_3_sort"`

	Phase Phase `json:"phase"`

	// Strength is the precomputed measure reliability score. Absent on gap
	// rows; never zero on a genuine mapping (see Validate).
	Strength *float64 `json:"strength,omitempty"`

	// Per-level zero-sentinel strength fields. Gap rows carry exactly zero
	// so they survive the coverage aggregation while being excluded from
	// the point layer.
	FixedStrengthL1 float64 `json:"strength_fixed_level_1"`
	FixedStrengthL2 float64 `json:"strength_fixed_level_2"`

	// Optional catalogue attributes, passed through untyped.
	DataURL       string `json:"data_url,omitempty"`
	Section       string `json:"section,omitempty"`
	GeoResolution string `json:"geo_resolution,omitempty"`
}

// HasMeasure reports whether the row carries a genuine measure mapping,
// as opposed to being a synthetic gap row.
func (r *Row) HasMeasure() bool {
	return r.MeasureID != ""
}

// Dataset is one frozen snapshot of the joined table.
type Dataset struct {
	// Fields are the column names present in the snapshot, in source order.
	Fields []string

	// Rows are the joined records, in source order.
	Rows []Row
}

// HasField reports whether the snapshot contains the named column.
func (d *Dataset) HasField(name string) bool {
	for _, f := range d.Fields {
		if f == name {
			return true
		}
	}
	return false
}

// Load reads a snapshot from path, dispatching on the file extension:
// .db/.sqlite/.sqlite3 open as SQLite (table "dataset"), everything else
// parses as CSV. The returned dataset is schema-checked but not yet
// value-validated; call [Validate] before compiling.
func Load(path string) (*Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return LoadSQLite(path, DefaultTable)
	default:
		return LoadCSV(path)
	}
}

// Format returns the loader format Load would pick for path.
func Format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return "sqlite"
	default:
		return "csv"
	}
}

// record is the loader-internal row representation shared by the CSV and
// SQLite decoders. Values are strings (CSV) or driver-native types (SQLite).
type record map[string]any

// rowFromRecord converts a decoded record into a typed Row.
// idx is the 1-based row number used in error messages.
func rowFromRecord(rec record, idx int) (Row, error) {
	var row Row
	var err error

	row.MeasureID = fieldString(rec, FieldMeasureID)
	row.MeasureName = fieldString(rec, FieldMeasureName)
	row.SourceOrg = fieldString(rec, FieldSourceOrg)
	row.SourceName = fieldString(rec, FieldSourceName)
	row.Level1 = fieldString(rec, FieldLevel1)
	row.Level2 = fieldString(rec, FieldLevel2)
	row.Level3 = fieldString(rec, FieldLevel3)
	row.Phase = Phase(fieldString(rec, FieldPhase))
	row.DataURL = fieldString(rec, FieldDataURL)
	row.Section = fieldString(rec, FieldSection)
	row.GeoResolution = fieldString(rec, FieldGeoResolution)

	if row.Level1Sort, err = fieldFloat(rec, FieldLevel1Sort, idx); err != nil {
		return row, err
	}
	if row.Level2Sort, err = fieldFloat(rec, FieldLevel2Sort, idx); err != nil {
		return row, err
	}
	if row.Level3Sort, err = fieldFloat(rec, FieldLevel3Sort, idx); err != nil {
		return row, err
	}
	if row.FixedStrengthL1, err = fieldFloat(rec, FieldFixedStrengthL1, idx); err != nil {
		return row, err
	}
	if row.FixedStrengthL2, err = fieldFloat(rec, FieldFixedStrengthL2, idx); err != nil {
		return row, err
	}

	strength, present, err := fieldOptFloat(rec, FieldStrength, idx)
	if err != nil {
		return row, err
	}
	if present {
		row.Strength = &strength
	}

	return row, nil
}

func fieldString(rec record, name string) string {
	switch v := rec[name].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case []byte:
		return strings.TrimSpace(string(v))
	default:
		return ""
	}
}

func fieldFloat(rec record, name string, idx int) (float64, error) {
	v, _, err := fieldOptFloat(rec, name, idx)
	return v, err
}

func fieldOptFloat(rec record, name string, idx int) (float64, bool, error) {
	switch v := rec[name].(type) {
	case nil:
		return 0, false, nil
	case float64:
		return v, true, nil
	case int64:
		return float64(v), true, nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false, nil
		}
		f, err := parseFloat(s)
		if err != nil {
			return 0, false, errors.New(errors.ErrCodeInvalidDataset,
				"row %d: field %q: invalid number %q", idx, name, s)
		}
		return f, true, nil
	default:
		return 0, false, errors.New(errors.ErrCodeInvalidDataset,
			"row %d: field %q: unsupported value type %T", idx, name, v)
	}
}
