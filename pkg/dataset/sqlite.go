package dataset

import (
	"database/sql"
	"fmt"
	"os"
	"regexp"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/matzehuels/careatlas/pkg/errors"
)

// tableNameRe guards against table names that cannot be safely interpolated.
// SQLite cannot bind identifiers, so the name is validated instead.
var tableNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// LoadSQLite reads a snapshot from a single-table SQLite file. The table's
// columns form the dataset fields; every required schema field must exist.
func LoadSQLite(path, table string) (*Dataset, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "dataset file not found: %s", path)
	}
	if table == "" {
		table = DefaultTable
	}
	if !tableNameRe.MatchString(table) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid table name %q", table)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "failed to open %s", path)
	}
	defer db.Close()

	rows, err := db.Query(fmt.Sprintf("SELECT * FROM %s", table))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "failed to read table %q", table)
	}
	defer rows.Close()

	fields, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "failed to read columns of %q", table)
	}

	ds := &Dataset{Fields: fields}
	if err := ds.CheckSchema(); err != nil {
		return nil, err
	}

	values := make([]any, len(fields))
	ptrs := make([]any, len(fields))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for idx := 1; rows.Next(); idx++ {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "row %d: scan failed", idx)
		}

		m := make(record, len(fields))
		for i, f := range fields {
			m[f] = values[i]
		}

		row, err := rowFromRecord(m, idx)
		if err != nil {
			return nil, err
		}
		ds.Rows = append(ds.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "failed to iterate table %q", table)
	}

	return ds, nil
}
