package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/careatlas/pkg/errors"
)

// LoadCSV reads a CSV snapshot from path.
func LoadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "dataset file not found: %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "failed to open %s", path)
	}
	defer f.Close()

	return ReadCSV(f)
}

// ReadCSV decodes a CSV snapshot from r. The first record is the header;
// every required schema field must appear in it.
func ReadCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeInvalidDataset, "dataset is empty")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "failed to read header")
	}

	fields := make([]string, len(header))
	for i, h := range header {
		fields[i] = strings.TrimSpace(h)
	}

	ds := &Dataset{Fields: fields}
	if err := ds.CheckSchema(); err != nil {
		return nil, err
	}

	for idx := 1; ; idx++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "row %d: malformed record", idx)
		}

		m := make(record, len(fields))
		for i, f := range fields {
			if i < len(rec) {
				m[f] = rec[i]
			}
		}

		row, err := rowFromRecord(m, idx)
		if err != nil {
			return nil, err
		}
		ds.Rows = append(ds.Rows, row)
	}

	return ds, nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
