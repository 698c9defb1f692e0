// Package ingest turns an uploaded CSV statement into core records.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"insight/internal/core"
)

// Header-derived field names are matched case-sensitively: banks that
// export "Date" instead of "date" must be normalized client-side, per
// the upload contract.
const (
	fieldDate     = "date"
	fieldCategory = "category"
	fieldAmount   = "amount"
)

// ErrMissingHeader is returned when the first row lacks any of the
// three required columns.
var ErrMissingHeader = errors.New("csv header must contain date, category and amount columns")

// ReadRecords parses a CSV statement into records. The first row is
// the header; every required column must appear in it. Rows may be
// ragged (short rows read missing cells as empty) and extra columns
// are carried along untouched; the aggregators ignore them. Cell
// values are not validated here: malformed dates and amounts are the
// pipeline's business, not the reader's.
func ReadRecords(r io.Reader) ([]core.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	for _, required := range []string{fieldDate, fieldCategory, fieldAmount} {
		if _, ok := index[required]; !ok {
			return nil, ErrMissingHeader
		}
	}

	var records []core.Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", len(records)+2, err)
		}

		cell := func(i int) string {
			if i < len(row) {
				return row[i]
			}
			return ""
		}

		rec := core.Record{
			Date:     cell(index[fieldDate]),
			Category: cell(index[fieldCategory]),
			Amount:   cell(index[fieldAmount]),
		}
		for name, i := range index {
			if name == fieldDate || name == fieldCategory || name == fieldAmount {
				continue
			}
			if v := cell(i); v != "" {
				if rec.Extra == nil {
					rec.Extra = make(map[string]string)
				}
				rec.Extra[name] = v
			}
		}
		records = append(records, rec)
	}
	return records, nil
}
