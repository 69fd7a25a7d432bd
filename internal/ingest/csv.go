package ingest

import (
	"bytes"
	"encoding/csv"
	"io"
	"sort"
	"strings"
)

// Row is one CSV data row keyed by its lowercased, trimmed column name.
type Row map[string]string

// ParseRows reads a CSV export into rows keyed by normalized header names.
// The reader is deliberately lenient: ragged rows are accepted, malformed
// rows are skipped, and extra cells beyond the header are dropped. Partial
// data beats a failed import.
func ParseRows(data []byte) []Row {
	r := newReader(data)

	header, err := r.Read()
	if err != nil {
		return nil
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}

	var rows []Row
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		row := make(Row, len(header))
		empty := true
		for i, name := range header {
			if i >= len(record) {
				break
			}
			v := strings.TrimSpace(record[i])
			row[name] = v
			if v != "" {
				empty = false
			}
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows
}

// HeaderRow returns the normalized header names of a CSV file, or nil when
// no header can be read.
func HeaderRow(data []byte) []string {
	header, err := newReader(data).Read()
	if err != nil {
		return nil
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}
	return header
}

func newReader(data []byte) *csv.Reader {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.LazyQuotes = true
	return r
}

// sortedKeys returns a row's column names in stable order, for fallback
// scans that must pick the same column on every run.
func sortedKeys(row Row) []string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
