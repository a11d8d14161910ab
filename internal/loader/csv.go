package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

func readCSV(path string) (table, error) {
	f, err := os.Open(path)
	if err != nil {
		return table{}, err
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return table{}, ErrNoHeader
	}
	if err != nil {
		return table{}, fmt.Errorf("reading csv header: %w", err)
	}

	t := table{header: normalizeHeader(header)}
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return table{}, fmt.Errorf("reading csv: %w", err)
		}
		cells := make([]any, len(rec))
		for i, c := range rec {
			cells[i] = c
		}
		t.records = append(t.records, cells)
	}
	return t, nil
}
