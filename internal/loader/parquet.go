package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"
)

// readParquet reads a file with a flat schema, one row per record.
func readParquet(path string) (table, error) {
	f, err := os.Open(path)
	if err != nil {
		return table{}, err
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return table{}, err
	}
	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		return table{}, fmt.Errorf("opening parquet: %w", err)
	}

	var t table
	for _, field := range pf.Schema().Fields() {
		if !field.Leaf() {
			return table{}, fmt.Errorf("%w: %s", ErrNestedSchema, field.Name())
		}
		t.header = append(t.header, field.Name())
	}

	buf := make([]parquet.Row, 128)
	for _, rg := range pf.RowGroups() {
		if err := readRowGroup(rg, buf, &t); err != nil {
			return table{}, err
		}
	}
	return t, nil
}

func readRowGroup(rg parquet.RowGroup, buf []parquet.Row, t *table) error {
	rows := rg.Rows()
	defer func() { _ = rows.Close() }()

	for {
		n, err := rows.ReadRows(buf)
		for _, row := range buf[:n] {
			cells := make([]any, len(t.header))
			for _, v := range row {
				if col := v.Column(); col >= 0 && col < len(cells) {
					cells[col] = parquetValue(v)
				}
			}
			t.records = append(t.records, cells)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading parquet rows: %w", err)
		}
	}
}

// parquetValue converts a leaf value into a raw cell.
func parquetValue(v parquet.Value) any {
	if v.IsNull() {
		return nil
	}
	switch v.Kind() {
	case parquet.Boolean:
		return v.Boolean()
	case parquet.Int32:
		return v.Int32()
	case parquet.Int64:
		return v.Int64()
	case parquet.Float:
		return v.Float()
	case parquet.Double:
		return v.Double()
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return string(v.ByteArray())
	default:
		return v.String()
	}
}
