package loader

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"slices"
)

// readJSON reads an array of flat objects. The header is the union of keys in
// order of first appearance.
func readJSON(path string) (table, error) {
	f, err := os.Open(path)
	if err != nil {
		return table{}, err
	}
	defer func() { _ = f.Close() }()

	dec := json.NewDecoder(f)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return table{}, fmt.Errorf("reading json: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return table{}, fmt.Errorf("reading json: expected an array of objects")
	}

	var t table
	var objects []map[string]any
	for dec.More() {
		var obj map[string]any
		if err := dec.Decode(&obj); err != nil {
			return table{}, fmt.Errorf("reading json object %d: %w", len(objects), err)
		}
		for _, key := range slices.Sorted(maps.Keys(obj)) {
			if !slices.Contains(t.header, key) {
				t.header = append(t.header, key)
			}
		}
		objects = append(objects, obj)
	}
	if _, err := dec.Token(); err != nil {
		return table{}, fmt.Errorf("reading json: %w", err)
	}

	for _, obj := range objects {
		cells := make([]any, len(t.header))
		for i, key := range t.header {
			cells[i] = obj[key]
		}
		t.records = append(t.records, cells)
	}
	return t, nil
}
