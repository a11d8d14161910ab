// Package loader reads GPU offer tables from csv, json, xlsx and parquet files into raw rows.
package loader

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/huangsam/gpugrade/internal/contract"
	"github.com/huangsam/gpugrade/schema"
	"go.uber.org/zap"
)

// Loader error kinds.
var (
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	ErrMissingColumn     = errors.New("missing required column")
	ErrDuplicateColumn   = errors.New("duplicate column")
	ErrNoHeader          = errors.New("dataset has no header")
	ErrNestedSchema      = errors.New("nested columns are not supported")
)

// Error reports a dataset that could not be loaded. It halts a run.
type Error struct {
	Source string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("loading %s: %v", e.Source, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Options controls how a dataset is read.
type Options struct {
	Format   schema.InputFormat // empty means detect from the extension
	IDColumn string             // column holding the row ID; rows are numbered when absent
	Sheet    string             // xlsx only; defaults to the first sheet
	Required []string           // attribute columns that must be present in the header
}

// Loader implements contract.RowLoader with fixed options.
type Loader struct {
	opts Options
}

var _ contract.RowLoader = &Loader{} // Compile-time check

// New creates a Loader.
func New(opts Options) *Loader {
	return &Loader{opts: opts}
}

// Load reads source with the loader's options.
func (l *Loader) Load(ctx context.Context, source string) ([]schema.Row, error) {
	return Load(ctx, source, l.opts)
}

// table is the format-independent shape every reader produces.
type table struct {
	header  []string
	records [][]any
}

// Load reads the dataset at source into rows. Every error is an *Error.
func Load(ctx context.Context, source string, opts Options) ([]schema.Row, error) {
	format, err := DetectFormat(source, opts.Format)
	if err != nil {
		return nil, &Error{Source: source, Err: err}
	}

	var t table
	switch format {
	case schema.CSVInput:
		t, err = readCSV(source)
	case schema.JSONInput:
		t, err = readJSON(source)
	case schema.XLSXInput:
		t, err = readXLSX(source, opts.Sheet)
	case schema.ParquetInput:
		t, err = readParquet(source)
	}
	if err != nil {
		return nil, &Error{Source: source, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, &Error{Source: source, Err: err}
	}

	rows, err := t.rows(opts)
	if err != nil {
		return nil, &Error{Source: source, Err: err}
	}
	contract.Logger().Info("dataset loaded",
		zap.String("source", source),
		zap.String("format", string(format)),
		zap.Int("rows", len(rows)),
		zap.Int("columns", len(t.header)))
	return rows, nil
}

// DetectFormat returns the explicit format, or the one implied by the file extension.
func DetectFormat(source string, explicit schema.InputFormat) (schema.InputFormat, error) {
	if explicit != "" {
		if _, ok := schema.ValidInputFormats[explicit]; !ok {
			return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, explicit)
		}
		return explicit, nil
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(source), "."))
	format := schema.InputFormat(ext)
	if _, ok := schema.ValidInputFormats[format]; !ok {
		return "", fmt.Errorf("%w: extension %q", ErrUnsupportedFormat, filepath.Ext(source))
	}
	return format, nil
}

// rows validates the header and converts records into rows. Blank cells are left
// out of Values so the normalizer reports them as missing attributes.
func (t table) rows(opts Options) ([]schema.Row, error) {
	if len(t.header) == 0 {
		return nil, ErrNoHeader
	}
	seen := make(map[string]struct{}, len(t.header))
	for _, name := range t.header {
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateColumn, name)
		}
		seen[name] = struct{}{}
	}

	var missing []string
	for _, name := range opts.Required {
		if !slices.Contains(t.header, name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	idIndex := slices.Index(t.header, opts.IDColumn)
	rows := make([]schema.Row, 0, len(t.records))
	for n, record := range t.records {
		row := schema.Row{ID: fmt.Sprintf("row-%d", n+1), Values: make(map[string]any, len(t.header))}
		for i, name := range t.header {
			if i >= len(record) || name == "" || isBlank(record[i]) {
				continue
			}
			if i == idIndex {
				row.ID = strings.TrimSpace(fmt.Sprint(record[i]))
				continue
			}
			row.Values[name] = record[i]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isBlank(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	default:
		return false
	}
}

// normalizeHeader trims header cells and drops a leading UTF-8 byte order mark.
func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		out[i] = strings.TrimSpace(h)
	}
	return out
}
