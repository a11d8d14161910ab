package loader

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/gpugrade/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var required = []string{
	schema.AttrFormFactor, schema.AttrVRAM, schema.AttrRAM,
	schema.AttrVCPUs, schema.AttrInternalStorage, schema.AttrPriceOnDemand,
}

const offersCSV = "\ufeffname,form_factor,vram,ram,vcpus,internal_storage,price_on_demand\n" +
	"lambda,SXM,80,200,30,512,1.29\n" +
	"coreweave, PCIe ,80,,16,1000,2.21\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeFile(t, "offers.csv", offersCSV)

	rows, err := Load(context.Background(), path, Options{IDColumn: "name", Required: required})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "lambda", rows[0].ID)
	assert.Equal(t, "SXM", rows[0].Values[schema.AttrFormFactor])
	assert.Equal(t, "80", rows[0].Values[schema.AttrVRAM])
	assert.NotContains(t, rows[0].Values, "name")

	assert.Equal(t, "coreweave", rows[1].ID)
	assert.Equal(t, "PCIe ", rows[1].Values[schema.AttrFormFactor])
	assert.NotContains(t, rows[1].Values, schema.AttrRAM, "blank cells are absent")
}

func TestLoadNumbersRowsWithoutIDColumn(t *testing.T) {
	path := writeFile(t, "offers.csv", offersCSV)

	rows, err := Load(context.Background(), path, Options{IDColumn: "sku"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "row-1", rows[0].ID)
	assert.Equal(t, "row-2", rows[1].ID)
	assert.Equal(t, "lambda", rows[0].Values["name"])
}

func TestLoadJSON(t *testing.T) {
	offers := []map[string]any{
		{"name": "lambda", "form_factor": "SXM", "vram": 80, "ram": 200, "vcpus": 30, "internal_storage": 512, "price_on_demand": 1.29},
		{"name": "runpod", "form_factor": "PCIe", "vram": 80, "ram": 117, "vcpus": 8, "internal_storage": 0, "price_on_demand": 1.64, "region": "eu"},
	}
	data, err := json.Marshal(offers)
	require.NoError(t, err)
	path := writeFile(t, "offers.json", string(data))

	rows, err := New(Options{IDColumn: "name", Required: required}).Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "runpod", rows[1].ID)
	assert.Equal(t, json.Number("1.64"), rows[1].Values[schema.AttrPriceOnDemand])
	assert.Equal(t, "eu", rows[1].Values["region"])
	assert.NotContains(t, rows[0].Values, "region")
}

func TestLoadJSONRejectsObject(t *testing.T) {
	path := writeFile(t, "offers.json", `{"name": "lambda"}`)
	_, err := Load(context.Background(), path, Options{})
	var lerr *Error
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, path, lerr.Source)
}

func TestLoadXLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Python_Data"))
	_, err := f.NewSheet("Notes")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Python_Data", "A1", &[]any{"name", "form_factor", "vram", "ram", "vcpus", "internal_storage", "price_on_demand"}))
	require.NoError(t, f.SetSheetRow("Python_Data", "A2", &[]any{"lambda", "SXM", 80, 200, 30, 512, 1.29}))
	require.NoError(t, f.SetSheetRow("Python_Data", "A3", &[]any{"paperspace", "PCIe", 80, 90, 8}))
	path := filepath.Join(t.TempDir(), "offers.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	rows, err := Load(context.Background(), path, Options{IDColumn: "name", Sheet: "Python_Data", Required: required})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "lambda", rows[0].ID)
	assert.Equal(t, "1.29", rows[0].Values[schema.AttrPriceOnDemand])
	assert.NotContains(t, rows[1].Values, schema.AttrPriceOnDemand, "short rows leave trailing cells absent")

	_, err = Load(context.Background(), path, Options{Sheet: "Prices"})
	assert.Error(t, err)
}

type offerRecord struct {
	Name            string   `parquet:"name"`
	FormFactor      string   `parquet:"form_factor"`
	VRAM            int64    `parquet:"vram"`
	RAM             *float64 `parquet:"ram,optional"`
	VCPUs           int32    `parquet:"vcpus"`
	InternalStorage float64  `parquet:"internal_storage"`
	PriceOnDemand   float64  `parquet:"price_on_demand"`
}

func TestLoadParquet(t *testing.T) {
	ram := 200.0
	path := filepath.Join(t.TempDir(), "offers.parquet")
	file, err := os.Create(path)
	require.NoError(t, err)
	writer := parquet.NewGenericWriter[offerRecord](file)
	_, err = writer.Write([]offerRecord{
		{Name: "lambda", FormFactor: "SXM", VRAM: 80, RAM: &ram, VCPUs: 30, InternalStorage: 512, PriceOnDemand: 1.29},
		{Name: "vast", FormFactor: "PCIe", VRAM: 80, VCPUs: 16, InternalStorage: 100, PriceOnDemand: 1.10},
	})
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	require.NoError(t, file.Close())

	rows, err := Load(context.Background(), path, Options{IDColumn: "name", Required: required})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "lambda", rows[0].ID)
	assert.Equal(t, int64(80), rows[0].Values[schema.AttrVRAM])
	assert.Equal(t, 200.0, rows[0].Values[schema.AttrRAM])
	assert.Equal(t, int32(30), rows[0].Values[schema.AttrVCPUs])
	assert.Equal(t, "vast", rows[1].ID)
	assert.NotContains(t, rows[1].Values, schema.AttrRAM, "null cells are absent")
}

func TestLoadErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		path string
		opts Options
		kind error
	}{
		{
			name: "missing columns",
			path: writeFile(t, "offers.csv", "name,vram\nlambda,80\n"),
			opts: Options{Required: required},
			kind: ErrMissingColumn,
		},
		{
			name: "duplicate header",
			path: writeFile(t, "offers.csv", "name,vram,vram\nlambda,80,40\n"),
			kind: ErrDuplicateColumn,
		},
		{
			name: "unsupported extension",
			path: writeFile(t, "offers.ods", "x"),
			kind: ErrUnsupportedFormat,
		},
		{
			name: "unsupported explicit format",
			path: writeFile(t, "offers.csv", offersCSV),
			opts: Options{Format: "ods"},
			kind: ErrUnsupportedFormat,
		},
		{
			name: "empty csv",
			path: writeFile(t, "offers.csv", ""),
			kind: ErrNoHeader,
		},
		{
			name: "file not found",
			path: filepath.Join(t.TempDir(), "missing.csv"),
			kind: os.ErrNotExist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := Load(ctx, tt.path, tt.opts)
			require.Error(t, err)
			assert.Nil(t, rows)
			assert.ErrorIs(t, err, tt.kind)

			var lerr *Error
			assert.True(t, errors.As(err, &lerr))
		})
	}
}

func TestLoadMissingColumnsListed(t *testing.T) {
	path := writeFile(t, "offers.csv", "name,vram,ram\nlambda,80,200\n")
	_, err := Load(context.Background(), path, Options{Required: required})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "form_factor, internal_storage, price_on_demand, vcpus")
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Load(ctx, writeFile(t, "offers.csv", offersCSV), Options{})
	assert.ErrorIs(t, err, context.Canceled)
}
