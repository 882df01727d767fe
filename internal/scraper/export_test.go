package scraper

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportConfiguration_Roundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "my_config")

	vars := []Variable{
		{Category: "KURLAR", Subcategory: "Döviz Kurları", ItemName: "USD", CalculationType: "Düzey"},
		{Category: "FİYAT", Subcategory: "TÜFE", ItemName: "Genel", CalculationType: "Yüzde Değişim"},
	}
	require.NoError(t, ExportConfiguration(path, "english", vars))

	// Расширение добавлено автоматически
	_, err := os.Stat(path + ".json")
	require.NoError(t, err)

	lang, loaded, err := LoadVariables(path + ".json")
	require.NoError(t, err)
	assert.Equal(t, "english", lang)
	assert.Equal(t, vars, loaded)
}

func TestExportConfiguration_KeepsExistingSuffix(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	require.NoError(t, ExportConfiguration(path, "turkish", nil))

	_, err := os.Stat(path)
	require.NoError(t, err)
	_, err = os.Stat(path + ".json")
	assert.True(t, os.IsNotExist(err))

	lang, vars, err := LoadVariables(path)
	require.NoError(t, err)
	assert.Equal(t, "turkish", lang)
	assert.Empty(t, vars)
}

func TestLoadVariables_MissingFile(t *testing.T) {
	_, _, err := LoadVariables(filepath.Join(t.TempDir(), "нет.json"))
	assert.Error(t, err)
}

func TestLoadVariables_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{не json"), 0o644))

	_, _, err := LoadVariables(path)
	assert.Error(t, err)
}

func TestWriteXLSX_AppendsSuffix(t *testing.T) {
	dir := t.TempDir()
	frame := &Frame{
		Columns: []string{"Tarih", "TP DK USD A YTL"},
		Rows: []TableRow{
			{"Tarih": "01-2023", "TP DK USD A YTL": "18.7"},
			{"Tarih": "02-2023", "TP DK USD A YTL": "18.8"},
		},
	}

	path := filepath.Join(dir, "report")
	require.NoError(t, WriteXLSX(frame, path))

	info, err := os.Stat(path + ".xlsx")
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWriteXLSX_EmptyFrame(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, WriteXLSX(nil, filepath.Join(dir, "a.xlsx")))
	assert.Error(t, WriteXLSX(&Frame{}, filepath.Join(dir, "b.xlsx")))
}
