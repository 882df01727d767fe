package scraper

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// configDocument — переносимый формат конфигурации: язык и выбранные
// переменные. Этим же документом кормится автоматический режим.
type configDocument struct {
	Language  string     `json:"language"`
	Variables []Variable `json:"variables"`
}

// ExportConfiguration сохраняет язык и журнал выбранных переменных в
// JSON-файл. Расширение .json добавляется автоматически.
func ExportConfiguration(path, language string, variables []Variable) error {
	if !strings.HasSuffix(path, ".json") {
		path += ".json"
	}

	doc := configDocument{
		Language:  language,
		Variables: variables,
	}
	if doc.Variables == nil {
		doc.Variables = []Variable{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("ошибка сериализации конфигурации: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("ошибка записи файла %s: %w", path, err)
	}
	return nil
}

// LoadVariables читает документ конфигурации и возвращает язык и
// переменные для автоматического режима.
func LoadVariables(path string) (string, []Variable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("ошибка чтения файла %s: %w", path, err)
	}

	var doc configDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", nil, fmt.Errorf("ошибка разбора файла %s: %w", path, err)
	}
	return doc.Language, doc.Variables, nil
}

// WriteXLSX сохраняет фрейм в локальный XLSX-файл: заголовок первой
// строкой, далее строки в порядке наблюдения, колонки в порядке
// заголовка таблицы. Дополняет скачивание с самого портала.
func WriteXLSX(frame *Frame, path string) error {
	if frame == nil || len(frame.Columns) == 0 {
		return fmt.Errorf("пустой фрейм, сохранять нечего")
	}
	if !strings.HasSuffix(path, ".xlsx") {
		path += ".xlsx"
	}

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Sheet1"

	header := make([]any, len(frame.Columns))
	for i, col := range frame.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("ошибка записи заголовка: %w", err)
	}

	for rowIdx, row := range frame.Rows {
		cells := make([]any, len(frame.Columns))
		for i, col := range frame.Columns {
			cells[i] = row[col]
		}
		cell, err := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("ошибка записи строки %d: %w", rowIdx+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("ошибка сохранения %s: %w", path, err)
	}
	return nil
}
