package evaluation

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"intentrouter/classification"
)

// ErrEmptyCorpus в файле нет ни одного примера
var ErrEmptyCorpus = errors.New("corpus has no samples")

// LoadSamples загружает корпус из CSV или XLSX по расширению файла.
// Первая строка заголовок; колонки: текст, ожидаемое намерение.
func LoadSamples(path string) ([]Sample, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path)
	case ".xlsx":
		return LoadXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported corpus file extension: %q", filepath.Ext(path))
	}
}

// LoadCSV загружает корпус из CSV файла
func LoadCSV(path string) ([]Sample, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}
	defer file.Close()

	return ReadCSV(file)
}

// ReadCSV читает корпус в формате CSV
func ReadCSV(r io.Reader) ([]Sample, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return parseRows(records)
}

// LoadXLSX загружает корпус с первого листа книги Excel
func LoadXLSX(path string) ([]Sample, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyCorpus
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return parseRows(rows)
}

// parseRows пропускает заголовок и пустые строки.
// Пустой текст допустим: так размечается пустое сообщение.
func parseRows(rows [][]string) ([]Sample, error) {
	if len(rows) < 2 {
		return nil, ErrEmptyCorpus
	}

	samples := make([]Sample, 0, len(rows)-1)
	for i, row := range rows[1:] {
		line := i + 2
		if len(row) < 2 {
			if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
				continue
			}
			return nil, fmt.Errorf("row %d: expected text and intent columns", line)
		}

		intent, err := classification.ParseIntent(row[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		samples = append(samples, Sample{Text: row[0], Expected: intent})
	}

	if len(samples) == 0 {
		return nil, ErrEmptyCorpus
	}
	return samples, nil
}

// ExportXLSX сохраняет отчет в книгу Excel: сводка, метрики по намерениям и ошибки
func ExportXLSX(report Report, filename string) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	summary := [][]any{
		{"Total", report.Total},
		{"Correct", report.Correct},
		{"Accuracy", report.Accuracy},
		{"Macro F1", report.MacroF1},
	}
	if err := writeSheet(f, "Summary", []string{"Metric", "Value"}, summary, headerStyle); err != nil {
		return err
	}

	intents := make([][]any, 0, len(report.Intents))
	for _, m := range report.Intents {
		intents = append(intents, []any{
			string(m.Intent), m.Support, m.TruePositive, m.FalsePositive, m.FalseNegative,
			m.Precision, m.Recall, m.F1Score,
		})
	}
	intentHeaders := []string{"Intent", "Support", "TP", "FP", "FN", "Precision", "Recall", "F1"}
	if err := writeSheet(f, "Intents", intentHeaders, intents, headerStyle); err != nil {
		return err
	}

	mismatches := make([][]any, 0, len(report.Mismatches))
	for _, m := range report.Mismatches {
		mismatches = append(mismatches, []any{m.Text, string(m.Expected), string(m.Got)})
	}
	if err := writeSheet(f, "Mismatches", []string{"Text", "Expected", "Got"}, mismatches, headerStyle); err != nil {
		return err
	}

	// Лист по умолчанию не нужен
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to delete default sheet: %w", err)
	}
	if index, err := f.GetSheetIndex("Summary"); err == nil {
		f.SetActiveSheet(index)
	}

	if err := f.SaveAs(filename); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]any, headerStyle int) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", sheet, err)
	}

	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for r, row := range rows {
		for c, value := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	for i := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, 18)
	}
	return nil
}
