package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/example/hanbot/internal/database"
	"github.com/example/hanbot/internal/spaced_repetition"
	"github.com/example/hanbot/pkg/models"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath          string // Path to the Excel or CSV file
	HanziColumn       string // Column with the written form
	PinyinColumn      string // Column with the pinyin reading
	TranslationColumn string // Column with the translation
	ExampleColumn     string // Column with an example sentence
	SheetName         string // Name of the sheet to import
	Language          string // Language tag applied to every imported word
	StartRow          int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		HanziColumn:       "A",
		PinyinColumn:      "B",
		TranslationColumn: "C",
		ExampleColumn:     "D",
		SheetName:         "Sheet1",
		Language:          "zh-CN",
		StartRow:          2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Created        int
	Updated        int
	Skipped        int
	Errors         []string
}

// ImportWords imports vocabulary from an Excel or CSV file. Every new word
// gets an initialized review record so it shows up as immediately due.
func ImportWords(config ImportConfig, now time.Time) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))

	if ext == ".csv" {
		return importFromCSV(config, now)
	}

	return importFromExcel(config, now)
}

// importFromExcel imports words from an Excel file
func importFromExcel(config ImportConfig, now time.Time) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}

	result := &ImportResult{
		Errors: make([]string, 0),
	}

	for i, row := range rows {
		// Skip header rows
		if i < config.StartRow-1 {
			continue
		}

		result.TotalProcessed++

		if err := processRow(row, config, result, now); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}

	return result, nil
}

// importFromCSV imports words from a CSV file with the same column layout
func importFromCSV(config ImportConfig, now time.Time) (*ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	result := &ImportResult{
		Errors: make([]string, 0),
	}

	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %v", err)
		}

		rowNum++
		if rowNum < config.StartRow {
			continue
		}

		result.TotalProcessed++

		if err := processRow(row, config, result, now); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		}
	}

	return result, nil
}

// processRow turns one sheet row into a word plus its review record
func processRow(row []string, config ImportConfig, result *ImportResult, now time.Time) error {
	var hanzi, pinyin, translation, example string

	if colIdx := columnToIndex(config.HanziColumn); colIdx < len(row) {
		hanzi = strings.TrimSpace(row[colIdx])
	}
	if colIdx := columnToIndex(config.PinyinColumn); colIdx < len(row) {
		pinyin = strings.TrimSpace(row[colIdx])
	}
	if colIdx := columnToIndex(config.TranslationColumn); colIdx < len(row) {
		translation = strings.TrimSpace(row[colIdx])
	}
	if colIdx := columnToIndex(config.ExampleColumn); colIdx < len(row) {
		example = strings.TrimSpace(row[colIdx])
	}

	if hanzi == "" || translation == "" {
		result.Skipped++
		return nil
	}

	wordRepo := database.NewWordRepository()
	recordRepo := database.NewReviewRecordRepository()

	existing, err := wordRepo.GetByHanzi(hanzi, config.Language)
	if err != nil {
		return err
	}

	if existing != nil {
		existing.Pinyin = pinyin
		existing.Translation = translation
		existing.Example = example
		if err := wordRepo.Update(existing); err != nil {
			return err
		}
		result.Updated++
		return nil
	}

	word := &models.Word{
		ID:          uuid.NewString(),
		Hanzi:       hanzi,
		Pinyin:      pinyin,
		Translation: translation,
		Example:     example,
		Language:    config.Language,
	}
	if err := wordRepo.Create(word); err != nil {
		return err
	}

	// New words enter the schedule immediately due
	record := spaced_repetition.NewSM2().Initialize(word.ID, now)
	if err := recordRepo.Upsert(&record); err != nil {
		return err
	}

	result.Created++
	return nil
}

// columnToIndex converts an Excel column letter to a zero-based index
func columnToIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	index := 0
	for _, r := range column {
		if r < 'A' || r > 'Z' {
			return 0
		}
		index = index*26 + int(r-'A') + 1
	}
	if index == 0 {
		return 0
	}
	return index - 1
}
