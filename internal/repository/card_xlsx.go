package repository

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/aliskhannn/dgt-vocab-bot/internal/domain/entities"
)

// XLSXConfig describes where card fields live in a spreadsheet.
type XLSXConfig struct {
	FilePath          string // path to the .xlsx file
	SheetName         string // sheet to read
	WordColumn        string // column with the Spanish word
	TranslationColumn string // column with the English translation
	PerevodColumn     string // column with the Russian translation
	CategoryColumn    string // column with the category
	ExampleColumn     string // column with the example
	TopicsColumn      string // column with comma separated topic ids
	StartRow          int    // first data row (1-based)
}

// DefaultXLSXConfig returns the column layout used by the vocabulary sheets.
func DefaultXLSXConfig() XLSXConfig {
	return XLSXConfig{
		SheetName:         "Sheet1",
		WordColumn:        "A",
		TranslationColumn: "B",
		PerevodColumn:     "C",
		CategoryColumn:    "D",
		ExampleColumn:     "E",
		TopicsColumn:      "F",
		StartRow:          2, // skip header
	}
}

// LoadXLSX reads card records from a spreadsheet. Fully empty rows are skipped.
func LoadXLSX(cfg XLSXConfig) (*CardRepository, error) {
	f, err := excelize.OpenFile(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(cfg.SheetName)
	if err != nil {
		return nil, fmt.Errorf("get rows: %w", err)
	}

	records, err := recordsFromRows(rows, cfg)
	if err != nil {
		return nil, err
	}

	return NewCardRepository(records)
}

func recordsFromRows(rows [][]string, cfg XLSXConfig) ([]entities.CardRecord, error) {
	cols := map[string]string{
		"word":        cfg.WordColumn,
		"translation": cfg.TranslationColumn,
		"perevod":     cfg.PerevodColumn,
		"category":    cfg.CategoryColumn,
		"example":     cfg.ExampleColumn,
		"topics":      cfg.TopicsColumn,
	}

	idx := make(map[string]int, len(cols))
	for field, col := range cols {
		if col == "" {
			idx[field] = -1
			continue
		}
		n, err := excelize.ColumnNameToNumber(col)
		if err != nil {
			return nil, fmt.Errorf("column %q for %s: %w", col, field, err)
		}
		idx[field] = n - 1
	}

	start := max(cfg.StartRow, 1)

	var records []entities.CardRecord
	for i, row := range rows {
		if i < start-1 || isEmptyRow(row) {
			continue
		}

		cell := func(field string) string {
			j := idx[field]
			if j < 0 || j >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[j])
		}

		records = append(records, entities.CardRecord{
			Word:        cell("word"),
			Translation: cell("translation"),
			Perevod:     cell("perevod"),
			Category:    cell("category"),
			Example:     cell("example"),
			Topics:      splitTopics(cell("topics")),
		})
	}

	return records, nil
}

func splitTopics(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
