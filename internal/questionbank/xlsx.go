package questionbank

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bosserz/ged-assessment/models"
	"github.com/xuri/excelize/v2"
)

// Spreadsheet layout: a header row, then one question per row in the first
// sheet. Options are separated by "|", tags by ",".
const (
	xlsxColumnID = iota
	xlsxColumnQuestion
	xlsxColumnOptions
	xlsxColumnAnswer
	xlsxColumnTags
)

// ParseXLSX reads a question set from a spreadsheet.
func ParseXLSX(content []byte) ([]models.Question, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Error("failed to close xlsx", "error", err)
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return []models.Question{}, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows of %s: %w", sheets[0], err)
	}

	questions := []models.Question{}
	for i, row := range rows {
		// header
		if i == 0 {
			continue
		}

		if strings.TrimSpace(cell(row, xlsxColumnID)) == "" {
			continue
		}

		questions = append(questions, models.Question{
			ID:       strings.TrimSpace(cell(row, xlsxColumnID)),
			Question: cell(row, xlsxColumnQuestion),
			Options:  splitList(cell(row, xlsxColumnOptions), "|"),
			Answer:   strings.TrimSpace(cell(row, xlsxColumnAnswer)),
			Tags:     splitList(cell(row, xlsxColumnTags), ","),
		})
	}

	return questions, nil
}

// cell returns an empty string for cells past the end of a short row.
func cell(row []string, column int) string {
	if column < len(row) {
		return row[column]
	}

	return ""
}

func splitList(s, sep string) []string {
	var items []string
	for item := range strings.SplitSeq(s, sep) {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}

	return items
}
