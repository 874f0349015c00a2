package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/bosserz/ged-assessment/internal/scoring"
	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"
)

const (
	exportSheet     = "Submissions"
	exportTagsSheet = "Tags"
)

// ExportXLSX writes every stored submission to w as a spreadsheet: one
// row per submission, plus a sheet of per-tag ratios. It returns the
// number of exported submissions.
func (c *Context) ExportXLSX(ctx context.Context, w io.Writer) (int, error) {
	summaries, err := c.ListSubmissions(ctx)
	if err != nil {
		return 0, err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Error("failed to close workbook", "error", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return 0, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(exportTagsSheet); err != nil {
		return 0, fmt.Errorf("create sheet: %w", err)
	}

	header := []any{"Timestamp", "Name", "Email", "Score", "Total", "Weak Skills", "Reason", "File"}
	if err := setRow(f, exportSheet, 1, header); err != nil {
		return 0, err
	}
	if err := setRow(f, exportTagsSheet, 1, []any{"File", "Tag", "Correct", "Total", "Ratio"}); err != nil {
		return 0, err
	}

	tagRow := 2
	for i, summary := range summaries {
		submission, err := c.ShowResult(ctx, summary.Filename)
		if err != nil {
			return 0, err
		}

		row := []any{
			submission.Timestamp,
			submission.Name,
			submission.Email,
			submission.Score,
			submission.Total,
			strings.Join(submission.WeakSkills, ", "),
			string(submission.Reason),
			summary.Filename,
		}
		if err := setRow(f, exportSheet, i+2, row); err != nil {
			return 0, err
		}

		for _, tag := range scoring.Tags(submission.TestResult) {
			stat := submission.TagStats[tag]
			if err := setRow(f, exportTagsSheet, tagRow, []any{summary.Filename, tag, stat.Correct, stat.Total, stat.Ratio()}); err != nil {
				return 0, err
			}
			tagRow++
		}
	}

	widths := lo.Zip2([]string{"A", "B", "C", "F", "H"}, []float64{28, 24, 30, 30, 48})
	for _, width := range widths {
		if err := f.SetColWidth(exportSheet, width.A, width.A, width.B); err != nil {
			return 0, fmt.Errorf("set column width: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return 0, fmt.Errorf("write workbook: %w", err)
	}

	return len(summaries), nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cellName, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(sheet, cellName, &values); err != nil {
		return fmt.Errorf("write row %d of %s: %w", row, sheet, err)
	}

	return nil
}
