package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"socially/internal/logger"
	"socially/internal/mockdata"
	"socially/internal/telemetry"
	"socially/models"

	"github.com/xuri/excelize/v2"
)

// Format is the on-disk encoding of a generated dataset
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

const (
	postsSheetName   = "Posts"
	summarySheetName = "Summary"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported format %q (want csv or xlsx)", s)
	}
}

// ExportService writes generated posts to disk
type ExportService struct {
	metrics *telemetry.Metrics
}

func NewExportService(metrics *telemetry.Metrics) *ExportService {
	return &ExportService{metrics: metrics}
}

// Export replaces path with posts encoded as format
func (es *ExportService) Export(path string, format Format, posts []models.SyntheticPost) error {
	var err error
	switch format {
	case FormatCSV:
		err = mockdata.WriteCSVFile(path, posts)
	case FormatXLSX:
		err = es.exportExcelFile(path, posts)
	default:
		err = fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return err
	}

	es.metrics.RecordPostsGenerated(context.Background(), len(posts), string(format))
	logger.Info("Mock data exported", "path", path, "format", string(format), "posts", len(posts))
	return nil
}

func (es *ExportService) exportExcelFile(path string, posts []models.SyntheticPost) error {
	var buf bytes.Buffer
	if err := WriteExcel(&buf, posts); err != nil {
		return err
	}
	return mockdata.ReplaceFile(path, buf.Bytes())
}

// WriteExcel writes a workbook with a Posts sheet in header order and a
// per-category Summary sheet
func WriteExcel(w io.Writer, posts []models.SyntheticPost) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn("Error closing Excel file", "error", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", postsSheetName); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	header := make([]interface{}, len(mockdata.Header))
	for i, h := range mockdata.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(postsSheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, p := range posts {
		cell, err := excelize.CoordinatesToCellName(1, i+2) // Start from row 2 (after headers)
		if err != nil {
			return err
		}
		row := []interface{}{
			string(p.PostType), p.FormattedTimestamp(),
			p.Likes, p.Comments, p.Shares, p.Saves,
			p.HashtagField(), p.Reach,
		}
		if err := f.SetSheetRow(postsSheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}
	f.SetColWidth(postsSheetName, "A", "H", 15)

	if _, err := f.NewSheet(summarySheetName); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	summaryRows := [][]interface{}{
		{"Category", "Posts", "Likes", "Comments", "Shares", "Saves", "Reach"},
	}
	for _, category := range mockdata.Categories {
		s := mockdata.Summarize(category, posts)
		summaryRows = append(summaryRows, []interface{}{
			s.Category, s.PostCount,
			s.Totals.Likes, s.Totals.Comments, s.Totals.Shares, s.Totals.Saves,
			s.TotalReach,
		})
	}
	for i, row := range summaryRows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(summarySheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}

	return f.Write(w)
}
