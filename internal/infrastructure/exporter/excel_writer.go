// Package exporter writes record tables to styled xlsx workbooks and csv files.
package exporter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/yourusername/crm-records/internal/domain/entity"
	"github.com/yourusername/crm-records/internal/domain/repository"
)

const (
	headerFill = "1F497D"
	headerFont = "FFFFFF"

	// widthPadding characters added to the longest value of a column
	widthPadding = 2
	maxColWidth  = 255

	instructionsSheet = "Instructions"
	defaultSheet      = "Sheet1"
)

type excelExporter struct {
	logger *zap.Logger
}

// NewExcelExporter xlsx exporter
func NewExcelExporter(logger *zap.Logger) repository.SheetExporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &excelExporter{logger: logger}
}

// ExportTable writes the table to a single styled sheet, columns in table order.
func (e *excelExporter) ExportTable(ctx context.Context, table *entity.RecordTable, path, sheetTitle string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := SheetName(sheetTitle)
	if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := writeTable(f, sheet, table); err != nil {
		return err
	}

	if err := saveWorkbook(f, path); err != nil {
		return err
	}

	e.logger.Info("table exported",
		zap.String("path", path),
		zap.String("sheet", sheet),
		zap.Int("rows", table.Len()),
		zap.Int("columns", len(table.Columns())),
	)
	return nil
}

// ExportTemplate writes a two-row sample sheet plus an Instructions sheet.
func (e *excelExporter) ExportTemplate(ctx context.Context, kind entity.Kind, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	samples := entity.NewRecordTable(kind)
	samples.Merge(kind.SampleRecords())

	f := excelize.NewFile()
	defer f.Close()

	sheet := SheetName(kind.TemplateSheetTitle())
	if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeTable(f, sheet, samples); err != nil {
		return err
	}

	if _, err := f.NewSheet(instructionsSheet); err != nil {
		return fmt.Errorf("create instructions sheet: %w", err)
	}
	if err := writeInstructions(f, instructionsSheet, kind); err != nil {
		return err
	}

	if err := saveWorkbook(f, path); err != nil {
		return err
	}

	e.logger.Info("template exported", zap.String("path", path), zap.String("kind", string(kind)))
	return nil
}

// InstructionLines text of the Instructions sheet, one entry per row. Blank
// entries are empty rows.
func InstructionLines(kind entity.Kind) []string {
	lines := []string{
		"Instructions for using this template:",
		"",
		fmt.Sprintf("1. This is a sample %s template with example data", kind),
		"2. Replace the example data with your actual data",
		"3. Keep the column headers exactly as they are",
		"4. Save the file and use it to import into the CRM system",
		"",
		"Required fields:",
		"",
	}
	for _, field := range kind.RequiredFields() {
		lines = append(lines, "- "+field)
	}
	return lines
}

func writeTable(f *excelize.File, sheet string, table *entity.RecordTable) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Color: headerFont},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder(),
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	dataStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left"},
		Border:    thinBorder(),
	})
	if err != nil {
		return fmt.Errorf("data style: %w", err)
	}

	columns := table.Columns()
	if len(columns) == 0 {
		return nil
	}
	widths := make([]int, len(columns))

	for c, name := range columns {
		ref, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(sheet, ref, name); err != nil {
			return fmt.Errorf("write header %s: %w", ref, err)
		}
		widths[c] = utf8.RuneCountInString(name)
	}

	lastHeader, _ := excelize.CoordinatesToCellName(len(columns), 1)
	if err := f.SetCellStyle(sheet, "A1", lastHeader, headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for r, row := range table.Rows() {
		for c, name := range columns {
			ref, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			value, _ := row.Get(name)
			if err := setCell(f, sheet, ref, value); err != nil {
				return fmt.Errorf("write cell %s: %w", ref, err)
			}
			if n := utf8.RuneCountInString(entity.FormatValue(value)); n > widths[c] {
				widths[c] = n
			}
		}
	}

	if table.Len() > 0 {
		lastCell, _ := excelize.CoordinatesToCellName(len(columns), table.Len()+1)
		if err := f.SetCellStyle(sheet, "A2", lastCell, dataStyle); err != nil {
			return fmt.Errorf("style data: %w", err)
		}
	}

	return setWidths(f, sheet, widths)
}

func writeInstructions(f *excelize.File, sheet string, kind entity.Kind) error {
	width := 0
	for i, line := range InstructionLines(kind) {
		if line == "" {
			continue
		}
		ref, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetCellStr(sheet, ref, line); err != nil {
			return fmt.Errorf("write instructions %s: %w", ref, err)
		}
		if n := utf8.RuneCountInString(line); n > width {
			width = n
		}
	}
	return setWidths(f, sheet, []int{width})
}

func setCell(f *excelize.File, sheet, ref string, value any) error {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		return f.SetCellStr(sheet, ref, v)
	default:
		return f.SetCellValue(sheet, ref, v)
	}
}

func setWidths(f *excelize.File, sheet string, widths []int) error {
	for c, w := range widths {
		col, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		width := w + widthPadding
		if width > maxColWidth {
			width = maxColWidth
		}
		if err := f.SetColWidth(sheet, col, col, float64(width)); err != nil {
			return fmt.Errorf("column width %s: %w", col, err)
		}
	}
	return nil
}

func thinBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
}

func saveWorkbook(f *excelize.File, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export directory: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// SheetName makes title usable as a worksheet name: no []:*?/\ and at most 31 characters.
func SheetName(title string) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(title))
	name = strings.Trim(name, "'")
	if utf8.RuneCountInString(name) > 31 {
		name = string([]rune(name)[:31])
	}
	if name == "" {
		return defaultSheet
	}
	return name
}
