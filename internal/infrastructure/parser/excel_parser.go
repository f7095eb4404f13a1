package parser

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/yourusername/crm-records/internal/domain/entity"
)

type excelParser struct {
	logger *zap.Logger
}

// parse reads the first sheet of a workbook. Row 1 is the header.
func (e *excelParser) parse(ctx context.Context, path string) (*entity.Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &entity.ParseError{Path: path, Err: fmt.Errorf("open workbook: %w", err)}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &entity.ParseError{Path: path, Err: fmt.Errorf("workbook has no sheets")}
	}
	sheetName := sheets[0]

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &entity.ParseError{Path: path, Err: fmt.Errorf("read rows: %w", err)}
	}

	// leading blank rows are not a header
	start := 0
	for start < len(rows) && isEmptyRow(rows[start]) {
		start++
	}
	if start == len(rows) {
		return nil, &entity.ParseError{Path: path, Err: errNoHeader}
	}

	columns := headerNames(rows[start], widest(rows[start:]))
	sheet := &entity.Sheet{Source: path, Columns: columns}
	ids := newIDTracker()

	for i := start + 1; i < len(rows); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		record := entity.NewRecord()
		for col, name := range columns {
			if col >= len(row) {
				record.Set(name, nil)
				continue
			}
			value, err := e.cellValue(f, sheetName, col, i, row[col])
			if err != nil {
				return nil, &entity.ParseError{Path: path, Err: err}
			}
			record.Set(name, value)
		}
		ids.add(record.String(entity.FieldCustomerID), record.String(entity.FieldProductID))
		sheet.Rows = append(sheet.Rows, record)
	}
	sheet.DuplicateIDs = ids.dups

	e.logger.Debug("workbook parsed",
		zap.String("path", path),
		zap.String("sheet", sheetName),
		zap.Strings("columns", columns),
		zap.Int("rows", len(sheet.Rows)),
	)
	return sheet, nil
}

// cellValue keeps the stored type: text cells stay text, numeric cells become numbers.
func (e *excelParser) cellValue(f *excelize.File, sheet string, col, row int, raw string) (any, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	ref, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return nil, err
	}
	cellType, err := f.GetCellType(sheet, ref)
	if err != nil {
		return nil, fmt.Errorf("cell %s: %w", ref, err)
	}

	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula, excelize.CellTypeError:
		return raw, nil
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "true"), nil
	default:
		return entity.ParseValue(raw), nil
	}
}

func widest(rows [][]string) int {
	n := 0
	for _, r := range rows {
		if len(r) > n {
			n = len(r)
		}
	}
	return n
}
