// Package parser reads import files (xlsx workbooks and csv) into records.
package parser

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/yourusername/crm-records/internal/domain/entity"
	"github.com/yourusername/crm-records/internal/domain/repository"
)

var errNoHeader = errors.New("file has no header row")

// workbookExtensions formats excelize can open
var workbookExtensions = map[string]struct{}{
	".xlsx": {},
	".xlsm": {},
	".xltx": {},
	".xltm": {},
}

type sheetImporter struct {
	excel *excelParser
	csv   *csvParser
}

// NewSheetImporter importer dispatching on file extension
func NewSheetImporter(logger *zap.Logger) repository.SheetImporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &sheetImporter{
		excel: &excelParser{logger: logger.Named("xlsx")},
		csv:   &csvParser{logger: logger.Named("csv")},
	}
}

// ImportRows reads path as a workbook or csv file depending on its extension.
func (s *sheetImporter) ImportRows(ctx context.Context, path string) (*entity.Sheet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := workbookExtensions[ext]; ok {
		return s.excel.parse(ctx, path)
	}
	if ext == ".csv" {
		return s.csv.parse(ctx, path)
	}
	return nil, &entity.UnsupportedFormatError{Extension: ext}
}

// headerNames trims header cells, names blank ones "Unnamed: N" and suffixes
// repeats with ".1", ".2" so every column name is unique.
func headerNames(raw []string, width int) []string {
	if width < len(raw) {
		width = len(raw)
	}

	names := make([]string, width)
	used := make(map[string]struct{}, width)
	next := make(map[string]int)
	for i := 0; i < width; i++ {
		name := ""
		if i < len(raw) {
			name = strings.TrimSpace(raw[i])
		}
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if _, dup := used[name]; dup {
			base := name
			for {
				next[base]++
				name = fmt.Sprintf("%s.%d", base, next[base])
				if _, dup := used[name]; !dup {
					break
				}
			}
		}
		used[name] = struct{}{}
		names[i] = name
	}
	return names
}

// isEmptyRow reports whether every cell is blank.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// idTracker collects identifiers that repeat within one file.
type idTracker struct {
	seen map[string]int
	dups []string
}

func newIDTracker() *idTracker {
	return &idTracker{seen: make(map[string]int)}
}

func (t *idTracker) add(ids ...string) {
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		t.seen[id]++
		if t.seen[id] == 2 {
			t.dups = append(t.dups, id)
		}
	}
}
