package repository

import (
	"context"

	"github.com/yourusername/crm-records/internal/domain/entity"
)

// SheetImporter reads tabular files into records
type SheetImporter interface {
	// ImportRows reads the header and every data row of the file at path.
	ImportRows(ctx context.Context, path string) (*entity.Sheet, error)
}

// SheetExporter writes record tables to styled workbook files
type SheetExporter interface {
	// ExportTable writes one table to a single-sheet file.
	ExportTable(ctx context.Context, table *entity.RecordTable, path, sheetTitle string) error

	// ExportTemplate writes a sample sheet plus an Instructions sheet for kind.
	ExportTemplate(ctx context.Context, kind entity.Kind, path string) error
}
