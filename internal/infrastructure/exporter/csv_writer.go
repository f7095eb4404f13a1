package exporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yourusername/crm-records/internal/domain/entity"
)

// ExportCSV writes the table as comma separated text: header line, then rows,
// cells stringified as in the workbook export.
func ExportCSV(ctx context.Context, table *entity.RecordTable, path string) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close csv: %w", cerr)
		}
	}()

	w := csv.NewWriter(file)
	if err := w.Write(table.Columns()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := w.WriteAll(table.Cells()); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	return nil
}
