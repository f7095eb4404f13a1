package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yourusername/crm-records/internal/domain/entity"
	"github.com/yourusername/crm-records/internal/domain/ident"
	"github.com/yourusername/crm-records/internal/domain/repository"
	"github.com/yourusername/crm-records/internal/domain/validator"
	"github.com/yourusername/crm-records/internal/infrastructure/exporter"
)

// Session one application session over the customer and product tables.
//
// Every mutating operation works on a copy of the affected table, persists the
// resulting snapshot and only then replaces the in-memory table, so a failed
// operation leaves the session as it was.
type Session interface {
	// Open hydrates the session from the store. On a corrupt state file the
	// session stays empty and the PersistenceError is returned for reporting.
	Open(ctx context.Context) error

	// Close performs the final save. A state file that failed to load is left
	// untouched unless the session changed something since.
	Close(ctx context.Context) error

	// Save persists both tables.
	Save(ctx context.Context) error

	// AddCustomer validates, assigns customer_id, stamps a missing
	// registration_date and appends.
	AddCustomer(ctx context.Context, fields entity.Record) (entity.Record, error)

	// AddProduct validates and appends.
	AddProduct(ctx context.Context, fields entity.Record) (entity.Record, error)

	// Import merges every row of the file at path into the kind's table.
	Import(ctx context.Context, kind entity.Kind, path string) (int, error)

	// Export writes the kind's table to path (.xlsx or .csv).
	Export(ctx context.Context, kind entity.Kind, path string) error

	// ExportTemplate writes the sample workbook for kind.
	ExportTemplate(ctx context.Context, kind entity.Kind, path string) error

	// Table copy of the current table for rendering.
	Table(kind entity.Kind) *entity.RecordTable

	// Search rows whose cells match query.
	Search(kind entity.Kind, query string) []entity.Record

	// Summary row count and category breakdown.
	Summary(kind entity.Kind) Summary

	// History most recent journal entries.
	History(ctx context.Context, limit int) ([]entity.Activity, error)

	// ClearHistory empties the journal.
	ClearHistory(ctx context.Context) error
}

// Options optional collaborators
type Options struct {
	Clock  ident.Clock
	Logger *zap.Logger
}

type session struct {
	store     repository.RecordStore
	importer  repository.SheetImporter
	exporter  repository.SheetExporter
	activity  repository.ActivityRepository
	validator *validator.Validator
	clock     ident.Clock
	logger    *zap.Logger

	snapshot   entity.Snapshot
	loadFailed bool
}

// NewSession session with two empty tables; call Open to hydrate.
func NewSession(
	store repository.RecordStore,
	importer repository.SheetImporter,
	exporter repository.SheetExporter,
	activity repository.ActivityRepository,
	opts Options,
) Session {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &session{
		store:     store,
		importer:  importer,
		exporter:  exporter,
		activity:  activity,
		validator: validator.New(),
		clock:     opts.Clock,
		logger:    opts.Logger,
		snapshot:  entity.NewSnapshot(),
	}
}

// Open loads the persisted snapshot.
func (u *session) Open(ctx context.Context) error {
	snapshot, err := u.store.Load(ctx)
	if err != nil {
		u.logger.Warn("state not loaded, continuing with empty tables", zap.Error(err))
		u.loadFailed = true
		return err
	}
	u.snapshot = snapshot
	u.logActivity(ctx, entity.ActionLoad, "", snapshot.Customers.Len()+snapshot.Products.Len(), "state loaded")
	return nil
}

// Close final save. Errors are reported to the caller but shutdown proceeds.
func (u *session) Close(ctx context.Context) error {
	if u.loadFailed {
		u.logger.Warn("state file was not loaded, leaving it as is")
		return nil
	}
	if err := u.Save(ctx); err != nil {
		u.logger.Error("final save failed", zap.Error(err))
		return err
	}
	return nil
}

// Save persists the current snapshot.
func (u *session) Save(ctx context.Context) error {
	if err := u.store.Save(ctx, u.snapshot); err != nil {
		return fmt.Errorf("save records: %w", err)
	}
	u.logActivity(ctx, entity.ActionSave, "", u.snapshot.Customers.Len()+u.snapshot.Products.Len(), "state saved")
	return nil
}

// AddCustomer admits one customer from a form submission.
func (u *session) AddCustomer(ctx context.Context, fields entity.Record) (entity.Record, error) {
	if err := u.validator.ValidateCustomer(fields); err != nil {
		return entity.Record{}, err
	}

	record := fields.Clone()
	record.Set(entity.FieldCustomerID, ident.NextCustomerID(u.snapshot.Customers.Len()))
	if strings.TrimSpace(record.String(entity.FieldRegistrationDate)) == "" {
		record.Set(entity.FieldRegistrationDate, ident.Timestamp(u.clock))
	}

	if err := u.commit(ctx, entity.KindCustomers, func(t *entity.RecordTable) {
		t.Append(record)
	}); err != nil {
		return entity.Record{}, err
	}

	u.logger.Info("customer added", zap.String("customer_id", record.String(entity.FieldCustomerID)))
	u.logActivity(ctx, entity.ActionAddRecord, entity.KindCustomers, 1, record.String(entity.FieldCustomerID))
	return record, nil
}

// AddProduct admits one product from a form submission.
func (u *session) AddProduct(ctx context.Context, fields entity.Record) (entity.Record, error) {
	if err := u.validator.ValidateProduct(fields); err != nil {
		return entity.Record{}, err
	}

	record := fields.Clone()
	if err := u.commit(ctx, entity.KindProducts, func(t *entity.RecordTable) {
		t.Append(record)
	}); err != nil {
		return entity.Record{}, err
	}

	u.logger.Info("product added", zap.String("product_id", record.String(entity.FieldProductID)))
	u.logActivity(ctx, entity.ActionAddRecord, entity.KindProducts, 1, record.String(entity.FieldProductID))
	return record, nil
}

// Import reads the file, checks the header, fills missing customer ids and
// registration dates and merges every row. Any failure rejects the whole file.
func (u *session) Import(ctx context.Context, kind entity.Kind, path string) (int, error) {
	sheet, err := u.importer.ImportRows(ctx, path)
	if err != nil {
		return 0, err
	}

	if err := u.validator.ValidateColumns(sheet.Columns, kind.RequiredFields()); err != nil {
		u.logger.Warn("import rejected",
			zap.String("path", path),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		return 0, err
	}

	rows := sheet.Rows
	if kind == entity.KindCustomers {
		rows = u.stampCustomers(rows, u.snapshot.Customers.Len())
	}

	if err := u.commit(ctx, kind, func(t *entity.RecordTable) {
		t.Merge(rows)
	}); err != nil {
		return 0, err
	}

	u.logger.Info("records imported",
		zap.String("path", path),
		zap.String("kind", string(kind)),
		zap.Int("rows", len(rows)),
	)
	details := filepath.Base(path)
	if len(sheet.DuplicateIDs) > 0 {
		u.logger.Warn("imported file repeats identifiers",
			zap.String("path", path),
			zap.Strings("ids", sheet.DuplicateIDs),
		)
		details += " (duplicate ids: " + strings.Join(sheet.DuplicateIDs, ", ") + ")"
	}
	u.logActivity(ctx, entity.ActionImport, kind, len(rows), details)
	return len(rows), nil
}

// stampCustomers gives rows without customer_id consecutive ids seeded from
// count and stamps a registration date where none is set.
func (u *session) stampCustomers(rows []entity.Record, count int) []entity.Record {
	now := ident.Timestamp(u.clock)
	ids := ident.CustomerIDs(count, len(rows))
	out := make([]entity.Record, len(rows))
	for i, row := range rows {
		r := row.Clone()
		if strings.TrimSpace(r.String(entity.FieldCustomerID)) == "" {
			r.Set(entity.FieldCustomerID, ids[i])
		}
		if strings.TrimSpace(r.String(entity.FieldRegistrationDate)) == "" {
			r.Set(entity.FieldRegistrationDate, now)
		}
		out[i] = r
	}
	return out
}

// Export writes the table as a styled workbook, or as csv for .csv paths.
func (u *session) Export(ctx context.Context, kind entity.Kind, path string) error {
	table := u.snapshot.Table(kind)
	if table.IsEmpty() {
		return entity.ErrEmptyTable
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx":
		if err := u.exporter.ExportTable(ctx, table, path, kind.DataSheetTitle()); err != nil {
			return fmt.Errorf("export %s: %w", kind, err)
		}
	case ".csv":
		if err := exporter.ExportCSV(ctx, table, path); err != nil {
			return fmt.Errorf("export %s: %w", kind, err)
		}
	default:
		return &entity.UnsupportedFormatError{Extension: ext}
	}

	u.logActivity(ctx, entity.ActionExport, kind, table.Len(), filepath.Base(path))
	return nil
}

// ExportTemplate writes the onboarding template for kind.
func (u *session) ExportTemplate(ctx context.Context, kind entity.Kind, path string) error {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".xlsx" {
		return &entity.UnsupportedFormatError{Extension: ext}
	}
	if err := u.exporter.ExportTemplate(ctx, kind, path); err != nil {
		return fmt.Errorf("export %s template: %w", kind, err)
	}
	u.logActivity(ctx, entity.ActionExportTemplate, kind, len(kind.SampleRecords()), filepath.Base(path))
	return nil
}

// Table copy of the current table
func (u *session) Table(kind entity.Kind) *entity.RecordTable {
	return u.snapshot.Table(kind).Clone()
}

// History most recent journal entries
func (u *session) History(ctx context.Context, limit int) ([]entity.Activity, error) {
	if u.activity == nil {
		return nil, nil
	}
	return u.activity.Recent(ctx, limit)
}

// ClearHistory empties the journal
func (u *session) ClearHistory(ctx context.Context) error {
	if u.activity == nil {
		return nil
	}
	return u.activity.Clear(ctx)
}

// commit applies mutate to a copy of the kind's table, saves the resulting
// snapshot and swaps it in on success.
func (u *session) commit(ctx context.Context, kind entity.Kind, mutate func(t *entity.RecordTable)) error {
	next := entity.Snapshot{
		Customers: u.snapshot.Customers,
		Products:  u.snapshot.Products,
	}
	table := u.snapshot.Table(kind).Clone()
	mutate(table)
	if kind == entity.KindProducts {
		next.Products = table
	} else {
		next.Customers = table
	}

	if err := u.store.Save(ctx, next); err != nil {
		return fmt.Errorf("save records: %w", err)
	}
	u.snapshot = next
	u.loadFailed = false
	return nil
}

// logActivity journal failures never fail the operation.
func (u *session) logActivity(ctx context.Context, action string, kind entity.Kind, rows int, details string) {
	if u.activity == nil {
		return
	}
	err := u.activity.Log(ctx, entity.Activity{
		ID:        uuid.New().String(),
		Action:    action,
		Kind:      kind,
		Details:   details,
		Rows:      rows,
		Timestamp: u.clock(),
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		u.logger.Warn("activity not recorded", zap.String("action", action), zap.Error(err))
	}
}
