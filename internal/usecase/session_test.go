package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/yourusername/crm-records/internal/domain/entity"
	"github.com/yourusername/crm-records/internal/domain/repository"
	"github.com/yourusername/crm-records/internal/infrastructure/exporter"
	"github.com/yourusername/crm-records/internal/infrastructure/parser"
	"github.com/yourusername/crm-records/internal/infrastructure/storage"
)

var fixedNow = time.Date(2024, 3, 15, 9, 30, 0, 0, time.Local)

type failingStore struct {
	err error
}

func (f *failingStore) Save(ctx context.Context, snapshot entity.Snapshot) error { return f.err }

func (f *failingStore) Load(ctx context.Context) (entity.Snapshot, error) {
	return entity.NewSnapshot(), nil
}

type fixture struct {
	dir      string
	dataFile string
	store    repository.RecordStore
	activity repository.ActivityRepository
	session  Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	dataFile := filepath.Join(dir, "crm_data.json")
	store, err := storage.NewJSONRecordStore(dataFile, zap.NewNop())
	require.NoError(t, err)
	return newFixtureWithStore(t, dir, dataFile, store)
}

func newFixtureWithStore(t *testing.T, dir, dataFile string, store repository.RecordStore) *fixture {
	t.Helper()
	activity := storage.NewMemoryActivityRepository()
	s := NewSession(
		store,
		parser.NewSheetImporter(zap.NewNop()),
		exporter.NewExcelExporter(zap.NewNop()),
		activity,
		Options{Clock: func() time.Time { return fixedNow }},
	)
	require.NoError(t, s.Open(context.Background()))
	return &fixture{dir: dir, dataFile: dataFile, store: store, activity: activity, session: s}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func customerForm(name, email, phone string) entity.Record {
	return entity.RecordFrom("name", name, "email", email, "phone", phone)
}

func TestAddCustomerAssignsIDAndDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.session.AddCustomer(ctx, customerForm("John Doe", "john@example.com", "+1234567890"))
	require.NoError(t, err)
	require.Equal(t, "CUS000001", first.String(entity.FieldCustomerID))
	require.Equal(t, "2024-03-15 09:30:00", first.String(entity.FieldRegistrationDate))

	form := customerForm("Jane Smith", "jane@example.com", "+0987654321")
	form.Set(entity.FieldRegistrationDate, "2023-12-01 08:00:00")
	second, err := f.session.AddCustomer(ctx, form)
	require.NoError(t, err)
	require.Equal(t, "CUS000002", second.String(entity.FieldCustomerID))
	require.Equal(t, "2023-12-01 08:00:00", second.String(entity.FieldRegistrationDate))

	require.Equal(t, 2, f.session.Table(entity.KindCustomers).Len())
}

func TestAddCustomerPersistsImmediately(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.session.AddCustomer(ctx, customerForm("أحمد", "ahmad@example.com", "12345"))
	require.NoError(t, err)

	reloaded, err := f.store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, reloaded.Customers.Len())
	require.Equal(t, "أحمد", reloaded.Customers.Row(0).String("name"))
}

func TestAddCustomerValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.session.AddCustomer(ctx, entity.RecordFrom("name", "A", "phone", "1"))
	var missing *entity.MissingFieldError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "email", missing.Field)

	_, err = f.session.AddCustomer(ctx, customerForm("A", "not-an-email", "1"))
	var invalid *entity.InvalidFormatError
	require.ErrorAs(t, err, &invalid)
	require.Equal(t, Warning, SeverityOf(err))

	require.True(t, f.session.Table(entity.KindCustomers).IsEmpty())
	_, statErr := os.Stat(f.dataFile)
	require.True(t, os.IsNotExist(statErr))
}

func TestAddRecordLeavesStateUntouchedWhenSaveFails(t *testing.T) {
	dir := t.TempDir()
	store := &failingStore{err: &entity.PersistenceError{Path: "x", Err: errors.New("disk full")}}
	f := newFixtureWithStore(t, dir, filepath.Join(dir, "x"), store)

	_, err := f.session.AddProduct(context.Background(), entity.RecordFrom(
		"product_id", "PRD001", "name", "Widget", "category", "Tools",
	))
	var persist *entity.PersistenceError
	require.ErrorAs(t, err, &persist)
	require.True(t, f.session.Table(entity.KindProducts).IsEmpty())
}

func TestAddProduct(t *testing.T) {
	f := newFixture(t)

	_, err := f.session.AddProduct(context.Background(), entity.RecordFrom("product_id", "PRD001", "name", "Widget"))
	var missing *entity.MissingFieldError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "category", missing.Field)

	added, err := f.session.AddProduct(context.Background(), entity.RecordFrom(
		"product_id", "PRD001", "name", "Widget", "category", "Tools", "price", 9.5,
	))
	require.NoError(t, err)
	require.False(t, added.Has(entity.FieldCustomerID))
	require.Equal(t, []string{"product_id", "name", "category", "price"}, f.session.Table(entity.KindProducts).Columns())
}

func TestImportMissingEmailColumnMergesNothing(t *testing.T) {
	f := newFixture(t)
	path := writeFile(t, f.dir, "customers.csv", "name,phone\nAda,123\nBob,456\n")

	n, err := f.session.Import(context.Background(), entity.KindCustomers, path)
	require.Zero(t, n)
	var missing *entity.MissingColumnsError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, []string{"email"}, missing.Columns)
	require.True(t, f.session.Table(entity.KindCustomers).IsEmpty())
}

func TestImportCustomersSeedsIDsFromTableSize(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.session.AddCustomer(ctx, customerForm("First", "first@example.com", "1"))
	require.NoError(t, err)

	path := writeFile(t, f.dir, "customers.csv",
		"name,email,phone,city\nAda,ada@example.com,+44 20 7946 0000,London\nBob,bob@example.com,0555,\n")
	n, err := f.session.Import(ctx, entity.KindCustomers, path)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	table := f.session.Table(entity.KindCustomers)
	require.Equal(t, 3, table.Len())
	require.Equal(t, "CUS000002", table.Row(1).String(entity.FieldCustomerID))
	require.Equal(t, "CUS000003", table.Row(2).String(entity.FieldCustomerID))
	require.Equal(t, "2024-03-15 09:30:00", table.Row(2).String(entity.FieldRegistrationDate))
	require.Equal(t, "0555", table.Row(2).String(entity.FieldPhone))

	// the first row predates the city column
	v, ok := table.Row(0).Get("city")
	require.True(t, ok)
	require.Nil(t, v)

	reloaded, err := f.store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, reloaded.Customers.Len())
}

func TestImportKeepsExistingCustomerIDs(t *testing.T) {
	f := newFixture(t)
	path := writeFile(t, f.dir, "customers.csv",
		"customer_id,name,email,phone\nCUS000042,Ada,ada@example.com,1\n,Bob,bob@example.com,2\n")

	_, err := f.session.Import(context.Background(), entity.KindCustomers, path)
	require.NoError(t, err)

	table := f.session.Table(entity.KindCustomers)
	require.Equal(t, "CUS000042", table.Row(0).String(entity.FieldCustomerID))
	require.Equal(t, "CUS000002", table.Row(1).String(entity.FieldCustomerID))
}

func TestImportRecordsRepeatedIDsInHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	path := writeFile(t, f.dir, "products.csv",
		"product_id,name,category\nPRD001,Lamp,Home\nPRD001,Lamp,Home\n")

	n, err := f.session.Import(ctx, entity.KindProducts, path)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	history, err := f.session.History(ctx, 1)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, entity.ActionImport, history[0].Action)
	require.Equal(t, "products.csv (duplicate ids: PRD001)", history[0].Details)
}

func TestImportProductsWorkbook(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	path := filepath.Join(f.dir, "products.xlsx")

	wb := excelize.NewFile()
	require.NoError(t, wb.SetSheetRow("Sheet1", "A1", &[]any{"product_id", "name", "category", "price", "stock"}))
	require.NoError(t, wb.SetSheetRow("Sheet1", "A2", &[]any{"PRD010", "Lamp", "Home", 19.99, 7}))
	require.NoError(t, wb.SaveAs(path))
	require.NoError(t, wb.Close())

	n, err := f.session.Import(ctx, entity.KindProducts, path)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	row := f.session.Table(entity.KindProducts).Row(0)
	price, _ := row.Get("price")
	stock, _ := row.Get("stock")
	require.Equal(t, 19.99, price)
	require.Equal(t, int64(7), stock)
	require.False(t, row.Has(entity.FieldCustomerID))
}

func TestImportUnsupportedAndBrokenFiles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.session.Import(ctx, entity.KindCustomers, writeFile(t, f.dir, "notes.txt", "hello"))
	var unsupported *entity.UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)

	_, err = f.session.Import(ctx, entity.KindCustomers, writeFile(t, f.dir, "broken.xlsx", "not a zip"))
	var parseErr *entity.ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, Warning, SeverityOf(err))

	require.True(t, f.session.Table(entity.KindCustomers).IsEmpty())
}

func TestExportEmptyTable(t *testing.T) {
	f := newFixture(t)
	err := f.session.Export(context.Background(), entity.KindCustomers, filepath.Join(f.dir, "out.xlsx"))
	require.ErrorIs(t, err, entity.ErrEmptyTable)
	require.Equal(t, Warning, SeverityOf(err))
}

func TestExportWorkbookAndCSV(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.session.AddCustomer(ctx, customerForm("Ada", "ada@example.com", "1"))
	require.NoError(t, err)

	xlsxPath := filepath.Join(f.dir, "exports", "customers.xlsx")
	require.NoError(t, f.session.Export(ctx, entity.KindCustomers, xlsxPath))

	wb, err := excelize.OpenFile(xlsxPath)
	require.NoError(t, err)
	defer wb.Close()
	rows, err := wb.GetRows("Customer Data")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, []string{"name", "email", "phone", "customer_id", "registration_date"}, rows[0])

	csvPath := filepath.Join(f.dir, "customers.csv")
	require.NoError(t, f.session.Export(ctx, entity.KindCustomers, csvPath))
	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	require.Equal(t,
		"name,email,phone,customer_id,registration_date\nAda,ada@example.com,1,CUS000001,2024-03-15 09:30:00\n",
		string(data))

	err = f.session.Export(ctx, entity.KindCustomers, filepath.Join(f.dir, "customers.ods"))
	var unsupported *entity.UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
}

func TestExportTemplate(t *testing.T) {
	f := newFixture(t)
	path := filepath.Join(f.dir, "customers_template.xlsx")
	require.NoError(t, f.session.ExportTemplate(context.Background(), entity.KindCustomers, path))

	wb, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer wb.Close()
	require.Equal(t, []string{"Customers Template", "Instructions"}, wb.GetSheetList())

	// the template is not session data
	require.True(t, f.session.Table(entity.KindCustomers).IsEmpty())
}

func TestOpenCorruptStateStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	dataFile := writeFile(t, dir, "crm_data.json", "{not json")
	store, err := storage.NewJSONRecordStore(dataFile, zap.NewNop())
	require.NoError(t, err)

	s := NewSession(store, parser.NewSheetImporter(zap.NewNop()), exporter.NewExcelExporter(zap.NewNop()),
		storage.NewMemoryActivityRepository(), Options{})
	err = s.Open(context.Background())
	var persist *entity.PersistenceError
	require.ErrorAs(t, err, &persist)
	require.True(t, s.Table(entity.KindCustomers).IsEmpty())
	require.True(t, s.Table(entity.KindProducts).IsEmpty())
}

func TestOpenRestoresSavedState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.session.AddCustomer(ctx, customerForm("Ada", "ada@example.com", "1"))
	require.NoError(t, err)
	require.NoError(t, f.session.Close(ctx))

	again := newFixtureWithStore(t, f.dir, f.dataFile, f.store)
	table := again.session.Table(entity.KindCustomers)
	require.Equal(t, 1, table.Len())

	// numbering continues from the restored table
	added, err := again.session.AddCustomer(ctx, customerForm("Bob", "bob@example.com", "2"))
	require.NoError(t, err)
	require.Equal(t, "CUS000002", added.String(entity.FieldCustomerID))
}

func TestTableReturnsCopy(t *testing.T) {
	f := newFixture(t)
	_, err := f.session.AddCustomer(context.Background(), customerForm("Ada", "ada@example.com", "1"))
	require.NoError(t, err)

	copied := f.session.Table(entity.KindCustomers)
	copied.Append(entity.RecordFrom("name", "intruder"))
	require.Equal(t, 1, f.session.Table(entity.KindCustomers).Len())
}

func TestHistoryRecordsOperations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.session.AddCustomer(ctx, customerForm("Ada", "ada@example.com", "1"))
	require.NoError(t, err)
	require.NoError(t, f.session.ExportTemplate(ctx, entity.KindProducts, filepath.Join(f.dir, "p.xlsx")))

	history, err := f.session.History(ctx, 0)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(history), 3)

	actions := make([]string, 0, len(history))
	for _, a := range history {
		require.NotEmpty(t, a.ID)
		require.Equal(t, fixedNow, a.Timestamp)
		actions = append(actions, a.Action)
	}
	require.Contains(t, actions, entity.ActionLoad)
	require.Contains(t, actions, entity.ActionAddRecord)
	require.Contains(t, actions, entity.ActionExportTemplate)
}

func TestCloseKeepsUnreadableStateFile(t *testing.T) {
	dir := t.TempDir()
	dataFile := writeFile(t, dir, "crm_data.json", "{not json")
	store, err := storage.NewJSONRecordStore(dataFile, zap.NewNop())
	require.NoError(t, err)

	s := NewSession(store, parser.NewSheetImporter(zap.NewNop()), exporter.NewExcelExporter(zap.NewNop()),
		nil, Options{})
	require.Error(t, s.Open(context.Background()))
	require.NoError(t, s.Close(context.Background()))

	data, err := os.ReadFile(dataFile)
	require.NoError(t, err)
	require.Equal(t, "{not json", string(data))
}
