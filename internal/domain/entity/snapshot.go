package entity

// Snapshot full record store: both tables, persisted together.
type Snapshot struct {
	Customers *RecordTable
	Products  *RecordTable
}

// NewSnapshot two empty tables
func NewSnapshot() Snapshot {
	return Snapshot{
		Customers: NewRecordTable(KindCustomers),
		Products:  NewRecordTable(KindProducts),
	}
}

// Table returns the table of the given kind.
func (s Snapshot) Table(kind Kind) *RecordTable {
	if kind == KindProducts {
		return s.Products
	}
	return s.Customers
}

// Sheet rows read from one import file. Columns is the header row, in file order,
// and is set even when the file has no data rows.
type Sheet struct {
	Source  string
	Columns []string
	Rows    []Record
	// DuplicateIDs customer_id/product_id values that occur on more than one
	// row, in first-repeat order. Duplicates are still imported.
	DuplicateIDs []string
}
