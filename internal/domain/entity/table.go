package entity

// RecordTable ordered, column-aligned collection of records of one kind.
//
// The column set is the union of every field ever appended, in order of first
// occurrence. Every stored row carries every column; cells a row never had are nil.
type RecordTable struct {
	kind    Kind
	columns []string
	known   map[string]struct{}
	rows    []Record
}

// NewRecordTable empty table for the given kind
func NewRecordTable(kind Kind) *RecordTable {
	return &RecordTable{
		kind:  kind,
		known: make(map[string]struct{}),
	}
}

// Kind returns which record kind the table holds.
func (t *RecordTable) Kind() Kind {
	return t.kind
}

// Append adds a record at the end. Unknown fields become new columns for the
// whole table. Duplicates are not detected.
func (t *RecordTable) Append(record Record) {
	for _, name := range record.keys {
		t.addColumn(name)
	}

	row := NewRecord()
	for _, col := range t.columns {
		row.Set(col, record.values[col])
	}
	t.rows = append(t.rows, row)
}

// Merge appends externally sourced records in encounter order.
func (t *RecordTable) Merge(records []Record) {
	for _, r := range records {
		t.Append(r)
	}
}

// Columns ordered set of known field names.
func (t *RecordTable) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// HasColumn reports whether name is part of the column set.
func (t *RecordTable) HasColumn(name string) bool {
	_, ok := t.known[name]
	return ok
}

// Len row count
func (t *RecordTable) Len() int {
	return len(t.rows)
}

// IsEmpty true when the table has no rows.
func (t *RecordTable) IsEmpty() bool {
	return len(t.rows) == 0
}

// Row returns a copy of row i aligned to the current columns.
func (t *RecordTable) Row(i int) Record {
	return t.rows[i].Clone()
}

// Rows copies of every row, aligned to Columns().
func (t *RecordTable) Rows() []Record {
	out := make([]Record, len(t.rows))
	for i, r := range t.rows {
		out[i] = r.Clone()
	}
	return out
}

// Cells row-major stringified snapshot used for rendering and export.
func (t *RecordTable) Cells() [][]string {
	out := make([][]string, len(t.rows))
	for i, r := range t.rows {
		line := make([]string, len(t.columns))
		for j, col := range t.columns {
			line[j] = r.String(col)
		}
		out[i] = line
	}
	return out
}

// Clone independent copy of the table.
func (t *RecordTable) Clone() *RecordTable {
	c := NewRecordTable(t.kind)
	for _, col := range t.columns {
		c.addColumn(col)
	}
	c.rows = t.Rows()
	return c
}

func (t *RecordTable) addColumn(name string) {
	if _, ok := t.known[name]; ok {
		return
	}
	t.known[name] = struct{}{}
	t.columns = append(t.columns, name)
	for i := range t.rows {
		t.rows[i].Set(name, nil)
	}
}
