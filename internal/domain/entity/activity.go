package entity

import "time"

// Activity action names
const (
	ActionAddRecord      = "add_record"
	ActionImport         = "import"
	ActionExport         = "export"
	ActionExportTemplate = "export_template"
	ActionSave           = "save"
	ActionLoad           = "load"
)

// Activity one journal entry for a completed operation
type Activity struct {
	ID        string
	Action    string
	Kind      Kind
	Details   string
	Rows      int
	Timestamp time.Time
}
