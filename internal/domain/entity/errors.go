package entity

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyTable returned when exporting a table without rows.
var ErrEmptyTable = errors.New("no data to export")

// MissingFieldError a required field is absent or blank.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// InvalidFormatError a value does not have the expected shape.
type InvalidFormatError struct {
	Field string
	Value string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid %s format: %q", e.Field, e.Value)
}

// MissingColumnsError an import file lacks required headers. Columns lists all of them.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "missing required columns: " + strings.Join(e.Columns, ", ")
}

// UnsupportedFormatError the import file extension is not recognized.
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Extension == "" {
		return "unsupported file format: no extension"
	}
	return fmt.Sprintf("unsupported file format %q", e.Extension)
}

// ParseError tabular content could not be read.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// PersistenceError the state file exists but could not be read or written.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("state file %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
