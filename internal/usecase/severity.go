package usecase

import (
	"errors"

	"github.com/yourusername/crm-records/internal/domain/entity"
)

// Severity how the delivery layer presents an outcome
type Severity int

const (
	Information Severity = iota
	Warning
	Critical
)

// String prefix printed in front of user messages
func (s Severity) String() string {
	switch s {
	case Information:
		return "INFO"
	case Warning:
		return "WARNING"
	default:
		return "CRITICAL"
	}
}

// SeverityOf classifies an operation result. Known domain failures are
// recoverable warnings; anything else is critical.
func SeverityOf(err error) Severity {
	if err == nil {
		return Information
	}

	var (
		missingField   *entity.MissingFieldError
		invalidFormat  *entity.InvalidFormatError
		missingColumns *entity.MissingColumnsError
		unsupported    *entity.UnsupportedFormatError
		parseErr       *entity.ParseError
		persistErr     *entity.PersistenceError
	)
	switch {
	case errors.Is(err, entity.ErrEmptyTable),
		errors.As(err, &missingField),
		errors.As(err, &invalidFormat),
		errors.As(err, &missingColumns),
		errors.As(err, &unsupported),
		errors.As(err, &parseErr),
		errors.As(err, &persistErr):
		return Warning
	default:
		return Critical
	}
}
