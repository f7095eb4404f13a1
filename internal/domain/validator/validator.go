// Package validator checks records and import headers before they reach a table.
//
// Single-record checks stop at the first failure. Header checks report every
// missing column so a whole file can be fixed in one pass.
package validator

import (
	"regexp"
	"strings"

	playground "github.com/go-playground/validator/v10"

	"github.com/yourusername/crm-records/internal/domain/entity"
)

// emailShape one "@" between a non-empty local part and a dotted domain.
// Deliberately loose: "a@b.c" passes, RFC corner cases are not checked.
var emailShape = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

const looseEmailTag = "loose_email"

// Validator record and header checks
type Validator struct {
	validate *playground.Validate
}

// New validator with the loose email rule registered
func New() *Validator {
	v := playground.New()
	// registration only fails on an empty tag or nil func
	_ = v.RegisterValidation(looseEmailTag, func(fl playground.FieldLevel) bool {
		return emailShape.MatchString(fl.Field().String())
	})
	return &Validator{validate: v}
}

// ValidateRequired fails with MissingFieldError naming the first field that is
// absent or blank after trimming.
func (v *Validator) ValidateRequired(record entity.Record, fields []string) error {
	for _, field := range fields {
		value := strings.TrimSpace(record.String(field))
		if err := v.validate.Var(value, "required"); err != nil {
			return &entity.MissingFieldError{Field: field}
		}
	}
	return nil
}

// ValidateEmail fails with InvalidFormatError unless value looks like local@domain.tld.
func (v *Validator) ValidateEmail(value string) error {
	if err := v.validate.Var(value, looseEmailTag); err != nil {
		return &entity.InvalidFormatError{Field: entity.FieldEmail, Value: value}
	}
	return nil
}

// ValidateColumns fails with MissingColumnsError listing every required column
// not present, in required order.
func (v *Validator) ValidateColumns(present, required []string) error {
	have := make(map[string]struct{}, len(present))
	for _, c := range present {
		have[c] = struct{}{}
	}

	var missing []string
	for _, c := range required {
		if _, ok := have[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &entity.MissingColumnsError{Columns: missing}
	}
	return nil
}

// ValidateCustomer required customer fields, then email shape.
func (v *Validator) ValidateCustomer(record entity.Record) error {
	if err := v.ValidateRequired(record, entity.KindCustomers.RequiredFields()); err != nil {
		return err
	}
	return v.ValidateEmail(strings.TrimSpace(record.String(entity.FieldEmail)))
}

// ValidateProduct required product fields
func (v *Validator) ValidateProduct(record entity.Record) error {
	return v.ValidateRequired(record, entity.KindProducts.RequiredFields())
}

// ValidateRecord dispatches on kind.
func (v *Validator) ValidateRecord(kind entity.Kind, record entity.Record) error {
	if kind == entity.KindProducts {
		return v.ValidateProduct(record)
	}
	return v.ValidateCustomer(record)
}
