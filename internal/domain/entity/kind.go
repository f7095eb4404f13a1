package entity

import (
	"fmt"
	"strings"
)

// Kind which of the two record tables a record belongs to
type Kind string

const (
	KindCustomers Kind = "customers"
	KindProducts  Kind = "products"
)

// ParseKind accepts "customers"/"customer" and "products"/"product".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "customers", "customer":
		return KindCustomers, nil
	case "products", "product":
		return KindProducts, nil
	}
	return "", fmt.Errorf("unknown record kind %q (want customers or products)", s)
}

// RequiredFields fields that block admission when absent or blank.
func (k Kind) RequiredFields() []string {
	switch k {
	case KindCustomers:
		return []string{FieldName, FieldEmail, FieldPhone}
	case KindProducts:
		return []string{FieldProductID, FieldName, FieldCategory}
	}
	return nil
}

// Title capitalized kind name ("Customers").
func (k Kind) Title() string {
	s := string(k)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// DataSheetTitle sheet name for full table exports.
func (k Kind) DataSheetTitle() string {
	switch k {
	case KindCustomers:
		return "Customer Data"
	case KindProducts:
		return "Product Data"
	}
	return "Data"
}

// TemplateSheetTitle sheet name for the sample sheet of a template.
func (k Kind) TemplateSheetTitle() string {
	return k.Title() + " Template"
}

// SampleRecords two example rows used by template export.
func (k Kind) SampleRecords() []Record {
	switch k {
	case KindCustomers:
		return customerSamples()
	case KindProducts:
		return productSamples()
	}
	return nil
}
