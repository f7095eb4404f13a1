package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yourusername/crm-records/internal/domain/entity"
	"github.com/yourusername/crm-records/internal/usecase"
)

func (a *App) customerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Manage customers",
	}

	var (
		name, email, phone string
		extra              []string
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Add one customer",
		Example: `  crm customer add --name "John Doe" --email john@example.com --phone +1234567890 \
    --field category="Real Estate" --field city="New York"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := entity.RecordFrom(
				entity.FieldName, name,
				entity.FieldEmail, email,
				entity.FieldPhone, phone,
			)
			if err := setFields(&form, extra); err != nil {
				return err
			}

			record, err := a.session.AddCustomer(cmd.Context(), form)
			if err != nil {
				return fmt.Errorf("add customer: %w", err)
			}
			a.report(usecase.Information, fmt.Sprintf("Customer added successfully! (%s)", record.String(entity.FieldCustomerID)))
			a.showTable(entity.KindCustomers)
			return nil
		},
	}
	add.Flags().StringVar(&name, "name", "", "customer name (required)")
	add.Flags().StringVar(&email, "email", "", "email address (required)")
	add.Flags().StringVar(&phone, "phone", "", "phone number (required)")
	add.Flags().StringArrayVar(&extra, "field", nil,
		"additional field as key=value, e.g. category, city, instagram (repeatable)")

	cmd.AddCommand(add)
	return cmd
}

func (a *App) productCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Manage products",
	}

	var (
		id, name, category string
		optional           = map[string]*string{
			entity.FieldPrice:       new(string),
			entity.FieldStock:       new(string),
			entity.FieldDescription: new(string),
			entity.FieldSupplier:    new(string),
			entity.FieldStatus:      new(string),
		}
	)
	add := &cobra.Command{
		Use:     "add",
		Short:   "Add one product",
		Example: `  crm product add --id PRD001 --name "Sample Product" --category "Category A" --price 99.99 --stock 100`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := entity.RecordFrom(
				entity.FieldProductID, id,
				entity.FieldName, name,
				entity.FieldCategory, category,
			)
			for _, field := range entity.ProductFields() {
				value, ok := optional[field]
				if !ok || !cmd.Flags().Changed(field) {
					continue
				}
				if field == entity.FieldPrice || field == entity.FieldStock {
					form.Set(field, entity.ParseValue(*value))
					continue
				}
				form.Set(field, *value)
			}

			if _, err := a.session.AddProduct(cmd.Context(), form); err != nil {
				return fmt.Errorf("add product: %w", err)
			}
			a.report(usecase.Information, fmt.Sprintf("Product added successfully! (%s)", id))
			a.showTable(entity.KindProducts)
			return nil
		},
	}
	add.Flags().StringVar(&id, "id", "", "product id (required)")
	add.Flags().StringVar(&name, "name", "", "product name (required)")
	add.Flags().StringVar(&category, "category", "", "product category (required)")
	add.Flags().StringVar(optional[entity.FieldPrice], entity.FieldPrice, "", "unit price")
	add.Flags().StringVar(optional[entity.FieldStock], entity.FieldStock, "", "units in stock")
	add.Flags().StringVar(optional[entity.FieldDescription], entity.FieldDescription, "", "free text description")
	add.Flags().StringVar(optional[entity.FieldSupplier], entity.FieldSupplier, "", "supplier name")
	add.Flags().StringVar(optional[entity.FieldStatus], entity.FieldStatus, "", "status, e.g. Active")

	cmd.AddCommand(add)
	return cmd
}

// setFields applies key=value pairs in the order given. Values stay text.
func setFields(form *entity.Record, pairs []string) error {
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return fmt.Errorf("invalid --field %q, want key=value", pair)
		}
		form.Set(key, value)
	}
	return nil
}

func (a *App) showTable(kind entity.Kind) {
	if a.show {
		renderTable(a.out, a.session.Table(kind))
	}
}
