package entity

// Product field names. name and category are shared with customers.
const (
	FieldProductID   = "product_id"
	FieldPrice       = "price"
	FieldStock       = "stock"
	FieldDescription = "description"
	FieldSupplier    = "supplier"
	FieldStatus      = "status"
)

// ProductFields product field catalog
func ProductFields() []string {
	return []string{
		FieldProductID, FieldName, FieldCategory, FieldPrice,
		FieldStock, FieldDescription, FieldSupplier, FieldStatus,
	}
}

func productSamples() []Record {
	return []Record{
		RecordFrom(
			FieldProductID, "PRD001",
			FieldName, "Product 1",
			FieldCategory, "Category A",
			FieldPrice, 99.99,
			FieldStock, int64(100),
			FieldDescription, "Product 1 description",
			FieldSupplier, "Supplier A",
			FieldStatus, "Active",
		),
		RecordFrom(
			FieldProductID, "PRD002",
			FieldName, "Product 2",
			FieldCategory, "Category B",
			FieldPrice, 149.99,
			FieldStock, int64(50),
			FieldDescription, "Product 2 description",
			FieldSupplier, "Supplier B",
			FieldStatus, "Active",
		),
	}
}
