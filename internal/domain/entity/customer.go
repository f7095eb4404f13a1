package entity

// Customer field names
const (
	FieldName             = "name"
	FieldEmail            = "email"
	FieldPhone            = "phone"
	FieldAlternativePhone = "alternative_phone"
	FieldCategory         = "category"
	FieldCustomerID       = "customer_id"
	FieldRegistrationDate = "registration_date"

	FieldFacebook         = "facebook"
	FieldInstagram        = "instagram"
	FieldTwitter          = "twitter"
	FieldLinkedIn         = "linkedin"
	FieldPreferredContact = "preferred_contact"

	FieldCompany  = "company"
	FieldPosition = "position"
	FieldAddress  = "address"
	FieldCity     = "city"
	FieldCountry  = "country"
	FieldNotes    = "notes"
)

// FieldGroup a titled section of the customer form
type FieldGroup struct {
	Key    string
	Title  string
	Fields []string
}

// CustomerFieldGroups customer field catalog, in form order.
var CustomerFieldGroups = []FieldGroup{
	{
		Key:   "basic_info",
		Title: "Basic Information",
		Fields: []string{
			FieldName, FieldEmail, FieldPhone, FieldAlternativePhone,
			FieldCategory, FieldCustomerID, FieldRegistrationDate,
		},
	},
	{
		Key:    "social_media",
		Title:  "Social Media",
		Fields: []string{FieldFacebook, FieldInstagram, FieldTwitter, FieldLinkedIn, FieldPreferredContact},
	},
	{
		Key:    "additional_info",
		Title:  "Additional Information",
		Fields: []string{FieldCompany, FieldPosition, FieldAddress, FieldCity, FieldCountry, FieldNotes},
	},
}

// Advisory choices offered by the form. Not enforced.
var (
	CustomerCategories = []string{"Real Estate", "Tourism", "E-store", "Retail", "Other"}
	ContactMethods     = []string{"Email", "Phone", "Facebook", "Instagram", "Twitter", "LinkedIn"}
)

// CustomerFields flattened catalog
func CustomerFields() []string {
	var out []string
	for _, g := range CustomerFieldGroups {
		out = append(out, g.Fields...)
	}
	return out
}

func customerSamples() []Record {
	return []Record{
		RecordFrom(
			FieldName, "John Doe",
			FieldEmail, "john@example.com",
			FieldPhone, "+1234567890",
			FieldAlternativePhone, "+1122334455",
			FieldCategory, "Real Estate",
			FieldFacebook, "fb.com/john",
			FieldInstagram, "@john_doe",
			FieldTwitter, "@johnd",
			FieldLinkedIn, "linkedin.com/john",
			FieldPreferredContact, "Email",
			FieldCompany, "ABC Corp",
			FieldPosition, "Manager",
			FieldAddress, "123 Main St",
			FieldCity, "New York",
			FieldCountry, "USA",
			FieldNotes, "VIP Customer",
		),
		RecordFrom(
			FieldName, "Jane Smith",
			FieldEmail, "jane@example.com",
			FieldPhone, "+0987654321",
			FieldAlternativePhone, "+5544332211",
			FieldCategory, "Tourism",
			FieldFacebook, "fb.com/jane",
			FieldInstagram, "@jane_smith",
			FieldTwitter, "@janes",
			FieldLinkedIn, "linkedin.com/jane",
			FieldPreferredContact, "Phone",
			FieldCompany, "XYZ Ltd",
			FieldPosition, "Director",
			FieldAddress, "456 Oak Ave",
			FieldCity, "Los Angeles",
			FieldCountry, "USA",
			FieldNotes, "Regular Customer",
		),
	}
}
