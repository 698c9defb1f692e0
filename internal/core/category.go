package core

// Category is one of the five normalized spending buckets used for
// reporting.
type Category string

const (
	Essentials       Category = "Essentials"
	Transport        Category = "Transport"
	Entertainment    Category = "Entertainment"
	BusinessLearning Category = "Business & Learning"
	Other            Category = "Other"
)

// categoryTable maps the raw labels observed in bank exports onto the
// reporting buckets. Lookups are case-sensitive; the misspelled
// "Restuarant" and "Coffe" appear in real statements and are kept on
// purpose.
var categoryTable = map[string]Category{
	"Restaurant": Essentials,
	"Restuarant": Essentials,
	"Market":     Essentials,
	"Coffe":      Essentials,
	"Coffee":     Essentials,
	"Health":     Essentials,
	"Clothing":   Essentials,
	"Communal":   Essentials,
	"Fuel":       Essentials,

	"Taxi":      Transport,
	"Transport": Transport,
	"Rent Car":  Transport,

	"Sport":          Entertainment,
	"Events":         Entertainment,
	"Film/enjoyment": Entertainment,
	"Joy":            Entertainment,
	"Motel":          Entertainment,
	"Travel":         Entertainment,

	"Business lunch":    BusinessLearning,
	"Tech":              BusinessLearning,
	"business_expenses": BusinessLearning,
	"Learning":          BusinessLearning,
	"Phone":             BusinessLearning,

	"Other": Other,
}

// Normalize maps a raw free-text category label onto its bucket.
// Anything not in the table, including the empty string, is Other.
// Normalize is total: it never fails.
func Normalize(raw string) Category {
	if c, ok := categoryTable[raw]; ok {
		return c
	}
	return Other
}

// Categories returns the closed set of buckets in reporting order.
func Categories() []Category {
	return []Category{Essentials, Transport, Entertainment, BusinessLearning, Other}
}
