package model

// Logical field names.
const (
	FieldDate     = "date"
	FieldIncome   = "income"
	FieldExpense  = "expense"
	FieldCategory = "category"
)

// Binding ties a logical field to a concrete column name.
type Binding struct {
	Column   string `json:"column,omitempty"`
	Resolved bool   `json:"resolved"`
}

// Schema is the set of bindings found for one record set.
type Schema struct {
	Date     Binding `json:"date"`
	Income   Binding `json:"income"`
	Expense  Binding `json:"expense"`
	Category Binding `json:"category"`
}

// Missing returns the logical fields that did not resolve, in a fixed order.
func (s Schema) Missing() []string {
	var out []string
	for _, f := range []struct {
		name string
		b    Binding
	}{
		{FieldDate, s.Date},
		{FieldIncome, s.Income},
		{FieldExpense, s.Expense},
		{FieldCategory, s.Category},
	} {
		if !f.b.Resolved {
			out = append(out, f.name)
		}
	}
	return out
}
