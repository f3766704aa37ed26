package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/theirongolddev/bburn/internal/config"
	"github.com/theirongolddev/bburn/internal/model"
)

func TestResolveSchema(t *testing.T) {
	aliases := config.DefaultAliases()

	tests := []struct {
		name    string
		columns []string
		want    model.Schema
	}{
		{
			name:    "canonical names",
			columns: budgetHeader,
			want: model.Schema{
				Date:     model.Binding{Column: "Date", Resolved: true},
				Income:   model.Binding{Column: "Income Amount", Resolved: true},
				Expense:  model.Binding{Column: "Expense Amount", Resolved: true},
				Category: model.Binding{Column: "Expense Category", Resolved: true},
			},
		},
		{
			name:    "first alias in priority order wins",
			columns: []string{"Spending", "Expenses", "Earnings", "Income", "Category", "Spending Category"},
			want: model.Schema{
				Income:   model.Binding{Column: "Income", Resolved: true},
				Expense:  model.Binding{Column: "Expenses", Resolved: true},
				Category: model.Binding{Column: "Category", Resolved: true},
			},
		},
		{
			name:    "exact match only",
			columns: []string{"date", "Income ", "expense amount", "Categories"},
			want:    model.Schema{},
		},
		{
			name:    "no columns",
			columns: nil,
			want:    model.Schema{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveSchema(tt.columns, aliases))
		})
	}
}

func TestSchemaMissing(t *testing.T) {
	s := ResolveSchema([]string{"Transaction Date", "Spending"}, config.DefaultAliases())
	assert.Equal(t, []string{model.FieldIncome, model.FieldCategory}, s.Missing())
}
