package pipeline

import (
	"github.com/theirongolddev/bburn/internal/config"
	"github.com/theirongolddev/bburn/internal/model"
)

// ResolveSchema binds each logical field to the first of its aliases that is
// exactly equal to one of columns. Fields with no matching alias stay
// unresolved.
func ResolveSchema(columns []string, aliases config.AliasConfig) model.Schema {
	present := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		present[c] = struct{}{}
	}

	return model.Schema{
		Date:     resolveField(present, aliases.Date),
		Income:   resolveField(present, aliases.Income),
		Expense:  resolveField(present, aliases.Expense),
		Category: resolveField(present, aliases.Category),
	}
}

func resolveField(present map[string]struct{}, aliases []string) model.Binding {
	for _, a := range aliases {
		if _, ok := present[a]; ok {
			return model.Binding{Column: a, Resolved: true}
		}
	}
	return model.Binding{}
}
