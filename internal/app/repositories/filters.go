package repositories

import (
	"github.com/Masterminds/squirrel"
	"github.com/samialh/ketab/internal/pkg/queryfilter"
)

// applyFilters adds the collected equality filters to a select. Keys
// come from per-resource whitelists in the controllers, so they are
// known column names.
func applyFilters(q squirrel.SelectBuilder, filters queryfilter.Filters) squirrel.SelectBuilder {
	for column, value := range filters {
		q = q.Where(squirrel.Eq{column: value})
	}
	return q
}
