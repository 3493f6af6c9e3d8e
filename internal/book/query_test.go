package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListQuery_Normalized(t *testing.T) {
	tests := []struct {
		name string
		in   ListQuery
		want ListQuery
	}{
		{
			name: "defaults when empty",
			in:   ListQuery{},
			want: ListQuery{SortField: "id", SortDirection: "asc", Page: 1, PerPage: 10},
		},
		{
			name: "whitelisted field passes through",
			in:   ListQuery{SortField: "publication_year", SortDirection: "desc", Page: 3, PerPage: 25},
			want: ListQuery{SortField: "publication_year", SortDirection: "desc", Page: 3, PerPage: 25},
		},
		{
			name: "unknown sort field falls back to id",
			in:   ListQuery{SortField: "price"},
			want: ListQuery{SortField: "id", SortDirection: "asc", Page: 1, PerPage: 10},
		},
		{
			name: "sql in sort field falls back to id",
			in:   ListQuery{SortField: "title; DROP TABLE books"},
			want: ListQuery{SortField: "id", SortDirection: "asc", Page: 1, PerPage: 10},
		},
		{
			name: "direction desc is case-insensitive",
			in:   ListQuery{SortDirection: "DeSc"},
			want: ListQuery{SortField: "id", SortDirection: "desc", Page: 1, PerPage: 10},
		},
		{
			name: "any other direction becomes asc",
			in:   ListQuery{SortDirection: "sideways"},
			want: ListQuery{SortField: "id", SortDirection: "asc", Page: 1, PerPage: 10},
		},
		{
			name: "ASC stays asc",
			in:   ListQuery{SortDirection: "ASC"},
			want: ListQuery{SortField: "id", SortDirection: "asc", Page: 1, PerPage: 10},
		},
		{
			name: "non-positive per_page coerces to default",
			in:   ListQuery{PerPage: -5},
			want: ListQuery{SortField: "id", SortDirection: "asc", Page: 1, PerPage: 10},
		},
		{
			name: "oversized per_page clamps",
			in:   ListQuery{PerPage: 5000},
			want: ListQuery{SortField: "id", SortDirection: "asc", Page: 1, PerPage: 100},
		},
		{
			name: "non-positive page coerces to first",
			in:   ListQuery{Page: -1},
			want: ListQuery{SortField: "id", SortDirection: "asc", Page: 1, PerPage: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalized())
		})
	}
}

func TestListQuery_Offset(t *testing.T) {
	q := ListQuery{Page: 4, PerPage: 10}
	assert.Equal(t, 30, q.Offset())

	assert.Equal(t, 0, ListQuery{}.Normalized().Offset())
}

func TestSortColumn_DefaultsToID(t *testing.T) {
	assert.Equal(t, "id", sortColumn("anything"))
	assert.Equal(t, "updated_at", sortColumn("updated_at"))
}
