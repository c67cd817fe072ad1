package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseListBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Params
	}{
		{
			name: "empty body",
			body: ``,
			want: Params{Page: 1, PageSize: 10, SortBy: "id", SortOrder: "desc"},
		},
		{
			name: "all fields",
			body: `{"search_text":" grade ","order_by_field":"name","order_by_value":"ASC","page":3,"pageSize":25}`,
			want: Params{Page: 3, PageSize: 25, SortBy: "name", SortOrder: "asc", SearchText: "grade"},
		},
		{
			name: "numbers as strings",
			body: `{"page":"2","pageSize":"5"}`,
			want: Params{Page: 2, PageSize: 5, SortBy: "id", SortOrder: "desc"},
		},
		{
			name: "malformed numbers fall back",
			body: `{"page":"abc","pageSize":[1]}`,
			want: Params{Page: 1, PageSize: 10, SortBy: "id", SortOrder: "desc"},
		},
		{
			name: "anything but asc is descending",
			body: `{"order_by_value":"up"}`,
			want: Params{Page: 1, PageSize: 10, SortBy: "id", SortOrder: "desc"},
		},
		{
			name: "integral floats",
			body: `{"page":2.0,"pageSize":1e2}`,
			want: Params{Page: 2, PageSize: 100, SortBy: "id", SortOrder: "desc"},
		},
		{
			name: "invalid json",
			body: `{"page":`,
			want: Params{Page: 1, PageSize: 10, SortBy: "id", SortOrder: "desc"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseListBody([]byte(tt.body)))
		})
	}
}

func TestBuildMeta(t *testing.T) {
	m := BuildMeta(3, Params{Page: 2, PageSize: 1})
	assert.Equal(t, Meta{Count: 3, Page: 2, PageSize: 1, NoOfPages: 3}, m)

	m = BuildMeta(250, Params{Page: 1, PageSize: 500})
	assert.Equal(t, 100, m.PageSize)
	assert.Equal(t, 3, m.NoOfPages)

	m = BuildMeta(7, Params{Page: 1, PageSize: 0})
	assert.Equal(t, 1, m.NoOfPages)

	m = BuildMeta(0, Params{Page: 4, PageSize: 10})
	assert.Equal(t, 0, m.NoOfPages)
}

func TestSafeOrderClause(t *testing.T) {
	allowed := map[string]string{"id": "t.id", "name": "t.name"}

	assert.Equal(t, "t.name ASC", Params{SortBy: "name", SortOrder: "asc"}.SafeOrderClause(allowed, "id"))
	assert.Equal(t, "t.id DESC", Params{SortBy: "password; drop table", SortOrder: "desc"}.SafeOrderClause(allowed, "id"))
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 20, Params{Page: 3, PageSize: 10}.Offset())
	assert.Equal(t, 100, Params{Page: 2, PageSize: 1000}.Offset())
	assert.Equal(t, 0, Params{Page: 5, PageSize: 0}.Offset())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, EscapeLike("100%"))
	assert.Equal(t, `a\_b`, EscapeLike("a_b"))
	assert.Equal(t, `c:\\x`, EscapeLike(`c:\x`))
}
