package pagination

import (
	"net/url"
	"testing"

	domainerrors "chirp/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	query, err := Parse(url.Values{})
	require.NoError(t, err)

	assert.Equal(t, DefaultTake, query.Take)
	assert.Equal(t, 0, query.Page)
	assert.True(t, query.CursorMode())
	assert.Empty(t, query.Filters)
	require.Len(t, query.Orders, 1)
	assert.Equal(t, "createdAt", query.Orders[0].Field)
	assert.False(t, query.Orders[0].Desc)
}

func TestParse_ExactMatchFilter(t *testing.T) {
	query, err := Parse(url.Values{"where__title": {"hello"}})
	require.NoError(t, err)

	require.Len(t, query.Filters, 1)
	assert.Equal(t, "title", query.Filters[0].Field)
	assert.Equal(t, Operator(""), query.Filters[0].Op)
	assert.Equal(t, []string{"hello"}, query.Filters[0].Values)
}

func TestParse_OperatorFilters(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		value      string
		wantOp     Operator
		wantValues []string
	}{
		{"more than", "where__id__more_than", "5", OpMoreThan, []string{"5"}},
		{"less than or equal", "where__id__less_than_or_equal", "9", OpLessThanOrEqual, []string{"9"}},
		{"not equal", "where__authorId__not_equal", "3", OpNotEqual, []string{"3"}},
		{"between", "where__id__between", "1,10", OpBetween, []string{"1", "10"}},
		{"like", "where__title__like", "go%", OpLike, []string{"go%"}},
		{"i_like wraps wildcards", "where__title__i_like", "go", OpILike, []string{"%go%"}},
		{"in", "where__id__in", "1,2,3", OpIn, []string{"1", "2", "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, err := Parse(url.Values{tt.key: {tt.value}})
			require.NoError(t, err)

			require.Len(t, query.Filters, 1)
			assert.Equal(t, tt.wantOp, query.Filters[0].Op)
			assert.Equal(t, tt.wantValues, query.Filters[0].Values)
		})
	}
}

func TestParse_MalformedKeys(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown operator", "where__id__around", "5"},
		{"empty field", "where____more_than", "5"},
		{"too many segments", "where__id__more__than", "5"},
		{"between arity", "where__id__between", "1,2,3"},
		{"order extra segment", "order__createdAt__x", "ASC"},
		{"order bad direction", "order__createdAt", "sideways"},
		{"page not a number", "page", "abc"},
		{"page zero", "page", "0"},
		{"take negative", "take", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(url.Values{tt.key: {tt.value}})
			require.Error(t, err)

			var appErr domainerrors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, "INVALID_FILTER", appErr.ErrorCode())
			assert.Contains(t, appErr.Details(), tt.key)
		})
	}
}

func TestParse_UnknownKeysIgnored(t *testing.T) {
	query, err := Parse(url.Values{"utm_source": {"mail"}, "take": {"5"}})
	require.NoError(t, err)

	assert.Empty(t, query.Filters)
	assert.Equal(t, 5, query.Take)
}

func TestQuery_OffsetMode(t *testing.T) {
	query, err := Parse(url.Values{"page": {"3"}, "take": {"10"}})
	require.NoError(t, err)

	assert.False(t, query.CursorMode())
	assert.Equal(t, 20, query.Skip())
}

func TestQuery_Ascending(t *testing.T) {
	asc, err := Parse(url.Values{"order__createdAt": {"ASC"}})
	require.NoError(t, err)
	assert.True(t, asc.Ascending())

	desc, err := Parse(url.Values{"order__createdAt": {"DESC"}})
	require.NoError(t, err)
	assert.False(t, desc.Ascending())

	// Ordering on another field leaves the id bound ascending.
	other, err := Parse(url.Values{"order__likeCount": {"DESC"}})
	require.NoError(t, err)
	assert.True(t, other.Ascending())
}

func TestQuery_NextURL(t *testing.T) {
	base, err := url.Parse("http://localhost:8080")
	require.NoError(t, err)

	values := url.Values{
		"where__title__i_like": {"go"},
		"order__createdAt":     {"ASC"},
		CursorMoreThanKey:      {"40"},
	}
	query, err := Parse(values)
	require.NoError(t, err)

	next, err := url.Parse(query.NextURL(base, "posts", 60))
	require.NoError(t, err)

	assert.Equal(t, "/posts", next.Path)
	params := next.Query()
	// The previous cursor bound is replaced, everything else survives.
	assert.Equal(t, "60", params.Get(CursorMoreThanKey))
	assert.Equal(t, "go", params.Get("where__title__i_like"))
	assert.Equal(t, "ASC", params.Get("order__createdAt"))
}

func TestQuery_NextURL_Descending(t *testing.T) {
	base, err := url.Parse("http://localhost:8080")
	require.NoError(t, err)

	query, err := Parse(url.Values{"order__createdAt": {"DESC"}})
	require.NoError(t, err)

	next, err := url.Parse(query.NextURL(base, "posts", 60))
	require.NoError(t, err)

	params := next.Query()
	assert.Equal(t, "60", params.Get(CursorLessThanKey))
	assert.Empty(t, params.Get(CursorMoreThanKey))
}

func TestPageConstructors(t *testing.T) {
	after := int64(9)
	next := "http://localhost:8080/posts?where__id__more_than=9"

	cursorPage := NewCursorPage([]int{1, 2, 3}, &after, &next)
	require.NotNil(t, cursorPage.Cursor)
	assert.Equal(t, &after, cursorPage.Cursor.After)
	require.NotNil(t, cursorPage.Count)
	assert.Equal(t, 3, *cursorPage.Count)
	assert.Equal(t, &next, cursorPage.Next)
	assert.Nil(t, cursorPage.Total)

	offsetPage := NewOffsetPage([]int{1, 2}, 42)
	require.NotNil(t, offsetPage.Total)
	assert.Equal(t, int64(42), *offsetPage.Total)
	assert.Nil(t, offsetPage.Cursor)
}
