package postgres

import (
	"net/url"
	"testing"

	domainerrors "chirp/internal/domain/errors"
	"chirp/internal/infra/persistence/model"
	"chirp/internal/pagination"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

// newDryRunDB opens a gorm session that builds SQL without touching a
// database, so the clause generation can be inspected.
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{
		DryRun:                 true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return db
}

func parseQuery(t *testing.T, rawQuery string) *pagination.Query {
	t.Helper()

	values, err := url.ParseQuery(rawQuery)
	require.NoError(t, err)

	query, err := pagination.Parse(values)
	require.NoError(t, err)

	return query
}

// buildSQL runs the filter and order application against a dry-run posts
// statement and returns the generated SQL with its bound variables.
func buildSQL(t *testing.T, rawQuery string) (string, []any) {
	t.Helper()

	query := parseQuery(t, rawQuery)

	scoped := newDryRunDB(t).Model(&model.PostModel{})
	scoped, err := applyFilters(scoped, query, postFields)
	require.NoError(t, err)
	scoped, err = applyOrders(scoped, query, postFields)
	require.NoError(t, err)

	rows := []*model.PostModel{}
	tx := scoped.Find(&rows)
	require.NoError(t, tx.Error)

	return tx.Statement.SQL.String(), tx.Statement.Vars
}

func TestApplyFilters_GeneratedClauses(t *testing.T) {
	tt := []struct {
		name     string
		rawQuery string
		wantSQL  string
		wantVars []any
	}{
		{
			name:     "exact match on text column",
			rawQuery: "where__title=hello",
			wantSQL:  "title = ?",
			wantVars: []any{"hello"},
		},
		{
			name:     "exact match binds numeric column as integer",
			rawQuery: "where__id=9",
			wantSQL:  "id = ?",
			wantVars: []any{int64(9)},
		},
		{
			name:     "more_than on numeric column",
			rawQuery: "where__authorId__more_than=5",
			wantSQL:  "author_id > ?",
			wantVars: []any{int64(5)},
		},
		{
			name:     "not_equal",
			rawQuery: "where__likeCount__not_equal=0",
			wantSQL:  "like_count <> ?",
			wantVars: []any{int64(0)},
		},
		{
			name:     "between consumes both bounds",
			rawQuery: "where__id__between=10,20",
			wantSQL:  "id BETWEEN ? AND ?",
			wantVars: []any{int64(10), int64(20)},
		},
		{
			name:     "i_like wraps the value in wildcards",
			rawQuery: "where__title__i_like=go",
			wantSQL:  "title ILIKE ?",
			wantVars: []any{"%go%"},
		},
		{
			name:     "in expands the list",
			rawQuery: "where__title__in=a,b",
			wantSQL:  "title IN (?,?)",
			wantVars: []any{"a", "b"},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			sql, vars := buildSQL(t, tc.rawQuery)

			assert.Contains(t, sql, tc.wantSQL)
			for _, want := range tc.wantVars {
				assert.Contains(t, vars, want)
			}
		})
	}
}

func TestApplyFilters_UnknownFieldRejected(t *testing.T) {
	query := parseQuery(t, "where__password=oops")

	scoped := newDryRunDB(t).Model(&model.PostModel{})
	_, err := applyFilters(scoped, query, postFields)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "INVALID_FILTER", appErr.ErrorCode())
	assert.Contains(t, appErr.Details(), "password")
}

func TestApplyOrders_Direction(t *testing.T) {
	sql, _ := buildSQL(t, "order__createdAt=DESC")
	assert.Contains(t, sql, "ORDER BY created_at DESC")

	sql, _ = buildSQL(t, "order__likeCount=ASC")
	assert.Contains(t, sql, "ORDER BY like_count ASC")
}

func TestApplyOrders_UnknownFieldRejected(t *testing.T) {
	query := parseQuery(t, "order__password=ASC")

	scoped := newDryRunDB(t).Model(&model.PostModel{})
	_, err := applyOrders(scoped, query, postFields)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "INVALID_FILTER", appErr.ErrorCode())
}

func TestBindValues(t *testing.T) {
	assert.Equal(t, []any{int64(5)}, bindValues("id", []string{"5"}))
	assert.Equal(t, []any{"5"}, bindValues("title", []string{"5"}))

	// A non-integer value on a numeric column falls back to text binding.
	assert.Equal(t, []any{"abc"}, bindValues("id", []string{"abc"}))
}
