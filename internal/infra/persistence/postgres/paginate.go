package postgres

import (
	"fmt"
	"net/url"
	"strconv"

	domainerrors "chirp/internal/domain/errors"
	"chirp/internal/errors"
	"chirp/internal/pagination"

	"gorm.io/gorm"
)

// fieldColumns whitelists the camelCase filter/sort fields a resource exposes
// and maps each onto its column. Any field outside the map aborts the query
// with an invalid-filter error, so client input never reaches SQL identifiers.
type fieldColumns map[string]string

// numericColumns names the columns whose filter values are bound as integers.
// Everything else is bound as text and parsed by PostgreSQL.
var numericColumns = map[string]struct{}{
	"id":             {},
	"author_id":      {},
	"post_id":        {},
	"chat_id":        {},
	"follower_id":    {},
	"followee_id":    {},
	"like_count":     {},
	"comment_count":  {},
	"follower_count": {},
	"followee_count": {},
	"display_order":  {},
}

// runPaginate executes a parsed list query against an already scoped GORM
// statement (model, fixed constraints and preloads applied by the caller) and
// assembles either an offset page or a cursor page.
func runPaginate[M any, E any](
	scoped *gorm.DB,
	query *pagination.Query,
	fields fieldColumns,
	baseURL *url.URL,
	resourcePath string,
	convert func(*M) *E,
	entityID func(*E) int64,
) (*pagination.Page[*E], error) {
	scoped, err := applyFilters(scoped, query, fields)
	if err != nil {
		return nil, err
	}

	scoped, err = applyOrders(scoped, query, fields)
	if err != nil {
		return nil, err
	}

	if !query.CursorMode() {
		var total int64
		if err := scoped.Count(&total).Error; err != nil {
			return nil, errors.Wrap(err, "count rows")
		}

		rows := []*M{}
		if err := scoped.Offset(query.Skip()).Limit(query.Take).Find(&rows).Error; err != nil {
			return nil, errors.Wrap(err, "find page")
		}

		return pagination.NewOffsetPage(convertAll(rows, convert), total), nil
	}

	rows := []*M{}
	if err := scoped.Limit(query.Take).Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "find page")
	}

	data := convertAll(rows, convert)

	// The cursor and next link only exist when the page came back full;
	// a short page means the data ran out.
	var after *int64
	var next *string
	if len(data) == query.Take && query.Take > 0 {
		lastID := entityID(data[len(data)-1])
		after = &lastID
		nextURL := query.NextURL(baseURL, resourcePath, lastID)
		next = &nextURL
	}

	return pagination.NewCursorPage(data, after, next), nil
}

func convertAll[M any, E any](rows []*M, convert func(*M) *E) []*E {
	out := make([]*E, 0, len(rows))
	for _, row := range rows {
		out = append(out, convert(row))
	}

	return out
}

func applyFilters(scoped *gorm.DB, query *pagination.Query, fields fieldColumns) (*gorm.DB, error) {
	for _, filter := range query.Filters {
		column, ok := fields[filter.Field]
		if !ok {
			return nil, domainerrors.NewInvalidFilterError(
				fmt.Sprintf("unknown filter field: %s", filter.Field))
		}

		values := bindValues(column, filter.Values)

		switch filter.Op {
		case "":
			scoped = scoped.Where(column+" = ?", values[0])
		case pagination.OpMoreThan:
			scoped = scoped.Where(column+" > ?", values[0])
		case pagination.OpMoreThanOrEqual:
			scoped = scoped.Where(column+" >= ?", values[0])
		case pagination.OpLessThan:
			scoped = scoped.Where(column+" < ?", values[0])
		case pagination.OpLessThanOrEqual:
			scoped = scoped.Where(column+" <= ?", values[0])
		case pagination.OpNotEqual:
			scoped = scoped.Where(column+" <> ?", values[0])
		case pagination.OpBetween:
			scoped = scoped.Where(column+" BETWEEN ? AND ?", values[0], values[1])
		case pagination.OpLike:
			scoped = scoped.Where(column+" LIKE ?", values[0])
		case pagination.OpILike:
			scoped = scoped.Where(column+" ILIKE ?", values[0])
		case pagination.OpIn:
			scoped = scoped.Where(column+" IN ?", values)
		default:
			return nil, domainerrors.NewInvalidFilterError(
				fmt.Sprintf("unknown filter operator: %s", filter.Op))
		}
	}

	return scoped, nil
}

func applyOrders(scoped *gorm.DB, query *pagination.Query, fields fieldColumns) (*gorm.DB, error) {
	for _, order := range query.Orders {
		column, ok := fields[order.Field]
		if !ok {
			return nil, domainerrors.NewInvalidFilterError(
				fmt.Sprintf("unknown order field: %s", order.Field))
		}

		direction := " ASC"
		if order.Desc {
			direction = " DESC"
		}
		scoped = scoped.Order(column + direction)
	}

	return scoped, nil
}

// bindValues converts filter values for integer columns so the driver binds
// them with the right parameter type.
func bindValues(column string, raw []string) []any {
	_, numeric := numericColumns[column]

	values := make([]any, 0, len(raw))
	for _, v := range raw {
		if numeric {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				values = append(values, n)

				continue
			}
		}
		values = append(values, v)
	}

	return values
}
