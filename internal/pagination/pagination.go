// Package pagination implements the flat query-string filter grammar and the
// offset/cursor pagination model shared by every list endpoint.
//
// Keys of the form where__<field> express exact-match predicates, keys of the
// form where__<field>__<operator> look the operator up in a fixed registry,
// and order__<field> keys set the sort direction (ASC or DESC). The plain
// controls page and take select offset mode and the page size. Any malformed
// key aborts parsing with an invalid-filter error before a query runs.
package pagination

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	domainerrors "chirp/internal/domain/errors"
)

// DefaultTake is the page size used when the client does not pass take.
const DefaultTake = 20

const (
	keyPage = "page"
	keyTake = "take"

	wherePrefix = "where__"
	orderPrefix = "order__"
	segmentSep  = "__"

	orderAsc  = "ASC"
	orderDesc = "DESC"

	// cursorOrderField is the field whose sort direction decides which
	// id-bound key the next link carries.
	cursorOrderField = "createdAt"
)

const (
	// CursorMoreThanKey bounds the next page from below (ascending order).
	CursorMoreThanKey = "where__id__more_than"
	// CursorLessThanKey bounds the next page from above (descending order).
	CursorLessThanKey = "where__id__less_than"
)

// Operator names a comparison/range/pattern predicate from the registry.
type Operator string

// Registered filter operators.
const (
	OpMoreThan        Operator = "more_than"
	OpMoreThanOrEqual Operator = "more_than_or_equal"
	OpLessThan        Operator = "less_than"
	OpLessThanOrEqual Operator = "less_than_or_equal"
	OpNotEqual        Operator = "not_equal"
	OpBetween         Operator = "between"
	OpLike            Operator = "like"
	OpILike           Operator = "i_like"
	OpIn              Operator = "in"
)

// operatorArity maps each registered operator to the exact number of values
// it consumes after splitting on commas; 0 means one or more.
var operatorArity = map[Operator]int{
	OpMoreThan:        1,
	OpMoreThanOrEqual: 1,
	OpLessThan:        1,
	OpLessThanOrEqual: 1,
	OpNotEqual:        1,
	OpBetween:         2,
	OpLike:            1,
	OpILike:           1,
	OpIn:              0,
}

// Filter is one structured predicate derived from a where__ key.
// An empty Op means an exact match.
type Filter struct {
	Field  string
	Op     Operator
	Values []string
}

// Eq builds an exact-match filter. Services use it for fixed constraints that
// client-supplied filters must never override.
func Eq(field, value string) Filter {
	return Filter{Field: field, Values: []string{value}}
}

// Order is one sort directive derived from an order__ key.
type Order struct {
	Field string
	Desc  bool
}

// Query is the parsed form of a list request.
type Query struct {
	Filters []Filter
	Orders  []Order
	Page    int // 0 when absent; a positive value selects offset mode.
	Take    int

	raw url.Values
}

// Parse decodes the raw query values into a Query. It fails with an
// invalid-filter error naming the offending key before any query executes.
func Parse(values url.Values) (*Query, error) {
	q := &Query{Take: DefaultTake, raw: values}

	// Map iteration order is random; sort keys so filter order is stable.
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := values.Get(key)

		switch {
		case key == keyPage:
			page, err := strconv.Atoi(value)
			if err != nil || page < 1 {
				return nil, domainerrors.NewInvalidFilterError(
					fmt.Sprintf("page must be a positive integer - offending key: %s", key))
			}
			q.Page = page
		case key == keyTake:
			take, err := strconv.Atoi(value)
			if err != nil || take < 1 {
				return nil, domainerrors.NewInvalidFilterError(
					fmt.Sprintf("take must be a positive integer - offending key: %s", key))
			}
			q.Take = take
		case strings.HasPrefix(key, wherePrefix):
			filter, err := parseWhere(key, value)
			if err != nil {
				return nil, err
			}
			q.Filters = append(q.Filters, filter)
		case strings.HasPrefix(key, orderPrefix):
			order, err := parseOrder(key, value)
			if err != nil {
				return nil, err
			}
			q.Orders = append(q.Orders, order)
		}
		// Keys outside the grammar are ignored.
	}

	if len(q.Orders) == 0 {
		q.Orders = []Order{{Field: cursorOrderField}}
	}

	return q, nil
}

func parseWhere(key, value string) (Filter, error) {
	split := strings.Split(key, segmentSep)
	if len(split) != 2 && len(split) != 3 || split[1] == "" {
		return Filter{}, domainerrors.NewInvalidFilterError(
			fmt.Sprintf("where key must split into 2 or 3 segments on '__' - offending key: %s", key))
	}

	field := split[1]
	if len(split) == 2 {
		return Filter{Field: field, Values: []string{value}}, nil
	}

	op := Operator(split[2])
	arity, ok := operatorArity[op]
	if !ok {
		return Filter{}, domainerrors.NewInvalidFilterError(
			fmt.Sprintf("unknown filter operator %q - offending key: %s", split[2], key))
	}

	values := []string{value}
	switch op {
	case OpBetween, OpIn:
		values = strings.Split(value, ",")
	case OpILike:
		// Wrap in wildcard markers for a case-insensitive substring match.
		values = []string{"%" + value + "%"}
	}

	if arity > 0 && len(values) != arity {
		return Filter{}, domainerrors.NewInvalidFilterError(
			fmt.Sprintf("operator %q expects %d comma-separated values - offending key: %s", op, arity, key))
	}
	if arity == 0 && len(values) == 0 {
		return Filter{}, domainerrors.NewInvalidFilterError(
			fmt.Sprintf("operator %q expects at least one value - offending key: %s", op, key))
	}

	return Filter{Field: field, Op: op, Values: values}, nil
}

func parseOrder(key, value string) (Order, error) {
	split := strings.Split(key, segmentSep)
	if len(split) != 2 || split[1] == "" {
		return Order{}, domainerrors.NewInvalidFilterError(
			fmt.Sprintf("order key must split into exactly 2 segments on '__' - offending key: %s", key))
	}

	switch value {
	case orderAsc:
		return Order{Field: split[1]}, nil
	case orderDesc:
		return Order{Field: split[1], Desc: true}, nil
	default:
		return Order{}, domainerrors.NewInvalidFilterError(
			fmt.Sprintf("order value must be %s or %s - offending key: %s", orderAsc, orderDesc, key))
	}
}

// CursorMode reports whether the query paginates by cursor rather than offset.
func (q *Query) CursorMode() bool {
	return q.Page == 0
}

// Skip returns the row offset for offset mode.
func (q *Query) Skip() int {
	if q.Page == 0 {
		return 0
	}

	return q.Take * (q.Page - 1)
}

// Ascending reports whether the effective createdAt ordering is ascending.
// It decides which id-bound key the next link carries. Cursor pagination is
// stable under concurrent tail insertions because it bounds by id, not by
// offset; offset mode should only be used on read-mostly tables.
func (q *Query) Ascending() bool {
	for _, order := range q.Orders {
		if order.Field == cursorOrderField {
			return !order.Desc
		}
	}

	return true
}

// NextURL builds the literal next-page URL: every original query parameter is
// cloned except the two id-bound filter keys, then exactly one id-bound key is
// appended carrying the cursor id. Clients must use the returned value
// verbatim for the following request.
func (q *Query) NextURL(base *url.URL, resourcePath string, lastID int64) string {
	next := *base
	next.Path = "/" + strings.Trim(resourcePath, "/")

	params := url.Values{}
	for key, vals := range q.raw {
		if key == CursorMoreThanKey || key == CursorLessThanKey {
			continue
		}
		for _, val := range vals {
			params.Add(key, val)
		}
	}

	boundKey := CursorLessThanKey
	if q.Ascending() {
		boundKey = CursorMoreThanKey
	}
	params.Set(boundKey, strconv.FormatInt(lastID, 10))

	next.RawQuery = params.Encode()

	return next.String()
}
