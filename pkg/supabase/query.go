package supabase

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	// Packages
	scopey "github.com/mutablelogic/go-scopey"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

var (
	reOperator = regexp.MustCompile(`^(eq|neq|gt|gte|lt|lte|like|ilike|in|is)\.`)
	operators  = map[string]bool{
		"eq": true, "neq": true, "gt": true, "gte": true, "lt": true, "lte": true,
		"like": true, "ilike": true, "in": true, "is": true,
	}
)

// Parameters which are not column filters
var reserved = map[string]bool{
	"select": true, "order": true, "limit": true, "offset": true,
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Values returns the PostgREST query parameters for a read request
func (r *ReadTableRequest) Values() (url.Values, error) {
	values := url.Values{}
	if r.Select != "" {
		values.Set("select", r.Select)
	} else {
		values.Set("select", "*")
	}

	// Filters, in column order
	columns := make([]string, 0, len(r.Filter))
	for column := range r.Filter {
		columns = append(columns, column)
	}
	sort.Strings(columns)
	for _, column := range columns {
		switch value := r.Filter[column].(type) {
		case map[string]any:
			ops := make([]string, 0, len(value))
			for op := range value {
				ops = append(ops, op)
			}
			sort.Strings(ops)
			for _, op := range ops {
				if !operators[op] {
					return nil, scopey.ErrBadParameter.Withf("unsupported filter operator %q for %q", op, column)
				}
				values.Add(column, op+"."+operand(value[op]))
			}
		case nil:
			values.Add(column, "is.null")
		default:
			values.Add(column, "eq."+operand(value))
		}
	}

	// Ordering
	if r.OrderBy != "" {
		direction := "asc"
		if r.Ascending != nil && !*r.Ascending {
			direction = "desc"
		}
		values.Set("order", r.OrderBy+"."+direction)
	}

	// Pagination
	values.Set("limit", strconv.FormatUint(uint64(r.Limit), 10))
	values.Set("offset", strconv.FormatUint(uint64(r.Offset), 10))

	return values, nil
}

// ParseQuery splits a PostgREST query string such as
// "users?select=*&age=gte.18&order=name.desc" into a table name and
// query parameters. Filter values without an operator are compared
// for equality.
func ParseQuery(query string) (string, url.Values, error) {
	table, params, _ := strings.Cut(strings.TrimPrefix(strings.TrimSpace(query), "/"), "?")
	if err := checkTable(table); err != nil {
		return "", nil, err
	}
	values, err := url.ParseQuery(params)
	if err != nil {
		return "", nil, scopey.ErrBadParameter.Withf("invalid query: %v", err)
	}
	if values.Get("select") == "" {
		values.Set("select", "*")
	}
	for key, list := range values {
		if reserved[key] {
			continue
		}
		for i, value := range list {
			if !reOperator.MatchString(value) {
				list[i] = "eq." + value
			}
		}
	}
	if values.Has("offset") && !values.Has("limit") {
		values.Set("limit", strconv.Itoa(defaultLimit))
	}
	return table, values, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// operand formats a filter value for a query parameter
func operand(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		parts := make([]string, 0, len(v))
		for _, elem := range v {
			parts = append(parts, operand(elem))
		}
		return "(" + strings.Join(parts, ",") + ")"
	default:
		if data, err := json.Marshal(v); err == nil {
			return string(data)
		}
		return fmt.Sprint(v)
	}
}
