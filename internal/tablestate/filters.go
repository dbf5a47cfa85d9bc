// Package tablestate holds the canonical listing state (pagination, sort, search and
// column filters) and its mapping to and from URL query parameters.
package tablestate

import (
	"net/url"
	"sort"
	"strings"
)

// Reserved query parameter names. Every other key is a column filter.
const (
	ParamPage      = "page"
	ParamPageSize  = "pageSize"
	ParamSortBy    = "sortBy"
	ParamSortOrder = "sortOrder"
	ParamSearch    = "search"
)

const valueSeparator = ","

var reserved = map[string]struct{}{
	ParamPage:      {},
	ParamPageSize:  {},
	ParamSortBy:    {},
	ParamSortOrder: {},
	ParamSearch:    {},
}

// ColumnFilter selects discrete values for one column. Values must not contain commas.
type ColumnFilter struct {
	ColumnID string   `json:"id"`
	Values   []string `json:"value"`
}

// IsReserved reports whether key is one of the listing state parameters.
func IsReserved(key string) bool {
	_, ok := reserved[key]
	return ok
}

// DecodeFilters extracts column filters from a query. Repeated keys are coalesced,
// empty tokens dropped and filters without values omitted. Result is ordered by column.
func DecodeFilters(query url.Values) []ColumnFilter {
	var filters []ColumnFilter
	for key, occurrences := range query {
		if key == "" || IsReserved(key) {
			continue
		}
		var values []string
		for _, raw := range occurrences {
			values = append(values, splitValues(raw)...)
		}
		if len(values) == 0 {
			continue
		}
		filters = append(filters, ColumnFilter{ColumnID: key, Values: values})
	}
	sortFilters(filters)
	return filters
}

// EncodeFilters writes filters into query, replacing any previous value for the same
// column. Filters that end up with no values are removed from the query.
func EncodeFilters(query url.Values, filters []ColumnFilter) {
	for _, f := range filters {
		if f.ColumnID == "" || IsReserved(f.ColumnID) {
			continue
		}
		values := compact(f.Values)
		if len(values) == 0 {
			query.Del(f.ColumnID)
			continue
		}
		query.Set(f.ColumnID, strings.Join(values, valueSeparator))
	}
}

// ClearFilterParams removes every non-reserved key from query.
func ClearFilterParams(query url.Values) {
	for key := range query {
		if !IsReserved(key) {
			query.Del(key)
		}
	}
}

func splitValues(raw string) []string {
	return compact(strings.Split(raw, valueSeparator))
}

func compact(values []string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func sortFilters(filters []ColumnFilter) {
	sort.Slice(filters, func(i, j int) bool { return filters[i].ColumnID < filters[j].ColumnID })
}
