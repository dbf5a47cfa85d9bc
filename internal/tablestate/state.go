package tablestate

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	// MaxPageIndex keeps PageIndex*MaxPageSize within a 32-bit offset.
	MaxPageIndex = math.MaxInt32 / MaxPageSize
)

// SortDirection is the order applied to the sorted column.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Sort is the single active sort. A zero Sort means no explicit sort.
type Sort struct {
	ColumnID  string        `json:"id,omitempty"`
	Direction SortDirection `json:"direction,omitempty"`
}

// IsZero reports whether no sort is active.
func (s Sort) IsZero() bool {
	return s.ColumnID == ""
}

// Desc reports whether the sort is descending.
func (s Sort) Desc() bool {
	return s.Direction == SortDesc
}

// State is the listing state shared by the URL, the server-rendered first page and
// client-side navigation. It is a value type; every mutator returns a new State.
type State struct {
	PageIndex int            `json:"pageIndex"`
	PageSize  int            `json:"pageSize"`
	Sort      Sort           `json:"sort"`
	Search    string         `json:"search"`
	Filters   []ColumnFilter `json:"filters"`
}

// Default returns the state used when the URL carries no listing parameters.
func Default() State {
	return State{PageIndex: 0, PageSize: DefaultPageSize}
}

// Parse restores state from URL query parameters. Malformed numbers fall back to defaults.
func Parse(query url.Values) State {
	state := Default()

	if raw := strings.TrimSpace(query.Get(ParamPage)); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page > 0 {
			state.PageIndex = clampPageIndex(page)
		}
	}
	if raw := strings.TrimSpace(query.Get(ParamPageSize)); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil && size > 0 {
			state.PageSize = clampPageSize(size)
		}
	}
	if column := strings.TrimSpace(query.Get(ParamSortBy)); column != "" {
		state.Sort = Sort{ColumnID: column, Direction: parseDirection(query.Get(ParamSortOrder))}
	}
	state.Search = strings.TrimSpace(query.Get(ParamSearch))
	state.Filters = DecodeFilters(query)

	return state
}

// ParseQuery parses a raw query string such as the one found in a request URL.
func ParseQuery(rawQuery string) (State, error) {
	query, err := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
	if err != nil {
		return Default(), err
	}
	return Parse(query), nil
}

// Values encodes the state. Defaults are omitted so equal states share one encoding.
func (s State) Values() url.Values {
	query := url.Values{}
	if s.PageIndex > 0 {
		query.Set(ParamPage, strconv.Itoa(s.PageIndex))
	}
	if s.PageSize > 0 && s.PageSize != DefaultPageSize {
		query.Set(ParamPageSize, strconv.Itoa(s.PageSize))
	}
	if !s.Sort.IsZero() {
		query.Set(ParamSortBy, s.Sort.ColumnID)
		query.Set(ParamSortOrder, string(normalizeDirection(s.Sort.Direction)))
	}
	if s.Search != "" {
		query.Set(ParamSearch, s.Search)
	}
	EncodeFilters(query, s.Filters)
	return query
}

// Encode returns the canonical query string (keys sorted).
func (s State) Encode() string {
	return s.Values().Encode()
}

// Offset is the number of rows skipped before the current page.
func (s State) Offset() int {
	return clampPageIndex(s.PageIndex) * s.effectivePageSize()
}

// Limit is the page size used for queries.
func (s State) Limit() int {
	return s.effectivePageSize()
}

// Filter returns the selected values for column, or nil.
func (s State) Filter(column string) []string {
	for _, f := range s.Filters {
		if f.ColumnID == column {
			return f.Values
		}
	}
	return nil
}

// SetPage navigates to pageIndex without touching anything else.
func (s State) SetPage(pageIndex int) State {
	if pageIndex < 0 {
		pageIndex = 0
	}
	s.PageIndex = clampPageIndex(pageIndex)
	return s
}

// SetPageSize changes the page size and keeps the current page.
func (s State) SetPageSize(size int) State {
	if size <= 0 {
		size = DefaultPageSize
	}
	s.PageSize = clampPageSize(size)
	return s
}

// ToggleSort cycles column through ascending, descending and unsorted. Switching to a
// different column starts ascending.
func (s State) ToggleSort(column string) State {
	switch {
	case s.Sort.ColumnID != column:
		return s.SetSort(column, SortAsc)
	case !s.Sort.Desc():
		return s.SetSort(column, SortDesc)
	default:
		return s.ClearSort()
	}
}

// SetSort activates a single sort and returns to the first page.
func (s State) SetSort(column string, direction SortDirection) State {
	if column == "" {
		return s.ClearSort()
	}
	next := Sort{ColumnID: column, Direction: normalizeDirection(direction)}
	if next == s.Sort {
		return s
	}
	s.Sort = next
	s.PageIndex = 0
	return s
}

// ClearSort removes the sort and returns to the first page.
func (s State) ClearSort() State {
	if s.Sort.IsZero() {
		return s
	}
	s.Sort = Sort{}
	s.PageIndex = 0
	return s
}

// SetSearch replaces the global search string and returns to the first page.
func (s State) SetSearch(search string) State {
	search = strings.TrimSpace(search)
	if search == s.Search {
		return s
	}
	s.Search = search
	s.PageIndex = 0
	return s
}

// SetFilter replaces the values selected for column. Empty values remove the filter.
func (s State) SetFilter(column string, values []string) State {
	if column == "" || IsReserved(column) {
		return s
	}
	var filters []ColumnFilter
	for _, f := range s.Filters {
		if f.ColumnID != column {
			filters = append(filters, f)
		}
	}
	if cleaned := compact(values); len(cleaned) > 0 {
		filters = append(filters, ColumnFilter{ColumnID: column, Values: cleaned})
	}
	sortFilters(filters)
	s.Filters = filters
	s.PageIndex = 0
	return s
}

// SetFilters replaces every column filter at once.
func (s State) SetFilters(filters []ColumnFilter) State {
	var next []ColumnFilter
	for _, f := range filters {
		if f.ColumnID == "" || IsReserved(f.ColumnID) {
			continue
		}
		if cleaned := compact(f.Values); len(cleaned) > 0 {
			next = append(next, ColumnFilter{ColumnID: f.ColumnID, Values: cleaned})
		}
	}
	sortFilters(next)
	s.Filters = next
	s.PageIndex = 0
	return s
}

// ClearFilters drops all column filters and returns to the first page.
func (s State) ClearFilters() State {
	s.Filters = nil
	s.PageIndex = 0
	return s
}

// PageCount is ceil(rowCount / pageSize). pageSize must be at least 1.
func PageCount(rowCount, pageSize int) int {
	if rowCount <= 0 {
		return 0
	}
	return (rowCount + pageSize - 1) / pageSize
}

func (s State) effectivePageSize() int {
	if s.PageSize <= 0 {
		return DefaultPageSize
	}
	return clampPageSize(s.PageSize)
}

func clampPageIndex(page int) int {
	if page > MaxPageIndex {
		return MaxPageIndex
	}
	return page
}

func clampPageSize(size int) int {
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

func parseDirection(raw string) SortDirection {
	if strings.EqualFold(strings.TrimSpace(raw), string(SortDesc)) {
		return SortDesc
	}
	return SortAsc
}

func normalizeDirection(d SortDirection) SortDirection {
	if d == SortDesc {
		return SortDesc
	}
	return SortAsc
}
