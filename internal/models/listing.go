package models

// Pagination describes the current page of a listing.
type Pagination struct {
	PageIndex int `json:"pageIndex"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	RowCount  int `json:"rowCount"`
}

// Page is the result of a paginated listing query.
type Page[T any] struct {
	Data      []T `json:"data"`
	PageCount int `json:"pageCount"`
	RowCount  int `json:"rowCount"`
}
