package dto

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"locally/shared/constant"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// NewestFirst orders rows of table by creation time, most recent first, without pagination.
func NewestFirst(table string) QueryParams {
	return QueryParams{
		SortBy:  table + "." + constant.DefaultValueSortBy,
		SortDir: constant.DefaultValueSortDir,
	}
}

// FromRequest populates QueryParams from the HTTP request.
// Call it with `defaultRequest` set to true when the data set is large:
//
//	q := &dto.QueryParams{}
//	q.FromRequest(req, true)
//
// With `defaultRequest` false only the fields present in the request are set.
func (q *QueryParams) FromRequest(r *http.Request, defaultRequest bool) {
	queryParams := r.URL.Query()

	if page := queryParams.Get(constant.RequestParamPage); page != "" {
		if pageInt, err := strconv.Atoi(page); err == nil && pageInt > 0 {
			q.Page = pageInt
		}
	}

	if limit := queryParams.Get(constant.RequestParamLimit); limit != "" {
		if limitInt, err := strconv.Atoi(limit); err == nil && limitInt > 0 {
			q.Limit = limitInt
		}
	}

	if sortBy := queryParams.Get(constant.RequestParamSortBy); sortBy != "" {
		q.SortBy = sortBy
	}

	if sortDir := strings.ToUpper(queryParams.Get(constant.RequestParamSortDir)); sortDir == SortDirAsc || sortDir == SortDirDesc {
		q.SortDir = sortDir
	}

	if defaultRequest {
		if q.Page == 0 {
			q.Page = constant.DefaultValuePage
		}

		if q.Limit == 0 {
			q.Limit = constant.DefaultValueLimit
		}
	}
}

// RestrictSort drops a sort column that is not in allowed; the column is interpolated into SQL.
// The surviving column is qualified with table.
func (q *QueryParams) RestrictSort(table string, allowed ...string) {
	if q.SortBy == "" || !slices.Contains(allowed, q.SortBy) {
		q.SortBy = table + "." + constant.DefaultValueSortBy
		q.SortDir = constant.DefaultValueSortDir

		return
	}

	q.SortBy = table + "." + q.SortBy
	if q.SortDir == "" {
		q.SortDir = constant.DefaultValueSortDir
	}
}
