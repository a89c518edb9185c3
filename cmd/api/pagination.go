package main

import (
	"fmt"
	"net/http"
	"strconv"
	"time"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type paginatedResponse struct {
	Items      any   `json:"items"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// parsePagination reads page and page_size from the query string. Out of
// range values fall back to defaults rather than erroring.
func parsePagination(r *http.Request) (page, pageSize int) {
	page = 1
	pageSize = defaultPageSize

	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil && v > 0 && v <= maxPageSize {
		pageSize = v
	}

	return page, pageSize
}

// parseDateRange reads from/to query params as YYYY-MM-DD. Missing values
// default to the last 30 days; the to date is inclusive.
func parseDateRange(r *http.Request) (from, to time.Time, err error) {
	now := time.Now()
	from = now.AddDate(0, 0, -30)
	to = now

	if v := r.URL.Query().Get("from"); v != "" {
		from, err = time.Parse("2006-01-02", v)
		if err != nil {
			return from, to, fmt.Errorf("invalid from date: %s", v)
		}
	}
	if v := r.URL.Query().Get("to"); v != "" {
		to, err = time.Parse("2006-01-02", v)
		if err != nil {
			return from, to, fmt.Errorf("invalid to date: %s", v)
		}
		to = to.AddDate(0, 0, 1)
	}

	return from, to, nil
}

func paginate(items any, page, pageSize int, total int64) paginatedResponse {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return paginatedResponse{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
