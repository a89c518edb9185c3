package main

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		wantPage     int
		wantPageSize int
	}{
		{"defaults", "", 1, 20},
		{"explicit", "?page=3&page_size=50", 3, 50},
		{"zero page falls back", "?page=0", 1, 20},
		{"negative page falls back", "?page=-2", 1, 20},
		{"oversized page_size falls back", "?page_size=500", 1, 20},
		{"garbage falls back", "?page=abc&page_size=xyz", 1, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/v1/orders"+tt.query, nil)
			page, pageSize := parsePagination(r)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPageSize, pageSize)
		})
	}
}

func TestPaginate(t *testing.T) {
	// 95 rows at 20 per page is 5 pages, the last one short
	resp := paginate([]int{81, 82, 83, 84, 85, 86, 87, 88, 89, 90, 91, 92, 93, 94, 95}, 5, 20, 95)

	assert.Equal(t, 5, resp.TotalPages)
	assert.Equal(t, int64(95), resp.Total)
	assert.Len(t, resp.Items, 15)

	assert.Equal(t, 0, paginate(nil, 1, 20, 0).TotalPages)
	assert.Equal(t, 1, paginate(nil, 1, 20, 20).TotalPages)
	assert.Equal(t, 2, paginate(nil, 1, 20, 21).TotalPages)
}

func TestPhoneValidation(t *testing.T) {
	type form struct {
		Phone string `validate:"required,pkphone"`
	}

	valid := []string{"03001234567", "0300 1234567", "0345 123 4567"}
	for _, phone := range valid {
		assert.NoError(t, Validate.Struct(form{Phone: phone}), phone)
	}

	invalid := []string{"123456", "0300123456", "030012345678", "+923001234567", "03oo1234567"}
	for _, phone := range invalid {
		assert.Error(t, Validate.Struct(form{Phone: phone}), phone)
	}
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "03001234567", normalizePhone("0300 123 4567"))
	assert.Equal(t, "03001234567", normalizePhone("03001234567"))
}
