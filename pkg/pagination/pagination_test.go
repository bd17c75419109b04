// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yomira-press/pkg/pagination"
)

/*
TestFromRequest covers defaults, malformed values and the limit clamp.
*/
func TestFromRequest(t *testing.T) {
	cases := []struct {
		query string
		want  pagination.Params
	}{
		{"", pagination.Params{Page: 1, Limit: 20}},
		{"?page=3&limit=50", pagination.Params{Page: 3, Limit: 50}},
		{"?page=abc&limit=-4", pagination.Params{Page: 1, Limit: 20}},
		{"?page=0&limit=0", pagination.Params{Page: 1, Limit: 20}},
		{"?limit=500", pagination.Params{Page: 1, Limit: pagination.MaxLimit}},
	}

	for _, tc := range cases {
		request := httptest.NewRequest("GET", "/comics"+tc.query, nil)
		assert.Equal(t, tc.want, pagination.FromRequest(request), tc.query)
	}
}

/*
TestParams_Offset checks the SQL offset for the first and later pages.
*/
func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, pagination.Params{Page: 3, Limit: 20}.Offset())
}

/*
TestNewMeta checks the rounding of TotalPages.
*/
func TestNewMeta(t *testing.T) {
	assert.Equal(t, 3, pagination.NewMeta(1, 20, 41).TotalPages)
	assert.Equal(t, 2, pagination.NewMeta(1, 20, 40).TotalPages)
	assert.Equal(t, 0, pagination.NewMeta(1, 20, 0).TotalPages)
	assert.Equal(t, 0, pagination.NewMeta(1, 0, 10).TotalPages)
}
