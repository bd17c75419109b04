// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-press/internal/platform/apperr"
	"github.com/taibuivan/yomira-press/internal/platform/validate"
)

// failedFields returns the fields reported by err, or nil when err is nil.
func failedFields(t *testing.T, err error) []string {
	t.Helper()
	if err == nil {
		return nil
	}
	ae := apperr.As(err)
	require.NotNil(t, ae)
	require.Equal(t, "VALIDATION_ERROR", ae.Code)

	fields := make([]string, len(ae.Details))
	for i, detail := range ae.Details {
		fields[i] = detail.Field
	}
	return fields
}

/*
TestValidator_Rules runs each rule against one passing and one failing value.
*/
func TestValidator_Rules(t *testing.T) {
	tests := []struct {
		name  string
		apply func(v *validate.Validator, value string)
		good  string
		bad   string
	}{
		{"required", func(v *validate.Validator, s string) { v.Required("f", s) }, "Yomira", "   "},
		{"max_len_runes", func(v *validate.Validator, s string) { v.MaxLen("f", s, 3) }, "ánh", "abcd"},
		{"min_len", func(v *validate.Validator, s string) { v.MinLen("f", s, 3) }, "abc", "ab"},
		{"email", func(v *validate.Validator, s string) { v.Email("f", s) }, "reader@yomira.app", "Reader <reader@yomira.app>"},
		{"email_no_domain", func(v *validate.Validator, s string) { v.Email("f", s) }, "a@b.c", "reader@"},
		{"url", func(v *validate.Validator, s string) { v.URL("f", s) }, "  https://i.imgur.com/abc.jpg ", "ftp://example.com/file"},
		{"url_no_host", func(v *validate.Validator, s string) { v.URL("f", s) }, "http://example.com", "https://"},
		{"slug", func(v *validate.Validator, s string) { v.Slug("f", s) }, "solo-leveling-2", "Solo--Leveling"},
		{"uuid", func(v *validate.Validator, s string) { v.UUID("f", s) }, "0190f2a4-6c1e-7b3a-9a55-3f0d2f6b9e10", "solo-leveling"},
		{"one_of", func(v *validate.Validator, s string) { v.OneOf("f", s, "ongoing", "completed") }, "ongoing", "dropped"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			good := &validate.Validator{}
			tt.apply(good, tt.good)
			assert.NoError(t, good.Err())

			bad := &validate.Validator{}
			tt.apply(bad, tt.bad)
			assert.Equal(t, []string{"f"}, failedFields(t, bad.Err()))
		})
	}
}

/*
TestValidator_Range is inclusive on both ends.
*/
func TestValidator_Range(t *testing.T) {
	for score, ok := range map[int]bool{0: false, 1: true, 10: true, 11: false} {
		v := &validate.Validator{}
		v.Range("score", score, 1, 10)
		assert.Equal(t, ok, v.Err() == nil, score)
	}
}

/*
TestValidator_Accumulates keeps every failure in rule order.
*/
func TestValidator_Accumulates(t *testing.T) {
	v := &validate.Validator{}
	err := v.
		Required("username", "").
		MinLen("username", "", 3).
		Email("email", "not-an-email").
		Custom("password", true, "too weak").
		Custom("display_name", false, "never reported").
		Err()

	assert.Equal(t, []string{"username", "username", "email", "password"}, failedFields(t, err))
}

/*
TestRequiredError builds a single-field error outside a chain.
*/
func TestRequiredError(t *testing.T) {
	err := validate.RequiredError("url", "is required")
	assert.Equal(t, []string{"url"}, failedFields(t, err))
}
