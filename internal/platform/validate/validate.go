// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package validate collects field errors and reports them together.

Services own validation; handlers only check that a body decoded. Rules chain
and never stop early, so a client sees every failing field in one response:

	v := &validate.Validator{}
	v.Required("title", title).MaxLen("title", title, 500).URL("cover_url", cover)
	if err := v.Err(); err != nil {
		return err
	}
*/
package validate

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/yomira-press/internal/platform/apperr"
	"github.com/taibuivan/yomira-press/pkg/uuid"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ErrInvalidJSON is returned for bodies that do not decode.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

// Validator is single-use and not safe for concurrent use.
type Validator struct {
	errs []apperr.FieldError
}

func (v *Validator) check(field string, ok bool, message string) *Validator {
	if !ok {
		v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
	}
	return v
}

// Required rejects blank values, whitespace included.
func (v *Validator) Required(field, value string) *Validator {
	return v.check(field, strings.TrimSpace(value) != "", "This field is required")
}

// MaxLen and MinLen count runes, not bytes.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	return v.check(field, utf8.RuneCountInString(value) <= max, fmt.Sprintf("Maximum %d characters", max))
}

func (v *Validator) MinLen(field, value string, min int) *Validator {
	return v.check(field, utf8.RuneCountInString(value) >= min, fmt.Sprintf("Minimum %d characters", min))
}

// Range is inclusive on both ends.
func (v *Validator) Range(field string, value, min, max int) *Validator {
	return v.check(field, value >= min && value <= max, fmt.Sprintf("Must be between %d and %d", min, max))
}

// Email accepts a bare RFC 5322 address. Display-name forms are rejected.
func (v *Validator) Email(field, value string) *Validator {
	address, err := mail.ParseAddress(value)
	return v.check(field, err == nil && address.Address == value, "Must be a valid email address")
}

// URL requires an absolute http or https URL with a host.
func (v *Validator) URL(field, value string) *Validator {
	parsed, err := url.Parse(strings.TrimSpace(value))
	ok := err == nil && (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
	return v.check(field, ok, "Must be a valid http(s) URL")
}

// Slug requires lowercase ASCII words joined by single hyphens.
func (v *Validator) Slug(field, value string) *Validator {
	return v.check(field, slugPattern.MatchString(value), "Must be a valid URL slug (lowercase letters, digits, hyphens only)")
}

func (v *Validator) UUID(field, value string) *Validator {
	return v.check(field, uuid.IsValid(value) && len(value) == 36, "Must be a valid UUID")
}

func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	return v.check(field, slices.Contains(allowed, value), "Must be one of: "+strings.Join(allowed, ", "))
}

// Custom records message when failed is true.
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	return v.check(field, !failed, message)
}

// Err returns a VALIDATION_ERROR listing every failure, or nil.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// RequiredError builds a one-field validation error outside a chain.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{Field: field, Message: message})
}
