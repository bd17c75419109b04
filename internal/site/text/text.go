// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package text serves editable site copy (footer, about page, banners) as
// key/value pairs stored in system.setting.
package text

import (
	"regexp"
	"time"
)

// Text is one editable piece of copy.
type Text struct {
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	Description string    `json:"description"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// keyPattern allows dotted namespaces such as "footer.copyright".
var keyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]{0,99}$`)

// MaxValueLength caps a single text value in characters.
const MaxValueLength = 50000

const (
	FieldKey         = "key"
	FieldValue       = "value"
	FieldDescription = "description"
)
