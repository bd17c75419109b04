// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid issues the primary keys of every table.

Keys are UUIDv7, so they sort by creation time and keep B-tree inserts
append-only.
*/
package uuid

import "github.com/google/uuid"

// New returns a new UUIDv7 string. It panics only when the OS entropy source
// fails.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}
	return id.String()
}

// IsValid reports whether s parses as a UUID in any of the accepted textual
// forms.
func IsValid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
