// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package convert parses query and path values where a malformed value and a
// missing one mean the same thing.
package convert

import "strconv"

// ToInt returns 0 for empty or malformed input. Ids are positive, so 0 always
// means "not found".
func ToInt(s string) int {
	return ToIntD(s, 0)
}

// ToIntD returns def for empty or malformed input.
func ToIntD(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
