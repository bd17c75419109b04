// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yomira-press/pkg/slug"
)

/*
TestFrom covers accent stripping, folding and separator collapsing.
*/
func TestFrom(t *testing.T) {
	cases := []struct{ input, want string }{
		{"Solo Leveling", "solo-leveling"},
		{"  Hello,   World!  ", "hello-world"},
		{"Thám Tử Lừng Danh Conan", "tham-tu-lung-danh-conan"},
		{"Đường Về", "duong-ve"},
		{"Straße der Ærøskøbing", "strasse-der-aeroskobing"},
		{"Chapter #12.5 -- Finale", "chapter-12-5-finale"},
		{"already-a-slug", "already-a-slug"},
		{"進撃の巨人", ""},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, slug.From(tc.input), tc.input)
	}
}

/*
TestFromMax checks that truncation lands on a word boundary.
*/
func TestFromMax(t *testing.T) {
	assert.Equal(t, "the-quick", slug.FromMax("The quick brown fox", 12))
	assert.Equal(t, "the-quick-brown-fox", slug.FromMax("The quick brown fox", 0))
	assert.Equal(t, "abcdef", slug.FromMax("abcdefghij", 6))
}
