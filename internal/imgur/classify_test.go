// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package imgur_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yomira-press/internal/imgur"
)

/*
TestClassify covers the accepted shapes, case handling and host rejection.
*/
func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind imgur.Kind
		id   string
		ext  string
	}{
		{"album", "https://imgur.com/a/AbC123", imgur.KindAlbum, "AbC123", ""},
		{"album without scheme", "imgur.com/a/xyz", imgur.KindAlbum, "xyz", ""},
		{"album with www and slash", "https://www.imgur.com/a/xyz/", imgur.KindAlbum, "xyz", ""},
		{"album surrounded by spaces", "   https://imgur.com/a/xyz \n", imgur.KindAlbum, "xyz", ""},
		{"gallery", "https://imgur.com/gallery/Gal9", imgur.KindGallery, "Gal9", ""},
		{"slugged gallery", "https://imgur.com/gallery/my-chapter-one-Gal9", imgur.KindGallery, "Gal9", ""},
		{"direct jpg", "https://i.imgur.com/img1.jpg", imgur.KindDirect, "img1", "jpg"},
		{"direct upper case", "HTTPS://I.IMGUR.COM/Img1.PNG", imgur.KindDirect, "Img1", "PNG"},
		{"direct webp with query", "https://i.imgur.com/img1.webp?maxwidth=640", imgur.KindDirect, "img1", "webp"},
		{"direct jpeg", "i.imgur.com/img1.jpeg", imgur.KindDirect, "img1", "jpeg"},
		{"wrong host", "https://example.com/a/xyz", imgur.KindInvalid, "", ""},
		{"lookalike host", "https://notimgur.com/a/xyz", imgur.KindInvalid, "", ""},
		{"unsupported extension", "https://i.imgur.com/img1.mp4", imgur.KindInvalid, "", ""},
		{"bare image page", "https://imgur.com/img1", imgur.KindInvalid, "", ""},
		{"empty", "", imgur.KindInvalid, "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ref := imgur.Classify(tc.raw)
			assert.Equal(t, tc.kind, ref.Kind)
			assert.Equal(t, tc.id, ref.ID)
			assert.Equal(t, tc.ext, ref.Ext)
			assert.Equal(t, tc.kind != imgur.KindInvalid, imgur.IsValid(tc.raw))
		})
	}
}

/*
TestReference_ImageURL verifies direct links are canonicalised to https.
*/
func TestReference_ImageURL(t *testing.T) {
	assert.Equal(t, "https://i.imgur.com/img1.jpg", imgur.Classify("http://i.imgur.com/img1.jpg").ImageURL())
	assert.Empty(t, imgur.Classify("https://imgur.com/a/xyz").ImageURL())
}

/*
TestAlbumID only resolves links that need a fetch.
*/
func TestAlbumID(t *testing.T) {
	id, ok := imgur.AlbumID("https://imgur.com/gallery/xyz")
	assert.True(t, ok)
	assert.Equal(t, "xyz", id)

	_, ok = imgur.AlbumID("https://i.imgur.com/img1.jpg")
	assert.False(t, ok)

	_, ok = imgur.AlbumID("not a link")
	assert.False(t, ok)
}
