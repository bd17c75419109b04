// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package imgur

import (
	"regexp"
	"strings"

	"github.com/taibuivan/yomira-press/internal/platform/constants"
)

// Kind is the shape of a classified imgur link.
type Kind string

const (
	KindInvalid Kind = "invalid"
	KindAlbum   Kind = "album"
	KindGallery Kind = "gallery"
	KindDirect  Kind = "direct"
)

// Reference is the classified form of a user-supplied link.
type Reference struct {
	// Raw is the trimmed input.
	Raw  string `json:"raw"`
	Kind Kind   `json:"kind"`
	// ID is the album, gallery or image identifier. Empty for KindInvalid.
	ID string `json:"id,omitempty"`
	// Ext is the file extension of a direct image link, as written.
	Ext string `json:"ext,omitempty"`
}

// Valid reports whether the reference can be imported.
func (r Reference) Valid() bool { return r.Kind != KindInvalid }

// IsAlbum reports whether the reference needs an upstream fetch.
func (r Reference) IsAlbum() bool { return r.Kind == KindAlbum || r.Kind == KindGallery }

// ImageURL is the canonical https URL of a direct image reference.
func (r Reference) ImageURL() string {
	if r.Kind != KindDirect {
		return ""
	}
	return constants.ImgurImageBaseURL + r.ID + "." + r.Ext
}

// Slugged gallery paths ("/gallery/some-title-AbC12") carry the id after the
// last hyphen; the optional group skips the title.
var (
	albumPattern   = regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.|m\.)?imgur\.com/a/(?:[\w-]*-)?([a-z0-9]+)/?(?:[?#].*)?$`)
	galleryPattern = regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.|m\.)?imgur\.com/gallery/(?:[\w-]*-)?([a-z0-9]+)/?(?:[?#].*)?$`)
	directPattern  = regexp.MustCompile(`(?i)^(?:https?://)?i\.imgur\.com/([a-z0-9]+)\.(jpe?g|png|gif|webp)(?:[?#].*)?$`)
)

// Classify trims raw and reports which imgur shape it is.
func Classify(raw string) Reference {
	trimmed := strings.TrimSpace(raw)
	ref := Reference{Raw: trimmed, Kind: KindInvalid}

	if match := directPattern.FindStringSubmatch(trimmed); match != nil {
		ref.Kind, ref.ID, ref.Ext = KindDirect, match[1], match[2]
		return ref
	}

	if match := albumPattern.FindStringSubmatch(trimmed); match != nil {
		ref.Kind, ref.ID = KindAlbum, match[1]
		return ref
	}

	if match := galleryPattern.FindStringSubmatch(trimmed); match != nil {
		ref.Kind, ref.ID = KindGallery, match[1]
		return ref
	}

	return ref
}

// IsValid is the pre-submission check used by forms and the CLI.
func IsValid(raw string) bool {
	return Classify(raw).Valid()
}

// AlbumID returns the identifier of an album or gallery link.
func AlbumID(raw string) (string, bool) {
	ref := Classify(raw)
	if !ref.IsAlbum() {
		return "", false
	}
	return ref.ID, true
}
