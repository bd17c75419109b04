// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slug turns comic titles into ASCII URL segments.

	From("Thám Tử Lừng Danh Conan") == "tham-tu-lung-danh-conan"
*/
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Letters that carry no combining mark under NFD and so survive accent removal.
var folds = map[rune]string{
	'đ': "d", 'Đ': "d",
	'ß': "ss",
	'ø': "o", 'Ø': "o",
	'æ': "ae", 'Æ': "ae",
	'œ': "oe", 'Œ': "oe",
	'ł': "l", 'Ł': "l",
	'þ': "th", 'Þ': "th",
}

// From returns the slug of s. Letters outside ASCII that cannot be folded are
// dropped, so a title written entirely in another script yields "".
func From(s string) string {
	stripped, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		stripped = s
	}

	var builder strings.Builder
	pendingHyphen := false
	emit := func(part string) {
		if pendingHyphen && builder.Len() > 0 {
			builder.WriteByte('-')
		}
		pendingHyphen = false
		builder.WriteString(part)
	}

	for _, r := range stripped {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			emit(string(unicode.ToLower(r)))
		case folds[r] != "":
			emit(folds[r])
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			// Unfoldable letter: dropped without splitting the word.
		default:
			pendingHyphen = true
		}
	}

	return builder.String()
}

// FromMax is [From] cut to at most max bytes. The cut falls on a hyphen when
// one exists, so words are never split.
func FromMax(s string, max int) string {
	result := From(s)
	if max <= 0 || len(result) <= max {
		return result
	}

	result = result[:max]
	if cut := strings.LastIndexByte(result, '-'); cut > 0 {
		result = result[:cut]
	}
	return strings.TrimRight(result, "-")
}
