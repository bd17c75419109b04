// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package imgur

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/titanous/json5"

	"github.com/taibuivan/yomira-press/internal/platform/constants"
)

// Source names the upstream document a [Strategy] reads.
type Source int

const (
	SourceJSON Source = iota + 1
	SourcePage
)

func (s Source) String() string {
	switch s {
	case SourceJSON:
		return "json"
	case SourcePage:
		return "page"
	default:
		return "unknown"
	}
}

// Strategy is one step of the extraction waterfall.
type Strategy struct {
	Name   string
	Source Source

	// Extract returns image URLs in page order. An empty result with a nil
	// error means the payload had nothing to offer.
	Extract func(payload []byte) ([]string, error)
}

// DefaultStrategies returns the waterfall in priority order.
func DefaultStrategies() []Strategy {
	return []Strategy{
		{Name: "json-endpoint", Source: SourceJSON, Extract: FromAlbumJSON},
		{Name: "embedded-json", Source: SourcePage, Extract: FromEmbeddedJSON},
		{Name: "html-scan", Source: SourcePage, Extract: FromPageLinks},
	}
}

// # JSON endpoint

// albumImagePaths lists where the images array has lived across imgur payload revisions.
var albumImagePaths = [][]string{
	{"images"},
	{"data", "images"},
	{"album_images", "images"},
	{"data", "album_images", "images"},
	{"data", "image", "album_images", "images"},
}

// FromAlbumJSON reads the images array of the album's JSON document.
func FromAlbumJSON(payload []byte) ([]string, error) {
	var document any
	if err := json.Unmarshal(payload, &document); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return urlsFromDocument(document, albumImagePaths...), nil
}

// # Embedded page data

var (
	postDataPattern    = regexp.MustCompile(`window\.postDataJSON\s*=\s*("(?:[^"\\]|\\.)*")`)
	albumImagesPattern = regexp.MustCompile(`(\\?)"album_images\\?"\s*:\s*\{`)
	widgetImagePattern = regexp.MustCompile(`['"]?\bimage['"]?\s*:\s*\{`)
)

// FromEmbeddedJSON looks for album data the page ships inside its scripts:
// the postDataJSON global, an "album_images" object, or the legacy widget
// config literal. Each script is searched on its own, then the whole page.
func FromEmbeddedJSON(page []byte) ([]string, error) {
	document, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	candidates := make([]string, 0, 8)
	document.Find("script").Each(func(_ int, script *goquery.Selection) {
		if text := script.Text(); strings.TrimSpace(text) != "" {
			candidates = append(candidates, text)
		}
	})

	// Data attributes carry the blob HTML-escaped outside any script.
	candidates = append(candidates, string(page))

	var firstErr error
	for _, text := range candidates {
		urls, err := embeddedURLs(text)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if len(urls) > 0 {
			return urls, nil
		}
	}

	return nil, firstErr
}

func embeddedURLs(text string) ([]string, error) {
	if strings.Contains(text, "&quot;") {
		text = html.UnescapeString(text)
	}

	var firstErr error
	keep := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}

	if match := postDataPattern.FindStringSubmatch(text); match != nil {
		urls, err := fromPostData(match[1])
		if err != nil {
			keep(err)
		} else if len(urls) > 0 {
			return urls, nil
		}
	}

	if loc := albumImagesPattern.FindStringSubmatchIndex(text); loc != nil {
		escaped := loc[3] > loc[2]
		urls, err := fromAlbumImages(text, loc[1]-1, escaped)
		if err != nil {
			keep(err)
		} else if len(urls) > 0 {
			return urls, nil
		}
	}

	if loc := widgetImagePattern.FindStringIndex(text); loc != nil {
		urls, err := fromWidgetConfig(text, loc[1]-1)
		if err != nil {
			keep(err)
		} else if len(urls) > 0 {
			return urls, nil
		}
	}

	return nil, firstErr
}

// fromPostData decodes the string literal assigned to window.postDataJSON.
func fromPostData(quoted string) ([]string, error) {
	decoded, err := unquoteJS(quoted)
	if err != nil {
		return nil, err
	}

	var document any
	if err := json.Unmarshal([]byte(decoded), &document); err != nil {
		return nil, fmt.Errorf("%w: postDataJSON: %v", ErrParse, err)
	}

	if media, ok := lookupArray(document, []string{"media"}); ok {
		if urls := urlsFromEntries(media); len(urls) > 0 {
			return urls, nil
		}
	}

	return urlsFromDocument(document, albumImagePaths...), nil
}

// fromAlbumImages decodes the album_images object that starts at text[start]
// and reads its images array. When the object sits inside a string literal
// its quotes are escaped.
func fromAlbumImages(text string, start int, escaped bool) ([]string, error) {
	blob, ok := balanced(text, start, '{', '}', escaped)
	if !ok {
		return nil, fmt.Errorf("%w: unterminated album_images object", ErrParse)
	}

	if escaped {
		unescaped, err := unquoteJS(`"` + blob + `"`)
		if err != nil {
			return nil, err
		}
		blob = unescaped
	}

	var album map[string]any
	if err := json.Unmarshal([]byte(blob), &album); err != nil {
		if err5 := json5.Unmarshal([]byte(blob), &album); err5 != nil {
			return nil, fmt.Errorf("%w: album_images: %v", ErrParse, err)
		}
	}

	return urlsFromDocument(album, []string{"images"}), nil
}

// fromWidgetConfig decodes the `image: {...}` JavaScript literal older album
// pages pass to their gallery widget. Keys are unquoted there, so json5.
func fromWidgetConfig(text string, start int) ([]string, error) {
	blob, ok := balanced(text, start, '{', '}', false)
	if !ok {
		return nil, fmt.Errorf("%w: unterminated image config", ErrParse)
	}

	var config map[string]any
	if err := json5.Unmarshal([]byte(blob), &config); err != nil {
		return nil, fmt.Errorf("%w: image config: %v", ErrParse, err)
	}

	return urlsFromDocument(config, []string{"album_images", "images"}, []string{"images"}), nil
}

// # Raw page scan

var directLinkPattern = regexp.MustCompile(`(?i)https?://i\.imgur\.com/[a-z0-9]+\.(?:jpe?g|png|gif|webp)\b`)

// FromPageLinks collects every direct image URL in the raw page, keeping the
// first occurrence of each exact URL.
func FromPageLinks(page []byte) ([]string, error) {
	matches := directLinkPattern.FindAll(page, -1)

	seen := make(map[string]struct{}, len(matches))
	urls := make([]string, 0, len(matches))
	for _, match := range matches {
		link := string(match)
		if _, duplicate := seen[link]; duplicate {
			continue
		}
		seen[link] = struct{}{}
		urls = append(urls, link)
	}

	return urls, nil
}

// # Helpers

var imageIDPattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// urlsFromDocument returns the URLs of the first non-empty images array found
// at one of paths. A top-level array is taken as the images array itself.
func urlsFromDocument(document any, paths ...[]string) []string {
	if entries, ok := document.([]any); ok {
		return urlsFromEntries(entries)
	}

	for _, path := range paths {
		entries, ok := lookupArray(document, path)
		if !ok {
			continue
		}
		if urls := urlsFromEntries(entries); len(urls) > 0 {
			return urls
		}
	}

	return nil
}

func lookupArray(document any, path []string) ([]any, bool) {
	current := document
	for _, key := range path {
		object, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = object[key]; !ok {
			return nil, false
		}
	}

	entries, ok := current.([]any)
	return entries, ok
}

func urlsFromEntries(entries []any) []string {
	urls := make([]string, 0, len(entries))
	for _, entry := range entries {
		fields, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if link, ok := entryURL(fields); ok {
			urls = append(urls, link)
		}
	}
	return urls
}

// entryURL prefers hash+ext, which is how imgur keys album images, and falls
// back to an absolute url or link field.
func entryURL(fields map[string]any) (string, bool) {
	if hash := stringField(fields, "hash"); imageIDPattern.MatchString(hash) {
		return constants.ImgurImageBaseURL + hash + normalizeExt(stringField(fields, "ext")), true
	}

	for _, key := range []string{"url", "link"} {
		if link := stringField(fields, key); isHTTPURL(link) {
			return link, true
		}
	}

	return "", false
}

func stringField(fields map[string]any, key string) string {
	value, _ := fields[key].(string)
	return strings.TrimSpace(value)
}

// normalizeExt returns ext with exactly one leading dot, dropping anything
// after the extension itself ("jpg?1" becomes ".jpg"). Missing extensions
// default to .jpg, which imgur serves for any still image.
func normalizeExt(ext string) string {
	ext = strings.TrimPrefix(ext, ".")

	end := 0
	for end < len(ext) && isAlnum(ext[end]) {
		end++
	}

	if end == 0 {
		return ".jpg"
	}
	return "." + ext[:end]
}

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isHTTPURL(value string) bool {
	lower := strings.ToLower(value)
	return strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "http://")
}

// unquoteJS decodes a double-quoted string literal. JSON escapes cover what
// imgur emits; strconv handles the \x sequences JSON does not allow.
func unquoteJS(quoted string) (string, error) {
	var decoded string
	if err := json.Unmarshal([]byte(quoted), &decoded); err == nil {
		return decoded, nil
	}

	decoded, err := strconv.Unquote(quoted)
	if err != nil {
		return "", fmt.Errorf("%w: string literal: %v", ErrParse, err)
	}
	return decoded, nil
}

// balanced returns the bracketed span of text starting at start, which must
// hold the opening byte. Brackets inside '...' or "..." literals are ignored.
// With escaped set the span is itself the body of a string literal, so \"
// delimits strings and \\ introduces an escape inside them.
func balanced(text string, start int, open, close byte, escaped bool) (string, bool) {
	if start < 0 || start >= len(text) || text[start] != open {
		return "", false
	}

	depth := 0
	var quote byte
	for i := start; i < len(text); i++ {
		c := text[i]

		if escaped {
			if c == '\\' && i+1 < len(text) {
				next := text[i+1]
				switch {
				case next == '"':
					inString := quote != 0
					quote = 0
					if !inString {
						quote = '"'
					}
					i++
					continue
				case next == '\\' && quote != 0 && i+2 < len(text) && text[i+2] == '\\':
					// An escaped quote or backslash inside an inner string.
					i += 3
					continue
				case next == '\\' && quote != 0:
					i += 2
					continue
				default:
					i++
					continue
				}
			}
			if quote != 0 {
				continue
			}
		} else if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}

		switch c {
		case '"', '\'':
			if !escaped {
				quote = c
			}
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}

	return "", false
}
