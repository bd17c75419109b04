// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package imgur turns an Imgur album, gallery or direct image link into an
ordered list of page images.

# Pipeline

  - Classify: recognises the three accepted URL shapes; anything else is rejected
    before the network is touched.
  - Fetch: retrieves the album's JSON document and, when needed, its HTML page.
  - Extract: an ordered chain of [Strategy] values. The first one that yields
    at least one image wins; later strategies never run.
  - Sequence: numbers images 1..N in discovery order.

The package never writes anything. Persisting the result is the caller's job
(see the chapter service), which keeps extraction fully separate from the
destructive page replacement.
*/
package imgur

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/taibuivan/yomira-press/internal/platform/apperr"
)

// # Errors

var (
	// ErrInvalidURL is returned when the input is not an imgur album, gallery or direct image link.
	ErrInvalidURL = apperr.ValidationError("Invalid imgur URL format")

	// ErrAlbumUnavailable is returned when the album page itself cannot be retrieved.
	ErrAlbumUnavailable = apperr.BadGateway("Could not fetch imgur album")

	// ErrNoImages is returned when every extraction strategy came back empty.
	ErrNoImages = apperr.Unprocessable("Could not extract images from imgur album")

	// ErrParse marks a payload a strategy could not decode. It never leaves the
	// package; the waterfall treats it as "no data from this strategy".
	ErrParse = errors.New("imgur: malformed album payload")

	errEmptyBody = errors.New("empty response body")
)

// FetchError describes a failed upstream request.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("imgur: GET %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("imgur: GET %s: unexpected status %d %s", e.URL, e.Status, http.StatusText(e.Status))
}

func (e *FetchError) Unwrap() error { return e.Err }

// # Output Contract

// ExtractedImage is one page of an imported album.
type ExtractedImage struct {
	URL        string `json:"url"`
	PageNumber int    `json:"page_number"`
}

// Result is the wire shape returned by the parse endpoint and the CLI.
//
// Exactly one of Images (with Success true) or Error (with Success false) is set.
type Result struct {
	Success bool             `json:"success"`
	Images  []ExtractedImage `json:"images,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// genericFailure is used for errors that carry no client-safe message.
const genericFailure = "Failed to process imgur album"

// NewResult converts the outcome of [Importer.Extract] into a [Result].
func NewResult(images []ExtractedImage, err error) Result {
	if err != nil {
		if ae := apperr.As(err); ae != nil {
			return Result{Success: false, Error: ae.Message}
		}
		return Result{Success: false, Error: genericFailure}
	}

	if len(images) == 0 {
		return Result{Success: false, Error: ErrNoImages.Message}
	}

	return Result{Success: true, Images: images}
}

// Sequence assigns page numbers 1..N to urls in the order given.
func Sequence(urls []string) []ExtractedImage {
	images := make([]ExtractedImage, len(urls))
	for i, url := range urls {
		images[i] = ExtractedImage{URL: url, PageNumber: i + 1}
	}
	return images
}
