package server

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
)

// Validation failure kinds for image requests.
var (
	// ErrDimensionTooLarge marks a dimension above the configured maximum (403).
	ErrDimensionTooLarge = errors.New("dimension exceeds maximum")

	// ErrInvalidDimension marks a dimension that is not a positive integer (400).
	ErrInvalidDimension = errors.New("dimension is not a positive integer")
)

// ImageRequest is the canonical descriptor of a validated image request.
type ImageRequest struct {
	Width  int
	Height int

	// Square is the requested square size; HasSquare with Square == 0 means
	// the parameter was supplied without a value (bare crop flag).
	Square    int
	HasSquare bool

	// Text is the custom caption. A "+" in the query arrives here already
	// decoded to a single space. HasText distinguishes absent from empty.
	Text    string
	HasText bool
}

// parseDimension coerces a raw value to a number the way a loosely typed
// query layer would: empty becomes 0, garbage becomes NaN. NaN then fails
// every later check.
func parseDimension(raw string) float64 {
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func isPositiveInteger(v float64) bool {
	return !math.IsNaN(v) && v >= 1 && v == math.Trunc(v)
}

// ValidateImageRequest turns raw path segments and query values into an
// ImageRequest or fails with one of the validation errors.
//
// The too-large check runs first across all supplied dimensions, then the
// positive-integer check. A square parameter supplied with an empty value is
// a bare crop flag: it still participates in the size bound (as 0) but is
// exempt from the positivity check.
func ValidateImageRequest(rawWidth, rawHeight string, query url.Values, maxDimension int) (*ImageRequest, error) {
	width := parseDimension(rawWidth)
	height := parseDimension(rawHeight)

	hasSquare := query.Has("square")
	rawSquare := query.Get("square")
	square := 0.0
	if hasSquare {
		square = parseDimension(rawSquare)
	}

	limit := float64(maxDimension)
	for _, d := range []struct {
		name  string
		value float64
	}{
		{"width", width},
		{"height", height},
		{"square", square},
	} {
		if d.value > limit {
			return nil, fmt.Errorf("%s %v: %w", d.name, d.value, ErrDimensionTooLarge)
		}
	}

	if !isPositiveInteger(width) {
		return nil, fmt.Errorf("width %q: %w", rawWidth, ErrInvalidDimension)
	}
	if !isPositiveInteger(height) {
		return nil, fmt.Errorf("height %q: %w", rawHeight, ErrInvalidDimension)
	}
	if hasSquare && rawSquare != "" && !isPositiveInteger(square) {
		return nil, fmt.Errorf("square %q: %w", rawSquare, ErrInvalidDimension)
	}

	return &ImageRequest{
		Width:     int(width),
		Height:    int(height),
		Square:    int(square),
		HasSquare: hasSquare,
		Text:      query.Get("text"),
		HasText:   query.Has("text"),
	}, nil
}

// validationStatus maps a validation error to its HTTP status code.
func validationStatus(err error) int {
	if errors.Is(err, ErrDimensionTooLarge) {
		return http.StatusForbidden
	}
	return http.StatusBadRequest
}
