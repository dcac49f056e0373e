package ami

import "errors"

var (
	// ErrNetwork is returned when the catalog cannot be fetched or the
	// upstream answers with a non-success status.
	ErrNetwork = errors.New("catalog fetch failed")
	// ErrMalformedPayload is returned when the body is too short for the tail patch.
	ErrMalformedPayload = errors.New("malformed catalog payload")
	// ErrDecode is returned when the catalog does not have the expected shape.
	ErrDecode = errors.New("catalog decode failed")
	// ErrNotFound is returned when no record matches the query.
	ErrNotFound = errors.New("no image matches the query")
	// ErrExtraction is returned when an image link carries no identifier.
	ErrExtraction = errors.New("image id extraction failed")
)
