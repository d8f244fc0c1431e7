package pubsection

import (
	"errors"

	"github.com/alnah/go-pubsection/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	// Input errors: the data file is missing, unreadable, or malformed.
	ErrReadData  = errors.New("failed to read data file")
	ErrParseData = errors.New("failed to parse data file")

	// Schema errors: a required field is absent or has the wrong shape.
	ErrMissingField = errors.New("missing required field")
	ErrInvalidField = errors.New("invalid field")

	// Marker errors: the target document lacks a usable sentinel pair.
	ErrMarkersNotFound  = pipeline.ErrMarkersNotFound
	ErrDuplicateMarkers = pipeline.ErrDuplicateMarkers
	ErrInvalidMarkers   = errors.New("invalid markers")

	// Document I/O errors.
	ErrReadDocument  = errors.New("failed to read target document")
	ErrWriteDocument = errors.New("failed to write target document")

	// ErrOutOfDate is returned in check mode when the document would change.
	ErrOutOfDate = errors.New("document is out of date")

	ErrEmptyPath         = errors.New("path cannot be empty")
	ErrNilPublicationSet = errors.New("publication set cannot be nil")
)
