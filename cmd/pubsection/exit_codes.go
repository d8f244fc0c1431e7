package main

import (
	"errors"
	"os"

	pubsection "github.com/alnah/go-pubsection"
	"github.com/alnah/go-pubsection/internal/config"
)

// Exit codes for the pubsection CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess   = 0 // Section is up to date or was updated
	ExitGeneral   = 1 // General/unexpected error
	ExitUsage     = 2 // Invalid flags, config, or validation
	ExitIO        = 3 // Target document unreadable or unwritable
	ExitInput     = 4 // Data file missing, malformed, or off-schema
	ExitMarkers   = 5 // Target document has no usable marked region
	ExitOutOfDate = 6 // check: document differs from the data file
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
// Input errors are checked before I/O errors because a missing data file
// also wraps os.ErrNotExist.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Stale document (exit 6)
	if errors.Is(err, pubsection.ErrOutOfDate) {
		return ExitOutOfDate
	}

	// Marker errors (exit 5)
	if errors.Is(err, pubsection.ErrMarkersNotFound) ||
		errors.Is(err, pubsection.ErrDuplicateMarkers) ||
		errors.Is(err, pubsection.ErrInvalidMarkers) {
		return ExitMarkers
	}

	// Input and schema errors (exit 4)
	if errors.Is(err, pubsection.ErrReadData) ||
		errors.Is(err, pubsection.ErrParseData) ||
		errors.Is(err, pubsection.ErrMissingField) ||
		errors.Is(err, pubsection.ErrInvalidField) {
		return ExitInput
	}

	// I/O errors (exit 3)
	if errors.Is(err, pubsection.ErrReadDocument) ||
		errors.Is(err, pubsection.ErrWriteDocument) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, pubsection.ErrEmptyPath) ||
		errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnknownCommand) {
		return ExitUsage
	}

	return ExitGeneral
}
