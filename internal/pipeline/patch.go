package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for marker search.
var (
	ErrMarkersNotFound  = errors.New("markers not found")
	ErrDuplicateMarkers = errors.New("markers occur more than once")
	ErrEmptyMarker      = errors.New("marker cannot be empty")
)

// Region is the byte span [Start, End) of a marked region, markers included.
type Region struct {
	Start int
	End   int
}

// PatchOptions controls marker matching.
type PatchOptions struct {
	// AllowDuplicates patches the first region even when the document holds
	// further marker occurrences.
	AllowDuplicates bool
}

// Validate checks that both markers are set and distinct.
func (m Markers) Validate() error {
	if m.Start == "" || m.End == "" {
		return ErrEmptyMarker
	}
	if m.Start == m.End {
		return fmt.Errorf("start and end markers are identical: %q", m.Start)
	}
	return nil
}

// FindRegion locates the first start marker and the nearest end marker after
// it. The result matches a non-greedy start.*?end scan across line breaks.
func FindRegion(doc string, markers Markers, opts PatchOptions) (Region, error) {
	if err := markers.Validate(); err != nil {
		return Region{}, err
	}

	start := strings.Index(doc, markers.Start)
	if start == -1 {
		return Region{}, fmt.Errorf("%w: %q", ErrMarkersNotFound, markers.Start)
	}

	afterStart := start + len(markers.Start)
	rel := strings.Index(doc[afterStart:], markers.End)
	if rel == -1 {
		return Region{}, fmt.Errorf("%w: no %q after %q", ErrMarkersNotFound, markers.End, markers.Start)
	}
	end := afterStart + rel + len(markers.End)

	if !opts.AllowDuplicates {
		if n := strings.Count(doc, markers.Start); n > 1 {
			return Region{}, fmt.Errorf("%w: %q appears %d times", ErrDuplicateMarkers, markers.Start, n)
		}
		if n := strings.Count(doc, markers.End); n > 1 {
			return Region{}, fmt.Errorf("%w: %q appears %d times", ErrDuplicateMarkers, markers.End, n)
		}
	}

	return Region{Start: start, End: end}, nil
}

// ReplaceRegion returns doc with its marked region replaced by replacement.
// The replacement is inserted literally and should carry the markers itself
// so the next run finds the same region.
func ReplaceRegion(doc, replacement string, markers Markers, opts PatchOptions) (string, error) {
	region, err := FindRegion(doc, markers, opts)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	buf.Grow(len(doc) - (region.End - region.Start) + len(replacement))
	buf.WriteString(doc[:region.Start])
	buf.WriteString(replacement)
	buf.WriteString(doc[region.End:])
	return buf.String(), nil
}
