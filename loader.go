package pubsection

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/alnah/go-pubsection/internal/fileutil"
	"github.com/alnah/go-pubsection/internal/yamlutil"
)

// Format identifies the encoding of a data file.
type Format string

// Supported data file formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from the file extension.
// Anything other than .yaml or .yml is read as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadPublicationSet reads and validates the data file at path.
func LoadPublicationSet(path string) (*PublicationSet, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: data file", ErrEmptyPath)
	}

	data, err := fileutil.ReadBounded(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadData, err)
	}

	set, err := DecodePublicationSet(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// DecodePublicationSet parses data in the given format and validates it
// against the publication schema. YAML is converted to JSON first so both
// formats go through the same checks.
func DecodePublicationSet(data []byte, format Format) (*PublicationSet, error) {
	if format == FormatYAML {
		converted, err := yamlutil.ToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParseData, err)
		}
		data = converted
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseData, err)
	}
	if err := dec.Decode(new(any)); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after top-level value", ErrParseData)
	}

	return decodeSet(root)
}
