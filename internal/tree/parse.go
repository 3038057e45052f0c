package tree

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies a serialized tree encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Parse decodes a tree payload.
func Parse(data []byte, format Format) (Serialized, error) {
	var s Serialized
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &s); err != nil {
			return Serialized{}, fmt.Errorf("parse json tree: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return Serialized{}, fmt.Errorf("parse yaml tree: %w", err)
		}
	default:
		return Serialized{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return s, nil
}

// Marshal encodes a tree payload.
func Marshal(s Serialized, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(s, "", "  ")
	case FormatYAML:
		return yaml.Marshal(s)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
