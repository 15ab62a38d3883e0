package blueprint

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	apperrors "github.com/matzehuels/levelgen/pkg/errors"
	"github.com/matzehuels/levelgen/pkg/layout"
	"github.com/matzehuels/levelgen/pkg/level"
)

// Format is a blueprint file syntax.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Formats lists the accepted syntaxes.
var Formats = []Format{FormatTOML, FormatYAML, FormatJSON}

// Extensions lists the file extensions [Load] recognises.
var Extensions = []string{".toml", ".yaml", ".yml", ".json"}

// FormatFromPath picks the syntax from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", apperrors.New(apperrors.ErrCodeInvalidFormat, "unrecognised blueprint extension %q", ext)
	}
}

// ParseFormat converts a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTOML, FormatYAML, FormatJSON:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", apperrors.New(apperrors.ErrCodeInvalidFormat, "unknown blueprint format %q", s)
}

// Blueprint is a parsed, validated level recipe.
type Blueprint struct {
	Name        string
	Description string
	// Width and Height are the default level size; zero if unset.
	Width   int
	Height  int
	Palette level.Palette
	Root    layout.Generator

	// Source is the document the blueprint was parsed from.
	Source []byte
	Format Format
}

// Parse decodes and validates a blueprint document.
func Parse(data []byte, format Format) (*Blueprint, error) {
	doc, err := unmarshal(data, format)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidBlueprint, err, "parse %s", format)
	}
	bp, err := decodeDocument(doc)
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			return nil, apperrors.Wrap(de.Code, de, "decode blueprint")
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidBlueprint, err, "decode blueprint")
	}
	if err := layout.Validate(bp.Root); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidGenerator, err, "validate blueprint")
	}
	bp.Source = data
	bp.Format = format
	return bp, nil
}

// Load reads, decodes and validates the blueprint at path. The format
// follows the extension. A blueprint without a name is named after the
// file.
func Load(path string) (*Blueprint, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "blueprint %s", path)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "read %s", path)
	}
	bp, err := Parse(data, format)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.GetCode(err), err, "%s", path)
	}
	if bp.Name == "" {
		bp.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return bp, nil
}

// IsBlueprintFile reports whether path has a blueprint extension.
func IsBlueprintFile(path string) bool {
	_, err := FormatFromPath(path)
	return err == nil
}

// unmarshal decodes any of the formats into generic maps, lists and
// scalars.
func unmarshal(data []byte, format Format) (map[string]any, error) {
	doc := map[string]any{}
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), &doc); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return nil, err
		}
	default:
		return nil, apperrors.New(apperrors.ErrCodeInvalidFormat, "unknown blueprint format %q", format)
	}
	return doc, nil
}
