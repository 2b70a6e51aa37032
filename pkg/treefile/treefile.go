package treefile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// =============================================================================
// Document Serialization API
// =============================================================================

// Marshal converts a document to pretty-printed JSON bytes.
func Marshal(d Doc) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeDocTo(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes JSON bytes into a document and validates that a root
// is present.
func Unmarshal(data []byte) (Doc, error) {
	return readDocFrom(bytes.NewReader(data))
}

// MarshalYAML converts a document to YAML bytes.
func MarshalYAML(d Doc) ([]byte, error) {
	stampVersion(&d)
	data, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return data, nil
}

// UnmarshalYAML decodes YAML bytes into a document and validates that a
// root is present.
func UnmarshalYAML(data []byte) (Doc, error) {
	var d Doc
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Doc{}, fmt.Errorf("decode yaml: %w", err)
	}
	return checkDoc(d)
}

// Write writes a document as JSON to an io.Writer.
// Use Marshal for in-memory serialization or WriteFile for files.
func Write(d Doc, w io.Writer) error {
	return writeDocTo(d, w)
}

// Read decodes a JSON document from an io.Reader.
// Use ReadFile for files or pass bytes.NewReader for in-memory data.
func Read(r io.Reader) (Doc, error) {
	return readDocFrom(r)
}

// WriteFile writes a document to a JSON file.
// The file is created with 0644 permissions.
func WriteFile(d Doc, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeDocTo(d, f)
}

// ReadFile reads a document from a file, picking JSON or YAML via
// [DetectFormat]. DSL files are parsed by pkg/dsl, not here.
func ReadFile(path string) (Doc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Doc{}, fmt.Errorf("read %s: %w", path, err)
	}
	switch format := DetectFormat(path, data); format {
	case FormatYAML:
		return UnmarshalYAML(data)
	case FormatDSL:
		return Doc{}, fmt.Errorf("%s: dsl documents are parsed by the dsl package", path)
	default:
		return Unmarshal(data)
	}
}

// =============================================================================
// Format Detection
// =============================================================================

// DetectFormat returns the input format for a path and its content.
// The file extension wins; without a recognized extension the content is
// sniffed: JSON documents start with a brace, DSL sources with a keyword
// or comment, and anything else is treated as YAML.
func DetectFormat(path string, data []byte) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".tree", ".dsl":
		return FormatDSL
	}
	return sniffFormat(data)
}

func sniffFormat(data []byte) string {
	s := strings.TrimSpace(string(data))
	switch {
	case strings.HasPrefix(s, "{") || strings.HasPrefix(s, "["):
		return FormatJSON
	case strings.HasPrefix(s, "//") || strings.HasPrefix(s, "/*"),
		strings.HasPrefix(s, "node"),
		strings.HasPrefix(s, "gap"),
		strings.HasPrefix(s, "size"):
		return FormatDSL
	default:
		return FormatYAML
	}
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeDocTo(d Doc, w io.Writer) error {
	stampVersion(&d)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readDocFrom(r io.Reader) (Doc, error) {
	var d Doc
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Doc{}, fmt.Errorf("decode: %w", err)
	}
	return checkDoc(d)
}

func stampVersion(d *Doc) {
	if d.Version == 0 {
		d.Version = DocVersion
	}
}

func checkDoc(d Doc) (Doc, error) {
	if d.Version > DocVersion {
		return Doc{}, fmt.Errorf("unsupported document version %d", d.Version)
	}
	if d.Root == nil {
		return Doc{}, ErrNoRoot
	}
	return d, nil
}
