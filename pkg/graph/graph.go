package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	rerrors "github.com/matzehuels/relayout/pkg/errors"
)

// =============================================================================
// Document I/O
// =============================================================================

// FormatOf returns the document format implied by a file extension.
func FormatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", rerrors.New(rerrors.ErrCodeInvalidFormat, "unsupported document extension %q (want .toml or .json)", filepath.Ext(path))
}

// ReadDocumentFile reads a TOML or JSON document, chosen by extension.
// A document without a name is named after the file.
func ReadDocumentFile(path string) (*Document, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, rerrors.Wrap(rerrors.ErrCodeFileNotFound, err, "read %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := ParseDocument(data, format)
	if err != nil {
		return nil, err
	}
	if doc.Name == "" {
		doc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return doc, nil
}

// ReadDocument decodes a document from r.
func ReadDocument(r io.Reader, format string) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return ParseDocument(data, format)
}

// ParseDocument decodes a document. Unknown keys are rejected.
func ParseDocument(data []byte, format string) (*Document, error) {
	var doc Document
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &doc)
		if err != nil {
			return nil, rerrors.Wrap(rerrors.ErrCodeInvalidDocument, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, rerrors.New(rerrors.ErrCodeInvalidDocument, "unknown keys: %s", strings.Join(keys, ", "))
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, rerrors.Wrap(rerrors.ErrCodeInvalidDocument, err, "decode json")
		}
	default:
		return nil, rerrors.New(rerrors.ErrCodeInvalidFormat, "unsupported document format %q", format)
	}
	return &doc, nil
}

// WriteDocument encodes doc in the given format.
func WriteDocument(w io.Writer, doc *Document, format string) error {
	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(doc); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
	return rerrors.New(rerrors.ErrCodeInvalidFormat, "unsupported document format %q", format)
}

// CanonicalJSON returns the compact JSON form of doc used for hashing.
// Map keys are sorted, so equal documents give equal bytes.
func CanonicalJSON(doc *Document) ([]byte, error) {
	return json.Marshal(doc)
}

// =============================================================================
// Result I/O
// =============================================================================

// MarshalResult encodes a result as indented JSON.
func MarshalResult(res Result) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteResult(&buf, res); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteResult writes res as indented JSON.
func WriteResult(w io.Writer, res Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteResultFile writes res to path as JSON.
func WriteResultFile(res Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteResult(f, res)
}

// ReadResult decodes a JSON result.
func ReadResult(r io.Reader) (Result, error) {
	var res Result
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return Result{}, fmt.Errorf("decode: %w", err)
	}
	return res, nil
}
