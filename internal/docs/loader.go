package docs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// document is the serialized form of the content tree.
type document struct {
	Versions []Version `yaml:"versions" json:"versions"`
}

// LoadYAML parses a YAML content tree and validates it.
func LoadYAML(data []byte) (*Store, error) {
	var doc document

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse content YAML: %w", err)
	}

	return NewStore(doc.Versions)
}

// LoadJSON parses a JSON content tree previously written by WriteJSON.
func LoadJSON(data []byte) (*Store, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal content: %w", err)
	}

	return NewStore(doc.Versions)
}

// MarshalJSON serializes the content tree.
func (s *Store) MarshalJSON() ([]byte, error) {
	return json.Marshal(document{Versions: s.versions})
}

// WriteJSON serializes the content tree to a JSON file.
func (s *Store) WriteJSON(outputPath string) error {
	data, err := json.MarshalIndent(document{Versions: s.versions}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal content: %w", err)
	}

	dir := filepath.Dir(outputPath)
	//nolint:forbidigo // Directory creation necessary for writing the export.
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	//nolint:forbidigo // File I/O necessary for writing the export.
	if err := os.WriteFile(outputPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write content file: %w", err)
	}

	return nil
}
