package ingest

import (
	"encoding/json"
	"fmt"
	"os"
)

// The JSON* types below are a JSON-backed implementation of every
// loader and writer interface in this package — one small type per
// interface, since Go forbids overloading the shared Load/Write method
// name across document types on a single receiver. They exist so
// cmd/ and tests have a runnable, in-module I/O path; none of them are
// the XML contract spec scopes as the reference wire format.

func loadJSON[T any](path string) (*T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: read %s: %w", path, err)
	}
	var doc T
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("ingest: decode %s: %w", path, err)
	}

	return &doc, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("ingest: encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("ingest: write %s: %w", path, err)
	}

	return nil
}

// JSONNetworkLoader implements NetworkLoader over a JSON file.
type JSONNetworkLoader struct{}

func (JSONNetworkLoader) Load(path string) (*NetworkDocument, error) {
	return loadJSON[NetworkDocument](path)
}

// JSONConfigLoader implements ConfigLoader over a JSON file.
type JSONConfigLoader struct{}

func (JSONConfigLoader) Load(path string) (*ConfigDocument, error) {
	return loadJSON[ConfigDocument](path)
}

// JSONPatchLoader implements PatchLoader over a JSON file.
type JSONPatchLoader struct{}

func (JSONPatchLoader) Load(path string) (*PatchDocument, error) {
	return loadJSON[PatchDocument](path)
}

// JSONOptimizeLoader implements OptimizeLoader over a JSON file.
type JSONOptimizeLoader struct{}

func (JSONOptimizeLoader) Load(path string) (*OptimizeDocument, error) {
	return loadJSON[OptimizeDocument](path)
}

// JSONScheduleWriter implements ScheduleWriter over a JSON file.
type JSONScheduleWriter struct{}

func (JSONScheduleWriter) Write(path string, doc *ScheduleDocument) error {
	return writeJSON(path, doc)
}

// JSONPatchedScheduleWriter implements PatchedScheduleWriter over a
// JSON file.
type JSONPatchedScheduleWriter struct{}

func (JSONPatchedScheduleWriter) Write(path string, doc *PatchedScheduleDocument) error {
	return writeJSON(path, doc)
}

// JSONTimingWriter implements TimingWriter over a JSON file.
type JSONTimingWriter struct{}

func (JSONTimingWriter) Write(path string, doc *TimingDocument) error {
	return writeJSON(path, doc)
}
