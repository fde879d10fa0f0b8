// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes transformed documents as JSON, YAML, CSV, plain
// text, or PDF. Exporters only read the document; a failed export leaves
// it untouched.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/oakla/question-maker/pkg/types"
)

// ErrNoQuestions reports a question-only format requested for a document
// the multiple-choice processor did not run on.
var ErrNoQuestions = errors.New("no questions to export")

// Formats lists every supported export format.
var Formats = []types.ExportFormat{
	types.FormatJSON, types.FormatYAML, types.FormatCSV, types.FormatText, types.FormatPDF,
}

// ParseFormats validates format names. "txt" is accepted for text and
// "yml" for yaml.
func ParseFormats(names []string) ([]types.ExportFormat, error) {
	out := make([]types.ExportFormat, 0, len(names))
	for _, n := range names {
		switch f := types.ExportFormat(strings.ToLower(strings.TrimSpace(n))); f {
		case types.FormatJSON, types.FormatYAML, types.FormatCSV, types.FormatText, types.FormatPDF:
			out = append(out, f)
		case "txt":
			out = append(out, types.FormatText)
		case "yml":
			out = append(out, types.FormatYAML)
		default:
			return nil, fmt.Errorf("unsupported export format %q: use json, yaml, csv, text, or pdf", n)
		}
	}
	return out, nil
}

// Extension returns the file extension for format, without the dot.
func Extension(format types.ExportFormat) string {
	if format == types.FormatText {
		return "txt"
	}
	return string(format)
}

// Write renders doc to w in format.
func Write(w io.Writer, doc *types.Document, format types.ExportFormat) error {
	switch format {
	case types.FormatJSON:
		return WriteJSON(w, doc)
	case types.FormatYAML:
		return WriteYAML(w, doc)
	case types.FormatCSV:
		return WriteCSV(w, doc)
	case types.FormatText:
		return WriteText(w, doc)
	case types.FormatPDF:
		return WritePDF(w, doc)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// WriteJSON writes the whole document as indented JSON without HTML
// escaping.
func WriteJSON(w io.Writer, doc *types.Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}

// WriteYAML writes the whole document as YAML.
func WriteYAML(w io.Writer, doc *types.Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// ToFile writes doc to path through a temporary file in the same
// directory, renaming it into place only after a complete write.
func ToFile(path string, doc *types.Document, format types.ExportFormat) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".export-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	writeErr := Write(tmp, doc, format)
	closeErr := tmp.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return writeErr
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// timestampLayout names auto-exported files, e.g. results_20260314_091500.json.
const timestampLayout = "20060102_150405"

// AutoExport writes doc into dir once per format, naming files after now.
// CSV goes to questions_<ts>.csv and is skipped when the document has no
// questions; every other format goes to results_<ts>.<ext>. It returns
// the paths written.
func AutoExport(dir string, doc *types.Document, formats []types.ExportFormat, now time.Time) ([]string, error) {
	ts := now.Format(timestampLayout)
	var paths []string
	for _, f := range formats {
		prefix := "results"
		if f == types.FormatCSV {
			if !doc.HasQuestions() {
				continue
			}
			prefix = "questions"
		}
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.%s", prefix, ts, Extension(f)))
		if err := ToFile(path, doc, f); err != nil {
			return paths, fmt.Errorf("exporting %s: %w", f, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
