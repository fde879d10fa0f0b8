// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

const binPdftotext = "pdftotext"

// PdftotextConverter extracts PDF text with poppler's pdftotext in
// layout mode, which keeps option lines on their own lines.
type PdftotextConverter struct {
	exec executor
}

func newPdftotext(ex executor) (*PdftotextConverter, error) {
	if _, err := ex.LookPath(binPdftotext); err != nil {
		return nil, fmt.Errorf("%s not found on PATH: %w", binPdftotext, err)
	}
	return &PdftotextConverter{exec: ex}, nil
}

// Name returns "pdftotext".
func (p *PdftotextConverter) Name() string { return binPdftotext }

// Convert runs pdftotext on path and returns its stdout.
func (p *PdftotextConverter) Convert(path string) (string, error) {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".pdf" {
		return "", fmt.Errorf("pdftotext cannot convert %s files", ext)
	}

	var out bytes.Buffer
	if err := p.exec.RunPiped(binPdftotext, []string{"-layout", path, "-"}, nil, &out); err != nil {
		return "", fmt.Errorf("converting %s with pdftotext: %w", path, err)
	}
	return out.String(), nil
}
