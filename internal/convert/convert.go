// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns binary documents (PDF, DOCX, PPTX) into plain text
// so their questions can be segmented. Backends shell out to pdftotext or
// to the markitdown container image; all process execution goes through
// an executor so tests never spawn real commands.
package convert

import (
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/oakla/question-maker/pkg/types"
)

// Converter extracts text from a document on disk.
type Converter interface {
	// Name identifies the backend in logs.
	Name() string

	// Convert reads the document at path and returns its text.
	Convert(path string) (string, error)
}

// convertible lists the extensions that need a converter before their
// text can be read.
var convertible = map[string]bool{
	".pdf":  true,
	".docx": true,
	".pptx": true,
	".xlsx": true,
}

// Needed reports whether path names a document that must be converted
// rather than read as text.
func Needed(path string) bool {
	return convertible[strings.ToLower(filepath.Ext(path))]
}

// New returns the converter for backend. BackendNone and "" return a nil
// Converter and no error.
func New(backend types.ConversionBackend) (Converter, error) {
	return newWithExec(backend, defaultExec)
}

func newWithExec(backend types.ConversionBackend, ex executor) (Converter, error) {
	switch backend {
	case "", types.BackendNone:
		return nil, nil
	case types.BackendPdftotext:
		c, err := newPdftotext(ex)
		if err != nil {
			return nil, err
		}
		return c, nil
	case types.BackendMarkitdown:
		c, err := newMarkitdown(ex)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown conversion backend %q: use none, pdftotext, or markitdown", backend)
	}
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunPiped(name string, args []string, stdin io.Reader, stdout io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (o *osExecutor) RunPiped(name string, args []string, stdin io.Reader, stdout io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	return cmd.Run()
}

var defaultExec executor = &osExecutor{}
