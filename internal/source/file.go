// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/oakla/question-maker/internal/convert"
)

// FileSource reads a text file, decoding it from Encoding, or hands a
// binary document to Converter.
type FileSource struct {
	Path      string
	Encoding  string
	Converter convert.Converter
}

// NewFileSource checks that path exists and is a regular file.
func NewFileSource(path, encoding string, conv convert.Converter) (*FileSource, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: file %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("checking %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return &FileSource{Path: path, Encoding: encoding, Converter: conv}, nil
}

// Read returns the file text. Documents that need conversion go through
// the converter; everything else is decoded from the configured charset.
func (f *FileSource) Read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if convert.Needed(f.Path) {
		if f.Converter == nil {
			return "", fmt.Errorf("%s needs a conversion backend (pdftotext or markitdown)", f.Path)
		}
		log.Debug().Str("path", f.Path).Str("backend", f.Converter.Name()).Msg("converting document")
		return f.Converter.Convert(f.Path)
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", f.Path, err)
	}
	return decode(data, f.Encoding)
}

// Info returns the absolute path, or the path as given if it cannot be
// made absolute.
func (f *FileSource) Info() string {
	abs, err := filepath.Abs(f.Path)
	if err != nil {
		return f.Path
	}
	return abs
}

// decode converts data from the named IANA charset to UTF-8.
func decode(data []byte, charset string) (string, error) {
	switch strings.ToLower(charset) {
	case "", "utf-8", "utf8":
		return string(data), nil
	}

	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil || enc == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, charset)
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decoding %s text: %w", charset, err)
	}
	return string(out), nil
}
