// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source resolves an input (file path, URL, or literal text) to
// the single string the segmenter works on. Acquisition failures are
// reported here, before any text reaches the transformer.
package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/oakla/question-maker/internal/convert"
	"github.com/oakla/question-maker/pkg/types"
)

var (
	// ErrNotFound reports a file input that does not exist.
	ErrNotFound = errors.New("source not found")

	// ErrFetch reports a network failure or non-2xx response.
	ErrFetch = errors.New("fetch failed")

	// ErrUnknownEncoding reports a charset name with no decoder.
	ErrUnknownEncoding = errors.New("unknown encoding")
)

// Source yields the full text of one input.
type Source interface {
	// Read returns the complete text. It is called once per transform.
	Read(ctx context.Context) (string, error)

	// Info describes the source for the Document record.
	Info() string
}

// Options carries the collaborators a Source may need.
type Options struct {
	Config types.SourceConfig

	// Client is used by URL sources; nil builds one from Config.Timeout.
	Client *http.Client

	// Converter handles PDF/DOCX/PPTX files; nil rejects them.
	Converter convert.Converter

	// Token, when set, is sent as a bearer token by URL sources.
	Token string
}

// Detect guesses the kind of input: an existing path is a file, an
// http(s) URL is a url, anything else is literal text.
func Detect(input string) types.SourceKind {
	if input != "" {
		if _, err := os.Stat(input); err == nil {
			return types.SourceFile
		}
	}
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		return types.SourceURL
	}
	return types.SourceString
}

// New builds the Source for input. With SourceAuto the kind is chosen by
// Detect.
func New(input string, kind types.SourceKind, opts Options) (Source, error) {
	if kind == types.SourceAuto {
		kind = Detect(input)
	}

	switch kind {
	case types.SourceFile:
		return NewFileSource(input, opts.Config.Encoding, opts.Converter)
	case types.SourceURL:
		client := opts.Client
		if client == nil {
			client = &http.Client{Timeout: opts.Config.Timeout}
		}
		return &URLSource{
			URL:    input,
			Client: client,
			Config: opts.Config.HTTPConfig,
			Token:  opts.Token,
		}, nil
	case types.SourceString:
		return &StringSource{Text: input}, nil
	default:
		return nil, fmt.Errorf("unsupported source type %q: use file, url, or string", kind)
	}
}

// StringSource returns literal text.
type StringSource struct {
	Text string
}

// Read returns the text unchanged.
func (s *StringSource) Read(context.Context) (string, error) { return s.Text, nil }

// Info returns "string".
func (s *StringSource) Info() string { return "string" }
