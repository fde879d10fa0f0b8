// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package transform runs a pipeline of processors over acquired text and
// collects their output into a types.Document.
package transform

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/oakla/question-maker/internal/source"
	"github.com/oakla/question-maker/pkg/types"
)

// Transformer applies processors in order.
type Transformer struct {
	processors []Processor
}

// New returns a Transformer running processors in the given order.
func New(processors ...Processor) *Transformer {
	return &Transformer{processors: processors}
}

// Add appends a processor.
func (t *Transformer) Add(p Processor) {
	t.processors = append(t.processors, p)
}

// Process runs every processor over text, which is already acquired.
func (t *Transformer) Process(sourceInfo, text string) *types.Document {
	doc := types.NewDocument(sourceInfo, text)
	for _, p := range t.processors {
		for k, v := range p(text) {
			doc.Extracted[k] = v
		}
	}
	doc.Metadata["text_length"] = utf8.RuneCountInString(text)
	doc.Metadata["processor_count"] = len(t.processors)
	return doc
}

// Transform reads src and processes its text. Read failures are returned
// as-is and no document is produced.
func (t *Transformer) Transform(ctx context.Context, src source.Source) (*types.Document, error) {
	text, err := src.Read(ctx)
	if err != nil {
		return nil, err
	}
	return t.Process(src.Info(), text), nil
}

// Input is one entry of a batch: a path, URL, or literal text, with an
// optional kind overriding detection.
type Input struct {
	Value string
	Kind  types.SourceKind
}

// BatchResult holds the outcome of a batch transform run.
type BatchResult struct {
	Processed int
	Failed    int
	Documents []*types.Document
}

// Total returns the number of inputs processed.
func (r BatchResult) Total() int {
	return r.Processed + r.Failed
}

// HasFailures reports whether any input failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// TransformBatch transforms each input, printing per-input status to w.
// It continues after individual failures.
func (t *Transformer) TransformBatch(ctx context.Context, inputs []Input, opts source.Options, w io.Writer) BatchResult {
	var result BatchResult
	for _, in := range inputs {
		if ctx.Err() != nil {
			fmt.Fprintf(w, "failed:    %s (%v)\n", label(in.Value), ctx.Err())
			result.Failed++
			continue
		}

		doc, err := t.transformInput(ctx, in, opts)
		if err != nil {
			fmt.Fprintf(w, "failed:    %s (%v)\n", label(in.Value), err)
			result.Failed++
			continue
		}

		if doc.HasQuestions() {
			fmt.Fprintf(w, "processed: %s (%d questions)\n", label(doc.Source), len(doc.Questions()))
		} else {
			fmt.Fprintf(w, "processed: %s\n", label(doc.Source))
		}
		result.Processed++
		result.Documents = append(result.Documents, doc)
	}
	fmt.Fprintf(w, "\nBatch summary: %d processed, %d failed (total: %d)\n",
		result.Processed, result.Failed, result.Total())
	return result
}

func (t *Transformer) transformInput(ctx context.Context, in Input, opts source.Options) (*types.Document, error) {
	src, err := source.New(in.Value, in.Kind, opts)
	if err != nil {
		return nil, err
	}
	return t.Transform(ctx, src)
}

// label flattens and shortens literal-text inputs for status lines.
func label(s string) string {
	const limit = 40
	s = strings.ReplaceAll(s, "\n", " ")
	if r := []rune(s); len(r) > limit {
		return string(r[:limit-3]) + "..."
	}
	return s
}
