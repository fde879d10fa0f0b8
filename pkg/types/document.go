// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// SourceKind selects how an input string is resolved to text.
type SourceKind string

const (
	// SourceAuto picks file, url, or string by inspecting the input.
	SourceAuto   SourceKind = ""
	SourceFile   SourceKind = "file"
	SourceURL    SourceKind = "url"
	SourceString SourceKind = "string"
)

// Extracted-data keys written by the multiple-choice processor.
const (
	KeyQuestions            = "multiple_choice_questions"
	KeyQuestionCount        = "question_count"
	KeyQuestionsWithOptions = "questions_with_options"
)

// Document is the structured result of transforming one input.
type Document struct {
	// Source identifies where the text came from: an absolute file path,
	// a URL, or "string".
	Source string `json:"source" yaml:"source"`

	// Content is the text that processors ran over.
	Content string `json:"content" yaml:"content"`

	// Extracted merges the output of every processor.
	Extracted map[string]any `json:"extracted_data" yaml:"extracted_data"`

	// Metadata describes the run (text_length, processor_count).
	Metadata map[string]any `json:"metadata" yaml:"metadata"`

	// Timestamp records when the document was produced.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// NewDocument returns a Document with empty maps and the current time.
func NewDocument(source, content string) *Document {
	return &Document{
		Source:    source,
		Content:   content,
		Extracted: make(map[string]any),
		Metadata:  make(map[string]any),
		Timestamp: time.Now(),
	}
}

// Questions returns the extracted multiple-choice questions, or nil when
// the multiple-choice processor did not run.
func (d *Document) Questions() []Question {
	qs, _ := d.Extracted[KeyQuestions].([]Question)
	return qs
}

// HasQuestions reports whether the multiple-choice processor ran.
func (d *Document) HasQuestions() bool {
	_, ok := d.Extracted[KeyQuestions].([]Question)
	return ok
}
