// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the records shared across question-maker stages.
package types

import (
	"sort"
	"strings"
)

// Question is one detected multiple-choice question.
type Question struct {
	// Text is the stem line, trimmed of surrounding whitespace.
	Text string `json:"question" yaml:"question"`

	// Options maps a single uppercase letter to the option text.
	// Map iteration order is unspecified; use Labels for display.
	Options map[string]string `json:"options" yaml:"options"`

	// SequenceNumber is the 1-based discovery index of the stem line.
	// Discarded questions consume numbers too, so kept questions may
	// show gaps.
	SequenceNumber int `json:"question_number" yaml:"question_number"`

	// StartOffset and EndOffset are character offsets into the input
	// spanning the stem line up to the next stem (or end of text).
	StartOffset int `json:"start_position" yaml:"start_position"`
	EndOffset   int `json:"end_position" yaml:"end_position"`
}

// Labels returns the option labels in sorted order.
func (q Question) Labels() []string {
	labels := make([]string, 0, len(q.Options))
	for l := range q.Options {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// FullText renders the stem followed by one "L text" line per option.
func (q Question) FullText() string {
	var b strings.Builder
	b.WriteString(q.Text)
	for _, l := range q.Labels() {
		b.WriteString("\n")
		b.WriteString(l)
		b.WriteString(" ")
		b.WriteString(q.Options[l])
	}
	return b.String()
}

// SegmentResult is the output of segmenting one text.
type SegmentResult struct {
	// Questions holds the kept questions in discovery order.
	Questions []Question `json:"multiple_choice_questions" yaml:"multiple_choice_questions"`

	// QuestionCount is the number of kept questions.
	QuestionCount int `json:"question_count" yaml:"question_count"`

	// QuestionsWithOptions counts kept questions with at least one option.
	QuestionsWithOptions int `json:"questions_with_options" yaml:"questions_with_options"`
}
