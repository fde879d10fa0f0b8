// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package segment splits loosely formatted text into multiple-choice
// questions. A line is either an option ("B Paris") or the stem of a new
// question; options accumulate onto the most recent stem and a stem
// without options is dropped when its span ends.
package segment

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/oakla/question-maker/pkg/types"
)

// optionPattern matches a trimmed option line: one uppercase ASCII letter,
// whitespace, then the option text. The whitespace class mirrors
// unicode.IsSpace so non-breaking and other Unicode spaces separate too.
var optionPattern = regexp.MustCompile(`^([A-Z])[\s\v\x{85}\pZ]+(.+)$`)

// phase is the machine state: idle until the first stem line, then
// building for the rest of the input.
type phase int

const (
	idle phase = iota
	building
)

// machine accumulates questions. Transitions take and return values so
// each step is a function of the previous state and one line.
type machine struct {
	phase   phase
	current types.Question
	seq     int
	kept    []types.Question
}

// option records label=text on the question being built. In the idle
// state the line has no question to attach to and is dropped.
func (m machine) option(label, text string) machine {
	if m.phase == idle {
		return m
	}
	m.current.Options[label] = text
	return m
}

// start closes the question being built at offset and opens a new one
// whose stem begins there.
func (m machine) start(stem string, offset int) machine {
	m = m.finish(offset)
	m.seq++
	m.phase = building
	m.current = types.Question{
		Text:           stem,
		Options:        make(map[string]string),
		SequenceNumber: m.seq,
		StartOffset:    offset,
	}
	return m
}

// finish ends the current question at end and keeps it only if it
// collected options.
func (m machine) finish(end int) machine {
	if m.phase == idle {
		return m
	}
	m.current.EndOffset = end
	if len(m.current.Options) > 0 {
		m.kept = append(m.kept, m.current)
	}
	m.phase = idle
	m.current = types.Question{}
	return m
}

// Segment scans text line by line and returns the kept questions with
// their counts. It never fails: empty or unstructured input yields an
// empty result.
//
// Offsets count characters, advancing by len(line)+1 for every line
// including blank ones, and the last question ends at the length of the
// whole text.
func Segment(text string) types.SegmentResult {
	m := machine{kept: []types.Question{}}
	offset := 0

	for _, raw := range strings.Split(text, "\n") {
		lineStart := offset
		offset += utf8.RuneCountInString(raw) + 1

		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if match := optionPattern.FindStringSubmatch(line); match != nil {
			m = m.option(match[1], match[2])
			continue
		}
		m = m.start(line, lineStart)
	}
	m = m.finish(utf8.RuneCountInString(text))

	withOptions := 0
	for _, q := range m.kept {
		if len(q.Options) > 0 {
			withOptions++
		}
	}

	return types.SegmentResult{
		Questions:            m.kept,
		QuestionCount:        len(m.kept),
		QuestionsWithOptions: withOptions,
	}
}
