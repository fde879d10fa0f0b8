// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transform

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/oakla/question-maker/internal/segment"
	"github.com/oakla/question-maker/pkg/types"
)

// Processor extracts fields from text. Its keys are merged into the
// document's extracted data; later processors overwrite earlier keys.
type Processor func(text string) map[string]any

// Processor names accepted by Lookup.
const (
	ProcStats      = "stats"
	ProcQuestions  = "questions"
	ProcSentences  = "sentences"
	ProcParagraphs = "paragraphs"
)

// DefaultProcessors is the selection used when none is configured.
var DefaultProcessors = []string{ProcStats, ProcQuestions}

var registry = map[string]Processor{
	ProcStats:      BasicStats,
	ProcQuestions:  MultipleChoice,
	ProcSentences:  Sentences,
	ProcParagraphs: Paragraphs,
}

// Names returns the registered processor names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves processor names in order. An empty list selects
// DefaultProcessors.
func Lookup(names []string) ([]Processor, error) {
	if len(names) == 0 {
		names = DefaultProcessors
	}
	procs := make([]Processor, 0, len(names))
	for _, n := range names {
		p, ok := registry[strings.TrimSpace(n)]
		if !ok {
			return nil, fmt.Errorf("unknown processor %q: use one of %s", n, strings.Join(Names(), ", "))
		}
		procs = append(procs, p)
	}
	return procs, nil
}

// BasicStats counts words, lines, and characters.
func BasicStats(text string) map[string]any {
	words := strings.Fields(text)
	avg := 0.0
	if len(words) > 0 {
		total := 0
		for _, w := range words {
			total += utf8.RuneCountInString(w)
		}
		avg = float64(total) / float64(len(words))
	}
	return map[string]any{
		"word_count":      len(words),
		"line_count":      len(strings.Split(text, "\n")),
		"char_count":      utf8.RuneCountInString(text),
		"avg_word_length": avg,
	}
}

var sentenceEnd = regexp.MustCompile(`[.!?]+`)

// Sentences splits on runs of terminal punctuation.
func Sentences(text string) map[string]any {
	sentences := nonEmpty(sentenceEnd.Split(text, -1))
	return map[string]any{
		"sentences":      sentences,
		"sentence_count": len(sentences),
	}
}

// Paragraphs splits on blank lines.
func Paragraphs(text string) map[string]any {
	paragraphs := nonEmpty(strings.Split(text, "\n\n"))
	return map[string]any{
		"paragraphs":      paragraphs,
		"paragraph_count": len(paragraphs),
	}
}

// MultipleChoice segments the text into multiple-choice questions.
func MultipleChoice(text string) map[string]any {
	r := segment.Segment(text)
	return map[string]any{
		types.KeyQuestions:            r.Questions,
		types.KeyQuestionCount:        r.QuestionCount,
		types.KeyQuestionsWithOptions: r.QuestionsWithOptions,
	}
}

// nonEmpty trims parts and drops the blank ones.
func nonEmpty(parts []string) []string {
	out := []string{}
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
