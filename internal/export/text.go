// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/oakla/question-maker/pkg/types"
)

const reportTitle = "QUESTION MAKER - EXTRACTED RESULTS"

var numbers = message.NewPrinter(language.English)

// WriteText writes a human-readable report: a summary header followed by
// each question and its options in label order.
func WriteText(w io.Writer, doc *types.Document) error {
	bw := bufio.NewWriter(w)
	for _, line := range reportLines(doc) {
		bw.WriteString(line)
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing text report: %w", err)
	}
	return nil
}

// reportLines renders the report shared by the text and PDF exporters.
func reportLines(doc *types.Document) []string {
	lines := []string{
		reportTitle,
		strings.Repeat("=", 50),
		"",
		"Source: " + doc.Source,
		"Processing Time: " + doc.Timestamp.Format(time.RFC3339),
		numbers.Sprintf("Content Length: %d characters", utf8.RuneCountInString(doc.Content)),
		"",
	}

	if !doc.HasQuestions() {
		return lines
	}

	questions := doc.Questions()
	lines = append(lines,
		fmt.Sprintf("EXTRACTED QUESTIONS (%d found):", len(questions)),
		strings.Repeat("-", 30),
		"",
	)
	for i, q := range questions {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, q.Text))
		for _, l := range q.Labels() {
			lines = append(lines, fmt.Sprintf("   %s) %s", l, q.Options[l]))
		}
		lines = append(lines, "")
	}
	return lines
}
