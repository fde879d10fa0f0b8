// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/oakla/question-maker/pkg/types"
)

// baseLabels always get a column so the layout is stable for the common
// five-option case.
var baseLabels = []string{"A", "B", "C", "D", "E"}

// WriteCSV writes one row per question: number, stem, one column per
// option label (A-E plus any other label used), and the offsets.
func WriteCSV(w io.Writer, doc *types.Document) error {
	if !doc.HasQuestions() {
		return ErrNoQuestions
	}
	questions := doc.Questions()
	labels := optionColumns(questions)

	cw := csv.NewWriter(w)
	header := []string{"Question_Number", "Question_Text"}
	for _, l := range labels {
		header = append(header, "Option_"+l)
	}
	header = append(header, "Start_Position", "End_Position")
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, q := range questions {
		row := []string{strconv.Itoa(q.SequenceNumber), q.Text}
		for _, l := range labels {
			row = append(row, q.Options[l])
		}
		row = append(row, strconv.Itoa(q.StartOffset), strconv.Itoa(q.EndOffset))
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", q.SequenceNumber, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// optionColumns returns A-E followed by every other label in use, sorted.
func optionColumns(questions []types.Question) []string {
	seen := make(map[string]bool, len(baseLabels))
	for _, l := range baseLabels {
		seen[l] = true
	}
	var extra []string
	for _, q := range questions {
		for l := range q.Options {
			if !seen[l] {
				seen[l] = true
				extra = append(extra, l)
			}
		}
	}
	sort.Strings(extra)
	return append(append([]string{}, baseLabels...), extra...)
}
