// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/oakla/question-maker/pkg/types"
)

const (
	numberWidth  = 4
	optionsWidth = 7
	minTextWidth = 20
)

func defaultColumns() []table.Column {
	return columnsForWidth(80)
}

// columnsForWidth gives the stem column whatever the fixed columns leave.
func columnsForWidth(width int) []table.Column {
	text := max(width-numberWidth-optionsWidth-6, minTextWidth)
	return []table.Column{
		{Title: "#", Width: numberWidth},
		{Title: "Question", Width: text},
		{Title: "Options", Width: optionsWidth},
	}
}

func tableStyles(noColor bool) table.Styles {
	styles := table.DefaultStyles()
	if noColor {
		styles.Selected = lipgloss.NewStyle().Bold(true)
		return styles
	}
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	return styles
}

// rowsForQuestions converts questions into table rows keyed by sequence
// number.
func rowsForQuestions(questions []types.Question) []table.Row {
	rows := make([]table.Row, 0, len(questions))
	for _, q := range questions {
		rows = append(rows, table.Row{
			strconv.Itoa(q.SequenceNumber),
			truncate(q.Text, 80),
			strconv.Itoa(len(q.Options)),
		})
	}
	return rows
}

func renderHeader(source string, count int, noColor bool) string {
	noun := "questions"
	if count == 1 {
		noun = "question"
	}
	line := fmt.Sprintf("%s | %d %s", source, count, noun)
	return stylize(line, noColor, lipgloss.Color("33"))
}

// renderDetail shows the stem, offsets, and options in label order.
func renderDetail(q *types.Question, noColor bool) string {
	if q == nil {
		return stylize("No questions found.", noColor, lipgloss.Color("242"))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Q%d. %s\n", q.SequenceNumber, q.Text)
	for _, l := range q.Labels() {
		fmt.Fprintf(&b, "   %s) %s\n", l, q.Options[l])
	}
	b.WriteString(stylize(fmt.Sprintf("offsets %d-%d", q.StartOffset, q.EndOffset), noColor, lipgloss.Color("242")))
	if noColor {
		return b.String()
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(b.String())
}

func renderFooter(noColor bool) string {
	return stylize("↑/↓ move • q quit", noColor, lipgloss.Color("244"))
}

// truncate collapses whitespace and shortens text to limit runes.
func truncate(text string, limit int) string {
	normalized := strings.Join(strings.Fields(text), " ")
	if r := []rune(normalized); len(r) > limit {
		return string(r[:limit-3]) + "..."
	}
	return normalized
}

func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
