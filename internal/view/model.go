// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package view is an interactive terminal browser for extracted questions.
package view

import (
	"io"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/oakla/question-maker/pkg/types"
)

// Options configures the view.
type Options struct {
	NoColor bool
}

// Model is a question table with a detail pane for the selected row.
type Model struct {
	source    string
	questions []types.Question
	table     table.Model
	noColor   bool
}

// NewModel builds a model over the questions in doc.
func NewModel(doc *types.Document, opts Options) Model {
	questions := doc.Questions()
	t := table.New(
		table.WithColumns(defaultColumns()),
		table.WithRows(rowsForQuestions(questions)),
		table.WithFocused(true),
		table.WithHeight(min(max(len(questions), 1), 15)),
	)
	t.SetStyles(tableStyles(opts.NoColor))
	return Model{
		source:    doc.Source,
		questions: questions,
		table:     t,
		noColor:   opts.NoColor,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles resizing, quitting, and table navigation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetWidth(typed.Width)
		m.table.SetColumns(columnsForWidth(typed.Width))
		m.table.SetHeight(max(typed.Height/2, 3))
		return m, nil
	case tea.KeyMsg:
		switch typed.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the header, table, detail pane, and key help.
func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(m.source, len(m.questions), m.noColor),
		m.table.View(),
		renderDetail(m.selected(), m.noColor),
		renderFooter(m.noColor),
	)
}

// selected returns the question under the cursor, or nil.
func (m Model) selected() *types.Question {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.questions) {
		return nil
	}
	return &m.questions[i]
}

// Run shows the browser until the user quits. A nil in reads keys from
// the controlling terminal, for when stdin carried the document.
func Run(doc *types.Document, opts Options, in io.Reader, out io.Writer) error {
	input := tea.WithInput(in)
	if in == nil {
		input = tea.WithInputTTY()
	}
	program := tea.NewProgram(NewModel(doc, opts), input, tea.WithOutput(out), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
