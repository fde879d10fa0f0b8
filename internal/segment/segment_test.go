// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakla/question-maker/pkg/types"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []types.Question
	}{
		{
			name: "two questions",
			text: "Q1?\nA opt1\nB opt2\nQ2?\nA x\nB y\nC z",
			want: []types.Question{
				{Text: "Q1?", Options: map[string]string{"A": "opt1", "B": "opt2"}, SequenceNumber: 1, StartOffset: 0, EndOffset: 18},
				{Text: "Q2?", Options: map[string]string{"A": "x", "B": "y", "C": "z"}, SequenceNumber: 2, StartOffset: 18, EndOffset: 33},
			},
		},
		{
			name: "no options anywhere",
			text: "Just text\nNo options here\nStill no options",
			want: []types.Question{},
		},
		{
			name: "empty input",
			text: "",
			want: []types.Question{},
		},
		{
			name: "only blank lines",
			text: "\n  \n\t\n",
			want: []types.Question{},
		},
		{
			name: "lowercase label starts a question",
			text: "Q?\na option text\nA real",
			want: []types.Question{
				{Text: "a option text", Options: map[string]string{"A": "real"}, SequenceNumber: 2, StartOffset: 3, EndOffset: 23},
			},
		},
		{
			name: "orphan option before first stem is dropped",
			text: "A orphan\nQ?\nB yes",
			want: []types.Question{
				{Text: "Q?", Options: map[string]string{"B": "yes"}, SequenceNumber: 1, StartOffset: 9, EndOffset: 17},
			},
		},
		{
			name: "consecutive stems discard the first",
			text: "First?\nSecond?\nA x",
			want: []types.Question{
				{Text: "Second?", Options: map[string]string{"A": "x"}, SequenceNumber: 2, StartOffset: 7, EndOffset: 18},
			},
		},
		{
			name: "stem followed only by blank lines is dropped",
			text: "Q1?\n\n\nQ2?\nA x",
			want: []types.Question{
				{Text: "Q2?", Options: map[string]string{"A": "x"}, SequenceNumber: 2, StartOffset: 6, EndOffset: 13},
			},
		},
		{
			name: "lone uppercase letter is a stem",
			text: "Q?\nA\nB x",
			want: []types.Question{
				{Text: "A", Options: map[string]string{"B": "x"}, SequenceNumber: 2, StartOffset: 3, EndOffset: 8},
			},
		},
		{
			name: "duplicate label keeps the last value",
			text: "Q?\nA one\nA two",
			want: []types.Question{
				{Text: "Q?", Options: map[string]string{"A": "two"}, SequenceNumber: 1, StartOffset: 0, EndOffset: 14},
			},
		},
		{
			name: "indentation and carriage returns",
			text: "  Q?  \r\n  A  yes\r\n",
			want: []types.Question{
				{Text: "Q?", Options: map[string]string{"A": "yes"}, SequenceNumber: 1, StartOffset: 0, EndOffset: 18},
			},
		},
		{
			name: "offsets count characters not bytes",
			text: "Qué?\nA sí\nÑ?\nB no",
			want: []types.Question{
				{Text: "Qué?", Options: map[string]string{"A": "sí"}, SequenceNumber: 1, StartOffset: 0, EndOffset: 10},
				{Text: "Ñ?", Options: map[string]string{"B": "no"}, SequenceNumber: 2, StartOffset: 10, EndOffset: 17},
			},
		},
		{
			name: "option text keeps inner spacing",
			text: "Q?\nA   spaced   inner",
			want: []types.Question{
				{Text: "Q?", Options: map[string]string{"A": "spaced   inner"}, SequenceNumber: 1, StartOffset: 0, EndOffset: 21},
			},
		},
		{
			name: "non-breaking space separates label",
			text: "Q?\nA\u00a0text",
			want: []types.Question{
				{Text: "Q?", Options: map[string]string{"A": "text"}, SequenceNumber: 1, StartOffset: 0, EndOffset: 9},
			},
		},
		{
			name: "trailing newline counts toward the last end offset",
			text: "Q?\nA x\n",
			want: []types.Question{
				{Text: "Q?", Options: map[string]string{"A": "x"}, SequenceNumber: 1, StartOffset: 0, EndOffset: 7},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Segment(tt.text)
			require.NotNil(t, got.Questions)
			assert.Equal(t, tt.want, got.Questions)
			assert.Equal(t, len(tt.want), got.QuestionCount)
			assert.Equal(t, len(tt.want), got.QuestionsWithOptions)
		})
	}
}

func TestSegment_AminoAcidQuestions(t *testing.T) {
	text := `Which of the following is an essential amino acid in humans?
A Tyrosine
B Glutamine
C Glutamate
D Phenylalanine
E Lysine
The term "ketogenic" describes an amino acid that:
A is a precursor for glucose synthesis.
B forms oxaloacetate during catabolism.
C cannot be converted to ketone bodies.
D degrades to give a-ketoglutarate.
E is catabolised to yield acetyl CoA or acetoacetyl CoA.`

	got := Segment(text)
	require.Equal(t, 2, got.QuestionCount)
	assert.Equal(t, "Which of the following is an essential amino acid in humans?", got.Questions[0].Text)
	assert.Equal(t, `The term "ketogenic" describes an amino acid that:`, got.Questions[1].Text)
	assert.Len(t, got.Questions[0].Options, 5)
	assert.Len(t, got.Questions[1].Options, 5)
	assert.Equal(t, "Tyrosine", got.Questions[0].Options["A"])
	assert.Equal(t, "Lysine", got.Questions[0].Options["E"])
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, got.Questions[1].Labels())
}

func TestSegment_OptionAfterStemIsAbsorbed(t *testing.T) {
	for _, label := range strings.Split("ABCDEFGHIJKLMNOPQRSTUVWXYZ", "") {
		got := Segment("Stem line\n" + label + " choice")
		require.Equal(t, 1, got.QuestionCount, label)
		assert.Equal(t, "Stem line", got.Questions[0].Text)
		assert.Equal(t, map[string]string{label: "choice"}, got.Questions[0].Options)
	}
}

func TestSegment_EmptyQuestionConsumesSequenceNumber(t *testing.T) {
	without := Segment("Real?\nA yes\nB no")
	with := Segment("Empty?\n\n\nReal?\nA yes\nB no")

	require.Equal(t, 1, without.QuestionCount)
	require.Equal(t, 1, with.QuestionCount)
	assert.Equal(t, without.Questions[0].SequenceNumber+1, with.Questions[0].SequenceNumber)
}

func TestSegment_Idempotent(t *testing.T) {
	text := "Intro\nQ1?\nA a\nB b\n\nQ2?\nC c\nnoise\nQ3?\nD d"
	assert.Equal(t, Segment(text), Segment(text))
}

func TestSegment_CountsAreIndependentTallies(t *testing.T) {
	got := Segment("Q1?\nA a\nQ2?\nQ3?\nB b")
	require.Len(t, got.Questions, 2)
	assert.Equal(t, len(got.Questions), got.QuestionCount)

	withOptions := 0
	for _, q := range got.Questions {
		if len(q.Options) > 0 {
			withOptions++
		}
	}
	assert.Equal(t, withOptions, got.QuestionsWithOptions)
	assert.Equal(t, got.QuestionCount, got.QuestionsWithOptions)
}

func TestSegment_OffsetsMonotonic(t *testing.T) {
	text := "Q1?\nA a\n\n  Q2?\n B b\nstray\nQ3?\nC c\nD d\n"
	got := Segment(text)
	require.Equal(t, 3, got.QuestionCount)

	prevEnd := 0
	for _, q := range got.Questions {
		assert.LessOrEqual(t, q.StartOffset, q.EndOffset)
		assert.LessOrEqual(t, prevEnd, q.StartOffset)
		prevEnd = q.EndOffset
	}
	assert.Equal(t, len(text), got.Questions[len(got.Questions)-1].EndOffset)
}

func TestQuestionFullText(t *testing.T) {
	q := types.Question{
		Text:    "What color is the sky?",
		Options: map[string]string{"C": "Green", "A": "Red", "B": "Blue"},
	}
	assert.Equal(t, "What color is the sky?\nA Red\nB Blue\nC Green", q.FullText())
}
