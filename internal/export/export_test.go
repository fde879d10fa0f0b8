// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/oakla/question-maker/pkg/types"
)

var fixedTime = time.Date(2026, 3, 14, 9, 15, 0, 0, time.UTC)

func sampleDoc() *types.Document {
	doc := types.NewDocument("quiz.txt", "Which is red?\nB Grass\nA Apple\nWhich is blue?\nA Sky\nF Sea\n")
	doc.Timestamp = fixedTime
	doc.Extracted[types.KeyQuestions] = []types.Question{
		{Text: "Which is red?", Options: map[string]string{"A": "Apple", "B": "Grass"}, SequenceNumber: 1, StartOffset: 0, EndOffset: 30},
		{Text: "Which is blue?", Options: map[string]string{"A": "Sky", "F": "Sea"}, SequenceNumber: 2, StartOffset: 30, EndOffset: 57},
	}
	doc.Extracted[types.KeyQuestionCount] = 2
	doc.Extracted[types.KeyQuestionsWithOptions] = 2
	return doc
}

func TestParseFormats(t *testing.T) {
	got, err := ParseFormats([]string{"json", " YAML", "txt", "yml", "pdf", "csv"})
	require.NoError(t, err)
	assert.Equal(t, []types.ExportFormat{
		types.FormatJSON, types.FormatYAML, types.FormatText, types.FormatYAML, types.FormatPDF, types.FormatCSV,
	}, got)

	_, err = ParseFormats([]string{"docx"})
	assert.ErrorContains(t, err, "unsupported export format")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleDoc()))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "quiz.txt", got["source"])

	extracted := got["extracted_data"].(map[string]any)
	questions := extracted["multiple_choice_questions"].([]any)
	require.Len(t, questions, 2)
	first := questions[0].(map[string]any)
	assert.Equal(t, "Which is red?", first["question"])
	assert.Equal(t, float64(1), first["question_number"])
	assert.Equal(t, float64(30), first["end_position"])
	assert.Equal(t, map[string]any{"A": "Apple", "B": "Grass"}, first["options"])
	assert.Contains(t, buf.String(), "\n  \"source\"")
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, sampleDoc()))

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "quiz.txt", got["source"])
	assert.Contains(t, buf.String(), "question: Which is blue?")
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleDoc()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{
		"Question_Number", "Question_Text",
		"Option_A", "Option_B", "Option_C", "Option_D", "Option_E", "Option_F",
		"Start_Position", "End_Position",
	}, records[0])
	assert.Equal(t, []string{"1", "Which is red?", "Apple", "Grass", "", "", "", "", "0", "30"}, records[1])
	assert.Equal(t, []string{"2", "Which is blue?", "Sky", "", "", "", "", "Sea", "30", "57"}, records[2])
}

func TestWriteCSVNoQuestions(t *testing.T) {
	doc := types.NewDocument("string", "hello")
	var buf bytes.Buffer
	assert.ErrorIs(t, WriteCSV(&buf, doc), ErrNoQuestions)
	assert.Zero(t, buf.Len())
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleDoc()))

	want := strings.Join([]string{
		"QUESTION MAKER - EXTRACTED RESULTS",
		strings.Repeat("=", 50),
		"",
		"Source: quiz.txt",
		"Processing Time: 2026-03-14T09:15:00Z",
		"Content Length: 57 characters",
		"",
		"EXTRACTED QUESTIONS (2 found):",
		strings.Repeat("-", 30),
		"",
		"1. Which is red?",
		"   A) Apple",
		"   B) Grass",
		"",
		"2. Which is blue?",
		"   A) Sky",
		"   F) Sea",
		"",
	}, "\n") + "\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteTextGroupsLength(t *testing.T) {
	doc := types.NewDocument("string", strings.Repeat("x", 1234))
	doc.Timestamp = fixedTime
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, doc))
	assert.Contains(t, buf.String(), "Content Length: 1,234 characters")
	assert.NotContains(t, buf.String(), "EXTRACTED QUESTIONS")
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, sampleDoc()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, sampleDoc(), "docx"))
}

func TestToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.json")
	require.NoError(t, ToFile(path, sampleDoc(), types.FormatJSON))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Which is red?")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should be renamed away")
}

func TestAutoExport(t *testing.T) {
	dir := t.TempDir()
	doc := sampleDoc()

	paths, err := AutoExport(dir, doc, []types.ExportFormat{types.FormatJSON, types.FormatCSV, types.FormatText}, fixedTime)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "results_20260314_091500.json"),
		filepath.Join(dir, "questions_20260314_091500.csv"),
		filepath.Join(dir, "results_20260314_091500.txt"),
	}, paths)
	for _, p := range paths {
		assert.FileExists(t, p)
	}
}

func TestAutoExportSkipsCSVWithoutQuestions(t *testing.T) {
	dir := t.TempDir()
	doc := types.NewDocument("string", "plain text")
	doc.Timestamp = fixedTime

	paths, err := AutoExport(dir, doc, []types.ExportFormat{types.FormatCSV, types.FormatJSON}, fixedTime)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "results_20260314_091500.json")}, paths)
}

func TestExportLeavesDocumentUntouched(t *testing.T) {
	doc := sampleDoc()
	before, err := json.Marshal(doc)
	require.NoError(t, err)

	for _, f := range Formats {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, doc, f), f)
	}

	after, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}
