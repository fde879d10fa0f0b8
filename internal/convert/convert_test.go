// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakla/question-maker/pkg/types"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool // binary -> whether LookPath succeeds
	runnableCmds  map[string]bool // "bin arg1 arg2" -> whether RunSilent succeeds
	runPipedFunc  func(name string, args []string, stdin io.Reader, stdout io.Writer) error
	pipedCalls    []string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) RunSilent(name string, args ...string) error {
	key := name + " " + strings.Join(args, " ")
	if m.runnableCmds[key] {
		return nil
	}
	return errors.New("command failed: " + key)
}

func (m *mockExecutor) RunPiped(name string, args []string, stdin io.Reader, stdout io.Writer) error {
	m.pipedCalls = append(m.pipedCalls, name+" "+strings.Join(args, " "))
	if m.runPipedFunc != nil {
		return m.runPipedFunc(name, args, stdin, stdout)
	}
	return nil
}

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNeeded(t *testing.T) {
	tests := map[string]bool{
		"quiz.pdf":      true,
		"QUIZ.PDF":      true,
		"deck.pptx":     true,
		"notes.docx":    true,
		"questions.txt": false,
		"page.html":     false,
		"noext":         false,
	}
	for path, want := range tests {
		assert.Equal(t, want, Needed(path), path)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		backend  types.ConversionBackend
		exec     *mockExecutor
		wantName string
		wantNil  bool
		wantErr  string
	}{
		{name: "none", backend: types.BackendNone, exec: &mockExecutor{}, wantNil: true},
		{name: "empty", backend: "", exec: &mockExecutor{}, wantNil: true},
		{
			name:     "pdftotext on PATH",
			backend:  types.BackendPdftotext,
			exec:     &mockExecutor{availableBins: map[string]bool{"pdftotext": true}},
			wantName: "pdftotext",
		},
		{
			name:    "pdftotext missing",
			backend: types.BackendPdftotext,
			exec:    &mockExecutor{},
			wantErr: "not found on PATH",
		},
		{
			name:    "markitdown with docker",
			backend: types.BackendMarkitdown,
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true},
				runnableCmds: map[string]bool{
					"docker info":                             true,
					"docker image inspect markitdown:latest": true,
				},
			},
			wantName: "markitdown",
		},
		{
			name:    "markitdown image missing",
			backend: types.BackendMarkitdown,
			exec: &mockExecutor{
				availableBins: map[string]bool{"podman": true},
				runnableCmds:  map[string]bool{"podman info": true},
			},
			wantErr: "image not available in podman",
		},
		{
			name:    "no container runtime",
			backend: types.BackendMarkitdown,
			exec:    &mockExecutor{},
			wantErr: "no container runtime",
		},
		{
			name:    "unknown backend",
			backend: "grobid",
			exec:    &mockExecutor{},
			wantErr: "unknown conversion backend",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := newWithExec(tt.backend, tt.exec)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, c)
				return
			}
			require.NotNil(t, c)
			assert.Equal(t, tt.wantName, c.Name())
		})
	}
}

func TestPdftotextConvert(t *testing.T) {
	ex := &mockExecutor{
		availableBins: map[string]bool{"pdftotext": true},
		runPipedFunc: func(name string, args []string, _ io.Reader, stdout io.Writer) error {
			_, err := io.WriteString(stdout, "Q1?\nA yes\nB no\n")
			return err
		},
	}
	c, err := newPdftotext(ex)
	require.NoError(t, err)

	path := writeDoc(t, "quiz.pdf", "%PDF-1.4")
	text, err := c.Convert(path)
	require.NoError(t, err)
	assert.Equal(t, "Q1?\nA yes\nB no\n", text)
	assert.Equal(t, []string{"pdftotext -layout " + path + " -"}, ex.pipedCalls)

	_, err = c.Convert(writeDoc(t, "deck.pptx", "x"))
	assert.ErrorContains(t, err, "cannot convert .pptx")
}

func TestMarkitdownConvert(t *testing.T) {
	tests := []struct {
		name    string
		piped   func(string, []string, io.Reader, io.Writer) error
		want    string
		wantErr string
	}{
		{
			name: "echoes document through container",
			piped: func(_ string, _ []string, stdin io.Reader, stdout io.Writer) error {
				var in bytes.Buffer
				if _, err := io.Copy(&in, stdin); err != nil {
					return err
				}
				_, err := io.WriteString(stdout, "# converted\n"+in.String())
				return err
			},
			want: "# converted\nbinary-docx",
		},
		{
			name:    "container failure",
			piped:   func(string, []string, io.Reader, io.Writer) error { return errors.New("exit 1") },
			wantErr: "exit 1",
		},
		{
			name:    "empty output",
			piped:   func(string, []string, io.Reader, io.Writer) error { return nil },
			wantErr: "empty output",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := &mockExecutor{runPipedFunc: tt.piped}
			c := &MarkitdownConverter{runtime: "docker", exec: ex}

			got, err := c.Convert(writeDoc(t, "quiz.docx", "binary-docx"))
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, []string{"docker run --rm -i markitdown:latest"}, ex.pipedCalls)
		})
	}
}

func TestMarkitdownConvert_MissingFile(t *testing.T) {
	c := &MarkitdownConverter{runtime: "podman", exec: &mockExecutor{}}
	_, err := c.Convert(filepath.Join(t.TempDir(), "missing.docx"))
	assert.ErrorContains(t, err, "opening")
}
