// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/oakla/question-maker/internal/export"
	"github.com/oakla/question-maker/internal/store"
	"github.com/oakla/question-maker/internal/transform"
	"github.com/oakla/question-maker/pkg/types"
)

// stdinInput names standard input on the command line.
const stdinInput = "-"

var transformCmd = &cobra.Command{
	Use:   "transform [inputs...]",
	Short: "Extract questions and statistics from files, URLs, or text",
	Long: `Transform reads each input, runs the selected processors over its text,
and prints a report per document. An input is a file path, an http(s) URL,
or literal text; "-" reads standard input. Use --source-type to override
detection.

Processors: stats, questions, sentences, paragraphs (default: stats,questions).

With --export or --auto-export, results are also written as timestamped
files into --export-dir. With --store, questions are saved to the question
bank for later retrieval.`,
	RunE: runTransform,
}

func init() {
	transformCmd.Flags().String("source-type", "", "input kind: file, url, or string (default: detect)")
	transformCmd.Flags().StringSlice("processors", nil, "processors to run, in order")
	transformCmd.Flags().Bool("json", false, "print documents as JSON")
	transformCmd.Flags().StringSlice("export", nil, "export formats: json, yaml, csv, text, pdf")
	transformCmd.Flags().String("export-dir", "", "directory for exported files (default exports)")
	transformCmd.Flags().Bool("auto-export", false, "export every result (JSON and CSV unless --export is set)")
	transformCmd.Flags().Bool("store", false, "save results to the question bank")
	transformCmd.Flags().String("store-dir", "", "question bank directory (default store)")
	transformCmd.Flags().String("encoding", "", "IANA charset of input files (default UTF-8)")
	transformCmd.Flags().String("convert-backend", "", "converter for PDF/DOCX/PPTX files: none, pdftotext, markitdown")
	transformCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")

	rootCmd.AddCommand(transformCmd)
}

func runTransform(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more inputs (file paths, URLs, or text); use - for stdin")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	kindFlag, _ := cmd.Flags().GetString("source-type")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	useStore, _ := cmd.Flags().GetBool("store")

	inputs, err := inputsFromArgs(args, types.SourceKind(kindFlag), cmd.InOrStdin())
	if err != nil {
		return err
	}
	procs, err := transform.Lookup(cfg.Processors)
	if err != nil {
		return err
	}
	formats, err := exportFormats(cfg.Export)
	if err != nil {
		return err
	}
	opts, err := sourceOptions(cfg.Source)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	progress := out
	if jsonOutput {
		progress = cmd.ErrOrStderr()
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	result := transform.New(procs...).TransformBatch(ctx, inputs, opts, progress)

	if err := printDocuments(out, result.Documents, jsonOutput); err != nil {
		return err
	}
	if len(formats) > 0 {
		if err := exportDocuments(progress, cfg.Export.Dir, result.Documents, formats, time.Now()); err != nil {
			return err
		}
	}
	if useStore {
		if err := storeDocuments(ctx, progress, cfg.Store, result.Documents); err != nil {
			return err
		}
	}

	if result.HasFailures() {
		return fmt.Errorf("%d input(s) failed", result.Failed)
	}
	return nil
}

// inputsFromArgs turns arguments into batch inputs, reading "-" from
// stdin once as literal text.
func inputsFromArgs(args []string, kind types.SourceKind, stdin io.Reader) ([]transform.Input, error) {
	inputs := make([]transform.Input, 0, len(args))
	readStdin := false
	for _, a := range args {
		if a != stdinInput {
			inputs = append(inputs, transform.Input{Value: a, Kind: kind})
			continue
		}
		if readStdin {
			return nil, fmt.Errorf("standard input can only be read once")
		}
		readStdin = true
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading standard input: %w", err)
		}
		inputs = append(inputs, transform.Input{Value: string(data), Kind: types.SourceString})
	}
	return inputs, nil
}

func printDocuments(w io.Writer, docs []*types.Document, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if len(docs) == 1 {
			return enc.Encode(docs[0])
		}
		if docs == nil {
			docs = []*types.Document{}
		}
		return enc.Encode(docs)
	}

	for _, doc := range docs {
		fmt.Fprintln(w)
		if err := export.WriteText(w, doc); err != nil {
			return err
		}
	}
	return nil
}

// exportDocuments writes each document's exports. Batches of more than
// one document get a numbered subdirectory per input so same-second
// timestamps cannot collide.
func exportDocuments(w io.Writer, dir string, docs []*types.Document, formats []types.ExportFormat, now time.Time) error {
	for i, doc := range docs {
		target := dir
		if len(docs) > 1 {
			target = filepath.Join(dir, fmt.Sprintf("%02d", i+1))
		}
		paths, err := export.AutoExport(target, doc, formats, now)
		for _, p := range paths {
			fmt.Fprintf(w, "exported: %s\n", p)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func storeDocuments(ctx context.Context, w io.Writer, cfg types.StoreConfig, docs []*types.Document) error {
	st, err := store.NewStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	for _, doc := range docs {
		id, err := st.Save(ctx, doc)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "stored: %s (%d questions)\n", id, len(doc.Questions()))
	}
	return nil
}
