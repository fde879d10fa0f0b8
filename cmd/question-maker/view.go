// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/oakla/question-maker/internal/source"
	"github.com/oakla/question-maker/internal/transform"
	"github.com/oakla/question-maker/internal/view"
	"github.com/oakla/question-maker/pkg/types"
)

var viewCmd = &cobra.Command{
	Use:   "view [input]",
	Short: "Browse the questions in one input interactively",
	Long: `View extracts questions from a file, URL, text, or standard input ("-")
and opens a terminal browser: a table of questions with the selected
question's options below it. Press q or esc to quit.`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	viewCmd.Flags().String("source-type", "", "input kind: file, url, or string (default: detect)")
	viewCmd.Flags().Bool("no-color", false, "disable colors")
	viewCmd.Flags().String("encoding", "", "IANA charset of input files (default UTF-8)")
	viewCmd.Flags().String("convert-backend", "", "converter for PDF/DOCX/PPTX files: none, pdftotext, markitdown")
	viewCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")

	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	kindFlag, _ := cmd.Flags().GetString("source-type")
	noColor, _ := cmd.Flags().GetBool("no-color")

	inputs, err := inputsFromArgs(args, types.SourceKind(kindFlag), cmd.InOrStdin())
	if err != nil {
		return err
	}
	opts, err := sourceOptions(cfg.Source)
	if err != nil {
		return err
	}

	src, err := source.New(inputs[0].Value, inputs[0].Kind, opts)
	if err != nil {
		return err
	}
	doc, err := transform.New(transform.MultipleChoice).Transform(cmd.Context(), src)
	if err != nil {
		return err
	}

	// Keys come from the terminal when stdin carried the document.
	var keys io.Reader = cmd.InOrStdin()
	if args[0] == stdinInput {
		keys = nil
	}
	return view.Run(doc, view.Options{NoColor: noColor}, keys, cmd.OutOrStdout())
}
