// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakla/question-maker/internal/store"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Query the question bank",
	Long: `Store works with the SQLite question bank that transform --store and
serve --store write to. Use subcommands to search questions or list stored
documents.`,
}

// --- retrieve subcommand ---

var storeRetrieveCmd = &cobra.Command{
	Use:   "retrieve [query]",
	Short: "Search stored questions by stem text, document, or option label",
	Long: `Retrieve searches question stems with FTS5 full-text search. Without a
query, questions are listed in document and sequence order. --document and
--label narrow the results.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStoreRetrieve,
}

func runStoreRetrieve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st, err := store.NewStore(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	opts := store.QueryOptions{MaxResults: cfg.Store.MaxResults}
	if len(args) > 0 {
		opts.Query = args[0]
	}
	opts.DocumentID, _ = cmd.Flags().GetString("document")
	opts.Label, _ = cmd.Flags().GetString("label")

	results, err := st.Retrieve(cmd.Context(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatRetrieveOutput(cmd.OutOrStdout(), results, jsonOutput)
}

func formatRetrieveOutput(w io.Writer, results []store.QueryResult, jsonOutput bool) error {
	if jsonOutput {
		if results == nil {
			results = []store.QueryResult{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	for i, r := range results {
		fmt.Fprintf(w, "%d. [%s #%d] %s\n", i+1, shorten(r.Source, 30), r.SequenceNumber, r.Text)
		for _, l := range r.Labels() {
			fmt.Fprintf(w, "   %s) %s\n", l, r.Options[l])
		}
	}
	fmt.Fprintf(w, "\n%d results\n", len(results))
	return nil
}

// --- documents subcommand ---

var storeDocumentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "List documents in the question bank",
	RunE:  runStoreDocuments,
}

func runStoreDocuments(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st, err := store.NewStore(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	docs, err := st.Documents(cmd.Context())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		if docs == nil {
			docs = []store.DocumentSummary{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(docs)
	}

	if len(docs) == 0 {
		fmt.Fprintln(w, "No documents stored.")
		return nil
	}

	fmt.Fprintf(w, "%-36s  %-40s  %9s  %s\n", "ID", "Source", "Questions", "Stored")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for _, d := range docs {
		fmt.Fprintf(w, "%-36s  %-40s  %9d  %s\n",
			d.ID, shorten(d.Source, 40), d.QuestionCount, d.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

// shorten truncates s to n runes for table output.
func shorten(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if r := []rune(s); len(r) > n {
		return string(r[:n-3]) + "..."
	}
	return s
}

func init() {
	storeCmd.PersistentFlags().String("store-dir", "", "question bank directory (default store)")
	storeCmd.PersistentFlags().Bool("json", false, "output as JSON")

	storeRetrieveCmd.Flags().String("document", "", "filter by document ID")
	storeRetrieveCmd.Flags().String("label", "", "only questions with an option of this label")
	storeRetrieveCmd.Flags().Int("max-results", 0, "maximum results (default 20)")

	storeCmd.AddCommand(storeRetrieveCmd)
	storeCmd.AddCommand(storeDocumentsCmd)
	rootCmd.AddCommand(storeCmd)
}
