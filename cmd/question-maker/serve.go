// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/oakla/question-maker/internal/server"
	"github.com/oakla/question-maker/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve segmentation and the question bank over HTTP",
	Long: `Serve starts a JSON HTTP API:

  GET  /healthz          liveness check
  POST /api/segment      {"text": "..."} -> extracted questions
  POST /api/transform    {"input", "source_type", "processors"} -> document
  GET  /api/questions    ?q=&document=&label=&limit= (requires --store)
  GET  /api/documents    stored documents (requires --store)

With --store, transform results are saved to the question bank. File
inputs are refused unless --allow-files is set.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	serveCmd.Flags().Bool("store", false, "enable the question bank")
	serveCmd.Flags().String("store-dir", "", "question bank directory (default store)")
	serveCmd.Flags().Bool("allow-files", false, "allow transform inputs naming server-side files")
	serveCmd.Flags().Duration("timeout", 0, "HTTP timeout for URL inputs (default 30s)")
	serveCmd.Flags().String("encoding", "", "IANA charset of input files (default UTF-8)")
	serveCmd.Flags().String("convert-backend", "", "converter for PDF/DOCX/PPTX files: none, pdftotext, markitdown")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if useStore, _ := cmd.Flags().GetBool("store"); useStore {
		cfg.Serve.UseStore = true
	}

	opts, err := sourceOptions(cfg.Source)
	if err != nil {
		return err
	}

	var st *store.Store
	if cfg.Serve.UseStore {
		st, err = store.NewStore(cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()
	}

	if zerolog.GlobalLevel() > zerolog.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(cfg.Serve, opts, st).Run(ctx)
}
