// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/oakla/question-maker/internal/convert"
	"github.com/oakla/question-maker/internal/export"
	"github.com/oakla/question-maker/internal/secrets"
	"github.com/oakla/question-maker/internal/source"
	"github.com/oakla/question-maker/pkg/types"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultUserAgent  = "question-maker/0.1"
	defaultMaxRetries = 5
	defaultExportDir  = "exports"
	defaultStoreDir   = "store"
	defaultAddr       = ":8080"
)

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"processors":      "processors",
	"timeout":         "source.timeout",
	"encoding":        "source.encoding",
	"convert-backend": "source.backend",
	"export":          "export.formats",
	"export-dir":      "export.dir",
	"auto-export":     "export.auto",
	"store-dir":       "store.dir",
	"max-results":     "store.max_results",
	"addr":            "serve.addr",
	"allow-files":     "serve.allow_files",
}

func setDefaults() {
	viper.SetDefault("log_level", "warn")
	viper.SetDefault("processors", []string{})
	viper.SetDefault("source.timeout", defaultTimeout)
	viper.SetDefault("source.user_agent", defaultUserAgent)
	viper.SetDefault("source.max_retries", defaultMaxRetries)
	viper.SetDefault("source.encoding", "")
	viper.SetDefault("source.backend", string(types.BackendNone))
	viper.SetDefault("export.dir", defaultExportDir)
	viper.SetDefault("export.formats", []string{})
	viper.SetDefault("export.auto", false)
	viper.SetDefault("store.dir", defaultStoreDir)
	viper.SetDefault("store.max_results", 20)
	viper.SetDefault("serve.addr", defaultAddr)
	viper.SetDefault("serve.use_store", false)
	viper.SetDefault("serve.allow_files", false)
}

// loadConfig binds the flags cmd defines onto their config keys and
// decodes the merged configuration. Binding happens per invocation so
// commands sharing a flag name do not shadow each other.
func loadConfig(cmd *cobra.Command) (types.PipelineConfig, error) {
	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := viper.BindPFlag(key, f); err != nil {
				return types.PipelineConfig{}, fmt.Errorf("binding --%s: %w", flag, err)
			}
		}
	}

	var cfg types.PipelineConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	if _, err := export.ParseFormats(formatNames(cfg.Export.Formats)); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// sourceOptions builds acquisition collaborators from cfg.
func sourceOptions(cfg types.SourceConfig) (source.Options, error) {
	conv, err := convert.New(cfg.Backend)
	if err != nil {
		return source.Options{}, err
	}
	return source.Options{
		Config:    cfg,
		Converter: conv,
		Token:     loadedSecrets.Get(secrets.KeyURLBearerToken),
	}, nil
}

// exportFormats resolves the formats to write after a transform. With
// auto export on and no formats named, JSON and CSV are written.
func exportFormats(cfg types.ExportConfig) ([]types.ExportFormat, error) {
	formats, err := export.ParseFormats(formatNames(cfg.Formats))
	if err != nil {
		return nil, err
	}
	if len(formats) == 0 && cfg.Auto {
		formats = []types.ExportFormat{types.FormatJSON, types.FormatCSV}
	}
	return formats, nil
}

func formatNames(formats []types.ExportFormat) []string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return names
}
