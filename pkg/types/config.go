// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for URL sources.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MaxRetries bounds retries on HTTP 429 and 503 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// ConversionBackend identifies the tool used to turn binary documents
// (PDF, DOCX, PPTX) into text before segmentation.
type ConversionBackend string

const (
	BackendNone       ConversionBackend = "none"
	BackendPdftotext  ConversionBackend = "pdftotext"
	BackendMarkitdown ConversionBackend = "markitdown"
)

// SourceConfig holds settings for text acquisition.
type SourceConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Encoding is the IANA charset name used to decode files (default UTF-8).
	Encoding string `json:"encoding" yaml:"encoding" mapstructure:"encoding"`

	// Backend selects the converter for binary documents.
	Backend ConversionBackend `json:"backend" yaml:"backend" mapstructure:"backend"`
}

// ExportFormat names an export writer.
type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
	FormatYAML ExportFormat = "yaml"
	FormatCSV  ExportFormat = "csv"
	FormatText ExportFormat = "text"
	FormatPDF  ExportFormat = "pdf"
)

// ExportConfig holds settings for writing results to disk.
type ExportConfig struct {
	// Dir is the directory timestamped exports are written to (default "exports").
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// Formats lists the formats written by an export run.
	Formats []ExportFormat `json:"formats" yaml:"formats" mapstructure:"formats"`

	// Auto writes timestamped exports after every transform.
	Auto bool `json:"auto" yaml:"auto" mapstructure:"auto"`
}

// StoreConfig holds settings for the SQLite question bank.
type StoreConfig struct {
	// Dir contains questions.db.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// ServeConfig holds settings for the HTTP API.
type ServeConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// UseStore enables the /api/questions endpoint and persists
	// transform results.
	UseStore bool `json:"use_store" yaml:"use_store" mapstructure:"use_store"`

	// AllowFiles lets API clients name files on the server's disk as
	// transform inputs. Off by default.
	AllowFiles bool `json:"allow_files" yaml:"allow_files" mapstructure:"allow_files"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`

	// Processors lists the transformer processors to run, in order.
	Processors []string `json:"processors" yaml:"processors" mapstructure:"processors"`

	Source SourceConfig `json:"source" yaml:"source" mapstructure:"source"`
	Export ExportConfig `json:"export" yaml:"export" mapstructure:"export"`
	Store  StoreConfig  `json:"store" yaml:"store" mapstructure:"store"`
	Serve  ServeConfig  `json:"serve" yaml:"serve" mapstructure:"serve"`
}
