package main

import (
	"github.com/spf13/cobra"

	"github.com/docuveil/docuveil/internal/config"
	"github.com/docuveil/docuveil/internal/logger"
)

var (
	cfgFile  string
	logLevel string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "docuveil",
	Short: "Redact personally identifying information from documents",
	Long: `docuveil discovers and redacts personally identifying information in
word documents, PDFs, scanned PDFs, and raster images.

Text documents go through a hybrid detector that fuses a neural
recognizer with deterministic regex matchers and coreference linking.
Scanned pages and images go through two parallel vision pipelines
(OCR plus text recognition, and a vision language model) whose regions
are fused by overlap.

Features:
  - Configurable taxonomy of identifier categories (GB/T 37964-2019 presets)
  - Smart, mask, structured-tag, and custom replacement modes
  - Format-preserving DOCX and PDF rewriting
  - HTTP API with review workflow`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.docuveil.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

// loadConfig reads the configuration and initializes the global logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := logger.Init(&logger.Config{
		Level:            cfg.LogLevel,
		Format:           "console",
		EnableStacktrace: true,
	}); err != nil {
		return nil, err
	}
	return cfg, nil
}
