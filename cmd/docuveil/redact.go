package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/docuveil/docuveil/internal/hybrid"
	"github.com/docuveil/docuveil/internal/logger"
	"github.com/docuveil/docuveil/internal/replace"
)

// redactCmd represents the redact command
var redactCmd = &cobra.Command{
	Use:   "redact <file>",
	Short: "Detect and redact a document in one shot",
	Long: `Run the full pipeline over one file: detection, approval of every
finding, and the format-preserving writer. The redacted artifact is
written next to the input unless --output is given.

Examples:
  docuveil redact contract.docx
  docuveil redact scan.pdf --mode mask --output clean.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runRedact,
}

func init() {
	rootCmd.AddCommand(redactCmd)

	redactCmd.Flags().StringP("output", "o", "", "output path for the redacted artifact")
	redactCmd.Flags().String("mode", string(replace.ModeSmart), "replacement mode (smart, mask, structured, custom)")
}

func runRedact(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logger.Get()
	defer func() { _ = log.Sync() }()

	comps, err := build(cfg, log)
	if err != nil {
		return err
	}

	inputPath := args[0]
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("cannot read input: %w", err)
	}
	meta, err := comps.docs.Save(filepath.Base(inputPath), data)
	if err != nil {
		return err
	}

	ctx := context.Background()
	job, err := comps.jobs.Detect(ctx, meta.ID, nil, hybrid.ModeAuto)
	if err != nil {
		return err
	}
	for _, warning := range job.Warnings {
		log.Warn(warning)
	}

	mode, _ := cmd.Flags().GetString("mode")
	job, err = comps.jobs.Redact(ctx, meta.ID, replace.Mode(mode), nil)
	if err != nil {
		return err
	}

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		ext := filepath.Ext(job.OutputPath)
		base := inputPath[:len(inputPath)-len(filepath.Ext(inputPath))]
		outputPath = base + ".redacted" + ext
	}
	redacted, err := os.ReadFile(job.OutputPath)
	if err != nil {
		return fmt.Errorf("cannot read redacted artifact: %w", err)
	}
	if err := os.WriteFile(outputPath, redacted, 0644); err != nil {
		return fmt.Errorf("cannot write output: %w", err)
	}

	fmt.Printf("Redacted %d occurrences -> %s\n", job.RedactedCount, outputPath)
	return nil
}
