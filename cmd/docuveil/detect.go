package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docuveil/docuveil/internal/hybrid"
	"github.com/docuveil/docuveil/internal/logger"
)

// detectCmd represents the detect command
var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect sensitive spans or regions and print them as JSON",
	Long: `Run detection without producing a redacted artifact.

With --text, the hybrid text detector prints the entity list. With
--image, both vision pipelines run over the image and the fused region
list is printed.

Examples:
  docuveil detect --text "联系电话：13812345678"
  docuveil detect --image scan.png`,
	RunE: runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)

	detectCmd.Flags().String("text", "", "text to scan")
	detectCmd.Flags().String("image", "", "image file to scan")
	detectCmd.Flags().String("mode", string(hybrid.ModeAuto), "text detection mode (ner, hide, auto)")
}

func runDetect(cmd *cobra.Command, _ []string) error {
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

	text, _ := cmd.Flags().GetString("text")
	imagePath, _ := cmd.Flags().GetString("image")
	mode, _ := cmd.Flags().GetString("mode")

	ctx := context.Background()
	var result interface{}
	switch {
	case text != "":
		result, err = comps.detector.Detect(ctx, text, comps.types.EnabledIDs(), hybrid.Mode(mode))
	case imagePath != "":
		var img []byte
		img, err = os.ReadFile(imagePath)
		if err != nil {
			return fmt.Errorf("cannot read image: %w", err)
		}
		result, err = comps.fuser.Detect(ctx, img, 1)
	default:
		return fmt.Errorf("either --text or --image is required")
	}
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(result)
}
