package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/docuveil/docuveil/internal/logger"
	"github.com/docuveil/docuveil/internal/taxonomy"
)

// typesCmd represents the types command
var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the entity type taxonomy",
	RunE:  runTypes,
}

func init() {
	rootCmd.AddCommand(typesCmd)

	typesCmd.Flags().Bool("enabled", false, "list only enabled types")
}

func runTypes(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := taxonomy.NewStore(cfg.TypesFile(), logger.Get())
	if err != nil {
		return err
	}
	enabledOnly, _ := cmd.Flags().GetBool("enabled")

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tENABLED\tRISK\tREGEX")
	for _, t := range store.List(enabledOnly) {
		hasRegex := ""
		if t.RegexPattern != "" {
			hasRegex = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%d\t%s\n", t.ID, t.Name, t.Category, t.Enabled, t.RiskLevel, hasRegex)
	}
	return w.Flush()
}
