package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sa-hr/eracun/pkg/eracun"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show supported schema and profile metadata",
	Long: `Display the supported schema version, jurisdiction profile version,
supported currencies, and the mandatory and optional feature lists.

Examples:
  eracun info
  eracun info -f table`,
	Args: cobra.NoArgs,
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	info := eracun.Info()

	if outputFormat == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(info)
	}

	fmt.Printf("Schema:     %s\n", info.SchemaVersion)
	fmt.Printf("Profile:    %s\n", info.ProfileVersion)
	fmt.Printf("Currencies: %s\n", strings.Join(info.SupportedCurrencies, ", "))
	fmt.Println("Mandatory features:")
	for _, f := range info.MandatoryFeatures {
		fmt.Printf("  - %s\n", f)
	}
	fmt.Println("Optional features:")
	for _, f := range info.OptionalFeatures {
		fmt.Printf("  - %s\n", f)
	}
	return nil
}
