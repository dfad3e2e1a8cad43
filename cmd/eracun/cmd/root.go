package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "1.0.0"

	// Global flags
	verbose      bool
	outputFormat string
	apiKey       string
	llmBaseURL   string
	llmModel     string
)

var rootCmd = &cobra.Command{
	Use:   "eracun",
	Short: "Validate, generate and parse Croatian UBL 2.1 e-invoices",
	Long: `eracun is a CLI tool for working with Croatian e-invoices (eRačun).

Supports:
  - Validating raw invoice JSON against the national profile rules
  - Generating profile-compliant UBL 2.1 XML
  - Parsing UBL XML produced by other compliant systems
  - Extracting invoice data from free-form text via LLM

Examples:
  # Validate a raw invoice
  eracun validate invoice.json

  # Generate UBL XML
  eracun generate invoice.json -o invoice.xml

  # Parse a UBL document back into structured data
  eracun parse invoice.xml

  # Round-trip check
  eracun roundtrip invoice.json`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json", "Output format (json, table)")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "API key for LLM provider (env: LLM_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&llmBaseURL, "llm-base-url", "", "LLM API base URL (env: LLM_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&llmModel, "llm-model", "", "LLM model for text extraction (env: LLM_MODEL)")

	// Load from environment variables if not set via flags
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if apiKey == "" {
		apiKey = os.Getenv("LLM_API_KEY")
	}
	if llmBaseURL == "" {
		llmBaseURL = os.Getenv("LLM_BASE_URL")
	}
	if llmModel == "" {
		llmModel = os.Getenv("LLM_MODEL")
	}
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
