package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sa-hr/eracun/pkg/eracun"
)

var generateOutput string

var generateCmd = &cobra.Command{
	Use:   "generate <file>",
	Short: "Generate UBL 2.1 XML from a raw invoice JSON file",
	Long: `Validate a raw invoice JSON file and render it as a profile-compliant
UBL 2.1 document. Generation fails only when validation fails.

Examples:
  eracun generate invoice.json
  eracun generate invoice.json -o invoice.xml`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output file (default: stdout)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	raw, err := readRawInvoice(args[0])
	if err != nil {
		return err
	}

	xml, errs := eracun.Generate(raw)
	if errs != nil {
		return fmt.Errorf("validation failed:\n%s", formatFieldErrors(errs))
	}

	if generateOutput != "" {
		if err := os.WriteFile(generateOutput, xml, 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		printVerbose("wrote %d bytes to %s\n", len(xml), generateOutput)
		return nil
	}

	_, err = os.Stdout.Write(xml)
	return err
}
