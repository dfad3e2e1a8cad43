package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sa-hr/eracun/pkg/eracun"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a UBL 2.1 invoice document",
	Long: `Parse a UBL 2.1 XML document into structured invoice data.

The parser tolerates documents produced by other compliant systems: any
namespace prefixes are accepted, unknown elements are ignored, and enum
tokens outside the closed sets are preserved and flagged rather than
rejected.

Examples:
  eracun parse invoice.xml
  eracun parse invoice.xml -f table`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	parsed, perr := eracun.Parse(data)
	if perr != nil {
		return fmt.Errorf("parse failed (%s): %s", perr.Kind, perr.Message)
	}

	if outputFormat == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(parsed)
	}

	fmt.Printf("Invoice:   %s\n", parsed.ID)
	fmt.Printf("Issued:    %s\n", parsed.IssuedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Operator:  %s\n", parsed.Operator)
	fmt.Printf("Currency:  %s\n", parsed.Currency)
	fmt.Printf("Supplier:  %s (OIB %s)\n", parsed.Supplier.RegistrationName, parsed.Supplier.TaxID)
	fmt.Printf("Customer:  %s (OIB %s)\n", parsed.Customer.RegistrationName, parsed.Customer.TaxID)
	fmt.Printf("Payable:   %s %s\n", parsed.MonetaryTotal.PayableAmount, parsed.Currency)
	fmt.Printf("Lines:     %d\n", len(parsed.Lines))
	for _, tok := range parsed.Unrecognized {
		fmt.Printf("  ⚠ unrecognized token at %s: %q\n", tok.Path, tok.Token)
	}
	return nil
}
