package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/sa-hr/eracun/pkg/eracun"
)

var roundtripCmd = &cobra.Command{
	Use:   "roundtrip <file>",
	Short: "Validate, generate and parse back a raw invoice",
	Long: `Run a raw invoice JSON file through the full cycle: validate,
generate UBL XML, and parse the XML back. Useful for checking that no
information is lost between the structured form and the document form.

Examples:
  eracun roundtrip invoice.json`,
	Args: cobra.ExactArgs(1),
	RunE: runRoundTrip,
}

func init() {
	rootCmd.AddCommand(roundtripCmd)
}

func runRoundTrip(cmd *cobra.Command, args []string) error {
	raw, err := readRawInvoice(args[0])
	if err != nil {
		return err
	}

	result, err := eracun.RoundTrip(raw)
	if err != nil {
		var fieldErrs eracun.FieldErrors
		if errors.As(err, &fieldErrs) {
			return fmt.Errorf("validation failed:\n%s", formatFieldErrors(fieldErrs))
		}
		return err
	}

	if outputFormat == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	fmt.Printf("✓ round trip ok: %s (%d bytes of XML, %d lines)\n",
		result.Parsed.ID, len(result.XML), len(result.Parsed.Lines))
	for _, w := range result.Warnings {
		fmt.Printf("  ⚠ %s: %s\n", w.Field, w.Message)
	}
	return nil
}

func formatFieldErrors(errs eracun.FieldErrors) string {
	out := ""
	flat := errs.Flatten()
	for _, path := range sortedKeys(flat) {
		out += fmt.Sprintf("  - %s: %s\n", path, flat[path])
	}
	return out
}

func sortedKeys(m map[string]eracun.Reason) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
