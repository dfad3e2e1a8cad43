package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sa-hr/eracun/internal/extract"
	"github.com/sa-hr/eracun/pkg/eracun"
)

var extractValidate bool

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract invoice data from free-form text via LLM",
	Long: `Extract structured invoice data from a plain-text file (OCR output,
mail body, scanned invoice text) using an LLM. The output is the raw JSON
tree that validate and generate accept.

Requires an API key (--api-key or LLM_API_KEY).

Examples:
  eracun extract scan.txt --api-key <key>
  eracun extract scan.txt --validate`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().BoolVar(&extractValidate, "validate", false, "Validate the extracted data before printing")
}

func runExtract(cmd *cobra.Command, args []string) error {
	if apiKey == "" {
		return fmt.Errorf("extraction requires an API key (--api-key or LLM_API_KEY)")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var clientOpts []extract.ClientOption
	if llmBaseURL != "" {
		clientOpts = append(clientOpts, extract.WithBaseURL(llmBaseURL))
	}
	client := extract.NewClient(apiKey, clientOpts...)

	var extractorOpts []extract.ExtractorOption
	if llmModel != "" {
		extractorOpts = append(extractorOpts, extract.WithModel(llmModel))
	}
	extractor := extract.NewExtractor(client, extractorOpts...)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	printVerbose("extracting invoice data from %s\n", args[0])
	raw, err := extractor.ExtractFromText(ctx, string(data))
	if err != nil {
		return err
	}

	if extractValidate {
		if _, errs := eracun.Validate(raw); errs != nil {
			fmt.Fprintf(os.Stderr, "extracted data does not validate:\n%s", formatFieldErrors(errs))
		}
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(raw)
}
