package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/sa-hr/eracun/internal/extract"
	"github.com/sa-hr/eracun/pkg/eracun"
)

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate raw invoice JSON files",
	Long: `Validate one or more raw invoice JSON files against the profile rules.

All field errors are collected in a single pass, so one run reports every
problem. Soft amount-consistency findings are reported as warnings and do
not fail validation.

Examples:
  eracun validate invoice.json
  eracun validate invoices/*.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// FileValidation holds the result of validating a single file
type FileValidation struct {
	File     string            `json:"file"`
	Valid    bool              `json:"valid"`
	Errors   map[string]string `json:"errors,omitempty"`
	Warnings []string          `json:"warnings,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	results := make([]*FileValidation, 0, len(files))
	allValid := true

	for _, file := range files {
		result := validateFile(file)
		results = append(results, result)
		if !result.Valid {
			allValid = false
		}
	}

	if outputFormat == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Valid {
				fmt.Printf("✓ %s: VALID\n", r.File)
			} else {
				fmt.Printf("✗ %s: INVALID\n", r.File)
				paths := make([]string, 0, len(r.Errors))
				for path := range r.Errors {
					paths = append(paths, path)
				}
				sort.Strings(paths)
				for _, path := range paths {
					fmt.Printf("  - %s: %s\n", path, r.Errors[path])
				}
			}
			for _, w := range r.Warnings {
				fmt.Printf("  ⚠ %s\n", w)
			}
		}
	}

	if !allValid {
		return fmt.Errorf("validation failed for some files")
	}
	return nil
}

func validateFile(filePath string) *FileValidation {
	result := &FileValidation{File: filePath, Valid: true}

	raw, err := readRawInvoice(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = map[string]string{"_file": err.Error()}
		return result
	}

	validated, errs := eracun.Validate(raw)
	if errs != nil {
		result.Valid = false
		result.Errors = make(map[string]string, len(errs))
		for path, reason := range errs.Flatten() {
			result.Errors[path] = string(reason)
		}
		return result
	}

	for _, w := range validated.Warnings {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s", w.Field, w.Message))
	}
	return result
}

// readRawInvoice reads a JSON file into the raw tree shape the validator
// accepts, keeping numbers as json.Number.
func readRawInvoice(filePath string) (map[string]any, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	raw, err := extract.DecodeRaw(string(data))
	if err != nil {
		return nil, fmt.Errorf("not a JSON object: %w", err)
	}
	return raw, nil
}
