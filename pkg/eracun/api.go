package eracun

import (
	"github.com/sa-hr/eracun/internal/model"
	"github.com/sa-hr/eracun/internal/ubl"
	"github.com/sa-hr/eracun/internal/validate"
)

// Result is a successful validation: the normalized invoice plus any soft
// warnings (advisory amount-consistency findings that do not block).
type Result struct {
	Invoice  *Invoice  `json:"invoice"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// Validate checks the raw key/value tree against the profile's field rules
// and normalizes it. On failure the complete field error tree is returned;
// the invoice is never partially populated.
func Validate(raw map[string]any) (*Result, FieldErrors) {
	result, errs := validate.Invoice(raw)
	if !errs.Empty() {
		return nil, errs
	}
	return &Result{Invoice: result.Invoice, Warnings: result.Warnings}, nil
}

// Generate validates raw input and renders it as a profile-compliant UBL
// document. The only failure mode is validation; rendering a validated
// invoice cannot fail.
func Generate(raw map[string]any) ([]byte, FieldErrors) {
	result, errs := Validate(raw)
	if errs != nil {
		return nil, errs
	}
	return ubl.Generate(result.Invoice), nil
}

// Render renders an already-validated invoice. Callers that built the
// Invoice through Validate can skip re-validation.
func Render(inv *Invoice) []byte {
	return ubl.Generate(inv)
}

// Parse decodes a UBL invoice document, tolerating documents produced by
// other compliant systems. It does not validate: enum tokens outside the
// closed sets are preserved and flagged for a later validation pass.
func Parse(xml []byte) (*ParsedInvoice, *ParseError) {
	return ubl.Parse(xml)
}

// RoundTripResult is a successful generate-then-parse cycle.
type RoundTripResult struct {
	XML      []byte         `json:"xml"`
	Parsed   *ParsedInvoice `json:"parsed"`
	Warnings []Warning      `json:"warnings,omitempty"`
}

// RoundTrip validates, generates, and parses the result back, surfacing the
// first failing stage's error unchanged (FieldErrors for validation,
// *ParseError for parsing).
func RoundTrip(raw map[string]any) (*RoundTripResult, error) {
	result, errs := Validate(raw)
	if errs != nil {
		return nil, errs
	}
	xml := ubl.Generate(result.Invoice)
	parsed, perr := ubl.Parse(xml)
	if perr != nil {
		return nil, perr
	}
	return &RoundTripResult{XML: xml, Parsed: parsed, Warnings: result.Warnings}, nil
}

// SchemaInfo describes the supported schema and profile. Static metadata
// only.
type SchemaInfo struct {
	SchemaVersion       string   `json:"schema_version"`
	ProfileVersion      string   `json:"jurisdiction_profile_version"`
	SupportedCurrencies []string `json:"supported_currencies"`
	MandatoryFeatures   []string `json:"mandatory_feature_list"`
	OptionalFeatures    []string `json:"optional_feature_list"`
}

// Info returns descriptive metadata about the supported schema and profile.
func Info() SchemaInfo {
	return SchemaInfo{
		SchemaVersion:       "UBL 2.1",
		ProfileVersion:      "HR-CIUS 2.0",
		SupportedCurrencies: model.SupportedCurrencies(),
		MandatoryFeatures: []string{
			"operator-note",
			"issue-timestamp-note",
			"oib-check-digit",
			"monetary-total-identity",
			"closed-enumerations",
		},
		OptionalFeatures: []string{
			"extra-notes",
			"unrecognized-token-recovery",
			"subtotal-consistency-warnings",
		},
	}
}
