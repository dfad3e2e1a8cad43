package server

import (
	"github.com/sa-hr/eracun/internal/model"
	"github.com/sa-hr/eracun/internal/ubl"
	"github.com/sa-hr/eracun/internal/validate"
)

// ValidateResponse is the response for the validate endpoint
type ValidateResponse struct {
	Valid    bool               `json:"valid"`
	Invoice  *model.Invoice     `json:"invoice,omitempty"`
	Errors   map[string]string  `json:"errors,omitempty"`
	Warnings []validate.Warning `json:"warnings,omitempty"`
}

// ParseResponse is the response for the parse endpoint
type ParseResponse struct {
	Invoice *ubl.ParsedInvoice `json:"invoice"`
}

// RoundTripResponse is the response for the roundtrip endpoint
type RoundTripResponse struct {
	XML      string             `json:"xml"`
	Invoice  *ubl.ParsedInvoice `json:"invoice"`
	Warnings []validate.Warning `json:"warnings,omitempty"`
}

// ExtractResponse is the response for the extract endpoint
type ExtractResponse struct {
	Raw map[string]any `json:"raw"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error    string            `json:"error"`
	Kind     string            `json:"kind,omitempty"`
	Path     string            `json:"path,omitempty"`
	Errors   map[string]string `json:"errors,omitempty"`
	Warnings []string          `json:"warnings,omitempty"`
}
