// Package eracun provides the public API for the Croatian e-invoice
// (eRačun) UBL 2.1 codec: validation of raw invoice data, generation of
// profile-compliant XML, and tolerant parsing of third-party documents.
//
// Every operation is a stateless pure function; concurrent calls need no
// coordination.
//
// Example usage:
//
//	xml, errs := eracun.Generate(raw)
//	if errs != nil {
//	    log.Fatal(errs)
//	}
//	parsed, perr := eracun.Parse(xml)
package eracun

import (
	"github.com/sa-hr/eracun/internal/model"
	"github.com/sa-hr/eracun/internal/ubl"
	"github.com/sa-hr/eracun/internal/validate"
)

// Re-export core types for the public API
type (
	Invoice            = model.Invoice
	Party              = model.Party
	PostalAddress      = model.PostalAddress
	PartyTaxScheme     = model.PartyTaxScheme
	TaxTotal           = model.TaxTotal
	TaxSubtotal        = model.TaxSubtotal
	TaxCategory        = model.TaxCategory
	LegalMonetaryTotal = model.LegalMonetaryTotal
	InvoiceLine        = model.InvoiceLine
	Item               = model.Item
	Price              = model.Price

	CurrencyCode  = model.CurrencyCode
	TaxCategoryID = model.TaxCategoryID
	TaxSchemeID   = model.TaxSchemeID
	UnitCode      = model.UnitCode

	FieldError  = model.FieldError
	FieldErrors = model.FieldErrors
	Reason      = model.Reason
	ParseError  = model.ParseError

	ParsedInvoice     = ubl.ParsedInvoice
	UnrecognizedToken = ubl.UnrecognizedToken
	Warning           = validate.Warning
)

// Re-export enum constants
const (
	CurrencyEUR = model.CurrencyEUR

	TaxCategoryStandardRate = model.TaxCategoryStandardRate
	TaxCategoryReducedRate  = model.TaxCategoryReducedRate
	TaxCategoryExempt       = model.TaxCategoryExempt

	TaxSchemeVAT = model.TaxSchemeVAT

	UnitPiece    = model.UnitPiece
	UnitKilogram = model.UnitKilogram
	UnitLitre    = model.UnitLitre
	UnitHour     = model.UnitHour
	UnitMetre    = model.UnitMetre
	UnitDay      = model.UnitDay
)

// Re-export error reasons and parse error kinds
const (
	ReasonMissing          = model.ReasonMissing
	ReasonInvalidType      = model.ReasonInvalidType
	ReasonInvalidEnumValue = model.ReasonInvalidEnumValue
	ReasonInvalidFormat    = model.ReasonInvalidFormat
	ReasonInconsistent     = model.ReasonInconsistent

	ParseMalformed           = model.ParseMalformed
	ParseWrongSchema         = model.ParseWrongSchema
	ParseMissingElement      = model.ParseMissingElement
	ParseUnsupportedEncoding = model.ParseUnsupportedEncoding
)
