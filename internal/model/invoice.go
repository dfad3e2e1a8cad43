package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the canonical representation of a Croatian e-invoice.
// Instances are built atomically by the validator and treated as immutable
// afterwards; the UBL codec only reads them.
type Invoice struct {
	// ID is the invoice identifier, free text, unique per issuer.
	// Uniqueness is the issuer's responsibility, not enforced here.
	ID string

	// IssuedAt is the issue timestamp. It is rendered as separate
	// IssueDate and IssueTime elements in XML.
	IssuedAt time.Time

	// Operator is the person or process that produced the invoice.
	// Mandatory under the Croatian profile; carried in XML as a note,
	// not as a dedicated element.
	Operator string

	// Currency is the document currency. Only EUR is accepted.
	Currency CurrencyCode

	Supplier Party
	Customer Party

	TaxTotal      TaxTotal
	MonetaryTotal LegalMonetaryTotal

	// Lines is the ordered, non-empty sequence of invoice lines.
	Lines []InvoiceLine
}

// Party is a supplier or customer.
type Party struct {
	// TaxID is the party's OIB: 11 digits with an ISO 7064 MOD 11,10
	// check digit.
	TaxID string

	RegistrationName string

	Address   PostalAddress
	TaxScheme PartyTaxScheme
}

// PostalAddress is a party's registered address.
type PostalAddress struct {
	Street      string
	City        string
	PostalCode  string
	CountryCode string // ISO 3166-1 alpha-2
}

// PartyTaxScheme ties a party's composite tax identifier (e.g. "HR" + OIB)
// to a tax scheme. Only VAT is defined.
type PartyTaxScheme struct {
	CompanyID string
	Scheme    TaxSchemeID
}

// TaxTotal holds the document-level tax amount and its per-category
// breakdown.
type TaxTotal struct {
	TaxAmount decimal.Decimal
	Subtotals []TaxSubtotal // non-empty
}

// TaxSubtotal is one tax category's taxable base and tax amount.
type TaxSubtotal struct {
	TaxableAmount decimal.Decimal
	TaxAmount     decimal.Decimal
	Category      TaxCategory
}

// TaxCategory classifies a rate. Percent always matches the fixed percent
// of the category ID; the validator rejects anything else.
type TaxCategory struct {
	ID      TaxCategoryID
	Percent decimal.Decimal
	Scheme  TaxSchemeID
}

// LegalMonetaryTotal carries the four document totals.
// Invariants: TaxInclusiveAmount = TaxExclusiveAmount + TaxTotal.TaxAmount,
// and PayableAmount = TaxInclusiveAmount (no charges or allowances are
// modelled).
type LegalMonetaryTotal struct {
	LineExtensionAmount decimal.Decimal
	TaxExclusiveAmount  decimal.Decimal
	TaxInclusiveAmount  decimal.Decimal
	PayableAmount       decimal.Decimal
}

// InvoiceLine is one line of the invoice.
type InvoiceLine struct {
	// ID is unique within the invoice and order-preserving.
	ID string

	Quantity decimal.Decimal // positive
	Unit     UnitCode

	LineExtensionAmount decimal.Decimal

	Item  Item
	Price Price
}

// Item describes what a line sells.
type Item struct {
	Name        string
	TaxCategory TaxCategory
}

// Price is a line's unit price.
type Price struct {
	Amount decimal.Decimal
}
