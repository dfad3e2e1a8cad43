package model

import "github.com/shopspring/decimal"

// Closed enumerations of the Croatian profile and their mappings to the
// published UBL code lists. These tables are the single source of truth:
// the generator and the parser both go through them, so the two directions
// cannot drift apart.

// CurrencyCode is the document currency. The profile mandates EUR.
type CurrencyCode string

// CurrencyEUR is the only accepted currency.
const CurrencyEUR CurrencyCode = "EUR"

// Valid reports whether the currency is in the accepted set.
func (c CurrencyCode) Valid() bool {
	return c == CurrencyEUR
}

// SupportedCurrencies lists every accepted currency code.
func SupportedCurrencies() []string {
	return []string{string(CurrencyEUR)}
}

// TaxSchemeID identifies a tax scheme. Only VAT is defined.
type TaxSchemeID string

// TaxSchemeVAT is the VAT scheme.
const TaxSchemeVAT TaxSchemeID = "vat"

var taxSchemeCodes = map[TaxSchemeID]string{
	TaxSchemeVAT: "VAT",
}

// Valid reports whether the scheme is in the closed set.
func (s TaxSchemeID) Valid() bool {
	_, ok := taxSchemeCodes[s]
	return ok
}

// UBLCode returns the UBL TaxScheme/ID token for the scheme.
func (s TaxSchemeID) UBLCode() string {
	return taxSchemeCodes[s]
}

// TaxSchemeByUBLCode inverts UBLCode.
func TaxSchemeByUBLCode(code string) (TaxSchemeID, bool) {
	for id, c := range taxSchemeCodes {
		if c == code {
			return id, true
		}
	}
	return "", false
}

// TaxCategoryID classifies a VAT rate.
type TaxCategoryID string

// Tax categories defined by the profile.
const (
	TaxCategoryStandardRate TaxCategoryID = "standard_rate"
	TaxCategoryReducedRate  TaxCategoryID = "reduced_rate"
	TaxCategoryExempt       TaxCategoryID = "exempt"
)

type taxCategorySpec struct {
	ublCode string
	percent decimal.Decimal
}

var taxCategories = map[TaxCategoryID]taxCategorySpec{
	TaxCategoryStandardRate: {ublCode: "S", percent: decimal.NewFromInt(25)},
	TaxCategoryReducedRate:  {ublCode: "AA", percent: decimal.NewFromInt(13)},
	TaxCategoryExempt:       {ublCode: "E", percent: decimal.Zero},
}

// Valid reports whether the category is in the closed set.
func (id TaxCategoryID) Valid() bool {
	_, ok := taxCategories[id]
	return ok
}

// UBLCode returns the UBL 5305 category code for the category.
func (id TaxCategoryID) UBLCode() string {
	return taxCategories[id].ublCode
}

// Percent returns the fixed percent tied to the category.
func (id TaxCategoryID) Percent() decimal.Decimal {
	return taxCategories[id].percent
}

// TaxCategoryByUBLCode inverts UBLCode.
func TaxCategoryByUBLCode(code string) (TaxCategoryID, bool) {
	for id, spec := range taxCategories {
		if spec.ublCode == code {
			return id, true
		}
	}
	return "", false
}

// TaxCategoryIDs returns all category IDs in a stable order.
func TaxCategoryIDs() []TaxCategoryID {
	return []TaxCategoryID{TaxCategoryStandardRate, TaxCategoryReducedRate, TaxCategoryExempt}
}

// UnitCode is a unit of measure.
type UnitCode string

// Units accepted by the profile, mapped to UN/ECE Recommendation 20 tokens.
const (
	UnitPiece    UnitCode = "piece"
	UnitKilogram UnitCode = "kilogram"
	UnitLitre    UnitCode = "litre"
	UnitHour     UnitCode = "hour"
	UnitMetre    UnitCode = "metre"
	UnitDay      UnitCode = "day"
)

var unitCodes = map[UnitCode]string{
	UnitPiece:    "H87",
	UnitKilogram: "KGM",
	UnitLitre:    "LTR",
	UnitHour:     "HUR",
	UnitMetre:    "MTR",
	UnitDay:      "DAY",
}

// Valid reports whether the unit is in the closed set.
func (u UnitCode) Valid() bool {
	_, ok := unitCodes[u]
	return ok
}

// UBLCode returns the UN/ECE Rec 20 token for the unit.
func (u UnitCode) UBLCode() string {
	return unitCodes[u]
}

// UnitByUBLCode inverts UBLCode.
func UnitByUBLCode(code string) (UnitCode, bool) {
	for u, c := range unitCodes {
		if c == code {
			return u, true
		}
	}
	return "", false
}
