package validate_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sa-hr/eracun/internal/model"
	"github.com/sa-hr/eracun/internal/validate"
)

// validRaw builds a minimal valid invoice: one line, 100.00 net, 25.00 VAT.
func validRaw() map[string]any {
	return map[string]any{
		"id":             "RAC-2026-0001",
		"issue_datetime": "2026-01-18T14:30:00",
		"operator_name":  "Ana Horvat",
		"currency_code":  "EUR",
		"supplier": map[string]any{
			"tax_id":            "12345678903",
			"registration_name": "Pekara Klas d.o.o.",
			"postal_address": map[string]any{
				"street":       "Ilica 42",
				"city":         "Zagreb",
				"postal_code":  "10000",
				"country_code": "HR",
			},
			"tax_scheme": map[string]any{
				"company_id": "HR12345678903",
				"scheme_id":  "vat",
			},
		},
		"customer": map[string]any{
			"tax_id":            "98765432106",
			"registration_name": "Konoba More d.o.o.",
			"postal_address": map[string]any{
				"street":       "Riva 7",
				"city":         "Split",
				"postal_code":  "21000",
				"country_code": "HR",
			},
			"tax_scheme": map[string]any{
				"company_id": "HR98765432106",
				"scheme_id":  "vat",
			},
		},
		"tax_total": map[string]any{
			"tax_amount": "25.00",
			"subtotals": []any{
				map[string]any{
					"taxable_amount": "100.00",
					"tax_amount":     "25.00",
					"category": map[string]any{
						"id":        "standard_rate",
						"percent":   "25",
						"scheme_id": "vat",
					},
				},
			},
		},
		"legal_monetary_total": map[string]any{
			"line_extension_amount": "100.00",
			"tax_exclusive_amount":  "100.00",
			"tax_inclusive_amount":  "125.00",
			"payable_amount":        "125.00",
		},
		"invoice_lines": []any{
			map[string]any{
				"id":                    "1",
				"quantity":              "10",
				"unit_code":             "piece",
				"line_extension_amount": "100.00",
				"item": map[string]any{
					"name": "Kruh polubijeli 500g",
					"tax_category": map[string]any{
						"id":        "standard_rate",
						"percent":   "25",
						"scheme_id": "vat",
					},
				},
				"price": map[string]any{
					"amount": "10.00",
				},
			},
		},
	}
}

func TestInvoice_Valid(t *testing.T) {
	result, errs := validate.Invoice(validRaw())
	require.True(t, errs.Empty(), "unexpected errors: %v", errs)
	require.NotNil(t, result)
	require.NotNil(t, result.Invoice)
	assert.Empty(t, result.Warnings)

	inv := result.Invoice
	assert.Equal(t, "RAC-2026-0001", inv.ID)
	assert.Equal(t, time.Date(2026, 1, 18, 14, 30, 0, 0, time.UTC), inv.IssuedAt)
	assert.Equal(t, "Ana Horvat", inv.Operator)
	assert.Equal(t, model.CurrencyEUR, inv.Currency)
	assert.Equal(t, "12345678903", inv.Supplier.TaxID)
	assert.Equal(t, "Zagreb", inv.Supplier.Address.City)
	assert.Equal(t, model.TaxSchemeVAT, inv.Supplier.TaxScheme.Scheme)
	require.Len(t, inv.TaxTotal.Subtotals, 1)
	assert.Equal(t, model.TaxCategoryStandardRate, inv.TaxTotal.Subtotals[0].Category.ID)
	require.Len(t, inv.Lines, 1)
	assert.Equal(t, model.UnitPiece, inv.Lines[0].Unit)
	assert.True(t, inv.Lines[0].Quantity.Equal(decimal.NewFromInt(10)))
	assert.True(t, inv.MonetaryTotal.PayableAmount.Equal(decimal.NewFromInt(125)))
}

func TestInvoice_EmptyInput(t *testing.T) {
	result, errs := validate.Invoice(map[string]any{})
	assert.Nil(t, result)
	require.False(t, errs.Empty())

	flat := errs.Flatten()
	for _, field := range []string{
		"id", "issue_datetime", "operator_name", "currency_code",
		"supplier", "customer", "tax_total", "legal_monetary_total", "invoice_lines",
	} {
		assert.Equal(t, model.ReasonMissing, flat[field], "field %s", field)
	}
}

func TestInvoice_CollectsAllErrors(t *testing.T) {
	raw := validRaw()
	delete(raw, "id")
	raw["currency_code"] = "HRK"
	raw["issue_datetime"] = "yesterday"

	result, errs := validate.Invoice(raw)
	assert.Nil(t, result)

	flat := errs.Flatten()
	assert.Equal(t, model.ReasonMissing, flat["id"])
	assert.Equal(t, model.ReasonInvalidEnumValue, flat["currency_code"])
	assert.Equal(t, model.ReasonInvalidFormat, flat["issue_datetime"])
	assert.Len(t, flat, 3, "no unrelated errors expected: %v", flat)
}

func TestInvoice_NestedPartyErrors(t *testing.T) {
	raw := validRaw()
	supplier := raw["supplier"].(map[string]any)
	supplier["tax_id"] = "12345678901" // wrong check digit
	addr := supplier["postal_address"].(map[string]any)
	delete(addr, "city")
	addr["country_code"] = "Croatia"

	result, errs := validate.Invoice(raw)
	assert.Nil(t, result)

	flat := errs.Flatten()
	assert.Equal(t, model.ReasonInvalidFormat, flat["supplier.tax_id"])
	assert.Equal(t, model.ReasonMissing, flat["supplier.postal_address.city"])
	assert.Equal(t, model.ReasonInvalidFormat, flat["supplier.postal_address.country_code"])
}

func TestInvoice_TypeErrors(t *testing.T) {
	raw := validRaw()
	raw["supplier"] = "not an object"
	raw["invoice_lines"] = "not a list"

	result, errs := validate.Invoice(raw)
	assert.Nil(t, result)

	flat := errs.Flatten()
	assert.Equal(t, model.ReasonInvalidType, flat["supplier"])
	assert.Equal(t, model.ReasonInvalidType, flat["invoice_lines"])
}

func TestInvoice_MonetaryTotalIdentity(t *testing.T) {
	raw := validRaw()
	lmt := raw["legal_monetary_total"].(map[string]any)
	lmt["tax_inclusive_amount"] = "130.00"

	result, errs := validate.Invoice(raw)
	assert.Nil(t, result)

	flat := errs.Flatten()
	assert.Equal(t, model.ReasonInconsistent, flat["legal_monetary_total.tax_inclusive_amount"])
	// payable no longer equals the (wrong) inclusive amount either
	assert.Equal(t, model.ReasonInconsistent, flat["legal_monetary_total.payable_amount"])
}

func TestInvoice_PayableMustMatchInclusive(t *testing.T) {
	raw := validRaw()
	lmt := raw["legal_monetary_total"].(map[string]any)
	lmt["payable_amount"] = "120.00"

	result, errs := validate.Invoice(raw)
	assert.Nil(t, result)
	assert.Equal(t, model.ReasonInconsistent, errs.Flatten()["legal_monetary_total.payable_amount"])
}

func TestInvoice_CrossCheckSkippedWhenFieldsInvalid(t *testing.T) {
	raw := validRaw()
	lmt := raw["legal_monetary_total"].(map[string]any)
	lmt["tax_inclusive_amount"] = "lots"

	result, errs := validate.Invoice(raw)
	assert.Nil(t, result)

	flat := errs.Flatten()
	assert.Equal(t, model.ReasonInvalidFormat, flat["legal_monetary_total.tax_inclusive_amount"])
	// identity check must not fire on a field that already failed
	_, crossFired := flat["legal_monetary_total.payable_amount"]
	assert.False(t, crossFired)
}

func TestInvoice_AmountScale(t *testing.T) {
	raw := validRaw()
	lines := raw["invoice_lines"].([]any)
	line := lines[0].(map[string]any)
	line["line_extension_amount"] = "100.005"

	result, errs := validate.Invoice(raw)
	assert.Nil(t, result)
	assert.Equal(t, model.ReasonInvalidFormat, errs.Flatten()["invoice_lines.0.line_extension_amount"])
}

func TestInvoice_NegativeAmount(t *testing.T) {
	raw := validRaw()
	tt := raw["tax_total"].(map[string]any)
	tt["tax_amount"] = "-25.00"

	result, errs := validate.Invoice(raw)
	assert.Nil(t, result)
	assert.Equal(t, model.ReasonInvalidFormat, errs.Flatten()["tax_total.tax_amount"])
}

func TestInvoice_EnumCaseSensitive(t *testing.T) {
	raw := validRaw()
	lines := raw["invoice_lines"].([]any)
	line := lines[0].(map[string]any)
	line["unit_code"] = "Piece"

	result, errs := validate.Invoice(raw)
	assert.Nil(t, result)
	assert.Equal(t, model.ReasonInvalidEnumValue, errs.Flatten()["invoice_lines.0.unit_code"])
}

func TestInvoice_CategoryPercentMismatch(t *testing.T) {
	raw := validRaw()
	tt := raw["tax_total"].(map[string]any)
	subs := tt["subtotals"].([]any)
	cat := subs[0].(map[string]any)["category"].(map[string]any)
	cat["percent"] = "13"

	result, errs := validate.Invoice(raw)
	assert.Nil(t, result)
	assert.Equal(t, model.ReasonInconsistent, errs.Flatten()["tax_total.subtotals.0.category.percent"])
}

func TestInvoice_DuplicateLineIDs(t *testing.T) {
	raw := validRaw()
	lines := raw["invoice_lines"].([]any)
	second := map[string]any{}
	for k, v := range lines[0].(map[string]any) {
		second[k] = v
	}
	raw["invoice_lines"] = append(lines, second)

	result, errs := validate.Invoice(raw)
	assert.Nil(t, result)
	assert.Equal(t, model.ReasonInconsistent, errs.Flatten()["invoice_lines.1.id"])
}

func TestInvoice_EmptyLines(t *testing.T) {
	raw := validRaw()
	raw["invoice_lines"] = []any{}

	result, errs := validate.Invoice(raw)
	assert.Nil(t, result)
	assert.Equal(t, model.ReasonMissing, errs.Flatten()["invoice_lines"])
}

func TestInvoice_EmptySubtotals(t *testing.T) {
	raw := validRaw()
	tt := raw["tax_total"].(map[string]any)
	tt["subtotals"] = []any{}

	result, errs := validate.Invoice(raw)
	assert.Nil(t, result)
	assert.Equal(t, model.ReasonMissing, errs.Flatten()["tax_total.subtotals"])
}

func TestInvoice_SubtotalArithmeticIsSoft(t *testing.T) {
	raw := validRaw()
	tt := raw["tax_total"].(map[string]any)
	subs := tt["subtotals"].([]any)
	sub := subs[0].(map[string]any)
	sub["tax_amount"] = "24.00"
	tt["tax_amount"] = "24.00"
	lmt := raw["legal_monetary_total"].(map[string]any)
	lmt["tax_inclusive_amount"] = "124.00"
	lmt["payable_amount"] = "124.00"

	result, errs := validate.Invoice(raw)
	require.True(t, errs.Empty(), "soft check must not reject: %v", errs)
	require.NotNil(t, result)
	require.NotEmpty(t, result.Warnings)
	assert.Equal(t, "tax_total.subtotals.0.tax_amount", result.Warnings[0].Field)
}

func TestInvoice_NumericInputTypes(t *testing.T) {
	raw := validRaw()
	lmt := raw["legal_monetary_total"].(map[string]any)
	lmt["line_extension_amount"] = float64(100)
	lmt["tax_exclusive_amount"] = 100
	lines := raw["invoice_lines"].([]any)
	line := lines[0].(map[string]any)
	line["quantity"] = float64(10)

	result, errs := validate.Invoice(raw)
	require.True(t, errs.Empty(), "unexpected errors: %v", errs)
	assert.True(t, result.Invoice.MonetaryTotal.LineExtensionAmount.Equal(decimal.NewFromInt(100)))
}

func TestInvoice_DateTimeFormats(t *testing.T) {
	formats := []string{
		"2026-01-18T14:30:00Z",
		"2026-01-18T14:30:00",
		"2026-01-18 14:30:00",
		"18.01.2026 14:30:00",
		"18.01.2026 14:30",
		"2026-01-18",
	}

	for _, input := range formats {
		t.Run(input, func(t *testing.T) {
			raw := validRaw()
			raw["issue_datetime"] = input
			result, errs := validate.Invoice(raw)
			require.True(t, errs.Empty(), "format %q rejected: %v", input, errs)
			assert.Equal(t, 2026, result.Invoice.IssuedAt.Year())
		})
	}
}
