package ubl_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sa-hr/eracun/internal/ubl"
)

func TestGenerate_Declaration(t *testing.T) {
	out := string(ubl.Generate(testInvoice()))
	assert.True(t, strings.HasPrefix(out, "<?xml"), "output must begin with an XML declaration")
	assert.Contains(t, out, `encoding="UTF-8"`)
}

func TestGenerate_Namespaces(t *testing.T) {
	out := string(ubl.Generate(testInvoice()))
	assert.Contains(t, out, ubl.NamespaceInvoice)
	assert.Contains(t, out, ubl.NamespaceCBC)
	assert.Contains(t, out, ubl.NamespaceCAC)
}

func TestGenerate_MandatedNotes(t *testing.T) {
	out := string(ubl.Generate(testInvoice()))
	assert.Contains(t, out, "<cbc:Note>Operator: Ana Horvat</cbc:Note>")
	assert.Contains(t, out, "<cbc:Note>Issued: 18.01.2026 14:30</cbc:Note>")
}

func TestGenerate_ElementOrder(t *testing.T) {
	out := string(ubl.Generate(testInvoice()))

	sequence := []string{
		"<cbc:ID>",
		"<cbc:IssueDate>",
		"<cbc:IssueTime>",
		"<cbc:DocumentCurrencyCode>",
		"<cbc:Note>",
		"<cac:AccountingSupplierParty>",
		"<cac:AccountingCustomerParty>",
		"<cac:TaxTotal>",
		"<cac:LegalMonetaryTotal>",
		"<cac:InvoiceLine>",
	}

	last := -1
	for _, marker := range sequence {
		idx := strings.Index(out, marker)
		require.GreaterOrEqual(t, idx, 0, "missing %s", marker)
		assert.Greater(t, idx, last, "%s out of order", marker)
		last = idx
	}
}

func TestGenerate_AmountsAlwaysTwoDigits(t *testing.T) {
	inv := testInvoice()
	// Amounts given without fractional digits must still render with two.
	inv.MonetaryTotal.LineExtensionAmount = decimal.RequireFromString("100")
	inv.MonetaryTotal.TaxExclusiveAmount = decimal.RequireFromString("100")
	inv.MonetaryTotal.TaxInclusiveAmount = decimal.RequireFromString("125")
	inv.MonetaryTotal.PayableAmount = decimal.RequireFromString("125")

	out := string(ubl.Generate(inv))
	assert.Contains(t, out, `<cbc:TaxExclusiveAmount currencyID="EUR">100.00</cbc:TaxExclusiveAmount>`)
	assert.Contains(t, out, `<cbc:TaxInclusiveAmount currencyID="EUR">125.00</cbc:TaxInclusiveAmount>`)
	assert.Contains(t, out, `<cbc:PayableAmount currencyID="EUR">125.00</cbc:PayableAmount>`)
}

func TestGenerate_DateAndTimeSplit(t *testing.T) {
	out := string(ubl.Generate(testInvoice()))
	assert.Contains(t, out, "<cbc:IssueDate>2026-01-18</cbc:IssueDate>")
	assert.Contains(t, out, "<cbc:IssueTime>14:30:00</cbc:IssueTime>")
}

func TestGenerate_EnumCodes(t *testing.T) {
	out := string(ubl.Generate(testInvoice()))
	assert.Contains(t, out, `unitCode="H87"`)
	assert.Contains(t, out, "<cbc:ID>S</cbc:ID>")    // standard rate category
	assert.Contains(t, out, "<cbc:ID>VAT</cbc:ID>")  // tax scheme
	assert.NotContains(t, out, "standard_rate")      // internal ids never leak
}

func TestGenerate_Deterministic(t *testing.T) {
	a := ubl.Generate(testInvoice())
	b := ubl.Generate(testInvoice())
	assert.Equal(t, a, b)
}

func TestGenerate_LinesInInputOrder(t *testing.T) {
	inv := testInvoice()
	second := inv.Lines[0]
	second.ID = "2"
	second.Item.Name = "Pecivo s makom"
	inv.Lines = append(inv.Lines, second)

	out := string(ubl.Generate(inv))
	first := strings.Index(out, "Kruh polubijeli 500g")
	next := strings.Index(out, "Pecivo s makom")
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, next, 0)
	assert.Less(t, first, next)
}
