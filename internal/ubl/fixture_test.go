package ubl_test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sa-hr/eracun/internal/model"
)

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// testInvoice is a minimal valid invoice: one line, 100.00 net, 25.00 VAT.
func testInvoice() *model.Invoice {
	d := decimal.RequireFromString

	standard := model.TaxCategory{
		ID:      model.TaxCategoryStandardRate,
		Percent: d("25"),
		Scheme:  model.TaxSchemeVAT,
	}

	return &model.Invoice{
		ID:       "RAC-2026-0001",
		IssuedAt: time.Date(2026, 1, 18, 14, 30, 0, 0, time.UTC),
		Operator: "Ana Horvat",
		Currency: model.CurrencyEUR,
		Supplier: model.Party{
			TaxID:            "12345678903",
			RegistrationName: "Pekara Klas d.o.o.",
			Address: model.PostalAddress{
				Street:      "Ilica 42",
				City:        "Zagreb",
				PostalCode:  "10000",
				CountryCode: "HR",
			},
			TaxScheme: model.PartyTaxScheme{
				CompanyID: "HR12345678903",
				Scheme:    model.TaxSchemeVAT,
			},
		},
		Customer: model.Party{
			TaxID:            "98765432106",
			RegistrationName: "Konoba More d.o.o.",
			Address: model.PostalAddress{
				Street:      "Riva 7",
				City:        "Split",
				PostalCode:  "21000",
				CountryCode: "HR",
			},
			TaxScheme: model.PartyTaxScheme{
				CompanyID: "HR98765432106",
				Scheme:    model.TaxSchemeVAT,
			},
		},
		TaxTotal: model.TaxTotal{
			TaxAmount: d("25.00"),
			Subtotals: []model.TaxSubtotal{
				{
					TaxableAmount: d("100.00"),
					TaxAmount:     d("25.00"),
					Category:      standard,
				},
			},
		},
		MonetaryTotal: model.LegalMonetaryTotal{
			LineExtensionAmount: d("100.00"),
			TaxExclusiveAmount:  d("100.00"),
			TaxInclusiveAmount:  d("125.00"),
			PayableAmount:       d("125.00"),
		},
		Lines: []model.InvoiceLine{
			{
				ID:                  "1",
				Quantity:            d("10"),
				Unit:                model.UnitPiece,
				LineExtensionAmount: d("100.00"),
				Item: model.Item{
					Name:        "Kruh polubijeli 500g",
					TaxCategory: standard,
				},
				Price: model.Price{Amount: d("10.00")},
			},
		},
	}
}
