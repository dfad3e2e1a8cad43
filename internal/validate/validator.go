// Package validate checks loosely typed invoice input against the Croatian
// profile's field rules and normalizes it into the canonical model.
//
// The pass is accumulating: every violation across the whole tree is
// collected before returning, never just the first one. Nested entities
// produce nested error trees mirroring the input shape. A model is only
// returned when the tree is completely clean; callers never see a
// partially populated invoice.
package validate

import (
	"fmt"
	"regexp"
	"strconv"

	money "github.com/sa-hr/eracun/internal/decimal"
	"github.com/sa-hr/eracun/internal/model"
)

// Warning is a soft finding: reported, never blocking. Used for the
// advisory subtotal percent/amount consistency checks, which stop short of
// recomputing tax law.
type Warning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result is a successful validation outcome.
type Result struct {
	Invoice  *model.Invoice
	Warnings []Warning
}

var countryCodeRe = regexp.MustCompile(`^[A-Z]{2}$`)

// Invoice validates the raw key/value tree and builds the canonical model.
// On any error the full error tree is returned and the Result is nil.
func Invoice(raw map[string]any) (*Result, model.FieldErrors) {
	errs := model.FieldErrors{}
	inv := &model.Invoice{}
	var warnings []Warning

	if s, ok := stringField(raw, "id", errs); ok {
		inv.ID = s
	}
	if ts, ok := dateTimeField(raw, "issue_datetime", errs); ok {
		inv.IssuedAt = ts
	}
	if s, ok := stringField(raw, "operator_name", errs); ok {
		inv.Operator = s
	}
	if s, ok := stringField(raw, "currency_code", errs); ok {
		c := model.CurrencyCode(s)
		if !c.Valid() {
			errs.Add("currency_code", model.ReasonInvalidEnumValue,
				fmt.Sprintf("unsupported currency %q, accepted: %v", s, model.SupportedCurrencies()))
		} else {
			inv.Currency = c
		}
	}

	if m, ok := mapField(raw, "supplier", errs); ok {
		party, pErrs := validateParty(m)
		if pErrs.Empty() {
			inv.Supplier = *party
		} else {
			errs.Merge("supplier", pErrs)
		}
	}
	if m, ok := mapField(raw, "customer", errs); ok {
		party, pErrs := validateParty(m)
		if pErrs.Empty() {
			inv.Customer = *party
		} else {
			errs.Merge("customer", pErrs)
		}
	}

	taxTotalOK := false
	if m, ok := mapField(raw, "tax_total", errs); ok {
		tt, tErrs, tWarnings := validateTaxTotal(m)
		if tErrs.Empty() {
			inv.TaxTotal = *tt
			taxTotalOK = true
			warnings = append(warnings, tWarnings...)
		} else {
			errs.Merge("tax_total", tErrs)
		}
	}

	totalsOK := false
	if m, ok := mapField(raw, "legal_monetary_total", errs); ok {
		lmt, lErrs := validateMonetaryTotal(m)
		if lErrs.Empty() {
			inv.MonetaryTotal = *lmt
			totalsOK = true
		} else {
			errs.Merge("legal_monetary_total", lErrs)
		}
	}

	if list, ok := listField(raw, "invoice_lines", errs); ok {
		if len(list) == 0 {
			errs.Add("invoice_lines", model.ReasonMissing, "at least one invoice line is required")
		} else {
			lineErrs := model.FieldErrors{}
			seen := map[string]int{}
			for i, entry := range list {
				key := strconv.Itoa(i)
				m, isMap := entry.(map[string]any)
				if !isMap {
					lineErrs.Add(key, model.ReasonInvalidType, fmt.Sprintf("expected object, got %T", entry))
					continue
				}
				line, lErrs := validateLine(m)
				if !lErrs.Empty() {
					lineErrs.Merge(key, lErrs)
					continue
				}
				if prev, dup := seen[line.ID]; dup {
					sub := model.FieldErrors{}
					sub.Add("id", model.ReasonInconsistent,
						fmt.Sprintf("line id %q already used by line %d", line.ID, prev))
					lineErrs.Merge(key, sub)
					continue
				}
				seen[line.ID] = i
				inv.Lines = append(inv.Lines, *line)
			}
			errs.Merge("invoice_lines", lineErrs)
		}
	}

	// Cross-field checks run only once every involved field validated clean.
	if totalsOK {
		cross := model.FieldErrors{}
		if taxTotalOK {
			want := inv.MonetaryTotal.TaxExclusiveAmount.Add(inv.TaxTotal.TaxAmount)
			if !inv.MonetaryTotal.TaxInclusiveAmount.Equal(want) {
				cross.Add("tax_inclusive_amount", model.ReasonInconsistent,
					fmt.Sprintf("tax_inclusive_amount %s must equal tax_exclusive_amount %s + tax amount %s",
						money.Format(inv.MonetaryTotal.TaxInclusiveAmount),
						money.Format(inv.MonetaryTotal.TaxExclusiveAmount),
						money.Format(inv.TaxTotal.TaxAmount)))
			}
		}
		if !inv.MonetaryTotal.PayableAmount.Equal(inv.MonetaryTotal.TaxInclusiveAmount) {
			cross.Add("payable_amount", model.ReasonInconsistent,
				fmt.Sprintf("payable_amount %s must equal tax_inclusive_amount %s",
					money.Format(inv.MonetaryTotal.PayableAmount),
					money.Format(inv.MonetaryTotal.TaxInclusiveAmount)))
		}
		errs.Merge("legal_monetary_total", cross)
	}

	if !errs.Empty() {
		return nil, errs
	}
	return &Result{Invoice: inv, Warnings: warnings}, nil
}

func validateParty(raw map[string]any) (*model.Party, model.FieldErrors) {
	errs := model.FieldErrors{}
	party := &model.Party{}

	if s, ok := stringField(raw, "tax_id", errs); ok {
		if !ValidOIB(s) {
			errs.Add("tax_id", model.ReasonInvalidFormat, "OIB must be 11 digits with a valid check digit")
		} else {
			party.TaxID = s
		}
	}
	if s, ok := stringField(raw, "registration_name", errs); ok {
		party.RegistrationName = s
	}

	if m, ok := mapField(raw, "postal_address", errs); ok {
		addrErrs := model.FieldErrors{}
		if s, ok := stringField(m, "street", addrErrs); ok {
			party.Address.Street = s
		}
		if s, ok := stringField(m, "city", addrErrs); ok {
			party.Address.City = s
		}
		if s, ok := stringField(m, "postal_code", addrErrs); ok {
			party.Address.PostalCode = s
		}
		if s, ok := stringField(m, "country_code", addrErrs); ok {
			if !countryCodeRe.MatchString(s) {
				addrErrs.Add("country_code", model.ReasonInvalidFormat, "expected two-letter ISO 3166-1 code")
			} else {
				party.Address.CountryCode = s
			}
		}
		errs.Merge("postal_address", addrErrs)
	}

	if m, ok := mapField(raw, "tax_scheme", errs); ok {
		schemeErrs := model.FieldErrors{}
		if s, ok := stringField(m, "company_id", schemeErrs); ok {
			party.TaxScheme.CompanyID = s
		}
		if s, ok := stringField(m, "scheme_id", schemeErrs); ok {
			id := model.TaxSchemeID(s)
			if !id.Valid() {
				schemeErrs.Add("scheme_id", model.ReasonInvalidEnumValue, fmt.Sprintf("unknown tax scheme %q", s))
			} else {
				party.TaxScheme.Scheme = id
			}
		}
		errs.Merge("tax_scheme", schemeErrs)
	}

	return party, errs
}

func validateTaxTotal(raw map[string]any) (*model.TaxTotal, model.FieldErrors, []Warning) {
	errs := model.FieldErrors{}
	tt := &model.TaxTotal{}
	var warnings []Warning

	totalOK := false
	if d, ok := amountField(raw, "tax_amount", errs); ok {
		tt.TaxAmount = d
		totalOK = true
	}

	list, ok := listField(raw, "subtotals", errs)
	if !ok {
		return tt, errs, nil
	}
	if len(list) == 0 {
		errs.Add("subtotals", model.ReasonMissing, "at least one tax subtotal is required")
		return tt, errs, nil
	}

	subErrs := model.FieldErrors{}
	for i, entry := range list {
		key := strconv.Itoa(i)
		m, isMap := entry.(map[string]any)
		if !isMap {
			subErrs.Add(key, model.ReasonInvalidType, fmt.Sprintf("expected object, got %T", entry))
			continue
		}
		sub, sErrs := validateTaxSubtotal(m)
		if !sErrs.Empty() {
			subErrs.Merge(key, sErrs)
			continue
		}
		tt.Subtotals = append(tt.Subtotals, *sub)

		// Advisory only: tax arithmetic under law is out of scope.
		expected := money.Percentage(sub.TaxableAmount, sub.Category.Percent)
		if !expected.Equal(sub.TaxAmount) {
			warnings = append(warnings, Warning{
				Field: "tax_total.subtotals." + key + ".tax_amount",
				Message: fmt.Sprintf("tax amount %s does not match taxable amount %s at %s%% (expected %s)",
					money.Format(sub.TaxAmount), money.Format(sub.TaxableAmount),
					sub.Category.Percent.String(), money.Format(expected)),
			})
		}
	}
	errs.Merge("subtotals", subErrs)

	if totalOK && errs.Empty() && len(tt.Subtotals) > 0 {
		var amounts []string
		sum := money.Zero
		for _, sub := range tt.Subtotals {
			sum = sum.Add(sub.TaxAmount)
			amounts = append(amounts, money.Format(sub.TaxAmount))
		}
		if !sum.Equal(tt.TaxAmount) {
			warnings = append(warnings, Warning{
				Field: "tax_total.tax_amount",
				Message: fmt.Sprintf("tax amount %s does not match subtotal sum %s (%v)",
					money.Format(tt.TaxAmount), money.Format(sum), amounts),
			})
		}
	}

	return tt, errs, warnings
}

func validateTaxSubtotal(raw map[string]any) (*model.TaxSubtotal, model.FieldErrors) {
	errs := model.FieldErrors{}
	sub := &model.TaxSubtotal{}

	if d, ok := amountField(raw, "taxable_amount", errs); ok {
		sub.TaxableAmount = d
	}
	if d, ok := amountField(raw, "tax_amount", errs); ok {
		sub.TaxAmount = d
	}
	if m, ok := mapField(raw, "category", errs); ok {
		cat, cErrs := validateTaxCategory(m)
		if cErrs.Empty() {
			sub.Category = *cat
		} else {
			errs.Merge("category", cErrs)
		}
	}

	return sub, errs
}

func validateTaxCategory(raw map[string]any) (*model.TaxCategory, model.FieldErrors) {
	errs := model.FieldErrors{}
	cat := &model.TaxCategory{}

	idOK := false
	if s, ok := stringField(raw, "id", errs); ok {
		// Enum matching is case-sensitive.
		id := model.TaxCategoryID(s)
		if !id.Valid() {
			errs.Add("id", model.ReasonInvalidEnumValue, fmt.Sprintf("unknown tax category %q", s))
		} else {
			cat.ID = id
			idOK = true
		}
	}
	if d, ok := decimalField(raw, "percent", errs); ok {
		if !money.IsNonNegative(d) {
			errs.Add("percent", model.ReasonInvalidFormat, "percent must be non-negative")
		} else if idOK && !d.Equal(cat.ID.Percent()) {
			errs.Add("percent", model.ReasonInconsistent,
				fmt.Sprintf("percent %s does not match %s (fixed at %s%%)",
					d.String(), cat.ID, cat.ID.Percent().String()))
		} else {
			cat.Percent = d
		}
	}
	if s, ok := stringField(raw, "scheme_id", errs); ok {
		id := model.TaxSchemeID(s)
		if !id.Valid() {
			errs.Add("scheme_id", model.ReasonInvalidEnumValue, fmt.Sprintf("unknown tax scheme %q", s))
		} else {
			cat.Scheme = id
		}
	}

	return cat, errs
}

func validateMonetaryTotal(raw map[string]any) (*model.LegalMonetaryTotal, model.FieldErrors) {
	errs := model.FieldErrors{}
	lmt := &model.LegalMonetaryTotal{}

	if d, ok := amountField(raw, "line_extension_amount", errs); ok {
		lmt.LineExtensionAmount = d
	}
	if d, ok := amountField(raw, "tax_exclusive_amount", errs); ok {
		lmt.TaxExclusiveAmount = d
	}
	if d, ok := amountField(raw, "tax_inclusive_amount", errs); ok {
		lmt.TaxInclusiveAmount = d
	}
	if d, ok := amountField(raw, "payable_amount", errs); ok {
		lmt.PayableAmount = d
	}

	return lmt, errs
}

func validateLine(raw map[string]any) (*model.InvoiceLine, model.FieldErrors) {
	errs := model.FieldErrors{}
	line := &model.InvoiceLine{}

	if s, ok := stringField(raw, "id", errs); ok {
		line.ID = s
	}
	if d, ok := decimalField(raw, "quantity", errs); ok {
		if !money.IsPositive(d) {
			errs.Add("quantity", model.ReasonInvalidFormat, "quantity must be positive")
		} else {
			line.Quantity = d
		}
	}
	if s, ok := stringField(raw, "unit_code", errs); ok {
		u := model.UnitCode(s)
		if !u.Valid() {
			errs.Add("unit_code", model.ReasonInvalidEnumValue, fmt.Sprintf("unknown unit %q", s))
		} else {
			line.Unit = u
		}
	}
	if d, ok := amountField(raw, "line_extension_amount", errs); ok {
		line.LineExtensionAmount = d
	}

	if m, ok := mapField(raw, "item", errs); ok {
		itemErrs := model.FieldErrors{}
		if s, ok := stringField(m, "name", itemErrs); ok {
			line.Item.Name = s
		}
		if cm, ok := mapField(m, "tax_category", itemErrs); ok {
			cat, cErrs := validateTaxCategory(cm)
			if cErrs.Empty() {
				line.Item.TaxCategory = *cat
			} else {
				itemErrs.Merge("tax_category", cErrs)
			}
		}
		errs.Merge("item", itemErrs)
	}

	if m, ok := mapField(raw, "price", errs); ok {
		priceErrs := model.FieldErrors{}
		if d, ok := amountField(m, "amount", priceErrs); ok {
			line.Price.Amount = d
		}
		errs.Merge("price", priceErrs)
	}

	return line, errs
}
