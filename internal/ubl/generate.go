package ubl

import (
	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	money "github.com/sa-hr/eracun/internal/decimal"
	"github.com/sa-hr/eracun/internal/model"
)

// Generate renders a validated invoice into the profile's UBL document:
// UTF-8 XML with a declaration, the three fixed namespaces, and the element
// order mandated by the schema. It is total and deterministic: any invoice
// the validator produced renders successfully, so there is no error path.
func Generate(inv *model.Invoice) []byte {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("Invoice")
	root.CreateAttr("xmlns", NamespaceInvoice)
	root.CreateAttr("xmlns:cbc", NamespaceCBC)
	root.CreateAttr("xmlns:cac", NamespaceCAC)

	cbc(root, "ID", inv.ID)
	cbc(root, "IssueDate", inv.IssuedAt.Format(issueDateLayout))
	cbc(root, "IssueTime", inv.IssuedAt.Format(issueTimeLayout))
	cbc(root, "DocumentCurrencyCode", string(inv.Currency))
	cbc(root, "Note", OperatorNote(inv.Operator))
	cbc(root, "Note", IssuedNote(inv.IssuedAt))

	writeParty(cac(root, "AccountingSupplierParty"), inv.Supplier)
	writeParty(cac(root, "AccountingCustomerParty"), inv.Customer)
	writeTaxTotal(root, inv.TaxTotal, inv.Currency)
	writeMonetaryTotal(root, inv.MonetaryTotal, inv.Currency)
	for _, line := range inv.Lines {
		writeLine(root, line, inv.Currency)
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		// Serializing to an in-memory buffer cannot fail.
		panic(err)
	}
	return out
}

func cbc(parent *etree.Element, local, text string) *etree.Element {
	e := parent.CreateElement("cbc:" + local)
	e.SetText(text)
	return e
}

func cac(parent *etree.Element, local string) *etree.Element {
	return parent.CreateElement("cac:" + local)
}

// writeAmount renders a monetary amount with exactly two fractional digits
// and the currencyID attribute, regardless of input precision.
func writeAmount(parent *etree.Element, local string, d decimal.Decimal, currency model.CurrencyCode) {
	e := cbc(parent, local, money.Format(d))
	e.CreateAttr("currencyID", string(currency))
}

func writeParty(wrapper *etree.Element, party model.Party) {
	p := cac(wrapper, "Party")

	id := cac(p, "PartyIdentification")
	cbc(id, "ID", party.TaxID)

	addr := cac(p, "PostalAddress")
	cbc(addr, "StreetName", party.Address.Street)
	cbc(addr, "CityName", party.Address.City)
	cbc(addr, "PostalZone", party.Address.PostalCode)
	country := cac(addr, "Country")
	cbc(country, "IdentificationCode", party.Address.CountryCode)

	pts := cac(p, "PartyTaxScheme")
	cbc(pts, "CompanyID", party.TaxScheme.CompanyID)
	scheme := cac(pts, "TaxScheme")
	cbc(scheme, "ID", party.TaxScheme.Scheme.UBLCode())

	legal := cac(p, "PartyLegalEntity")
	cbc(legal, "RegistrationName", party.RegistrationName)
}

func writeTaxCategory(parent *etree.Element, local string, cat model.TaxCategory) {
	e := cac(parent, local)
	cbc(e, "ID", cat.ID.UBLCode())
	cbc(e, "Percent", cat.Percent.String())
	scheme := cac(e, "TaxScheme")
	cbc(scheme, "ID", cat.Scheme.UBLCode())
}

func writeTaxTotal(root *etree.Element, tt model.TaxTotal, currency model.CurrencyCode) {
	e := cac(root, "TaxTotal")
	writeAmount(e, "TaxAmount", tt.TaxAmount, currency)
	for _, sub := range tt.Subtotals {
		s := cac(e, "TaxSubtotal")
		writeAmount(s, "TaxableAmount", sub.TaxableAmount, currency)
		writeAmount(s, "TaxAmount", sub.TaxAmount, currency)
		writeTaxCategory(s, "TaxCategory", sub.Category)
	}
}

func writeMonetaryTotal(root *etree.Element, lmt model.LegalMonetaryTotal, currency model.CurrencyCode) {
	e := cac(root, "LegalMonetaryTotal")
	writeAmount(e, "LineExtensionAmount", lmt.LineExtensionAmount, currency)
	writeAmount(e, "TaxExclusiveAmount", lmt.TaxExclusiveAmount, currency)
	writeAmount(e, "TaxInclusiveAmount", lmt.TaxInclusiveAmount, currency)
	writeAmount(e, "PayableAmount", lmt.PayableAmount, currency)
}

func writeLine(root *etree.Element, line model.InvoiceLine, currency model.CurrencyCode) {
	e := cac(root, "InvoiceLine")
	cbc(e, "ID", line.ID)

	qty := cbc(e, "InvoicedQuantity", line.Quantity.String())
	qty.CreateAttr("unitCode", line.Unit.UBLCode())

	writeAmount(e, "LineExtensionAmount", line.LineExtensionAmount, currency)

	item := cac(e, "Item")
	cbc(item, "Name", line.Item.Name)
	writeTaxCategory(item, "ClassifiedTaxCategory", line.Item.TaxCategory)

	price := cac(e, "Price")
	writeAmount(price, "PriceAmount", line.Price.Amount, currency)
}
