package ubl

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/sa-hr/eracun/internal/model"
)

// MaxDocumentSize bounds accepted XML input. Anything larger is rejected
// before parsing so adversarial documents cannot exhaust memory.
const MaxDocumentSize = 10 << 20

// ParsedInvoice is the schema-model-shaped result of decoding a document.
// Parsing is best-effort structural recovery: it does not re-run
// validation, and enum tokens from third-party documents that fall outside
// the closed sets are kept verbatim and listed in Unrecognized so a later
// validation pass can decide about them.
type ParsedInvoice struct {
	ID       string
	IssuedAt time.Time

	// Operator is recovered from the mandated "Operator: " note.
	Operator string

	// NoteIssuedAt is the timestamp recovered from the mandated issue
	// note, kept separate so callers can confirm it against IssuedAt.
	NoteIssuedAt time.Time

	Currency model.CurrencyCode

	// ExtraNotes preserves notes that matched neither mandated prefix.
	ExtraNotes []string

	Supplier model.Party
	Customer model.Party

	TaxTotal      model.TaxTotal
	MonetaryTotal model.LegalMonetaryTotal
	Lines         []model.InvoiceLine

	// Unrecognized lists enum tokens found outside the closed sets.
	Unrecognized []UnrecognizedToken
}

// UnrecognizedToken is an enum token a third-party document carried that is
// not in the profile's closed set. The raw token is preserved at its path.
type UnrecognizedToken struct {
	Path  string
	Token string
}

func (p *ParsedInvoice) flag(path, token string) {
	p.Unrecognized = append(p.Unrecognized, UnrecognizedToken{Path: path, Token: token})
}

var encodingDeclRe = regexp.MustCompile(`<\?xml[^?]*encoding=["']([^"']+)["']`)

// Parse decodes a UBL invoice document. Lookup is by (namespace URI, local
// name) only; the prefix spelling chosen by the producer is irrelevant.
func Parse(data []byte) (*ParsedInvoice, *model.ParseError) {
	if len(data) == 0 {
		return nil, model.NewParseError(model.ParseMalformed, "", "empty document", nil)
	}
	if len(data) > MaxDocumentSize {
		return nil, model.NewParseError(model.ParseMalformed, "", "document exceeds size limit", nil)
	}
	if !utf8.Valid(data) {
		return nil, model.NewParseError(model.ParseUnsupportedEncoding, "", "document is not valid UTF-8", nil)
	}
	if m := encodingDeclRe.FindSubmatch(data); m != nil {
		if enc := string(m[1]); !strings.EqualFold(enc, "UTF-8") {
			return nil, model.NewParseError(model.ParseUnsupportedEncoding, "",
				"declared encoding "+enc+" is not supported", nil)
		}
	}

	// etree resolves no external entities and follows no external
	// references; undeclared entities fail the read.
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, model.NewParseError(model.ParseMalformed, "", "not well-formed XML", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, model.NewParseError(model.ParseMalformed, "", "no root element", nil)
	}
	if root.Tag != "Invoice" || root.NamespaceURI() != NamespaceInvoice {
		return nil, model.NewParseError(model.ParseWrongSchema, root.Tag,
			"root element is not a UBL Invoice in namespace "+NamespaceInvoice, nil)
	}

	p := &ParsedInvoice{}

	var perr *model.ParseError
	if p.ID, perr = requireText(root, NamespaceCBC, "ID", "ID"); perr != nil {
		return nil, perr
	}
	dateStr, perr := requireText(root, NamespaceCBC, "IssueDate", "IssueDate")
	if perr != nil {
		return nil, perr
	}
	timeStr, perr := requireText(root, NamespaceCBC, "IssueTime", "IssueTime")
	if perr != nil {
		return nil, perr
	}
	issuedAt, err := time.Parse(issueDateLayout+"T"+issueTimeLayout, dateStr+"T"+timeStr)
	if err != nil {
		return nil, model.NewParseError(model.ParseMalformed, "IssueDate", "unparseable issue date/time", err)
	}
	p.IssuedAt = issuedAt

	currency, perr := requireText(root, NamespaceCBC, "DocumentCurrencyCode", "DocumentCurrencyCode")
	if perr != nil {
		return nil, perr
	}
	p.Currency = model.CurrencyCode(currency)
	if !p.Currency.Valid() {
		p.flag("DocumentCurrencyCode", currency)
	}

	if perr = p.parseNotes(root); perr != nil {
		return nil, perr
	}

	if p.Supplier, perr = p.parseParty(root, "AccountingSupplierParty"); perr != nil {
		return nil, perr
	}
	if p.Customer, perr = p.parseParty(root, "AccountingCustomerParty"); perr != nil {
		return nil, perr
	}
	if perr = p.parseTaxTotal(root); perr != nil {
		return nil, perr
	}
	if perr = p.parseMonetaryTotal(root); perr != nil {
		return nil, perr
	}
	if perr = p.parseLines(root); perr != nil {
		return nil, perr
	}

	return p, nil
}

// parseNotes locates the two mandated notes among possibly many note
// elements by their literal prefixes and decomposes them; everything else
// is preserved verbatim.
func (p *ParsedInvoice) parseNotes(root *etree.Element) *model.ParseError {
	operatorFound := false
	issuedFound := false
	for _, note := range findChildren(root, NamespaceCBC, "Note") {
		text := note.Text()
		if operator, ok := SplitOperatorNote(text); ok && !operatorFound {
			p.Operator = operator
			operatorFound = true
			continue
		}
		if ts, ok := SplitIssuedNote(text); ok && !issuedFound {
			p.NoteIssuedAt = ts
			issuedFound = true
			continue
		}
		p.ExtraNotes = append(p.ExtraNotes, text)
	}
	if !operatorFound {
		return model.NewMissingElement("Note[" + strings.TrimSpace(OperatorNotePrefix) + "]")
	}
	if !issuedFound {
		return model.NewMissingElement("Note[" + strings.TrimSpace(IssuedNotePrefix) + "]")
	}
	return nil
}

func (p *ParsedInvoice) parseParty(root *etree.Element, wrapperName string) (model.Party, *model.ParseError) {
	var party model.Party

	wrapper := findChild(root, NamespaceCAC, wrapperName)
	if wrapper == nil {
		return party, model.NewMissingElement(wrapperName)
	}
	base := wrapperName + "/Party"
	pe := findChild(wrapper, NamespaceCAC, "Party")
	if pe == nil {
		return party, model.NewMissingElement(base)
	}

	id := findChild(pe, NamespaceCAC, "PartyIdentification")
	if id == nil {
		return party, model.NewMissingElement(base + "/PartyIdentification")
	}
	var perr *model.ParseError
	if party.TaxID, perr = requireText(id, NamespaceCBC, "ID", base+"/PartyIdentification/ID"); perr != nil {
		return party, perr
	}

	addr := findChild(pe, NamespaceCAC, "PostalAddress")
	if addr == nil {
		return party, model.NewMissingElement(base + "/PostalAddress")
	}
	addrBase := base + "/PostalAddress"
	if party.Address.Street, perr = requireText(addr, NamespaceCBC, "StreetName", addrBase+"/StreetName"); perr != nil {
		return party, perr
	}
	if party.Address.City, perr = requireText(addr, NamespaceCBC, "CityName", addrBase+"/CityName"); perr != nil {
		return party, perr
	}
	if party.Address.PostalCode, perr = requireText(addr, NamespaceCBC, "PostalZone", addrBase+"/PostalZone"); perr != nil {
		return party, perr
	}
	country := findChild(addr, NamespaceCAC, "Country")
	if country == nil {
		return party, model.NewMissingElement(addrBase + "/Country")
	}
	if party.Address.CountryCode, perr = requireText(country, NamespaceCBC, "IdentificationCode", addrBase+"/Country/IdentificationCode"); perr != nil {
		return party, perr
	}

	pts := findChild(pe, NamespaceCAC, "PartyTaxScheme")
	if pts == nil {
		return party, model.NewMissingElement(base + "/PartyTaxScheme")
	}
	if party.TaxScheme.CompanyID, perr = requireText(pts, NamespaceCBC, "CompanyID", base+"/PartyTaxScheme/CompanyID"); perr != nil {
		return party, perr
	}
	schemePath := base + "/PartyTaxScheme/TaxScheme"
	scheme := findChild(pts, NamespaceCAC, "TaxScheme")
	if scheme == nil {
		return party, model.NewMissingElement(schemePath)
	}
	code, perr := requireText(scheme, NamespaceCBC, "ID", schemePath+"/ID")
	if perr != nil {
		return party, perr
	}
	party.TaxScheme.Scheme = p.taxScheme(code, schemePath+"/ID")

	legal := findChild(pe, NamespaceCAC, "PartyLegalEntity")
	if legal == nil {
		return party, model.NewMissingElement(base + "/PartyLegalEntity")
	}
	if party.RegistrationName, perr = requireText(legal, NamespaceCBC, "RegistrationName", base+"/PartyLegalEntity/RegistrationName"); perr != nil {
		return party, perr
	}

	return party, nil
}

func (p *ParsedInvoice) parseTaxTotal(root *etree.Element) *model.ParseError {
	tt := findChild(root, NamespaceCAC, "TaxTotal")
	if tt == nil {
		return model.NewMissingElement("TaxTotal")
	}
	amount, perr := requireAmount(tt, "TaxAmount", "TaxTotal/TaxAmount")
	if perr != nil {
		return perr
	}
	p.TaxTotal.TaxAmount = amount

	subs := findChildren(tt, NamespaceCAC, "TaxSubtotal")
	if len(subs) == 0 {
		return model.NewMissingElement("TaxTotal/TaxSubtotal")
	}
	for i, se := range subs {
		base := "TaxTotal/TaxSubtotal[" + strconv.Itoa(i) + "]"
		var sub model.TaxSubtotal
		if sub.TaxableAmount, perr = requireAmount(se, "TaxableAmount", base+"/TaxableAmount"); perr != nil {
			return perr
		}
		if sub.TaxAmount, perr = requireAmount(se, "TaxAmount", base+"/TaxAmount"); perr != nil {
			return perr
		}
		if sub.Category, perr = p.parseTaxCategory(se, "TaxCategory", base+"/TaxCategory"); perr != nil {
			return perr
		}
		p.TaxTotal.Subtotals = append(p.TaxTotal.Subtotals, sub)
	}
	return nil
}

func (p *ParsedInvoice) parseTaxCategory(parent *etree.Element, local, base string) (model.TaxCategory, *model.ParseError) {
	var cat model.TaxCategory

	ce := findChild(parent, NamespaceCAC, local)
	if ce == nil {
		return cat, model.NewMissingElement(base)
	}
	code, perr := requireText(ce, NamespaceCBC, "ID", base+"/ID")
	if perr != nil {
		return cat, perr
	}
	if id, ok := model.TaxCategoryByUBLCode(code); ok {
		cat.ID = id
	} else {
		// Preserve the raw token; validation decides later.
		cat.ID = model.TaxCategoryID(code)
		p.flag(base+"/ID", code)
	}

	percentStr, perr := requireText(ce, NamespaceCBC, "Percent", base+"/Percent")
	if perr != nil {
		return cat, perr
	}
	percent, err := decimal.NewFromString(percentStr)
	if err != nil {
		return cat, model.NewParseError(model.ParseMalformed, base+"/Percent", "unparseable percent", err)
	}
	cat.Percent = percent

	schemePath := base + "/TaxScheme"
	scheme := findChild(ce, NamespaceCAC, "TaxScheme")
	if scheme == nil {
		return cat, model.NewMissingElement(schemePath)
	}
	schemeCode, perr := requireText(scheme, NamespaceCBC, "ID", schemePath+"/ID")
	if perr != nil {
		return cat, perr
	}
	cat.Scheme = p.taxScheme(schemeCode, schemePath+"/ID")

	return cat, nil
}

func (p *ParsedInvoice) parseMonetaryTotal(root *etree.Element) *model.ParseError {
	lmt := findChild(root, NamespaceCAC, "LegalMonetaryTotal")
	if lmt == nil {
		return model.NewMissingElement("LegalMonetaryTotal")
	}
	var perr *model.ParseError
	base := "LegalMonetaryTotal/"
	if p.MonetaryTotal.LineExtensionAmount, perr = requireAmount(lmt, "LineExtensionAmount", base+"LineExtensionAmount"); perr != nil {
		return perr
	}
	if p.MonetaryTotal.TaxExclusiveAmount, perr = requireAmount(lmt, "TaxExclusiveAmount", base+"TaxExclusiveAmount"); perr != nil {
		return perr
	}
	if p.MonetaryTotal.TaxInclusiveAmount, perr = requireAmount(lmt, "TaxInclusiveAmount", base+"TaxInclusiveAmount"); perr != nil {
		return perr
	}
	if p.MonetaryTotal.PayableAmount, perr = requireAmount(lmt, "PayableAmount", base+"PayableAmount"); perr != nil {
		return perr
	}
	return nil
}

func (p *ParsedInvoice) parseLines(root *etree.Element) *model.ParseError {
	lines := findChildren(root, NamespaceCAC, "InvoiceLine")
	if len(lines) == 0 {
		return model.NewMissingElement("InvoiceLine")
	}
	for i, le := range lines {
		base := "InvoiceLine[" + strconv.Itoa(i) + "]"
		var line model.InvoiceLine
		var perr *model.ParseError

		if line.ID, perr = requireText(le, NamespaceCBC, "ID", base+"/ID"); perr != nil {
			return perr
		}

		qty := findChild(le, NamespaceCBC, "InvoicedQuantity")
		if qty == nil {
			return model.NewMissingElement(base + "/InvoicedQuantity")
		}
		quantity, err := decimal.NewFromString(strings.TrimSpace(qty.Text()))
		if err != nil {
			return model.NewParseError(model.ParseMalformed, base+"/InvoicedQuantity", "unparseable quantity", err)
		}
		line.Quantity = quantity

		unitCode := qty.SelectAttrValue("unitCode", "")
		if unitCode == "" {
			return model.NewMissingElement(base + "/InvoicedQuantity/@unitCode")
		}
		if unit, ok := model.UnitByUBLCode(unitCode); ok {
			line.Unit = unit
		} else {
			line.Unit = model.UnitCode(unitCode)
			p.flag(base+"/InvoicedQuantity/@unitCode", unitCode)
		}

		if line.LineExtensionAmount, perr = requireAmount(le, "LineExtensionAmount", base+"/LineExtensionAmount"); perr != nil {
			return perr
		}

		item := findChild(le, NamespaceCAC, "Item")
		if item == nil {
			return model.NewMissingElement(base + "/Item")
		}
		if line.Item.Name, perr = requireText(item, NamespaceCBC, "Name", base+"/Item/Name"); perr != nil {
			return perr
		}
		if line.Item.TaxCategory, perr = p.parseTaxCategory(item, "ClassifiedTaxCategory", base+"/Item/ClassifiedTaxCategory"); perr != nil {
			return perr
		}

		price := findChild(le, NamespaceCAC, "Price")
		if price == nil {
			return model.NewMissingElement(base + "/Price")
		}
		if line.Price.Amount, perr = requireAmount(price, "PriceAmount", base+"/Price/PriceAmount"); perr != nil {
			return perr
		}

		p.Lines = append(p.Lines, line)
	}
	return nil
}

// taxScheme maps a UBL scheme code through the shared enum table, keeping
// unknown tokens raw and flagged.
func (p *ParsedInvoice) taxScheme(code, path string) model.TaxSchemeID {
	if id, ok := model.TaxSchemeByUBLCode(code); ok {
		return id
	}
	p.flag(path, code)
	return model.TaxSchemeID(code)
}

// findChild returns the first child matching namespace URI and local name.
func findChild(e *etree.Element, ns, local string) *etree.Element {
	for _, c := range e.ChildElements() {
		if c.Tag == local && c.NamespaceURI() == ns {
			return c
		}
	}
	return nil
}

func findChildren(e *etree.Element, ns, local string) []*etree.Element {
	var out []*etree.Element
	for _, c := range e.ChildElements() {
		if c.Tag == local && c.NamespaceURI() == ns {
			out = append(out, c)
		}
	}
	return out
}

func requireText(e *etree.Element, ns, local, path string) (string, *model.ParseError) {
	c := findChild(e, ns, local)
	if c == nil {
		return "", model.NewMissingElement(path)
	}
	return strings.TrimSpace(c.Text()), nil
}

func requireAmount(e *etree.Element, local, path string) (decimal.Decimal, *model.ParseError) {
	text, perr := requireText(e, NamespaceCBC, local, path)
	if perr != nil {
		return decimal.Zero, perr
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, model.NewParseError(model.ParseMalformed, path, "unparseable amount", err)
	}
	return d, nil
}

