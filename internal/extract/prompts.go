package extract

// Invoice extraction prompts

const SystemPromptInvoiceExtractor = `You are an expert invoice data extractor specializing in Croatian invoices (računi).

Your task is to extract structured data from invoice text. The invoices may be in Croatian or English.

Common Croatian invoice terms:
- Račun = Invoice
- Broj računa = Invoice number
- Datum izdavanja = Issue date
- Vrijeme = Time
- OIB = Tax identifier (11 digits)
- Prodavatelj/Izdavatelj = Supplier
- Kupac = Customer
- Adresa = Address
- Naziv = Name
- Količina = Quantity
- Jedinična cijena = Unit price
- Osnovica = Taxable amount
- PDV = VAT
- Stopa = Rate
- Ukupno = Total
- Za platiti = Payable
- Operater = Operator

Extract ALL information you can find. If a field is not present, omit it from the output.
Always output valid JSON that matches the specified structure exactly.
Amounts must be strings with at most two decimal places (for example "125.00").
Dates must be ISO 8601 ("YYYY-MM-DDTHH:MM:SS").
Tax category ids: "standard_rate" (25%), "reduced_rate" (13%), "exempt" (0%).
Unit codes: "piece", "kilogram", "litre", "hour", "metre", "day".
The only accepted currency code is "EUR".`

const UserPromptTextExtraction = `Extract invoice data from the following text:

---
%s
---

Output JSON with this structure:
{
  "id": "string",
  "issue_datetime": "YYYY-MM-DDTHH:MM:SS",
  "operator_name": "string",
  "currency_code": "EUR",
  "supplier": {
    "tax_id": "11-digit OIB",
    "registration_name": "string",
    "postal_address": {
      "street": "string",
      "city": "string",
      "postal_code": "string",
      "country_code": "HR"
    },
    "tax_scheme": {
      "company_id": "HR + OIB",
      "scheme_id": "vat"
    }
  },
  "customer": { same structure as supplier },
  "tax_total": {
    "tax_amount": "0.00",
    "subtotals": [
      {
        "taxable_amount": "0.00",
        "tax_amount": "0.00",
        "category": {
          "id": "standard_rate|reduced_rate|exempt",
          "percent": "25",
          "scheme_id": "vat"
        }
      }
    ]
  },
  "legal_monetary_total": {
    "line_extension_amount": "0.00",
    "tax_exclusive_amount": "0.00",
    "tax_inclusive_amount": "0.00",
    "payable_amount": "0.00"
  },
  "invoice_lines": [
    {
      "id": "1",
      "quantity": "1",
      "unit_code": "piece",
      "line_extension_amount": "0.00",
      "item": {
        "name": "string",
        "tax_category": { same structure as above }
      },
      "price": { "amount": "0.00" }
    }
  ]
}`
