package validate

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	money "github.com/sa-hr/eracun/internal/decimal"
	"github.com/sa-hr/eracun/internal/model"
)

// Accessors over the untyped raw input tree. Each records at most one error
// for its field and reports via the bool whether a usable value came out;
// the caller keeps walking either way so every violation is collected.

// Issue timestamp formats accepted on input. Output formats are fixed by
// the schema and unrelated to this list.
var dateTimeFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02.01.2006 15:04:05",
	"02.01.2006 15:04",
	"2006-01-02",
}

func stringField(raw map[string]any, field string, errs model.FieldErrors) (string, bool) {
	v, ok := raw[field]
	if !ok || v == nil {
		errs.Add(field, model.ReasonMissing, field+" is required")
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		errs.Add(field, model.ReasonInvalidType, fmt.Sprintf("expected string, got %T", v))
		return "", false
	}
	if strings.TrimSpace(s) == "" {
		errs.Add(field, model.ReasonMissing, field+" is required")
		return "", false
	}
	return s, true
}

func mapField(raw map[string]any, field string, errs model.FieldErrors) (map[string]any, bool) {
	v, ok := raw[field]
	if !ok || v == nil {
		errs.Add(field, model.ReasonMissing, field+" is required")
		return nil, false
	}
	m, ok := v.(map[string]any)
	if !ok {
		errs.Add(field, model.ReasonInvalidType, fmt.Sprintf("expected object, got %T", v))
		return nil, false
	}
	return m, true
}

func listField(raw map[string]any, field string, errs model.FieldErrors) ([]any, bool) {
	v, ok := raw[field]
	if !ok || v == nil {
		errs.Add(field, model.ReasonMissing, field+" is required")
		return nil, false
	}
	l, ok := v.([]any)
	if !ok {
		errs.Add(field, model.ReasonInvalidType, fmt.Sprintf("expected array, got %T", v))
		return nil, false
	}
	return l, true
}

// toDecimal converts the value shapes a JSON or map input can carry.
func toDecimal(v any) (decimal.Decimal, model.Reason, error) {
	switch n := v.(type) {
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return decimal.Zero, model.ReasonInvalidFormat, fmt.Errorf("not a decimal number: %q", n)
		}
		return d, "", nil
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return decimal.Zero, model.ReasonInvalidFormat, fmt.Errorf("not a decimal number: %q", n)
		}
		return d, "", nil
	case float64:
		return decimal.NewFromFloat(n), "", nil
	case int:
		return decimal.NewFromInt(int64(n)), "", nil
	case int64:
		return decimal.NewFromInt(n), "", nil
	case decimal.Decimal:
		return n, "", nil
	default:
		return decimal.Zero, model.ReasonInvalidType, fmt.Errorf("expected decimal number, got %T", v)
	}
}

func decimalField(raw map[string]any, field string, errs model.FieldErrors) (decimal.Decimal, bool) {
	v, ok := raw[field]
	if !ok || v == nil {
		errs.Add(field, model.ReasonMissing, field+" is required")
		return decimal.Zero, false
	}
	d, reason, err := toDecimal(v)
	if err != nil {
		errs.Add(field, reason, err.Error())
		return decimal.Zero, false
	}
	return d, true
}

// amountField reads a monetary amount: non-negative, at most two
// fractional digits.
func amountField(raw map[string]any, field string, errs model.FieldErrors) (decimal.Decimal, bool) {
	d, ok := decimalField(raw, field, errs)
	if !ok {
		return decimal.Zero, false
	}
	if !money.IsNonNegative(d) {
		errs.Add(field, model.ReasonInvalidFormat, "amount must be non-negative")
		return decimal.Zero, false
	}
	if !money.FitsScale(d) {
		errs.Add(field, model.ReasonInvalidFormat, "amount has more than two decimal places")
		return decimal.Zero, false
	}
	return d, true
}

func dateTimeField(raw map[string]any, field string, errs model.FieldErrors) (time.Time, bool) {
	v, ok := raw[field]
	if !ok || v == nil {
		errs.Add(field, model.ReasonMissing, field+" is required")
		return time.Time{}, false
	}
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		for _, layout := range dateTimeFormats {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
		errs.Add(field, model.ReasonInvalidFormat, fmt.Sprintf("unrecognized date/time: %q", t))
		return time.Time{}, false
	default:
		errs.Add(field, model.ReasonInvalidType, fmt.Sprintf("expected date/time string, got %T", v))
		return time.Time{}, false
	}
}
