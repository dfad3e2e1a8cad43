package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Extractor turns unstructured invoice text into the raw key/value tree the
// validator accepts. It never constructs a canonical invoice itself.
type Extractor struct {
	client *Client
	model  string
}

// ExtractorOption configures the extractor
type ExtractorOption func(*Extractor)

// WithModel sets the model used for text extraction
func WithModel(model string) ExtractorOption {
	return func(e *Extractor) {
		e.model = model
	}
}

// NewExtractor creates an extractor backed by the given client
func NewExtractor(client *Client, opts ...ExtractorOption) *Extractor {
	e := &Extractor{client: client}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractFromText extracts the raw invoice tree from free-form text.
// The caller is expected to run the result through validation.
func (e *Extractor) ExtractFromText(ctx context.Context, text string) (map[string]any, error) {
	prompt := fmt.Sprintf(UserPromptTextExtraction, text)

	response, err := e.client.ChatText(ctx, e.model, SystemPromptInvoiceExtractor, prompt)
	if err != nil {
		return nil, fmt.Errorf("extraction request failed: %w", err)
	}

	return DecodeRaw(ExtractJSON(response))
}

// DecodeRaw decodes a JSON object into the raw tree shape the validator
// accepts. Numbers are kept as json.Number so decimal precision survives.
func DecodeRaw(jsonText string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(jsonText))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("response is not a JSON object: %w", err)
	}
	return raw, nil
}
