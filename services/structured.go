package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// TextGenerator is the generative API surface the extractor depends on.
// *ai.GeminiClient satisfies it; tests substitute a stub.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// StructuredExtractor turns free-form document text plus a question into the
// six-field invoice record, carried end-to-end as a raw JSON string.
type StructuredExtractor struct {
	generator TextGenerator
}

func NewStructuredExtractor(generator TextGenerator) *StructuredExtractor {
	return &StructuredExtractor{generator: generator}
}

const extractionPromptTemplate = `
You are an AI that extracts invoice metadata.

Document Text:
%s

User Question:
%s

Your task:
1. Read the document and answer the question.
2. Extract the following fields from the document (if present):

   - "invoice_number": string or null
   - "invoice_date": string or null           # issue date on the invoice
   - "vendor_name": string or null            # supplier / company name
   - "total_amount": string or null           # full amount including currency (e.g. "$93.50")
   - "due_date": string or null               # payment due date
   - "risk_level": "High" | "Medium" | "Low"  # subjective risk based on content

3. Return ONLY valid JSON.
   - Do NOT wrap it in markdown.
   - NO ` + "```" + `json fences.
   - NO extra comments or text.

Example of the EXACT format to return:

{
  "invoice_number": "INV-123",
  "invoice_date": "2024-01-31",
  "vendor_name": "ACME Corp",
  "total_amount": "$123.45",
  "due_date": "2024-02-15",
  "risk_level": "Low"
}
`

// Extract calls the generative API and returns the fence-stripped response
// text. Document text and question are interpolated verbatim.
//
// It never returns an error: a failed API call degrades to the JSON string
// {"error": "<message>"} so the flow continues and downstream consumers can
// sniff for the error key.
func (e *StructuredExtractor) Extract(ctx context.Context, text, question string) string {
	prompt := fmt.Sprintf(extractionPromptTemplate, text, question)

	raw, err := e.generator.GenerateText(ctx, prompt)
	if err != nil {
		payload, _ := json.Marshal(map[string]string{"error": err.Error()})
		return string(payload)
	}

	return StripFences(raw)
}

// StripFences removes markdown code-block delimiters from a model response
// and trims surrounding whitespace. Best-effort normalization only — the
// result is not validated as JSON. Idempotent.
func StripFences(s string) string {
	cleaned := strings.ReplaceAll(s, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```JSON", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}
