package models

import "encoding/json"

// StructuredRecord is the six-field invoice shape the extraction prompt asks
// the model for. The payload travels through the system as an opaque string;
// decoding into this struct gates the Parsed display field and nothing else.
type StructuredRecord struct {
	InvoiceNumber *string `json:"invoice_number"`
	InvoiceDate   *string `json:"invoice_date"`
	VendorName    *string `json:"vendor_name"`
	TotalAmount   *string `json:"total_amount"`
	DueDate       *string `json:"due_date"`
	RiskLevel     string  `json:"risk_level"`
}

// ExtractResponse is returned by POST /documents/extract
type ExtractResponse struct {
	SessionID      string          `json:"session_id"`
	Question       string          `json:"question"`
	StructuredData string          `json:"structured_data"`
	Parsed         json.RawMessage `json:"parsed,omitempty"`
	RawTextPreview string          `json:"raw_text_preview"`
}
