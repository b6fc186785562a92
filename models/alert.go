package models

import "encoding/json"

// AlertContext is the exact webhook body. structured_data is deliberately a
// string: the automation workflow's own Parse JSON node handles it.
type AlertContext struct {
	Question       string `json:"question"`
	StructuredData string `json:"structured_data"`
	RawText        string `json:"raw_text"`
	RecipientEmail string `json:"recipient_email"`
}

// SendAlertRequest is the body of POST /alerts/send
type SendAlertRequest struct {
	SessionID      string `json:"session_id" binding:"required"`
	RecipientEmail string `json:"recipient_email"`
}

// SendAlertResponse reports a successful delivery. Response carries the
// webhook's JSON body when it parses, otherwise ResponseText carries it raw.
type SendAlertResponse struct {
	Delivered    bool            `json:"delivered"`
	StatusCode   int             `json:"status_code"`
	Response     json.RawMessage `json:"response,omitempty"`
	ResponseText string          `json:"response_text,omitempty"`
}
