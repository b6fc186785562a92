package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ai-document-orchestrator/models"
)

// WebhookClient posts alert context to the configured n8n webhook. One
// best-effort attempt per send: no retries, no idempotency key.
type WebhookClient struct {
	url        string
	httpClient *http.Client
}

func NewWebhookClient(url string, timeout time.Duration) *WebhookClient {
	return &WebhookClient{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// DeliveryOutcome distinguishes "request sent, server said no" from "request
// never completed". Delivered is true only for HTTP 200.
type DeliveryOutcome struct {
	Delivered  bool
	StatusCode int
	Body       string
	// JSON is set when a 200 body parses as JSON; purely for display.
	JSON json.RawMessage
	// TransportError is non-empty when the request never completed
	// (timeout, DNS, connection refused, TLS).
	TransportError string
}

// Deliver POSTs the alert context as a JSON body and reports the outcome.
// All failure modes are reported in the outcome rather than returned.
func (c *WebhookClient) Deliver(ctx context.Context, alert *models.AlertContext) *DeliveryOutcome {
	body, err := json.Marshal(alert)
	if err != nil {
		return &DeliveryOutcome{TransportError: fmt.Sprintf("failed to encode alert context: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewReader(body))
	if err != nil {
		return &DeliveryOutcome{TransportError: fmt.Sprintf("failed to create webhook request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &DeliveryOutcome{TransportError: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &DeliveryOutcome{TransportError: fmt.Sprintf("failed to read webhook response: %v", err)}
	}

	outcome := &DeliveryOutcome{
		StatusCode: resp.StatusCode,
		Body:       string(respBody),
	}

	if resp.StatusCode != http.StatusOK {
		return outcome
	}

	outcome.Delivered = true

	// Best-effort parse for display; failure here never fails the delivery
	if json.Valid(respBody) && len(bytes.TrimSpace(respBody)) > 0 {
		outcome.JSON = json.RawMessage(respBody)
	}

	return outcome
}
