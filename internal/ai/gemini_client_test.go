package ai

import (
	"context"
	"os"
	"testing"
	"time"

	"ai-document-orchestrator/internal/telemetry"
)

func TestTokenCounterLimits(t *testing.T) {
	tc := &TokenCounter{limits: RateLimits{RPM: 2, TPM: 100, RPD: 10}}

	if !tc.CanConsume(50, 1) {
		t.Fatalf("first request should be allowed")
	}
	tc.RecordUsage(50, 1)

	if !tc.CanConsume(40, 1) {
		t.Fatalf("second request within limits should be allowed")
	}
	tc.RecordUsage(40, 1)

	if tc.CanConsume(5, 1) {
		t.Fatalf("third request should exceed RPM limit")
	}
	if tc.CanConsume(20, 0) {
		t.Fatalf("request exceeding TPM should be denied")
	}
}

func TestTokenCounterMinuteReset(t *testing.T) {
	tc := &TokenCounter{limits: RateLimits{RPM: 1, TPM: 100, RPD: 10}}
	tc.RecordUsage(50, 1)
	tc.lastMinuteReset = time.Now().Add(-2 * time.Minute)

	if !tc.CanConsume(50, 1) {
		t.Fatalf("expired minute window should have reset")
	}
}

func TestEstimateTokens(t *testing.T) {
	if got := estimateTokens("12345678"); got != 2 {
		t.Fatalf("expected 2 tokens for 8 chars, got %d", got)
	}
}

func TestNewGeminiClientCarriesMetrics(t *testing.T) {
	metrics, err := telemetry.InitMetrics()
	if err != nil {
		t.Fatalf("metrics init failed: %v", err)
	}

	client, err := NewGeminiClient("test-key", "gemini-2.0-flash", "free", metrics)
	if err != nil {
		t.Fatalf("client init failed: %v", err)
	}
	defer client.Close()

	if client.metrics == nil {
		t.Fatalf("expected metrics to be attached to the client")
	}
}

// Network dependent; exercises the real API when a key is available.
func TestGenerateTextLive(t *testing.T) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set")
	}

	client, err := NewGeminiClient(apiKey, "gemini-2.0-flash", "free", nil)
	if err != nil {
		t.Fatalf("client init failed: %v", err)
	}
	defer client.Close()

	text, err := client.GenerateText(context.Background(), "Say hello in one sentence.")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if text == "" {
		t.Fatalf("empty response text")
	}
}
