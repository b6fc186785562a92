package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

type stubGenerator struct {
	response string
	err      error
	prompt   string
}

func (s *stubGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	s.prompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestExtractStripsFences(t *testing.T) {
	gen := &stubGenerator{response: "```json\n{\"invoice_number\": \"INV-1\"}\n```"}
	extractor := NewStructuredExtractor(gen)

	got := extractor.Extract(context.Background(), "doc text", "what is owed?")
	want := `{"invoice_number": "INV-1"}`
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestExtractEmbedsTextAndQuestion(t *testing.T) {
	gen := &stubGenerator{response: "{}"}
	extractor := NewStructuredExtractor(gen)

	extractor.Extract(context.Background(), "Invoice #42 total $50.00", "What is owed?")

	if !strings.Contains(gen.prompt, "Invoice #42 total $50.00") {
		t.Fatalf("prompt missing document text: %q", gen.prompt)
	}
	if !strings.Contains(gen.prompt, "What is owed?") {
		t.Fatalf("prompt missing question: %q", gen.prompt)
	}
}

func TestExtractGeneratorFailureReturnsErrorPayload(t *testing.T) {
	gen := &stubGenerator{err: errors.New("quota exceeded")}
	extractor := NewStructuredExtractor(gen)

	got := extractor.Extract(context.Background(), "text", "question")

	var payload map[string]string
	if err := json.Unmarshal([]byte(got), &payload); err != nil {
		t.Fatalf("error payload is not valid JSON: %v", err)
	}
	if len(payload) != 1 {
		t.Fatalf("expected exactly one key, got %v", payload)
	}
	if payload["error"] == "" {
		t.Fatalf("expected non-empty error message, got %v", payload)
	}
}

func TestStripFencesIdempotent(t *testing.T) {
	inputs := []string{
		"```json\n{\"a\": 1}\n```",
		"```JSON {\"a\": 1} ```",
		"  {\"a\": 1}  ",
		"no fences at all",
		"",
	}

	for _, in := range inputs {
		once := StripFences(in)
		twice := StripFences(once)
		if once != twice {
			t.Fatalf("StripFences not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}

func TestStripFencesPassesMalformedOutputThrough(t *testing.T) {
	in := "```json\nnot json at all\n```"
	got := StripFences(in)
	if got != "not json at all" {
		t.Fatalf("expected malformed output to pass through, got %q", got)
	}
}
