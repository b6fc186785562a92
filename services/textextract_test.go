package services

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func TestExtractTextTxtIdentity(t *testing.T) {
	content := "Invoice #42, due 2024-03-01, total $50.00"
	got, err := ExtractText("invoice.txt", []byte(content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != content {
		t.Fatalf("expected text to equal file content, got %q", got)
	}
}

func TestExtractTextTxtUpperCaseExtension(t *testing.T) {
	got, err := ExtractText("INVOICE.TXT", []byte("hello"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello" {
		t.Fatalf("expected %q, got %q", "hello", got)
	}
}

func TestExtractTextTxtInvalidUTF8(t *testing.T) {
	_, err := ExtractText("invoice.txt", []byte{0xff, 0xfe, 0xfd})
	if err == nil {
		t.Fatalf("expected error for invalid UTF-8 content")
	}
}

func TestExtractTextUnsupportedExtension(t *testing.T) {
	for _, name := range []string{"invoice.docx", "invoice.csv", "invoice", "invoice.pdf.bak"} {
		got, err := ExtractText(name, []byte("some content"))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if got != "" {
			t.Fatalf("%s: expected empty string, got %q", name, got)
		}
	}
}

// buildTwoPagePDF assembles a minimal PDF where page 1 draws "Hello" and
// page 2 has no content stream at all.
func buildTwoPagePDF(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	offsets := make([]int, 7)

	buf.WriteString("%PDF-1.4\n")

	writeObj := func(num int, body string) {
		offsets[num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}

	content := "BT /F1 12 Tf 72 720 Td (Hello) Tj ET"

	writeObj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(2, "<< /Type /Pages /Kids [3 0 R 4 0 R] /Count 2 >>")
	writeObj(3, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 5 0 R >> >> /Contents 6 0 R >>")
	writeObj(4, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>")
	writeObj(5, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")
	writeObj(6, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))

	xref := buf.Len()
	buf.WriteString("xref\n0 7\n0000000000 65535 f \n")
	for i := 1; i <= 6; i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size 7 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", xref)

	return buf.Bytes()
}

func TestExtractTextPDFEmptyPageKeepsSegment(t *testing.T) {
	got, err := ExtractText("invoice.pdf", buildTwoPagePDF(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// One trailing newline per page, even for the contentless page
	if n := strings.Count(got, "\n"); n != 2 {
		t.Fatalf("expected 2 newline-terminated segments, got %d in %q", n, got)
	}

	segments := strings.Split(got, "\n")
	if !strings.Contains(segments[0], "Hello") {
		t.Fatalf("expected first page text, got %q", segments[0])
	}
	if segments[1] != "" {
		t.Fatalf("expected empty segment for contentless page, got %q", segments[1])
	}
}

func TestExtractTextCorruptPDF(t *testing.T) {
	_, err := ExtractText("invoice.pdf", []byte("this is not a pdf"))
	if err == nil {
		t.Fatalf("expected error for unreadable PDF")
	}
	if !strings.Contains(err.Error(), "failed to open PDF") {
		t.Fatalf("unexpected error message: %v", err)
	}
}
