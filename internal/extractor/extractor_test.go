package extractor

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/omnibrief/omnibrief/internal/logger"
	"github.com/omnibrief/omnibrief/internal/model"
)

func newTestExtractor() Extractor {
	return New(logger.New("error"))
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

const longText = "Hello world. This is a test of the summarization pipeline with enough characters to pass the weak-signal threshold for extraction."

func TestExtractPlainText(t *testing.T) {
	e := newTestExtractor()
	path := writeTemp(t, "note.txt", longText)

	ext, err := e.Extract(context.Background(), path, "text/plain")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if ext.Kind != model.KindText {
		t.Errorf("Kind = %v, want KindText", ext.Kind)
	}
	if ext.Text != longText {
		t.Errorf("Text = %q, want original content", ext.Text)
	}
}

func TestExtractMIMEDispatch(t *testing.T) {
	// Every supported type must land in exactly one pathway.
	tests := []struct {
		name     string
		mimeType string
		content  string
		wantKind model.ExtractionKind
	}{
		{"plain text", "text/plain", longText, model.KindText},
		{"text with charset", "text/plain; charset=utf-8", longText, model.KindText},
		{"csv", "text/csv", longText, model.KindText},
		{"json", "application/json", longText, model.KindText},
		{"xml", "application/xml", longText, model.KindText},
		{"unknown type read as text", "application/x-unknown-log", longText, model.KindText},
		{"image png", "image/png", "fake image bytes", model.KindImage},
		{"image jpeg", "image/jpeg", "fake image bytes", model.KindImage},
	}

	e := newTestExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, "input", tt.content)

			ext, err := e.Extract(context.Background(), path, tt.mimeType)
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if ext.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", ext.Kind, tt.wantKind)
			}
		})
	}
}

func TestExtractImagePayload(t *testing.T) {
	e := newTestExtractor()
	content := "not really a png"
	path := writeTemp(t, "pic.png", content)

	ext, err := e.Extract(context.Background(), path, "image/png")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if ext.Image == nil {
		t.Fatal("Image payload is nil")
	}
	if ext.Image.MIMEType != "image/png" {
		t.Errorf("MIMEType = %q, want image/png", ext.Image.MIMEType)
	}

	decoded, err := base64.StdEncoding.DecodeString(ext.Image.Base64)
	if err != nil {
		t.Fatalf("payload is not valid base64: %v", err)
	}
	if string(decoded) != content {
		t.Errorf("decoded payload = %q, want %q", decoded, content)
	}
}

func TestExtractWeakSignal(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
		content  string
	}{
		{"empty file", "text/plain", ""},
		{"short text", "text/plain", "hi"},
		{"whitespace only", "text/plain", "   \n\t  "},
		{"short text declared pdf", "application/pdf", "hi"},
		{"49 chars exactly", "text/plain", strings.Repeat("a", 49)},
	}

	e := newTestExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, "weak", tt.content)

			_, err := e.Extract(context.Background(), path, tt.mimeType)
			if !errors.Is(err, ErrWeakSignal) {
				t.Fatalf("Extract() error = %v, want ErrWeakSignal", err)
			}
			// The message must point the user at the image-upload workaround.
			if !strings.Contains(err.Error(), "image") {
				t.Errorf("weak-signal error should suggest image upload, got: %v", err)
			}
		})
	}
}

func TestExtractExactThreshold(t *testing.T) {
	e := newTestExtractor()
	path := writeTemp(t, "edge.txt", strings.Repeat("a", 50))

	if _, err := e.Extract(context.Background(), path, "text/plain"); err != nil {
		t.Fatalf("50 chars should pass the gate, got error: %v", err)
	}
}

func TestExtractUnreadableFile(t *testing.T) {
	e := newTestExtractor()

	_, err := e.Extract(context.Background(), filepath.Join(t.TempDir(), "missing.txt"), "text/plain")
	if !errors.Is(err, ErrUnreadable) {
		t.Fatalf("Extract() error = %v, want ErrUnreadable", err)
	}

	_, err = e.Extract(context.Background(), filepath.Join(t.TempDir(), "missing.png"), "image/png")
	if !errors.Is(err, ErrUnreadable) {
		t.Fatalf("Extract() image error = %v, want ErrUnreadable", err)
	}
}

func TestExtractHTMLStripsMarkup(t *testing.T) {
	e := newTestExtractor()
	html := `<!DOCTYPE html>
<html><head><title>ignored</title><style>body { color: red }</style></head>
<body><h1>Quarterly Report</h1><p>Revenue grew 14% year over year, driven by the new &amp; improved subscription tier.</p>
<script>console.log("ignored")</script></body></html>`
	path := writeTemp(t, "page.html", html)

	ext, err := e.Extract(context.Background(), path, "text/html")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if strings.Contains(ext.Text, "<") || strings.Contains(ext.Text, "console.log") || strings.Contains(ext.Text, "color: red") {
		t.Errorf("markup leaked into extracted text: %q", ext.Text)
	}
	if !strings.Contains(ext.Text, "Quarterly Report") || !strings.Contains(ext.Text, "new & improved") {
		t.Errorf("visible text missing from extraction: %q", ext.Text)
	}
}

func TestExtractCorruptDOCX(t *testing.T) {
	e := newTestExtractor()
	// Not a zip container at all.
	path := writeTemp(t, "fake.docx", strings.Repeat("garbage", 20))

	_, err := e.Extract(context.Background(), path, docxMIME)
	if !errors.Is(err, ErrWeakSignal) {
		t.Fatalf("corrupt docx should surface as weak signal, got: %v", err)
	}
}

func TestNormalizeMIME(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"text/plain", "text/plain"},
		{"Text/HTML; charset=UTF-8", "text/html"},
		{" application/pdf ", "application/pdf"},
	}

	for _, tt := range tests {
		if got := normalizeMIME(tt.in); got != tt.want {
			t.Errorf("normalizeMIME(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
