package extractor

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/omnibrief/omnibrief/internal/model"
)

const docxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// minSignalLength is the minimum amount of extracted text we accept from a
// document. Anything shorter is almost always a scanned or image-only file.
const minSignalLength = 50

var (
	// ErrUnreadable means the source file could not be read or decoded at all.
	ErrUnreadable = errors.New("file unreadable")

	// ErrWeakSignal means the document yielded no usable text layer.
	ErrWeakSignal = errors.New("weak signal: this document appears to be empty or an image-only scan without a text layer; " +
		"take a screenshot of the pages and upload them as images (.jpg/.png) instead")
)

// Extract dispatches on the declared MIME type and produces either an inline
// image or extracted text. Unrecognized types are attempted as plain text
// before giving up.
func (e *implExtractor) Extract(ctx context.Context, path string, mimeType string) (model.Extraction, error) {
	mt := normalizeMIME(mimeType)

	if strings.HasPrefix(mt, "image/") {
		e.logger.Info(ctx, "Extracting image payload: %s", path)
		data, err := os.ReadFile(path)
		if err != nil {
			return model.Extraction{}, fmt.Errorf("%w: read image: %v", ErrUnreadable, err)
		}
		return model.Extraction{
			Kind: model.KindImage,
			Image: &model.InlineImage{
				Base64:   base64.StdEncoding.EncodeToString(data),
				MIMEType: mt,
			},
		}, nil
	}

	e.logger.Info(ctx, "Extracting document text (%s): %s", mt, path)

	text, err := e.extractText(path, mt)
	if err != nil {
		// Extraction failure on a PDF usually means a scan; surface the
		// weak-signal error with the image workaround rather than a
		// generic read failure.
		if mt == docxMIME || mt == "application/pdf" {
			e.logger.Warn(ctx, "Text extraction failed (%s), treating as weak signal: %v", mt, err)
			return model.Extraction{}, ErrWeakSignal
		}
		return model.Extraction{}, err
	}

	if len(strings.TrimSpace(text)) < minSignalLength {
		e.logger.Warn(ctx, "Extracted text below signal threshold (%d chars): %s",
			len(strings.TrimSpace(text)), path)
		return model.Extraction{}, ErrWeakSignal
	}

	e.logger.Info(ctx, "Extracted %d chars of text from %s", len(text), path)
	return model.Extraction{Kind: model.KindText, Text: text}, nil
}

func (e *implExtractor) extractText(path string, mt string) (string, error) {
	switch {
	case mt == "application/pdf":
		return extractPDF(path)
	case mt == docxMIME:
		return extractDOCX(path)
	case mt == "text/html":
		return extractHTML(path)
	case strings.HasPrefix(mt, "text/"),
		strings.Contains(mt, "json"),
		strings.Contains(mt, "xml"):
		return readPlainText(path)
	default:
		// Unknown types get one attempt as raw text (logs, code, etc).
		return readPlainText(path)
	}
}

func readPlainText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: read file: %v", ErrUnreadable, err)
	}
	return string(data), nil
}

// normalizeMIME lowercases the type and strips parameters such as charset.
func normalizeMIME(mimeType string) string {
	mt, _, _ := strings.Cut(mimeType, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}
