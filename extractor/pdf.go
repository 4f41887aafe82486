package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrEmptyDocument is returned for a zero-length input.
var ErrEmptyDocument = errors.New("empty document")

// ParseError reports input that could not be read as a PDF at all.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return "parse pdf: " + e.Err.Error() }

func (e *ParseError) Unwrap() error { return e.Err }

// ExtractReader reads r to the end and extracts its text.
func ExtractReader(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}
	return Extract(data)
}

// Extract returns the plain text of every page concatenated in page order
// and trimmed. A document without extractable text (scanned images, blank
// pages) yields "" and a nil error.
func Extract(data []byte) (text string, err error) {
	if len(data) == 0 {
		return "", ErrEmptyDocument
	}

	// the pdf package panics on some malformed object graphs
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &ParseError{Err: fmt.Errorf("%v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ParseError{Err: err}
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// image-only or undecodable page
			continue
		}
		sb.WriteString(pageText)
	}

	return strings.TrimSpace(sb.String()), nil
}
