package pdf

import (
	"bytes"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pkg/errors"
)

// Extractor pulls plain text out of PDF attachment bytes. Scanned
// (image-only) PDFs yield empty text; that is expected and not an error.
type Extractor struct{}

// NewExtractor creates a new PDF text extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText returns the text content of a PDF document
func (e *Extractor) ExtractText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errors.Wrap(err, "opening pdf")
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", errors.Wrap(err, "extracting pdf text")
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, plain); err != nil {
		return "", errors.Wrap(err, "reading pdf text")
	}

	return sb.String(), nil
}
