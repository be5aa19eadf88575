package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelmail-service/internal/domain/entity"
	"travelmail-service/pkg/logger"
)

type stubPDF struct {
	text string
	err  error
}

func (s *stubPDF) ExtractText(data []byte) (string, error) {
	return s.text, s.err
}

func TestNormalizePrefersPlainBody(t *testing.T) {
	n := NewNormalizer(nil, logger.NewNopLogger())

	msg := &entity.Message{
		Body:     "PNR: ABC123",
		HTMLBody: "<p>ignored</p>",
	}
	assert.Equal(t, "PNR: ABC123", n.Normalize(msg))
}

func TestNormalizeStripsHTMLFallback(t *testing.T) {
	n := NewNormalizer(nil, logger.NewNopLogger())

	msg := &entity.Message{
		HTMLBody: "<html><body><b>Flight</b>&nbsp;EK202 &amp; PNR: ABC123</body></html>",
	}
	assert.Equal(t, "Flight EK202 & PNR: ABC123", n.Normalize(msg))
}

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	n := NewNormalizer(nil, logger.NewNopLogger())

	msg := &entity.Message{
		Body: "  PNR:\tABC123\r\n\r\nFlight   EK202  ",
	}
	assert.Equal(t, "PNR: ABC123 Flight EK202", n.Normalize(msg))
}

func TestNormalizeAppendsAttachmentText(t *testing.T) {
	n := NewNormalizer(&stubPDF{text: "E-Ticket Number: 176-1234567890"}, logger.NewNopLogger())

	msg := &entity.Message{
		Body: "see attached itinerary",
		Attachments: []entity.Attachment{
			{Filename: "ticket.pdf", ContentType: "application/pdf", Data: []byte("%PDF")},
		},
	}

	got := n.Normalize(msg)
	assert.Contains(t, got, "see attached itinerary")
	assert.Contains(t, got, "=== ATTACHMENT: ticket.pdf ===")
	assert.Contains(t, got, "E-Ticket Number: 176-1234567890")
}

func TestNormalizeSkipsOversizedAttachment(t *testing.T) {
	n := NewNormalizer(&stubPDF{text: "should never appear"}, logger.NewNopLogger())

	msg := &entity.Message{
		Body: "body text",
		Attachments: []entity.Attachment{
			{Filename: "huge.pdf", ContentType: "application/pdf", Size: MaxAttachmentSize + 1},
		},
	}

	got := n.Normalize(msg)
	assert.Equal(t, "body text", got)
}

func TestNormalizeSkipsNonPDFAndBrokenPDF(t *testing.T) {
	n := NewNormalizer(&stubPDF{err: assert.AnError}, logger.NewNopLogger())

	msg := &entity.Message{
		Body: "body text",
		Attachments: []entity.Attachment{
			{Filename: "logo.png", ContentType: "image/png", Data: []byte{1, 2, 3}},
			{Filename: "broken.pdf", ContentType: "application/pdf", Data: []byte("%PDF")},
		},
	}

	// Both attachments skipped, the body survives
	assert.Equal(t, "body text", n.Normalize(msg))
}

func TestNormalizeDetectsPDFByExtension(t *testing.T) {
	n := NewNormalizer(&stubPDF{text: "itinerary text"}, logger.NewNopLogger())

	msg := &entity.Message{
		Attachments: []entity.Attachment{
			{Filename: "Itinerary.PDF", ContentType: "application/octet-stream", Data: []byte("%PDF")},
		},
	}

	got := n.Normalize(msg)
	require.Contains(t, got, "itinerary text")
}
