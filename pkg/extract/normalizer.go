package extract

import (
	"fmt"
	"regexp"
	"strings"

	"travelmail-service/internal/domain/entity"
	"travelmail-service/pkg/logger"
)

// MaxAttachmentSize bounds PDF parse latency and memory per attachment
const MaxAttachmentSize = 5 * 1024 * 1024

// PDFTextExtractor extracts text from raw PDF bytes. Failures stay inside
// the boundary: the caller skips the attachment and continues.
type PDFTextExtractor interface {
	ExtractText(data []byte) (string, error)
}

// Normalizer flattens a fetched message into one candidate string
type Normalizer struct {
	pdf    PDFTextExtractor
	logger logger.Logger
}

// NewNormalizer creates a new normalizer
func NewNormalizer(pdf PDFTextExtractor, logger logger.Logger) *Normalizer {
	return &Normalizer{
		pdf:    pdf,
		logger: logger,
	}
}

var (
	htmlTagRe    = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Normalize produces a single whitespace-collapsed string from the message
// body plus any parseable PDF attachments
func (n *Normalizer) Normalize(msg *entity.Message) string {
	var sb strings.Builder

	body := msg.Body
	if strings.TrimSpace(body) == "" {
		body = stripHTML(msg.HTMLBody)
	}
	sb.WriteString(body)

	for _, att := range msg.Attachments {
		if !isPDF(att) {
			continue
		}

		size := att.Size
		if size == 0 {
			size = len(att.Data)
		}
		if size > MaxAttachmentSize {
			n.logger.Warn("Skipping oversized attachment",
				"filename", att.Filename,
				"size", size)
			continue
		}

		if n.pdf == nil {
			n.logger.Debug("No PDF extractor configured, skipping attachment", "filename", att.Filename)
			continue
		}

		text, err := n.pdf.ExtractText(att.Data)
		if err != nil {
			n.logger.Warn("Failed to extract attachment text",
				"filename", att.Filename,
				"error", err)
			continue
		}

		sb.WriteString(fmt.Sprintf(" === ATTACHMENT: %s === ", att.Filename))
		sb.WriteString(text)
	}

	return CollapseWhitespace(sb.String())
}

// CollapseWhitespace reduces all whitespace runs to single spaces
func CollapseWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

func isPDF(att entity.Attachment) bool {
	if strings.EqualFold(att.ContentType, "application/pdf") {
		return true
	}
	return strings.HasSuffix(strings.ToLower(att.Filename), ".pdf")
}

// stripHTML removes tags and decodes the entities that show up in
// airline mail bodies
func stripHTML(text string) string {
	cleaned := htmlTagRe.ReplaceAllString(text, " ")

	cleaned = strings.ReplaceAll(cleaned, "&nbsp;", " ")
	cleaned = strings.ReplaceAll(cleaned, "&amp;", "&")
	cleaned = strings.ReplaceAll(cleaned, "&lt;", "<")
	cleaned = strings.ReplaceAll(cleaned, "&gt;", ">")
	cleaned = strings.ReplaceAll(cleaned, "&#39;", "'")
	cleaned = strings.ReplaceAll(cleaned, "&quot;", "\"")

	return strings.TrimSpace(cleaned)
}
