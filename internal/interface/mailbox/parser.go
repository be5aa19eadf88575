package mailbox

import (
	"bytes"
	"io"
	"strconv"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-message/mail"
	"github.com/pkg/errors"

	"travelmail-service/internal/domain/entity"
)

// parseMessage converts a fetched IMAP message into a domain message.
// Malformed MIME sub-parts are skipped so one broken part does not lose
// the rest of the message; a body that is not MIME at all is kept as
// plain text.
func parseMessage(msg *imap.Message, section *imap.BodySectionName) (*entity.Message, error) {
	body := msg.GetBody(section)
	if body == nil {
		return nil, errors.New("server returned no body section")
	}

	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, errors.Wrap(err, "reading message body")
	}

	out := &entity.Message{
		MessageID:     strconv.FormatUint(uint64(msg.Uid), 10),
		UID:           msg.Uid,
		ProcessStatus: entity.StatusPending,
	}
	if msg.Envelope != nil {
		out.Subject = msg.Envelope.Subject
		out.ReceivedAt = msg.Envelope.Date
		if len(msg.Envelope.From) > 0 {
			out.From = msg.Envelope.From[0].Address()
		}
	}

	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		out.Body = string(raw)
		return out, nil
	}

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}

		switch header := part.Header.(type) {
		case *mail.InlineHeader:
			contentType, _, err := header.ContentType()
			if err != nil {
				continue
			}
			content, err := io.ReadAll(part.Body)
			if err != nil {
				continue
			}
			switch contentType {
			case "text/plain":
				out.Body += string(content)
			case "text/html":
				out.HTMLBody += string(content)
			}
		case *mail.AttachmentHeader:
			filename, _ := header.Filename()
			contentType, _, _ := header.ContentType()
			data, err := io.ReadAll(part.Body)
			if err != nil {
				continue
			}
			out.Attachments = append(out.Attachments, entity.Attachment{
				Filename:    filename,
				ContentType: contentType,
				Size:        len(data),
				Data:        data,
			})
		}
	}

	return out, nil
}
