package usecase

import (
	"context"

	"github.com/pkg/errors"

	"travelmail-service/internal/domain/entity"
)

// ErrNotTicket is returned by a handler when the keyword gate decides
// the message is not ticket mail. The pipeline records it as SKIPPED
// rather than FAILED.
var ErrNotTicket = errors.New("message does not look like ticket mail")

// TemplateHandler defines the interface for message handlers
type TemplateHandler interface {
	// CanHandle determines if this handler can process the given subject
	CanHandle(subject string) bool

	// Process extracts and reconciles the message contents
	Process(ctx context.Context, message *entity.Message) error
}

// SubjectRouter routes messages to the appropriate handler based on subject
type SubjectRouter interface {
	// Register registers a handler
	Register(handler TemplateHandler)

	// GetHandler returns the appropriate handler for a given subject
	GetHandler(subject string) TemplateHandler
}
