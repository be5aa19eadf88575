package router

import (
	"fmt"

	"travelmail-service/internal/usecase"
	"travelmail-service/pkg/logger"
)

// SubjectRouter routes messages to handlers based on subject. Handlers
// are tried in registration order; the first match wins.
type SubjectRouter struct {
	handlers []usecase.TemplateHandler
	logger   logger.Logger
}

// NewSubjectRouter creates a new subject router
func NewSubjectRouter(logger logger.Logger) *SubjectRouter {
	return &SubjectRouter{
		handlers: make([]usecase.TemplateHandler, 0),
		logger:   logger,
	}
}

// Register registers a handler
func (r *SubjectRouter) Register(handler usecase.TemplateHandler) {
	r.handlers = append(r.handlers, handler)
	r.logger.Info("Registered message handler", "handler", fmt.Sprintf("%T", handler))
}

// GetHandler returns the appropriate handler for a given subject
func (r *SubjectRouter) GetHandler(subject string) usecase.TemplateHandler {
	for _, handler := range r.handlers {
		if handler.CanHandle(subject) {
			return handler
		}
	}
	return nil
}
