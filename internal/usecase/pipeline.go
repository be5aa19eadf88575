package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"travelmail-service/internal/domain/entity"
	"travelmail-service/internal/domain/repository"
	"travelmail-service/pkg/logger"
	"travelmail-service/pkg/metrics"
)

// Pipeline owns the life of a fetched message: persist, route to a
// handler, record the outcome. It is the watcher's delivery sink and
// the sweeper's retry driver.
type Pipeline struct {
	messageRepo repository.MessageRepository
	router      SubjectRouter
	logger      logger.Logger
	metrics     *metrics.Metrics
}

// NewPipeline creates a new message pipeline
func NewPipeline(
	messageRepo repository.MessageRepository,
	router SubjectRouter,
	logger logger.Logger,
	m *metrics.Metrics,
) *Pipeline {
	return &Pipeline{
		messageRepo: messageRepo,
		router:      router,
		logger:      logger,
		metrics:     m,
	}
}

// Deliver persists a freshly fetched message and processes it
// immediately. A message whose UID is already stored is not processed
// again.
func (p *Pipeline) Deliver(ctx context.Context, message *entity.Message) error {
	existing, err := p.messageRepo.FindByMessageID(ctx, message.MessageID)
	if err != nil {
		return errors.Wrap(err, "checking for existing message")
	}
	if existing != nil {
		p.logger.Debug("Message already stored, skipping", "messageId", message.MessageID)
		return nil
	}

	if err := p.messageRepo.Save(ctx, message); err != nil {
		return errors.Wrap(err, "saving message")
	}

	return p.ProcessMessage(ctx, message)
}

// ProcessMessage runs a single stored message through its handler
func (p *Pipeline) ProcessMessage(ctx context.Context, message *entity.Message) error {
	handler := p.router.GetHandler(message.Subject)
	if handler == nil {
		p.logger.Debug("No handler found for message",
			"subject", message.Subject,
			"messageId", message.MessageID)

		return p.messageRepo.MarkAsProcessed(
			ctx,
			message.MessageID,
			entity.StatusSkipped,
			"none",
			"No matching handler found",
			map[string]interface{}{
				"subject": message.Subject,
				"reason":  "no_matching_handler",
			},
		)
	}

	handlerType := fmt.Sprintf("%T", handler)
	p.logger.Info("Processing message with handler",
		"messageId", message.MessageID,
		"handler", handlerType,
		"subject", message.Subject)

	if err := p.messageRepo.UpdateStatus(ctx, message.MessageID, entity.StatusProcessing, time.Now()); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	start := time.Now()
	err := handler.Process(ctx, message)
	if p.metrics != nil {
		p.metrics.ProcessingTime.Observe(time.Since(start).Seconds())
		p.metrics.MessagesProcessed.Inc()
	}

	if err != nil {
		if errors.Is(err, ErrNotTicket) {
			p.logger.Debug("Message skipped by keyword gate",
				"messageId", message.MessageID)
			return p.messageRepo.MarkAsProcessed(
				ctx,
				message.MessageID,
				entity.StatusSkipped,
				handlerType,
				"",
				map[string]interface{}{
					"reason": "not_ticket_mail",
				},
			)
		}

		p.logger.Error("Handler failed to process message",
			"messageId", message.MessageID,
			"handler", handlerType,
			"error", err)
		if p.metrics != nil {
			p.metrics.ErrorsCount.WithLabelValues("process_message").Inc()
		}

		// Mark as failed but keep the pipeline moving
		p.messageRepo.MarkAsProcessed(
			ctx,
			message.MessageID,
			entity.StatusFailed,
			handlerType,
			err.Error(),
			nil,
		)
		return nil
	}

	p.logger.Info("Message processed successfully",
		"messageId", message.MessageID,
		"handler", handlerType)

	return p.messageRepo.MarkAsProcessed(
		ctx,
		message.MessageID,
		entity.StatusCompleted,
		handlerType,
		"",
		message.ExtractedData,
	)
}

// ProcessPendingMessages retries anything the immediate path missed
func (p *Pipeline) ProcessPendingMessages(ctx context.Context) error {
	if err := p.messageRepo.ResetProcessingMessages(ctx); err != nil {
		p.logger.Error("Failed to reset stale messages", "error", err)
	}

	messages, err := p.messageRepo.FindUnprocessed(ctx, 100)
	if err != nil {
		return fmt.Errorf("failed to find unprocessed messages: %w", err)
	}
	if len(messages) == 0 {
		return nil
	}

	p.logger.Info("Processing pending messages", "count", len(messages))

	for _, message := range messages {
		if err := p.ProcessMessage(ctx, message); err != nil {
			p.logger.Error("Failed to process pending message",
				"messageId", message.MessageID,
				"error", err)
		}
	}

	return nil
}

// StartSweeper periodically picks up pending messages until the context
// is cancelled
func (p *Pipeline) StartSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.ProcessPendingMessages(ctx); err != nil {
				p.logger.Error("Pending sweep failed", "error", err)
			}
		}
	}
}
