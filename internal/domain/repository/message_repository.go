package repository

import (
	"context"
	"time"

	"travelmail-service/internal/domain/entity"
)

// MessageRepository defines the interface for inbound message storage
type MessageRepository interface {
	Save(ctx context.Context, message *entity.Message) error
	FindByMessageID(ctx context.Context, messageID string) (*entity.Message, error)
	FindUnprocessed(ctx context.Context, limit int) ([]*entity.Message, error)
	UpdateStatus(ctx context.Context, messageID, status string, startedAt time.Time) error
	MarkAsProcessed(ctx context.Context, messageID, status, processorType, errorDetail string, extractedData map[string]interface{}) error
	ResetProcessingMessages(ctx context.Context) error
	LastUID(ctx context.Context) (uint32, error)
}
