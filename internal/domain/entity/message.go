package entity

import (
	"time"
)

// Message Process Status
const (
	StatusPending    = "PENDING"
	StatusProcessing = "PROCESSING"
	StatusCompleted  = "COMPLETED"
	StatusFailed     = "FAILED"
	StatusSkipped    = "SKIPPED"
)

// Message represents a mail item fetched from the watched mailbox
type Message struct {
	ID               string                 `bson:"_id,omitempty"`
	MessageID        string                 `bson:"messageId"` // mailbox UID, unique per folder
	UID              uint32                 `bson:"uid"`
	From             string                 `bson:"from"`
	Subject          string                 `bson:"subject"`
	Body             string                 `bson:"body"`
	HTMLBody         string                 `bson:"htmlBody"`
	ReceivedAt       time.Time              `bson:"receivedAt"`
	Attachments      []Attachment           `bson:"attachments"`
	ProcessStatus    string                 `bson:"processStatus"`
	ProcessorType    string                 `bson:"processorType"`
	ProcessStartedAt time.Time              `bson:"processStartedAt"`
	ProcessedAt      time.Time              `bson:"processedAt"`
	ErrorDetail      string                 `bson:"errorDetail"`
	ExtractedData    map[string]interface{} `bson:"extractedData"`
}

// Attachment represents a mail attachment
type Attachment struct {
	Filename    string `bson:"filename"`
	ContentType string `bson:"contentType"`
	Size        int    `bson:"size"`
	Data        []byte `bson:"data"`
}
