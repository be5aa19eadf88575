package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelmail-service/internal/domain/entity"
	"travelmail-service/pkg/logger"
)

type fakeMessageRepo struct {
	saved    []*entity.Message
	statuses map[string]string
	details  map[string]string
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{
		statuses: make(map[string]string),
		details:  make(map[string]string),
	}
}

func (f *fakeMessageRepo) Save(ctx context.Context, message *entity.Message) error {
	f.saved = append(f.saved, message)
	f.statuses[message.MessageID] = entity.StatusPending
	return nil
}

func (f *fakeMessageRepo) FindByMessageID(ctx context.Context, messageID string) (*entity.Message, error) {
	for _, m := range f.saved {
		if m.MessageID == messageID {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeMessageRepo) FindUnprocessed(ctx context.Context, limit int) ([]*entity.Message, error) {
	var out []*entity.Message
	for _, m := range f.saved {
		if f.statuses[m.MessageID] == entity.StatusPending {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMessageRepo) UpdateStatus(ctx context.Context, messageID, status string, startedAt time.Time) error {
	f.statuses[messageID] = status
	return nil
}

func (f *fakeMessageRepo) MarkAsProcessed(ctx context.Context, messageID, status, processorType, errorDetail string, extractedData map[string]interface{}) error {
	f.statuses[messageID] = status
	f.details[messageID] = errorDetail
	return nil
}

func (f *fakeMessageRepo) ResetProcessingMessages(ctx context.Context) error {
	return nil
}

func (f *fakeMessageRepo) LastUID(ctx context.Context) (uint32, error) {
	return 0, nil
}

type fakeHandler struct {
	accepts   bool
	err       error
	processed []*entity.Message
}

func (f *fakeHandler) CanHandle(subject string) bool {
	return f.accepts
}

func (f *fakeHandler) Process(ctx context.Context, message *entity.Message) error {
	f.processed = append(f.processed, message)
	return f.err
}

type fakeRouter struct {
	handler TemplateHandler
}

func (f *fakeRouter) Register(handler TemplateHandler) {}

func (f *fakeRouter) GetHandler(subject string) TemplateHandler {
	if f.handler != nil && f.handler.CanHandle(subject) {
		return f.handler
	}
	return nil
}

func ticketMessage(id string) *entity.Message {
	return &entity.Message{
		MessageID:  id,
		Subject:    "Your flight itinerary",
		Body:       "PNR: ABC123",
		ReceivedAt: time.Now(),
	}
}

func TestDeliverProcessesNewMessage(t *testing.T) {
	repo := newFakeMessageRepo()
	handler := &fakeHandler{accepts: true}
	p := NewPipeline(repo, &fakeRouter{handler: handler}, logger.NewNopLogger(), nil)

	err := p.Deliver(context.Background(), ticketMessage("101"))
	require.NoError(t, err)

	require.Len(t, repo.saved, 1)
	require.Len(t, handler.processed, 1)
	assert.Equal(t, entity.StatusCompleted, repo.statuses["101"])
}

func TestDeliverSkipsKnownUID(t *testing.T) {
	repo := newFakeMessageRepo()
	handler := &fakeHandler{accepts: true}
	p := NewPipeline(repo, &fakeRouter{handler: handler}, logger.NewNopLogger(), nil)

	require.NoError(t, p.Deliver(context.Background(), ticketMessage("101")))
	require.NoError(t, p.Deliver(context.Background(), ticketMessage("101")))

	assert.Len(t, repo.saved, 1)
	assert.Len(t, handler.processed, 1)
}

func TestProcessMessageNoHandlerMarksSkipped(t *testing.T) {
	repo := newFakeMessageRepo()
	p := NewPipeline(repo, &fakeRouter{handler: &fakeHandler{accepts: false}}, logger.NewNopLogger(), nil)

	msg := ticketMessage("102")
	require.NoError(t, repo.Save(context.Background(), msg))
	require.NoError(t, p.ProcessMessage(context.Background(), msg))

	assert.Equal(t, entity.StatusSkipped, repo.statuses["102"])
}

func TestProcessMessageGateRejectionMarksSkipped(t *testing.T) {
	repo := newFakeMessageRepo()
	handler := &fakeHandler{accepts: true, err: ErrNotTicket}
	p := NewPipeline(repo, &fakeRouter{handler: handler}, logger.NewNopLogger(), nil)

	msg := ticketMessage("103")
	require.NoError(t, repo.Save(context.Background(), msg))
	require.NoError(t, p.ProcessMessage(context.Background(), msg))

	assert.Equal(t, entity.StatusSkipped, repo.statuses["103"])
	assert.Empty(t, repo.details["103"])
}

func TestProcessMessageHandlerFailureMarksFailed(t *testing.T) {
	repo := newFakeMessageRepo()
	handler := &fakeHandler{accepts: true, err: errors.New("extraction blew up")}
	p := NewPipeline(repo, &fakeRouter{handler: handler}, logger.NewNopLogger(), nil)

	msg := ticketMessage("104")
	require.NoError(t, repo.Save(context.Background(), msg))

	// A handler failure is recorded, not propagated
	require.NoError(t, p.ProcessMessage(context.Background(), msg))

	assert.Equal(t, entity.StatusFailed, repo.statuses["104"])
	assert.Equal(t, "extraction blew up", repo.details["104"])
}

func TestProcessPendingMessages(t *testing.T) {
	repo := newFakeMessageRepo()
	handler := &fakeHandler{accepts: true}
	p := NewPipeline(repo, &fakeRouter{handler: handler}, logger.NewNopLogger(), nil)

	require.NoError(t, repo.Save(context.Background(), ticketMessage("105")))
	require.NoError(t, repo.Save(context.Background(), ticketMessage("106")))

	require.NoError(t, p.ProcessPendingMessages(context.Background()))

	assert.Len(t, handler.processed, 2)
	assert.Equal(t, entity.StatusCompleted, repo.statuses["105"])
	assert.Equal(t, entity.StatusCompleted, repo.statuses["106"])
}
