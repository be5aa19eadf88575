package templates

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelmail-service/internal/domain/entity"
	"travelmail-service/internal/usecase"
	"travelmail-service/pkg/extract"
	"travelmail-service/pkg/logger"
)

type fakeReconciler struct {
	segments []*extract.CandidateSegment
	err      error
}

func (f *fakeReconciler) ReconcileSegment(ctx context.Context, seg *extract.CandidateSegment) error {
	f.segments = append(f.segments, seg)
	return f.err
}

func newTestHandler(rec *fakeReconciler) *ItineraryTicketHandler {
	log := logger.NewNopLogger()
	return NewItineraryTicketHandler(
		extract.NewNormalizer(nil, log),
		extract.NewTicketExtractor(log),
		rec,
		0,
		log,
		nil,
	)
}

func TestHandlerAcceptsAnySubject(t *testing.T) {
	h := newTestHandler(&fakeReconciler{})
	assert.True(t, h.CanHandle("Your flight itinerary"))
	assert.True(t, h.CanHandle("Re: anything at all"))
}

func TestHandlerGateRejectsNonTicketMail(t *testing.T) {
	rec := &fakeReconciler{}
	h := newTestHandler(rec)

	msg := &entity.Message{
		MessageID: "1",
		Body:      "Lunch meeting moved to Tuesday, see you there",
	}

	err := h.Process(context.Background(), msg)
	assert.ErrorIs(t, err, usecase.ErrNotTicket)
	assert.Empty(t, rec.segments)
}

func TestHandlerReconcilesConfidentSegment(t *testing.T) {
	rec := &fakeReconciler{}
	h := newTestHandler(rec)

	msg := &entity.Message{
		MessageID: "2",
		Body: "Dear Mr John Smith, your flight booking is confirmed. " +
			"PNR: ABC123 E-Ticket Number: 176-1234567890 " +
			"Flight Number: EK202 (HK) Wed 31 Dec 25 " +
			"Departure: LOS Lagos, Nigeria 14:30 Arrival: DXB Dubai 23:45",
	}

	require.NoError(t, h.Process(context.Background(), msg))

	require.Len(t, rec.segments, 1)
	seg := rec.segments[0]
	assert.Equal(t, "John Smith", seg.PassengerName)
	assert.Equal(t, "EK202", seg.FlightNumber)
	assert.GreaterOrEqual(t, seg.Confidence, extract.DefaultConfidenceThreshold)

	require.NotNil(t, msg.ExtractedData)
	assert.Equal(t, "ABC123", msg.ExtractedData["pnr"])
	assert.Equal(t, 1, msg.ExtractedData["segmentsAccepted"])
}

func TestHandlerDropsIneligibleSegment(t *testing.T) {
	rec := &fakeReconciler{}
	h := newTestHandler(rec)

	// Ticket-like but carries no PNR or e-ticket, so the segment never
	// reaches reconciliation
	msg := &entity.Message{
		MessageID: "3",
		Body:      "Your flight EK202 departs LOS for DXB on Wed 31 Dec 25, passenger Mr John Smith",
	}

	require.NoError(t, h.Process(context.Background(), msg))
	assert.Empty(t, rec.segments)
	assert.Equal(t, 1, msg.ExtractedData["segmentsDropped"])
}

func TestHandlerReconcilerFailureSurfacesWhenNothingLands(t *testing.T) {
	rec := &fakeReconciler{err: assert.AnError}
	h := newTestHandler(rec)

	msg := &entity.Message{
		MessageID: "4",
		Body: "flight confirmed PNR: ABC123 Flight Number: EK202 Wed 31 Dec 25 " +
			"Departure: LOS Lagos, Nigeria 14:30 Arrival: DXB Dubai 23:45 " +
			"Passenger: SMITH/JOHN MR",
	}

	err := h.Process(context.Background(), msg)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 0, msg.ExtractedData["segmentsAccepted"])
}
