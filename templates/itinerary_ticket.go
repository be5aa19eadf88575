package templates

import (
	"context"

	"travelmail-service/internal/domain/entity"
	"travelmail-service/internal/usecase"
	"travelmail-service/pkg/extract"
	"travelmail-service/pkg/logger"
	"travelmail-service/pkg/metrics"
)

// SegmentReconciler consumes accepted segments
type SegmentReconciler interface {
	ReconcileSegment(ctx context.Context, seg *extract.CandidateSegment) error
}

// ItineraryTicketHandler turns unstructured ticket mail into reconciled
// bookings. It accepts every subject: provider subject lines are too
// inconsistent to gate on, so the keyword gate runs on the normalized
// body instead.
type ItineraryTicketHandler struct {
	normalizer *extract.Normalizer
	extractor  *extract.TicketExtractor
	reconciler SegmentReconciler
	threshold  int
	logger     logger.Logger
	metrics    *metrics.Metrics
}

// NewItineraryTicketHandler creates a new itinerary ticket handler
func NewItineraryTicketHandler(
	normalizer *extract.Normalizer,
	extractor *extract.TicketExtractor,
	reconciler SegmentReconciler,
	threshold int,
	logger logger.Logger,
	m *metrics.Metrics,
) *ItineraryTicketHandler {
	if threshold <= 0 {
		threshold = extract.DefaultConfidenceThreshold
	}
	return &ItineraryTicketHandler{
		normalizer: normalizer,
		extractor:  extractor,
		reconciler: reconciler,
		threshold:  threshold,
		logger:     logger,
		metrics:    m,
	}
}

// CanHandle reports whether this handler processes the given subject
func (h *ItineraryTicketHandler) CanHandle(subject string) bool {
	return true
}

// Process runs the full extraction pipeline on one message
func (h *ItineraryTicketHandler) Process(ctx context.Context, message *entity.Message) error {
	text := h.normalizer.Normalize(message)

	if !extract.IsTicketLike(text) {
		return usecase.ErrNotTicket
	}

	fields := h.extractor.Extract(text)
	segments := h.extractor.AssembleSegments(fields)
	if h.metrics != nil {
		h.metrics.SegmentsExtracted.Add(float64(len(segments)))
	}

	accepted := 0
	discarded := 0
	var reconcileErr error

	for i := range segments {
		seg := &segments[i]

		if ok, reason := extract.Eligible(seg); !ok {
			h.logger.Debug("Segment discarded before scoring",
				"messageId", message.MessageID,
				"reason", reason)
			h.countDiscard(reason)
			discarded++
			continue
		}

		extract.Score(seg)
		if seg.Confidence < h.threshold {
			h.logger.Info("Segment below confidence threshold",
				"messageId", message.MessageID,
				"confidence", seg.Confidence,
				"threshold", h.threshold,
				"reasons", seg.Reasons)
			h.countDiscard("below_threshold")
			discarded++
			continue
		}

		if err := h.reconciler.ReconcileSegment(ctx, seg); err != nil {
			// One bad segment must not sink its siblings
			h.logger.Error("Failed to reconcile segment",
				"messageId", message.MessageID,
				"flightNumber", seg.FlightNumber,
				"error", err)
			reconcileErr = err
			continue
		}
		accepted++
	}

	message.ExtractedData = map[string]interface{}{
		"pnr":              fields.BookingReference,
		"eticket":          fields.EticketNumber,
		"passengerName":    extract.NormalizeName(fields.PassengerNameRaw),
		"segmentsTotal":    len(segments),
		"segmentsAccepted": accepted,
		"segmentsDropped":  discarded,
	}

	if accepted == 0 && reconcileErr != nil {
		return reconcileErr
	}
	return nil
}

func (h *ItineraryTicketHandler) countDiscard(reason string) {
	if h.metrics != nil {
		h.metrics.SegmentsDiscarded.WithLabelValues(reason).Inc()
	}
}
