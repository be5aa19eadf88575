package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"travelmail-service/internal/domain/entity"
	"travelmail-service/internal/domain/repository"
	"travelmail-service/pkg/extract"
	"travelmail-service/pkg/logger"
	"travelmail-service/pkg/metrics"
)

// Half-width of the departure window used to match a segment against a
// stored booking for the same passenger and flight number
const bookingWindow = 24 * time.Hour

// Reconciler matches accepted segments against stored passengers and
// bookings. The airline and timezone repositories are optional; without
// them the booking carries the raw carrier code and no local time.
type Reconciler struct {
	passengerRepo    repository.PassengerRepository
	bookingRepo      repository.BookingRepository
	notificationRepo repository.NotificationRepository
	mailerRepo       repository.MailerRepository
	airlineRepo      repository.AirlineRepository
	timezoneRepo     repository.TimezoneRepository
	logger           logger.Logger
	metrics          *metrics.Metrics
}

// NewReconciler creates a new reconciler
func NewReconciler(
	passengerRepo repository.PassengerRepository,
	bookingRepo repository.BookingRepository,
	notificationRepo repository.NotificationRepository,
	mailerRepo repository.MailerRepository,
	airlineRepo repository.AirlineRepository,
	timezoneRepo repository.TimezoneRepository,
	logger logger.Logger,
	m *metrics.Metrics,
) *Reconciler {
	return &Reconciler{
		passengerRepo:    passengerRepo,
		bookingRepo:      bookingRepo,
		notificationRepo: notificationRepo,
		mailerRepo:       mailerRepo,
		airlineRepo:      airlineRepo,
		timezoneRepo:     timezoneRepo,
		logger:           logger,
		metrics:          m,
	}
}

// ReconcileSegment matches one accepted segment against the passenger
// store and creates or updates the corresponding booking. An unknown
// traveler raises the unrecognized signal and writes nothing else.
func (r *Reconciler) ReconcileSegment(ctx context.Context, seg *extract.CandidateSegment) error {
	firstName := extract.FirstNameToken(seg.PassengerName)
	passenger, err := r.passengerRepo.FindByNameSubstring(ctx, firstName)
	if err != nil {
		return errors.Wrap(err, "looking up passenger")
	}

	if passenger == nil {
		r.logger.Warn("Unrecognized traveler on extracted segment",
			"traveler", seg.PassengerName,
			"flightNumber", seg.FlightNumber)
		if r.metrics != nil {
			r.metrics.UnrecognizedAlerts.Inc()
		}
		return r.notificationRepo.NotifyUnrecognizedBooking(ctx, &entity.UnrecognizedBooking{
			TravelerName: seg.PassengerName,
			FlightNumber: seg.FlightNumber,
			Origin:       originLabel(seg),
			Destination:  destinationLabel(seg),
		})
	}

	departure := departureUTC(seg)
	existing, err := r.bookingRepo.FindByPassengerFlightWindow(
		ctx,
		passenger.ID,
		seg.FlightNumber,
		departure.Add(-bookingWindow),
		departure.Add(bookingWindow),
	)
	if err != nil {
		return errors.Wrap(err, "searching booking window")
	}

	if existing == nil {
		return r.createBooking(ctx, passenger, seg, departure)
	}
	return r.updateBooking(ctx, existing, seg, departure)
}

func (r *Reconciler) createBooking(ctx context.Context, passenger *entity.Passenger, seg *extract.CandidateSegment, departure time.Time) error {
	booking := &entity.Booking{
		PassengerID:    passenger.ID,
		PassengerName:  passenger.FullName,
		Airline:        r.airlineName(ctx, seg),
		FlightNumber:   seg.FlightNumber,
		FlightStatus:   seg.FlightStatus,
		Origin:         originLabel(seg),
		Destination:    destinationLabel(seg),
		DepartureUTC:   departure,
		DepartureTime:  seg.DepartureTime,
		DepartureLocal: r.departureLocal(ctx, seg),
		ArrivalTime:    seg.ArrivalTime,
		CabinClass:     seg.CabinClass,
		PNR:            seg.PNR,
		EticketNumber:  seg.EticketNumber,
		PaymentInfo:    seg.PaymentInfo,
		AgentInfo:      seg.AgentInfo,
		Status:         entity.BookingConfirmed,
		ExternalSource: externalSource(seg),
	}

	created, err := r.bookingRepo.Create(ctx, booking)
	if err != nil {
		return errors.Wrap(err, "creating booking")
	}

	r.logger.Info("Booking created from extracted segment",
		"bookingId", created.ID,
		"passengerId", passenger.ID,
		"flightNumber", seg.FlightNumber,
		"pnr", seg.PNR)
	if r.metrics != nil {
		r.metrics.BookingsCreated.Inc()
	}

	if err := r.notificationRepo.NotifyBookingCreated(ctx, created.ID); err != nil {
		r.logger.Error("Failed to record booking-created signal",
			"bookingId", created.ID,
			"error", err)
	}

	// Confirmation delivery is best effort, the booking is already saved
	if err := r.mailerRepo.SendBookingConfirmation(ctx, created, passenger); err != nil {
		r.logger.Error("Failed to hand off booking confirmation",
			"bookingId", created.ID,
			"error", err)
		if r.metrics != nil {
			r.metrics.ErrorsCount.WithLabelValues("send_confirmation").Inc()
		}
	}

	return nil
}

func (r *Reconciler) updateBooking(ctx context.Context, existing *entity.Booking, seg *extract.CandidateSegment, departure time.Time) error {
	existing.Airline = r.airlineName(ctx, seg)
	existing.FlightNumber = seg.FlightNumber
	existing.FlightStatus = seg.FlightStatus
	existing.Origin = originLabel(seg)
	existing.Destination = destinationLabel(seg)
	existing.DepartureUTC = departure
	existing.DepartureTime = seg.DepartureTime
	existing.DepartureLocal = r.departureLocal(ctx, seg)
	existing.ArrivalTime = seg.ArrivalTime
	if seg.CabinClass != "" {
		existing.CabinClass = seg.CabinClass
	}
	if seg.PNR != "" {
		existing.PNR = seg.PNR
	}
	if seg.EticketNumber != "" {
		existing.EticketNumber = seg.EticketNumber
	}
	existing.Status = entity.BookingUpdated
	existing.ExternalSource = externalSource(seg)

	updated, err := r.bookingRepo.Update(ctx, existing)
	if err != nil {
		return errors.Wrap(err, "updating booking")
	}

	r.logger.Info("Booking updated from extracted segment",
		"bookingId", updated.ID,
		"flightNumber", seg.FlightNumber,
		"departureUtc", departure)
	if r.metrics != nil {
		r.metrics.BookingsUpdated.Inc()
	}

	if err := r.notificationRepo.NotifyFlightTimeUpdated(ctx, updated.ID); err != nil {
		r.logger.Error("Failed to record flight-time-updated signal",
			"bookingId", updated.ID,
			"error", err)
	}

	return nil
}

// airlineName resolves the carrier code against the reference table,
// falling back to the code itself
func (r *Reconciler) airlineName(ctx context.Context, seg *extract.CandidateSegment) string {
	if r.airlineRepo == nil || seg.Airline == "" {
		return seg.Airline
	}
	airline, err := r.airlineRepo.GetByCode(ctx, seg.Airline)
	if err != nil {
		r.logger.Debug("Airline lookup failed", "code", seg.Airline, "error", err)
		return seg.Airline
	}
	if airline == nil {
		return seg.Airline
	}
	return airline.Name
}

// departureLocal annotates the extracted wall time with the origin
// airport's timezone name when the reference table knows the airport
func (r *Reconciler) departureLocal(ctx context.Context, seg *extract.CandidateSegment) string {
	if r.timezoneRepo == nil || seg.Origin == "" || seg.DepartureDate == "" {
		return ""
	}
	tz, err := r.timezoneRepo.GetByAirportCode(ctx, seg.Origin)
	if err != nil {
		r.logger.Debug("Timezone lookup failed", "airport", seg.Origin, "error", err)
		return ""
	}
	if tz == nil {
		return ""
	}
	departTime := seg.DepartureTime
	if departTime == "" {
		departTime = "00:00"
	}
	return fmt.Sprintf("%s %s (%s)", seg.DepartureDate, departTime, tz.TzName)
}

// departureUTC composes the comparable departure instant from the
// extracted date and time, defaulting a missing time to midnight
func departureUTC(seg *extract.CandidateSegment) time.Time {
	day, err := time.Parse("2006-01-02", seg.DepartureDate)
	if err != nil {
		return time.Time{}
	}
	clock, err := time.Parse("15:04", seg.DepartureTime)
	if err != nil {
		return day
	}
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, time.UTC)
}

func externalSource(seg *extract.CandidateSegment) *entity.ExternalSource {
	return &entity.ExternalSource{
		Provider:    "email_parser",
		ReferenceID: seg.PNR,
	}
}

func originLabel(seg *extract.CandidateSegment) string {
	if seg.Origin != "" {
		return seg.Origin
	}
	return seg.OriginCity
}

func destinationLabel(seg *extract.CandidateSegment) string {
	if seg.Destination != "" {
		return seg.Destination
	}
	return seg.DestCity
}
