package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"travelmail-service/internal/domain/entity"
	"travelmail-service/internal/domain/repository"
	"travelmail-service/pkg/logger"
)

// HTTPMailerRepository hands confirmed bookings to the mailer service,
// which owns rendering and delivery of the confirmation email
type HTTPMailerRepository struct {
	logger      logger.Logger
	baseURL     string
	bearerToken string
	client      *http.Client
}

// NewHTTPMailerRepository creates a new mailer repository. An empty
// baseURL disables sending; the hand-off becomes a logged no-op.
func NewHTTPMailerRepository(baseURL, bearerToken string, logger logger.Logger) repository.MailerRepository {
	return &HTTPMailerRepository{
		logger:      logger,
		baseURL:     baseURL,
		bearerToken: bearerToken,
		client:      &http.Client{Timeout: 30 * time.Second},
	}
}

type confirmationRequest struct {
	To            string `json:"to"`
	PassengerName string `json:"passengerName"`
	PNR           string `json:"pnr"`
	FlightNumber  string `json:"flightNumber"`
	Airline       string `json:"airline,omitempty"`
	Origin        string `json:"origin,omitempty"`
	Destination   string `json:"destination,omitempty"`
	DepartureUTC  string `json:"departureUtc"`
	DepartureTime string `json:"departureTime,omitempty"`
	CabinClass    string `json:"cabinClass,omitempty"`
}

// SendBookingConfirmation posts the booking to the mailer service
func (r *HTTPMailerRepository) SendBookingConfirmation(ctx context.Context, booking *entity.Booking, passenger *entity.Passenger) error {
	if r.baseURL == "" {
		r.logger.Debug("Mailer endpoint not configured, skipping confirmation",
			"bookingId", booking.ID)
		return nil
	}
	if passenger.Email == "" {
		r.logger.Warn("Passenger has no email address, skipping confirmation",
			"passengerId", passenger.ID,
			"bookingId", booking.ID)
		return nil
	}

	body := confirmationRequest{
		To:            passenger.Email,
		PassengerName: passenger.FullName,
		PNR:           booking.PNR,
		FlightNumber:  booking.FlightNumber,
		Airline:       booking.Airline,
		Origin:        booking.Origin,
		Destination:   booking.Destination,
		DepartureUTC:  booking.DepartureUTC.UTC().Format(time.RFC3339),
		DepartureTime: booking.DepartureTime,
		CabinClass:    booking.CabinClass,
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal confirmation: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/mail/booking-confirmation", r.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.bearerToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusAccepted {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return fmt.Errorf("mailer service returned status %d: %v", resp.StatusCode, errorBody)
	}

	r.logger.Info("Booking confirmation handed to mailer",
		"bookingId", booking.ID,
		"to", passenger.Email,
		"pnr", booking.PNR)

	return nil
}
