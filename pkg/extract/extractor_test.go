package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelmail-service/pkg/logger"
)

func newTestExtractor() *TicketExtractor {
	e := NewTicketExtractor(logger.NewNopLogger())
	e.now = func() time.Time {
		return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	}
	return e
}

func TestIsTicketLike(t *testing.T) {
	assert.True(t, IsTicketLike("Your flight is confirmed"))
	assert.True(t, IsTicketLike("BOOKING REFERENCE: ABC123"))
	assert.True(t, IsTicketLike("here is your e-ticket"))

	assert.False(t, IsTicketLike("Lunch meeting moved to Tuesday"))
	assert.False(t, IsTicketLike(""))
}

func TestExtractBookingReference(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"labelled pnr", "PNR: ABC123 thanks for flying", "ABC123"},
		{"booking reference", "Booking Reference # X9Y8Z7", "X9Y8Z7"},
		{"record locator", "Record Locator: QWE456", "QWE456"},
		{"bare reference", "Ref: AAA111 attached", "AAA111"},
		{"no reference", "no codes here", ""},
		{"too short", "PNR: ABC12 incomplete", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := e.Extract(tt.text)
			assert.Equal(t, tt.want, fields.BookingReference)
		})
	}
}

func TestExtractEticketStripsSeparators(t *testing.T) {
	e := newTestExtractor()

	fields := e.Extract("E-Ticket Number: 176-1234567890")
	assert.Equal(t, "1761234567890", fields.EticketNumber)

	fields = e.Extract("eticket: 176 1234567890")
	assert.Equal(t, "1761234567890", fields.EticketNumber)

	fields = e.Extract("Ticket Number: 12345678901234")
	assert.Equal(t, "12345678901234", fields.EticketNumber)
}

func TestExtractPassengerName(t *testing.T) {
	e := newTestExtractor()

	fields := e.Extract("Dear Mr John Smith, your booking is confirmed")
	assert.Equal(t, "John Smith", fields.PassengerNameRaw)

	fields = e.Extract("Passenger Name: SMITH/JOHN MR")
	assert.Equal(t, "SMITH/JOHN MR", fields.PassengerNameRaw)

	fields = e.Extract("SMITH/JOHN MR has been ticketed")
	assert.Equal(t, "SMITH/JOHN MR", fields.PassengerNameRaw)
}

func TestExtractFlightNumbers(t *testing.T) {
	e := newTestExtractor()

	// The labelled family wins over bare matches elsewhere in the text
	fields := e.Extract("Flight Number: EK202 (HK) operated by EK777")
	require.Len(t, fields.FlightNumbers, 1)
	assert.Equal(t, "EK202", fields.FlightNumbers[0].Number)
	assert.Equal(t, "HK", fields.FlightNumbers[0].Status)

	// Bare fallback when no label is present
	fields = e.Extract("segments QR512 and QR8145 confirmed")
	require.Len(t, fields.FlightNumbers, 2)
	assert.Equal(t, "QR512", fields.FlightNumbers[0].Number)
	assert.Equal(t, "QR8145", fields.FlightNumbers[1].Number)
}

func TestExtractFlightNumbersMergesRepeats(t *testing.T) {
	e := newTestExtractor()

	// Body and attachment text repeat the same leg; the status from the
	// second mention is kept
	fields := e.Extract("EK202 departing soon. EK202 (HK) see attachment")
	require.Len(t, fields.FlightNumbers, 1)
	assert.Equal(t, "EK202", fields.FlightNumbers[0].Number)
	assert.Equal(t, "HK", fields.FlightNumbers[0].Status)
}

func TestExtractCabinPaymentAgent(t *testing.T) {
	e := newTestExtractor()

	fields := e.Extract("Cabin: Economy, paid by Visa, Issuing Agent: Skyline Travel")
	assert.Equal(t, "Economy", fields.CabinClass)
	assert.Equal(t, "Visa", fields.PaymentInfo)
	assert.Equal(t, "Skyline Travel", fields.AgentInfo)

	fields = e.Extract("travelling in Business class")
	assert.Equal(t, "Business", fields.CabinClass)
}

func TestExtractFullItinerary(t *testing.T) {
	e := newTestExtractor()

	text := "Dear Mr John Smith, your flight booking is confirmed. " +
		"PNR: ABC123 E-Ticket Number: 176-1234567890 " +
		"Flight Number: EK202 (HK) Wed 31 Dec 25 " +
		"Departure: LOS Lagos, Nigeria 14:30 Arrival: DXB Dubai 23:45 " +
		"Cabin: Economy"

	require.True(t, IsTicketLike(text))
	fields := e.Extract(text)

	assert.Equal(t, "ABC123", fields.BookingReference)
	assert.Equal(t, "1761234567890", fields.EticketNumber)
	assert.Equal(t, "John Smith", fields.PassengerNameRaw)
	require.Len(t, fields.FlightNumbers, 1)
	assert.Equal(t, "EK202", fields.FlightNumbers[0].Number)
	assert.Equal(t, []string{"2025-12-31"}, fields.Dates)
	assert.Equal(t, RouteProviderIATA, fields.RouteMethod)
	require.Len(t, fields.Origins, 1)
	assert.Equal(t, "LOS", fields.Origins[0].IATA)
	assert.Equal(t, "14:30", fields.Origins[0].Time)
	require.Len(t, fields.Destinations, 1)
	assert.Equal(t, "DXB", fields.Destinations[0].IATA)

	segments := e.AssembleSegments(fields)
	require.Len(t, segments, 1)
	seg := &segments[0]

	assert.Equal(t, "John Smith", seg.PassengerName)
	assert.Equal(t, "EK", seg.Airline)
	assert.Equal(t, "EK202", seg.FlightNumber)
	assert.Equal(t, "LOS", seg.Origin)
	assert.Equal(t, "DXB", seg.Destination)
	assert.Equal(t, "2025-12-31", seg.DepartureDate)
	assert.Equal(t, "14:30", seg.DepartureTime)

	ok, reason := Eligible(seg)
	require.True(t, ok, reason)
	Score(seg)
	assert.GreaterOrEqual(t, seg.Confidence, 85)
	assert.LessOrEqual(t, seg.Confidence, 100)
}
