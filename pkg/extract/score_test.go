package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEligible(t *testing.T) {
	tests := []struct {
		name   string
		seg    CandidateSegment
		ok     bool
		reason string
	}{
		{
			"pnr with name and route",
			CandidateSegment{PNR: "ABC123", PassengerName: "John Smith", Origin: "LOS", Destination: "DXB"},
			true, "",
		},
		{
			"eticket instead of pnr",
			CandidateSegment{EticketNumber: "1761234567890", PassengerName: "John Smith", Origin: "LOS", Destination: "DXB"},
			true, "",
		},
		{
			"no strong identifier",
			CandidateSegment{PassengerName: "John Smith", Origin: "LOS", Destination: "DXB"},
			false, "no strong identifier (PNR or e-ticket)",
		},
		{
			"no passenger name",
			CandidateSegment{PNR: "ABC123", Origin: "LOS", Destination: "DXB"},
			false, "no passenger name",
		},
		{
			"no route",
			CandidateSegment{PNR: "ABC123", PassengerName: "John Smith"},
			false, "no route information",
		},
		{
			"city pair method excused from route check",
			CandidateSegment{PNR: "ABC123", PassengerName: "John Smith", RouteMethod: RouteCityPair},
			true, "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := Eligible(&tt.seg)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestScoreMinimalSegmentMeetsThreshold(t *testing.T) {
	seg := &CandidateSegment{
		PNR:           "ABC123",
		PassengerName: "John Smith",
		Origin:        "LOS",
		Destination:   "DXB",
	}

	Score(seg)
	assert.Equal(t, 60, seg.Confidence)
	assert.GreaterOrEqual(t, seg.Confidence, DefaultConfidenceThreshold)
}

func TestScoreRecordsMissingCoreFields(t *testing.T) {
	seg := &CandidateSegment{
		PNR:           "ABC123",
		PassengerName: "John Smith",
		Origin:        "LOS",
		Destination:   "DXB",
	}

	Score(seg)
	assert.Contains(t, seg.Reasons, "Departure date missing")
	assert.Contains(t, seg.Reasons, "E-ticket missing")
	assert.Contains(t, seg.Reasons, "Flight number missing")
	assert.NotContains(t, seg.Reasons, "Name missing")
	assert.NotContains(t, seg.Reasons, "PNR missing")
	assert.NotContains(t, seg.Reasons, "Route missing")
}

func TestScoreMonotonicInEvidence(t *testing.T) {
	base := CandidateSegment{
		PNR:           "ABC123",
		PassengerName: "John Smith",
		Origin:        "LOS",
		Destination:   "DXB",
	}
	Score(&base)

	richer := base
	richer.Reasons = nil
	richer.DepartureDate = "2025-12-31"
	richer.FlightNumber = "EK202"
	Score(&richer)

	assert.Greater(t, richer.Confidence, base.Confidence)
}

func TestScoreClampedAt100(t *testing.T) {
	seg := &CandidateSegment{
		PassengerName: "John Smith",
		Airline:       "EK",
		FlightNumber:  "EK202",
		FlightStatus:  "HK",
		Origin:        "LOS",
		Destination:   "DXB",
		DepartureDate: "2025-12-31",
		DepartureTime: "14:30",
		ArrivalTime:   "23:45",
		PNR:           "ABC123",
		EticketNumber: "1761234567890",
		CabinClass:    "Economy",
		PaymentInfo:   "Visa",
		AgentInfo:     "Skyline Travel",
	}

	Score(seg)
	assert.Equal(t, 100, seg.Confidence)
	assert.Empty(t, seg.Reasons)
}

func TestScorePlaceholderFlightEarnsNothing(t *testing.T) {
	withReal := &CandidateSegment{
		PNR: "ABC123", PassengerName: "John Smith",
		Origin: "LOS", Destination: "DXB",
		FlightNumber: "EK202",
	}
	withPlaceholder := &CandidateSegment{
		PNR: "ABC123", PassengerName: "John Smith",
		Origin: "LOS", Destination: "DXB",
		FlightNumber: "XX000",
	}

	Score(withReal)
	Score(withPlaceholder)

	require.Greater(t, withReal.Confidence, withPlaceholder.Confidence)
	// A placeholder is present, not missing
	assert.NotContains(t, withPlaceholder.Reasons, "Flight number missing")
}

func TestScoreMidnightDepartureEarnsNothing(t *testing.T) {
	midnight := &CandidateSegment{
		PNR: "ABC123", PassengerName: "John Smith",
		Origin: "LOS", Destination: "DXB",
		DepartureTime: "00:00",
	}
	afternoon := &CandidateSegment{
		PNR: "ABC123", PassengerName: "John Smith",
		Origin: "LOS", Destination: "DXB",
		DepartureTime: "14:30",
	}

	Score(midnight)
	Score(afternoon)

	assert.Greater(t, afternoon.Confidence, midnight.Confidence)
}
