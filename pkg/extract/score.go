package extract

import (
	"strings"
)

// DefaultConfidenceThreshold is the score below which segments are
// logged and dropped
const DefaultConfidenceThreshold = 60

// Evidence weights, additive and capped at 100
const (
	pointsName         = 20
	pointsDate         = 15
	pointsRoute        = 15
	pointsPNR          = 25
	pointsEticket      = 20
	pointsFlightNumber = 10
	pointsStatus       = 5
	pointsDepTime      = 5
	pointsArrTime      = 5
	pointsCabin        = 3
	pointsPayment      = 2
	pointsAgent        = 2
)

// Eligible applies the acceptance gate: a segment without a strong
// identifier or a passenger name is never scored or reconciled, and a
// segment without route data is discarded unless the city-route path
// produced it (that path carries the route by construction).
func Eligible(seg *CandidateSegment) (bool, string) {
	if seg.PNR == "" && seg.EticketNumber == "" {
		return false, "no strong identifier (PNR or e-ticket)"
	}
	if seg.PassengerName == "" {
		return false, "no passenger name"
	}
	if !seg.HasRoute() && seg.RouteMethod != RouteCityPair {
		return false, "no route information"
	}
	return true, ""
}

// Score assigns the weighted-evidence confidence and records a reason
// for every missing core field, whether or not the segment is later
// accepted
func Score(seg *CandidateSegment) {
	score := 0

	if seg.PassengerName != "" {
		score += pointsName
	} else {
		seg.Reasons = append(seg.Reasons, "Name missing")
	}

	if seg.DepartureDate != "" {
		score += pointsDate
	} else {
		seg.Reasons = append(seg.Reasons, "Departure date missing")
	}

	if seg.HasRoute() {
		score += pointsRoute
	} else {
		seg.Reasons = append(seg.Reasons, "Route missing")
	}

	if seg.PNR != "" {
		score += pointsPNR
	} else {
		seg.Reasons = append(seg.Reasons, "PNR missing")
	}

	if seg.EticketNumber != "" {
		score += pointsEticket
	} else {
		seg.Reasons = append(seg.Reasons, "E-ticket missing")
	}

	if seg.FlightNumber == "" {
		seg.Reasons = append(seg.Reasons, "Flight number missing")
	} else if !isPlaceholderFlight(seg.FlightNumber) {
		score += pointsFlightNumber
	}

	if seg.FlightStatus != "" {
		score += pointsStatus
	}
	if seg.DepartureTime != "" && seg.DepartureTime != "00:00" {
		score += pointsDepTime
	}
	if seg.ArrivalTime != "" {
		score += pointsArrTime
	}
	if seg.CabinClass != "" {
		score += pointsCabin
	}
	if seg.PaymentInfo != "" {
		score += pointsPayment
	}
	if seg.AgentInfo != "" {
		score += pointsAgent
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	seg.Confidence = score
}

func isPlaceholderFlight(number string) bool {
	if strings.HasPrefix(number, "XX") {
		return true
	}
	digits := strings.TrimLeft(number, "ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	return strings.Trim(digits, "0") == ""
}
