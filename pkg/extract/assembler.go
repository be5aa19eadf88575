package extract

// AssembleSegments pairs the indexed field arrays into candidate
// segments, one per flight leg. Non-indexed fields are attached
// identically to every segment. When array lengths disagree the last
// seen value carries forward rather than leaving a hole.
func (e *TicketExtractor) AssembleSegments(fields *ExtractedFields) []CandidateSegment {
	n := len(fields.FlightNumbers)
	if len(fields.Dates) > n {
		n = len(fields.Dates)
	}
	if len(fields.Origins) > n {
		n = len(fields.Origins)
	}
	if len(fields.Destinations) > n {
		n = len(fields.Destinations)
	}
	if n == 0 {
		return nil
	}

	name := NormalizeName(fields.PassengerNameRaw)

	segments := make([]CandidateSegment, 0, n)
	for i := 0; i < n; i++ {
		seg := CandidateSegment{
			PassengerName: name,
			PNR:           fields.BookingReference,
			EticketNumber: fields.EticketNumber,
			CabinClass:    fields.CabinClass,
			PaymentInfo:   fields.PaymentInfo,
			AgentInfo:     fields.AgentInfo,
			RouteMethod:   fields.RouteMethod,
		}

		if fn, ok := pickFlight(fields.FlightNumbers, i); ok {
			seg.FlightNumber = fn.Number
			seg.FlightStatus = fn.Status
			if len(fn.Number) >= 2 {
				seg.Airline = fn.Number[:2]
			}
		}

		seg.DepartureDate = pickString(fields.Dates, i)

		if origin, ok := pickPoint(fields.Origins, i); ok {
			seg.Origin = origin.IATA
			seg.OriginCity = origin.City
			seg.DepartureTime = origin.Time
		}
		if dest, ok := pickPoint(fields.Destinations, i); ok {
			seg.Destination = dest.IATA
			seg.DestCity = dest.City
			seg.ArrivalTime = dest.Time
		}

		// Route paths without embedded times fall back to the bare
		// time matches, two per leg
		if seg.DepartureTime == "" && 2*i < len(fields.Times) {
			seg.DepartureTime = fields.Times[2*i]
		}
		if seg.ArrivalTime == "" && 2*i+1 < len(fields.Times) {
			seg.ArrivalTime = fields.Times[2*i+1]
		}

		segments = append(segments, seg)
	}

	e.logger.Debug("Assembled candidate segments", "count", len(segments))
	return segments
}

func pickString(vals []string, i int) string {
	if len(vals) == 0 {
		return ""
	}
	if i < len(vals) {
		return vals[i]
	}
	return vals[len(vals)-1]
}

func pickFlight(vals []FlightNumberMatch, i int) (FlightNumberMatch, bool) {
	if len(vals) == 0 {
		return FlightNumberMatch{}, false
	}
	if i < len(vals) {
		return vals[i], true
	}
	return vals[len(vals)-1], true
}

func pickPoint(vals []RoutePoint, i int) (RoutePoint, bool) {
	if len(vals) == 0 {
		return RoutePoint{}, false
	}
	if i < len(vals) {
		return vals[i], true
	}
	return vals[len(vals)-1], true
}
