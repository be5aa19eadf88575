package extract

// RouteMethod identifies which extraction path produced the route data.
// Exactly one method is used per message.
type RouteMethod int

const (
	RouteNone RouteMethod = iota
	RouteCityPair
	RouteProviderIATA
	RouteBareIATA
)

// RoutePoint is one endpoint of a flight leg
type RoutePoint struct {
	IATA string
	City string
	Time string // HH:MM if the extraction path carried one
}

// FlightNumberMatch is a flight number with its optional status code
type FlightNumberMatch struct {
	Number string // carrier code + digits, no space, e.g. EK202
	Status string // e.g. HK, UN
}

// ExtractedFields is the raw result of one extraction pass. Values are
// strings as captured; indexed fields stay ordered so the i-th flight
// number pairs with the i-th date and route when a message carries
// multiple legs.
type ExtractedFields struct {
	BookingReference string
	EticketNumber    string
	PassengerNameRaw string
	FlightNumbers    []FlightNumberMatch
	Dates            []string // ISO YYYY-MM-DD
	Times            []string // HH:MM in order of appearance
	RouteMethod      RouteMethod
	Origins          []RoutePoint
	Destinations     []RoutePoint
	CabinClass       string
	PaymentInfo      string
	AgentInfo        string
}

// CandidateSegment is one flight leg assembled from extracted fields.
// It is ephemeral: either discarded or consumed by reconciliation.
type CandidateSegment struct {
	PassengerName string
	Airline       string
	FlightNumber  string
	FlightStatus  string
	Origin        string // IATA when known
	OriginCity    string
	Destination   string
	DestCity      string
	DepartureDate string // ISO date or empty
	DepartureTime string // HH:MM or empty
	ArrivalTime   string
	PNR           string
	EticketNumber string
	CabinClass    string
	PaymentInfo   string
	AgentInfo     string
	RouteMethod   RouteMethod
	Confidence    int
	Reasons       []string
}

// HasRoute reports whether the segment carries both endpoints
func (s *CandidateSegment) HasRoute() bool {
	return (s.Origin != "" || s.OriginCity != "") && (s.Destination != "" || s.DestCity != "")
}
