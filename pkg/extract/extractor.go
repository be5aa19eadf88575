package extract

import (
	"regexp"
	"strings"
	"time"

	"travelmail-service/pkg/logger"
)

// pattern is one alternative in an ordered extractor cascade. The first
// pattern whose expression matches wins the field.
type pattern struct {
	name string
	re   *regexp.Regexp
}

func firstMatch(patterns []pattern, text string) (string, string) {
	for _, p := range patterns {
		if m := p.re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1]), p.name
		}
	}
	return "", ""
}

// Keywords gating whether a message is plausibly a flight ticket at all
var ticketKeywords = []string{
	"flight", "airline", "booking", "reservation", "itinerary",
	"boarding pass", "e-ticket", "eticket", "pnr", "ticket",
}

var (
	pnrPatterns = []pattern{
		{"labelled-pnr", regexp.MustCompile(`\b(?i:pnr|booking reference|booking ref|reservation code|record locator|confirmation code)\s*[:#]?\s*([A-Z0-9]{6})\b`)},
		{"bare-reference", regexp.MustCompile(`\b(?i:reference|ref)\s*[:#]\s*([A-Z0-9]{6})\b`)},
	}

	eticketPatterns = []pattern{
		{"labelled-eticket", regexp.MustCompile(`\b(?i:e-?ticket)(?:\s*(?i:number|no\.?|#))?\s*[:#]?\s*(\d{3}[- ]?\d{10})\b`)},
		{"ticket-number", regexp.MustCompile(`\b(?i:ticket\s*(?:number|no\.?))\s*[:#]?\s*(\d{10,14})\b`)},
	}

	namePatterns = []pattern{
		{"honorific", regexp.MustCompile(`\b(?i:mr|mrs|ms|mstr|miss|dr)\.?\s+([A-Z][A-Za-z'-]{2,}(?:\s+[A-Z][A-Za-z'-]{2,}){0,3})`)},
		{"labelled-name", regexp.MustCompile(`\b(?i:passenger(?:\s*name)?)\s*[:#]\s*([A-Za-z][A-Za-z/'. -]{2,60})`)},
		{"surname-first", regexp.MustCompile(`\b([A-Z]{2,}/[A-Z]{2,}(?:\s+[A-Z]{3,})?(?:\s+(?:MR|MRS|MS|MSTR|MISS|DR)\b)?)`)},
	}

	labelledFlightRe = regexp.MustCompile(`\b(?i:flight\s*(?:number|no\.?|#)?)\s*[:#]\s*([A-Z]{2})\s?(\d{3,4})\b(?:\s*\(([A-Z]{2})\))?`)
	bareFlightRe     = regexp.MustCompile(`\b([A-Z]{2})\s?(\d{3,4})\b(?:\s*\(([A-Z]{2})\))?`)

	cabinPatterns = []pattern{
		{"labelled-cabin", regexp.MustCompile(`(?i)\b(?:cabin|class)\s*[:#]?\s*(premium economy|economy|business|first)\b`)},
		{"suffix-cabin", regexp.MustCompile(`(?i)\b(premium economy|economy|business|first)\s+class\b`)},
	}

	paymentPatterns = []pattern{
		{"labelled-payment", regexp.MustCompile(`(?i)\b(?:payment(?:\s*method)?|paid\s*(?:by|with))\s*[:#]?\s*(visa|mastercard|amex|american express|credit card|debit card|cash|bank transfer)\b`)},
		{"masked-card", regexp.MustCompile(`(?i)\b((?:visa|mastercard|amex)\s*(?:card\s*)?(?:ending(?:\s*in)?\s*|[x*]{2,}\s*)\d{4})\b`)},
	}

	agentPatterns = []pattern{
		{"labelled-agent", regexp.MustCompile(`\b(?i:issuing agent|booking agent|issued by|agent)\s*[:#]\s*([A-Za-z][A-Za-z0-9 .'-]{2,40})`)},
	}
)

// TicketExtractor runs heuristic field extraction over normalized ticket
// text
type TicketExtractor struct {
	logger logger.Logger
	now    func() time.Time
}

// NewTicketExtractor creates a new ticket extractor
func NewTicketExtractor(logger logger.Logger) *TicketExtractor {
	return &TicketExtractor{
		logger: logger,
		now:    time.Now,
	}
}

// IsTicketLike reports whether the text contains any ticket keyword.
// Messages failing this gate are skipped without extraction.
func IsTicketLike(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range ticketKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Extract runs every field extractor once against the text
func (e *TicketExtractor) Extract(text string) *ExtractedFields {
	fields := &ExtractedFields{}

	var pat string
	fields.BookingReference, pat = firstMatch(pnrPatterns, text)
	if fields.BookingReference != "" {
		e.logger.Debug("Booking reference found", "pnr", fields.BookingReference, "pattern", pat)
	}

	fields.EticketNumber, pat = firstMatch(eticketPatterns, text)
	if fields.EticketNumber != "" {
		fields.EticketNumber = strings.Map(dropSeparators, fields.EticketNumber)
		e.logger.Debug("E-ticket number found", "eticket", fields.EticketNumber, "pattern", pat)
	}

	fields.PassengerNameRaw, pat = firstMatch(namePatterns, text)
	if fields.PassengerNameRaw != "" {
		e.logger.Debug("Passenger name found", "raw", fields.PassengerNameRaw, "pattern", pat)
	}

	fields.FlightNumbers = extractFlightNumbers(text)
	fields.Dates = extractDates(text, e.now())
	fields.Times = extractTimes(text)
	fields.RouteMethod, fields.Origins, fields.Destinations = extractRoute(text)

	fields.CabinClass, _ = firstMatch(cabinPatterns, text)
	fields.PaymentInfo, _ = firstMatch(paymentPatterns, text)
	fields.AgentInfo, _ = firstMatch(agentPatterns, text)

	e.logger.Debug("Extraction pass completed",
		"flightNumbers", len(fields.FlightNumbers),
		"dates", len(fields.Dates),
		"routeMethod", fields.RouteMethod)

	return fields
}

// extractFlightNumbers collects flight numbers from two independent
// pattern families: an explicit "Flight Number" label, then bare
// carrier-code matches. The labelled family wins when it yields anything.
func extractFlightNumbers(text string) []FlightNumberMatch {
	if matches := collectFlights(labelledFlightRe, text); len(matches) > 0 {
		return matches
	}
	return collectFlights(bareFlightRe, text)
}

func collectFlights(re *regexp.Regexp, text string) []FlightNumberMatch {
	var out []FlightNumberMatch
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		match := FlightNumberMatch{
			Number: m[1] + m[2],
			Status: m[3],
		}
		// The same leg is often repeated in body and attachment text
		if len(out) > 0 && out[len(out)-1].Number == match.Number {
			if out[len(out)-1].Status == "" {
				out[len(out)-1].Status = match.Status
			}
			continue
		}
		out = append(out, match)
	}
	return out
}

func dropSeparators(r rune) rune {
	if r == '-' || r == ' ' {
		return -1
	}
	return r
}
