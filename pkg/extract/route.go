package extract

import (
	"regexp"
)

var (
	// "From: Lagos 14:30" / "Departure: Lagos, Nigeria 14:30" (city only,
	// no IATA prefix)
	fromCityRe = regexp.MustCompile(`\b(?i:from|departure)\s*:\s*([A-Z][a-z][A-Za-z .,'-]*?)\s+(\d{1,2}:\d{2})`)
	toCityRe   = regexp.MustCompile(`\b(?i:to|arrival)\s*:\s*([A-Z][a-z][A-Za-z .,'-]*?)\s+(\d{1,2}:\d{2})`)

	// "Departure: LOS Lagos, Nigeria 14:30" (provider format with IATA)
	depIataRe = regexp.MustCompile(`\b(?i:departure)\s*:\s*([A-Z]{3})\s+([A-Z][a-z][A-Za-z .,'-]*?)\s+(\d{1,2}:\d{2})`)
	arrIataRe = regexp.MustCompile(`\b(?i:arrival)\s*:\s*([A-Z]{3})\s+([A-Z][a-z][A-Za-z .,'-]*?)\s+(\d{1,2}:\d{2})`)

	bareIataRe = regexp.MustCompile(`\b[A-Z]{3}\b`)
)

// Three-letter uppercase tokens that show up in ticket text but are never
// airports. The bare-IATA fallback filters these before pairing tokens.
var iataBlacklist = map[string]bool{
	"AND": true, "THE": true, "FOR": true, "YOU": true, "ALL": true,
	"NEW": true, "PNR": true, "REF": true, "SEG": true, "VIA": true,
	"PDF": true, "WWW": true, "COM": true, "NET": true, "ORG": true,
	"ETA": true, "ETD": true, "GMT": true, "UTC": true,
	"USD": true, "EUR": true, "GBP": true, "NGN": true, "IDR": true,
	"MON": true, "TUE": true, "WED": true, "THU": true, "FRI": true,
	"SAT": true, "SUN": true,
	"JAN": true, "FEB": true, "MAR": true, "APR": true, "MAY": true,
	"JUN": true, "JUL": true, "AUG": true, "SEP": true, "OCT": true,
	"NOV": true, "DEC": true,
	"MRS": true, "TKT": true, "FLT": true, "DEP": true, "ARR": true,
	"ADT": true, "CHD": true, "INF": true,
}

// extractRoute resolves origin/destination pairs through a priority
// cascade. Whichever method first yields data is used exclusively for the
// message; extraction methods are never mixed.
func extractRoute(text string) (RouteMethod, []RoutePoint, []RoutePoint) {
	// 1. Labelled city-time pairs
	froms := fromCityRe.FindAllStringSubmatch(text, -1)
	tos := toCityRe.FindAllStringSubmatch(text, -1)
	if len(froms) > 0 && len(tos) > 0 {
		var origins, dests []RoutePoint
		for _, m := range froms {
			origins = append(origins, RoutePoint{City: m[1], Time: m[2]})
		}
		for _, m := range tos {
			dests = append(dests, RoutePoint{City: m[1], Time: m[2]})
		}
		return RouteCityPair, origins, dests
	}

	// 2. Provider format: label, IATA, city, time
	deps := depIataRe.FindAllStringSubmatch(text, -1)
	arrs := arrIataRe.FindAllStringSubmatch(text, -1)
	if len(deps) > 0 && len(arrs) > 0 {
		var origins, dests []RoutePoint
		for _, m := range deps {
			origins = append(origins, RoutePoint{IATA: m[1], City: m[2], Time: m[3]})
		}
		for _, m := range arrs {
			dests = append(dests, RoutePoint{IATA: m[1], City: m[2], Time: m[3]})
		}
		return RouteProviderIATA, origins, dests
	}

	// 3. Bare IATA tokens, blacklist-filtered, paired in order of
	// appearance
	var tokens []string
	for _, tok := range bareIataRe.FindAllString(text, -1) {
		if iataBlacklist[tok] {
			continue
		}
		tokens = append(tokens, tok)
	}
	if len(tokens) >= 2 {
		var origins, dests []RoutePoint
		for i := 0; i+1 < len(tokens); i += 2 {
			origins = append(origins, RoutePoint{IATA: tokens[i]})
			dests = append(dests, RoutePoint{IATA: tokens[i+1]})
		}
		return RouteBareIATA, origins, dests
	}

	return RouteNone, nil, nil
}
