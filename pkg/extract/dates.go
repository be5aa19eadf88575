package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// "Wed 31 Dec 25"
	shortDateRe = regexp.MustCompile(`\b(?i:mon|tue|wed|thu|fri|sat|sun)\s+(\d{1,2})\s+((?i:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec))\s+(\d{2})\b`)
	// "Wednesday, 28 January" (year omitted)
	longDateRe = regexp.MustCompile(`\b(?i:monday|tuesday|wednesday|thursday|friday|saturday|sunday),\s+(\d{1,2})\s+((?i:january|february|march|april|may|june|july|august|september|october|november|december))\b`)

	timeRe = regexp.MustCompile(`\b(\d{1,2}:\d{2})\b`)
)

var monthNumbers = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// extractDates collects every date in either supported notation,
// normalized to ISO YYYY-MM-DD. The long notation omits the year, which
// is inferred from now.
func extractDates(text string, now time.Time) []string {
	var dates []string

	for _, m := range shortDateRe.FindAllStringSubmatch(text, -1) {
		day, _ := strconv.Atoi(m[1])
		month, ok := monthNumbers[strings.ToLower(m[2])[:3]]
		if !ok {
			continue
		}
		year, _ := strconv.Atoi(m[3])
		dates = append(dates, fmt.Sprintf("%04d-%02d-%02d", 2000+year, month, day))
	}

	for _, m := range longDateRe.FindAllStringSubmatch(text, -1) {
		day, _ := strconv.Atoi(m[1])
		month, ok := monthNumbers[strings.ToLower(m[2])[:3]]
		if !ok {
			continue
		}
		dates = append(dates, fmt.Sprintf("%04d-%02d-%02d", now.Year(), month, day))
	}

	return dates
}

// extractTimes collects HH:MM tokens in order of appearance
func extractTimes(text string) []string {
	var times []string
	for _, m := range timeRe.FindAllStringSubmatch(text, -1) {
		times = append(times, m[1])
	}
	return times
}
