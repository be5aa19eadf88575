package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExtractDatesShortNotation(t *testing.T) {
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	dates := extractDates("departing Wed 31 Dec 25 at dawn", now)
	assert.Equal(t, []string{"2025-12-31"}, dates)

	dates = extractDates("Mon 4 Aug 25 and Tue 5 Aug 25", now)
	assert.Equal(t, []string{"2025-08-04", "2025-08-05"}, dates)
}

func TestExtractDatesLongNotationInfersYear(t *testing.T) {
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	dates := extractDates("Wednesday, 28 January departure", now)
	assert.Equal(t, []string{"2026-01-28"}, dates)
}

func TestExtractDatesIgnoresNoise(t *testing.T) {
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	assert.Empty(t, extractDates("no schedule information here", now))
	assert.Empty(t, extractDates("31 Dec 25 without weekday prefix", now))
}

func TestExtractTimes(t *testing.T) {
	times := extractTimes("Departure: 14:30 Arrival: 23:45")
	assert.Equal(t, []string{"14:30", "23:45"}, times)

	assert.Empty(t, extractTimes("no clock values"))
}
