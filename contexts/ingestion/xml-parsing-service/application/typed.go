package application

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// timestampLayouts lists the four formats spec.md §4.3 requires, tried in
// order; the first one to parse cleanly wins.
var timestampLayouts = []string{
	"02/01/2006 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// parseTimestamp accepts any of the four formats spec.md §4.3 enumerates.
// A blank or unparseable value returns ok=false rather than an error, so
// the caller can push a structured Problem and continue.
func parseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseMoney parses a fixed-point, scale-2 decimal. Blank input returns
// ok=false; a non-blank unparseable value also returns ok=false.
func parseMoney(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Decimal{}, false
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return value.Round(2), true
}

// parseInt parses a plain integer; blank input returns ok=false.
func parseInt(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}
