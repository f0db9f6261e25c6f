package portfolio

import (
	"fmt"
	"strings"
	"time"
)

func parseDateFlexible(dateStr string) (time.Time, bool) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}, false
	}
	layouts := []string{
		time.RFC3339Nano, // JSON-encoded Date, e.g. 2024-01-01T00:00:00.000Z
		"2006-01-02",     // ISO date
		"2006-01",        // month picker
		"2 Jan 2006",     // e.g., 30 Oct 2025
		"02 Jan 2006",    // zero-padded day
		"Jan 2006",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseDate(field, value string) (time.Time, error) {
	t, ok := parseDateFlexible(value)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %s %q is not a date", ErrInvalidInput, field, value)
	}
	return t, nil
}
