// Package history derives the grouped, filtered and paginated views of the
// transaction list. Nothing here touches storage.
package history

import (
	"strings"
	"time"
)

// DateKeyLayout is the calendar-day key used for date filtering.
const DateKeyLayout = "2006-01-02"

var (
	// offsetLayouts carry their own zone and are converted into the caller's location.
	offsetLayouts = []string{time.RFC3339Nano, time.RFC3339}

	// localLayouts have no zone and are read in the caller's location.
	localLayouts = []string{
		"2006-01-02T15:04:05.000",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		DateKeyLayout,
	}

	// legacyLayouts are tried strictly and in order: day-first wins over month-first.
	legacyLayouts = []string{
		"02/01/2006",
		"2/1/2006",
		"01/02/2006",
		"1/2/2006",
	}
)

// ParseDate reads a stored transaction date. ISO-8601 values are tried first,
// then the slash-separated layouts written by older versions of the app.
// A legacy layout only matches when formatting the parsed value gives back the
// exact input, so "5/1/2024" never matches a zero-padded layout.
func ParseDate(raw string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.In(loc), true
		}
	}

	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}

	for _, layout := range legacyLayouts {
		t, err := time.ParseInLocation(layout, value, loc)
		if err != nil {
			continue
		}
		if t.Format(layout) == value {
			return t, true
		}
	}

	return time.Time{}, false
}

// DateKey returns the YYYY-MM-DD day of raw in loc, or "" when raw is not a date.
func DateKey(raw string, loc *time.Location) string {
	t, ok := ParseDate(raw, loc)
	if !ok {
		return ""
	}
	return t.Format(DateKeyLayout)
}

// FormatDateTime renders raw as "15 Mar 2024 09:30". Unparseable values are
// returned as they were stored.
func FormatDateTime(raw string, loc *time.Location) string {
	t, ok := ParseDate(raw, loc)
	if !ok {
		return raw
	}
	return t.Format("02 Jan 2006 15:04")
}

// FormatClock renders the time of day of raw, or "--:--" when it has none.
func FormatClock(raw string, loc *time.Location) string {
	t, ok := ParseDate(raw, loc)
	if !ok {
		return "--:--"
	}
	return t.Format("15:04")
}
