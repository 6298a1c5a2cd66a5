package harvest

import (
	"strings"
	"time"
)

// Window names a recency window anchored at "now".
type Window string

const (
	WindowToday Window = "today"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
)

// timeLayouts are the publication-time formats sources are observed to use,
// tried in order. Layouts without a year assume the current year.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04",
	"2006/01/02",
	"2006年01月02日 15:04",
	"2006年01月02日",
	"2006.01.02",
}

var yearlessLayouts = []string{
	"01-02 15:04",
	"01月02日 15:04",
	"01-02",
}

// RecencyFilter tests a raw, unparsed time string against a window. An empty
// or unparseable string is treated as recent: many sources publish no
// machine-readable time and dropping them all would gut the harvest.
type RecencyFilter struct {
	Window Window
	Now    func() time.Time
}

// Keep reports whether an item with the given raw time string falls inside
// the window.
func (r RecencyFilter) Keep(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return true
	}

	now := time.Now()
	if r.Now != nil {
		now = r.Now()
	}

	t, ok := parseTime(raw, now)
	if !ok {
		return true
	}

	switch r.Window {
	case WindowToday:
		y1, m1, d1 := t.Date()
		y2, m2, d2 := now.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	case WindowWeek:
		return !t.Before(now.AddDate(0, 0, -7))
	case WindowMonth:
		return !t.Before(now.AddDate(0, -1, 0))
	default:
		return true
	}
}

func parseTime(raw string, now time.Time) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, raw, now.Location()); err == nil {
			return t, true
		}
	}
	for _, layout := range yearlessLayouts {
		if t, err := time.ParseInLocation(layout, raw, now.Location()); err == nil {
			return t.AddDate(now.Year(), 0, 0), true
		}
	}
	return time.Time{}, false
}
