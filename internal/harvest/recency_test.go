package harvest

import (
	"testing"
	"time"
)

func TestRecencyFilter(t *testing.T) {
	now := func() time.Time {
		return time.Date(2026, 8, 24, 12, 0, 0, 0, time.Local)
	}

	tests := []struct {
		name   string
		window Window
		raw    string
		want   bool
	}{
		{"today matches", WindowToday, "2026-08-24 09:00", true},
		{"yesterday fails today", WindowToday, "2026-08-23 23:59", false},
		{"within week", WindowWeek, "2026-08-20", true},
		{"outside week", WindowWeek, "2026-08-10", false},
		{"within month", WindowMonth, "2026-08-01", true},
		{"outside month", WindowMonth, "2026-06-01", false},
		{"chinese date format", WindowToday, "2026年08月24日", true},
		{"dotted date format", WindowToday, "2026.08.24", true},
		{"yearless format assumes current year", WindowToday, "08-24 09:30", true},
		{"empty passes", WindowToday, "", true},
		{"unparseable passes", WindowToday, "两小时前", true},
		{"unknown window passes", Window("all"), "2020-01-01", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := RecencyFilter{Window: tt.window, Now: now}
			if got := f.Keep(tt.raw); got != tt.want {
				t.Errorf("Keep(%q) with window %q = %v, want %v", tt.raw, tt.window, got, tt.want)
			}
		})
	}
}
