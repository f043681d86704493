package offer

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// TimeWindow is a departure-time preference.
type TimeWindow string

const (
	WindowFlexible  TimeWindow = "flexible"
	WindowMorning   TimeWindow = "morning"
	WindowAfternoon TimeWindow = "afternoon"
	WindowEvening   TimeWindow = "evening"
)

// window bounds in hours, [start, end)
var windowHours = map[TimeWindow][2]int{
	WindowMorning:   {0, 12},
	WindowAfternoon: {12, 17},
	WindowEvening:   {17, 24},
}

// Preferences are the traveler constraints applied before ranking.
type Preferences struct {
	// Nonstop, when set, must equal the offer's nonstop flag exactly.
	Nonstop    *bool
	TimeWindow TimeWindow
}

// FilterPreferences drops offers that disagree with the nonstop preference or
// depart outside the requested time window. Unknown times always pass.
func FilterPreferences(ctx context.Context, offers []Offer, prefs Preferences) []Offer {
	results := make([]Offer, 0, len(offers))

	for _, o := range offers {
		if prefs.Nonstop != nil && o.Nonstop != *prefs.Nonstop {
			continue
		}

		if !isWithinWindow(ctx, o.DepartureTime, prefs.TimeWindow) {
			continue
		}

		results = append(results, o)
	}

	return results
}

// departureTime is a local "15:04" clock time, or NotAvailable
func isWithinWindow(ctx context.Context, departureTime string, window TimeWindow) bool {
	bounds, ok := windowHours[TimeWindow(strings.ToLower(string(window)))]
	if !ok {
		// flexible or empty
		return true
	}

	if departureTime == "" || departureTime == NotAvailable {
		return true
	}

	parsed, err := time.Parse("15:04", departureTime)
	if err != nil {
		slog.WarnContext(ctx, "failed to parse departure time", slog.String("time", departureTime),
			slog.Any("error", err))
		return true
	}

	return parsed.Hour() >= bounds[0] && parsed.Hour() < bounds[1]
}
