package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ConvertMinutesToDuration convert minutes to duration format string
// Example: 125 -> "2h 5m"
func ConvertMinutesToDuration(durationInMinutes int64) string {

	h := durationInMinutes / 60
	m := durationInMinutes % 60

	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}

	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}

	return fmt.Sprintf("%dh %dm", h, m)
}

var isoDurationPattern = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?)?$`)

// ParseISODuration converts an ISO-8601 duration to minutes.
// Example: "PT7H10M" -> 430, "P1DT2H" -> 1560
func ParseISODuration(duration string) (int, error) {
	match := isoDurationPattern.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(duration)))
	if match == nil || duration == "P" || duration == "PT" {
		return 0, fmt.Errorf("invalid iso-8601 duration %q", duration)
	}

	var parts [3]int
	for i, s := range match[1:] {
		if s == "" {
			continue
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("invalid iso-8601 duration %q: %w", duration, err)
		}
		parts[i] = v
	}

	return parts[0]*24*60 + parts[1]*60 + parts[2], nil
}

// SplitTimestamp separates a local timestamp into its date and time of day.
// Example: "2026-11-01T19:30:00" -> "2026-11-01", "19:30"
func SplitTimestamp(timestamp string) (string, string, error) {
	layouts := []string{
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		time.RFC3339,
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, timestamp); err == nil {
			return t.Format("2006-01-02"), t.Format("15:04"), nil
		}
	}

	return "", "", fmt.Errorf("invalid timestamp %q", timestamp)
}

// FormatUSD formats an amount in dollars with thousand separators.
// Example: 1234.5 -> "$1,234.50"
func FormatUSD(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	cents := int64(amount*100 + 0.5)
	str := strconv.FormatInt(cents/100, 10)

	var result []byte
	count := 0
	for i := len(str) - 1; i >= 0; i-- {
		result = append([]byte{str[i]}, result...)
		count++
		if count%3 == 0 && i != 0 {
			result = append([]byte{','}, result...)
		}
	}

	formatted := fmt.Sprintf("$%s.%02d", result, cents%100)
	if negative {
		return "-" + formatted
	}

	return formatted
}
