package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// Hapio exchanges durations as ISO-8601 strings. The scheduling model only
// deals in whole minutes, so the codec is restricted to the PT<n>M / PT<h>H
// forms and must round-trip exactly.

// MinutesToISO8601 renders a whole-minute duration as an ISO-8601 string.
func MinutesToISO8601(minutes int) (string, error) {
	if minutes < 0 {
		return "", NewValidationError("duration must not be negative, got %d", minutes)
	}
	return fmt.Sprintf("PT%dM", minutes), nil
}

// ISO8601ToMinutes parses PT<h>H<m>M style durations into a minute count.
func ISO8601ToMinutes(value string) (int, error) {
	s := strings.ToUpper(strings.TrimSpace(value))
	if !strings.HasPrefix(s, "PT") || len(s) == 2 {
		return 0, NewValidationError("invalid ISO-8601 duration %q", value)
	}
	s = strings.TrimPrefix(s, "PT")

	total := 0
	num := ""
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			num += string(r)
		case r == 'H' || r == 'M':
			if num == "" {
				return 0, NewValidationError("invalid ISO-8601 duration %q", value)
			}
			n, err := strconv.Atoi(num)
			if err != nil {
				return 0, NewValidationError("invalid ISO-8601 duration %q", value)
			}
			if r == 'H' {
				total += n * 60
			} else {
				total += n
			}
			num = ""
		default:
			return 0, NewValidationError("unsupported ISO-8601 duration component in %q", value)
		}
	}
	if num != "" {
		return 0, NewValidationError("invalid ISO-8601 duration %q", value)
	}
	return total, nil
}
