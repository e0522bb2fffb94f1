package rostercsv

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizeDate converts the three date shapes observed in roster sources
// (`M/D`, `YYYY/M/D`, `YYYY-MM-DD`) into canonical zero-padded
// `YYYY-MM-DD`. Dates without a year are anchored to cohortYear.
//
// Unparseable input is passed through unchanged with ok=false so the
// caller can decide whether to drop the record. The function never errors.
func NormalizeDate(raw string, cohortYear int) (string, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return raw, false
	}

	var parts []string
	switch {
	case strings.Contains(value, "-"):
		parts = strings.Split(value, "-")
		if len(parts) != 3 {
			return raw, false
		}
	case strings.Contains(value, "/"):
		parts = strings.Split(value, "/")
		switch len(parts) {
		case 2:
			parts = append([]string{strconv.Itoa(cohortYear)}, parts...)
		case 3:
		default:
			return raw, false
		}
	default:
		return raw, false
	}

	year, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || year < 1000 || year > 9999 {
		return raw, false
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || month < 1 || month > 12 {
		return raw, false
	}
	day, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil || day < 1 || day > 31 {
		return raw, false
	}

	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}
