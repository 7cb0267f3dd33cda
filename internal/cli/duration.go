package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

var errEmptyDuration = errors.New("empty duration")

var durationUnits = map[string]time.Duration{
	"ns": time.Nanosecond, "nsec": time.Nanosecond, "nanos": time.Nanosecond,
	"us": time.Microsecond, "µs": time.Microsecond, "usec": time.Microsecond, "micros": time.Microsecond,
	"ms": time.Millisecond, "msec": time.Millisecond, "millis": time.Millisecond,
	"s": time.Second, "sec": time.Second, "secs": time.Second, "second": time.Second, "seconds": time.Second,
	"m": time.Minute, "min": time.Minute, "mins": time.Minute, "minute": time.Minute, "minutes": time.Minute,
	"h": time.Hour, "hr": time.Hour, "hrs": time.Hour, "hour": time.Hour, "hours": time.Hour,
	"d": 24 * time.Hour, "day": 24 * time.Hour, "days": 24 * time.Hour,
	"w": 7 * 24 * time.Hour, "week": 7 * 24 * time.Hour, "weeks": 7 * 24 * time.Hour,
}

// parseDuration accepts Go duration syntax ("1h30m", "500ms") and the
// spelled-out form ("30sec", "2min", "1h 30min", "2days").
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errEmptyDuration
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}

	var total time.Duration
	rest := s
	for rest != "" {
		rest = strings.TrimLeftFunc(rest, unicode.IsSpace)

		i := strings.IndexFunc(rest, func(r rune) bool { return !unicode.IsDigit(r) })
		if i < 0 {
			return 0, fmt.Errorf("invalid duration %q: missing unit", s)
		}
		if i == 0 {
			return 0, fmt.Errorf("invalid duration %q: expected a number", s)
		}
		n, err := strconv.ParseInt(rest[:i], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", s, err)
		}
		rest = strings.TrimLeftFunc(rest[i:], unicode.IsSpace)

		j := strings.IndexFunc(rest, func(r rune) bool { return unicode.IsDigit(r) || unicode.IsSpace(r) })
		if j < 0 {
			j = len(rest)
		}
		unit, ok := durationUnits[rest[:j]]
		if !ok {
			return 0, fmt.Errorf("invalid duration %q: unknown unit %q", s, rest[:j])
		}
		rest = rest[j:]

		if n > 0 && unit > time.Duration(1<<63-1)/time.Duration(n) {
			return 0, fmt.Errorf("invalid duration %q: out of range", s)
		}
		step := time.Duration(n) * unit
		if total > time.Duration(1<<63-1)-step {
			return 0, fmt.Errorf("invalid duration %q: out of range", s)
		}
		total += step
	}
	return total, nil
}
