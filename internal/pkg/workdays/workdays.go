package workdays

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Policy decides which weekdays count against a leave allocation.
// The exclusion set is declared once and injected into every caller
// (submission, approval re-check, recall refund, payroll deduction) so the
// rule cannot drift between call sites.
type Policy struct {
	excluded map[time.Weekday]bool
}

// NewPolicy builds a policy excluding the given weekdays.
func NewPolicy(excluded ...time.Weekday) Policy {
	m := make(map[time.Weekday]bool, len(excluded))
	for _, d := range excluded {
		m[d] = true
	}
	return Policy{excluded: m}
}

// ExcludeSundays is the authoritative policy: Sundays are the only
// non-chargeable weekday, matching the payroll day-count rule.
func ExcludeSundays() Policy {
	return NewPolicy(time.Sunday)
}

// ExcludeWeekends excludes both Saturday and Sunday. Kept as a named
// configuration for historical records charged under the older rule.
func ExcludeWeekends() Policy {
	return NewPolicy(time.Saturday, time.Sunday)
}

// Parse builds a policy from a comma-separated list of weekday numbers
// (0 = Sunday .. 6 = Saturday), e.g. "0" or "0,6".
func Parse(s string) (Policy, error) {
	var days []time.Weekday
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > 6 {
			return Policy{}, fmt.Errorf("invalid weekday %q: must be 0-6", part)
		}
		days = append(days, time.Weekday(n))
	}
	return NewPolicy(days...), nil
}

// Excluded reports whether d falls on a non-chargeable weekday.
func (p Policy) Excluded(d time.Time) bool {
	return p.excluded[d.Weekday()]
}

// CountChargeable returns the number of chargeable days from start to end
// inclusive. A zero-value date or an end before start yields 0.
func (p Policy) CountChargeable(start, end time.Time) int {
	if start.IsZero() || end.IsZero() {
		return 0
	}
	start = truncateToDay(start)
	end = truncateToDay(end)
	if end.Before(start) {
		return 0
	}

	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if !p.excluded[d.Weekday()] {
			count++
		}
	}
	return count
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
