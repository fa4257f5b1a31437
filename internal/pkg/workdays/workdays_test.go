package workdays

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCountChargeable_SundayExcluded(t *testing.T) {
	p := ExcludeSundays()

	// Monday 2025-01-06 through Sunday 2025-01-12: 7 calendar days, one Sunday.
	got := p.CountChargeable(date(2025, time.January, 6), date(2025, time.January, 12))
	assert.Equal(t, 6, got)
}

func TestCountChargeable_WeekendsExcluded(t *testing.T) {
	p := ExcludeWeekends()

	// Full week Mon-Sun leaves five weekdays.
	got := p.CountChargeable(date(2025, time.January, 6), date(2025, time.January, 12))
	assert.Equal(t, 5, got)
}

func TestCountChargeable_EndBeforeStart(t *testing.T) {
	p := ExcludeSundays()

	got := p.CountChargeable(date(2025, time.January, 10), date(2025, time.January, 6))
	assert.Equal(t, 0, got)
}

func TestCountChargeable_ZeroDates(t *testing.T) {
	p := ExcludeSundays()

	assert.Equal(t, 0, p.CountChargeable(time.Time{}, date(2025, time.January, 6)))
	assert.Equal(t, 0, p.CountChargeable(date(2025, time.January, 6), time.Time{}))
}

func TestCountChargeable_SingleExcludedDay(t *testing.T) {
	p := ExcludeSundays()

	// 2025-01-12 is a Sunday.
	sunday := date(2025, time.January, 12)
	assert.Equal(t, 0, p.CountChargeable(sunday, sunday))
	assert.True(t, p.Excluded(sunday))
}

func TestCountChargeable_SingleChargeableDay(t *testing.T) {
	p := ExcludeSundays()

	monday := date(2025, time.January, 6)
	assert.Equal(t, 1, p.CountChargeable(monday, monday))
}

func TestCountChargeable_IgnoresTimeOfDay(t *testing.T) {
	p := ExcludeSundays()

	start := time.Date(2025, time.February, 3, 23, 59, 0, 0, time.UTC)
	end := time.Date(2025, time.February, 7, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 5, p.CountChargeable(start, end))
}

func TestCountChargeable_SpansMonthBoundary(t *testing.T) {
	p := ExcludeSundays()

	// 2025-01-30 (Thu) .. 2025-02-04 (Tue): 6 calendar days, one Sunday (02-02).
	got := p.CountChargeable(date(2025, time.January, 30), date(2025, time.February, 4))
	assert.Equal(t, 5, got)
}

func TestParse(t *testing.T) {
	p, err := Parse("0")
	require.NoError(t, err)
	assert.True(t, p.Excluded(date(2025, time.January, 12)))  // Sunday
	assert.False(t, p.Excluded(date(2025, time.January, 11))) // Saturday

	p, err = Parse("0,6")
	require.NoError(t, err)
	assert.True(t, p.Excluded(date(2025, time.January, 11)))

	_, err = Parse("7")
	assert.Error(t, err)

	_, err = Parse("monday")
	assert.Error(t, err)
}
