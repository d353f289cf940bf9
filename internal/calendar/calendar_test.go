package calendar

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
    return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextBusinessDay(t *testing.T) {
    // Wed Jun 3 2026 -> Thu Jun 4
    assert.Equal(t, date(2026, time.June, 4), NextBusinessDay(date(2026, time.June, 3)))
    // Fri Jun 5 -> Mon Jun 8
    assert.Equal(t, date(2026, time.June, 8), NextBusinessDay(date(2026, time.June, 5)))
    // Sat Jun 6 -> Mon Jun 8
    assert.Equal(t, date(2026, time.June, 8), NextBusinessDay(date(2026, time.June, 6)))
}

func TestNextBusinessDayNeverWeekend(t *testing.T) {
    d := date(2026, time.January, 1)
    for i := 0; i < 60; i++ {
        d = NextBusinessDay(d)
        if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
            t.Fatalf("landed on weekend: %s", d)
        }
    }
}

func TestAddBusinessDaysZero(t *testing.T) {
    start := date(2026, time.June, 6) // a Saturday, still returned as-is
    assert.Equal(t, start, AddBusinessDays(start, 0, nil))
}

func TestAddBusinessDays(t *testing.T) {
    cases := []struct {
        name  string
        start time.Time
        n     int
        want  time.Time
    }{
        {"within week", date(2026, time.June, 1), 2, date(2026, time.June, 3)},         // Mon +2 -> Wed
        {"across weekend", date(2026, time.June, 4), 3, date(2026, time.June, 9)},      // Thu +3 -> Tue
        {"from friday", date(2026, time.June, 5), 1, date(2026, time.June, 8)},         // Fri +1 -> Mon
        {"two weeks", date(2026, time.June, 1), 10, date(2026, time.June, 15)},         // Mon +10 -> Mon
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            assert.Equal(t, tc.want, AddBusinessDays(tc.start, tc.n, nil))
        })
    }
}

func TestAddBusinessDaysStrictlyIncreasing(t *testing.T) {
    start := date(2026, time.June, 1)
    prev := AddBusinessDays(start, 0, nil)
    for n := 1; n <= 15; n++ {
        next := AddBusinessDays(start, n, nil)
        require.True(t, next.After(prev), "n=%d: %s not after %s", n, next, prev)
        prev = next
    }
}

func TestAddBusinessDaysCustomExcluded(t *testing.T) {
    // Exclude Sun/Mon: Fri Jun 5 +2 counts Sat Jun 6 and Tue Jun 9.
    excluded := map[time.Weekday]bool{time.Sunday: true, time.Monday: true}
    assert.Equal(t, date(2026, time.June, 9), AddBusinessDays(date(2026, time.June, 5), 2, excluded))
}

func TestBusinessDaysBetween(t *testing.T) {
    cases := []struct {
        name       string
        start, end time.Time
        want       int
    }{
        {"same day", date(2026, time.June, 3), date(2026, time.June, 3), 0},
        {"end before start", date(2026, time.June, 5), date(2026, time.June, 1), 0},
        {"next day", date(2026, time.June, 3), date(2026, time.June, 4), 1},
        {"over weekend", date(2026, time.June, 5), date(2026, time.June, 8), 1}, // Fri -> Mon
        {"full week", date(2026, time.June, 1), date(2026, time.June, 8), 5},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            assert.Equal(t, tc.want, BusinessDaysBetween(tc.start, tc.end, nil))
        })
    }
}

func TestBusinessDaysBetweenIgnoresClockTime(t *testing.T) {
    start := time.Date(2026, time.June, 3, 23, 30, 0, 0, time.UTC)
    end := time.Date(2026, time.June, 4, 1, 0, 0, 0, time.UTC)
    assert.Equal(t, 1, BusinessDaysBetween(start, end, nil))
}

func TestCalculateShipDateBeforeCutoff(t *testing.T) {
    // Wed Jun 3 10:00, cutoff 14:00, 1 handling day -> Thu Jun 4
    now := time.Date(2026, time.June, 3, 10, 0, 0, 0, time.UTC)
    got := CalculateShipDate(now, 1, "14:00", nil)
    assert.Equal(t, date(2026, time.June, 4), got)
}

func TestCalculateShipDateAtCutoffInclusive(t *testing.T) {
    // Exactly at cutoff counts as past: clock starts tomorrow.
    now := time.Date(2026, time.June, 3, 14, 0, 0, 0, time.UTC)
    got := CalculateShipDate(now, 1, "14:00", nil)
    assert.Equal(t, date(2026, time.June, 5), got)
}

func TestCalculateShipDatePastCutoffIsFuture(t *testing.T) {
    now := time.Date(2026, time.June, 3, 18, 0, 0, 0, time.UTC)
    for handling := 0; handling <= 5; handling++ {
        got := CalculateShipDate(now, handling, "14:00", nil)
        require.True(t, got.After(date(2026, time.June, 3)), "handling=%d: %s", handling, got)
        require.True(t, Weekdays[got.Weekday()], "handling=%d landed on %s", handling, got.Weekday())
    }
}

func TestCalculateShipDateAcrossWeekend(t *testing.T) {
    // Fri Jun 5 15:00 (past cutoff) + 2 handling days: Sat start, count Mon+Tue.
    now := time.Date(2026, time.June, 5, 15, 0, 0, 0, time.UTC)
    got := CalculateShipDate(now, 2, "14:00", nil)
    assert.Equal(t, date(2026, time.June, 9), got)
}

func TestCalculateShipDateLandsOnProcessingDay(t *testing.T) {
    // Merchant only processes Mon/Wed/Fri. Tue Jun 2 with 0 handling days must
    // push to Wed.
    processing := map[time.Weekday]bool{time.Monday: true, time.Wednesday: true, time.Friday: true}
    now := time.Date(2026, time.June, 2, 9, 0, 0, 0, time.UTC)
    got := CalculateShipDate(now, 0, "14:00", processing)
    assert.Equal(t, date(2026, time.June, 3), got)
}

func TestCalculateShipDateInvalidCutoff(t *testing.T) {
    // Garbage cutoff never triggers the next-day shift.
    now := time.Date(2026, time.June, 3, 23, 0, 0, 0, time.UTC)
    got := CalculateShipDate(now, 0, "not-a-time", nil)
    assert.Equal(t, date(2026, time.June, 3), got)
}
