package calendar

import (
    "strconv"
    "strings"
    "time"
)

// Weekend is the default excluded-day set for business-day arithmetic.
var Weekend = map[time.Weekday]bool{
    time.Sunday:   true,
    time.Saturday: true,
}

// Weekdays is the default processing-day set (Monday through Friday).
var Weekdays = map[time.Weekday]bool{
    time.Monday:    true,
    time.Tuesday:   true,
    time.Wednesday: true,
    time.Thursday:  true,
    time.Friday:    true,
}

// NextBusinessDay returns the next calendar day that is not a Saturday or Sunday.
func NextBusinessDay(d time.Time) time.Time {
    d = d.AddDate(0, 0, 1)
    for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
        d = d.AddDate(0, 0, 1)
    }
    return d
}

// AddBusinessDays advances start by n days, counting only days whose weekday
// is not in excluded. A nil excluded set means weekends. n=0 returns start
// unchanged.
func AddBusinessDays(start time.Time, n int, excluded map[time.Weekday]bool) time.Time {
    if excluded == nil {
        excluded = Weekend
    }
    d := start
    for counted := 0; counted < n; {
        d = d.AddDate(0, 0, 1)
        if !excluded[d.Weekday()] {
            counted++
        }
    }
    return d
}

// BusinessDaysBetween counts non-excluded days strictly after start up to and
// including end. Returns 0 when end is not after start. Clock times are
// ignored; only calendar days count.
func BusinessDaysBetween(start, end time.Time, excluded map[time.Weekday]bool) int {
    if excluded == nil {
        excluded = Weekend
    }
    start = dateOf(start)
    end = dateOf(end)
    if !end.After(start) {
        return 0
    }
    count := 0
    for d := start.AddDate(0, 0, 1); !d.After(end); d = d.AddDate(0, 0, 1) {
        if !excluded[d.Weekday()] {
            count++
        }
    }
    return count
}

// CalculateShipDate determines when an order placed at now will leave the
// warehouse. At or past the cutoff the processing clock starts tomorrow.
// handlingDays are counted only on processing days, and the result is pushed
// forward until it lands on a processing day.
func CalculateShipDate(now time.Time, handlingDays int, cutoff string, processing map[time.Weekday]bool) time.Time {
    if len(processing) == 0 {
        processing = Weekdays
    }
    excluded := make(map[time.Weekday]bool, 7)
    for w := time.Sunday; w <= time.Saturday; w++ {
        if !processing[w] {
            excluded[w] = true
        }
    }

    ship := dateOf(now)
    if pastCutoff(now, cutoff) {
        ship = ship.AddDate(0, 0, 1)
    }
    ship = AddBusinessDays(ship, handlingDays, excluded)
    for !processing[ship.Weekday()] {
        ship = ship.AddDate(0, 0, 1)
    }
    return ship
}

// pastCutoff reports whether now is at or past the HH:MM cutoff on its own
// day. Comparison is inclusive: exactly at cutoff counts as past. An
// unparseable cutoff is treated as never reached.
func pastCutoff(now time.Time, cutoff string) bool {
    hh, mm, ok := parseCutoff(cutoff)
    if !ok {
        return false
    }
    boundary := time.Date(now.Year(), now.Month(), now.Day(), hh, mm, 0, 0, now.Location())
    return !now.Before(boundary)
}

func parseCutoff(s string) (hour, minute int, ok bool) {
    parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
    if len(parts) != 2 {
        return 0, 0, false
    }
    h, err := strconv.Atoi(parts[0])
    if err != nil || h < 0 || h > 23 {
        return 0, 0, false
    }
    m, err := strconv.Atoi(parts[1])
    if err != nil || m < 0 || m > 59 {
        return 0, 0, false
    }
    return h, m, true
}

func dateOf(t time.Time) time.Time {
    return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
