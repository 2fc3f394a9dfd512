package compliance

import "time"

// weekStart returns the Monday 00:00 UTC that begins t's regulatory week,
// which runs to the following Monday.
func weekStart(t time.Time) time.Time {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	// time.Weekday: Sunday=0 .. Saturday=6; convert to a Monday=0 offset.
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// groupShiftsByWeek buckets shifts by the regulatory week their Start
// falls in, and returns the week start times in chronological order. A
// shift that itself spans a week boundary is attributed entirely to the
// week containing its Start (a simplification recorded in DESIGN.md: a
// shift is never split across a week boundary).
func groupShiftsByWeek(shifts []Shift) (weeks []time.Time, byWeek map[time.Time][]Shift) {
	byWeek = make(map[time.Time][]Shift)
	for _, s := range shifts {
		wk := weekStart(s.Start)
		if _, ok := byWeek[wk]; !ok {
			weeks = append(weeks, wk)
		}
		byWeek[wk] = append(byWeek[wk], s)
	}
	// weeks is built in first-seen order, which matches chronological
	// order because shifts are processed in timeline order.
	return weeks, byWeek
}
