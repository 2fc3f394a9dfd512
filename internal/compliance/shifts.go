package compliance

import (
	"time"

	"github.com/haulageworks/tachograph-go/internal/model"
)

// minDailyRestMinutes is the smallest rest period (9 h) that ends a shift:
// a shift is a maximal activity sequence ending at a rest of at least
// this length.
const minDailyRestMinutes = 9 * 60

// Shift is a maximal driver-activity sequence bounded by a daily rest of
// at least 9 h. The final shift in a timeline may be left open
// (ClosedByRest false) when the activity data ends before such a rest is
// observed.
type Shift struct {
	Activities         []model.Activity
	Start              time.Time
	End                time.Time
	ClosedByRest       bool
	ClosingRestMinutes int
}

// computeShifts partitions a chronologically-ordered activity list into
// shifts. A REST activity of at least minDailyRestMinutes closes the
// shift it belongs to; the next activity begins a new one.
func computeShifts(activities []model.Activity) []Shift {
	var shifts []Shift
	var current []model.Activity
	for _, a := range activities {
		current = append(current, a)
		if a.Kind == model.ActivityRest && a.DurationMinutes() >= minDailyRestMinutes {
			shifts = append(shifts, Shift{
				Activities:         current,
				Start:              current[0].Start,
				End:                a.End,
				ClosedByRest:       true,
				ClosingRestMinutes: a.DurationMinutes(),
			})
			current = nil
		}
	}
	if len(current) > 0 {
		shifts = append(shifts, Shift{
			Activities: current,
			Start:      current[0].Start,
			End:        current[len(current)-1].End,
		})
	}
	return shifts
}

// drivingMinutes sums the DRIVING activity duration within a shift.
func (s Shift) drivingMinutes() int {
	total := 0
	for _, a := range s.Activities {
		if a.Kind == model.ActivityDriving {
			total += a.DurationMinutes()
		}
	}
	return total
}
