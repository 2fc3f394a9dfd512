// Package timeline reconstructs a contiguous Activity sequence from the
// raw ActivityChangeInfo entries decoded from one or more
// CardDriverActivity daily records. It is pure, stateless transformation:
// no I/O, no shared state across calls, matching the decode pipeline's
// single-threaded function-from-bytes model.
package timeline

import (
	"time"

	"github.com/haulageworks/tachograph-go/internal/model"
)

// changePoint is one ActivityChangeInfo entry resolved to an absolute UTC
// instant.
type changePoint struct {
	at            time.Time
	slot          model.Slot
	kind          model.ActivityKind
	cardWithdrawn bool
}

// Build reconstructs a contiguous Activity timeline from a day-ordered
// list of DailyActivityRecord. Each ActivityChangeInfo's MinuteOfDay is
// resolved against its record's DayTimestamp (midnight UTC) to an
// absolute instant; consecutive same-(Slot,Kind,CardWithdrawn) instants
// on the same calendar day are merged into one Activity, while a run
// crossing midnight is always split at the day boundary even when the
// activity kind is unchanged.
func Build(records []model.DailyActivityRecord) []model.Activity {
	var points []changePoint
	for _, rec := range records {
		for _, c := range rec.Changes {
			points = append(points, changePoint{
				at:            rec.DayTimestamp.Add(time.Duration(c.MinuteOfDay) * time.Minute),
				slot:          c.Slot,
				kind:          c.Kind,
				cardWithdrawn: c.CardWithdrawn,
			})
		}
	}
	if len(points) == 0 {
		return nil
	}

	var activities []model.Activity
	for i, p := range points {
		dayEnd := startOfDay(p.at).Add(24 * time.Hour)
		end := dayEnd
		if i+1 < len(points) && points[i+1].at.Before(dayEnd) {
			end = points[i+1].at
		}
		if !end.After(p.at) {
			// A duplicate or out-of-order timestamp produces a
			// zero/negative-length segment; drop it rather than
			// violate the start < end invariant.
			continue
		}

		if n := len(activities); n > 0 {
			last := &activities[n-1]
			if last.End.Equal(p.at) && last.Slot == p.slot && last.Kind == p.kind &&
				last.CardWithdrawn == p.cardWithdrawn && sameDay(last.Start, p.at) {
				last.End = end
				continue
			}
		}

		activities = append(activities, model.Activity{
			Slot:          p.slot,
			Kind:          p.kind,
			CardWithdrawn: p.cardWithdrawn,
			Start:         p.at,
			End:           end,
		})
	}
	return activities
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	return startOfDay(a).Equal(startOfDay(b))
}
