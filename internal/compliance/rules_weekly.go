package compliance

import (
	"fmt"
	"time"

	"github.com/haulageworks/tachograph-go/internal/model"
)

const (
	maxWeeklyDrivingMinutes   = 3360 // 56h, Art. 6.2
	maxBiweeklyDrivingMinutes = 5400 // 90h, Art. 6.3

	regularWeeklyRestMinutes = 2700 // 45h, Art. 8.6
	reducedWeeklyRestMinutes = 1440 // 24h
	compensationWindowWeeks  = 3
)

// evaluateWeeklyDriving implements Art. 6.2/6.3 for one week: the week's
// own driving total against the 56h cap, and the rolling two-week total
// (this week plus the immediately preceding one, when present) against
// the 90h cap.
func evaluateWeeklyDriving(week time.Time, weeklyDriving map[time.Time]int) []model.Infraction {
	var infractions []model.Infraction
	total := weeklyDriving[week]
	if total > maxWeeklyDrivingMinutes {
		infractions = append(infractions, model.Infraction{
			Date:        week,
			Category:    CategoryWeeklyDrivingOver56h,
			Severity:    model.SeverityVerySerious,
			Description: fmt.Sprintf("week of %s drove %d minutes, over the 3360-minute weekly limit", week.Format("2006-01-02"), total),
		})
	}
	prevWeek := week.AddDate(0, 0, -7)
	if prevTotal, ok := weeklyDriving[prevWeek]; ok {
		if biweekly := total + prevTotal; biweekly > maxBiweeklyDrivingMinutes {
			infractions = append(infractions, model.Infraction{
				Date:        week,
				Category:    CategoryBiweeklyDrivingOver90h,
				Severity:    model.SeverityVerySerious,
				Description: fmt.Sprintf("the two weeks ending %s drove %d minutes, over the 5400-minute biweekly limit", week.Format("2006-01-02"), biweekly),
			})
		}
	}
	return infractions
}

// evaluateWeeklyRest implements Art. 8.6: each week must contain a rest
// of at least reducedWeeklyRestMinutes (the longest closing rest observed
// among the week's shifts stands in for the weekly rest candidate, since
// this engine does not separately model the 144h rolling window). A
// reduced weekly rest must be compensated by an equivalent attached block
// within compensationWindowWeeks subsequent weeks; compensation is
// approximated here as any later week containing a shift whose closing
// rest covers at least the shortfall. Evaluation is skipped for weeks
// that do not yet have compensationWindowWeeks of following data, so as
// not to flag a week whose compensation period simply hasn't been
// observed yet (see DESIGN.md for the full rationale).
func evaluateWeeklyRest(weekIndex int, weeks []time.Time, longestRestByWeek map[time.Time]int) []model.Infraction {
	week := weeks[weekIndex]
	longest := longestRestByWeek[week]
	if longest >= regularWeeklyRestMinutes || longest < reducedWeeklyRestMinutes {
		return nil
	}
	if weekIndex+compensationWindowWeeks >= len(weeks) {
		return nil
	}
	shortfall := regularWeeklyRestMinutes - longest
	for i := weekIndex + 1; i <= weekIndex+compensationWindowWeeks && i < len(weeks); i++ {
		if longestRestByWeek[weeks[i]] >= shortfall {
			return nil
		}
	}
	return []model.Infraction{{
		Date:        week,
		Category:    CategoryWeeklyRestCompensationMissing,
		Severity:    model.SeveritySerious,
		Description: fmt.Sprintf("reduced weekly rest of %d minutes in week of %s was not compensated within %d weeks", longest, week.Format("2006-01-02"), compensationWindowWeeks),
	}}
}
