package compliance

import (
	"fmt"
	"time"

	"github.com/haulageworks/tachograph-go/internal/model"
)

const (
	maxDailyDrivingMinutes      = 600 // 10h, Art. 6.1
	extendedDailyDrivingMinutes = 540 // 9h, the extendable daily limit
	maxExtensionsPerWeek        = 2

	regularDailyRestMinutes = 660 // 11h, Art. 8
	reducedDailyRestMinutes = 540 // 9h
	maxReducedRestsPerCycle = 3
)

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// evaluateDailyDriving implements Art. 6.1: a shift's driving total over
// 600 min is always an infraction; a total over the 540 min base limit
// but at or under 600 min is an extension, of which at most
// maxExtensionsPerWeek are permitted per regulatory week.
func evaluateDailyDriving(shift Shift, extensionCount *int) []model.Infraction {
	drivingMin := shift.drivingMinutes()
	switch {
	case drivingMin > maxDailyDrivingMinutes:
		return []model.Infraction{{
			Date:        startOfDay(shift.End),
			Category:    CategoryDailyDrivingOver10h,
			Severity:    model.SeverityVerySerious,
			Description: fmt.Sprintf("shift drove %d minutes, over the 600-minute daily limit", drivingMin),
		}}
	case drivingMin > extendedDailyDrivingMinutes:
		*extensionCount++
		if *extensionCount > maxExtensionsPerWeek {
			return []model.Infraction{{
				Date:        startOfDay(shift.End),
				Category:    CategoryExtraDailyExtension,
				Severity:    model.SeverityMinor,
				Description: fmt.Sprintf("daily driving extension used for the %d time this week, over the permitted %d", *extensionCount, maxExtensionsPerWeek),
			}}
		}
	}
	return nil
}

// evaluateDailyRest implements Art. 8: a shift's closing rest must reach
// at least reducedDailyRestMinutes, and a closing rest below
// regularDailyRestMinutes counts as reduced; the reduced rest that takes
// *reducedRestCount past maxReducedRestsPerCycle is flagged. Evaluate keeps
// one counter per regulatory week, so the count restarts every Monday
// 00:00 UTC; weekly rests are not detected and do not reset it.
// A shift left open (no closing rest observed yet) is not evaluated.
func evaluateDailyRest(shift Shift, reducedRestCount *int) []model.Infraction {
	if !shift.ClosedByRest {
		return nil
	}
	switch {
	case shift.ClosingRestMinutes >= regularDailyRestMinutes:
		return nil
	case shift.ClosingRestMinutes >= reducedDailyRestMinutes:
		*reducedRestCount++
		if *reducedRestCount > maxReducedRestsPerCycle {
			return []model.Infraction{{
				Date:        startOfDay(shift.End),
				Category:    CategoryReducedRestOveruse,
				Severity:    model.SeveritySerious,
				Description: fmt.Sprintf("reduced daily rest used for the %d time since the last weekly rest, over the permitted %d", *reducedRestCount, maxReducedRestsPerCycle),
			}}
		}
	default:
		return []model.Infraction{{
			Date:        startOfDay(shift.End),
			Category:    CategoryInsufficientDailyRest,
			Severity:    model.SeverityVerySerious,
			Description: fmt.Sprintf("closing rest of %d minutes is below the 540-minute reduced daily rest floor", shift.ClosingRestMinutes),
		}}
	}
	return nil
}
