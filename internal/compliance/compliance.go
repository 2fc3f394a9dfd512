package compliance

import (
	"time"

	"github.com/haulageworks/tachograph-go/internal/model"
)

// WeekSummary is the aggregate counters reported alongside the infraction
// list for each regulatory week: driving minutes, distance, breaks taken,
// and shifts worked.
type WeekSummary struct {
	WeekStart      time.Time
	DrivingMinutes int
	DistanceKm     int
	Breaks         int
	Shifts         int
}

// Result is the compliance engine's output: every infraction found, plus
// one summary per regulatory week touched by the timeline.
type Result struct {
	Infractions []model.Infraction
	Weeks       []WeekSummary
}

// Evaluate partitions activities into shifts and regulatory weeks and
// runs every Reg. 561/2006 driving-time and rest rule over them.
// dailyRecords supplies the day_distance_km figures the activity
// timeline itself does not carry; pass nil when distance totals are not
// needed.
func Evaluate(activities []model.Activity, dailyRecords []model.DailyActivityRecord, opts EvaluateOptions) Result {
	shifts := computeShifts(activities)
	weeks, byWeek := groupShiftsByWeek(shifts)

	distanceByDay := make(map[time.Time]int, len(dailyRecords))
	for _, rec := range dailyRecords {
		distanceByDay[startOfDay(rec.DayTimestamp)] += int(rec.DayDistanceKm)
	}

	var result Result
	weeklyDriving := make(map[time.Time]int, len(weeks))
	longestRestByWeek := make(map[time.Time]int, len(weeks))

	for _, wk := range weeks {
		weekShifts := byWeek[wk]
		summary := WeekSummary{WeekStart: wk, Shifts: len(weekShifts)}
		extensionCount, reducedRestCount := 0, 0

		for _, shift := range weekShifts {
			result.Infractions = append(result.Infractions, evaluateContinuousDriving(shift.Activities)...)
			result.Infractions = append(result.Infractions, evaluateDailyDriving(shift, &extensionCount)...)
			result.Infractions = append(result.Infractions, evaluateDailyRest(shift, &reducedRestCount)...)

			summary.DrivingMinutes += shift.drivingMinutes()
			summary.Breaks += countBreaks(shift.Activities)
			if shift.ClosingRestMinutes > longestRestByWeek[wk] {
				longestRestByWeek[wk] = shift.ClosingRestMinutes
			}
			for _, a := range shift.Activities {
				summary.DistanceKm += distanceByDay[startOfDay(a.Start)]
				// Each day's distance is attributed to at most one
				// activity so it is not double-counted across the
				// several activities that may fall on the same day.
				delete(distanceByDay, startOfDay(a.Start))
			}
		}

		weeklyDriving[wk] = summary.DrivingMinutes
		result.Weeks = append(result.Weeks, summary)
	}

	for _, wk := range weeks {
		result.Infractions = append(result.Infractions, evaluateWeeklyDriving(wk, weeklyDriving)...)
	}
	for i := range weeks {
		result.Infractions = append(result.Infractions, evaluateWeeklyRest(i, weeks, longestRestByWeek)...)
	}

	return result
}

// countBreaks counts the REST activities within a shift that qualify as
// an Art. 7 break: a single block of at least fullBreakMinutes, or the
// second leg of a split break following an earlier first leg of at least
// splitBreakFirstMinMinutes.
func countBreaks(activities []model.Activity) int {
	breaks := 0
	splitFirstDone := false
	for _, a := range activities {
		if a.Kind != model.ActivityRest {
			continue
		}
		dur := a.DurationMinutes()
		switch {
		case dur >= fullBreakMinutes:
			breaks++
			splitFirstDone = false
		case dur >= splitBreakSecondMinMinutes && splitFirstDone:
			breaks++
			splitFirstDone = false
		case dur >= splitBreakFirstMinMinutes && !splitFirstDone:
			splitFirstDone = true
		}
	}
	return breaks
}
