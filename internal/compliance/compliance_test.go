package compliance

import (
	"testing"
	"time"

	"github.com/haulageworks/tachograph-go/internal/model"
)

// monday is a fixed Monday 00:00 UTC anchor for building test timelines.
var monday = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

func act(start time.Time, dur time.Duration, kind model.ActivityKind) model.Activity {
	return model.Activity{Kind: kind, Start: start, End: start.Add(dur)}
}

func hasCategory(infractions []model.Infraction, category string) int {
	n := 0
	for _, i := range infractions {
		if i.Category == category {
			n++
		}
	}
	return n
}

// Scenario 3: 300 consecutive minutes of DRIVING and no REST produces one
// NO_BREAK_AFTER_4H30 infraction (SI).
func TestScenario_ContinuousDrivingViolation(t *testing.T) {
	activities := []model.Activity{
		act(monday, 300*time.Minute, model.ActivityDriving),
	}
	result := Evaluate(activities, nil, EvaluateOptions{})
	if n := hasCategory(result.Infractions, CategoryNoBreakAfter4h30); n != 1 {
		t.Fatalf("got %d NO_BREAK_AFTER_4H30 infractions, want 1: %+v", n, result.Infractions)
	}
}

// Scenario 5: driving of 270 min, then 15 min REST, 20 min DRIVING, 30 min
// REST resets the driving accumulator after the second REST; no
// NO_BREAK_AFTER_4H30 is emitted even though total DRIVING before any
// single 45-min REST is 290 min.
func TestScenario_SplitBreakResetsAccumulator(t *testing.T) {
	t0 := monday
	activities := []model.Activity{
		act(t0, 270*time.Minute, model.ActivityDriving),
		act(t0.Add(270*time.Minute), 15*time.Minute, model.ActivityRest),
		act(t0.Add(285*time.Minute), 20*time.Minute, model.ActivityDriving),
		act(t0.Add(305*time.Minute), 30*time.Minute, model.ActivityRest),
	}
	result := Evaluate(activities, nil, EvaluateOptions{})
	if n := hasCategory(result.Infractions, CategoryNoBreakAfter4h30); n != 0 {
		t.Fatalf("got %d NO_BREAK_AFTER_4H30 infractions, want 0: %+v", n, result.Infractions)
	}
}

// Scenario 6: driving 270 min, then 60 min AVAILABILITY, then 10 min
// DRIVING produces one NO_BREAK_AFTER_4H30 (AVAILABILITY is not a break).
func TestScenario_AvailabilityIsNotABreak(t *testing.T) {
	t0 := monday
	activities := []model.Activity{
		act(t0, 270*time.Minute, model.ActivityDriving),
		act(t0.Add(270*time.Minute), 60*time.Minute, model.ActivityAvailability),
		act(t0.Add(330*time.Minute), 10*time.Minute, model.ActivityDriving),
	}
	result := Evaluate(activities, nil, EvaluateOptions{})
	if n := hasCategory(result.Infractions, CategoryNoBreakAfter4h30); n != 1 {
		t.Fatalf("got %d NO_BREAK_AFTER_4H30 infractions, want 1: %+v", n, result.Infractions)
	}
}

// buildShift wraps a driving block with a closing rest long enough to end
// a shift (the ≥9h shift boundary), returning the activities.
func buildShift(start time.Time, drivingDur time.Duration) (activities []model.Activity, end time.Time) {
	driving := act(start, drivingDur, model.ActivityDriving)
	rest := act(driving.End, 11*time.Hour, model.ActivityRest)
	return []model.Activity{driving, rest}, rest.End
}

// Scenario 4: a week containing three shifts with driving [9h30, 9h30,
// 9h30] produces one EXTRA_DAILY_EXTENSION (MI) on the third;
// [9h30, 9h30, 9h, 9h30] also produces exactly one.
func TestScenario_DailyDrivingExtensionAccounting(t *testing.T) {
	build := func(hours []float64) []model.Activity {
		var all []model.Activity
		cursor := monday
		for _, h := range hours {
			shiftActs, end := buildShift(cursor, time.Duration(h*float64(time.Hour)))
			all = append(all, shiftActs...)
			cursor = end
		}
		return all
	}

	t.Run("three equal extensions", func(t *testing.T) {
		activities := build([]float64{9.5, 9.5, 9.5})
		result := Evaluate(activities, nil, EvaluateOptions{})
		if n := hasCategory(result.Infractions, CategoryExtraDailyExtension); n != 1 {
			t.Fatalf("got %d EXTRA_DAILY_EXTENSION infractions, want 1: %+v", n, result.Infractions)
		}
	})

	t.Run("one non-extension shift among four", func(t *testing.T) {
		activities := build([]float64{9.5, 9.5, 9, 9.5})
		result := Evaluate(activities, nil, EvaluateOptions{})
		if n := hasCategory(result.Infractions, CategoryExtraDailyExtension); n != 1 {
			t.Fatalf("got %d EXTRA_DAILY_EXTENSION infractions, want 1: %+v", n, result.Infractions)
		}
	})
}

func TestEvaluateDailyDriving_Over10Hours(t *testing.T) {
	activities, _ := buildShift(monday, 11*time.Hour)
	result := Evaluate(activities, nil, EvaluateOptions{})
	if n := hasCategory(result.Infractions, CategoryDailyDrivingOver10h); n != 1 {
		t.Fatalf("got %d DAILY_DRIVING_OVER_10H infractions, want 1: %+v", n, result.Infractions)
	}
}

func TestEvaluateWeeklyDriving_Over56Hours(t *testing.T) {
	var all []model.Activity
	cursor := monday
	for i := 0; i < 6; i++ {
		shiftActs, end := buildShift(cursor, 10*time.Hour)
		all = append(all, shiftActs...)
		cursor = end
	}
	result := Evaluate(all, nil, EvaluateOptions{})
	if n := hasCategory(result.Infractions, CategoryWeeklyDrivingOver56h); n != 1 {
		t.Fatalf("got %d WEEKLY_DRIVING_OVER_56H infractions, want 1: %+v", n, result.Infractions)
	}
}

func TestWeekStart_AlwaysMonday(t *testing.T) {
	wed := time.Date(2024, 3, 6, 15, 30, 0, 0, time.UTC)
	got := weekStart(wed)
	want := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("weekStart(%v) = %v, want %v", wed, got, want)
	}
}

func TestComputeShifts_PartitionsWithoutOverlapOrGap(t *testing.T) {
	activities, _ := buildShift(monday, 8*time.Hour)
	more, _ := buildShift(activities[len(activities)-1].End, 6*time.Hour)
	all := append(activities, more...)

	shifts := computeShifts(all)
	if len(shifts) != 2 {
		t.Fatalf("got %d shifts, want 2", len(shifts))
	}
	for i := 1; i < len(shifts); i++ {
		if !shifts[i-1].End.Equal(shifts[i].Start) {
			t.Errorf("shift %d ends at %v but shift %d starts at %v: gap or overlap", i-1, shifts[i-1].End, i, shifts[i].Start)
		}
	}
}
