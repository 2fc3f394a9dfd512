package timeline

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/haulageworks/tachograph-go/internal/model"
)

func change(minute int, kind model.ActivityKind) model.ActivityChangeInfo {
	return model.ActivityChangeInfo{Slot: model.SlotDriver, Kind: kind, MinuteOfDay: minute}
}

func TestBuild_MergesAdjacentSameKindWithinDay(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	records := []model.DailyActivityRecord{
		{DayTimestamp: day, Changes: []model.ActivityChangeInfo{
			change(0, model.ActivityRest),
			change(360, model.ActivityDriving),
			change(420, model.ActivityDriving), // redundant re-assertion of same kind
			change(600, model.ActivityWork),
		}},
	}

	got := Build(records)
	want := []model.Activity{
		{Slot: model.SlotDriver, Kind: model.ActivityRest, Start: day, End: day.Add(360 * time.Minute)},
		{Slot: model.SlotDriver, Kind: model.ActivityDriving, Start: day.Add(360 * time.Minute), End: day.Add(600 * time.Minute)},
		{Slot: model.SlotDriver, Kind: model.ActivityWork, Start: day.Add(600 * time.Minute), End: day.Add(24 * time.Hour)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_SplitsAtMidnightEvenWhenKindUnchanged(t *testing.T) {
	day1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)
	records := []model.DailyActivityRecord{
		{DayTimestamp: day1, Changes: []model.ActivityChangeInfo{
			change(1400, model.ActivityRest), // 23:20, rest continues across midnight
		}},
		{DayTimestamp: day2, Changes: []model.ActivityChangeInfo{
			change(0, model.ActivityRest), // same kind, new day
			change(400, model.ActivityDriving),
		}},
	}

	got := Build(records)
	if len(got) != 3 {
		t.Fatalf("got %d activities, want 3 (midnight boundary must split even same-kind runs): %+v", len(got), got)
	}
	if !got[0].End.Equal(day2) {
		t.Errorf("first activity should end exactly at midnight, got %v", got[0].End)
	}
	if !got[1].Start.Equal(day2) {
		t.Errorf("second activity should start exactly at midnight, got %v", got[1].Start)
	}
	if got[0].Kind != model.ActivityRest || got[1].Kind != model.ActivityRest {
		t.Errorf("both sides of the midnight split should retain REST, got %v / %v", got[0].Kind, got[1].Kind)
	}
}

func TestBuild_Empty(t *testing.T) {
	if got := Build(nil); got != nil {
		t.Errorf("Build(nil) = %+v, want nil", got)
	}
}

func TestBuild_StartBeforeEndInvariant(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	records := []model.DailyActivityRecord{
		{DayTimestamp: day, Changes: []model.ActivityChangeInfo{
			change(0, model.ActivityRest),
			change(1439, model.ActivityDriving),
		}},
	}
	got := Build(records)
	for _, a := range got {
		if !a.Start.Before(a.End) {
			t.Errorf("activity %+v violates start < end", a)
		}
	}
}
