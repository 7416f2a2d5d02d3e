package scheduling

import (
	"reflect"
	"testing"
	"time"

	"salora/models"
)

var testDay = time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC) // a Monday

func openDay(intervals ...models.WorkInterval) models.DaySchedule {
	return models.DaySchedule{Day: models.Monday, IsOpen: true, Intervals: intervals}
}

func TestGenerateSlots_Count(t *testing.T) {
	// Open 09:00-12:00 and 13:00-18:00 at 30-minute granularity:
	// 6 slots in the morning, 10 in the afternoon.
	day := openDay(
		models.WorkInterval{Start: 9 * 60, End: 12 * 60},
		models.WorkInterval{Start: 13 * 60, End: 18 * 60},
	)
	now := testDay.Add(-24 * time.Hour)

	slots := GenerateSlots(day, 30, testDay, now)
	if len(slots) != 16 {
		t.Fatalf("got %d slots, want 16", len(slots))
	}
	if slots[0].Time != "09:00" || slots[5].Time != "11:30" {
		t.Errorf("morning slots wrong: first %s, last %s", slots[0].Time, slots[5].Time)
	}
	if slots[6].Time != "13:00" || slots[15].Time != "17:30" {
		t.Errorf("afternoon slots wrong: first %s, last %s", slots[6].Time, slots[15].Time)
	}
	for _, s := range slots {
		if !s.Available || s.Reason != "" {
			t.Errorf("slot %s should be provisionally available, got %+v", s.Time, s)
		}
	}
}

func TestGenerateSlots_ClosedDay(t *testing.T) {
	day := models.DaySchedule{Day: models.Sunday, IsOpen: false}
	if slots := GenerateSlots(day, 30, testDay, testDay); slots != nil {
		t.Errorf("closed day produced %d slots", len(slots))
	}

	open := models.DaySchedule{Day: models.Sunday, IsOpen: true}
	if slots := GenerateSlots(open, 30, testDay, testDay); slots != nil {
		t.Errorf("open day without intervals produced %d slots", len(slots))
	}
}

func TestGenerateSlots_PastSuppression(t *testing.T) {
	day := openDay(models.WorkInterval{Start: 9 * 60, End: 12 * 60})

	// Now is 10:00 on the slot day: 09:00, 09:30 and the 10:00 boundary
	// itself are past, the rest are open.
	now := testDay.Add(10 * time.Hour)
	slots := GenerateSlots(day, 30, testDay, now)
	if len(slots) != 6 {
		t.Fatalf("got %d slots, want 6", len(slots))
	}
	for _, s := range slots[:3] {
		if s.Available || s.Reason != models.SlotReasonPast {
			t.Errorf("slot %s: got %+v, want past", s.Time, s)
		}
	}
	for _, s := range slots[3:] {
		if !s.Available {
			t.Errorf("slot %s should be available, got %+v", s.Time, s)
		}
	}
}

func TestGenerateSlots_AllPastOnEarlierDay(t *testing.T) {
	day := openDay(models.WorkInterval{Start: 9 * 60, End: 10 * 60})
	now := testDay.AddDate(0, 0, 3)

	for _, s := range GenerateSlots(day, 30, testDay, now) {
		if s.Available || s.Reason != models.SlotReasonPast {
			t.Errorf("slot %s on an elapsed day should be past, got %+v", s.Time, s)
		}
	}
}

func TestGenerateSlots_Pure(t *testing.T) {
	day := openDay(models.WorkInterval{Start: 9 * 60, End: 12 * 60})
	now := testDay.Add(-time.Hour)

	first := GenerateSlots(day, 45, testDay, now)
	second := GenerateSlots(day, 45, testDay, now)
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated calls with the same inputs differ")
	}
	for i := 1; i < len(first); i++ {
		if first[i-1].Time >= first[i].Time {
			t.Errorf("slots out of order: %s before %s", first[i-1].Time, first[i].Time)
		}
	}
}

func TestGenerateSlots_TailSlotKept(t *testing.T) {
	// The generator emits the 11:30 slot even though a 60-minute service
	// started there would run past the interval end.
	day := openDay(models.WorkInterval{Start: 9 * 60, End: 12 * 60})
	slots := GenerateSlots(day, 30, testDay, testDay.Add(-time.Hour))
	last := slots[len(slots)-1]
	if last.Time != "11:30" || !last.Available {
		t.Errorf("tail slot = %+v, want available 11:30", last)
	}
}

func TestGenerateSlots_InvalidGranularity(t *testing.T) {
	day := openDay(models.WorkInterval{Start: 9 * 60, End: 12 * 60})
	if slots := GenerateSlots(day, 0, testDay, testDay); slots != nil {
		t.Errorf("zero granularity produced %d slots", len(slots))
	}
}
