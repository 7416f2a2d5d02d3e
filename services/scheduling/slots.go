package scheduling

import (
	"time"

	"salora/models"
)

// GenerateSlots produces candidate start times for one day of a salon's week.
// It is a pure function of its arguments: ascending, stable, no hidden state.
//
// Slots at or before now are emitted as unavailable with reason "past"
// without consulting conflicts; the rest are provisionally available until
// the checker resolves them against the day's appointments.
//
// A slot whose service duration would spill past the interval end is still
// emitted; the generator does not trim the tail of a work interval.
func GenerateSlots(day models.DaySchedule, granularityMinutes int, forDate time.Time, now time.Time) []models.TimeSlot {
	if !day.IsOpen || len(day.Intervals) == 0 || granularityMinutes <= 0 {
		return nil
	}

	midnight := time.Date(forDate.Year(), forDate.Month(), forDate.Day(), 0, 0, 0, 0, forDate.Location())

	var slots []models.TimeSlot
	for _, iv := range day.Intervals {
		for current := iv.Start; current < iv.End; current += granularityMinutes {
			slot := models.TimeSlot{Time: models.FormatMinuteOfDay(current)}

			absStart := midnight.Add(time.Duration(current) * time.Minute)
			if !absStart.After(now) {
				slot.Available = false
				slot.Reason = models.SlotReasonPast
			} else {
				slot.Available = true
			}
			slots = append(slots, slot)
		}
	}
	return slots
}
