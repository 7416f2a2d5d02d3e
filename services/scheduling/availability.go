package scheduling

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"salora/models"
	"salora/utils"
)

// ConflictQuery describes a candidate booking to test against the existing
// appointments of its salon-local day. StartAt's location must already be the
// salon's zone; it defines which day is checked.
type ConflictQuery struct {
	SalonID              string
	StartAt              time.Time
	DurationMinutes      int
	EmployeeID           string
	ExcludeAppointmentID string
}

// Checker answers whether a candidate time range is free of conflicts.
type Checker struct {
	Store DayLister
	Cache *WeekCache // optional; when set, day fetches go through it

	// FailOpen controls the policy for transient fetch errors: true treats
	// the slot as available (the historical behavior), false surfaces the
	// error. Either way the failure is logged.
	FailOpen bool
}

// IsAvailable reports whether the candidate conflicts with any occupying
// appointment in scope. Reads are idempotent: two calls with no intervening
// mutation return the same answer.
func (c *Checker) IsAvailable(ctx context.Context, q ConflictQuery) (bool, error) {
	appts, err := c.fetchDay(ctx, q.SalonID, q.StartAt)
	if err != nil {
		utils.GetLogger().Error("availability fetch failed",
			zap.String("salonID", q.SalonID),
			zap.Time("startAt", q.StartAt),
			zap.Bool("failOpen", c.FailOpen),
			zap.Error(err))
		if c.FailOpen {
			return true, nil
		}
		var tse *TransientStoreError
		if errors.As(err, &tse) {
			return false, err
		}
		return false, NewTransientStoreError("availability read", err)
	}
	return !hasConflict(appts, q), nil
}

func (c *Checker) fetchDay(ctx context.Context, salonID string, at time.Time) ([]models.Appointment, error) {
	if c.Cache != nil {
		return c.Cache.GetDay(ctx, salonID, at)
	}
	loc := at.Location()
	dayStart := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, loc)
	return c.Store.ListByDay(ctx, salonID, dayStart, dayStart.AddDate(0, 0, 1))
}

// hasConflict applies the conflict scope and the half-open overlap test.
//
// Scope: cancelled and no-show appointments never conflict; the excluded
// appointment never conflicts. A candidate with an employee ID is checked
// only against that employee's appointments — it skips employee-less ones. A
// candidate without an employee ID claims the salon-wide pool and is checked
// against everything.
func hasConflict(appts []models.Appointment, q ConflictQuery) bool {
	reqEnd := q.StartAt.Add(time.Duration(q.DurationMinutes) * time.Minute)
	for _, a := range appts {
		if q.ExcludeAppointmentID != "" && a.ID == q.ExcludeAppointmentID {
			continue
		}
		if !a.Status.Occupying() {
			continue
		}
		if q.EmployeeID != "" && a.EmployeeID != q.EmployeeID {
			continue
		}
		if a.Overlaps(q.StartAt, reqEnd) {
			return true
		}
	}
	return false
}

// AnnotateSlots resolves provisionally available slots against the day's
// appointments, marking conflicted ones as booked. Past slots keep their
// reason. Pure: the input slice is not modified.
func AnnotateSlots(slots []models.TimeSlot, appts []models.Appointment, forDate time.Time, durationMinutes int, employeeID string) []models.TimeSlot {
	midnight := time.Date(forDate.Year(), forDate.Month(), forDate.Day(), 0, 0, 0, 0, forDate.Location())

	out := make([]models.TimeSlot, len(slots))
	for i, slot := range slots {
		out[i] = slot
		if !slot.Available {
			continue
		}
		minute, err := models.ParseMinuteOfDay(slot.Time)
		if err != nil {
			continue
		}
		q := ConflictQuery{
			StartAt:         midnight.Add(time.Duration(minute) * time.Minute),
			DurationMinutes: durationMinutes,
			EmployeeID:      employeeID,
		}
		if hasConflict(appts, q) {
			out[i].Available = false
			out[i].Reason = models.SlotReasonBooked
		}
	}
	return out
}
