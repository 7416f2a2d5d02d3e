package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"salora/models"
)

type fakeDayLister struct {
	listFn func(ctx context.Context, salonID string, dayStart, dayEnd time.Time) ([]models.Appointment, error)
}

func (f *fakeDayLister) ListByDay(ctx context.Context, salonID string, dayStart, dayEnd time.Time) ([]models.Appointment, error) {
	if f.listFn == nil {
		panic("ListByDay not configured")
	}
	return f.listFn(ctx, salonID, dayStart, dayEnd)
}

func fixedAppointments(appts ...models.Appointment) *fakeDayLister {
	return &fakeDayLister{
		listFn: func(ctx context.Context, salonID string, dayStart, dayEnd time.Time) ([]models.Appointment, error) {
			return appts, nil
		},
	}
}

func at(hour, min int) time.Time {
	return time.Date(2026, 9, 14, hour, min, 0, 0, time.UTC)
}

func appt(id, employeeID string, start time.Time, minutes int, status models.AppointmentStatus) models.Appointment {
	return models.Appointment{
		ID:              id,
		SalonID:         "salon-1",
		ServiceID:       "cut",
		EmployeeID:      employeeID,
		StartAt:         start,
		DurationMinutes: minutes,
		Status:          status,
	}
}

func TestIsAvailable_OverlapCorrectness(t *testing.T) {
	existing := appt("a1", "emp-1", at(10, 0), 60, models.StatusConfirmed) // 10:00-11:00

	tests := []struct {
		name     string
		start    time.Time
		duration int
		want     bool
	}{
		{"identical range", at(10, 0), 60, false},
		{"contained", at(10, 15), 15, false},
		{"straddles start", at(9, 30), 60, false},
		{"straddles end", at(10, 30), 60, false},
		{"back to back after", at(11, 0), 60, true},
		{"back to back before", at(9, 0), 60, true},
		{"disjoint", at(14, 0), 30, true},
	}

	checker := &Checker{Store: fixedAppointments(existing)}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := checker.IsAvailable(context.Background(), ConflictQuery{
				SalonID:         "salon-1",
				StartAt:         tt.start,
				DurationMinutes: tt.duration,
				EmployeeID:      "emp-1",
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("IsAvailable = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsAvailable_EmployeeScoping(t *testing.T) {
	staffAppt := appt("a1", "emp-1", at(10, 0), 60, models.StatusConfirmed)
	poolAppt := appt("a2", "", at(14, 0), 60, models.StatusConfirmed)
	checker := &Checker{Store: fixedAppointments(staffAppt, poolAppt)}

	tests := []struct {
		name     string
		start    time.Time
		employee string
		want     bool
	}{
		{"other employee free over staff appt", at(10, 0), "emp-2", true},
		{"same employee blocked", at(10, 0), "emp-1", false},
		// A staff-specific candidate skips employee-less appointments.
		{"staff candidate over pool appt", at(14, 0), "emp-1", true},
		// A pool candidate is checked against everything.
		{"pool candidate over staff appt", at(10, 0), "", false},
		{"pool candidate over pool appt", at(14, 0), "", false},
		{"pool candidate in free range", at(16, 0), "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := checker.IsAvailable(context.Background(), ConflictQuery{
				SalonID:         "salon-1",
				StartAt:         tt.start,
				DurationMinutes: 60,
				EmployeeID:      tt.employee,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("IsAvailable = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsAvailable_IgnoresInactiveAndExcluded(t *testing.T) {
	cancelled := appt("a1", "emp-1", at(10, 0), 60, models.StatusCancelled)
	noShow := appt("a2", "emp-1", at(11, 0), 60, models.StatusNoShow)
	own := appt("a3", "emp-1", at(12, 0), 60, models.StatusConfirmed)
	checker := &Checker{Store: fixedAppointments(cancelled, noShow, own)}

	for _, start := range []time.Time{at(10, 0), at(11, 0)} {
		got, err := checker.IsAvailable(context.Background(), ConflictQuery{
			SalonID: "salon-1", StartAt: start, DurationMinutes: 60, EmployeeID: "emp-1",
		})
		if err != nil || !got {
			t.Errorf("range at %v over inactive appointment: got %v, %v", start, got, err)
		}
	}

	// Rescheduling checks exclude the appointment being moved.
	got, err := checker.IsAvailable(context.Background(), ConflictQuery{
		SalonID: "salon-1", StartAt: at(12, 0), DurationMinutes: 60,
		EmployeeID: "emp-1", ExcludeAppointmentID: "a3",
	})
	if err != nil || !got {
		t.Errorf("excluded appointment still conflicts: got %v, %v", got, err)
	}
}

func TestIsAvailable_FailurePolicy(t *testing.T) {
	broken := &fakeDayLister{
		listFn: func(ctx context.Context, salonID string, dayStart, dayEnd time.Time) ([]models.Appointment, error) {
			return nil, errors.New("store timeout")
		},
	}
	query := ConflictQuery{SalonID: "salon-1", StartAt: at(10, 0), DurationMinutes: 30}

	open := &Checker{Store: broken, FailOpen: true}
	got, err := open.IsAvailable(context.Background(), query)
	if err != nil || !got {
		t.Errorf("fail-open: got %v, %v; want true, nil", got, err)
	}

	closed := &Checker{Store: broken, FailOpen: false}
	got, err = closed.IsAvailable(context.Background(), query)
	if err == nil || got {
		t.Fatalf("fail-closed: got %v, %v; want false, error", got, err)
	}
	var tsErr *TransientStoreError
	if !errors.As(err, &tsErr) {
		t.Errorf("error type = %T, want *TransientStoreError", err)
	}
}

func TestIsAvailable_Idempotent(t *testing.T) {
	checker := &Checker{Store: fixedAppointments(
		appt("a1", "emp-1", at(10, 0), 60, models.StatusConfirmed),
	)}
	query := ConflictQuery{SalonID: "salon-1", StartAt: at(10, 30), DurationMinutes: 30, EmployeeID: "emp-1"}

	first, err1 := checker.IsAvailable(context.Background(), query)
	second, err2 := checker.IsAvailable(context.Background(), query)
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v, %v", err1, err2)
	}
	if first != second {
		t.Errorf("availability changed between reads: %v then %v", first, second)
	}
}

func TestAnnotateSlots(t *testing.T) {
	slots := []models.TimeSlot{
		{Time: "09:00", Available: false, Reason: models.SlotReasonPast},
		{Time: "10:00", Available: true},
		{Time: "10:30", Available: true},
		{Time: "11:00", Available: true},
	}
	appts := []models.Appointment{
		appt("a1", "emp-1", at(10, 0), 60, models.StatusConfirmed),
	}

	resolved := AnnotateSlots(slots, appts, testDay, 30, "emp-1")

	if resolved[0].Reason != models.SlotReasonPast {
		t.Errorf("past slot reason lost: %+v", resolved[0])
	}
	for _, i := range []int{1, 2} {
		if resolved[i].Available || resolved[i].Reason != models.SlotReasonBooked {
			t.Errorf("slot %s should be booked, got %+v", resolved[i].Time, resolved[i])
		}
	}
	// 11:00 starts exactly at the appointment end; half-open, so free.
	if !resolved[3].Available {
		t.Errorf("boundary slot should be available, got %+v", resolved[3])
	}

	// The input slice must be untouched.
	if !slots[1].Available {
		t.Error("AnnotateSlots mutated its input")
	}
}
