package appointmentRepo

import (
	"context"
	"errors"
	"time"

	"salora/models"
)

// ErrSlotTaken is returned by CreateIfFree when the requested range is
// already occupied on the target resource.
var ErrSlotTaken = errors.New("slot taken")

// ErrAppointmentNotFound is returned when no appointment matches.
var ErrAppointmentNotFound = errors.New("appointment not found")

// Filters narrows ListBySalon results. Zero values mean "any".
type Filters struct {
	Status     models.AppointmentStatus
	EmployeeID string
	From       time.Time
	To         time.Time
}

// AppointmentRepository is the system of record for appointments. CreateIfFree
// is the only write path for new appointments and is atomic: for any set of
// concurrent calls with overlapping ranges on the same resource, at most one
// succeeds.
type AppointmentRepository interface {
	CreateIfFree(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, salonID, apptID string) (*models.Appointment, error)
	UpdateStatus(ctx context.Context, salonID, apptID string, status models.AppointmentStatus) error
	ListByDay(ctx context.Context, salonID string, dayStart, dayEnd time.Time) ([]models.Appointment, error)
	ListBySalon(ctx context.Context, salonID string, f Filters) ([]models.Appointment, error)
	ReleaseReservation(ctx context.Context, appt *models.Appointment) error
}
