package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appointmentRepo "salora/database/repository/appointment"
	salonRepo "salora/database/repository/salon"
	"salora/models"
	"salora/utils"
)

// BookingRequest carries the validated-at-the-edge parameters of a booking
// attempt. StartAt must be an instant with an explicit zone.
type BookingRequest struct {
	SalonID         string
	ServiceID       string
	EmployeeID      string
	CustomerRef     string
	StartAt         time.Time
	DurationMinutes int
}

// SalonDirectory is the slice of the salon store the coordinator needs.
type SalonDirectory interface {
	GetByID(ctx context.Context, salonID string) (*models.Salon, error)
}

// ReminderScheduler enqueues a reminder for a created appointment.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, appt *models.Appointment) error
}

// Coordinator owns the booking commit path and the no-double-booking
// guarantee. The availability pre-check is advisory; the store's CreateIfFree
// is what makes concurrent overlapping bookings lose with ErrSlotTaken, so
// at most one of N racing calls for the same resource succeeds.
type Coordinator struct {
	Store   appointmentRepo.AppointmentRepository
	Checker *Checker
	Cache   *WeekCache
	Salons  SalonDirectory

	// InitialStatus is the status new appointments are created in; pending
	// and confirmed are both valid flows.
	InitialStatus models.AppointmentStatus

	// Reminders is optional; enqueue failures never fail the booking.
	Reminders ReminderScheduler

	Now func() time.Time
}

func (co *Coordinator) now() time.Time {
	if co.Now != nil {
		return co.Now()
	}
	return time.Now()
}

func (co *Coordinator) initialStatus() models.AppointmentStatus {
	if co.InitialStatus == models.StatusPending {
		return models.StatusPending
	}
	return models.StatusConfirmed
}

// Book validates, re-checks availability and commits the appointment.
func (co *Coordinator) Book(ctx context.Context, req BookingRequest) (*models.Appointment, error) {
	if req.SalonID == "" {
		return nil, NewValidationError("salonId", "required")
	}
	if req.ServiceID == "" {
		return nil, NewValidationError("serviceId", "required")
	}
	if req.DurationMinutes <= 0 {
		return nil, NewValidationError("durationMinutes", "must be positive")
	}
	if req.StartAt.IsZero() {
		return nil, NewValidationError("startAt", "required")
	}

	loc, err := co.salonLocation(ctx, req.SalonID)
	if err != nil {
		return nil, err
	}
	startAt := req.StartAt.In(loc)

	// Advisory pre-check so obviously taken slots fail fast without the
	// cost of a transaction.
	available, err := co.Checker.IsAvailable(ctx, ConflictQuery{
		SalonID:         req.SalonID,
		StartAt:         startAt,
		DurationMinutes: req.DurationMinutes,
		EmployeeID:      req.EmployeeID,
	})
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, NewConflictError("slot taken")
	}

	now := co.now()
	appt := &models.Appointment{
		ID:              uuid.New().String(),
		SalonID:         req.SalonID,
		ServiceID:       req.ServiceID,
		EmployeeID:      req.EmployeeID,
		CustomerRef:     req.CustomerRef,
		StartAt:         startAt,
		DurationMinutes: req.DurationMinutes,
		Status:          co.initialStatus(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := co.Store.CreateIfFree(ctx, appt); err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotTaken) {
			return nil, NewConflictError("slot taken")
		}
		return nil, fmt.Errorf("booking commit failed: %w", err)
	}

	co.invalidateWeek(appt, loc)

	if co.Reminders != nil {
		if err := co.Reminders.ScheduleReminder(ctx, appt); err != nil {
			utils.GetLogger().Warn("failed to schedule appointment reminder",
				zap.String("appointmentID", appt.ID), zap.Error(err))
		}
	}

	return appt, nil
}

// Transition applies a staff-driven status change, enforcing the state
// machine. Moving to cancelled or no_show releases the slot's reservation so
// the range becomes bookable again.
func (co *Coordinator) Transition(ctx context.Context, salonID, apptID string, to models.AppointmentStatus) (*models.Appointment, error) {
	appt, err := co.Store.GetByID(ctx, salonID, apptID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, NewNotFoundError("appointment", apptID)
		}
		return nil, fmt.Errorf("failed to load appointment: %w", err)
	}

	if !models.CanTransition(appt.Status, to) {
		return nil, NewValidationError("status",
			fmt.Sprintf("cannot transition from %s to %s", appt.Status, to))
	}

	if err := co.Store.UpdateStatus(ctx, salonID, apptID, to); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, NewNotFoundError("appointment", apptID)
		}
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	appt.Status = to
	appt.UpdatedAt = co.now()

	if !to.Occupying() {
		if err := co.Store.ReleaseReservation(ctx, appt); err != nil {
			utils.GetLogger().Error("failed to release slot reservation",
				zap.String("appointmentID", appt.ID), zap.Error(err))
		}
	}

	loc, err := co.salonLocation(ctx, salonID)
	if err != nil {
		loc = appt.StartAt.Location()
	}
	co.invalidateWeek(appt, loc)

	return appt, nil
}

func (co *Coordinator) salonLocation(ctx context.Context, salonID string) (*time.Location, error) {
	salon, err := co.Salons.GetByID(ctx, salonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			return nil, NewNotFoundError("salon", salonID)
		}
		return nil, fmt.Errorf("failed to load salon: %w", err)
	}
	loc, err := time.LoadLocation(salon.Timezone)
	if err != nil {
		utils.GetLogger().Warn("salon has invalid timezone, falling back to UTC",
			zap.String("salonID", salonID), zap.String("timezone", salon.Timezone))
		return time.UTC, nil
	}
	return loc, nil
}

func (co *Coordinator) invalidateWeek(appt *models.Appointment, loc *time.Location) {
	if co.Cache == nil {
		return
	}
	co.Cache.Invalidate(appt.SalonID, co.Cache.WeekOffsetOf(appt.StartAt, loc))
}
