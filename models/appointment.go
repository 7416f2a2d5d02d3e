package models

import (
	"fmt"
	"time"
)

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
)

// ParseAppointmentStatus validates a status string from the API.
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	switch AppointmentStatus(s) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return AppointmentStatus(s), nil
	}
	return "", fmt.Errorf("invalid appointment status %q", s)
}

// Occupying reports whether an appointment in this status still holds its
// time range. Cancelled and no-show appointments free the slot.
func (s AppointmentStatus) Occupying() bool {
	return s != StatusCancelled && s != StatusNoShow
}

// transitions holds the allowed status moves. All transitions are staff
// driven; nothing moves automatically.
var transitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusNoShow},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
}

// CanTransition reports whether from -> to is a legal status move.
func CanTransition(from, to AppointmentStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Appointment represents a booked visit at a salon. The occupied range is
// half-open: [StartAt, StartAt + DurationMinutes).
type Appointment struct {
	ID              string            `bson:"_id" json:"id"`
	SalonID         string            `bson:"salon_id" json:"salonId"`
	ServiceID       string            `bson:"service_id" json:"serviceId"`
	EmployeeID      string            `bson:"employee_id,omitempty" json:"employeeId,omitempty"` // empty means the salon-wide pool
	CustomerRef     string            `bson:"customer_ref,omitempty" json:"customerRef,omitempty"`
	StartAt         time.Time         `bson:"start_at" json:"startAt"`
	DurationMinutes int               `bson:"duration_minutes" json:"durationMinutes"`
	Status          AppointmentStatus `bson:"status" json:"status"`
	CreatedAt       time.Time         `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time         `bson:"updated_at" json:"updatedAt"`
}

// End returns the exclusive end of the occupied range.
func (a Appointment) End() time.Time {
	return a.StartAt.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// Overlaps applies the half-open interval test against [start, end).
func (a Appointment) Overlaps(start, end time.Time) bool {
	return a.StartAt.Before(end) && start.Before(a.End())
}
