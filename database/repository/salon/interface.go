package salonRepo

import (
	"context"
	"errors"

	"salora/models"
)

// ErrSalonNotFound is returned when no salon matches the given ID.
var ErrSalonNotFound = errors.New("salon not found")

// SalonRepository manages salon records.
type SalonRepository interface {
	Create(ctx context.Context, salon *models.Salon) error
	GetByID(ctx context.Context, salonID string) (*models.Salon, error)
	Update(ctx context.Context, salonID string, updates map[string]interface{}) error
	Delete(ctx context.Context, salonID string) error
}
