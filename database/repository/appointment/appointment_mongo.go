package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"salora/database"
	"salora/models"
)

// MongoAppointmentRepo stores appointments in the "appointments" collection
// and slot reservations in "reservations".
type MongoAppointmentRepo struct {
	coll            *mongo.Collection
	reservationColl *mongo.Collection
}

func NewMongoAppointmentRepo() *MongoAppointmentRepo {
	return &MongoAppointmentRepo{
		coll:            database.DB().Collection("appointments"),
		reservationColl: database.DB().Collection("reservations"),
	}
}

func (r *MongoAppointmentRepo) GetByID(ctx context.Context, salonID, apptID string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appt models.Appointment
	err := r.coll.FindOne(ctx, bson.M{"_id": apptID, "salon_id": salonID}).Decode(&appt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment: %w", err)
	}
	return &appt, nil
}

func (r *MongoAppointmentRepo) UpdateStatus(ctx context.Context, salonID, apptID string, status models.AppointmentStatus) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": apptID, "salon_id": salonID}, update)
	if err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

// ListByDay returns all appointments whose start falls in [dayStart, dayEnd),
// ordered by start time. Status filtering is the caller's concern.
func (r *MongoAppointmentRepo) ListByDay(ctx context.Context, salonID string, dayStart, dayEnd time.Time) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"salon_id": salonID,
		"start_at": bson.M{"$gte": dayStart, "$lt": dayEnd},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start_at", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments by day: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appts, nil
}

func (r *MongoAppointmentRepo) ListBySalon(ctx context.Context, salonID string, f Filters) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"salon_id": salonID}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.EmployeeID != "" {
		filter["employee_id"] = f.EmployeeID
	}
	startRange := bson.M{}
	if !f.From.IsZero() {
		startRange["$gte"] = f.From
	}
	if !f.To.IsZero() {
		startRange["$lt"] = f.To
	}
	if len(startRange) > 0 {
		filter["start_at"] = startRange
	}

	opts := options.Find().SetSort(bson.D{{Key: "start_at", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appts, nil
}
