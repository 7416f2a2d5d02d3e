// FILE: database/repository/appointment/indexes.go
package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the appointments collection.
// Reservations need none beyond the default unique _id index, which is the
// double-booking constraint itself.
func (r *MongoAppointmentRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// Primary query pattern: a salon's day of appointments.
		{
			Keys:    bson.D{{Key: "salon_id", Value: 1}, {Key: "start_at", Value: 1}},
			Options: options.Index().SetName("salon_start_idx"),
		},
		// Staff-scoped conflict checks.
		{
			Keys:    bson.D{{Key: "salon_id", Value: 1}, {Key: "employee_id", Value: 1}, {Key: "start_at", Value: 1}},
			Options: options.Index().SetName("salon_employee_start_idx"),
		},
		// Status-filtered listings.
		{
			Keys:    bson.D{{Key: "salon_id", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("salon_status_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create appointment indexes: %w", err)
	}
	return nil
}
