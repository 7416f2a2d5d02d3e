package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"salora/models"
)

// reservationBucketMinutes is the granularity of slot reservation documents.
// Any two overlapping half-open ranges share at least one instant, and both
// cover the bucket containing that instant, so unique bucket IDs alone are
// enough to forbid overlap even for unaligned ranges.
const reservationBucketMinutes = 5

// reservation claims one bucket of a resource's timeline. The _id carries the
// full (salon, employee, bucket) key, so the collection's default unique
// index on _id is the no-double-booking constraint.
type reservation struct {
	ID            string    `bson:"_id"`
	AppointmentID string    `bson:"appointment_id"`
	SalonID       string    `bson:"salon_id"`
	StartAt       time.Time `bson:"start_at"`
}

func employeeKey(employeeID string) string {
	if employeeID == "" {
		return "any"
	}
	return employeeID
}

// reservationIDs returns the bucket keys covered by the appointment's
// half-open range.
func reservationIDs(appt *models.Appointment) []string {
	bucket := int64(reservationBucketMinutes * 60)
	first := appt.StartAt.Unix() / bucket
	last := (appt.End().Unix() - 1) / bucket

	ids := make([]string, 0, last-first+1)
	for b := first; b <= last; b++ {
		ids = append(ids, fmt.Sprintf("%s|%s|%d", appt.SalonID, employeeKey(appt.EmployeeID), b*bucket))
	}
	return ids
}

// CreateIfFree inserts the appointment only if its range is free on the
// target resource. It runs in a Mongo session transaction: an in-session
// overlap re-check covers cross-scope conflicts (a salon-wide booking against
// staff-specific ones), and the ordered reservation inserts turn every
// same-scope race into a duplicate-key abort. Both failure modes surface as
// ErrSlotTaken.
func (r *MongoAppointmentRepo) CreateIfFree(ctx context.Context, appt *models.Appointment) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		conflict, err := r.hasConflictInSession(sc, appt)
		if err != nil {
			return fmt.Errorf("conflict re-check failed: %w", err)
		}
		if conflict {
			return ErrSlotTaken
		}

		docs := make([]interface{}, 0, 4)
		for _, id := range reservationIDs(appt) {
			docs = append(docs, reservation{
				ID:            id,
				AppointmentID: appt.ID,
				SalonID:       appt.SalonID,
				StartAt:       appt.StartAt,
			})
		}
		ordered := true
		if _, err := r.reservationColl.InsertMany(sc, docs, &options.InsertManyOptions{Ordered: &ordered}); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrSlotTaken
			}
			return fmt.Errorf("reservation insert failed: %w", err)
		}

		if _, err := r.coll.InsertOne(sc, appt); err != nil {
			return fmt.Errorf("appointment insert failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if err == ErrSlotTaken {
			return ErrSlotTaken
		}
		return fmt.Errorf("booking transaction failed: %w", err)
	}
	return nil
}

// hasConflictInSession re-runs the availability overlap test with the
// transaction's view of the appointments collection.
func (r *MongoAppointmentRepo) hasConflictInSession(sc mongo.SessionContext, appt *models.Appointment) (bool, error) {
	filter := bson.M{
		"salon_id": appt.SalonID,
		"status":   bson.M{"$nin": bson.A{models.StatusCancelled, models.StatusNoShow}},
		"$expr": bson.M{"$and": bson.A{
			bson.M{"$lt": bson.A{"$start_at", appt.End()}},
			bson.M{"$gt": bson.A{
				bson.M{"$add": bson.A{"$start_at", bson.M{"$multiply": bson.A{"$duration_minutes", 60000}}}},
				appt.StartAt,
			}},
		}},
	}
	if appt.EmployeeID != "" {
		filter["employee_id"] = appt.EmployeeID
	}

	count, err := r.coll.CountDocuments(sc, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ReleaseReservation frees the buckets held by an appointment, typically when
// it moves to cancelled or no_show. The appointment_id guard means a released
// and rebooked bucket is never deleted out from under its new owner.
func (r *MongoAppointmentRepo) ReleaseReservation(ctx context.Context, appt *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"_id":            bson.M{"$in": reservationIDs(appt)},
		"appointment_id": appt.ID,
	}
	if _, err := r.reservationColl.DeleteMany(ctx, filter); err != nil {
		return fmt.Errorf("failed to release reservation: %w", err)
	}
	return nil
}
