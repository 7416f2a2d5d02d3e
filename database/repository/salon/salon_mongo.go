package salonRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"salora/database"
	"salora/models"
)

// MongoSalonRepo stores salons in the "salons" collection.
type MongoSalonRepo struct {
	coll *mongo.Collection
}

func NewMongoSalonRepo() *MongoSalonRepo {
	return &MongoSalonRepo{coll: database.DB().Collection("salons")}
}

func (r *MongoSalonRepo) Create(ctx context.Context, salon *models.Salon) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, salon); err != nil {
		return fmt.Errorf("failed to create salon: %w", err)
	}
	return nil
}

func (r *MongoSalonRepo) GetByID(ctx context.Context, salonID string) (*models.Salon, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var salon models.Salon
	err := r.coll.FindOne(ctx, bson.M{"_id": salonID}).Decode(&salon)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrSalonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch salon: %w", err)
	}
	return &salon, nil
}

func (r *MongoSalonRepo) Update(ctx context.Context, salonID string, updates map[string]interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	updates["updated_at"] = time.Now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": salonID}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to update salon: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrSalonNotFound
	}
	return nil
}

func (r *MongoSalonRepo) Delete(ctx context.Context, salonID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": salonID})
	if err != nil {
		return fmt.Errorf("failed to delete salon: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrSalonNotFound
	}
	return nil
}
