package scheduleRepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"salora/database"
	"salora/models"
	"salora/utils"
)

// ErrScheduleNotFound is returned when a salon has no stored weekly schedule.
var ErrScheduleNotFound = errors.New("weekly schedule not found")

// MongoScheduleRepo persists weekly schedules in the "schedules" collection,
// one document per salon, with a Redis read-through cache in front.
type MongoScheduleRepo struct {
	coll  *mongo.Collection
	cache *redis.Client
}

func NewMongoScheduleRepo() *MongoScheduleRepo {
	return &MongoScheduleRepo{
		coll:  database.DB().Collection("schedules"),
		cache: utils.GetCacheClient(),
	}
}

func cacheKey(salonID string) string {
	return utils.ScheduleCachePrefix + salonID
}

func (r *MongoScheduleRepo) Read(ctx context.Context, salonID string) (*models.WeeklySchedule, error) {
	logger := utils.GetLogger()

	if cached, err := r.cache.Get(ctx, cacheKey(salonID)).Result(); err == nil {
		var ws models.WeeklySchedule
		if err := json.Unmarshal([]byte(cached), &ws); err == nil {
			return &ws, nil
		}
		// Corrupt cache entry: drop it and fall through to Mongo.
		logger.Warn("dropping unreadable schedule cache entry", zap.String("salonID", salonID))
		r.cache.Del(ctx, cacheKey(salonID))
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var ws models.WeeklySchedule
	err := r.coll.FindOne(ctx, bson.M{"_id": salonID}).Decode(&ws)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read weekly schedule: %w", err)
	}

	if data, err := json.Marshal(ws); err == nil {
		if err := r.cache.Set(ctx, cacheKey(salonID), data, utils.ScheduleCacheTTL).Err(); err != nil {
			logger.Warn("failed to cache weekly schedule", zap.String("salonID", salonID), zap.Error(err))
		}
	}

	return &ws, nil
}

func (r *MongoScheduleRepo) Write(ctx context.Context, ws *models.WeeklySchedule) error {
	if err := ws.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": ws.SalonID}, ws, opts); err != nil {
		return fmt.Errorf("failed to write weekly schedule: %w", err)
	}

	if err := r.cache.Del(ctx, cacheKey(ws.SalonID)).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate schedule cache",
			zap.String("salonID", ws.SalonID), zap.Error(err))
	}
	return nil
}
