package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"learning_platform/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const activityCollection = "activity"

type ActivityMongo struct {
	coll *mongo.Collection
}

func NewActivityMongo(db *mongo.Database) *ActivityMongo {
	return &ActivityMongo{coll: db.Collection(activityCollection)}
}

var _ ActivityRepo = (*ActivityMongo)(nil)

func (r *ActivityMongo) Append(ctx context.Context, a models.Activity) error {
	if _, err := r.coll.InsertOne(ctx, normalizeActivity(a)); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// activityFilter builds the same [from, to] + type filter the SQL store uses.
func activityFilter(from, to time.Time, typ string) bson.M {
	filter := bson.M{}
	occurred := bson.M{}
	if !from.IsZero() {
		occurred["$gte"] = from.UTC()
	}
	if !to.IsZero() {
		occurred["$lte"] = to.UTC()
	}
	if len(occurred) > 0 {
		filter["occurred_at"] = occurred
	}
	if typ = strings.ToUpper(strings.TrimSpace(typ)); typ != "" {
		filter["type"] = typ
	}
	return filter
}

func (r *ActivityMongo) List(ctx context.Context, from, to time.Time, typ string) ([]models.Activity, error) {
	opts := options.Find().SetSort(bson.D{{Key: "occurred_at", Value: 1}})
	cur, err := r.coll.Find(ctx, activityFilter(from, to, typ), opts)
	if err != nil {
		return nil, fmt.Errorf("find activity: %w", err)
	}
	out := make([]models.Activity, 0, 64)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode activity: %w", err)
	}
	for i := range out {
		out[i].OccurredAt = out[i].OccurredAt.UTC()
	}
	return out, nil
}
