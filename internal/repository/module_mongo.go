package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"learning_platform/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const modulesCollection = "modules"

type ModuleMongo struct {
	coll *mongo.Collection
}

func NewModuleMongo(db *mongo.Database) *ModuleMongo {
	return &ModuleMongo{coll: db.Collection(modulesCollection)}
}

var _ ModuleRepo = (*ModuleMongo)(nil)

func withExercises(m models.Module) models.Module {
	if m.Exercises == nil {
		m.Exercises = []models.Exercise{}
	}
	return m
}

func (r *ModuleMongo) Create(ctx context.Context, m models.Module) error {
	m = withExercises(m)
	m.CreatedAt = m.CreatedAt.UTC()
	m.UpdatedAt = m.UpdatedAt.UTC()
	if _, err := r.coll.InsertOne(ctx, m); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert module %q: %w", m.ID, err)
	}
	return nil
}

func (r *ModuleMongo) Get(ctx context.Context, id string) (models.Module, error) {
	var m models.Module
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Module{}, ErrNotFound
		}
		return models.Module{}, fmt.Errorf("find module %q: %w", id, err)
	}
	return withExercises(m), nil
}

func (r *ModuleMongo) List(ctx context.Context) ([]models.Module, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find modules: %w", err)
	}
	out := make([]models.Module, 0, 16)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode modules: %w", err)
	}
	for i := range out {
		out[i] = withExercises(out[i])
	}
	return out, nil
}

func (r *ModuleMongo) UpdateTitle(ctx context.Context, id, title string, at time.Time) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"title": title, "updated_at": at.UTC()}},
	)
	if err != nil {
		return fmt.Errorf("update module %q: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Replace swaps the whole document, exercises included, in one write.
func (r *ModuleMongo) Replace(ctx context.Context, m models.Module) error {
	m = withExercises(m)
	m.CreatedAt = m.CreatedAt.UTC()
	m.UpdatedAt = m.UpdatedAt.UTC()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": m.ID}, m)
	if err != nil {
		return fmt.Errorf("replace module %q: %w", m.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ModuleMongo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete module %q: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
