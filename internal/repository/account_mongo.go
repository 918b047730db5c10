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

const accountsCollection = "accounts"

type AccountMongo struct {
	coll *mongo.Collection
}

func NewAccountMongo(db *mongo.Database) *AccountMongo {
	return &AccountMongo{coll: db.Collection(accountsCollection)}
}

var _ AccountRepo = (*AccountMongo)(nil)

// Create relies on the unique username index (see EnsureMongoIndexes).
func (r *AccountMongo) Create(ctx context.Context, a models.Account) error {
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	if _, err := r.coll.InsertOne(ctx, a); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert account %q: %w", a.Username, err)
	}
	return nil
}

func (r *AccountMongo) GetByUsername(ctx context.Context, username string) (models.Account, error) {
	var a models.Account
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Account{}, ErrNotFound
		}
		return models.Account{}, fmt.Errorf("find account %q: %w", username, err)
	}
	return a, nil
}

// List returns every account; the password hash is projected out at the store.
func (r *AccountMongo) List(ctx context.Context) ([]models.Account, error) {
	opts := options.Find().
		SetProjection(bson.M{"password_hash": 0}).
		SetSort(bson.D{{Key: "created_at", Value: 1}})

	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find accounts: %w", err)
	}
	out := make([]models.Account, 0, 16)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode accounts: %w", err)
	}
	return out, nil
}

func (r *AccountMongo) UpdatePassword(ctx context.Context, username, hash string, at time.Time) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"username": username},
		bson.M{"$set": bson.M{"password_hash": hash, "updated_at": at.UTC()}},
	)
	if err != nil {
		return fmt.Errorf("update account %q: %w", username, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AccountMongo) Delete(ctx context.Context, username string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"username": username})
	if err != nil {
		return fmt.Errorf("delete account %q: %w", username, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
