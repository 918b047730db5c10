package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"learning_platform/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func ns(mt *mtest.T, coll string) string {
	return mt.DB.Name() + "." + coll
}

func TestAccountMongo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	mt.Run("create", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		err := NewAccountMongo(mt.DB).Create(ctx, models.Account{ID: "1", Username: "alice", PasswordHash: "h"})
		require.NoError(mt, err)
	})

	mt.Run("create duplicate", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: accounts index: username_unique",
		}))
		err := NewAccountMongo(mt.DB).Create(ctx, models.Account{ID: "2", Username: "alice"})
		require.ErrorIs(mt, err, ErrDuplicate)
	})

	mt.Run("get by username", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, accountsCollection), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "1"},
			{Key: "username", Value: "alice"},
			{Key: "password_hash", Value: "h"},
			{Key: "created_at", Value: now},
			{Key: "updated_at", Value: now},
		}))
		a, err := NewAccountMongo(mt.DB).GetByUsername(ctx, "alice")
		require.NoError(mt, err)
		assert.Equal(mt, "alice", a.Username)
		assert.Equal(mt, "h", a.PasswordHash)
		assert.True(mt, a.CreatedAt.Equal(now))
	})

	mt.Run("get missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, accountsCollection), mtest.FirstBatch))
		_, err := NewAccountMongo(mt.DB).GetByUsername(ctx, "ghost")
		require.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("list", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, accountsCollection), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "1"}, {Key: "username", Value: "alice"}},
			bson.D{{Key: "_id", Value: "2"}, {Key: "username", Value: "bob"}},
		))
		got, err := NewAccountMongo(mt.DB).List(ctx)
		require.NoError(mt, err)
		require.Len(mt, got, 2)
		assert.Equal(mt, "bob", got[1].Username)
		assert.Empty(mt, got[0].PasswordHash)
	})

	mt.Run("update password", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))
		require.NoError(mt, NewAccountMongo(mt.DB).UpdatePassword(ctx, "alice", "h2", now))
	})

	mt.Run("update password missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))
		err := NewAccountMongo(mt.DB).UpdatePassword(ctx, "ghost", "h2", now)
		require.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("delete", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		require.NoError(mt, NewAccountMongo(mt.DB).Delete(ctx, "alice"))
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		require.ErrorIs(mt, NewAccountMongo(mt.DB).Delete(ctx, "ghost"), ErrNotFound)
	})

	mt.Run("command error is wrapped", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "boom"}))
		err := NewAccountMongo(mt.DB).Delete(ctx, "alice")
		require.Error(mt, err)
		assert.False(mt, errors.Is(err, ErrNotFound))
	})
}

func TestModuleMongo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	mt.Run("create", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		require.NoError(mt, NewModuleMongo(mt.DB).Create(ctx, models.Module{ID: "m1", Title: "Go"}))
	})

	mt.Run("get with exercises", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, modulesCollection), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "m1"},
			{Key: "title", Value: "Go"},
			{Key: "exercises", Value: bson.A{
				bson.D{{Key: "_id", Value: "e1"}, {Key: "title", Value: "Loops"}, {Key: "description", Value: "for"}},
			}},
			{Key: "created_at", Value: now},
			{Key: "updated_at", Value: now},
		}))
		m, err := NewModuleMongo(mt.DB).Get(ctx, "m1")
		require.NoError(mt, err)
		assert.Equal(mt, "Go", m.Title)
		require.Len(mt, m.Exercises, 1)
		assert.Equal(mt, "e1", m.Exercises[0].ID)
	})

	mt.Run("get without exercises field", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, modulesCollection), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "m2"},
			{Key: "title", Value: "Empty"},
		}))
		m, err := NewModuleMongo(mt.DB).Get(ctx, "m2")
		require.NoError(mt, err)
		assert.NotNil(mt, m.Exercises)
		assert.Empty(mt, m.Exercises)
	})

	mt.Run("get missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, modulesCollection), mtest.FirstBatch))
		_, err := NewModuleMongo(mt.DB).Get(ctx, "nope")
		require.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("list", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, modulesCollection), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "m1"}, {Key: "title", Value: "A"}},
			bson.D{{Key: "_id", Value: "m2"}, {Key: "title", Value: "B"}},
		))
		got, err := NewModuleMongo(mt.DB).List(ctx)
		require.NoError(mt, err)
		require.Len(mt, got, 2)
		assert.NotNil(mt, got[0].Exercises)
	})

	mt.Run("update title missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))
		err := NewModuleMongo(mt.DB).UpdateTitle(ctx, "nope", "x", now)
		require.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("replace", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))
		err := NewModuleMongo(mt.DB).Replace(ctx, models.Module{ID: "m1", Title: "Go", UpdatedAt: now})
		require.NoError(mt, err)
	})

	mt.Run("replace missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))
		err := NewModuleMongo(mt.DB).Replace(ctx, models.Module{ID: "gone"})
		require.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("delete twice", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
		)
		repo := NewModuleMongo(mt.DB)
		require.NoError(mt, repo.Delete(ctx, "m1"))
		require.ErrorIs(mt, repo.Delete(ctx, "m1"), ErrNotFound)
	})
}

func TestActivityMongo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	mt.Run("append", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		err := NewActivityMongo(mt.DB).Append(ctx, models.Activity{Type: "module_created", Subject: "m1"})
		require.NoError(mt, err)
	})

	mt.Run("list", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, activityCollection), mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: "a1"},
				{Key: "occurred_at", Value: now},
				{Key: "type", Value: models.ActivityModuleCreated},
				{Key: "subject", Value: "m1"},
				{Key: "description", Value: "created"},
			},
		))
		got, err := NewActivityMongo(mt.DB).List(ctx, time.Time{}, time.Time{}, "")
		require.NoError(mt, err)
		require.Len(mt, got, 1)
		assert.Equal(mt, models.ActivityModuleCreated, got[0].Type)
		assert.True(mt, got[0].OccurredAt.Equal(now))
	})
}

func TestActivityFilter(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(time.Hour)

	assert.Empty(t, activityFilter(time.Time{}, time.Time{}, " "))

	f := activityFilter(from, to, "module_created")
	assert.Equal(t, "MODULE_CREATED", f["type"])
	occurred, ok := f["occurred_at"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, from, occurred["$gte"])
	assert.Equal(t, to, occurred["$lte"])
}
