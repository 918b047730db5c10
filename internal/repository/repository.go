package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"learning_platform/internal/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// AccountRepo persists credentials. Lookups by a missing username return ErrNotFound.
type AccountRepo interface {
	Create(ctx context.Context, a models.Account) error
	GetByUsername(ctx context.Context, username string) (models.Account, error)
	List(ctx context.Context) ([]models.Account, error)
	UpdatePassword(ctx context.Context, username, hash string, at time.Time) error
	Delete(ctx context.Context, username string) error
}

// ModuleRepo persists module documents together with their embedded exercises.
// Every method is a single store operation.
type ModuleRepo interface {
	Create(ctx context.Context, m models.Module) error
	Get(ctx context.Context, id string) (models.Module, error)
	List(ctx context.Context) ([]models.Module, error)
	UpdateTitle(ctx context.Context, id, title string, at time.Time) error
	Replace(ctx context.Context, m models.Module) error
	Delete(ctx context.Context, id string) error
}

// ActivityRepo is the append-only mutation trail.
type ActivityRepo interface {
	Append(ctx context.Context, a models.Activity) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.Activity, error)
}

type Repository struct {
	Accounts AccountRepo
	Modules  ModuleRepo
	Activity ActivityRepo
}

func NewSQLiteRepository(db *sql.DB) *Repository {
	return &Repository{
		Accounts: NewAccountSQLite(db),
		Modules:  NewModuleSQLite(db),
		Activity: NewActivitySQLite(db),
	}
}

func NewMongoRepository(db *mongo.Database) *Repository {
	return &Repository{
		Accounts: NewAccountMongo(db),
		Modules:  NewModuleMongo(db),
		Activity: NewActivityMongo(db),
	}
}
