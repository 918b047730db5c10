package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"learning_platform/internal/models"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type AccountSQLite struct {
	db *sql.DB
}

func NewAccountSQLite(db *sql.DB) *AccountSQLite {
	return &AccountSQLite{db: db}
}

var _ AccountRepo = (*AccountSQLite)(nil)

const (
	insertAccountSQL           = `INSERT INTO accounts (id, username, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`
	selectAccountByUsernameSQL = `SELECT id, username, password_hash, created_at, updated_at FROM accounts WHERE username = ?`
	selectAccountsSQL          = `SELECT id, username, created_at, updated_at FROM accounts ORDER BY created_at ASC`
	updateAccountPasswordSQL   = `UPDATE accounts SET password_hash = ?, updated_at = ? WHERE username = ?`
	deleteAccountSQL           = `DELETE FROM accounts WHERE username = ?`
)

// isUniqueViolation reports whether err is a SQLite UNIQUE/PRIMARY KEY failure.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) && (se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE || se.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// affectedOrNotFound turns a zero-row write into ErrNotFound.
func affectedOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Create inserts a new account. A taken username yields ErrDuplicate.
func (r *AccountSQLite) Create(ctx context.Context, a models.Account) error {
	_, err := r.db.ExecContext(ctx, insertAccountSQL,
		a.ID, a.Username, a.PasswordHash, a.CreatedAt.UTC(), a.UpdatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert account %q: %w", a.Username, err)
	}
	return nil
}

func (r *AccountSQLite) GetByUsername(ctx context.Context, username string) (models.Account, error) {
	var a models.Account
	err := r.db.QueryRowContext(ctx, selectAccountByUsernameSQL, username).
		Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, ErrNotFound
		}
		return models.Account{}, fmt.Errorf("select account %q: %w", username, err)
	}
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	return a, nil
}

// List returns every account without its password hash.
func (r *AccountSQLite) List(ctx context.Context) ([]models.Account, error) {
	rows, err := r.db.QueryContext(ctx, selectAccountsSQL)
	if err != nil {
		return nil, fmt.Errorf("select accounts: %w", err)
	}
	defer rows.Close()

	out := make([]models.Account, 0, 16)
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.Username, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		a.CreatedAt = a.CreatedAt.UTC()
		a.UpdatedAt = a.UpdatedAt.UTC()
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}
	return out, nil
}

func (r *AccountSQLite) UpdatePassword(ctx context.Context, username, hash string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, updateAccountPasswordSQL, hash, at.UTC(), username)
	if err != nil {
		return fmt.Errorf("update account %q: %w", username, err)
	}
	return affectedOrNotFound(res)
}

func (r *AccountSQLite) Delete(ctx context.Context, username string) error {
	res, err := r.db.ExecContext(ctx, deleteAccountSQL, username)
	if err != nil {
		return fmt.Errorf("delete account %q: %w", username, err)
	}
	return affectedOrNotFound(res)
}
