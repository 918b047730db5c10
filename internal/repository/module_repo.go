package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"learning_platform/internal/models"
)

// ModuleSQLite stores each module as one row; the exercise list is kept as a
// JSON document in the exercises column so a module is always written whole.
type ModuleSQLite struct {
	db *sql.DB
}

func NewModuleSQLite(db *sql.DB) *ModuleSQLite {
	return &ModuleSQLite{db: db}
}

var _ ModuleRepo = (*ModuleSQLite)(nil)

const (
	insertModuleSQL      = `INSERT INTO modules (id, title, exercises, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`
	selectModuleSQL      = `SELECT id, title, exercises, created_at, updated_at FROM modules WHERE id = ?`
	selectModulesSQL     = `SELECT id, title, exercises, created_at, updated_at FROM modules ORDER BY created_at ASC`
	updateModuleTitleSQL = `UPDATE modules SET title = ?, updated_at = ? WHERE id = ?`
	replaceModuleSQL     = `UPDATE modules SET title = ?, exercises = ?, updated_at = ? WHERE id = ?`
	deleteModuleSQL      = `DELETE FROM modules WHERE id = ?`
)

// marshalExercises always yields a JSON array, never "null".
func marshalExercises(ex []models.Exercise) (string, error) {
	if ex == nil {
		ex = []models.Exercise{}
	}
	b, err := json.Marshal(ex)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalExercises(s string) ([]models.Exercise, error) {
	out := []models.Exercise{}
	if s == "" || s == "null" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, err
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanModule(row rowScanner) (models.Module, error) {
	var (
		m      models.Module
		exJSON string
	)
	if err := row.Scan(&m.ID, &m.Title, &exJSON, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return models.Module{}, err
	}
	ex, err := unmarshalExercises(exJSON)
	if err != nil {
		return models.Module{}, fmt.Errorf("decode exercises of module %q: %w", m.ID, err)
	}
	m.Exercises = ex
	m.CreatedAt = m.CreatedAt.UTC()
	m.UpdatedAt = m.UpdatedAt.UTC()
	return m, nil
}

func (r *ModuleSQLite) Create(ctx context.Context, m models.Module) error {
	exJSON, err := marshalExercises(m.Exercises)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, insertModuleSQL,
		m.ID, m.Title, exJSON, m.CreatedAt.UTC(), m.UpdatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert module %q: %w", m.ID, err)
	}
	return nil
}

func (r *ModuleSQLite) Get(ctx context.Context, id string) (models.Module, error) {
	m, err := scanModule(r.db.QueryRowContext(ctx, selectModuleSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Module{}, ErrNotFound
		}
		return models.Module{}, fmt.Errorf("select module %q: %w", id, err)
	}
	return m, nil
}

func (r *ModuleSQLite) List(ctx context.Context) ([]models.Module, error) {
	rows, err := r.db.QueryContext(ctx, selectModulesSQL)
	if err != nil {
		return nil, fmt.Errorf("select modules: %w", err)
	}
	defer rows.Close()

	out := make([]models.Module, 0, 16)
	for rows.Next() {
		m, err := scanModule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan module: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate modules: %w", err)
	}
	return out, nil
}

func (r *ModuleSQLite) UpdateTitle(ctx context.Context, id, title string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, updateModuleTitleSQL, title, at.UTC(), id)
	if err != nil {
		return fmt.Errorf("update module %q: %w", id, err)
	}
	return affectedOrNotFound(res)
}

// Replace overwrites title, exercises and updated_at in one statement.
func (r *ModuleSQLite) Replace(ctx context.Context, m models.Module) error {
	exJSON, err := marshalExercises(m.Exercises)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, replaceModuleSQL, m.Title, exJSON, m.UpdatedAt.UTC(), m.ID)
	if err != nil {
		return fmt.Errorf("replace module %q: %w", m.ID, err)
	}
	return affectedOrNotFound(res)
}

func (r *ModuleSQLite) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteModuleSQL, id)
	if err != nil {
		return fmt.Errorf("delete module %q: %w", id, err)
	}
	return affectedOrNotFound(res)
}
