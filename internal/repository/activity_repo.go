package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"learning_platform/internal/models"

	"github.com/google/uuid"
)

// activityTimeLayout keeps occurred_at lexically sortable so range filters can
// compare strings.
const activityTimeLayout = "2006-01-02 15:04:05.000"

const insertActivitySQL = `INSERT INTO activity (id, occurred_at, type, actor, subject, message, meta) VALUES (?, ?, ?, ?, ?, ?, ?)`

type ActivitySQLite struct {
	db *sql.DB
}

func NewActivitySQLite(db *sql.DB) *ActivitySQLite { return &ActivitySQLite{db: db} }

var _ ActivityRepo = (*ActivitySQLite)(nil)

// normalizeActivity fills ID and OccurredAt when empty and uppercases Type.
func normalizeActivity(a models.Activity) models.Activity {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.OccurredAt.IsZero() {
		a.OccurredAt = time.Now().UTC()
	} else {
		a.OccurredAt = a.OccurredAt.UTC()
	}
	a.Type = strings.ToUpper(strings.TrimSpace(a.Type))
	return a
}

// Append inserts a new activity entry.
func (r *ActivitySQLite) Append(ctx context.Context, a models.Activity) error {
	a = normalizeActivity(a)

	var metaPtr *string
	if len(a.Metadata) > 0 {
		if b, err := json.Marshal(a.Metadata); err == nil {
			s := string(b)
			metaPtr = &s
		}
	}

	_, err := r.db.ExecContext(ctx, insertActivitySQL,
		a.ID,
		a.OccurredAt.Format(activityTimeLayout),
		a.Type,
		a.Actor,
		a.Subject,
		a.Description,
		metaPtr,
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// List returns entries filtered by [from, to] (inclusive) and/or type, ordered ASC.
func (r *ActivitySQLite) List(ctx context.Context, from, to time.Time, typ string) ([]models.Activity, error) {
	var (
		conds []string
		args  []any
	)

	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, from.UTC().Format(activityTimeLayout))
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, to.UTC().Format(activityTimeLayout))
	}
	if typ = strings.ToUpper(strings.TrimSpace(typ)); typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, typ)
	}

	q := `SELECT id, occurred_at, type, actor, subject, message, meta FROM activity`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY occurred_at ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("select activity: %w", err)
	}
	defer rows.Close()

	out := make([]models.Activity, 0, 64)
	for rows.Next() {
		var (
			a       models.Activity
			actor   sql.NullString
			metaStr sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.OccurredAt, &a.Type, &actor, &a.Subject, &a.Description, &metaStr); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		a.OccurredAt = a.OccurredAt.UTC()
		a.Actor = actor.String

		if metaStr.Valid && metaStr.String != "" {
			var meta map[string]any
			// malformed metadata is dropped rather than failing the whole listing
			if err := json.Unmarshal([]byte(metaStr.String), &meta); err == nil {
				a.Metadata = meta
			}
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity: %w", err)
	}
	return out, nil
}
