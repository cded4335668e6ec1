// Package promptsql stores prompts in the embedded SQLite database.
package promptsql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kailas-cloud/promptsearch/internal/db"
	"github.com/kailas-cloud/promptsearch/internal/domain"
	domprompt "github.com/kailas-cloud/promptsearch/internal/domain/prompt"
)

const selectColumns = `id, title, description, body, category, tags, is_private, owner_id, created_at`

// Repo implements usecase/search.RecordStore and usecase/prompt.Repository on SQLite.
type Repo struct {
	db *sql.DB
}

// New creates a repository over a migrated database.
func New(conn *sql.DB) *Repo {
	return &Repo{db: conn}
}

// Fetch lists up to limit records matching f, ordered by created_at then id.
func (r *Repo) Fetch(ctx context.Context, f domprompt.Filter, limit int) ([]domprompt.Record, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	query := `SELECT ` + selectColumns + ` FROM prompts WHERE is_private = ?`
	args := []any{boolToInt(f.IsPrivate)}
	if f.OwnerID != "" {
		query += ` AND owner_id = ?`
		args = append(args, f.OwnerID)
	}
	query += ` ORDER BY created_at, id LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &db.Error{Op: db.OpQuery, Err: err}
	}
	defer rows.Close()

	records := make([]domprompt.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &db.Error{Op: db.OpQuery, Err: err}
	}
	return records, nil
}

// Put upserts records in one transaction.
func (r *Repo) Put(ctx context.Context, records ...domprompt.Record) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return &db.Error{Op: db.OpExec, Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO prompts (`+selectColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	title = excluded.title,
	description = excluded.description,
	body = excluded.body,
	category = excluded.category,
	tags = excluded.tags,
	is_private = excluded.is_private,
	owner_id = excluded.owner_id,
	created_at = excluded.created_at`)
	if err != nil {
		return &db.Error{Op: db.OpExec, Err: err}
	}
	defer stmt.Close()

	for i := range records {
		rec := &records[i]
		tags, err := json.Marshal(rec.Tags())
		if err != nil {
			return fmt.Errorf("prompt %s: marshal tags: %w", rec.ID(), err)
		}
		_, err = stmt.ExecContext(ctx,
			rec.ID(), rec.Title(), rec.Description(), rec.Body(), rec.Category(),
			string(tags), boolToInt(rec.IsPrivate()), rec.OwnerID(), rec.CreatedAt(),
		)
		if err != nil {
			return &db.Error{Op: db.OpExec, Err: fmt.Errorf("prompt %s: %w", rec.ID(), err)}
		}
	}

	if err := tx.Commit(); err != nil {
		return &db.Error{Op: db.OpExec, Err: err}
	}
	return nil
}

// Get returns a prompt by ID.
func (r *Repo) Get(ctx context.Context, id string) (domprompt.Record, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM prompts WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domprompt.Record{}, domain.ErrPromptNotFound
	}
	return rec, err
}

// Delete removes a prompt. Deleting a missing prompt is not an error.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM prompts WHERE id = ?`, id); err != nil {
		return &db.Error{Op: db.OpExec, Err: err}
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scanRecord reads one row; NULL text columns read as empty strings.
func scanRecord(s scanner) (domprompt.Record, error) {
	var (
		id, ownerID    string
		title, desc    sql.NullString
		body, category sql.NullString
		tagsRaw        sql.NullString
		private        int
		createdAt      int64
	)
	err := s.Scan(&id, &title, &desc, &body, &category, &tagsRaw, &private, &ownerID, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domprompt.Record{}, err
		}
		return domprompt.Record{}, &db.Error{Op: db.OpQuery, Err: err}
	}

	var tags []string
	if tagsRaw.Valid && tagsRaw.String != "" {
		if err := json.Unmarshal([]byte(tagsRaw.String), &tags); err != nil {
			return domprompt.Record{}, fmt.Errorf("prompt %s: parse tags: %w", id, err)
		}
	}

	return domprompt.Reconstruct(id, ownerID, domprompt.Fields{
		Title:       title.String,
		Description: desc.String,
		Body:        body.String,
		Category:    category.String,
		Tags:        tags,
	}, private != 0, createdAt), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
