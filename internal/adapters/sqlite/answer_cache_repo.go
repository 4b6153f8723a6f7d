// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/applypilot/internal/models"
	"github.com/example/applypilot/internal/ports/secondary"
)

// AnswerCacheRepository implements secondary.AnswerCache with SQLite.
type AnswerCacheRepository struct {
	db *sql.DB
}

// NewAnswerCacheRepository creates a new SQLite answer cache repository.
func NewAnswerCacheRepository(db *sql.DB) *AnswerCacheRepository {
	return &AnswerCacheRepository{db: db}
}

func scanAnswer(scanner interface {
	Scan(dest ...any) error
}) (*secondary.CachedAnswer, error) {
	var (
		entry     secondary.CachedAnswer
		source    string
		createdAt time.Time
		updatedAt time.Time
	)

	err := scanner.Scan(&entry.Key, &entry.Question, &entry.Answer, &source, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	entry.Source = models.AnswerSource(source)
	entry.CreatedAt = createdAt
	entry.UpdatedAt = updatedAt
	return &entry, nil
}

const answerSelectCols = "key, question, answer, source, created_at, updated_at"

// Get returns the cached answer for a key, or nil when absent.
func (r *AnswerCacheRepository) Get(ctx context.Context, key string) (*secondary.CachedAnswer, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+answerSelectCols+" FROM answers WHERE key = ?",
		key,
	)

	entry, err := scanAnswer(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached answer: %w", err)
	}

	return entry, nil
}

// Put stores an answer. Insert-if-absent unless overwrite is set.
func (r *AnswerCacheRepository) Put(ctx context.Context, entry *secondary.CachedAnswer, overwrite bool) error {
	var err error
	if overwrite {
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO answers (key, question, answer, source) VALUES (?, ?, ?, ?)
			 ON CONFLICT(key) DO UPDATE SET answer = excluded.answer, source = excluded.source, updated_at = CURRENT_TIMESTAMP`,
			entry.Key, entry.Question, entry.Answer, string(entry.Source),
		)
	} else {
		_, err = r.db.ExecContext(ctx,
			"INSERT OR IGNORE INTO answers (key, question, answer, source) VALUES (?, ?, ?, ?)",
			entry.Key, entry.Question, entry.Answer, string(entry.Source),
		)
	}
	if err != nil {
		return fmt.Errorf("failed to cache answer: %w", err)
	}

	return nil
}

// List returns all cached answers ordered by creation time.
func (r *AnswerCacheRepository) List(ctx context.Context) ([]*secondary.CachedAnswer, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+answerSelectCols+" FROM answers ORDER BY created_at, key",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list cached answers: %w", err)
	}
	defer rows.Close()

	var entries []*secondary.CachedAnswer
	for rows.Next() {
		entry, err := scanAnswer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cached answer: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Delete removes a cached answer by key.
func (r *AnswerCacheRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM answers WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete cached answer: %w", err)
	}
	return nil
}
