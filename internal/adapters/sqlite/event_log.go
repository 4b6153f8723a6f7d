package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/applypilot/internal/ctxutil"
)

// RunEvent is one persisted engine event.
type RunEvent struct {
	ID        int64
	RunID     string
	Phase     string
	ListingID string
	Message   string
	CreatedAt time.Time
}

// EventLog implements secondary.EventLogger with SQLite.
// The run ID is extracted from context.
type EventLog struct {
	db *sql.DB
}

// NewEventLog creates a new SQLite event logger.
func NewEventLog(db *sql.DB) *EventLog {
	return &EventLog{db: db}
}

// LogEvent appends one run event.
func (l *EventLog) LogEvent(ctx context.Context, phase, listingID, message string) error {
	runID := ctxutil.RunIDFromContext(ctx)

	var listing sql.NullString
	if listingID != "" {
		listing = sql.NullString{String: listingID, Valid: true}
	}

	_, err := l.db.ExecContext(ctx,
		"INSERT INTO run_events (run_id, phase, listing_id, message) VALUES (?, ?, ?, ?)",
		runID, phase, listing, message,
	)
	if err != nil {
		return fmt.Errorf("failed to log event: %w", err)
	}

	return nil
}

// Recent returns the newest events, optionally restricted to one run,
// oldest first so the output reads chronologically.
func (l *EventLog) Recent(ctx context.Context, runID string, limit int) ([]*RunEvent, error) {
	query := "SELECT id, run_id, phase, listing_id, message, created_at FROM run_events"
	args := []any{}
	if runID != "" {
		query += " WHERE run_id = ?"
		args = append(args, runID)
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []*RunEvent
	for rows.Next() {
		var e RunEvent
		var listing sql.NullString
		if err := rows.Scan(&e.ID, &e.RunID, &e.Phase, &listing, &e.Message, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		e.ListingID = listing.String
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	// Reverse into chronological order.
	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}
	return events, nil
}
