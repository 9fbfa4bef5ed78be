package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aliskhannn/loftfit-bot/internal/domain/entities"
	"github.com/aliskhannn/loftfit-bot/internal/infra/postgres"
)

// EventRepository stores quiz analytics events.
type EventRepository struct {
	db postgres.DBTX
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db postgres.DBTX) *EventRepository {
	return &EventRepository{db: db}
}

// Save inserts a single event. Replaying the same event id is a no-op.
func (r *EventRepository) Save(ctx context.Context, event entities.Event) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	var runID *uuid.UUID
	if id, err := uuid.Parse(event.RunID()); err == nil {
		runID = &id
	}

	query := `
		INSERT INTO quiz_events (id, run_id, name, payload, occurred_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`

	_, err = r.db.Exec(ctx, query, event.ID, runID, event.Name, payload, event.OccurredAt)
	if err != nil {
		return fmt.Errorf("save quiz event: %w", err)
	}

	return nil
}

// CountByName returns how many events of each name were recorded since the
// given time.
func (r *EventRepository) CountByName(ctx context.Context, since time.Time) (map[string]int64, error) {
	query := `
		SELECT name, COUNT(*)
		FROM quiz_events
		WHERE occurred_at >= $1
		GROUP BY name
	`

	rows, err := r.db.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("count quiz events: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var (
			name  string
			count int64
		)
		if err := rows.Scan(&name, &count); err != nil {
			return nil, fmt.Errorf("scan event count: %w", err)
		}
		counts[name] = count
	}

	return counts, rows.Err()
}

// Name identifies the repository as an analytics sink.
func (r *EventRepository) Name() string { return "postgres" }

// Publish lets the repository act as an analytics sink.
func (r *EventRepository) Publish(ctx context.Context, event entities.Event) error {
	return r.Save(ctx, event)
}
