package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gestaorh/presenca-backend-go/internal/domain/presence"
	"github.com/gestaorh/presenca-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type eventRepository struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) presence.EventRepository {
	return &eventRepository{db: db}
}

// InsertBatch implements presence.EventRepository. The whole chunk goes
// into one multi-row INSERT, so it commits fully or not at all.
func (r *eventRepository) InsertBatch(ctx context.Context, events []presence.Event) error {
	if len(events) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	var sb strings.Builder
	sb.WriteString(`INSERT INTO presence_events (person_name, recorded_at, source_file) VALUES `)

	args := make([]interface{}, 0, len(events)*3)
	for i, ev := range events {
		if i > 0 {
			sb.WriteString(", ")
		}
		n := i * 3
		fmt.Fprintf(&sb, "($%d, $%d, $%d)", n+1, n+2, n+3)
		args = append(args, ev.PersonName, ev.RecordedAt, ev.SourceFile)
	}

	if _, err := q.Exec(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("failed to insert presence events: %w", err)
	}

	return nil
}

// ListByPeriod implements presence.EventRepository.
func (r *eventRepository) ListByPeriod(ctx context.Context, start, end time.Time, limit int) ([]presence.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, person_name, recorded_at, source_file, created_at
		FROM presence_events
		WHERE recorded_at >= $1
		  AND recorded_at < $2
		ORDER BY recorded_at ASC
		LIMIT $3
	`

	rows, err := q.Query(ctx, query, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list presence events by period: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// ListRecent implements presence.EventRepository.
func (r *eventRepository) ListRecent(ctx context.Context, limit int) ([]presence.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, person_name, recorded_at, source_file, created_at
		FROM presence_events
		ORDER BY recorded_at DESC
		LIMIT $1
	`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent presence events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// DeleteAll implements presence.EventRepository.
func (r *eventRepository) DeleteAll(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM presence_events`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete presence events: %w", err)
	}

	return tag.RowsAffected(), nil
}

// Count implements presence.EventRepository.
func (r *eventRepository) Count(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM presence_events`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count presence events: %w", err)
	}

	return count, nil
}

func scanEvents(rows pgx.Rows) ([]presence.Event, error) {
	var events []presence.Event
	for rows.Next() {
		var ev presence.Event
		if err := rows.Scan(&ev.ID, &ev.PersonName, &ev.RecordedAt, &ev.SourceFile, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan presence event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate presence events: %w", err)
	}
	return events, nil
}
