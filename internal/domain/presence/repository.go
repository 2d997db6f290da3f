package presence

import (
	"context"
	"time"
)

// EventRepository defines data access for presence events. The table is
// append-only aside from DeleteAll; there is no update operation.
type EventRepository interface {
	// InsertBatch persists one chunk of events in a single statement.
	// The chunk either commits fully or not at all.
	InsertBatch(ctx context.Context, events []Event) error

	// ListByPeriod retrieves events whose recorded time falls in
	// [start, end), oldest first, capped at limit rows.
	ListByPeriod(ctx context.Context, start, end time.Time, limit int) ([]Event, error)

	// ListRecent retrieves the newest events for display, capped at limit.
	ListRecent(ctx context.Context, limit int) ([]Event, error)

	// DeleteAll removes every event and reports how many rows went away.
	DeleteAll(ctx context.Context) (int64, error)

	// Count reports the total number of stored events.
	Count(ctx context.Context) (int64, error)
}
