package presence

import (
	"time"
)

// Event is one normalized building-access record: who was seen, when,
// and which import file it came from. The person name is kept exactly
// as the source spreadsheet gave it; resolving name variants to a
// single employee identity is the caller's concern.
//
// Events are immutable once persisted. The only mutations the store
// supports are chunked inserts and the administrative bulk clear.
type Event struct {
	ID         string
	PersonName string
	RecordedAt time.Time
	SourceFile string
	CreatedAt  time.Time
}
