package ingest

import (
	"strings"

	"github.com/gestaorh/presenca-backend-go/internal/domain/presence"
)

// Header aliases honored in portaria exports, matched through Resolve.
var (
	nameAliases = []string{"nome", "colaborador", "funcionario"}
	timeAliases = []string{"tempo", "data", "horario"}
)

// ProjectedRow pairs the canonical event with the provenance of its
// timestamp, so the import can count fallbacks.
type ProjectedRow struct {
	Event      presence.Event
	TimeSource TimeSource
}

// ProjectRow turns one raw spreadsheet row into a canonical event. Rows
// where no accepted name alias resolves to a non-empty value are
// discarded, reported only through the false return; a missing or
// unparseable time value never discards a row.
func ProjectRow(row map[string]string, sourceFile string) (ProjectedRow, bool) {
	name, ok := Resolve(row, nameAliases)
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return ProjectedRow{}, false
	}

	rawTime, _ := Resolve(row, timeAliases)
	normalized := NormalizeTimestamp(rawTime)

	return ProjectedRow{
		Event: presence.Event{
			PersonName: name,
			RecordedAt: normalized.Time,
			SourceFile: sourceFile,
		},
		TimeSource: normalized.Source,
	}, true
}
