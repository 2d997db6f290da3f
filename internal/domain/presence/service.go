package presence

import (
	"context"
)

// ImportService defines business logic for spreadsheet ingestion
type ImportService interface {
	// Import reads the spreadsheet, projects every row into a canonical
	// event and writes the survivors in ordered chunks. Progress is
	// published to the import's SSE subscribers as the chunks land.
	Import(ctx context.Context, req ImportRequest) (ImportResult, error)

	// ListEvents retrieves the newest persisted events for display.
	ListEvents(ctx context.Context, filter ListFilter) ([]EventResponse, int64, error)

	// Clear irreversibly removes every stored event. Callers are
	// expected to have collected the typed confirmation already.
	Clear(ctx context.Context, req ClearRequest) (ClearResult, error)
}

// ReportService defines business logic for monthly frequency reports
type ReportService interface {
	// MonthlyFrequency computes per-person distinct-day presence and the
	// weekday breakdown for one calendar month.
	MonthlyFrequency(ctx context.Context, req MonthlyReportRequest) (MonthlyReport, error)
}
