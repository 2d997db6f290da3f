package presence

import (
	"strings"

	"github.com/gestaorh/presenca-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
)

// ClearConfirmationPhrase must be typed verbatim by the operator before
// the bulk clear is executed. The repository itself stays unguarded;
// the gate lives at the HTTP boundary.
const ClearConfirmationPhrase = "APAGAR HISTORICO"

// ========================================
// IMPORT DTOs
// ========================================

type ImportRequest struct {
	// ImportID is client-supplied so the caller can subscribe to the
	// progress stream before uploading. Generated server-side when empty.
	ImportID   string
	SourceFile string
	Data       []byte
}

func (r *ImportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.SourceFile) {
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: "source file name is required",
		})
	}

	if len(r.Data) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: "spreadsheet file is empty",
		})
	}

	if r.ImportID != "" {
		if _, err := uuid.Parse(r.ImportID); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "import_id",
				Message: "import_id must be a valid UUID",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ImportResult struct {
	ImportID           string `json:"import_id"`
	SourceFile         string `json:"source_file"`
	RowsRead           int    `json:"rows_read"`
	Inserted           int    `json:"inserted"`
	Discarded          int    `json:"discarded"`
	FallbackTimestamps int    `json:"fallback_timestamps"`
}

type ClearRequest struct {
	Confirm string `json:"confirm"`
}

func (r *ClearRequest) Validate() error {
	if strings.TrimSpace(r.Confirm) != ClearConfirmationPhrase {
		var errs validator.ValidationErrors
		errs = append(errs, validator.ValidationError{
			Field:   "confirm",
			Message: "confirmation phrase does not match",
		})
		return errs
	}
	return nil
}

type ClearResult struct {
	Deleted int64 `json:"deleted"`
}

// ========================================
// EVENT LISTING DTOs
// ========================================

type EventResponse struct {
	ID         string `json:"id"`
	PersonName string `json:"person_name"`
	RecordedAt string `json:"recorded_at"`
	SourceFile string `json:"source_file"`
}

type ListFilter struct {
	Limit int `json:"limit"`
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 2000 // Default limit, keeps the display query light
	}
	if f.Limit > 10000 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 10000",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// MONTHLY REPORT DTOs
// ========================================

type MonthlyReportRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *MonthlyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// MonthlySummary is derived on demand and never persisted. One row per
// person that had at least one event inside the reporting window.
type MonthlySummary struct {
	PersonName          string         `json:"person_name"`
	DistinctDaysPresent int            `json:"distinct_days_present"`
	WeekdayHistogram    map[string]int `json:"weekday_histogram"`
}

type MonthlyReport struct {
	PeriodMonth int              `json:"period_month"`
	PeriodYear  int              `json:"period_year"`
	PeriodStart string           `json:"period_start"`
	PeriodEnd   string           `json:"period_end"`
	GeneratedAt string           `json:"generated_at"`
	EventsRead  int              `json:"events_read"`
	Summaries   []MonthlySummary `json:"summaries"`
}
