package report

import (
	"context"
	"fmt"
	"time"

	"github.com/gestaorh/presenca-backend-go/internal/domain/presence"
	"github.com/gestaorh/presenca-backend-go/internal/pkg/metrics"
)

type reportServiceImpl struct {
	eventRepo  presence.EventRepository
	fetchLimit int
	canon      NameCanonicalizer
}

// NewReportService builds the monthly frequency service. fetchLimit
// bounds the month's event fetch; canon may be nil for the default
// uppercase folding.
func NewReportService(eventRepo presence.EventRepository, fetchLimit int, canon NameCanonicalizer) presence.ReportService {
	if canon == nil {
		canon = DefaultCanonicalizer
	}
	return &reportServiceImpl{
		eventRepo:  eventRepo,
		fetchLimit: fetchLimit,
		canon:      canon,
	}
}

// MonthlyFrequency implements presence.ReportService.
func (s *reportServiceImpl) MonthlyFrequency(ctx context.Context, req presence.MonthlyReportRequest) (presence.MonthlyReport, error) {
	if err := req.Validate(); err != nil {
		return presence.MonthlyReport{}, err
	}

	periodStart := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.Local)
	periodEnd := periodStart.AddDate(0, 1, 0)

	events, err := s.eventRepo.ListByPeriod(ctx, periodStart, periodEnd, s.fetchLimit)
	if err != nil {
		return presence.MonthlyReport{}, fmt.Errorf("failed to get presence data: %w", err)
	}

	summaries := Aggregate(events, time.Month(req.Month), req.Year, s.canon)
	metrics.ReportsGenerated.Inc()

	return presence.MonthlyReport{
		PeriodMonth: req.Month,
		PeriodYear:  req.Year,
		PeriodStart: periodStart.Format("2006-01-02"),
		PeriodEnd:   periodStart.AddDate(0, 1, -1).Format("2006-01-02"),
		GeneratedAt: time.Now().Format(time.RFC3339),
		EventsRead:  len(events),
		Summaries:   summaries,
	}, nil
}
