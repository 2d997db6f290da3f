package http

import (
	"net/http"
	"strconv"

	"github.com/gestaorh/presenca-backend-go/internal/domain/presence"
	"github.com/gestaorh/presenca-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	// Monthly Frequency Report
	GetMonthlyFrequencyReport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService presence.ReportService
}

func NewReportHandler(reportService presence.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// GetMonthlyFrequencyReport handles GET /presence/reports/monthly
func (h *reportHandlerImpl) GetMonthlyFrequencyReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Parse query parameters
	monthStr := r.URL.Query().Get("month")
	yearStr := r.URL.Query().Get("year")

	month, err := strconv.Atoi(monthStr)
	if err != nil {
		response.BadRequest(w, "invalid month parameter", nil)
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		response.BadRequest(w, "invalid year parameter", nil)
		return
	}

	req := presence.MonthlyReportRequest{
		Month: month,
		Year:  year,
	}

	report, err := h.reportService.MonthlyFrequency(ctx, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, report)
}
