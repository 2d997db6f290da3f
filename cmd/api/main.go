package main

import (
	"fmt"
	"net/http"

	"github.com/gestaorh/presenca-backend-go/internal/config"
	appHTTP "github.com/gestaorh/presenca-backend-go/internal/handler/http"
	"github.com/gestaorh/presenca-backend-go/internal/pkg/database"
	"github.com/gestaorh/presenca-backend-go/internal/pkg/sse"
	"github.com/gestaorh/presenca-backend-go/internal/repository/postgresql"
	ingestService "github.com/gestaorh/presenca-backend-go/internal/service/ingest"
	reportService "github.com/gestaorh/presenca-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	eventRepo := postgresql.NewEventRepository(db)

	progressHub := sse.NewHub()
	importSvc := ingestService.NewImportService(eventRepo, progressHub, cfg.Import.BatchSize)
	reportSvc := reportService.NewReportService(eventRepo, cfg.Report.FetchLimit, nil)

	presenceHandler := appHTTP.NewPresenceHandler(importSvc, progressHub, cfg.Import.MaxUploadMB)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(presenceHandler, reportHandler, cfg.App.Env)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
