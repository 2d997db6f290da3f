package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gestaorh/presenca-backend-go/internal/domain/presence"
	"github.com/gestaorh/presenca-backend-go/internal/pkg/metrics"
	"github.com/gestaorh/presenca-backend-go/internal/pkg/sse"
	"github.com/google/uuid"
)

type importServiceImpl struct {
	eventRepo presence.EventRepository
	hub       *sse.Hub
	batchSize int
}

func NewImportService(eventRepo presence.EventRepository, hub *sse.Hub, batchSize int) presence.ImportService {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &importServiceImpl{
		eventRepo: eventRepo,
		hub:       hub,
		batchSize: batchSize,
	}
}

// Import implements presence.ImportService. On a chunk failure the
// returned result still carries the committed count; chunks already
// acknowledged stay persisted.
func (s *importServiceImpl) Import(ctx context.Context, req presence.ImportRequest) (presence.ImportResult, error) {
	if err := req.Validate(); err != nil {
		return presence.ImportResult{}, err
	}

	importID := req.ImportID
	if importID == "" {
		importID = uuid.NewString()
	}

	started := time.Now()
	result := presence.ImportResult{
		ImportID:   importID,
		SourceFile: req.SourceFile,
	}

	rows, err := ReadWorkbook(req.Data)
	if err != nil {
		metrics.ImportFailures.Inc()
		s.publishFailure(importID, 0, err)
		return result, err
	}

	result.RowsRead = len(rows)
	metrics.RowsRead.Add(float64(len(rows)))

	events := make([]presence.Event, 0, len(rows))
	for _, row := range rows {
		projected, ok := ProjectRow(row, req.SourceFile)
		if !ok {
			result.Discarded++
			continue
		}
		if projected.TimeSource == SourceFallbackNow {
			result.FallbackTimestamps++
		}
		events = append(events, projected.Event)
	}

	metrics.RowsDiscarded.Add(float64(result.Discarded))
	metrics.FallbackTimestamps.Add(float64(result.FallbackTimestamps))

	slog.Info("starting presence import",
		"import_id", importID,
		"source_file", req.SourceFile,
		"rows_read", result.RowsRead,
		"valid_events", len(events),
	)

	lastPercent := 0
	writeResult, err := WriteBatches(ctx, s.eventRepo, events, s.batchSize, func(percent int) {
		lastPercent = percent
		s.hub.Publish(importID, sse.Event{
			ImportID: importID,
			Event:    "progress",
			Data:     map[string]int{"percent": percent},
		})
	})

	result.Inserted = writeResult.CommittedCount

	if err != nil {
		if !errors.Is(err, presence.ErrNothingToImport) {
			metrics.ImportFailures.Inc()
		}
		slog.Error("presence import aborted",
			"import_id", importID,
			"committed", writeResult.CommittedCount,
			"failed_chunk", writeResult.FailedChunkIndex,
			"error", err,
		)
		s.publishFailure(importID, lastPercent, err)
		return result, err
	}

	metrics.EventsInserted.Add(float64(result.Inserted))
	metrics.ImportDuration.Observe(time.Since(started).Seconds())

	s.hub.Publish(importID, sse.Event{
		ImportID: importID,
		Event:    "completed",
		Data:     result,
	})

	slog.Info("presence import completed",
		"import_id", importID,
		"inserted", result.Inserted,
		"discarded", result.Discarded,
		"fallback_timestamps", result.FallbackTimestamps,
		"duration", time.Since(started).String(),
	)

	return result, nil
}

// ListEvents implements presence.ImportService.
func (s *importServiceImpl) ListEvents(ctx context.Context, filter presence.ListFilter) ([]presence.EventResponse, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}

	events, err := s.eventRepo.ListRecent(ctx, filter.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list presence events: %w", err)
	}

	total, err := s.eventRepo.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count presence events: %w", err)
	}

	responses := make([]presence.EventResponse, 0, len(events))
	for _, ev := range events {
		responses = append(responses, presence.EventResponse{
			ID:         ev.ID,
			PersonName: ev.PersonName,
			RecordedAt: ev.RecordedAt.Format(time.RFC3339),
			SourceFile: ev.SourceFile,
		})
	}

	return responses, total, nil
}

// Clear implements presence.ImportService. Irreversible.
func (s *importServiceImpl) Clear(ctx context.Context, req presence.ClearRequest) (presence.ClearResult, error) {
	if err := req.Validate(); err != nil {
		return presence.ClearResult{}, err
	}

	deleted, err := s.eventRepo.DeleteAll(ctx)
	if err != nil {
		return presence.ClearResult{}, fmt.Errorf("failed to clear presence events: %w", err)
	}

	slog.Warn("presence history cleared", "deleted", deleted)

	return presence.ClearResult{Deleted: deleted}, nil
}

func (s *importServiceImpl) publishFailure(importID string, lastPercent int, err error) {
	s.hub.Publish(importID, sse.Event{
		ImportID: importID,
		Event:    "failed",
		Data: map[string]interface{}{
			"percent": lastPercent,
			"error":   err.Error(),
		},
	})
}
