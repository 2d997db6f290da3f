package ingest

import (
	"context"
	"fmt"

	"github.com/gestaorh/presenca-backend-go/internal/domain/presence"
)

// DefaultBatchSize bounds how many events go into one store call.
const DefaultBatchSize = 100

// ProgressFunc receives the percentage of chunks committed so far,
// monotonically non-decreasing, ending at 100 on full success.
type ProgressFunc func(percent int)

// WriteResult reports how far a chunked write got. After a failure
// CommittedCount stays meaningful: chunks already acknowledged are not
// rolled back, so the caller can retry from FailedChunkIndex or discard
// everything through the administrative reset.
type WriteResult struct {
	CommittedCount   int
	FailedChunkIndex int // -1 when every chunk committed
}

// WriteBatches persists events in consecutive chunks of at most
// batchSize, strictly in input order; no chunk starts before the
// previous one is acknowledged. Each chunk is one atomic store call.
// The first failing chunk aborts the remainder. Zero events means zero
// store interaction and ErrNothingToImport.
func WriteBatches(ctx context.Context, repo presence.EventRepository, events []presence.Event, batchSize int, onProgress ProgressFunc) (WriteResult, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	result := WriteResult{FailedChunkIndex: -1}

	if len(events) == 0 {
		return result, presence.ErrNothingToImport
	}

	totalChunks := (len(events) + batchSize - 1) / batchSize

	for offset, chunk := 0, 0; offset < len(events); offset, chunk = offset+batchSize, chunk+1 {
		end := offset + batchSize
		if end > len(events) {
			end = len(events)
		}

		if err := repo.InsertBatch(ctx, events[offset:end]); err != nil {
			result.FailedChunkIndex = chunk
			return result, fmt.Errorf("batch %d of %d failed: %w", chunk+1, totalChunks, err)
		}

		result.CommittedCount += end - offset

		if onProgress != nil {
			onProgress((chunk + 1) * 100 / totalChunks)
		}
	}

	return result, nil
}
