package ingest

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/gestaorh/presenca-backend-go/internal/domain/presence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEventRepo is an in-memory presence.EventRepository that can be
// told to fail a specific chunk.
type fakeEventRepo struct {
	events       []presence.Event
	insertCalls  int
	failOnCall   int // 1-based; 0 means never fail
	deleteCalled bool
}

func (f *fakeEventRepo) InsertBatch(ctx context.Context, events []presence.Event) error {
	f.insertCalls++
	if f.failOnCall > 0 && f.insertCalls == f.failOnCall {
		return fmt.Errorf("simulated store failure")
	}
	f.events = append(f.events, events...)
	return nil
}

func (f *fakeEventRepo) ListByPeriod(ctx context.Context, start, end time.Time, limit int) ([]presence.Event, error) {
	var out []presence.Event
	for _, ev := range f.events {
		if !ev.RecordedAt.Before(start) && ev.RecordedAt.Before(end) {
			out = append(out, ev)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakeEventRepo) ListRecent(ctx context.Context, limit int) ([]presence.Event, error) {
	if len(f.events) <= limit {
		return f.events, nil
	}
	return f.events[len(f.events)-limit:], nil
}

func (f *fakeEventRepo) DeleteAll(ctx context.Context) (int64, error) {
	f.deleteCalled = true
	n := int64(len(f.events))
	f.events = nil
	return n, nil
}

func (f *fakeEventRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.events)), nil
}

func makeEvents(n int) []presence.Event {
	events := make([]presence.Event, n)
	for i := range events {
		events[i] = presence.Event{
			PersonName: fmt.Sprintf("Person %d", i),
			RecordedAt: time.Date(2025, 3, 3, 8, 0, 0, 0, time.Local),
			SourceFile: "export.xlsx",
		}
	}
	return events
}

func TestWriteBatches_InsertedCountIndependentOfBatchSize(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for _, batchSize := range []int{1, 2, 7, 100, 1000} {
		repo := &fakeEventRepo{}
		result, err := WriteBatches(ctx, repo, makeEvents(17), batchSize, nil)
		require.NoError(t, err, "batchSize=%d", batchSize)
		assert.Equal(t, 17, result.CommittedCount, "batchSize=%d", batchSize)
		assert.Equal(t, -1, result.FailedChunkIndex, "batchSize=%d", batchSize)
		assert.Len(t, repo.events, 17, "batchSize=%d", batchSize)
	}
}

func TestWriteBatches_ProgressPercentages(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := &fakeEventRepo{}
	var percents []int
	result, err := WriteBatches(ctx, repo, makeEvents(3), 1, func(percent int) {
		percents = append(percents, percent)
	})

	require.NoError(t, err)
	assert.Equal(t, 3, result.CommittedCount)
	assert.Equal(t, []int{33, 66, 100}, percents)
}

func TestWriteBatches_ProgressMonotonic(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := &fakeEventRepo{}
	var percents []int
	_, err := WriteBatches(ctx, repo, makeEvents(25), 4, func(percent int) {
		percents = append(percents, percent)
	})

	require.NoError(t, err)
	require.NotEmpty(t, percents)
	for i := 1; i < len(percents); i++ {
		assert.GreaterOrEqual(t, percents[i], percents[i-1])
	}
	assert.Equal(t, 100, percents[len(percents)-1])
}

func TestWriteBatches_AbortsOnFirstFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// 5 events in chunks of 2: calls 1 and 2 commit, call 3 fails.
	repo := &fakeEventRepo{failOnCall: 3}
	result, err := WriteBatches(ctx, repo, makeEvents(5), 2, nil)

	require.Error(t, err)
	assert.Equal(t, 4, result.CommittedCount)
	assert.Equal(t, 2, result.FailedChunkIndex)
	// No chunk after the failing one is attempted.
	assert.Equal(t, 3, repo.insertCalls)
	// Committed chunks stay persisted.
	assert.Len(t, repo.events, 4)
}

func TestWriteBatches_ZeroEvents(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := &fakeEventRepo{}
	result, err := WriteBatches(ctx, repo, nil, 100, func(int) {
		t.Fatal("progress must not fire for an empty write")
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, presence.ErrNothingToImport))
	assert.Equal(t, 0, result.CommittedCount)
	// No store interaction at all.
	assert.Equal(t, 0, repo.insertCalls)
}
