package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gestaorh/presenca-backend-go/internal/domain/presence"
	"github.com/gestaorh/presenca-backend-go/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectProgress(t *testing.T, hub *sse.Hub, importID string) (func() []int, func()) {
	t.Helper()

	events, cleanup := hub.Subscribe(importID)
	drain := func() []int {
		var percents []int
		for {
			select {
			case ev := <-events:
				if ev.Event != "progress" {
					continue
				}
				data, ok := ev.Data.(map[string]int)
				require.True(t, ok)
				percents = append(percents, data["percent"])
			default:
				return percents
			}
		}
	}
	return drain, cleanup
}

func TestImport_FullScenario(t *testing.T) {
	ctx := context.Background()

	data := buildWorkbook(t,
		[]string{"Nome", "Tempo"},
		[][]interface{}{
			{"Ana", "2025-03-03 08:15:00"},
			{"Ana", "2025-03-03 17:40:00"},
			{"Bruno", 45692},
		},
	)

	repo := &fakeEventRepo{}
	hub := sse.NewHub()
	svc := NewImportService(repo, hub, 1)

	importID := "11111111-1111-4111-8111-111111111111"
	drain, cleanup := collectProgress(t, hub, importID)
	defer cleanup()

	result, err := svc.Import(ctx, presence.ImportRequest{
		ImportID:   importID,
		SourceFile: "portaria-marco.xlsx",
		Data:       data,
	})
	require.NoError(t, err)

	assert.Equal(t, importID, result.ImportID)
	assert.Equal(t, 3, result.RowsRead)
	assert.Equal(t, 3, result.Inserted)
	assert.Equal(t, 0, result.Discarded)
	assert.Equal(t, 0, result.FallbackTimestamps)

	// batch size 1 over 3 events means three progress updates.
	assert.Equal(t, []int{33, 66, 100}, drain())

	require.Len(t, repo.events, 3)
	assert.Equal(t, "Ana", repo.events[0].PersonName)
	assert.Equal(t, "portaria-marco.xlsx", repo.events[0].SourceFile)
}

func TestImport_NamelessRowDropped(t *testing.T) {
	ctx := context.Background()

	data := buildWorkbook(t,
		[]string{"Nome", "Tempo"},
		[][]interface{}{
			{"Ana", "2025-03-03 08:15:00"},
			{"", "2025-03-04 09:00:00"},
		},
	)

	repo := &fakeEventRepo{}
	svc := NewImportService(repo, sse.NewHub(), 100)

	result, err := svc.Import(ctx, presence.ImportRequest{
		SourceFile: "export.xlsx",
		Data:       data,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.RowsRead)
	assert.Equal(t, 1, result.Inserted)
	assert.Equal(t, 1, result.Discarded)
	assert.NotEmpty(t, result.ImportID)
}

func TestImport_ReimportIsNotDeduplicated(t *testing.T) {
	ctx := context.Background()

	data := buildWorkbook(t,
		[]string{"Nome", "Tempo"},
		[][]interface{}{
			{"Ana", "2025-03-03 08:15:00"},
			{"Bruno", "2025-03-03 09:00:00"},
		},
	)

	repo := &fakeEventRepo{}
	svc := NewImportService(repo, sse.NewHub(), 100)

	req := presence.ImportRequest{SourceFile: "export.xlsx", Data: data}

	first, err := svc.Import(ctx, req)
	require.NoError(t, err)
	second, err := svc.Import(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, 2, first.Inserted)
	assert.Equal(t, 2, second.Inserted)
	assert.Len(t, repo.events, 4)
}

func TestImport_NothingToImport(t *testing.T) {
	ctx := context.Background()

	// Rows exist but none carries a recognizable name column.
	data := buildWorkbook(t,
		[]string{"Matricula", "Setor"},
		[][]interface{}{
			{"123", "TI"},
			{"456", "RH"},
		},
	)

	repo := &fakeEventRepo{}
	svc := NewImportService(repo, sse.NewHub(), 100)

	result, err := svc.Import(ctx, presence.ImportRequest{
		SourceFile: "export.xlsx",
		Data:       data,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, presence.ErrNothingToImport))
	assert.Equal(t, 0, result.Inserted)
	assert.Equal(t, 2, result.Discarded)
	assert.Equal(t, 0, repo.insertCalls)
}

func TestImport_UnreadableWorkbook(t *testing.T) {
	ctx := context.Background()

	repo := &fakeEventRepo{}
	svc := NewImportService(repo, sse.NewHub(), 100)

	_, err := svc.Import(ctx, presence.ImportRequest{
		SourceFile: "broken.xlsx",
		Data:       []byte("not a spreadsheet"),
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, presence.ErrUnreadableWorkbook))
	assert.Equal(t, 0, repo.insertCalls)
}

func TestImport_StoreFailureKeepsCommittedChunks(t *testing.T) {
	ctx := context.Background()

	data := buildWorkbook(t,
		[]string{"Nome", "Tempo"},
		[][]interface{}{
			{"Ana", "2025-03-03 08:15:00"},
			{"Bruno", "2025-03-03 09:00:00"},
			{"Carla", "2025-03-03 10:00:00"},
		},
	)

	repo := &fakeEventRepo{failOnCall: 2}
	svc := NewImportService(repo, sse.NewHub(), 1)

	result, err := svc.Import(ctx, presence.ImportRequest{
		SourceFile: "export.xlsx",
		Data:       data,
	})

	require.Error(t, err)
	// The first chunk stays committed, no rollback.
	assert.Equal(t, 1, result.Inserted)
	assert.Len(t, repo.events, 1)
	assert.Equal(t, 2, repo.insertCalls)
}

func TestImport_InvalidRequest(t *testing.T) {
	ctx := context.Background()

	svc := NewImportService(&fakeEventRepo{}, sse.NewHub(), 100)

	_, err := svc.Import(ctx, presence.ImportRequest{
		ImportID:   "not-a-uuid",
		SourceFile: "export.xlsx",
		Data:       []byte{1},
	})
	require.Error(t, err)

	_, err = svc.Import(ctx, presence.ImportRequest{SourceFile: "export.xlsx"})
	require.Error(t, err)
}

func TestListEvents(t *testing.T) {
	ctx := context.Background()

	repo := &fakeEventRepo{}
	repo.events = append(repo.events, presence.Event{
		ID:         "1",
		PersonName: "Ana",
		RecordedAt: time.Date(2025, 3, 3, 8, 15, 0, 0, time.Local),
		SourceFile: "export.xlsx",
	})

	svc := NewImportService(repo, sse.NewHub(), 100)

	events, total, err := svc.ListEvents(ctx, presence.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, events, 1)
	assert.Equal(t, "Ana", events[0].PersonName)
}

func TestClear(t *testing.T) {
	ctx := context.Background()

	repo := &fakeEventRepo{events: makeEvents(3)}
	svc := NewImportService(repo, sse.NewHub(), 100)

	// Wrong phrase is rejected before touching the store.
	_, err := svc.Clear(ctx, presence.ClearRequest{Confirm: "apagar"})
	require.Error(t, err)
	assert.False(t, repo.deleteCalled)

	result, err := svc.Clear(ctx, presence.ClearRequest{Confirm: presence.ClearConfirmationPhrase})
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.Deleted)
	assert.Empty(t, repo.events)
}
