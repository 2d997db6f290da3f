package http

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gestaorh/presenca-backend-go/internal/domain/presence"
	"github.com/gestaorh/presenca-backend-go/internal/handler/http/response"
	"github.com/gestaorh/presenca-backend-go/internal/pkg/sse"
	"github.com/go-chi/chi/v5"
)

type PresenceHandler interface {
	Import(w http.ResponseWriter, r *http.Request)
	StreamProgress(w http.ResponseWriter, r *http.Request)
	ListEvents(w http.ResponseWriter, r *http.Request)
	Clear(w http.ResponseWriter, r *http.Request)
}

type presenceHandlerImpl struct {
	importService presence.ImportService
	hub           *sse.Hub
	maxUploadMB   int64
}

func NewPresenceHandler(importService presence.ImportService, hub *sse.Hub, maxUploadMB int64) PresenceHandler {
	return &presenceHandlerImpl{
		importService: importService,
		hub:           hub,
		maxUploadMB:   maxUploadMB,
	}
}

// Import implements PresenceHandler. Expects a multipart form with the
// spreadsheet under "file" and an optional client-generated "import_id"
// the caller may already be watching on the progress stream.
func (h *presenceHandlerImpl) Import(w http.ResponseWriter, r *http.Request) {
	maxBytes := h.maxUploadMB << 20

	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		if err == http.ErrMissingFile {
			response.BadRequest(w, "Spreadsheet file is required", nil)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		slog.Error("Failed to read uploaded file", "error", err)
		response.BadRequest(w, "Failed to read uploaded file", nil)
		return
	}

	req := presence.ImportRequest{
		ImportID:   r.FormValue("import_id"),
		SourceFile: fileHeader.Filename,
		Data:       data,
	}

	result, err := h.importService.Import(r.Context(), req)
	if err != nil {
		// A mid-batch store failure leaves the committed chunks in
		// place; surface the partial result alongside the error.
		if result.Inserted > 0 {
			response.ImportFailed(w, err.Error(), result)
			return
		}
		response.HandleError(w, err)
		return
	}

	response.Created(w, fmt.Sprintf("%d records imported", result.Inserted), result)
}

// StreamProgress implements PresenceHandler. SSE stream of progress
// percentages for one import, identified by the client-generated ID.
func (h *presenceHandlerImpl) StreamProgress(w http.ResponseWriter, r *http.Request) {
	importID := chi.URLParam(r, "importID")
	if importID == "" {
		response.BadRequest(w, "import ID is required", nil)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(importID)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"import_id\":%q}\n\n", importID)
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

// ListEvents implements PresenceHandler.
func (h *presenceHandlerImpl) ListEvents(w http.ResponseWriter, r *http.Request) {
	filter := presence.ListFilter{}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			response.BadRequest(w, "invalid limit parameter", nil)
			return
		}
		filter.Limit = limit
	}

	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	events, total, err := h.importService.ListEvents(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, events, &response.Meta{
		Limit:      filter.Limit,
		TotalItems: total,
	})
}

// Clear implements PresenceHandler. Destructive and irreversible; the
// request body must carry the typed confirmation phrase.
func (h *presenceHandlerImpl) Clear(w http.ResponseWriter, r *http.Request) {
	var req presence.ClearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.importService.Clear(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Presence history cleared", result)
}
