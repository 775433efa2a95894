package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/fightcard/internal/usecase"
)

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListEvents")
	defer span.End()

	statuses := strings.Split(r.URL.Query().Get("status"), ",")
	items, err := h.eventService.ListEvents(ctx, statuses)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]eventDTO, 0, len(items))
	for _, item := range items {
		out = append(out, eventToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListFightsByEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFightsByEvent")
	defer span.End()

	eventID := r.PathValue("eventID")
	items, err := h.eventService.ListFightsByEvent(ctx, eventID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]fightDTO, 0, len(items))
	for _, item := range items {
		out = append(out, fightToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) SetFightScheduledStart(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetFightScheduledStart")
	defer span.End()

	fightID := r.PathValue("fightID")

	var req scheduledStartRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	var at *time.Time
	if req.ScheduledStartTime != nil {
		parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(*req.ScheduledStartTime))
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: scheduled_start_time must be RFC3339: %v", usecase.ErrInvalidInput, err))
			return
		}
		at = &parsed
	}

	if err := h.eventService.SetScheduledStartTime(ctx, fightID, at); err != nil {
		h.logger.WarnContext(ctx, "set fight scheduled start failed", "fight_id", fightID, "error", err)
		writeError(ctx, w, err)
		return
	}

	var stored *time.Time
	if at != nil {
		utc := at.UTC()
		stored = &utc
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"fight_id":             fightID,
		"scheduled_start_time": stored,
	})
}
