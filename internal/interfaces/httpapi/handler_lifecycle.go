package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/fightcard/internal/domain/fight"
	"github.com/riskibarqy/fightcard/internal/usecase"
)

func (h *Handler) RunLifecycleCheck(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunLifecycleCheck")
	defer span.End()

	if h.orchestrator == nil {
		writeError(ctx, w, fmt.Errorf("%w: lifecycle orchestrator is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	result, err := h.orchestrator.RunLifecycleCheckNow(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "run lifecycle check failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) ScheduleEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ScheduleEvent")
	defer span.End()

	if h.scheduler == nil {
		writeError(ctx, w, fmt.Errorf("%w: section scheduler is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	eventID := r.PathValue("eventID")
	result, err := h.scheduler.ScheduleEvent(ctx, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "schedule event failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) CompleteSection(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CompleteSection")
	defer span.End()

	if h.scheduler == nil {
		writeError(ctx, w, fmt.Errorf("%w: section scheduler is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	eventID := r.PathValue("eventID")
	section, err := fight.ParseSection(r.PathValue("section"))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	result, err := h.scheduler.CompleteSection(ctx, eventID, section)
	if err != nil {
		h.logger.WarnContext(ctx, "complete section failed", "event_id", eventID, "section", section, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) CancelEventTimers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CancelEventTimers")
	defer span.End()

	if h.scheduler == nil {
		writeError(ctx, w, fmt.Errorf("%w: section scheduler is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	eventID := r.PathValue("eventID")
	writeSuccess(ctx, w, http.StatusOK, cancelTimersDTO{
		EventID:   eventID,
		Cancelled: h.scheduler.CancelTimers(eventID),
	})
}

func (h *Handler) ListArmedTimers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListArmedTimers")
	defer span.End()

	if h.scheduler == nil {
		writeError(ctx, w, fmt.Errorf("%w: section scheduler is not configured", usecase.ErrDependencyUnavailable))
		return
	}
	writeSuccess(ctx, w, http.StatusOK, h.scheduler.ArmedTimers())
}

func (h *Handler) SweepFightStarts(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SweepFightStarts")
	defer span.End()

	if h.poller == nil {
		writeError(ctx, w, fmt.Errorf("%w: fight start poller is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	promoted, err := h.poller.Sweep(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "fight start sweep failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, sweepDTO{Promoted: promoted})
}
