package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/events", handler.ListEvents)
	mux.HandleFunc("GET /v1/events/{eventID}/fights", handler.ListFightsByEvent)
}

func registerInternalLifecycleRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	internal := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, RequireInternalJobToken(internalJobToken, fn))
	}

	internal("POST /v1/internal/lifecycle/check", handler.RunLifecycleCheck)
	internal("POST /v1/internal/lifecycle/events/{eventID}/schedule", handler.ScheduleEvent)
	internal("POST /v1/internal/lifecycle/events/{eventID}/sections/{section}/complete", handler.CompleteSection)
	internal("DELETE /v1/internal/lifecycle/events/{eventID}/timers", handler.CancelEventTimers)
	internal("GET /v1/internal/lifecycle/timers", handler.ListArmedTimers)
	internal("POST /v1/internal/lifecycle/poller/sweep", handler.SweepFightStarts)
	internal("PUT /v1/internal/fights/{fightID}/scheduled-start", handler.SetFightScheduledStart)
}
