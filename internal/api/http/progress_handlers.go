package http

import (
	"log"
	"net/http"

	"github.com/vibenen/academy/internal/auth"
	"github.com/vibenen/academy/internal/eventlog"
	"github.com/vibenen/academy/internal/progress"
)

func GetProgressHandler(svc *progress.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.SubjectFromContext(r.Context())
		views, err := svc.ProgressFor(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, views)
	}
}

func ResetProgressHandler(svc *progress.Service, events *eventlog.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.SubjectFromContext(r.Context())
		if err := svc.Reset(r.Context(), userID); err != nil {
			writeError(w, err)
			return
		}
		log.Printf("[PROGRESS] reset for user %s", userID)
		appendEvent(r.Context(), events, eventlog.TypeProgressReset, userID, struct{}{})
		writeJSON(w, http.StatusOK, map[string]string{"message": "Progress reset successfully"})
	}
}
