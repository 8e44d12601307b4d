package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/vibenen/academy/internal/apperr"
	"github.com/vibenen/academy/internal/auth"
	"github.com/vibenen/academy/internal/feedback"
	"github.com/vibenen/academy/internal/progress"
)

func GetFeedbackHandler(store *feedback.SQLStore, courseID int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.SubjectFromContext(r.Context())
		fb, ok, err := store.Get(r.Context(), userID, courseID)
		if err != nil {
			writeError(w, err)
			return
		}
		if !ok {
			writeJSON(w, http.StatusOK, nil)
			return
		}
		writeJSON(w, http.StatusOK, fb)
	}
}

func PostFeedbackHandler(store *feedback.SQLStore, svc *progress.Service, courseID int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.SubjectFromContext(r.Context())

		var fb feedback.Feedback
		if err := json.NewDecoder(r.Body).Decode(&fb); err != nil {
			writeError(w, apperr.Validationf("bad json"))
			return
		}
		if err := fb.Validate(); err != nil {
			writeError(w, err)
			return
		}

		done, err := svc.IsCourseComplete(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}
		if !done {
			writeError(w, apperr.Forbiddenf("course must be completed to submit feedback"))
			return
		}

		if err := store.Upsert(r.Context(), userID, courseID, fb); err != nil {
			writeError(w, err)
			return
		}
		log.Printf("[FEEDBACK] stored for user %s", userID)
		writeJSON(w, http.StatusOK, map[string]string{"message": "Feedback saved"})
	}
}
