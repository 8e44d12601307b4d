package http

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vibenen/academy/internal/apperr"
	"github.com/vibenen/academy/internal/auth"
	"github.com/vibenen/academy/internal/eventlog"
	"github.com/vibenen/academy/internal/progress"
)

func moduleIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "moduleID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.NotFoundf("module %q", raw)
	}
	return id, nil
}

func GetQuizHandler(svc *progress.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := moduleIDParam(r)
		if err != nil {
			writeError(w, err)
			return
		}
		userID := auth.SubjectFromContext(r.Context())
		quiz, err := svc.QuizFor(r.Context(), userID, id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, quiz)
	}
}

func SubmitQuizHandler(svc *progress.Service, events *eventlog.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := moduleIDParam(r)
		if err != nil {
			writeError(w, err)
			return
		}
		var req struct {
			Answers []int `json:"answers"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, apperr.Validationf("answers must be an array of integers"))
			return
		}

		userID := auth.SubjectFromContext(r.Context())
		eval, err := svc.SubmitQuiz(r.Context(), userID, id, req.Answers)
		if err != nil {
			writeError(w, err)
			return
		}
		log.Printf("[QUIZ] user %s module %d score %d/%d", userID, id, eval.Score, eval.Total)
		appendEvent(r.Context(), events, eventlog.TypeQuizSubmitted, userID, map[string]any{
			"moduleId": id, "score": eval.Score, "total": eval.Total, "validated": eval.Validated,
		})
		writeJSON(w, http.StatusOK, eval)
	}
}
