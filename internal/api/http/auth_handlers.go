package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/mail"

	"github.com/vibenen/academy/internal/apperr"
	"github.com/vibenen/academy/internal/auth"
	"github.com/vibenen/academy/internal/course"
	"github.com/vibenen/academy/internal/eventlog"
	"github.com/vibenen/academy/internal/progress"
)

type credentialsReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r credentialsReq) validate() error {
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return apperr.Validationf("invalid email format")
	}
	if len(r.Password) < 5 {
		return apperr.Validationf("password must be at least 5 characters")
	}
	return nil
}

type tokenResp struct {
	Token string    `json:"token"`
	User  auth.User `json:"user"`
}

// RegisterHandler creates the account and seeds an initial progress
// record for every module of the course, so the unlock resolver always
// has a full record set to work from.
func RegisterHandler(users *auth.UserStore, svc *auth.AuthService, courses course.Store, prog progress.Store, events *eventlog.Repo, courseID int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, apperr.Validationf("bad json"))
			return
		}
		if err := req.validate(); err != nil {
			writeError(w, err)
			return
		}

		u, err := users.Create(r.Context(), req.Email, req.Password)
		if err != nil {
			writeError(w, err)
			return
		}
		log.Printf("[AUTH] user registered: %s", u.ID)

		modules, err := courses.Modules(r.Context(), courseID)
		if err != nil {
			writeError(w, err)
			return
		}
		ids := make([]int64, len(modules))
		for i, m := range modules {
			ids[i] = m.ID
		}
		if err := prog.CreateInitial(r.Context(), u.ID, ids); err != nil {
			writeError(w, err)
			return
		}
		log.Printf("[PROGRESS] initialized %d records for user %s", len(ids), u.ID)

		tok, err := svc.IssueJWT(u.ID)
		if err != nil {
			writeError(w, err)
			return
		}
		appendEvent(r.Context(), events, eventlog.TypeUserRegistered, u.ID, map[string]string{"email": u.Email})
		writeJSON(w, http.StatusOK, tokenResp{Token: tok, User: u})
	}
}

func LoginHandler(users *auth.UserStore, svc *auth.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, apperr.Validationf("bad json"))
			return
		}
		if err := req.validate(); err != nil {
			writeError(w, err)
			return
		}

		u, err := users.Verify(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, apperr.ErrForbidden) {
				// Credential failures are 401, not the generic 403 mapping.
				log.Printf("[AUTH] login rejected for %s", req.Email)
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
				return
			}
			writeError(w, err)
			return
		}
		tok, err := svc.IssueJWT(u.ID)
		if err != nil {
			writeError(w, err)
			return
		}
		log.Printf("[AUTH] user logged in: %s", u.ID)
		writeJSON(w, http.StatusOK, tokenResp{Token: tok, User: u})
	}
}

func MeHandler(users *auth.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := users.ByID(r.Context(), auth.SubjectFromContext(r.Context()))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}

func appendEvent(ctx context.Context, events *eventlog.Repo, typ, key string, data any) {
	if events == nil {
		return
	}
	if err := events.Append(ctx, typ, key, data); err != nil {
		log.Printf("[EVENT] append %s failed: %v", typ, err)
	}
}
