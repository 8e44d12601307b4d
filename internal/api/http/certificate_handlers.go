package http

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/vibenen/academy/internal/apperr"
	"github.com/vibenen/academy/internal/auth"
	"github.com/vibenen/academy/internal/cert"
	"github.com/vibenen/academy/internal/course"
	"github.com/vibenen/academy/internal/eventlog"
	"github.com/vibenen/academy/internal/progress"
)

// CertificateHandler streams the completion certificate PDF. Gated on
// full course completion, the same boolean the feedback surface uses.
func CertificateHandler(svc *progress.Service, users *auth.UserStore, crs course.Course, events *eventlog.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.SubjectFromContext(r.Context())

		done, err := svc.IsCourseComplete(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}
		if !done {
			writeError(w, apperr.Forbiddenf("all modules must be completed to get certificate"))
			return
		}

		u, err := users.ByID(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=Certificate_%s.pdf", u.Email))
		if err := cert.Generate(w, u.Email, crs.Name, time.Now()); err != nil {
			// Headers are already written; only log.
			log.Printf("[CERTIFICATE] generate failed for %s: %v", userID, err)
			return
		}
		log.Printf("[CERTIFICATE] issued to %s", u.Email)
		appendEvent(r.Context(), events, eventlog.TypeCertificateIssued, userID, map[string]string{"email": u.Email})
	}
}
