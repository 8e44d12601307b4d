package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	api "github.com/vibenen/academy/internal/api/http"
	"github.com/vibenen/academy/internal/auth"
	"github.com/vibenen/academy/internal/config"
	"github.com/vibenen/academy/internal/course"
	"github.com/vibenen/academy/internal/db"
	"github.com/vibenen/academy/internal/eventlog"
	"github.com/vibenen/academy/internal/feedback"
	"github.com/vibenen/academy/internal/progress"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	if err := course.SeedIfEmpty(ctx, dbh); err != nil {
		log.Fatalf("seed failed: %v", err)
	}

	courses := course.NewSQLStore(dbh)
	crs, err := courses.CourseBySlug(ctx, cfg.CourseSlug)
	if err != nil {
		log.Fatalf("course %q not found: %v", cfg.CourseSlug, err)
	}

	progStore := progress.NewSQLStore(dbh)
	progSvc := progress.NewService(courses, progStore, crs.ID)
	users := auth.NewUserStore(dbh, cfg.BcryptCost)
	feedbackStore := feedback.NewSQLStore(dbh)
	events := eventlog.NewRepo(dbh)

	// --- Auth ---
	authSvc := auth.NewAuthService(cfg.AuthSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Public surface
	r.Post("/auth/register", api.RegisterHandler(users, authSvc, courses, progStore, events, crs.ID))
	r.Post("/auth/login", api.LoginHandler(users, authSvc))
	r.Get("/modules", api.ListModulesHandler(courses, crs.ID))
	r.Get("/modules/{moduleID}", api.GetModuleHandler(courses))

	// Protected API (JWT → subject in context)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.Get("/auth/me", api.MeHandler(users))

		pr.Get("/progress", api.GetProgressHandler(progSvc))
		pr.Post("/progress/reset", api.ResetProgressHandler(progSvc, events))

		pr.Get("/quiz/{moduleID}", api.GetQuizHandler(progSvc))
		pr.Post("/quiz/{moduleID}/submit", api.SubmitQuizHandler(progSvc, events))

		pr.Get("/certificate", api.CertificateHandler(progSvc, users, crs, events))

		pr.Get("/feedback", api.GetFeedbackHandler(feedbackStore, crs.ID))
		pr.Post("/feedback", api.PostFeedbackHandler(feedbackStore, progSvc, crs.ID))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (course=%s, db=%s)", cfg.HTTPAddr, crs.Slug, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
