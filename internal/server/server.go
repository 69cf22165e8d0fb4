// Package server assembles the chi router: middleware, routes, and
// handler wiring in one place, so main.go only has to listen.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/kmathur/student-registry/internal/http/handlers/student"
	"github.com/kmathur/student-registry/internal/storage"
)

// New returns a fully-configured router over the given storage backend.
//
// Route table:
//
//	GET  /                  → welcome message
//	GET  /students/search   → search by name substring / list all
//	GET  /students/{id}     → fetch one record
//	POST /students/{id}     → create a record
//	PUT  /students/{id}     → replace a record
//
// /students/search is a static route, so chi matches it ahead of the
// {id} wildcard.
func New(store storage.Storage, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))
	// RealIP runs first so the logger sees the client address, not the
	// proxy's. The logger stays outside Recoverer so a recovered
	// panic's 500 is recorded too.
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)

	r.Get("/", student.Welcome())

	r.Route("/students", func(r chi.Router) {
		r.Get("/search", student.Search(store))
		r.Get("/{id}", student.GetByID(store))
		r.Post("/{id}", student.Create(store))
		r.Put("/{id}", student.Update(store))
	})

	return r
}

// requestLogger logs each request with method, path, client address,
// status, and duration.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			log.Info("request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote", r.RemoteAddr),
				slog.Int("status", status),
				slog.Duration("duration", time.Since(start).Round(time.Millisecond)),
			)
		})
	}
}
