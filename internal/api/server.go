/*
server.go - HTTP router and middleware configuration

Routes under /api serve a browser dashboard:

	GET  /api/healthz
	GET  /api/holidays?start=&end=&extended_break=
	GET  /api/calendar/{month}?extended_break=
	POST /api/plan
	POST /api/advice        rate limited per client

Middleware: RequestID, RealIP, zap request log, Recoverer, CORS.
There is no authentication; the service is meant to run locally.
*/
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	CORSOrigins []string
	// AdviceLimiter throttles POST /api/advice. Nil disables throttling.
	AdviceLimiter *RateLimiter
	Logger        *zap.Logger
}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(opts.Logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Retry-After", "X-Request-Id"},
		MaxAge:         300,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/healthz", h.Health)
		r.Get("/holidays", h.ListHolidays)
		r.Get("/calendar/{month}", h.GetMonthCalendar)
		r.Post("/plan", h.CreatePlan)

		r.Group(func(r chi.Router) {
			if opts.AdviceLimiter != nil {
				r.Use(opts.AdviceLimiter.Middleware)
			}
			r.Post("/advice", h.CreateAdvice)
		})
	})

	return r
}

// NewServer wraps router in an http.Server. writeTimeout must cover the
// slowest advisory call.
func NewServer(addr string, router http.Handler, writeTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       2 * time.Minute,
	}
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			logger.Info("HTTP request",
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.String("remote", r.RemoteAddr),
				zap.Duration("elapsed", time.Since(start)))
		})
	}
}
