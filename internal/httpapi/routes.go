package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/DoyleJ11/fracmatch/internal/hub"
	"github.com/DoyleJ11/fracmatch/internal/store"
	"github.com/DoyleJ11/fracmatch/internal/ws"
)

type Deps struct {
	Hub            *hub.Hub
	Store          store.Store
	Logger         *zap.Logger
	AllowedOrigins []string
}

func SetupRoutes(d Deps) http.Handler {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))

	// Public routes
	r.Post("/sessions", CreateSession(d.Hub, log))
	r.Get("/sessions/{code}", GetSession(d.Hub))
	r.Get("/sessions/{code}/attempts", ListAttempts(d.Store, log))
	r.Get("/render/{shape}/{numerator}/{denominator}", RenderFraction)
	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(d.Hub, log, d.AllowedOrigins))
	return r
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())))
		})
	}
}
