package http

import (
	"log/slog"
	"net/http"

	_ "confadmin/docs"
	"confadmin/internal/delivery/http/controllers"
	"confadmin/internal/delivery/http/helpers"
	"confadmin/internal/delivery/http/middleware"
	"confadmin/internal/domain"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// RouterConfig holds what NewRouter needs to build the admin API.
type RouterConfig struct {
	Logger         *slog.Logger
	Conferences    *controllers.ConferenceController
	Journal        *controllers.JournalController
	Auth           *controllers.AuthController
	Verifier       domain.TokenVerifier
	AllowedOrigins []string
}

// NewRouter initializes the HTTP router with all application routes and wraps it in
// request ID, logging and CORS middleware.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(cfg.Verifier, cfg.Logger)
	conf := cfg.Conferences

	// Auth
	mux.HandleFunc("POST /auth/login", cfg.Auth.Login)

	// Conferences
	mux.HandleFunc("GET /conferences", auth(conf.ListConferences))
	mux.HandleFunc("POST /conferences", auth(conf.CreateConference))
	mux.HandleFunc("POST /conferences/sync", auth(conf.SyncConferences))
	mux.HandleFunc("PUT /conferences/{title}", auth(conf.UpdateConference))
	mux.HandleFunc("POST /conferences/{title}/active", auth(conf.SetActive))
	mux.HandleFunc("POST /conferences/{title}/default", auth(conf.SetDefault))
	mux.HandleFunc("POST /conferences/{title}/timeslots", auth(conf.AddTimeslot))
	mux.HandleFunc("POST /conferences/{title}/rooms", auth(conf.AddRoom))
	mux.HandleFunc("POST /conferences/{title}/rooms/{room}/move", auth(conf.MoveRoom))

	// Selection
	mux.HandleFunc("GET /selection/active", auth(conf.GetActive))
	mux.HandleFunc("GET /selection/default", auth(conf.GetDefault))
	mux.HandleFunc("GET /slots/{slotID}", auth(conf.GetSlot))

	// Journal
	mux.HandleFunc("GET /journal", auth(cfg.Journal.ListJournal))

	// Ops
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	var handler http.Handler = mux
	handler = middleware.CORS(cfg.AllowedOrigins, handler)
	handler = middleware.LoggingMiddleware(cfg.Logger, handler)
	handler = middleware.RequestID(handler)
	return handler
}
