// internal/routes/routes.go
package routes

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"soulboard/internal/booking"
	"soulboard/internal/chain"
	"soulboard/internal/config"
	"soulboard/internal/draft"
	"soulboard/internal/middleware"
)

func SetupRoutes(db *sql.DB, cfg *config.Config, s3Config *config.S3Config, chainClient chain.Client) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": "soulboard API",
			"status":  "ok",
		})
	})

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		type dbStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}
		resp := struct {
			Status string   `json:"status"`
			DB     dbStatus `json:"db"`
		}{Status: "ok", DB: dbStatus{Status: "ok"}}

		status := http.StatusOK
		if err := db.PingContext(req.Context()); err != nil {
			resp.Status = "degraded"
			resp.DB.Status = "down"
			resp.DB.Error = err.Error()
			status = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(resp)
	})

	r.Handle("/metrics", promhttp.Handler())

	RegisterSwaggerRoutes(r)

	// Session-scoped state shared by the booking and draft flows.
	ledger := booking.NewLedger(chainClient)
	draftStore := draft.NewStore()

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		RegisterAuthRoutes(r, db, cfg)
		RegisterAdvertiserRoutes(r, db)
		RegisterProviderRoutes(r, db)
		RegisterLocationRoutes(r, db, chainClient)
		RegisterCampaignRoutes(r, db)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(cfg.JWTSecret))
			RegisterUserRoutes(r, db)
			RegisterBookingRoutes(r, db, ledger, chainClient)
			RegisterDraftRoutes(r, db, draftStore, chainClient)
			RegisterCreativeRoutes(r, s3Config)
			RegisterSyncRoutes(r, db, chainClient)
		})
	})

	return r
}
