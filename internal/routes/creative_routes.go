// internal/routes/creative_routes.go
package routes

import (
	"github.com/go-chi/chi/v5"

	"soulboard/internal/config"
	"soulboard/internal/handlers"
)

func RegisterCreativeRoutes(router chi.Router, s3Config *config.S3Config) {
	creativeHandler := handlers.NewCreativeHandler(s3Config)

	router.Route("/creatives", func(r chi.Router) {
		r.Post("/upload", creativeHandler.UploadCreative)
	})
}
